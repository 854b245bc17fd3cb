package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"etbinflation/internal/domain"

	"github.com/sirupsen/logrus"
)

const (
	blsStatusSucceeded = "REQUEST_SUCCEEDED"
	// years per request allowed by the BLS v2 API
	blsWindowAnonymous  = 10
	blsWindowRegistered = 20
)

// BLSClient loads a monthly CPI series from the BLS public data API v2.
type BLSClient struct {
	http      *http.Client
	baseURL   string
	seriesID  string
	apiKey    string
	startYear int
	now       func() time.Time
}

func NewBLSClient(httpClient *http.Client, baseURL, seriesID, apiKey string, startYear int) *BLSClient {
	return &BLSClient{
		http:      httpClient,
		baseURL:   baseURL,
		seriesID:  seriesID,
		apiKey:    apiKey,
		startYear: startYear,
		now:       time.Now,
	}
}

type blsRequest struct {
	SeriesID        []string `json:"seriesid"`
	StartYear       string   `json:"startyear"`
	EndYear         string   `json:"endyear"`
	RegistrationKey string   `json:"registrationkey,omitempty"`
}

type blsResponse struct {
	Status  string   `json:"status"`
	Message []string `json:"message"`
	Results struct {
		Series []struct {
			SeriesID string `json:"seriesID"`
			Data     []struct {
				Year   string `json:"year"`
				Period string `json:"period"`
				Value  string `json:"value"`
			} `json:"data"`
		} `json:"series"`
	} `json:"Results"`
}

func (c *BLSClient) LoadCPI(ctx context.Context) (map[domain.Period]float64, error) {
	window := blsWindowAnonymous
	if c.apiKey != "" {
		window = blsWindowRegistered
	}

	endYear := c.now().Year()
	values := make(map[domain.Period]float64)
	for from := c.startYear; from <= endYear; from += window {
		to := min(from+window-1, endYear)
		if err := c.fetchWindow(ctx, from, to, values); err != nil {
			return nil, err
		}
	}
	logrus.Debugf("Loaded %d CPI months for series %s from BLS", len(values), c.seriesID)
	return values, nil
}

func (c *BLSClient) fetchWindow(ctx context.Context, from, to int, into map[domain.Period]float64) error {
	payload, err := json.Marshal(blsRequest{
		SeriesID:        []string{c.seriesID},
		StartYear:       strconv.Itoa(from),
		EndYear:         strconv.Itoa(to),
		RegistrationKey: c.apiKey,
	})
	if err != nil {
		return fmt.Errorf("failed to encode bls request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create bls request for %d-%d: %w", from, to, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute bls request for %d-%d: %w", from, to, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status code %d from bls for %d-%d: %s", resp.StatusCode, from, to, resp.Status)
	}

	var body blsResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("failed to decode bls response for %d-%d: %w", from, to, err)
	}
	if body.Status != blsStatusSucceeded {
		return fmt.Errorf("bls returned %s for %d-%d: %s", body.Status, from, to, strings.Join(body.Message, "; "))
	}

	for _, series := range body.Results.Series {
		for _, point := range series.Data {
			period, ok := parseBLSPeriod(point.Year, point.Period)
			if !ok {
				continue
			}
			value, err := strconv.ParseFloat(point.Value, 64)
			if err != nil {
				// "-" marks months BLS did not collect
				continue
			}
			into[period] = value
		}
	}
	return nil
}

// parseBLSPeriod accepts monthly periods M01..M12; M13 is the annual average.
func parseBLSPeriod(year, period string) (domain.Period, bool) {
	y, err := strconv.Atoi(year)
	if err != nil || !strings.HasPrefix(period, "M") {
		return domain.Period{}, false
	}
	m, err := strconv.Atoi(period[1:])
	if err != nil || m < 1 || m > 12 {
		return domain.Period{}, false
	}
	return domain.NewPeriod(y, m), true
}
