package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

var ErrQuoteNotQuoted = errors.New("quote currency missing from api response")

// ExchangeRateClient talks to an exchangerate-api style "latest/{base}" endpoint.
type ExchangeRateClient struct {
	http    *http.Client
	baseURL string
}

func NewExchangeRateClient(httpClient *http.Client, baseURL string) *ExchangeRateClient {
	return &ExchangeRateClient{http: httpClient, baseURL: baseURL}
}

type latestRatesResponse struct {
	Result          string             `json:"result"`
	ErrorType       string             `json:"error-type"`
	BaseCode        string             `json:"base_code"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
}

func (c *ExchangeRateClient) GetExchangeRates(ctx context.Context, base string) (map[string]float64, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + base

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for currency %q: %w", base, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request for currency %q: %w", base, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code %d for currency %q: %s", resp.StatusCode, base, resp.Status)
	}

	var body latestRatesResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response for currency %q: %w", base, err)
	}
	if body.Result != "success" {
		return nil, fmt.Errorf("api returned non-success result for currency %q: %s %s", base, body.Result, body.ErrorType)
	}
	return body.ConversionRates, nil
}

// CurrentRate returns how many units of quote buy one unit of base.
func (c *ExchangeRateClient) CurrentRate(ctx context.Context, base, quote string) (float64, error) {
	rates, err := c.GetExchangeRates(ctx, base)
	if err != nil {
		return 0, err
	}
	v, ok := rates[quote]
	if !ok || v <= 0 {
		return 0, fmt.Errorf("%w: %s/%s", ErrQuoteNotQuoted, base, quote)
	}
	return v, nil
}
