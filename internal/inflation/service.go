package inflation

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"etbinflation/internal/adapters"
	"etbinflation/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// SnapshotReader gives access to the dataset snapshot currently in use.
type SnapshotReader interface {
	Current() (*domain.Snapshot, error)
}

// DataRange describes the data a conversion can be computed against.
type DataRange struct {
	Earliest    domain.Period
	Latest      domain.Period
	CurrentRate float64
	LoadedAt    time.Time
}

type Service struct {
	snapshots SnapshotReader
	cache     adapters.ConversionCache
}

// NewService builds a conversion service. cache may be nil.
func NewService(snapshots SnapshotReader, cache adapters.ConversionCache) *Service {
	return &Service{snapshots: snapshots, cache: cache}
}

// Convert adjusts amountEtb at period to today's ETB.
func (s *Service) Convert(_ context.Context, amountEtb float64, period domain.Period) (domain.ConversionResult, error) {
	snapshot, err := s.snapshots.Current()
	if err != nil {
		return domain.ConversionResult{}, err
	}

	key := cacheKey(snapshot, amountEtb, period)
	if s.cache != nil {
		if res, ok := s.cache.Get(key); ok {
			return res, nil
		}
	}

	res, err := Calculate(snapshot.Rates, snapshot.CPI, amountEtb, period)
	if err != nil {
		return domain.ConversionResult{}, err
	}

	if s.cache != nil {
		s.cache.Set(key, res)
	}
	return res, nil
}

func (s *Service) DataRange(_ context.Context) (DataRange, error) {
	snapshot, err := s.snapshots.Current()
	if err != nil {
		return DataRange{}, err
	}
	earliest, latest := snapshot.CPI.DateRange()
	return DataRange{
		Earliest:    earliest,
		Latest:      latest,
		CurrentRate: snapshot.Rates.Current(),
		LoadedAt:    snapshot.LoadedAt,
	}, nil
}

// Calculate runs the conversion against rates and cpi:
// ETB -> USD at the historical rate, USD inflated by the CPI ratio, USD -> ETB at the current rate.
func Calculate(rates *domain.ExchangeRateTable, cpi domain.CPIProvider, amountEtb float64, period domain.Period) (domain.ConversionResult, error) {
	historicalRate, used, err := rates.Historical(period)
	if err != nil {
		return domain.ConversionResult{}, err
	}
	if used != period {
		entry := logrus.WithFields(logrus.Fields{"requested": period.Key(), "used": used.Key()})
		if used.Compare(period) > 0 {
			entry.Warn("No preceding exchange rate, using earliest available")
		} else {
			entry.Debug("No exact exchange rate, using closest preceding month")
		}
	}

	historicalUsd := amountEtb / historicalRate

	pastCPI, ok := cpi.CPI(period)
	if !ok {
		earliest, latest := cpi.DateRange()
		return domain.ConversionResult{}, &domain.CPIUnavailableError{Requested: period, Earliest: earliest, Latest: latest}
	}

	_, latest := cpi.DateRange()
	currentCPI, ok := cpi.CPI(latest)
	if !ok {
		return domain.ConversionResult{}, domain.ErrCurrentCPIUnavailable
	}

	cpiRatio := currentCPI / pastCPI
	todayUsd := historicalUsd * cpiRatio
	finalEtb := todayUsd * rates.Current()
	multiplier := finalEtb / amountEtb

	for _, v := range []float64{historicalUsd, todayUsd, finalEtb, multiplier} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return domain.ConversionResult{}, fmt.Errorf("%w: %v", domain.ErrAmountOutOfRange, amountEtb)
		}
	}

	return domain.ConversionResult{
		OriginalEtb:         round(amountEtb, 2),
		HistoricalUsd:       round(historicalUsd, 2),
		TodayUsd:            round(todayUsd, 2),
		FinalEtb:            round(finalEtb, 2),
		InflationMultiplier: round(multiplier, 4),
	}, nil
}

// round works on the exact binary value of v, so 1.005 rounds to 1.00 and ties round up.
func round(v float64, places int32) float64 {
	return decimal.NewFromFloatWithExponent(v, -places).InexactFloat64()
}

func cacheKey(snapshot *domain.Snapshot, amountEtb float64, period domain.Period) string {
	return strconv.FormatInt(snapshot.LoadedAt.UnixNano(), 10) + "|" +
		strconv.FormatFloat(amountEtb, 'g', -1, 64) + "|" + period.Key()
}
