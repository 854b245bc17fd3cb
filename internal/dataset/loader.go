package dataset

import (
	"context"
	"fmt"
	"time"

	"etbinflation/internal/adapters"
	"etbinflation/internal/domain"

	"github.com/sirupsen/logrus"
)

type Loader struct {
	rates   adapters.RateTableSource
	cpi     adapters.CPISource
	current adapters.CurrentRateClient
	now     func() time.Time
}

// NewLoader builds a snapshot loader. current may be nil, in which case the
// rate table's own "current" entry is used as is.
func NewLoader(rates adapters.RateTableSource, cpi adapters.CPISource, current adapters.CurrentRateClient) *Loader {
	return &Loader{rates: rates, cpi: cpi, current: current, now: time.Now}
}

func (l *Loader) Load(ctx context.Context) (*domain.Snapshot, error) {
	raw, err := l.rates.LoadRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load exchange rates: %w", err)
	}
	table, err := domain.NewExchangeRateTable(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid exchange rate table: %w", err)
	}

	if l.current != nil {
		table = l.overrideCurrent(ctx, table)
	}

	values, err := l.cpi.LoadCPI(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cpi: %w", err)
	}
	series, err := domain.NewCPISeries(values)
	if err != nil {
		return nil, fmt.Errorf("invalid cpi series: %w", err)
	}

	earliest, latest := series.DateRange()
	logrus.WithFields(logrus.Fields{
		"rate_months":  table.Len(),
		"current_rate": table.Current(),
		"cpi_months":   series.Len(),
		"cpi_earliest": earliest.Key(),
		"cpi_latest":   latest.Key(),
	}).Info("Dataset snapshot loaded")

	if gaps := series.Gaps(); len(gaps) > 0 {
		logrus.WithFields(logrus.Fields{
			"missing_months": len(gaps),
			"first_missing":  gaps[0].Key(),
		}).Warn("CPI series has missing months inside its range")
	}

	return &domain.Snapshot{Rates: table, CPI: series, LoadedAt: l.now()}, nil
}

// overrideCurrent falls back to the stored current rate when the live rate is unavailable.
func (l *Loader) overrideCurrent(ctx context.Context, table *domain.ExchangeRateTable) *domain.ExchangeRateTable {
	live, err := l.current.CurrentRate(ctx, "USD", "ETB")
	if err != nil {
		logrus.WithError(err).Warn("Live ETB rate unavailable, keeping stored current rate")
		return table
	}
	updated, err := table.WithCurrent(live)
	if err != nil {
		logrus.WithError(err).Warn("Live ETB rate rejected, keeping stored current rate")
		return table
	}
	return updated
}
