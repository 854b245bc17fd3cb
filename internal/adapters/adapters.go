package adapters

import (
	"context"

	"etbinflation/internal/domain"
)

// RateTableSource loads the raw exchange-rate table ("YYYY-MM" and "current" keys).
type RateTableSource interface {
	LoadRates(ctx context.Context) (map[string]float64, error)
}

// CPISource loads monthly US CPI values.
type CPISource interface {
	LoadCPI(ctx context.Context) (map[domain.Period]float64, error)
}

// CurrentRateClient fetches how many units of quote buy one unit of base today.
type CurrentRateClient interface {
	CurrentRate(ctx context.Context, base, quote string) (float64, error)
}

type ConversionCache interface {
	Get(key string) (domain.ConversionResult, bool)
	Set(key string, result domain.ConversionResult)
	Clear()
}
