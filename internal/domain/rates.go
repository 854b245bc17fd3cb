package domain

import (
	"fmt"
	"maps"
	"math"
	"slices"
)

// CurrentRateKey is the source key holding today's ETB per USD rate.
const CurrentRateKey = "current"

// ExchangeRateTable holds historical ETB per USD rates by month plus the current rate.
// It is immutable once built.
type ExchangeRateTable struct {
	rates   map[Period]float64
	periods []Period // sorted ascending
	current float64
}

// NewExchangeRateTable builds a table from "YYYY-MM" keyed rates and a "current" entry.
func NewExchangeRateTable(raw map[string]float64) (*ExchangeRateTable, error) {
	current, ok := raw[CurrentRateKey]
	if !ok {
		return nil, ErrCurrentRateMissing
	}
	if !validRate(current) {
		return nil, fmt.Errorf("%w: %s=%v", ErrInvalidRate, CurrentRateKey, current)
	}

	rates := make(map[Period]float64, len(raw))
	for key, value := range raw {
		if key == CurrentRateKey {
			continue
		}
		period, err := ParsePeriod(key)
		if err != nil {
			return nil, err
		}
		if !validRate(value) {
			return nil, fmt.Errorf("%w: %s=%v", ErrInvalidRate, key, value)
		}
		rates[period] = value
	}

	periods := slices.SortedFunc(maps.Keys(rates), Period.Compare)
	return &ExchangeRateTable{rates: rates, periods: periods, current: current}, nil
}

func (t *ExchangeRateTable) Current() float64 { return t.current }

func (t *ExchangeRateTable) Len() int { return len(t.periods) }

// Historical resolves the rate for p: exact month, else the closest preceding month,
// else the earliest month in the table. The returned period is the one actually used.
func (t *ExchangeRateTable) Historical(p Period) (float64, Period, error) {
	if len(t.periods) == 0 {
		return 0, Period{}, ErrRatesNotFound
	}
	if rate, ok := t.rates[p]; ok {
		return rate, p, nil
	}

	// i is the first period after p since p itself is absent
	i, _ := slices.BinarySearchFunc(t.periods, p, Period.Compare)
	if i > 0 {
		prev := t.periods[i-1]
		return t.rates[prev], prev, nil
	}
	earliest := t.periods[0]
	return t.rates[earliest], earliest, nil
}

// Raw returns the table in its source key format.
func (t *ExchangeRateTable) Raw() map[string]float64 {
	raw := make(map[string]float64, len(t.rates)+1)
	for p, v := range t.rates {
		raw[p.Key()] = v
	}
	raw[CurrentRateKey] = t.current
	return raw
}

// WithCurrent returns a copy of the table with the current rate replaced.
func (t *ExchangeRateTable) WithCurrent(current float64) (*ExchangeRateTable, error) {
	if !validRate(current) {
		return nil, fmt.Errorf("%w: %s=%v", ErrInvalidRate, CurrentRateKey, current)
	}
	return &ExchangeRateTable{rates: t.rates, periods: t.periods, current: current}, nil
}

func validRate(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
