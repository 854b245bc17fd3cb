package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// ConversionRequest fields are pointers so that an absent field is distinguishable from zero.
type ConversionRequest struct {
	AmountEtb *float64     `json:"amountEtb" validate:"required,gt=0"`
	Month     *WholeNumber `json:"month" validate:"required,min=1,max=12" swaggertype:"integer"`
	Year      *WholeNumber `json:"year" validate:"required,min=1" swaggertype:"integer"`
}

// WholeNumber decodes any JSON number without a fractional part, so 5 and 5.0 are the same month.
type WholeNumber int

func (n *WholeNumber) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return fmt.Errorf("%w: %s is not a whole number", ErrNotWholeNumber, data)
	}
	*n = WholeNumber(f)
	return nil
}

type ConversionResult struct {
	OriginalEtb         float64 `json:"originalEtb"`
	HistoricalUsd       float64 `json:"historicalUsd"`
	TodayUsd            float64 `json:"todayUsd"`
	FinalEtb            float64 `json:"finalEtb"`
	InflationMultiplier float64 `json:"inflationMultiplier"`
}

// Snapshot bundles the datasets a conversion reads. It is never mutated after creation.
type Snapshot struct {
	Rates    *ExchangeRateTable
	CPI      *CPISeries
	LoadedAt time.Time
}
