package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMissingParams         = errors.New("amountEtb, month and year are required")
	ErrRatesNotFound         = errors.New("no exchange rate data found")
	ErrCPIUnavailable        = errors.New("inflation data not available")
	ErrCurrentCPIUnavailable = errors.New("current inflation data not available")

	ErrInvalidPeriodKey   = errors.New("invalid period key")
	ErrInvalidRate        = errors.New("exchange rate must be a positive number")
	ErrCurrentRateMissing = errors.New("current exchange rate is missing")
	ErrInvalidCPI         = errors.New("cpi value must be a positive number")
	ErrSnapshotNotLoaded  = errors.New("dataset snapshot not loaded")
	ErrAmountOutOfRange   = errors.New("amount out of range")
	ErrInvalidParams      = errors.New("invalid parameters")
	ErrNotWholeNumber     = errors.New("not a whole number")
)

// CPIUnavailableError reports a requested period outside the CPI provider's data.
type CPIUnavailableError struct {
	Requested Period
	Earliest  Period
	Latest    Period
}

func (e *CPIUnavailableError) Error() string {
	return fmt.Sprintf("inflation data not available for %s, available range %s to %s",
		e.Requested.Key(), e.Earliest.Key(), e.Latest.Key())
}

func (e *CPIUnavailableError) Is(target error) bool { return target == ErrCPIUnavailable }

// InvalidParamError reports a present but unacceptable request field.
type InvalidParamError struct {
	Field  string
	Reason string
}

func (e *InvalidParamError) Error() string { return e.Field + " " + e.Reason }

func (e *InvalidParamError) Is(target error) bool { return target == ErrInvalidParams }
