package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Period is a calendar month. Periods are ordered by Index, never by their string key.
type Period struct {
	Year  int
	Month int
}

func NewPeriod(year, month int) Period {
	return Period{Year: year, Month: month}
}

// ParsePeriod parses a "YYYY-MM" key.
func ParsePeriod(key string) (Period, error) {
	yearPart, monthPart, ok := strings.Cut(key, "-")
	if !ok || len(monthPart) != 2 || len(yearPart) == 0 {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriodKey, key)
	}
	year, err := strconv.Atoi(yearPart)
	if err != nil || year < 1 {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriodKey, key)
	}
	month, err := strconv.Atoi(monthPart)
	if err != nil || month < 1 || month > 12 {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriodKey, key)
	}
	return Period{Year: year, Month: month}, nil
}

func (p Period) Index() int { return p.Year*12 + (p.Month - 1) }

func periodFromIndex(i int) Period { return Period{Year: i / 12, Month: i%12 + 1} }

func (p Period) Compare(other Period) int {
	switch a, b := p.Index(), other.Index(); {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (p Period) Valid() bool { return p.Year >= 1 && p.Month >= 1 && p.Month <= 12 }

// Key returns the zero-padded "YYYY-MM" form.
func (p Period) Key() string { return fmt.Sprintf("%04d-%02d", p.Year, p.Month) }

func (p Period) String() string { return p.Key() }
