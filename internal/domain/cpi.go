package domain

import (
	"fmt"
	"maps"
	"slices"
)

// CPIProvider supplies US CPI values by month.
type CPIProvider interface {
	CPI(p Period) (float64, bool)
	DateRange() (earliest Period, latest Period)
}

// CPISeries is an immutable in-memory CPIProvider.
type CPISeries struct {
	values  map[Period]float64
	periods []Period
}

func NewCPISeries(values map[Period]float64) (*CPISeries, error) {
	cloned := make(map[Period]float64, len(values))
	for p, v := range values {
		if !p.Valid() {
			return nil, fmt.Errorf("%w: %d-%d", ErrInvalidPeriodKey, p.Year, p.Month)
		}
		if !validRate(v) {
			return nil, fmt.Errorf("%w: %s=%v", ErrInvalidCPI, p.Key(), v)
		}
		cloned[p] = v
	}
	return &CPISeries{
		values:  cloned,
		periods: slices.SortedFunc(maps.Keys(cloned), Period.Compare),
	}, nil
}

func (s *CPISeries) CPI(p Period) (float64, bool) {
	v, ok := s.values[p]
	return v, ok
}

// DateRange returns zero periods for an empty series.
func (s *CPISeries) DateRange() (Period, Period) {
	if len(s.periods) == 0 {
		return Period{}, Period{}
	}
	return s.periods[0], s.periods[len(s.periods)-1]
}

func (s *CPISeries) Len() int { return len(s.periods) }

// Gaps lists the months between the earliest and latest period that have no value.
func (s *CPISeries) Gaps() []Period {
	var gaps []Period
	for i := 1; i < len(s.periods); i++ {
		for idx := s.periods[i-1].Index() + 1; idx < s.periods[i].Index(); idx++ {
			gaps = append(gaps, periodFromIndex(idx))
		}
	}
	return gaps
}
