package inflation

import (
	"context"
	"errors"
	"testing"
	"time"

	"etbinflation/internal/domain"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Testify mocks ---

type MockSnapshotReader struct{ mock.Mock }

func (m *MockSnapshotReader) Current() (*domain.Snapshot, error) {
	args := m.Called()
	s, _ := args.Get(0).(*domain.Snapshot)
	return s, args.Error(1)
}

type MockConversionCache struct{ mock.Mock }

func (m *MockConversionCache) Get(key string) (domain.ConversionResult, bool) {
	args := m.Called(key)
	res, _ := args.Get(0).(domain.ConversionResult)
	return res, args.Bool(1)
}

func (m *MockConversionCache) Set(key string, result domain.ConversionResult) {
	m.Called(key, result)
}

func (m *MockConversionCache) Clear() { m.Called() }

// --- fixtures ---

func newSnapshot(t *testing.T, rates map[string]float64, cpi map[domain.Period]float64) *domain.Snapshot {
	t.Helper()
	table, err := domain.NewExchangeRateTable(rates)
	require.NoError(t, err)
	series, err := domain.NewCPISeries(cpi)
	require.NoError(t, err)
	return &domain.Snapshot{Rates: table, CPI: series, LoadedAt: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)}
}

func defaultSnapshot(t *testing.T) *domain.Snapshot {
	return newSnapshot(t,
		map[string]float64{"2020-05": 35.0, "current": 55.0},
		map[domain.Period]float64{
			domain.NewPeriod(2020, 5): 258.0,
			domain.NewPeriod(2025, 8): 310.0,
		},
	)
}

// --- Calculate ---

func TestCalculate_ExactMonth(t *testing.T) {
	s := defaultSnapshot(t)

	res, err := Calculate(s.Rates, s.CPI, 3500, domain.NewPeriod(2020, 5))
	require.NoError(t, err)

	require.Equal(t, 3500.0, res.OriginalEtb)
	require.Equal(t, 100.0, res.HistoricalUsd)
	require.Equal(t, 120.16, res.TodayUsd)
	require.Equal(t, 6608.53, res.FinalEtb)
	require.Equal(t, 1.8882, res.InflationMultiplier)
}

func TestCalculate_FallbackToPrecedingMonth(t *testing.T) {
	s := newSnapshot(t,
		map[string]float64{"2019-01": 28.0, "2020-05": 35.0, "2021-01": 40.0, "current": 56.0},
		map[domain.Period]float64{
			domain.NewPeriod(2020, 9): 260.0,
			domain.NewPeriod(2025, 8): 312.0,
		},
	)

	res, err := Calculate(s.Rates, s.CPI, 700, domain.NewPeriod(2020, 9))
	require.NoError(t, err)
	// 700 / 35 rather than 700 / 40
	require.Equal(t, 20.0, res.HistoricalUsd)
	require.Equal(t, 24.0, res.TodayUsd)
	require.Equal(t, 1344.0, res.FinalEtb)
	require.Equal(t, 1.92, res.InflationMultiplier)
}

func TestCalculate_FallbackToEarliest(t *testing.T) {
	s := newSnapshot(t,
		map[string]float64{"2010-01": 10.0, "2020-05": 35.0, "current": 50.0},
		map[domain.Period]float64{
			domain.NewPeriod(2005, 1): 200.0,
			domain.NewPeriod(2025, 8): 300.0,
		},
	)

	res, err := Calculate(s.Rates, s.CPI, 100, domain.NewPeriod(2005, 1))
	require.NoError(t, err)
	require.Equal(t, 10.0, res.HistoricalUsd)
	require.Equal(t, 15.0, res.TodayUsd)
	require.Equal(t, 750.0, res.FinalEtb)
	require.Equal(t, 7.5, res.InflationMultiplier)
}

func TestCalculate_EmptyRateTable(t *testing.T) {
	s := newSnapshot(t,
		map[string]float64{"current": 55.0},
		map[domain.Period]float64{domain.NewPeriod(2020, 5): 258.0},
	)

	_, err := Calculate(s.Rates, s.CPI, 3500, domain.NewPeriod(2020, 5))
	require.ErrorIs(t, err, domain.ErrRatesNotFound)
}

func TestCalculate_PastCPIUnavailable(t *testing.T) {
	s := defaultSnapshot(t)

	_, err := Calculate(s.Rates, s.CPI, 3500, domain.NewPeriod(1990, 1))
	require.ErrorIs(t, err, domain.ErrCPIUnavailable)

	var cpiErr *domain.CPIUnavailableError
	require.True(t, errors.As(err, &cpiErr))
	require.Equal(t, domain.NewPeriod(1990, 1), cpiErr.Requested)
	require.Equal(t, domain.NewPeriod(2020, 5), cpiErr.Earliest)
	require.Equal(t, domain.NewPeriod(2025, 8), cpiErr.Latest)
}

type gappedCPI struct{ *domain.CPISeries }

// DateRange claims a latest period the series has no value for.
func (g gappedCPI) DateRange() (domain.Period, domain.Period) {
	earliest, _ := g.CPISeries.DateRange()
	return earliest, domain.NewPeriod(2030, 1)
}

func TestCalculate_CurrentCPIUnavailable(t *testing.T) {
	s := defaultSnapshot(t)

	_, err := Calculate(s.Rates, gappedCPI{s.CPI}, 3500, domain.NewPeriod(2020, 5))
	require.ErrorIs(t, err, domain.ErrCurrentCPIUnavailable)
}

func TestCalculate_Idempotent(t *testing.T) {
	s := defaultSnapshot(t)

	first, err := Calculate(s.Rates, s.CPI, 1234.567, domain.NewPeriod(2020, 5))
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Calculate(s.Rates, s.CPI, 1234.567, domain.NewPeriod(2020, 5))
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestCalculate_RoundsOutputs(t *testing.T) {
	s := defaultSnapshot(t)

	res, err := Calculate(s.Rates, s.CPI, 1234.567, domain.NewPeriod(2020, 5))
	require.NoError(t, err)

	require.Equal(t, 1234.57, res.OriginalEtb)
	require.InDelta(t, round(res.HistoricalUsd, 2), res.HistoricalUsd, 0)
	require.InDelta(t, round(res.TodayUsd, 2), res.TodayUsd, 0)
	require.InDelta(t, round(res.FinalEtb, 2), res.FinalEtb, 0)
	require.InDelta(t, round(res.InflationMultiplier, 4), res.InflationMultiplier, 0)
}

func TestRound_BinaryValue(t *testing.T) {
	testCases := []struct {
		in     float64
		places int32
		want   float64
	}{
		{1.005, 2, 1.00},
		{2.675, 2, 2.67},
		{1.045, 2, 1.04},
		{0.125, 2, 0.13},
		{8.345, 2, 8.35},
		{1234.567, 2, 1234.57},
		{10.005, 2, 10.01},
		{1.88825, 4, 1.8882},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.want, round(tc.in, tc.places), "round(%v, %d)", tc.in, tc.places)
	}
}

func TestCalculate_OriginalAmountRounding(t *testing.T) {
	s := defaultSnapshot(t)

	res, err := Calculate(s.Rates, s.CPI, 2.675, domain.NewPeriod(2020, 5))
	require.NoError(t, err)
	require.Equal(t, 2.67, res.OriginalEtb)
}

func TestCalculate_Overflow(t *testing.T) {
	s := defaultSnapshot(t)

	_, err := Calculate(s.Rates, s.CPI, 1e308, domain.NewPeriod(2020, 5))
	require.ErrorIs(t, err, domain.ErrAmountOutOfRange)
}

// --- Service ---

func TestService_Convert_CachesResult(t *testing.T) {
	reader := new(MockSnapshotReader)
	cache := new(MockConversionCache)
	svc := NewService(reader, cache)
	s := defaultSnapshot(t)

	reader.On("Current").Return(s, nil).Once()
	cache.On("Get", mock.Anything).Return(domain.ConversionResult{}, false).Once()
	cache.On("Set", mock.Anything, mock.AnythingOfType("domain.ConversionResult")).Return().Once()

	res, err := svc.Convert(context.Background(), 3500, domain.NewPeriod(2020, 5))
	require.NoError(t, err)
	require.Equal(t, 6608.53, res.FinalEtb)
	reader.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestService_Convert_UsesCacheHit(t *testing.T) {
	reader := new(MockSnapshotReader)
	cache := new(MockConversionCache)
	svc := NewService(reader, cache)
	s := defaultSnapshot(t)
	cached := domain.ConversionResult{FinalEtb: 1}

	reader.On("Current").Return(s, nil).Once()
	cache.On("Get", cacheKey(s, 3500, domain.NewPeriod(2020, 5))).Return(cached, true).Once()

	res, err := svc.Convert(context.Background(), 3500, domain.NewPeriod(2020, 5))
	require.NoError(t, err)
	require.Equal(t, cached, res)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
	reader.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestService_Convert_ErrorNotCached(t *testing.T) {
	reader := new(MockSnapshotReader)
	cache := new(MockConversionCache)
	svc := NewService(reader, cache)

	reader.On("Current").Return(defaultSnapshot(t), nil).Once()
	cache.On("Get", mock.Anything).Return(domain.ConversionResult{}, false).Once()

	_, err := svc.Convert(context.Background(), 3500, domain.NewPeriod(1990, 1))
	require.ErrorIs(t, err, domain.ErrCPIUnavailable)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
}

func TestService_Convert_NoCache(t *testing.T) {
	reader := new(MockSnapshotReader)
	svc := NewService(reader, nil)

	reader.On("Current").Return(defaultSnapshot(t), nil).Once()

	res, err := svc.Convert(context.Background(), 3500, domain.NewPeriod(2020, 5))
	require.NoError(t, err)
	require.Equal(t, 100.0, res.HistoricalUsd)
}

func TestService_Convert_SnapshotError(t *testing.T) {
	reader := new(MockSnapshotReader)
	svc := NewService(reader, nil)

	reader.On("Current").Return(nil, domain.ErrSnapshotNotLoaded).Once()

	_, err := svc.Convert(context.Background(), 3500, domain.NewPeriod(2020, 5))
	require.ErrorIs(t, err, domain.ErrSnapshotNotLoaded)
}

func TestService_DataRange(t *testing.T) {
	reader := new(MockSnapshotReader)
	svc := NewService(reader, nil)
	s := defaultSnapshot(t)

	reader.On("Current").Return(s, nil).Once()

	dr, err := svc.DataRange(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.NewPeriod(2020, 5), dr.Earliest)
	require.Equal(t, domain.NewPeriod(2025, 8), dr.Latest)
	require.InDelta(t, 55.0, dr.CurrentRate, 1e-9)
	require.True(t, dr.LoadedAt.Equal(s.LoadedAt))
}
