package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"etbinflation/internal/domain"

	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRateTableSource_Load(t *testing.T) {
	path := writeTemp(t, "rates.json", `{"2020-05": 35.0, "2021-01": 39.1, "current": 55.0}`)

	raw, err := NewRateTableSource(path).LoadRates(context.Background())
	require.NoError(t, err)
	require.Equal(t, map[string]float64{"2020-05": 35.0, "2021-01": 39.1, "current": 55.0}, raw)
}

func TestRateTableSource_MissingFile(t *testing.T) {
	_, err := NewRateTableSource(filepath.Join(t.TempDir(), "nope.json")).LoadRates(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to open exchange rates file")
}

func TestRateTableSource_BadJSON(t *testing.T) {
	path := writeTemp(t, "rates.json", `{"2020-05": "abc"}`)

	_, err := NewRateTableSource(path).LoadRates(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to decode exchange rates file")
}

func TestParseCPI(t *testing.T) {
	values, err := ParseCPI(strings.NewReader("year,month,value\n# seed\n2020,5,256.394\n2025, 8, 323.976\n"))
	require.NoError(t, err)
	require.Len(t, values, 2)
	require.InDelta(t, 256.394, values[domain.NewPeriod(2020, 5)], 1e-9)
	require.InDelta(t, 323.976, values[domain.NewPeriod(2025, 8)], 1e-9)
}

func TestParseCPI_Empty(t *testing.T) {
	values, err := ParseCPI(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, values)
}

func TestParseCPI_Errors(t *testing.T) {
	cases := map[string]string{
		"bad header":   "a,b,c\n2020,5,1\n",
		"bad year":     "year,month,value\nxx,5,1\n",
		"bad month":    "year,month,value\n2020,may,1\n",
		"bad value":    "year,month,value\n2020,5,abc\n",
		"field counts": "year,month,value\n2020,5\n",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCPI(strings.NewReader(input))
			require.Error(t, err)
		})
	}
}

func TestCPISource_Load(t *testing.T) {
	path := writeTemp(t, "cpi.csv", "year,month,value\n2024,1,308.417\n")

	values, err := NewCPISource(path).LoadCPI(context.Background())
	require.NoError(t, err)
	require.InDelta(t, 308.417, values[domain.NewPeriod(2024, 1)], 1e-9)
}

func TestWriteCPI_RoundTrip(t *testing.T) {
	values := map[domain.Period]float64{
		domain.NewPeriod(2025, 1):  317.671,
		domain.NewPeriod(1913, 1):  9.8,
		domain.NewPeriod(2024, 12): 315.605,
	}

	var buf strings.Builder
	require.NoError(t, WriteCPI(&buf, values))
	require.Equal(t, "year,month,value\n1913,1,9.8\n2024,12,315.605\n2025,1,317.671\n", buf.String())

	parsed, err := ParseCPI(strings.NewReader(buf.String()))
	require.NoError(t, err)
	require.Equal(t, values, parsed)
}
