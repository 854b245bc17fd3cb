package file

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"etbinflation/internal/domain"
)

// CPISource reads a CSV series with a "year,month,value" header.
type CPISource struct {
	path string
}

func NewCPISource(path string) *CPISource {
	return &CPISource{path: path}
}

func (s *CPISource) LoadCPI(_ context.Context) (map[domain.Period]float64, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cpi file %q: %w", s.path, err)
	}
	defer f.Close()

	values, err := ParseCPI(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cpi file %q: %w", s.path, err)
	}
	return values, nil
}

// ParseCPI reads "year,month,value" records. Blank lines and lines starting with '#' are skipped.
func ParseCPI(r io.Reader) (map[domain.Period]float64, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = 3
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return map[domain.Period]float64{}, nil
		}
		return nil, err
	}
	if !strings.EqualFold(header[0], "year") || !strings.EqualFold(header[1], "month") || !strings.EqualFold(header[2], "value") {
		return nil, fmt.Errorf("unexpected header %v, want year,month,value", header)
	}

	values := make(map[domain.Period]float64)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := reader.FieldPos(0)

		year, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid year %q", line, record[0])
		}
		month, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid month %q", line, record[1])
		}
		value, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid value %q", line, record[2])
		}
		values[domain.NewPeriod(year, month)] = value
	}
	return values, nil
}

// WriteCPI writes values in the format ParseCPI reads, oldest month first.
func WriteCPI(w io.Writer, values map[domain.Period]float64) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"year", "month", "value"}); err != nil {
		return err
	}
	for _, p := range slices.SortedFunc(maps.Keys(values), domain.Period.Compare) {
		record := []string{
			strconv.Itoa(p.Year),
			strconv.Itoa(p.Month),
			strconv.FormatFloat(values[p], 'f', -1, 64),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
