package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// RateTableSource reads an exchange-rate table from a JSON object such as
// {"2020-05": 34.6, "current": 138.5}.
type RateTableSource struct {
	path string
}

func NewRateTableSource(path string) *RateTableSource {
	return &RateTableSource{path: path}
}

func (s *RateTableSource) LoadRates(_ context.Context) (map[string]float64, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open exchange rates file %q: %w", s.path, err)
	}
	defer f.Close()

	var raw map[string]float64
	if err = json.NewDecoder(f).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode exchange rates file %q: %w", s.path, err)
	}
	return raw, nil
}
