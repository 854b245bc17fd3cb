package cache

import (
	"fmt"

	"etbinflation/internal/domain"

	"github.com/dgraph-io/ristretto"
)

type RistrettoConversionCache struct {
	cache *ristretto.Cache
}

func NewConversionCache(maxItems int64) (*RistrettoConversionCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create conversion cache failed: %w", err)
	}
	return &RistrettoConversionCache{cache: c}, nil
}

func (c *RistrettoConversionCache) Get(key string) (domain.ConversionResult, bool) {
	if v, ok := c.cache.Get(key); ok {
		res, ok := v.(domain.ConversionResult)
		return res, ok
	}
	return domain.ConversionResult{}, false
}

func (c *RistrettoConversionCache) Set(key string, result domain.ConversionResult) {
	c.cache.Set(key, result, 1)
}

func (c *RistrettoConversionCache) Clear() { c.cache.Clear() }

func (c *RistrettoConversionCache) Close() { c.cache.Close() }
