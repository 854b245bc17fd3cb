package dataset

import (
	"context"
	"sync/atomic"

	"etbinflation/internal/adapters"
	"etbinflation/internal/domain"
)

type SnapshotLoader interface {
	Load(ctx context.Context) (*domain.Snapshot, error)
}

// Store publishes the snapshot requests compute against. Snapshots are replaced, never mutated.
type Store struct {
	loader   SnapshotLoader
	cache    adapters.ConversionCache
	snapshot atomic.Pointer[domain.Snapshot]
}

// NewStore creates an empty store. cache may be nil.
func NewStore(loader SnapshotLoader, cache adapters.ConversionCache) *Store {
	return &Store{loader: loader, cache: cache}
}

func (s *Store) Current() (*domain.Snapshot, error) {
	snapshot := s.snapshot.Load()
	if snapshot == nil {
		return nil, domain.ErrSnapshotNotLoaded
	}
	return snapshot, nil
}

// Reload loads a fresh snapshot and publishes it. On failure the previous snapshot stays in place.
func (s *Store) Reload(ctx context.Context) error {
	snapshot, err := s.loader.Load(ctx)
	if err != nil {
		return err
	}
	s.snapshot.Store(snapshot)
	if s.cache != nil {
		s.cache.Clear()
	}
	return nil
}
