// Package store owns the mutable state of the service: the catalog, loaded once,
// and the per-session carts, each owned by a single goroutine.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/mytheresa/storefront/models"
	"github.com/mytheresa/storefront/sources"
)

// ErrCatalogNotLoaded is returned by reads issued before Load completed.
var ErrCatalogNotLoaded = errors.New("catalog not loaded")

// FetchError reports a failed catalog load. It is terminal for the process.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch catalog from %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// CatalogStore loads the catalog exactly once and serves the immutable snapshot afterwards.
type CatalogStore struct {
	source sources.Source
	logger *zap.Logger

	once     sync.Once
	done     chan struct{}
	snapshot models.CatalogSnapshot
	err      error
}

func NewCatalogStore(source sources.Source, logger *zap.Logger) *CatalogStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogStore{
		source: source,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Load fetches the catalog on the first call. Later calls, concurrent or not,
// wait for that first attempt and return its outcome. A failure is never retried.
func (s *CatalogStore) Load(ctx context.Context) error {
	s.once.Do(func() {
		defer close(s.done)
		s.snapshot, s.err = s.load(ctx)
	})
	return s.err
}

func (s *CatalogStore) load(ctx context.Context) (models.CatalogSnapshot, error) {
	products, err := s.source.Fetch(ctx)
	if err == nil {
		var snap models.CatalogSnapshot
		if snap, err = models.NewCatalogSnapshot(products); err == nil {
			s.logger.Info("catalog loaded",
				zap.String("source", s.source.Name()),
				zap.Int("products", snap.Len()))
			return snap, nil
		}
	}
	s.logger.Error("catalog load failed", zap.String("source", s.source.Name()), zap.Error(err))
	return models.CatalogSnapshot{}, &FetchError{Source: s.source.Name(), Err: err}
}

// Loaded reports whether Load finished, successfully or not.
func (s *CatalogStore) Loaded() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Snapshot returns the loaded catalog, ErrCatalogNotLoaded while loading,
// or the FetchError of the failed load.
func (s *CatalogStore) Snapshot() (models.CatalogSnapshot, error) {
	if !s.Loaded() {
		return models.CatalogSnapshot{}, ErrCatalogNotLoaded
	}
	if s.err != nil {
		return models.CatalogSnapshot{}, s.err
	}
	return s.snapshot, nil
}

// Apply filters the full catalog with criteria.
func (s *CatalogStore) Apply(criteria models.FilterCriteria) ([]models.Product, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Apply(criteria), nil
}
