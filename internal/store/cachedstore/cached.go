// Package cachedstore wraps a store with a read-through cache, so that
// repeatedly loaded fields skip storage and decompression.
package cachedstore

import (
	"context"

	"github.com/gustline/turbts/internal/store"
)

// Compile-time check that Store implements store.Store.
var _ store.Store = (*Store)(nil)

// Store wraps another Store with caching.
type Store struct {
	underlying store.Store
	backend    Backend
}

// New creates a new cached store wrapping the given store.
func New(underlying store.Store, backend Backend) *Store {
	return &Store{
		underlying: underlying,
		backend:    backend,
	}
}

// ReadField reads a field, checking the cache first.
func (s *Store) ReadField(ctx context.Context, name string) ([]byte, error) {
	if data, ok := s.backend.Get(name); ok {
		return data, nil
	}

	data, err := s.underlying.ReadField(ctx, name)
	if err != nil {
		return nil, err
	}

	s.backend.Set(name, data)
	return data, nil
}

// WriteField writes through to the underlying store and refreshes the
// cache, so a Load immediately after Save never re-reads storage.
func (s *Store) WriteField(ctx context.Context, name string, data []byte) error {
	if err := s.underlying.WriteField(ctx, name, data); err != nil {
		return err
	}
	s.backend.Set(name, data)
	return nil
}

// List lists the underlying store; the cache holds no authoritative
// name set.
func (s *Store) List(ctx context.Context) ([]string, error) {
	return s.underlying.List(ctx)
}

// Close closes the underlying store.
func (s *Store) Close() error {
	return s.underlying.Close()
}

// Stats returns cache statistics.
func (s *Store) Stats() Stats {
	return s.backend.Stats()
}
