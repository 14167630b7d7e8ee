// Package memstore provides an in-memory store implementation for testing.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/gustline/turbts/internal/store"
)

// Compile-time check that Store implements store.Store.
var _ store.Store = (*Store)(nil)

// Store is an in-memory store for testing.
type Store struct {
	mu     sync.RWMutex
	fields map[string][]byte
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		fields: make(map[string][]byte),
	}
}

// ReadField reads a field from memory.
func (s *Store) ReadField(ctx context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.fields[name]
	if !ok {
		return nil, store.ErrNotFound
	}
	return data, nil
}

// WriteField stores a copy of data so later caller mutations cannot
// corrupt the store.
func (s *Store) WriteField(ctx context.Context, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]byte, len(data))
	copy(copied, data)
	s.fields[name] = copied
	return nil
}

// List returns the names of all stored fields, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.fields))
	for name := range s.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Close is a no-op for the memory store.
func (s *Store) Close() error {
	return nil
}
