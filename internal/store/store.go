// Package store defines the storage backend interface for encoded field
// files.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a named field does not exist in the store.
var ErrNotFound = errors.New("store: field not found")

// Store defines the interface for storage backends. Names are bare field
// identifiers; implementations handle file naming, paths, and at-rest
// compression internally.
type Store interface {
	// ReadField returns the encoded .bts byte stream for the named field.
	ReadField(ctx context.Context, name string) ([]byte, error)

	// WriteField stores the encoded .bts byte stream under the given name,
	// replacing any previous content.
	WriteField(ctx context.Context, name string, data []byte) error

	// List returns the names of all stored fields.
	List(ctx context.Context) ([]string, error)

	// Close releases any resources held by the store.
	Close() error
}
