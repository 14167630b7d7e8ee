// Package diskstore implements a directory-backed storage backend.
package diskstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gustline/turbts/internal/codec"
	"github.com/gustline/turbts/internal/store"
)

// Compile-time check that Store implements store.Store.
var _ store.Store = (*Store)(nil)

// Store keeps one file per field under a root directory, named
// <name>.bts with the codec's extension appended when compressing.
type Store struct {
	root  string
	codec codec.Codec
}

// New creates a disk store rooted at the given directory, creating it if
// necessary. The codec handles at-rest compression.
func New(root string, codec codec.Codec) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating root directory: %w", err)
	}
	return &Store{
		root:  root,
		codec: codec,
	}, nil
}

// ReadField reads and decompresses the named field file.
func (s *Store) ReadField(ctx context.Context, name string) ([]byte, error) {
	// Check for cancellation before starting I/O.
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	compressed, err := os.ReadFile(s.fieldPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("reading field: %w", err)
	}

	reader, err := s.codec.Reader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("creating decompressor: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("decompressing field: %w", err)
	}

	return data, nil
}

// WriteField compresses and stores the named field file.
func (s *Store) WriteField(ctx context.Context, name string, data []byte) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	var buf bytes.Buffer
	writer, err := s.codec.Writer(&buf)
	if err != nil {
		return fmt.Errorf("creating compressor: %w", err)
	}
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("compressing field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finishing compression: %w", err)
	}

	if err := os.WriteFile(s.fieldPath(name), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing field: %w", err)
	}
	return nil
}

// List returns the names of all stored fields, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("listing fields: %w", err)
	}

	suffix := s.fileSuffix()
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), suffix))
	}
	sort.Strings(names)
	return names, nil
}

// Close releases any resources held by the store.
func (s *Store) Close() error {
	return nil
}

// fieldPath returns the filesystem path for a field name.
func (s *Store) fieldPath(name string) string {
	return filepath.Join(s.root, name+s.fileSuffix())
}

func (s *Store) fileSuffix() string {
	suffix := ".bts"
	if ext := s.codec.Extension(); ext != "" {
		suffix += "." + ext
	}
	return suffix
}
