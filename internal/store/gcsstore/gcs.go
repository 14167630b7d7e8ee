// Package gcsstore implements a Google Cloud Storage backend.
package gcsstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"github.com/gustline/turbts/internal/codec"
	"github.com/gustline/turbts/internal/store"
)

// Compile-time check that Store implements store.Store.
var _ store.Store = (*Store)(nil)

// Store is a Google Cloud Storage backend.
type Store struct {
	client *storage.Client
	bucket *storage.BucketHandle
	prefix string
	codec  codec.Codec
}

// New creates a new GCS store. The bucket must already exist.
// The codec handles at-rest compression.
func New(ctx context.Context, bucketName string, c codec.Codec, opts ...Option) (*Store, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating GCS client: %w", err)
	}

	s := &Store{
		client: client,
		bucket: client.Bucket(bucketName),
		codec:  c,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix sets a key prefix for all operations.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = strings.TrimSuffix(prefix, "/")
		if s.prefix != "" {
			s.prefix += "/"
		}
	}
}

// ReadField reads and decompresses the named field object.
func (s *Store) ReadField(ctx context.Context, name string) ([]byte, error) {
	reader, err := s.bucket.Object(s.fieldKey(name)).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("creating reader: %w", err)
	}
	defer reader.Close()

	decompressor, err := s.codec.Reader(reader)
	if err != nil {
		return nil, fmt.Errorf("creating decompressor: %w", err)
	}
	defer decompressor.Close()

	data, err := io.ReadAll(decompressor)
	if err != nil {
		return nil, fmt.Errorf("decompressing field: %w", err)
	}

	return data, nil
}

// WriteField compresses and uploads the named field object.
func (s *Store) WriteField(ctx context.Context, name string, data []byte) error {
	writer := s.bucket.Object(s.fieldKey(name)).NewWriter(ctx)

	compressor, err := s.codec.Writer(writer)
	if err != nil {
		writer.Close()
		return fmt.Errorf("creating compressor: %w", err)
	}
	if _, err := compressor.Write(data); err != nil {
		compressor.Close()
		writer.Close()
		return fmt.Errorf("compressing field: %w", err)
	}
	if err := compressor.Close(); err != nil {
		writer.Close()
		return fmt.Errorf("finishing compression: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("writing field: %w", err)
	}
	return nil
}

// List returns the names of all stored fields under the prefix, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	it := s.bucket.Objects(ctx, &storage.Query{Prefix: s.prefix})

	suffix := s.fileSuffix()
	var names []string
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing fields: %w", err)
		}
		if !strings.HasSuffix(attrs.Name, suffix) {
			continue
		}
		names = append(names, strings.TrimSuffix(strings.TrimPrefix(attrs.Name, s.prefix), suffix))
	}
	sort.Strings(names)
	return names, nil
}

// Close releases resources.
func (s *Store) Close() error {
	return s.client.Close()
}

// fieldKey returns the full object key for a field name.
func (s *Store) fieldKey(name string) string {
	return s.prefix + name + s.fileSuffix()
}

func (s *Store) fileSuffix() string {
	suffix := ".bts"
	if ext := s.codec.Extension(); ext != "" {
		suffix += "." + ext
	}
	return suffix
}
