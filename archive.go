package turbts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/gustline/turbts/internal/stats"
	"github.com/gustline/turbts/internal/store"
)

// Archive provides access to a collection of encoded field files held in
// a storage backend, decoding on load and encoding on save with one
// shared configuration. An Archive is safe for concurrent use by
// multiple goroutines.
type Archive struct {
	cfg    options
	opts   []Option
	closed atomic.Bool
}

// NewArchive creates a new Archive with the given options. A store is
// required; see WithStore and WithDataDir.
func NewArchive(opts ...Option) (*Archive, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	if cfg.store == nil {
		return nil, ErrNoStore
	}

	cfg.logger.Debug("archive initialized",
		zap.String("store", fmt.Sprintf("%T", cfg.store)),
	)

	return &Archive{cfg: cfg, opts: opts}, nil
}

// Load fetches and decodes the named field.
// Returns ErrNotFound if the archive has no field by that name.
func (a *Archive) Load(ctx context.Context, name string) (*File, error) {
	if a.closed.Load() {
		return nil, ErrClosed
	}

	a.cfg.stats.IncCounter(stats.MetricLoads, 1)
	start := time.Now()

	data, err := a.cfg.store.ReadField(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return nil, fmt.Errorf("turbts: fetching field %q: %w", name, err)
	}

	file, err := Decode(bytes.NewReader(data), a.opts...)
	if err != nil {
		return nil, fmt.Errorf("turbts: decoding field %q: %w", name, err)
	}

	a.cfg.stats.ObserveHistogram(stats.MetricLoadSeconds, time.Since(start).Seconds())
	a.cfg.logger.Debug("loaded field",
		zap.String("name", name),
		zap.Duration("elapsed", time.Since(start)),
	)
	return file, nil
}

// Save encodes f and stores it under the given name, replacing any
// previous field by that name.
func (a *Archive) Save(ctx context.Context, name string, f *Field, g Grid) error {
	if a.closed.Load() {
		return ErrClosed
	}

	a.cfg.stats.IncCounter(stats.MetricSaves, 1)
	start := time.Now()

	var buf bytes.Buffer
	if err := Encode(&buf, f, g, a.opts...); err != nil {
		return fmt.Errorf("turbts: encoding field %q: %w", name, err)
	}
	if err := a.cfg.store.WriteField(ctx, name, buf.Bytes()); err != nil {
		return fmt.Errorf("turbts: storing field %q: %w", name, err)
	}

	a.cfg.stats.ObserveHistogram(stats.MetricSaveSeconds, time.Since(start).Seconds())
	a.cfg.logger.Debug("saved field",
		zap.String("name", name),
		zap.Int("bytes", buf.Len()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// List returns the names of all fields in the archive.
func (a *Archive) List(ctx context.Context) ([]string, error) {
	if a.closed.Load() {
		return nil, ErrClosed
	}
	return a.cfg.store.List(ctx)
}

// Store returns the storage backend used by this archive.
func (a *Archive) Store() store.Store {
	return a.cfg.store
}

// Close releases all resources associated with the archive.
// After Close, the archive should not be used.
func (a *Archive) Close() error {
	if !a.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	if err := a.cfg.store.Close(); err != nil {
		return fmt.Errorf("turbts: closing store: %w", err)
	}
	return nil
}
