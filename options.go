package turbts

import (
	"encoding/binary"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gustline/turbts/internal/codec"
	"github.com/gustline/turbts/internal/codec/gzipcodec"
	"github.com/gustline/turbts/internal/codec/noopcodec"
	"github.com/gustline/turbts/internal/codec/zstdcodec"
	"github.com/gustline/turbts/internal/manifest"
	"github.com/gustline/turbts/internal/stats"
	"github.com/gustline/turbts/internal/store"
	"github.com/gustline/turbts/internal/store/diskstore"
)

// Option configures Encode, Decode, and Archive.
type Option interface {
	apply(*options)
}

// options holds the resolved configuration.
type options struct {
	logger *zap.Logger
	stats  stats.Collector
	order  binary.ByteOrder

	// Encode-side settings.
	descriptor  string
	toolName    string
	toolVersion string
	now         func() time.Time

	// Archive-side settings.
	store store.Store
}

// defaultOptions returns the default configuration: little-endian byte
// order, no-op logger and stats, descriptor stamped by this library.
func defaultOptions() options {
	return options{
		logger:      zap.NewNop(),
		stats:       stats.NewNoop(),
		order:       binary.LittleEndian,
		toolName:    "turbts",
		toolVersion: Version,
		now:         time.Now,
	}
}

// optionFunc wraps a function to implement Option.
type optionFunc func(*options)

// Compile-time check that optionFunc implements Option.
var _ Option = optionFunc(nil)

func (f optionFunc) apply(o *options) { f(o) }

// WithLogger sets the logger.
// If not set, a no-op logger is used.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) {
		o.logger = l
	})
}

// WithStats sets the stats collector.
// If not set, a no-op collector is used.
func WithStats(c stats.Collector) Option {
	return optionFunc(func(o *options) {
		o.stats = c
	})
}

// WithByteOrder sets the byte order of the header and data block. The
// format historically used the producing platform's native order;
// little-endian is the default and the interoperable choice today. Both
// sides of an exchange must agree.
func WithByteOrder(order binary.ByteOrder) Option {
	return optionFunc(func(o *options) {
		o.order = order
	})
}

// WithDescriptor sets the verbatim descriptor text written after the
// header, replacing the generated "generated by <tool> ..." stamp.
// Decoders ignore descriptor content; it is documentation only.
func WithDescriptor(text string) Option {
	return optionFunc(func(o *options) {
		o.descriptor = text
	})
}

// WithTool sets the producing tool's name and version used in the
// generated descriptor stamp.
func WithTool(name, version string) Option {
	return optionFunc(func(o *options) {
		o.toolName = name
		o.toolVersion = version
	})
}

// WithStore sets the storage backend for an Archive.
func WithStore(s store.Store) Option {
	return optionFunc(func(o *options) {
		o.store = s
	})
}

// WithDataDir configures an Archive from a data directory. It reads the
// directory's manifest.json to pick the compression codec and byte order
// and creates a disk-backed store.
// This is the recommended way to open an existing local archive.
func WithDataDir(dir string) (Option, error) {
	m, err := manifest.Read(dir)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var c codec.Codec
	switch m.Compression {
	case "zstd":
		c = zstdcodec.New()
	case "gzip":
		c = gzipcodec.New()
	case "none", "":
		c = noopcodec.New()
	default:
		return nil, fmt.Errorf("unknown compression in manifest: %s", m.Compression)
	}

	var order binary.ByteOrder
	switch m.ByteOrder {
	case "little", "":
		order = binary.LittleEndian
	case "big":
		order = binary.BigEndian
	default:
		return nil, fmt.Errorf("unknown byte order in manifest: %s", m.ByteOrder)
	}

	st, err := diskstore.New(dir, c)
	if err != nil {
		return nil, fmt.Errorf("creating store: %w", err)
	}

	return optionFunc(func(o *options) {
		o.store = st
		o.order = order
	}), nil
}
