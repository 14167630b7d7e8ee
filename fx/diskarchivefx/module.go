// Package diskarchivefx provides an fx module for a disk-backed field archive.
package diskarchivefx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/gustline/turbts"
	"github.com/gustline/turbts/internal/codec/zstdcodec"
	"github.com/gustline/turbts/internal/stats"
	"github.com/gustline/turbts/internal/stats/logger"
	"github.com/gustline/turbts/internal/store/cachedstore"
	"github.com/gustline/turbts/internal/store/cachedstore/cachestrategy/lru"
	"github.com/gustline/turbts/internal/store/cachedstore/memory"
	"github.com/gustline/turbts/internal/store/diskstore"
)

// Config holds configuration for the disk-backed archive.
type Config struct {
	// DataDir is the directory holding the encoded fields.
	DataDir string

	// CacheSize is the number of decoded fields to cache in memory.
	// Default is 32.
	CacheSize int
}

// Module provides a disk-backed *turbts.Archive.
// Requires a *zap.Logger to be provided.
var Module = fx.Module("diskarchive",
	fx.Provide(
		newStatsCollector,
		newArchive,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("turbts.stats"))
}

// Params holds dependencies for creating the archive.
type Params struct {
	fx.In

	Config    Config
	Logger    *zap.Logger
	Collector stats.Collector
	Lifecycle fx.Lifecycle
}

// Result holds the provided archive.
type Result struct {
	fx.Out

	Archive *turbts.Archive
}

func newArchive(p Params) (Result, error) {
	cacheSize := p.Config.CacheSize
	if cacheSize <= 0 {
		cacheSize = 32
	}

	baseStore, err := diskstore.New(p.Config.DataDir, zstdcodec.New())
	if err != nil {
		return Result{}, err
	}

	lruStrategy, err := lru.New(cacheSize)
	if err != nil {
		return Result{}, err
	}

	st := cachedstore.New(baseStore, memory.New(lruStrategy, p.Collector))

	archive, err := turbts.NewArchive(
		turbts.WithStore(st),
		turbts.WithStats(p.Collector),
		turbts.WithLogger(p.Logger.Named("turbts")),
	)
	if err != nil {
		return Result{}, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return archive.Close()
		},
	})

	return Result{Archive: archive}, nil
}
