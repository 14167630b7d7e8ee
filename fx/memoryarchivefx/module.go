// Package memoryarchivefx provides an fx module for an in-memory field archive.
// Useful for testing.
package memoryarchivefx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/gustline/turbts"
	"github.com/gustline/turbts/internal/stats"
	"github.com/gustline/turbts/internal/stats/logger"
	"github.com/gustline/turbts/internal/store/memstore"
)

// Module provides an in-memory *turbts.Archive for testing.
// Requires a *zap.Logger to be provided.
var Module = fx.Module("memoryarchive",
	fx.Provide(
		newStatsCollector,
		newMemStore,
		newArchive,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("turbts.stats"))
}

func newMemStore() *memstore.Store {
	return memstore.New()
}

// Params holds dependencies for creating the archive.
type Params struct {
	fx.In

	Logger    *zap.Logger
	Collector stats.Collector
	Store     *memstore.Store
	Lifecycle fx.Lifecycle
}

// Result holds the provided archive. The *memstore.Store is provided
// separately by the module for test setup; providing it here as well
// would duplicate it in the graph.
type Result struct {
	fx.Out

	Archive *turbts.Archive
}

func newArchive(p Params) (Result, error) {
	archive, err := turbts.NewArchive(
		turbts.WithStore(p.Store),
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
