package memoryarchivefx_test

import (
	"testing"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/gustline/turbts"
	"github.com/gustline/turbts/fx/memoryarchivefx"
	"github.com/gustline/turbts/internal/store/memstore"
)

// The archive and the backing store must both resolve from one
// application graph, each from exactly one provider.
func TestModule_GraphResolves(t *testing.T) {
	err := fx.ValidateApp(
		fx.NopLogger,
		fx.Provide(zap.NewNop),
		memoryarchivefx.Module,
		fx.Invoke(func(a *turbts.Archive, s *memstore.Store) {}),
	)
	if err != nil {
		t.Errorf("fx.ValidateApp() error = %v", err)
	}
}
