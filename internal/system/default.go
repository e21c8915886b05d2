package system

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/jci-public/numerics/internal/config"
	"github.com/jci-public/numerics/internal/units"
)

var defaultSystem atomic.Pointer[UnitSystem]

// Configure (re)builds the package-level default UnitSystem from cfg. The
// first call constructs it; later calls reconfigure it in place.
func Configure(cfg *config.Config) error {
	if s := defaultSystem.Load(); s != nil {
		return s.Configure(cfg)
	}
	s, err := New(cfg, zap.NewNop())
	if err != nil {
		return err
	}
	defaultSystem.Store(s)
	return nil
}

// ConfigureWithLogger builds a new default UnitSystem from cfg that uses
// logger for expiration-tick panic reporting. Unlike Configure, it always
// replaces any existing default instance (and its counters) rather than
// reconfiguring it in place. Used by the CLI, which already constructs a
// production logger for its own diagnostics.
func ConfigureWithLogger(cfg *config.Config, logger *zap.Logger) error {
	s, err := New(cfg, logger)
	if err != nil {
		return err
	}
	defaultSystem.Store(s)
	return nil
}

// Create resolves text through the package-level default UnitSystem.
func Create(text string) (units.Info, error) {
	s := defaultSystem.Load()
	if s == nil {
		return units.Info{}, fmt.Errorf("unit system not configured: call system.Configure first")
	}
	return s.Resolve(text)
}

// MustCreate is Create, panicking on error.
func MustCreate(text string) units.Info {
	info, err := Create(text)
	if err != nil {
		panic(err)
	}
	return info
}

// OnExpirationTick drives the default UnitSystem's cache expiration pass.
// A no-op if the system has not been configured yet.
func OnExpirationTick(memoryPressurePercent int) {
	if s := defaultSystem.Load(); s != nil {
		s.OnExpirationTick(memoryPressurePercent)
	}
}

// Default returns the package-level UnitSystem, or nil if Configure has
// never been called.
func Default() *UnitSystem {
	return defaultSystem.Load()
}
