// Package system layers a cache in front of an internal/units.Resolver and
// keeps the pair swappable under reconfiguration: one resolver instance
// per UnitSystem, rebuilt wholesale on config change, swapped via
// atomic.Pointer so resolution and reconfiguration can run concurrently.
package system

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/jci-public/numerics/internal/cache"
	"github.com/jci-public/numerics/internal/config"
	"github.com/jci-public/numerics/internal/units"
)

// state bundles a resolver with the cache built for it. Swapped as a unit
// so a reader never observes a resolver paired with another generation's
// cache.
type state struct {
	resolver *units.Resolver
	cache    *cache.Cache[units.Info]
	cfg      *config.Config
}

// UnitSystem is a cache-backed, reconfigurable unit resolution surface.
// The zero value is not usable; construct with New.
type UnitSystem struct {
	current atomic.Pointer[state]
	logger  *zap.Logger

	reconfigureCount atomic.Int64
	tickCount        atomic.Int64
}

// New builds a UnitSystem from cfg. logger may be nil, in which case a
// no-op logger is used.
func New(cfg *config.Config, logger *zap.Logger) (*UnitSystem, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &UnitSystem{logger: logger}
	if err := s.Configure(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// Configure builds a fresh resolver and cache from cfg and atomically
// swaps them in. In-flight Resolve calls against the previous generation
// complete normally against the old resolver; new calls observe cfg.
func (s *UnitSystem) Configure(cfg *config.Config) error {
	resolver, err := units.NewResolver(cfg)
	if err != nil {
		return fmt.Errorf("configuring unit system: %w", err)
	}
	next := &state{
		resolver: resolver,
		cache:    cache.New[units.Info](cfg.SlidingExpiration),
		cfg:      cfg,
	}
	s.current.Store(next)
	s.reconfigureCount.Add(1)
	return nil
}

// Resolve resolves text through the cache, populating it on a miss.
func (s *UnitSystem) Resolve(text string) (units.Info, error) {
	st := s.current.Load()
	if st == nil {
		return units.Info{}, fmt.Errorf("unit system not configured")
	}
	return st.cache.LookupOrResolve(text, func() (units.Info, error) {
		return st.resolver.Resolve(text)
	})
}

// MustResolve panics on error; for callers that prefer to fail fast.
func (s *UnitSystem) MustResolve(text string) units.Info {
	info, err := s.Resolve(text)
	if err != nil {
		panic(err)
	}
	return info
}

// Clear evicts every cached entry without changing the active resolver.
func (s *UnitSystem) Clear() {
	if st := s.current.Load(); st != nil {
		st.cache.Clear()
	}
}

// CacheLen reports the current cache entry count, for diagnostics.
func (s *UnitSystem) CacheLen() int {
	st := s.current.Load()
	if st == nil {
		return 0
	}
	return st.cache.Len()
}

// ReconfigureCount reports how many times Configure has swapped in a new
// resolver+cache generation, including the initial build performed by New.
func (s *UnitSystem) ReconfigureCount() int64 {
	return s.reconfigureCount.Load()
}

// TickCount reports how many expiration ticks OnExpirationTick has run,
// including ticks that ran before any configuration and were no-ops.
func (s *UnitSystem) TickCount() int64 {
	return s.tickCount.Load()
}

// OnExpirationTick drives one cache expiration pass, recovering and
// logging any panic so a single bad tick never stops future ones — the
// caller, not the tick, owns re-invocation.
func (s *UnitSystem) OnExpirationTick(memoryPressurePercent int) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic during cache expiration tick", zap.Any("recovered", r))
		}
	}()

	s.tickCount.Add(1)
	st := s.current.Load()
	if st == nil {
		return
	}
	st.cache.ExpirationTick(
		memoryPressurePercent,
		st.cfg.HighMemoryPressureThreshold,
		st.cfg.HighMemoryPressureClearPercentage,
	)
}
