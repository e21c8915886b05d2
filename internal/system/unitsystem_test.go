package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jci-public/numerics/internal/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{
		BaseUnits: []string{"m", "kg", "s"},
		Units: map[string]string{
			"N": "kg*m/s^2",
		},
		SlidingExpiration:                 time.Hour,
		HighMemoryPressureThreshold:       90,
		HighMemoryPressureClearPercentage: 50,
	}
	return cfg
}

func TestNewBuildsUsableSystem(t *testing.T) {
	t.Parallel()
	s, err := New(testConfig(), nil)
	require.NoError(t, err)

	info, err := s.Resolve("N")
	require.NoError(t, err)
	assert.Equal(t, []int32{1000, 1000, -2000}, info.Exponents())
}

func TestResolveCachesAcrossCalls(t *testing.T) {
	t.Parallel()
	s, err := New(testConfig(), nil)
	require.NoError(t, err)

	_, err = s.Resolve("N")
	require.NoError(t, err)
	assert.Equal(t, 1, s.CacheLen())

	_, err = s.Resolve("N")
	require.NoError(t, err)
	assert.Equal(t, 1, s.CacheLen(), "second resolve of the same text must hit the cache")
}

func TestConfigureSwapsResolverAndClearsCache(t *testing.T) {
	t.Parallel()
	s, err := New(testConfig(), nil)
	require.NoError(t, err)

	_, err = s.Resolve("N")
	require.NoError(t, err)
	require.Equal(t, 1, s.CacheLen())

	newCfg := &config.Config{BaseUnits: []string{"m"}}
	require.NoError(t, s.Configure(newCfg))
	assert.Equal(t, 0, s.CacheLen(), "a fresh configuration starts with an empty cache")

	_, err = s.Resolve("N")
	assert.Error(t, err, "N is no longer defined after reconfiguration")
}

func TestClearEmptiesCacheWithoutReconfiguring(t *testing.T) {
	t.Parallel()
	s, err := New(testConfig(), nil)
	require.NoError(t, err)

	_, err = s.Resolve("N")
	require.NoError(t, err)
	s.Clear()
	assert.Equal(t, 0, s.CacheLen())

	_, err = s.Resolve("N")
	require.NoError(t, err, "the resolver itself must still be configured after Clear")
}

func TestMustResolvePanicsOnUnknownUnit(t *testing.T) {
	t.Parallel()
	s, err := New(testConfig(), nil)
	require.NoError(t, err)

	assert.Panics(t, func() { s.MustResolve("bogus") })
}

func TestOnExpirationTickIsNoOpBeforeConfiguration(t *testing.T) {
	t.Parallel()
	s := &UnitSystem{}

	assert.NotPanics(t, func() { s.OnExpirationTick(0) })
	assert.EqualValues(t, 1, s.TickCount(), "the counter still advances even when there is nothing to tick")
}

func TestConfigureIncrementsReconfigureCount(t *testing.T) {
	t.Parallel()
	s, err := New(testConfig(), nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, s.ReconfigureCount(), "New's initial build counts as the first configuration")

	require.NoError(t, s.Configure(testConfig()))
	assert.EqualValues(t, 2, s.ReconfigureCount())
}

func TestOnExpirationTickIncrementsTickCount(t *testing.T) {
	t.Parallel()
	s, err := New(testConfig(), nil)
	require.NoError(t, err)

	s.OnExpirationTick(0)
	s.OnExpirationTick(0)
	assert.EqualValues(t, 2, s.TickCount())
}

func TestPackageLevelDefaultSystemRoundTrips(t *testing.T) {
	require.NoError(t, Configure(testConfig()))

	info, err := Create("N")
	require.NoError(t, err)
	assert.Equal(t, []int32{1000, 1000, -2000}, info.Exponents())

	OnExpirationTick(0)
	assert.NotNil(t, Default())
}
