package units

import (
	"testing"

	"github.com/jci-public/numerics/internal/config"
	"github.com/jci-public/numerics/internal/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDimensionalConfig() *config.Config {
	return &config.Config{
		BaseUnits: []string{"m", "kg", "s", "K"},
		Prefixes: map[string]map[string]float64{
			"si": {"milli": 0.001, "kilo": 1000},
		},
		Units: map[string]string{
			"in":    "0.0254*m",
			"mm":    "0.001*m",
			"degC":  "K+273.15",
			"degF":  "K*(5/9)+255.37222222222223",
			"degR":  "K*(5/9)",
			"N":     "kg*m/s^2",
			"J":     "N*m",
			"W":     "J/s",
			"[si]g": "0.001*kg",
		},
	}
}

func mustBuildResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := NewResolver(testDimensionalConfig())
	require.NoError(t, err)
	return r
}

// assertSameValue compares the algebraic content of two Info values
// (exponents, factor, offset) while ignoring their dictionary name, since
// a dictionary lookup and an equivalent derived expression describe the
// same unit but only the former carries a canonical name.
func assertSameValue(t *testing.T, want, got Info) {
	t.Helper()
	assert.Equal(t, want.Exponents(), got.Exponents())
	assert.Equal(t, want.Factor, got.Factor)
	assert.Equal(t, want.Offset, got.Offset)
}

func TestBaseUnitResolvesToItsOwnAxis(t *testing.T) {
	t.Parallel()
	r := mustBuildResolver(t)

	info, err := r.Resolve("m")
	require.NoError(t, err)
	assert.Equal(t, []int32{1000, 0, 0, 0}, info.Exponents())
	assert.Equal(t, 1.0, info.Factor)
	assert.Equal(t, 0.0, info.Offset)
}

func TestDerivedUnitMatchesItsSeedExpression(t *testing.T) {
	t.Parallel()
	r := mustBuildResolver(t)

	viaName, err := r.Resolve("N")
	require.NoError(t, err)
	viaExpr, err := r.Resolve("kg*m/s^2")
	require.NoError(t, err)
	assertSameValue(t, viaName, viaExpr)
}

func TestPrefixExpansionInsertsScaledVariant(t *testing.T) {
	t.Parallel()
	r := mustBuildResolver(t)

	milli, err := r.Resolve("millig")
	require.NoError(t, err)
	kilo, err := r.Resolve("kilog")
	require.NoError(t, err)

	gram, err := r.Resolve("g")
	require.NoError(t, err)
	assert.InDelta(t, gram.Factor*0.001, milli.Factor, 1e-12)
	assert.InDelta(t, gram.Factor*1000, kilo.Factor, 1e-12)
}

func TestInchToMillimeterConversion(t *testing.T) {
	t.Parallel()
	r := mustBuildResolver(t)

	in, err := r.Resolve("in")
	require.NoError(t, err)
	mm, err := r.Resolve("mm")
	require.NoError(t, err)

	factor, offset, err := in.ConversionTo(&mm)
	require.NoError(t, err)
	assert.InDelta(t, 25.4, 1*factor+offset, 1e-9)
}

func TestFahrenheitToCelsiusConversion(t *testing.T) {
	t.Parallel()
	r := mustBuildResolver(t)

	f, err := r.Resolve("degF")
	require.NoError(t, err)
	c, err := r.Resolve("degC")
	require.NoError(t, err)

	factor, offset, err := f.ConversionTo(&c)
	require.NoError(t, err)
	assert.InDelta(t, 0, 32*factor+offset, 1e-9)
}

func TestJoulesPerSecondMatchesWatt(t *testing.T) {
	t.Parallel()
	r := mustBuildResolver(t)

	jps, err := r.Resolve("J/s")
	require.NoError(t, err)
	w, err := r.Resolve("W")
	require.NoError(t, err)

	factor, offset, err := jps.ConversionTo(&w)
	require.NoError(t, err)
	assert.InDelta(t, 1, factor, 1e-12)
	assert.InDelta(t, 0, offset, 1e-12)
}

func TestPowFunctionMatchesCaretOperator(t *testing.T) {
	t.Parallel()
	r := mustBuildResolver(t)

	fn, err := r.Resolve("pow(m,2)")
	require.NoError(t, err)
	caret, err := r.Resolve("m^2")
	require.NoError(t, err)
	product, err := r.Resolve("m*m")
	require.NoError(t, err)

	assert.Equal(t, fn, caret)
	assert.Equal(t, fn, product)
}

func TestPowNegativeExponent(t *testing.T) {
	t.Parallel()
	r := mustBuildResolver(t)

	info, err := r.Resolve("pow(m, -2)")
	require.NoError(t, err)
	assert.Equal(t, int32(-2000), info.Exponents()[0])
	assert.Equal(t, 1.0, info.Factor)
	assert.Equal(t, 0.0, info.Offset)
}

func TestOffsetUnitCannotBeRaisedToPower(t *testing.T) {
	t.Parallel()
	r := mustBuildResolver(t)

	_, err := r.Resolve("degC^2")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOffsetPower)
}

func TestUnmatchedLeftParenIsSyntaxError(t *testing.T) {
	t.Parallel()
	r := mustBuildResolver(t)

	_, err := r.Resolve("((m)")
	require.Error(t, err)
	assert.ErrorIs(t, err, resolver.ErrUnmatchedParen)
}

func TestIncommensurableUnitsCannotBeAdded(t *testing.T) {
	t.Parallel()
	r := mustBuildResolver(t)

	_, err := r.Resolve("m + s")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIncommensurable)
}

func TestUnknownNameSuggestsNearMatches(t *testing.T) {
	t.Parallel()
	r := mustBuildResolver(t)

	_, err := r.Resolve("degc")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownUnit)
	assert.Contains(t, err.Error(), "degC")
	assert.Contains(t, err.Error(), "degF", "the full sibling set sharing the deg- prefix must be suggested")
	assert.Contains(t, err.Error(), "degR", "the full sibling set sharing the deg- prefix must be suggested")
}

func TestDoubleNegationIsIdentity(t *testing.T) {
	t.Parallel()
	r := mustBuildResolver(t)

	x, err := r.Resolve("m")
	require.NoError(t, err)
	doubleNeg, err := r.Resolve("-(-m)")
	require.NoError(t, err)
	assertSameValue(t, x, doubleNeg)
}

func TestMulThenDivByOperandIsIdentity(t *testing.T) {
	t.Parallel()
	r := mustBuildResolver(t)

	a, err := r.Resolve("m")
	require.NoError(t, err)
	b, err := r.Resolve("s")
	require.NoError(t, err)
	roundTrip, err := r.Resolve("(m*s)/s")
	require.NoError(t, err)
	assertSameValue(t, a, roundTrip)
	_ = b
}

func TestFractionalExponentToleranceBoundary(t *testing.T) {
	t.Parallel()
	cfg := &config.Config{BaseUnits: []string{"m"}}
	r, err := NewResolver(cfg)
	require.NoError(t, err)

	close, err := r.Resolve("m^1.333")
	require.NoError(t, err)
	target, err := r.Resolve("m^(4/3)")
	require.NoError(t, err)
	assert.True(t, close.Commensurable(target))

	far, err := r.Resolve("m^1.3")
	require.NoError(t, err)
	assert.False(t, far.Commensurable(target))
}

func TestForwardReferenceAcrossUnitsResolvesRegardlessOfMapOrder(t *testing.T) {
	t.Parallel()
	cfg := &config.Config{
		BaseUnits: []string{"m", "kg", "s"},
		Units: map[string]string{
			"W": "J/s",
			"J": "N*m",
			"N": "kg*m/s^2",
		},
	}
	r, err := NewResolver(cfg)
	require.NoError(t, err)

	w, err := r.Resolve("W")
	require.NoError(t, err)
	direct, err := r.Resolve("kg*m^2/s^3")
	require.NoError(t, err)
	assertSameValue(t, direct, w)
}

func TestPrefixCollisionWithLaterBareUnitFallsBackToBracketedSpelling(t *testing.T) {
	t.Parallel()
	// "[p]n" sorts before "min" by config key, so the prefix-generated
	// candidate "min" (mi- + n) is built before the bare "min" unit is
	// ever processed. The bracket fallback must still trigger against
	// the dictionary's final bare-name set, not the partial state that
	// happened to exist when this one candidate was computed.
	cfg := &config.Config{
		BaseUnits: []string{"m"},
		Prefixes: map[string]map[string]float64{
			"p": {"mi": 0.001},
		},
		Units: map[string]string{
			"[p]n": "m",
			"min":  "60*m",
		},
	}
	r, err := NewResolver(cfg)
	require.NoError(t, err)

	minute, err := r.Resolve("min")
	require.NoError(t, err)
	assert.Equal(t, 60.0, minute.Factor, "the bare \"min\" unit must not be clobbered by the prefix expansion")

	bare, err := r.Resolve("n")
	require.NoError(t, err)
	assert.Equal(t, 1.0, bare.Factor)

	prefixed, err := r.Resolve("[mi]n")
	require.NoError(t, err, "the colliding prefix candidate must survive under its bracketed spelling")
	assert.Equal(t, 0.001, prefixed.Factor)
}

func TestGenuineForwardReferenceFailsConstruction(t *testing.T) {
	t.Parallel()
	cfg := &config.Config{
		BaseUnits: []string{"m"},
		Units: map[string]string{
			"a": "b*m",
		},
	}
	_, err := NewResolver(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
