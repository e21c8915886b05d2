package units

import "math"

// ExponentPrecision is P: base-unit exponents are stored as integers
// scaled by 10^P, giving three decimal digits of fractional-exponent
// precision (the smallest representable step is 0.001).
const ExponentPrecision = 3

const exponentScale = 1000 // 10^ExponentPrecision

// tolerance is the integer bound (in scaled-exponent units) below which
// two exponent vectors are deemed commensurable: 10, equivalent to 0.01 in
// fractional-exponent units.
const tolerance = 10

// simdWidth chunks the exponent-distance sum the way a SIMD-width
// subtract/abs/sum would; this is a plain Go loop over 8-lane blocks
// rather than an actual vector intrinsic.
const simdWidth = 8

// Info is the immutable canonical representation of a resolved unit
// expression: a vector of base-unit exponents (each scaled by 10^P) plus a
// linear conversion Value*Factor+Offset back to the base-unit combination.
type Info struct {
	exponents []int32
	Factor    float64
	Offset    float64
	name      string // canonical dictionary name, if this Info came from one
}

func newInfo(exponents []int32, factor, offset float64) Info {
	return Info{exponents: exponents, Factor: factor, Offset: offset}
}

// newNamedInfo is used only for values returned directly from a
// dictionary lookup; every derived value (the result of an operator or
// function application) loses the name, since it no longer corresponds
// to any single configured entry.
func newNamedInfo(name string, exponents []int32, factor, offset float64) Info {
	return Info{name: name, exponents: exponents, Factor: factor, Offset: offset}
}

// CanonicalName returns the dictionary name this Info was looked up
// under, and whether one exists. Derived values (sums, products, powers)
// have none.
func (i Info) CanonicalName() (string, bool) {
	return i.name, i.name != ""
}

// baseExponentVector returns the zero vector of the given dimension with
// position i scaled to represent an exponent of exactly 1.
func baseExponentVector(dimension, i int) []int32 {
	v := make([]int32, dimension)
	v[i] = exponentScale
	return v
}

// Exponents returns a defensive copy of the scaled base-unit exponent
// vector.
func (i Info) Exponents() []int32 {
	out := make([]int32, len(i.exponents))
	copy(out, i.exponents)
	return out
}

// Dimension returns the exponent vector's length, D.
func (i Info) Dimension() int { return len(i.exponents) }

func (i Info) isConstant() bool {
	for _, e := range i.exponents {
		if e != 0 {
			return false
		}
	}
	return true
}

// Commensurable reports whether i and other describe the same physical
// dimension within tolerance: the summed absolute difference of their
// scaled exponent vectors must not exceed 10.
func (i Info) Commensurable(other Info) bool {
	if len(i.exponents) != len(other.exponents) {
		return false
	}
	return exponentDistance(i.exponents, other.exponents) <= tolerance
}

func exponentDistance(a, b []int32) int64 {
	var total int64
	n := len(a)
	idx := 0
	for ; idx+simdWidth <= n; idx += simdWidth {
		for lane := 0; lane < simdWidth; lane++ {
			total += abs64(int64(a[idx+lane]) - int64(b[idx+lane]))
		}
	}
	for ; idx < n; idx++ {
		total += abs64(int64(a[idx]) - int64(b[idx]))
	}
	return total
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// ConversionTo computes the linear conversion (result = value*factor +
// offset) from i to other. other == nil means "already in base form" and
// yields (1, 0, nil).
func (i Info) ConversionTo(other *Info) (factor, offset float64, err error) {
	if other == nil {
		return 1, 0, nil
	}
	if !i.Commensurable(*other) {
		return 0, 0, ErrIncommensurable
	}
	factor = i.Factor / other.Factor
	offset = (i.Offset - other.Offset) / other.Factor
	return factor, offset, nil
}

// scaleExponents multiplies every exponent by factor and rounds to the
// nearest representable step using round-half-away-from-zero, per the
// power operator's rule for combining a unit exponent vector with a
// constant exponent.
func scaleExponents(exponents []int32, factor float64) ([]int32, error) {
	out := make([]int32, len(exponents))
	for idx, e := range exponents {
		scaled := roundHalfAwayFromZero(float64(e) * factor)
		if scaled > math.MaxInt32 || scaled < math.MinInt32 {
			return nil, ErrExponentOverflow
		}
		out[idx] = int32(scaled)
	}
	return out, nil
}

func roundHalfAwayFromZero(v float64) float64 {
	if v >= 0 {
		return math.Floor(v + 0.5)
	}
	return math.Ceil(v - 0.5)
}

func combineExponents(a, b []int32, sign int32) []int32 {
	out := make([]int32, len(a))
	for idx := range a {
		out[idx] = a[idx] + sign*b[idx]
	}
	return out
}
