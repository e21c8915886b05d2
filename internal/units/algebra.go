package units

import (
	"fmt"
	"math"
)

// algebra implements resolver.Algebra[Info]. It carries a reference to the
// dictionary being built (or already frozen); Info itself stays a plain
// immutable value, so all state that lookups need lives here rather than
// on the operand type.
type algebra struct {
	dict *dictionary
}

func (a *algebra) FromNumber(value float64) Info {
	return newInfo(make([]int32, a.dict.dimension), value, 0)
}

func (a *algebra) FromName(name string) (Info, bool) {
	return a.dict.lookup(name)
}

func (a *algebra) ApplyUnary(token byte, operand Info) (Info, error) {
	switch token {
	case '+':
		return operand, nil
	case '-':
		// Negates both factor and offset. This composes strangely with
		// further multiplication of an offset-bearing result (see
		// SPEC_FULL.md §11), but it is the behavior the seed expressions rely
		// on, so it is kept exactly as specified.
		return newInfo(operand.Exponents(), -operand.Factor, -operand.Offset), nil
	default:
		return Info{}, fmt.Errorf("%w: unsupported unary operator %q", ErrInvalidConfig, string(token))
	}
}

func (a *algebra) ApplyBinary(token byte, left, right Info) (Info, error) {
	switch token {
	case '^':
		return applyPow(left, right)
	case '*':
		return applyMul(left, right)
	case '/':
		return applyDiv(left, right)
	case '+':
		return combineAdditive(left, right, 1)
	case '-':
		return combineAdditive(left, right, -1)
	default:
		return Info{}, fmt.Errorf("%w: unsupported binary operator %q", ErrInvalidConfig, string(token))
	}
}

func (a *algebra) ApplyFunction(name string, args []Info) (Info, error) {
	switch name {
	case "pow":
		return applyPow(args[0], args[1])
	default:
		return Info{}, fmt.Errorf("%w: unsupported function %q", ErrInvalidConfig, name)
	}
}

func rejectOffsetMixing(x, y Info) error {
	if x.Offset != 0 && y.Offset != 0 {
		return ErrOffsetMixing
	}
	return nil
}

func applyPow(x, y Info) (Info, error) {
	if !y.isConstant() {
		return Info{}, ErrNonUnitaryPower
	}
	if x.Offset != 0 {
		return Info{}, ErrOffsetPower
	}
	exponents, err := scaleExponents(x.exponents, y.Factor)
	if err != nil {
		return Info{}, err
	}
	return newInfo(exponents, math.Pow(x.Factor, y.Factor), 0), nil
}

func applyMul(x, y Info) (Info, error) {
	if err := rejectOffsetMixing(x, y); err != nil {
		return Info{}, err
	}
	if !(x.Offset == 0 || y.isConstant()) || !(y.Offset == 0 || x.isConstant()) {
		return Info{}, ErrOffsetMixing
	}
	exponents := combineExponents(x.exponents, y.exponents, 1)
	return newInfo(exponents, x.Factor*y.Factor, x.Offset+y.Offset), nil
}

func applyDiv(x, y Info) (Info, error) {
	if err := rejectOffsetMixing(x, y); err != nil {
		return Info{}, err
	}
	if !(x.Offset == 0 || y.isConstant()) || !(y.Offset == 0 || x.isConstant()) {
		return Info{}, ErrOffsetMixing
	}
	exponents := combineExponents(x.exponents, y.exponents, -1)
	return newInfo(exponents, x.Factor/y.Factor, x.Offset+y.Offset), nil
}

// combineAdditive implements both + (sign=1) and - (sign=-1) per the
// constant/non-constant truth table: both constant collapses to plain
// arithmetic; exactly one constant absorbs it into the non-constant side's
// offset; neither constant requires commensurability and combines factor
// and offset linearly, collapsing the offset to zero if the resulting
// factor is exactly zero (preserving the zero-unit identity).
func combineAdditive(x, y Info, sign float64) (Info, error) {
	if err := rejectOffsetMixing(x, y); err != nil {
		return Info{}, err
	}

	cx, cy := x.isConstant(), y.isConstant()
	switch {
	case cx && cy:
		return newInfo(x.Exponents(), x.Factor+sign*y.Factor, 0), nil
	case cy && !cx:
		return newInfo(x.Exponents(), x.Factor, x.Offset+sign*y.Factor), nil
	case cx && !cy:
		return newInfo(y.Exponents(), sign*y.Factor, sign*y.Offset+x.Factor), nil
	default:
		if !x.Commensurable(y) {
			return Info{}, ErrIncommensurable
		}
		factor := x.Factor + sign*y.Factor
		offset := x.Offset + sign*y.Offset
		if factor == 0 {
			offset = 0
		}
		return newInfo(x.Exponents(), factor, offset), nil
	}
}
