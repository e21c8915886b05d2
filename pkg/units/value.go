// Package units is the public value-and-unit convenience layer: a numeric
// Amount paired with its resolved Unit, plus the conversions a caller
// actually wants to perform (convert to another unit, express as a
// time.Duration). The unit algebra itself lives in internal/units; this
// package is a thin caller-facing wrapper around it.
package units

import (
	"fmt"
	"time"

	"github.com/jci-public/numerics/internal/units"
)

// Value is an amount expressed in a resolved unit.
type Value struct {
	Amount float64
	Unit   units.Info
}

// ConvertTo returns the equivalent Value in target, or an error if Unit
// and target are not commensurable.
func (v Value) ConvertTo(target units.Info) (Value, error) {
	factor, offset, err := v.Unit.ConversionTo(&target)
	if err != nil {
		return Value{}, fmt.Errorf("converting %v: %w", v, err)
	}
	return Value{Amount: v.Amount*factor + offset, Unit: target}, nil
}

// Duration expresses v as a time.Duration by converting it into
// secondsUnit first. secondsUnit must be the caller's configured
// base-or-derived unit representing one second; Info itself carries no
// notion of which of its dimensions is "time", so the caller supplies it
// explicitly rather than this package guessing from dictionary contents.
func (v Value) Duration(secondsUnit units.Info) (time.Duration, error) {
	inSeconds, err := v.ConvertTo(secondsUnit)
	if err != nil {
		return 0, fmt.Errorf("expressing %v as a duration: %w", v, err)
	}
	return time.Duration(inSeconds.Amount * float64(time.Second)), nil
}

// String renders "<amount> <unit>", using the unit's canonical dictionary
// name when known.
func (v Value) String() string {
	if name, ok := v.Unit.CanonicalName(); ok {
		return fmt.Sprintf("%g %s", v.Amount, name)
	}
	return fmt.Sprintf("%g <unit>", v.Amount)
}
