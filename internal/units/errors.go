package units

import "fmt"

// Sentinel error kinds for the unit algebra and dictionary, wrapped with
// %w so callers can match with errors.Is/errors.As.
var (
	// ErrIncommensurable is raised by + and - between non-constant
	// operands whose exponent vectors are not within tolerance, and by
	// ConversionTo between non-commensurable units.
	ErrIncommensurable = fmt.Errorf("units must be commensurable")
	// ErrOffsetPower is raised when raising an offset-bearing unit to a
	// power.
	ErrOffsetPower = fmt.Errorf("units with offsets cannot be raised to a power")
	// ErrNonUnitaryPower is raised when the exponent operand of ^ is
	// itself not a plain constant.
	ErrNonUnitaryPower = fmt.Errorf("units can only be raised to a unitless power")
	// ErrOffsetMixing is raised when two offset-bearing operands are
	// combined, or an offset-bearing operand is combined with a
	// non-constant via * or /.
	ErrOffsetMixing = fmt.Errorf("units with offsets (e.g. degC, degF) should be converted to base (e.g. degK) or delta variants (delC, delF) before combining")
	// ErrExponentOverflow is raised when a scaled exponent no longer
	// fits the stored integer representation.
	ErrExponentOverflow = fmt.Errorf("exponent overflow")
	// ErrInvalidConfig is raised on malformed dictionary configuration:
	// an unresolvable seed expression, an operator/function this
	// algebra does not implement, or a structural config problem.
	ErrInvalidConfig = fmt.Errorf("invalid unit configuration")
	// ErrUnknownUnit decorates a dictionary lookup miss with the
	// original text and the failed sub-token.
	ErrUnknownUnit = fmt.Errorf("unrecognized unit expression")
)
