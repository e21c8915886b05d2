package resolver

import "fmt"

// Sentinel error kinds. Wrap with fmt.Errorf("...: %w", Err*) so callers can
// use errors.Is/errors.As against them.
var (
	// ErrSyntax covers parenthesis/comma/operator placement violations.
	ErrSyntax = fmt.Errorf("syntax error")
	// ErrUnknownName is raised when a sub-token resolves to neither a
	// number, a function, nor a dictionary entry.
	ErrUnknownName = fmt.Errorf("unrecognized name")
	// ErrMissingOperand is raised when an operator has fewer operands on
	// the stack than its declared arity requires.
	ErrMissingOperand = fmt.Errorf("missing operand")
	// ErrNumericParse names the malformed-numeric-literal kind. Resolve
	// does not return it: a sub-token that does not parse as a number is
	// looked up as a name instead and, if absent, fails with ErrUnknownName.
	ErrNumericParse = fmt.Errorf("invalid numeric literal")
	// ErrRegistrationClosed is raised when AddUnary/AddBinary/AddFunction
	// is called after the first Resolve call.
	ErrRegistrationClosed = fmt.Errorf("resolver registration is closed")
	// ErrReservedToken is raised when a caller tries to register a
	// reserved token as an operator.
	ErrReservedToken = fmt.Errorf("token is reserved")
	// ErrUnbalancedGroup is raised on a ')' or ',' with no matching '('.
	ErrUnbalancedGroup = fmt.Errorf("no matching left parenthesis or comma")
	// ErrUnexpectedComma is raised on a ',' that does not separate two
	// expressions (a leading comma, or two commas in a row).
	ErrUnexpectedComma = fmt.Errorf("unexpected comma")
	// ErrEmptyResult is raised when a fully-reduced expression left no
	// operand on the stack (an empty or whitespace-only expression).
	ErrEmptyResult = fmt.Errorf("no variables found")
	// ErrDanglingOperands is raised when more than one operand remains on
	// the stack after every operator has been applied.
	ErrDanglingOperands = fmt.Errorf("variables remain on stack")
	// ErrUnknownFunction is raised when a function name is pushed but no
	// matching '(' follows it.
	ErrUnknownFunction = fmt.Errorf("malformed function call")
	// ErrUnmatchedParen is raised when a '(' is never closed.
	ErrUnmatchedParen = fmt.Errorf("missing right parenthesis")
	// ErrPanic is raised when Resolve recovers a panic from algebra code
	// (an operator, function, or name lookup) partway through evaluation.
	ErrPanic = fmt.Errorf("panic during resolve")
)

// PositionError decorates an error with the expression text and the byte
// offset at which the fault occurred, so user-visible messages can name
// the offending token and position.
type PositionError struct {
	Expr string
	Pos  int
	Err  error
	// Token is set only for ErrUnknownName failures: the sub-token text
	// that failed to resolve as a number, function, or dictionary entry.
	Token string
}

func (e *PositionError) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("%s: %v", e.Expr, e.Err)
	}
	return fmt.Sprintf("%s: %v at position %d", e.Expr, e.Err, e.Pos)
}

func (e *PositionError) Unwrap() error { return e.Err }

func syntaxErrorf(expr string, pos int, format string, args ...any) error {
	return &PositionError{Expr: expr, Pos: pos, Err: fmt.Errorf("%w: "+format, append([]any{ErrSyntax}, args...)...)}
}

func missingOperandErrorf(expr string, pos int, opName string, n int) error {
	return &PositionError{Expr: expr, Pos: pos, Err: fmt.Errorf("%w %d for %s", ErrMissingOperand, n, opName)}
}
