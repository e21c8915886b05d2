package resolver

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Resolver evaluates algebraic expressions over an operand type T using a
// shunting-yard scan: a single left-to-right pass over the expression text,
// an explicit operator stack in place of recursion, and immediate
// application of an operator as soon as precedence says it must fire.
//
// A Resolver is built once (registering every unary/binary operator and
// function), then Resolve may be called concurrently from any number of
// goroutines: registration state is immutable after the first call, and
// each call gets independent scratch space from an internal pool.
type Resolver[T any] struct {
	algebra Algebra[T]

	unary     map[byte]OperatorInfo
	binary    map[byte]OperatorInfo
	functions map[string]OperatorInfo

	scratch *scratchPool[T]
	closed  atomic.Bool
}

// New builds a Resolver around algebra, which supplies operand construction
// and every operator/function's actual arithmetic.
func New[T any](algebra Algebra[T]) *Resolver[T] {
	return &Resolver[T]{
		algebra:   algebra,
		unary:     make(map[byte]OperatorInfo),
		binary:    make(map[byte]OperatorInfo),
		functions: make(map[string]OperatorInfo),
		scratch:   newScratchPool[T](),
	}
}

// AddUnary registers a prefix operator, e.g. unary minus. Unary operators
// are always right-associative and bind tighter than any binary operator.
func (r *Resolver[T]) AddUnary(token byte, name string) error {
	if r.closed.Load() {
		return ErrRegistrationClosed
	}
	if isReservedToken(token) {
		return fmt.Errorf("%w: %q", ErrReservedToken, token)
	}
	r.unary[token] = OperatorInfo{
		Token:      token,
		Name:       name,
		Arity:      Unary,
		Precedence: UnaryPrecedence,
		RightAssoc: true,
	}
	return nil
}

// AddBinary registers an infix operator at the given precedence band.
// Equal-precedence operators pop left-to-right unless rightAssoc is set.
func (r *Resolver[T]) AddBinary(token byte, name string, precedence uint8, rightAssoc bool) error {
	if r.closed.Load() {
		return ErrRegistrationClosed
	}
	if isReservedToken(token) {
		return fmt.Errorf("%w: %q", ErrReservedToken, token)
	}
	if precedence >= UnaryPrecedence {
		return fmt.Errorf("%w: binary precedence must be below unary band", ErrSyntax)
	}
	r.binary[token] = OperatorInfo{
		Token:      token,
		Name:       name,
		Arity:      Binary,
		Precedence: precedence,
		RightAssoc: rightAssoc,
	}
	return nil
}

// AddFunction registers a named call, e.g. "pow(a,b)" or "min(a,b,c,...)".
// Variadic functions accept any operand count of 1 or more.
func (r *Resolver[T]) AddFunction(name string, arity Arity) error {
	if r.closed.Load() {
		return ErrRegistrationClosed
	}
	if name == "" {
		return fmt.Errorf("%w: empty function name", ErrSyntax)
	}
	r.functions[name] = OperatorInfo{
		Name:       name,
		Arity:      arity,
		Precedence: FunctionPrecedence,
		isFunction: true,
	}
	return nil
}

// Resolve evaluates expr and returns the single reduced operand. The first
// call to Resolve permanently closes registration.
//
// A panic raised by algebra code partway through evaluation (a malformed
// FromNumber/FromName/ApplyUnary/ApplyBinary/ApplyFunction implementation)
// is recovered here and reported as an error rather than propagated: the
// scratch that call was using may be left in an inconsistent state, so it
// is discarded instead of being returned to the pool for reuse.
func (r *Resolver[T]) Resolve(expr string) (result T, err error) {
	r.closed.Store(true)

	var zero T
	sc := r.scratch.get()
	ops := sc.ops
	operands := sc.operands
	defer func() {
		if p := recover(); p != nil {
			result, err = zero, fmt.Errorf("%w: %v", ErrPanic, p)
			return
		}
		sc.ops = ops
		sc.operands = operands
		r.scratch.put(sc)
	}()

	n := len(expr)
	i := 0
	for i < n {
		for i < n && expr[i] == tokenSpace {
			i++
		}
		if i >= n {
			break
		}
		c := expr[i]

		if c == tokenLParen {
			ops = append(ops, stackOp{op: groupOperator, pos: i})
			i++
			continue
		}

		if c == tokenComma || c == tokenRParen {
			if c == tokenComma {
				if err := checkCommaPlacement(expr, i); err != nil {
					return zero, err
				}
			}
			found := false
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				if top.op.isGroup {
					found = true
					break
				}
				var err error
				if operands, err = r.apply(expr, top, operands); err != nil {
					return zero, err
				}
			}
			if !found {
				return zero, syntaxErrorf(expr, i, "%w", ErrUnbalancedGroup)
			}
			if c == tokenComma {
				ops = append(ops, stackOp{op: groupOperator, pos: i})
			} else if len(ops) > 0 && ops[len(ops)-1].op.isFunction {
				// The just-closed group belonged to a function call: the
				// function marker pushed right before that '(' is now
				// exposed on top of the stack and must fire too.
				top := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				var err error
				if operands, err = r.apply(expr, top, operands); err != nil {
					return zero, err
				}
			}
			i++
			continue
		}

		prefixPosition := r.isPrefixPosition(expr[:i])

		if prefixPosition {
			if info, ok := r.unary[c]; ok {
				var err error
				if ops, operands, err = r.popWhile(expr, ops, operands, info); err != nil {
					return zero, err
				}
				ops = append(ops, stackOp{op: info, pos: i})
				i++
				continue
			}
		} else if info, ok := r.binary[c]; ok {
			var err error
			if ops, operands, err = r.popWhile(expr, ops, operands, info); err != nil {
				return zero, err
			}
			ops = append(ops, stackOp{op: info, pos: i})
			i++
			continue
		}

		token, end := r.scanSubToken(expr, i)
		if token == "" {
			return zero, syntaxErrorf(expr, i, "unexpected character %q", c)
		}
		if v, ok := parseNumeric(token); ok {
			operands = append(operands, r.algebra.FromNumber(v))
			i = end
			continue
		}
		if info, ok := r.functions[token]; ok {
			ops = append(ops, stackOp{op: info, pos: i})
			i = end
			continue
		}
		if v, ok := r.algebra.FromName(token); ok {
			operands = append(operands, v)
			i = end
			continue
		}
		return zero, &PositionError{Expr: expr, Pos: i, Token: token, Err: fmt.Errorf("%w: %q", ErrUnknownName, token)}
	}

	for len(ops) > 0 {
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		if top.op.isGroup {
			return zero, syntaxErrorf(expr, top.pos, "%w", ErrUnmatchedParen)
		}
		var err error
		if operands, err = r.apply(expr, top, operands); err != nil {
			return zero, err
		}
	}

	switch len(operands) {
	case 0:
		return zero, fmt.Errorf("%w", ErrEmptyResult)
	case 1:
		return operands[0], nil
	default:
		return zero, fmt.Errorf("%w", ErrDanglingOperands)
	}
}

// isPrefixPosition reports whether the cursor sitting just past prespan is
// in operand-starting position: at the beginning of the expression, right
// after '(' or ',', or right after another operator token.
func (r *Resolver[T]) isPrefixPosition(prespan string) bool {
	prespan = strings.TrimRight(prespan, " ")
	if prespan == "" {
		return true
	}
	last := prespan[len(prespan)-1]
	if last == tokenLParen || last == tokenComma {
		return true
	}
	return r.isOperatorByte(last)
}

// checkCommaPlacement rejects a ',' that opens an argument list (nothing,
// or another comma, or '(' precedes it) rather than separating two
// expressions.
func checkCommaPlacement(expr string, pos int) error {
	prefix := strings.TrimRight(expr[:pos], " ")
	if prefix == "" {
		return syntaxErrorf(expr, pos, "%w", ErrUnexpectedComma)
	}
	last := prefix[len(prefix)-1]
	if last == tokenComma || last == tokenLParen {
		return syntaxErrorf(expr, pos, "%w", ErrUnexpectedComma)
	}
	return nil
}

// popWhile pops and applies operators while the top of the stack binds at
// least as tightly as incoming (strictly tighter, or equally tight when
// incoming is left-associative), then returns the updated stacks.
func (r *Resolver[T]) popWhile(expr string, ops []stackOp, operands []T, incoming OperatorInfo) ([]stackOp, []T, error) {
	for len(ops) > 0 {
		top := ops[len(ops)-1]
		if top.op.isGroup {
			break
		}
		pops := top.op.Precedence > incoming.Precedence ||
			(top.op.Precedence == incoming.Precedence && !incoming.RightAssoc)
		if !pops {
			break
		}
		ops = ops[:len(ops)-1]
		var err error
		if operands, err = r.apply(expr, top, operands); err != nil {
			return ops, operands, err
		}
	}
	return ops, operands, nil
}

// apply reduces the operands stack in place for a single popped operator.
func (r *Resolver[T]) apply(expr string, top stackOp, operands []T) ([]T, error) {
	op := top.op

	if op.isFunction {
		count, err := countFunctionArgs(expr, top.pos)
		if err != nil {
			return operands, &PositionError{Expr: expr, Pos: top.pos, Err: err}
		}
		if op.Arity != Variadic && int(op.Arity) != count {
			return operands, &PositionError{
				Expr: expr, Pos: top.pos,
				Err: fmt.Errorf("%s expects %d argument(s), got %d", op.Name, int(op.Arity), count),
			}
		}
		if op.Arity == Variadic && count < 1 {
			return operands, &PositionError{
				Expr: expr, Pos: top.pos,
				Err: fmt.Errorf("%s expects at least 1 argument, got %d", op.Name, count),
			}
		}
		if len(operands) < count {
			return operands, missingOperandErrorf(expr, top.pos, op.Name, count)
		}
		args := make([]T, count)
		copy(args, operands[len(operands)-count:])
		operands = operands[:len(operands)-count]
		result, err := r.algebra.ApplyFunction(op.Name, args)
		if err != nil {
			return operands, &PositionError{Expr: expr, Pos: top.pos, Err: err}
		}
		return append(operands, result), nil
	}

	if op.Arity == Unary {
		if len(operands) < 1 {
			return operands, missingOperandErrorf(expr, top.pos, string(op.Token), 1)
		}
		operand := operands[len(operands)-1]
		operands = operands[:len(operands)-1]
		result, err := r.algebra.ApplyUnary(op.Token, operand)
		if err != nil {
			return operands, &PositionError{Expr: expr, Pos: top.pos, Err: err}
		}
		return append(operands, result), nil
	}

	if len(operands) < 2 {
		return operands, missingOperandErrorf(expr, top.pos, string(op.Token), 2)
	}
	right := operands[len(operands)-1]
	left := operands[len(operands)-2]
	operands = operands[:len(operands)-2]
	result, err := r.algebra.ApplyBinary(op.Token, left, right)
	if err != nil {
		return operands, &PositionError{Expr: expr, Pos: top.pos, Err: err}
	}
	return append(operands, result), nil
}

// countFunctionArgs re-scans expr from the byte position at which a
// function name was pushed to find its call parentheses, tracking nesting
// depth so an inner call's commas are not mistaken for the outer call's.
func countFunctionArgs(expr string, namePos int) (int, error) {
	i := namePos
	for i < len(expr) && expr[i] != tokenLParen {
		i++
	}
	if i >= len(expr) {
		return 0, ErrUnknownFunction
	}

	j := i + 1
	for j < len(expr) && expr[j] == tokenSpace {
		j++
	}
	if j < len(expr) && expr[j] == tokenRParen {
		return 0, nil
	}

	depth := 0
	count := 0
	for ; i < len(expr); i++ {
		switch expr[i] {
		case tokenLParen:
			depth++
			if depth == 1 {
				count = 1
			}
		case tokenRParen:
			depth--
			if depth == 0 {
				return count, nil
			}
		case tokenComma:
			if depth == 1 {
				count++
			}
		}
	}
	return 0, ErrUnknownFunction
}

func (r *Resolver[T]) isOperatorByte(c byte) bool {
	if _, ok := r.unary[c]; ok {
		return true
	}
	if _, ok := r.binary[c]; ok {
		return true
	}
	return false
}

func (r *Resolver[T]) isSeekByte(c byte) bool {
	return isReservedToken(c) || r.isOperatorByte(c)
}

// scanSubToken reads the run of non-seek characters starting at start. If
// the byte that stopped the scan is itself a registered operator token, it
// peeks one character past it and rescans: this lets a signed exponent
// ("1e+7") survive being split at the '+' the way a bare "a+b" would be.
// The widened slice is only kept if it actually parses as a float.
func (r *Resolver[T]) scanSubToken(expr string, start int) (string, int) {
	i := start
	for i < len(expr) && !r.isSeekByte(expr[i]) {
		i++
	}
	if i < len(expr) && i > start && r.isOperatorByte(expr[i]) {
		j := i + 1
		for j < len(expr) && !r.isSeekByte(expr[j]) {
			j++
		}
		widened := expr[start:j]
		if _, ok := parseNumeric(widened); ok {
			return widened, j
		}
	}
	return expr[start:i], i
}
