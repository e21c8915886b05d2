package units

import "github.com/jci-public/numerics/internal/resolver"

// registerOperators wires the full operator table onto a freshly
// constructed engine: unary +/-; binary ^ (precedence 4,
// right-associative), */÷ (precedence 3, left-associative), +/- (precedence
// 2, left-associative); one function, pow(base, exponent), aliased to the
// same semantics as ^.
func registerOperators(engine *resolver.Resolver[Info]) error {
	for _, op := range []struct {
		token byte
		name  string
	}{
		{'+', "unary plus"},
		{'-', "unary minus"},
	} {
		if err := engine.AddUnary(op.token, op.name); err != nil {
			return err
		}
	}

	for _, op := range []struct {
		token      byte
		name       string
		precedence uint8
		rightAssoc bool
	}{
		{'^', "power", 4, true},
		{'*', "multiply", 3, false},
		{'/', "divide", 3, false},
		{'+', "add", 2, false},
		{'-', "subtract", 2, false},
	} {
		if err := engine.AddBinary(op.token, op.name, op.precedence, op.rightAssoc); err != nil {
			return err
		}
	}

	return engine.AddFunction("pow", resolver.Binary)
}
