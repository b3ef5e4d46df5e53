package expr

import (
	"errors"
	"fmt"
	"math"

	"github.com/Aidix21/Conf-SH-A-R-Pr4/value"
)

var (
	errDivZero  = errors.New("division by zero")
	errOverflow = errors.New("integer overflow")
)

// operands splits a binary operation into the integer fast path or the
// float path. Tables are rejected.
func operands(op string, a, b value.Value) (ai, bi int64, af, bf float64, ints bool, err error) {
	switch x := a.(type) {
	case value.Int:
		ai, af = int64(x), float64(x)
	case value.Float:
		af = float64(x)
	default:
		return 0, 0, 0, 0, false, badOperands(op, a, b)
	}
	switch y := b.(type) {
	case value.Int:
		bi, bf = int64(y), float64(y)
	case value.Float:
		bf = float64(y)
	default:
		return 0, 0, 0, 0, false, badOperands(op, a, b)
	}
	_, aInt := a.(value.Int)
	_, bInt := b.(value.Int)
	return ai, bi, af, bf, aInt && bInt, nil
}

func badOperands(op string, a, b value.Value) error {
	return fmt.Errorf("unsupported operand type(s) for %s: '%s' and '%s'", op, value.TypeName(a), value.TypeName(b))
}

func add(a, b value.Value) (value.Value, error) {
	ai, bi, af, bf, ints, err := operands("+", a, b)
	if err != nil {
		return nil, err
	}
	if !ints {
		return value.Float(af + bf), nil
	}
	s := ai + bi
	if (s > ai) != (bi > 0) {
		return nil, errOverflow
	}
	return value.Int(s), nil
}

func sub(a, b value.Value) (value.Value, error) {
	ai, bi, af, bf, ints, err := operands("-", a, b)
	if err != nil {
		return nil, err
	}
	if !ints {
		return value.Float(af - bf), nil
	}
	d := ai - bi
	if (d < ai) != (bi > 0) {
		return nil, errOverflow
	}
	return value.Int(d), nil
}

func mul(a, b value.Value) (value.Value, error) {
	ai, bi, af, bf, ints, err := operands("*", a, b)
	if err != nil {
		return nil, err
	}
	if !ints {
		return value.Float(af * bf), nil
	}
	if ai == 0 || bi == 0 {
		return value.Int(0), nil
	}
	p := ai * bi
	if p/bi != ai || (ai == -1 && bi == math.MinInt64) || (bi == -1 && ai == math.MinInt64) {
		return nil, errOverflow
	}
	return value.Int(p), nil
}

// div divides exactly when both sides are integers and the quotient is
// whole; otherwise it falls back to floating-point division.
func div(a, b value.Value) (value.Value, error) {
	ai, bi, af, bf, ints, err := operands("/", a, b)
	if err != nil {
		return nil, err
	}
	if bf == 0 {
		return nil, errDivZero
	}
	if ints && ai%bi == 0 {
		if ai == math.MinInt64 && bi == -1 {
			return nil, errOverflow
		}
		return value.Int(ai / bi), nil
	}
	return value.Float(af / bf), nil
}

func neg(v value.Value) (value.Value, error) {
	switch x := v.(type) {
	case value.Int:
		if x == math.MinInt64 {
			return nil, errOverflow
		}
		return -x, nil
	case value.Float:
		return -x, nil
	}
	return nil, fmt.Errorf("bad operand type for unary -: '%s'", value.TypeName(v))
}

func pos(v value.Value) (value.Value, error) {
	switch v.(type) {
	case value.Int, value.Float:
		return v, nil
	}
	return nil, fmt.Errorf("bad operand type for unary +: '%s'", value.TypeName(v))
}

func abs(v value.Value) (value.Value, error) {
	switch x := v.(type) {
	case value.Int:
		if x < 0 {
			return neg(x)
		}
		return x, nil
	case value.Float:
		return value.Float(math.Abs(float64(x))), nil
	}
	return nil, fmt.Errorf("bad operand type for abs(): '%s'", value.TypeName(v))
}
