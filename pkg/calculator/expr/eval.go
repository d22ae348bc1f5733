package expr

import (
	"fmt"
	"math"

	calcerrors "github.com/Mohamed-Elkiky/basic-calculator/pkg/calculator/errors"
)

// Eval evaluates an expression tree depth-first, left operand before right.
//
// Zero denominators for / and % fail with ErrDivisionByZero and
// ErrModuloByZero. Every other non-finite outcome is returned as a value.
func Eval(n Node) (float64, error) {
	switch n := n.(type) {
	case *Number:
		return n.Value, nil
	case *Unary:
		return evalUnary(n)
	case *Binary:
		return evalBinary(n)
	case nil:
		return 0, &calcerrors.UnsupportedError{Construct: "missing node"}
	default:
		return 0, &calcerrors.UnsupportedError{Construct: fmt.Sprintf("node %T", n)}
	}
}

func evalUnary(u *Unary) (float64, error) {
	v, err := Eval(u.Operand)
	if err != nil {
		return 0, err
	}
	switch u.Op {
	case OpNegate:
		return -v, nil
	case OpIdentity:
		return v, nil
	default:
		return 0, &calcerrors.UnsupportedError{Construct: fmt.Sprintf("unary operator %d", int(u.Op))}
	}
}

func evalBinary(b *Binary) (float64, error) {
	l, err := Eval(b.Left)
	if err != nil {
		return 0, err
	}
	r, err := Eval(b.Right)
	if err != nil {
		return 0, err
	}
	return apply(b.Op, l, r)
}

// apply computes l op r.
func apply(op BinaryOp, l, r float64) (float64, error) {
	switch op {
	case OpAdd:
		return l + r, nil
	case OpSub:
		return l - r, nil
	case OpMul:
		return l * r, nil
	case OpDiv:
		if r == 0 {
			return 0, calcerrors.ErrDivisionByZero
		}
		return l / r, nil
	case OpMod:
		if r == 0 {
			return 0, calcerrors.ErrModuloByZero
		}
		return math.Mod(l, r), nil
	case OpPow:
		return math.Pow(l, r), nil
	default:
		return 0, &calcerrors.UnsupportedError{Construct: fmt.Sprintf("binary operator %d", int(op))}
	}
}
