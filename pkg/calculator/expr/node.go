package expr

import (
	"strconv"
	"strings"
)

// Node is a node in an expression tree.
// The only implementations are *Number, *Unary and *Binary.
type Node interface {
	// String renders the subtree in fully parenthesized internal form.
	String() string

	node()
}

// UnaryOp identifies a unary operation.
type UnaryOp int

const (
	OpNegate UnaryOp = iota
	OpIdentity
)

// String returns the operator symbol.
func (op UnaryOp) String() string {
	switch op {
	case OpNegate:
		return "-"
	case OpIdentity:
		return "+"
	default:
		return "?"
	}
}

// BinaryOp identifies a binary operation.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
)

// String returns the operator symbol in internal form.
func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpPow:
		return "**"
	default:
		return "?"
	}
}

// Number is a numeric literal.
type Number struct {
	Value float64
}

// Unary applies a sign to its operand.
type Unary struct {
	Op      UnaryOp
	Operand Node
}

// Binary applies an infix operator to two operands.
type Binary struct {
	Op          BinaryOp
	Left, Right Node
}

func (*Number) node() {}
func (*Unary) node()  {}
func (*Binary) node() {}

func (n *Number) String() string {
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

func (u *Unary) String() string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(u.Op.String())
	b.WriteString(nodeString(u.Operand))
	b.WriteByte(')')
	return b.String()
}

func (b *Binary) String() string {
	var s strings.Builder
	s.WriteByte('(')
	s.WriteString(nodeString(b.Left))
	s.WriteByte(' ')
	s.WriteString(b.Op.String())
	s.WriteByte(' ')
	s.WriteString(nodeString(b.Right))
	s.WriteByte(')')
	return s.String()
}

// nodeString renders a possibly nil child.
func nodeString(n Node) string {
	if n == nil {
		return "<nil>"
	}
	return n.String()
}
