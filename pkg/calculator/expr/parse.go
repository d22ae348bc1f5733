package expr

import (
	"fmt"

	calcerrors "github.com/Mohamed-Elkiky/basic-calculator/pkg/calculator/errors"
)

// operator describes an infix operator handled by the precedence loop.
// Exponentiation is not listed: it binds tighter than a leading sign and is
// parsed by parsePower.
type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// op is the node operator to build.
	op BinaryOp
}

// lowestPrec is the precedence required to parse an entire subexpression.
const lowestPrec int8 = 1

// binop gets the infix operator for a token. ok is false when the token is
// not one of + - * / %.
func binop(tok token) (operator, bool) {
	if tok.kind != tokenOp {
		return operator{}, false
	}
	switch tok.text {
	case "+":
		return operator{1, OpAdd}, true
	case "-":
		return operator{1, OpSub}, true
	case "*":
		return operator{2, OpMul}, true
	case "/":
		return operator{2, OpDiv}, true
	case "%":
		return operator{2, OpMod}, true
	default:
		return operator{}, false
	}
}

// parser holds the state of a single Parse call.
type parser struct {
	scan     *lexer
	tok      token
	depth    int
	maxDepth int
}

// parse parses a complete expression.
func parse(text string, maxDepth int) (Node, error) {
	p := &parser{scan: lex(text), maxDepth: maxDepth}
	if err := p.advance(); err != nil {
		return nil, err
	}
	n, err := p.parseBinary(lowestPrec)
	if err != nil {
		return nil, err
	}
	switch p.tok.kind {
	case tokenEOF:
		return n, nil
	case tokenClose:
		return nil, &calcerrors.SyntaxError{Col: p.tok.pos, Msg: "unmatched ')'"}
	default:
		return nil, &calcerrors.SyntaxError{Col: p.tok.pos, Msg: "invalid syntax"}
	}
}

// advance scans the next token into p.tok.
func (p *parser) advance() error {
	tok, err := p.scan.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// parseBinary parses operands joined by operators at least as binding as
// until. All operators in the loop are left-associative.
func (p *parser) parseBinary(until int8) (Node, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := binop(p.tok)
		if !ok || op.prec < until {
			return lhs, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseBinary(op.prec + 1)
		if err != nil {
			return nil, err
		}
		lhs = &Binary{Op: op.op, Left: lhs, Right: rhs}
	}
}

// nest enters one level of recursion, failing with msg at column pos once
// the depth limit is passed. Callers undo it with unnest on success.
func (p *parser) nest(pos int, msg string) error {
	p.depth++
	if p.maxDepth > 0 && p.depth > p.maxDepth {
		return &calcerrors.SyntaxError{Col: pos, Msg: msg}
	}
	return nil
}

func (p *parser) unnest() {
	p.depth--
}

// parseUnary parses any number of leading signs followed by a power.
// Each sign counts against the depth limit.
func (p *parser) parseUnary() (Node, error) {
	if p.tok.kind == tokenOp && (p.tok.text == "-" || p.tok.text == "+") {
		op := OpNegate
		if p.tok.text == "+" {
			op = OpIdentity
		}
		if err := p.nest(p.tok.pos, "expression nested too deeply"); err != nil {
			return nil, err
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		p.unnest()
		return &Unary{Op: op, Operand: operand}, nil
	}
	return p.parsePower()
}

// parsePower parses a primary optionally raised to a signed power.
// The exponent is parsed with parseUnary, which makes ** right-associative.
// Each ** counts against the depth limit.
func (p *parser) parsePower() (Node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.tok.kind == tokenOpen {
		return nil, &calcerrors.UnsupportedError{Col: p.tok.pos, Construct: "call"}
	}
	if p.tok.kind != tokenOp || p.tok.text != "**" {
		return base, nil
	}
	if err := p.nest(p.tok.pos, "expression nested too deeply"); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	p.unnest()
	return &Binary{Op: OpPow, Left: base, Right: exp}, nil
}

// parsePrimary parses a number or a parenthesized subexpression.
func (p *parser) parsePrimary() (Node, error) {
	tok := p.tok
	switch tok.kind {
	case tokenNum:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &Number{Value: tok.value}, nil
	case tokenOpen:
		return p.parseGroup()
	case tokenClose:
		return nil, &calcerrors.SyntaxError{Col: tok.pos, Msg: "unmatched ')'"}
	case tokenEOF:
		return nil, &calcerrors.SyntaxError{Col: tok.pos, Msg: "unexpected end of expression"}
	case tokenOp:
		return nil, &calcerrors.SyntaxError{Col: tok.pos, Msg: fmt.Sprintf("unexpected operator '%s'", tok.text)}
	default:
		return nil, &calcerrors.SyntaxError{Col: tok.pos, Msg: "invalid syntax"}
	}
}

// parseGroup parses '(' expr ')'. The current token is the open parenthesis.
func (p *parser) parseGroup() (Node, error) {
	open := p.tok
	if err := p.nest(open.pos, "too many nested parentheses"); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.kind == tokenClose {
		return nil, &calcerrors.UnsupportedError{Col: open.pos, Construct: "empty tuple '()'"}
	}
	inner, err := p.parseBinary(lowestPrec)
	if err != nil {
		return nil, err
	}
	switch p.tok.kind {
	case tokenClose:
	case tokenEOF:
		return nil, &calcerrors.SyntaxError{Col: open.pos, Msg: "'(' was never closed"}
	default:
		return nil, &calcerrors.SyntaxError{Col: p.tok.pos, Msg: "invalid syntax"}
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	p.unnest()
	return inner, nil
}
