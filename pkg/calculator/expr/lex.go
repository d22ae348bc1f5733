package expr

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	calcerrors "github.com/Mohamed-Elkiky/basic-calculator/pkg/calculator/errors"
)

type token struct {
	text  string
	kind  tokenKind
	pos   int
	value float64
}

func (t token) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is a real number literal.
	tokenNum
	// tokenOp is one of + - * / % **. A caret scans as **.
	tokenOp
	// tokenOpen is an open parenthesis.
	tokenOpen
	// tokenClose is a close parenthesis.
	tokenClose
)

func (k tokenKind) String() string {
	switch k {
	case tokenEOF:
		return "EOF"
	case tokenNum:
		return "Num"
	case tokenOp:
		return "Op"
	case tokenOpen:
		return "Open"
	case tokenClose:
		return "Close"
	default:
		return "None"
	}
}

// unsupportedOps contains runes that start operators from richer expression
// languages: comparisons, boolean and bitwise operators, matrix product.
const unsupportedOps = "<>=!&|~@"

// lexer scans tokens from an expression. pos counts runes from 1.
type lexer struct {
	src string
	off int
	pos int
}

func lex(src string) *lexer {
	return &lexer{src: src, pos: 1}
}

// peekRune returns the rune at the current offset without consuming it.
func (l *lexer) peekRune() (rune, int) {
	if l.off >= len(l.src) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(l.src[l.off:])
}

// peekRuneAt returns the rune n bytes past the current offset.
func (l *lexer) peekRuneAt(n int) rune {
	if l.off+n >= len(l.src) {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.off+n:])
	return r
}

func (l *lexer) advance(sz int) {
	l.off += sz
	l.pos++
}

// next scans the next token. At the end of input it returns a tokenEOF
// token, repeatedly if called again.
func (l *lexer) next() (token, error) {
	for {
		r, sz := l.peekRune()
		if sz == 0 {
			return token{kind: tokenEOF, pos: l.pos}, nil
		}
		if !unicode.IsSpace(r) {
			break
		}
		l.advance(sz)
	}

	tok := token{pos: l.pos}
	r, sz := l.peekRune()
	switch {
	case isDigit(r), r == '.' && isDigit(l.peekRuneAt(1)):
		return l.scanNum()
	case r == '_', unicode.IsLetter(r):
		name := l.scanIdent()
		return tok, &calcerrors.UnsupportedError{Col: tok.pos, Construct: fmt.Sprintf("name '%s'", name)}
	case r == '(':
		l.advance(sz)
		tok.kind, tok.text = tokenOpen, "("
		return tok, nil
	case r == ')':
		l.advance(sz)
		tok.kind, tok.text = tokenClose, ")"
		return tok, nil
	case r == '*':
		l.advance(sz)
		tok.kind, tok.text = tokenOp, "*"
		if r2, sz2 := l.peekRune(); r2 == '*' {
			l.advance(sz2)
			tok.text = "**"
		}
		return tok, nil
	case r == '^':
		l.advance(sz)
		tok.kind, tok.text = tokenOp, "**"
		return tok, nil
	case r == '/':
		if l.peekRuneAt(1) == '/' {
			return tok, &calcerrors.UnsupportedError{Col: tok.pos, Construct: "operator '//'"}
		}
		l.advance(sz)
		tok.kind, tok.text = tokenOp, "/"
		return tok, nil
	case r == '+', r == '-', r == '%':
		l.advance(sz)
		tok.kind, tok.text = tokenOp, string(r)
		return tok, nil
	case strings.ContainsRune(unsupportedOps, r):
		op := string(r)
		if r2 := l.peekRuneAt(sz); r2 != utf8.RuneError && strings.ContainsRune(unsupportedOps, r2) {
			op += string(r2)
		}
		return tok, &calcerrors.UnsupportedError{Col: tok.pos, Construct: fmt.Sprintf("operator '%s'", op)}
	case r == '\'', r == '"':
		return tok, &calcerrors.UnsupportedError{Col: tok.pos, Construct: "string literal"}
	case r == '[', r == ']', r == '{', r == '}':
		return tok, &calcerrors.UnsupportedError{Col: tok.pos, Construct: fmt.Sprintf("collection bracket '%c'", r)}
	case r == ',':
		return tok, &calcerrors.UnsupportedError{Col: tok.pos, Construct: "separator ','"}
	case r == '.':
		return tok, &calcerrors.SyntaxError{Col: tok.pos, Msg: "invalid syntax"}
	case r == utf8.RuneError && sz == 1:
		return tok, &calcerrors.SyntaxError{Col: tok.pos, Msg: "invalid UTF-8 encoding"}
	default:
		return tok, &calcerrors.SyntaxError{Col: tok.pos, Msg: fmt.Sprintf("invalid character '%c' (U+%04X)", r, r)}
	}
}

// scanNum scans a real number literal. The current rune is a digit or a dot
// followed by a digit.
func (l *lexer) scanNum() (token, error) {
	tok := token{kind: tokenNum, pos: l.pos}
	start := l.off
	l.digits()
	if r, sz := l.peekRune(); r == '.' {
		l.advance(sz)
		l.digits()
	}
	if r, sz := l.peekRune(); r == 'e' || r == 'E' {
		l.advance(sz)
		if r, sz := l.peekRune(); r == '+' || r == '-' {
			l.advance(sz)
		}
		if r, _ := l.peekRune(); !isDigit(r) {
			return tok, &calcerrors.SyntaxError{Col: tok.pos, Msg: "invalid decimal literal"}
		}
		l.digits()
	}
	tok.text = l.src[start:l.off]

	// A literal running straight into a name character is either an
	// imaginary literal or garbage like "1a".
	if r, _ := l.peekRune(); r == '_' || unicode.IsLetter(r) || isDigit(r) {
		if (r == 'j' || r == 'J') && !isIdentRune(l.peekRuneAt(1)) {
			return tok, &calcerrors.UnsupportedError{Col: tok.pos, Construct: fmt.Sprintf("imaginary literal '%sj'", tok.text)}
		}
		return tok, &calcerrors.SyntaxError{Col: tok.pos, Msg: "invalid decimal literal"}
	}

	v, err := strconv.ParseFloat(tok.text, 64)
	if err != nil {
		// Out-of-range literals overflow to ±Inf like any other float64
		// operation; ParseFloat reports that as ErrRange with the value set.
		if numErr, ok := err.(*strconv.NumError); !ok || numErr.Err != strconv.ErrRange {
			return tok, &calcerrors.SyntaxError{Col: tok.pos, Msg: "invalid decimal literal"}
		}
	}
	tok.value = v
	return tok, nil
}

func (l *lexer) digits() {
	for {
		r, sz := l.peekRune()
		if !isDigit(r) {
			return
		}
		l.advance(sz)
	}
}

func (l *lexer) scanIdent() string {
	start := l.off
	for {
		r, sz := l.peekRune()
		if sz == 0 || !isIdentRune(r) {
			return l.src[start:l.off]
		}
		l.advance(sz)
	}
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
