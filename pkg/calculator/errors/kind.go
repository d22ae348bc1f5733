// Package errors defines the calculator's error taxonomy.
//
// Every failure produced while parsing or evaluating an expression is
// returned as a value and can be classified with KindOf:
//   - Input errors: the user has to edit the expression (empty, syntax, unsupported)
//   - Domain errors: the expression is well formed but divides by zero
//   - Non-finite results: reported through the "Error" display text, not as a failure
package errors

import (
	"errors"
)

// Kind classifies a calculator error.
type Kind int

const (
	// KindNone indicates no error.
	KindNone Kind = iota

	// KindEmptyExpression indicates the input was blank after trimming.
	KindEmptyExpression

	// KindSyntax indicates the input does not conform to the grammar.
	// Examples: unmatched parenthesis, dangling operator, malformed number.
	KindSyntax

	// KindUnsupported indicates a construct outside the whitelist.
	// Examples: names, calls, comparisons, strings, collections.
	KindUnsupported

	// KindDivisionByZero indicates a division with a zero denominator.
	KindDivisionByZero

	// KindModuloByZero indicates a modulo with a zero denominator.
	KindModuloByZero

	// KindNonFinite indicates the result was NaN or infinite.
	KindNonFinite
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindEmptyExpression:
		return "empty_expression"
	case KindSyntax:
		return "syntax_error"
	case KindUnsupported:
		return "unsupported_construct"
	case KindDivisionByZero:
		return "division_by_zero"
	case KindModuloByZero:
		return "modulo_by_zero"
	case KindNonFinite:
		return "non_finite_result"
	default:
		return "unknown"
	}
}

// Sentinel errors. Typed errors unwrap to the matching sentinel so callers
// can use errors.Is without caring about position details.
var (
	// ErrEmptyExpression indicates the input was blank after trimming.
	ErrEmptyExpression = errors.New("empty expression")

	// ErrSyntax indicates the input does not conform to the grammar.
	ErrSyntax = errors.New("invalid expression")

	// ErrUnsupported indicates a construct outside the whitelist.
	ErrUnsupported = errors.New("unsupported construct")

	// ErrDivisionByZero indicates a division with a zero denominator.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrModuloByZero indicates a modulo with a zero denominator.
	ErrModuloByZero = errors.New("modulo by zero")

	// ErrNonFinite indicates the result was NaN or infinite.
	ErrNonFinite = errors.New("result is not a finite number")
)

// KindOf determines the kind of an error.
// Unknown non-nil errors are reported as KindSyntax, the kind the shell
// treats as "fix your input".
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}

	var synErr *SyntaxError
	if errors.As(err, &synErr) {
		return KindSyntax
	}

	var unsErr *UnsupportedError
	if errors.As(err, &unsErr) {
		return KindUnsupported
	}

	switch {
	case errors.Is(err, ErrEmptyExpression):
		return KindEmptyExpression
	case errors.Is(err, ErrSyntax):
		return KindSyntax
	case errors.Is(err, ErrUnsupported):
		return KindUnsupported
	case errors.Is(err, ErrDivisionByZero):
		return KindDivisionByZero
	case errors.Is(err, ErrModuloByZero):
		return KindModuloByZero
	case errors.Is(err, ErrNonFinite):
		return KindNonFinite
	}

	return KindSyntax
}

// IsInputError reports whether the user has to edit the expression.
func IsInputError(err error) bool {
	switch KindOf(err) {
	case KindEmptyExpression, KindSyntax, KindUnsupported:
		return true
	default:
		return false
	}
}

// IsDomainError reports whether a well-formed expression hit a zero denominator.
func IsDomainError(err error) bool {
	switch KindOf(err) {
	case KindDivisionByZero, KindModuloByZero:
		return true
	default:
		return false
	}
}
