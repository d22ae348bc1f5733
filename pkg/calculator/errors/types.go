package errors

import "fmt"

// Positioned is an error that knows where in the input it occurred.
// Pos is the 1-based rune column of the offending token.
type Positioned interface {
	error
	Pos() int
}

// SyntaxError indicates the input does not conform to the grammar.
type SyntaxError struct {
	// Col is the 1-based rune column of the offending token.
	Col int
	// Msg describes the cause, e.g. "'(' was never closed".
	Msg string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.Col > 0 {
		return fmt.Sprintf("invalid expression: %s (column %d)", e.Msg, e.Col)
	}
	return fmt.Sprintf("invalid expression: %s", e.Msg)
}

// Pos returns the column of the error.
func (e *SyntaxError) Pos() int {
	return e.Col
}

// Unwrap returns ErrSyntax for errors.Is support.
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// UnsupportedError indicates a construct that a general expression language
// would accept but the calculator grammar does not.
type UnsupportedError struct {
	// Col is the 1-based rune column of the construct.
	Col int
	// Construct names what was found, e.g. "name 'pi'" or "operator '<'".
	Construct string
}

// Error implements the error interface.
func (e *UnsupportedError) Error() string {
	if e.Col > 0 {
		return fmt.Sprintf("unsupported construct: %s (column %d)", e.Construct, e.Col)
	}
	return fmt.Sprintf("unsupported construct: %s", e.Construct)
}

// Pos returns the column of the error.
func (e *UnsupportedError) Pos() int {
	return e.Col
}

// Unwrap returns ErrUnsupported for errors.Is support.
func (e *UnsupportedError) Unwrap() error {
	return ErrUnsupported
}

var (
	_ Positioned = (*SyntaxError)(nil)
	_ Positioned = (*UnsupportedError)(nil)
)
