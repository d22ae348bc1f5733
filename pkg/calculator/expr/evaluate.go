package expr

import (
	"strings"

	calcerrors "github.com/Mohamed-Elkiky/basic-calculator/pkg/calculator/errors"
)

// DefaultMaxDepth is the default nesting limit. Parentheses, leading signs
// and ** each add a level.
const DefaultMaxDepth = 200

// Evaluator parses and evaluates expressions with a fixed configuration.
// It holds no per-call state and is safe for concurrent use.
type Evaluator struct {
	maxDepth int
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithMaxDepth limits how deeply parentheses, signs and powers may nest.
// Zero or a negative value removes the limit.
// Default: DefaultMaxDepth
func WithMaxDepth(n int) Option {
	return func(e *Evaluator) {
		e.maxDepth = n
	}
}

// New creates a new Evaluator with the given options.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Parse turns an expression into a tree.
//
// Surrounding whitespace is ignored and ^ is accepted as a synonym for **.
// Returns ErrEmptyExpression for blank input, *SyntaxError for malformed
// input and *UnsupportedError for constructs outside the grammar.
func (e *Evaluator) Parse(text string) (Node, error) {
	if strings.TrimSpace(text) == "" {
		return nil, calcerrors.ErrEmptyExpression
	}
	return parse(text, e.maxDepth)
}

// Evaluate parses and evaluates an expression.
func (e *Evaluator) Evaluate(text string) (float64, error) {
	n, err := e.Parse(text)
	if err != nil {
		return 0, err
	}
	return Eval(n)
}

// defaultEvaluator backs the package-level convenience functions.
var defaultEvaluator = New()

// Parse turns an expression into a tree using the default evaluator.
func Parse(text string) (Node, error) {
	return defaultEvaluator.Parse(text)
}

// Evaluate is a convenience function that parses and evaluates an
// expression using the default evaluator.
func Evaluate(text string) (float64, error) {
	return defaultEvaluator.Evaluate(text)
}
