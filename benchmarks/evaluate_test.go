package benchmarks

import (
	"context"
	"strings"
	"testing"

	"github.com/Mohamed-Elkiky/basic-calculator/pkg/calculator"
	"github.com/Mohamed-Elkiky/basic-calculator/pkg/calculator/expr"
)

// BenchmarkParse_Simple parses a short expression.
func BenchmarkParse_Simple(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = expr.Parse("2+3*4")
	}
}

// BenchmarkParse_Long parses a 200-term sum.
func BenchmarkParse_Long(b *testing.B) {
	text := longSum(200)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = expr.Parse(text)
	}
}

// BenchmarkParse_Nested parses parentheses nested to the default limit.
func BenchmarkParse_Nested(b *testing.B) {
	text := strings.Repeat("(", expr.DefaultMaxDepth) + "1" + strings.Repeat(")", expr.DefaultMaxDepth)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = expr.Parse(text)
	}
}

// BenchmarkEval_Tree evaluates an already parsed tree.
func BenchmarkEval_Tree(b *testing.B) {
	tree, err := expr.Parse("(1+2)*3**2-10%4/0.5")
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = expr.Eval(tree)
	}
}

// BenchmarkEvaluateExpression runs the full parse, evaluate and format path.
func BenchmarkEvaluateExpression(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = calculator.EvaluateExpression("12×3÷8^2")
	}
}

// BenchmarkEvaluateExpression_Error measures the rejection path.
func BenchmarkEvaluateExpression_Error(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = calculator.EvaluateExpression("2*(3+pi)")
	}
}

// BenchmarkCalculator_Evaluate evaluates with no-op observability.
func BenchmarkCalculator_Evaluate(b *testing.B) {
	calc := calculator.New(calculator.WithLogger(nil))
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = calc.Evaluate(ctx, "(1+2)*3")
	}
}

// BenchmarkSession_Evaluate chains evaluations through a session.
func BenchmarkSession_Evaluate(b *testing.B) {
	s, err := calculator.NewSession(calculator.New(calculator.WithLogger(nil)))
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Clear()
		s.Append("2×3+1")
		_ = s.Evaluate(ctx)
	}
}

func longSum(terms int) string {
	parts := make([]string, terms)
	for i := range parts {
		parts[i] = "1.5"
	}
	return strings.Join(parts, "+")
}
