/*
Package calculator evaluates arithmetic expressions and keeps the state of a
calculator screen.

# Overview

EvaluateExpression is the core entry point. It accepts numbers, unary + and
-, the binary operators + - * / % and ** (or ^), and parentheses, and returns
a Result holding the value and its display text:

	res := calculator.EvaluateExpression("10 ÷ 4")
	fmt.Println(res.Display) // 2.5

	res = calculator.EvaluateExpression("5 % 0")
	fmt.Println(res.OK, res.Message) // false modulo by zero

Nothing outside that grammar is ever executed. Names, calls, comparisons and
every other construct are rejected with KindUnsupported.

# Non-finite Results

Expressions such as "0 ** -1" or "(-8) ** 0.5" evaluate without error to an
infinity or NaN. Such a Result has OK set, Display "Error" and NonFinite
returning true. Only zero denominators for / and % are failures.

# Calculator

Calculator adds structured logging, metrics and tracing:

	calc := calculator.New(
	    calculator.WithLogger(logger),
	    calculator.WithMetrics(true),
	    calculator.WithTracing(true),
	)
	res := calc.Evaluate(ctx, "2 ^ 10")

Metrics: calculator.evaluations, calculator.evaluation.errors,
calculator.evaluation.latency_ms, calculator.evaluation.non_finite and
calculator.history.writes. Each evaluation runs in a calculator.evaluate span.

# Session

Session models the screen: keys are pressed, the expression grows, and "="
evaluates it. A successful result replaces the expression so calculations
chain, becomes the answer inserted by ANS, and is added to a short history:

	s, err := calculator.NewSession(calc,
	    calculator.WithHistoryStore(store),
	    calculator.WithSessionID("desk"),
	)
	for _, k := range []string{"7", "×", "6", "="} {
	    s.Press(ctx, k)
	}
	fmt.Println(s.Screen(), s.Status()) // 42 7×6 =

With a history store the entries survive restarts; see package history.
*/
package calculator
