package calculator

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Mohamed-Elkiky/basic-calculator/pkg/calculator/display"
	calcerrors "github.com/Mohamed-Elkiky/basic-calculator/pkg/calculator/errors"
	"github.com/Mohamed-Elkiky/basic-calculator/pkg/calculator/expr"
	"github.com/Mohamed-Elkiky/basic-calculator/pkg/calculator/observability"
)

// Result is the outcome of evaluating one expression.
type Result struct {
	// OK is true when the expression evaluated, including to a non-finite value.
	OK bool
	// Value is the computed value. Zero unless OK.
	Value float64
	// Display is the formatted value, or "Error" for a non-finite value.
	Display string
	// Message describes the failure. Empty when OK.
	Message string
	// Kind classifies the failure. KindNone when OK.
	Kind calcerrors.Kind
	// Err is the underlying error. Nil when OK.
	Err error
}

// NonFinite reports whether the expression evaluated to NaN or an infinity.
func (r Result) NonFinite() bool {
	return r.OK && display.IsErrorText(r.Display)
}

func newResult(v float64, err error) Result {
	if err != nil {
		return Result{
			Message: err.Error(),
			Kind:    calcerrors.KindOf(err),
			Err:     err,
		}
	}
	return Result{OK: true, Value: v, Display: display.Format(v)}
}

// Calculator evaluates expressions with logging, metrics and tracing.
// It is immutable after construction and safe for concurrent use.
type Calculator struct {
	evaluator *expr.Evaluator
	logger    *slog.Logger
	metrics   observability.MetricsRecorder
	spans     observability.SpanManager
}

// New creates a Calculator with the given options.
func New(opts ...Option) *Calculator {
	c := &Calculator{
		evaluator: expr.New(),
		logger:    slog.Default(),
		metrics:   observability.NoopMetrics{},
		spans:     observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// quiet backs EvaluateExpression: no logs, metrics or spans.
var quiet = &Calculator{
	evaluator: expr.New(),
	metrics:   observability.NoopMetrics{},
	spans:     observability.NoopSpanManager{},
}

// EvaluateExpression parses, evaluates and formats text.
//
// text may use display glyphs (× ÷ ^) or internal operators (* / **).
// Failures are reported in the Result, never by panicking. A non-finite
// value is a successful Result whose Display is "Error".
func EvaluateExpression(text string) Result {
	return quiet.evaluate(context.Background(), "", nil, text)
}

// Evaluate is EvaluateExpression with the calculator's logging, metrics
// and tracing.
func (c *Calculator) Evaluate(ctx context.Context, text string) Result {
	return c.evaluate(ctx, "", c.logger, text)
}

func (c *Calculator) evaluate(ctx context.Context, sessionID string, logger *slog.Logger, text string) Result {
	done := observability.TimedOperation()
	ctx, span := c.spans.StartEvaluationSpan(ctx, sessionID, utf8.RuneCountInString(text))

	v, err := c.run(ctx, display.ToInternal(text))
	res := newResult(v, err)
	durationMs := done()

	outcome := err
	if res.NonFinite() {
		outcome = calcerrors.ErrNonFinite
	}
	c.metrics.RecordEvaluation(ctx, durationMs, outcome)
	c.spans.EndSpanWithError(span, outcome)

	if err != nil {
		observability.LogEvaluationError(logger, text, res.Kind.String(), err, durationMs)
	} else {
		observability.LogEvaluation(logger, text, res.Display, durationMs)
	}
	return res
}

func (c *Calculator) run(ctx context.Context, internal string) (float64, error) {
	tree, err := c.evaluator.Parse(internal)
	if err != nil {
		return 0, err
	}
	if trace.SpanFromContext(ctx).IsRecording() {
		c.spans.AddSpanEvent(ctx, "expression.parsed", attribute.String("tree", tree.String()))
	}
	return expr.Eval(tree)
}
