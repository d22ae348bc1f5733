package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	calcerrors "github.com/Mohamed-Elkiky/basic-calculator/pkg/calculator/errors"
)

// tracer uses the global OTel tracer provider.
var tracer = otel.Tracer("calculator")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartEvaluationSpan starts a span for one evaluation.
	// sessionID may be empty for evaluations outside a session.
	StartEvaluationSpan(ctx context.Context, sessionID string, expressionLength int) (context.Context, trace.Span)

	// EndSpanWithError completes a span, recording the result kind and
	// optionally an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

func (m *otelSpanManager) StartEvaluationSpan(ctx context.Context, sessionID string, expressionLength int) (context.Context, trace.Span) {
	return StartEvaluationSpan(ctx, sessionID, expressionLength)
}

func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	EndSpanWithError(span, err)
}

func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	AddSpanEvent(ctx, name, attrs...)
}

// StartEvaluationSpan starts a calculator.evaluate span.
// Uses the global OTel tracer.
func StartEvaluationSpan(ctx context.Context, sessionID string, expressionLength int) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.Int("expression.length", expressionLength),
	}
	if sessionID != "" {
		attrs = append(attrs, attribute.String("session.id", sessionID))
	}
	return tracer.Start(ctx, "calculator.evaluate",
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError sets result.kind on the span and completes it,
// recording err if it is not nil.
func EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	span.SetAttributes(attribute.String("result.kind", calcerrors.KindOf(err).String()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span in context.
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
