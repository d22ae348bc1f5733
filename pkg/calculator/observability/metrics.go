package observability

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	calcerrors "github.com/Mohamed-Elkiky/basic-calculator/pkg/calculator/errors"
)

// Evaluation outcomes used for the outcome attribute.
const (
	OutcomeOK        = "ok"
	OutcomeError     = "error"
	OutcomeNonFinite = "non_finite"
)

// MetricsRecorder records calculator metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordEvaluation records one evaluation with its duration.
	// err is nil on success and ErrNonFinite for results that cannot be displayed.
	RecordEvaluation(ctx context.Context, durationMs float64, err error)

	// RecordHistoryWrite records a history store append.
	RecordHistoryWrite(ctx context.Context, success bool)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	evaluations metric.Int64Counter
	errors      metric.Int64Counter
	latency     metric.Float64Histogram
	nonFinite   metric.Int64Counter
	writes      metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("calculator")

	evaluations, err := meter.Int64Counter("calculator.evaluations",
		metric.WithDescription("Number of expression evaluations"),
	)
	if err != nil {
		return nil, err
	}

	evalErrors, err := meter.Int64Counter("calculator.evaluation.errors",
		metric.WithDescription("Number of rejected expressions by error kind"),
	)
	if err != nil {
		return nil, err
	}

	latency, err := meter.Float64Histogram("calculator.evaluation.latency_ms",
		metric.WithDescription("Evaluation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	nonFinite, err := meter.Int64Counter("calculator.evaluation.non_finite",
		metric.WithDescription("Number of evaluations producing NaN or an infinity"),
	)
	if err != nil {
		return nil, err
	}

	writes, err := meter.Int64Counter("calculator.history.writes",
		metric.WithDescription("Number of history store appends"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		evaluations: evaluations,
		errors:      evalErrors,
		latency:     latency,
		nonFinite:   nonFinite,
		writes:      writes,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// Outcome classifies an evaluation error for the outcome attribute.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, calcerrors.ErrNonFinite):
		return OutcomeNonFinite
	default:
		return OutcomeError
	}
}

// RecordEvaluation records an evaluation.
func (m *otelMetrics) RecordEvaluation(ctx context.Context, durationMs float64, err error) {
	outcome := Outcome(err)
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))

	m.evaluations.Add(ctx, 1, attrs)
	m.latency.Record(ctx, durationMs, attrs)

	switch outcome {
	case OutcomeNonFinite:
		m.nonFinite.Add(ctx, 1)
	case OutcomeError:
		m.errors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("kind", calcerrors.KindOf(err).String()),
		))
	}
}

// RecordHistoryWrite records a history append.
func (m *otelMetrics) RecordHistoryWrite(ctx context.Context, success bool) {
	m.writes.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", success)))
}
