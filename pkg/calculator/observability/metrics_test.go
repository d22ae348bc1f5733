package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	calcerrors "github.com/Mohamed-Elkiky/basic-calculator/pkg/calculator/errors"
)

// setupMetricsTest creates a test meter provider and returns a function to collect metrics.
func setupMetricsTest(t *testing.T) (*sdkmetric.ManualReader, func()) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	originalProvider := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)

	cleanup := func() {
		otel.SetMeterProvider(originalProvider)
		if err := provider.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down meter provider: %v", err)
		}
	}

	return reader, cleanup
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) *metricdata.ResourceMetrics {
	var rm metricdata.ResourceMetrics
	err := reader.Collect(context.Background(), &rm)
	require.NoError(t, err)
	return &rm
}

func findMetric(rm *metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

// sumFor returns the counter value for the data point carrying attr.
func sumFor(t *testing.T, m *metricdata.Metrics, attr attribute.KeyValue) int64 {
	t.Helper()
	require.NotNil(t, m)
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "Expected Sum type")
	for _, dp := range sum.DataPoints {
		if v, found := dp.Attributes.Value(attr.Key); found && v.Emit() == attr.Value.Emit() {
			return dp.Value
		}
	}
	return 0
}

func TestNewMetricsRecorder(t *testing.T) {
	_, cleanup := setupMetricsTest(t)
	defer cleanup()

	recorder := NewMetricsRecorder()
	require.NotNil(t, recorder)

	_, isNoop := recorder.(NoopMetrics)
	assert.False(t, isNoop, "Expected real metrics recorder, got noop")
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, OutcomeOK, Outcome(nil))
	assert.Equal(t, OutcomeNonFinite, Outcome(calcerrors.ErrNonFinite))
	assert.Equal(t, OutcomeError, Outcome(calcerrors.ErrDivisionByZero))
	assert.Equal(t, OutcomeError, Outcome(&calcerrors.SyntaxError{Col: 1, Msg: "invalid syntax"}))
}

func TestRecordEvaluation(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordEvaluation(ctx, 2.0, nil)
	m.RecordEvaluation(ctx, 1.0, nil)
	m.RecordEvaluation(ctx, 1.0, calcerrors.ErrModuloByZero)
	m.RecordEvaluation(ctx, 1.0, &calcerrors.UnsupportedError{Col: 1, Construct: "name 'pi'"})
	m.RecordEvaluation(ctx, 1.0, calcerrors.ErrNonFinite)

	rm := collectMetrics(t, reader)

	t.Run("counts evaluations by outcome", func(t *testing.T) {
		evals := findMetric(rm, "calculator.evaluations")
		assert.Equal(t, int64(2), sumFor(t, evals, attribute.String("outcome", OutcomeOK)))
		assert.Equal(t, int64(2), sumFor(t, evals, attribute.String("outcome", OutcomeError)))
		assert.Equal(t, int64(1), sumFor(t, evals, attribute.String("outcome", OutcomeNonFinite)))
	})

	t.Run("counts errors by kind", func(t *testing.T) {
		errs := findMetric(rm, "calculator.evaluation.errors")
		assert.Equal(t, int64(1), sumFor(t, errs, attribute.String("kind", "modulo_by_zero")))
		assert.Equal(t, int64(1), sumFor(t, errs, attribute.String("kind", "unsupported_construct")))
		assert.Equal(t, int64(0), sumFor(t, errs, attribute.String("kind", "non_finite_result")))
	})

	t.Run("counts non-finite results", func(t *testing.T) {
		nf := findMetric(rm, "calculator.evaluation.non_finite")
		require.NotNil(t, nf)
		sum, ok := nf.Data.(metricdata.Sum[int64])
		require.True(t, ok)
		require.Len(t, sum.DataPoints, 1)
		assert.Equal(t, int64(1), sum.DataPoints[0].Value)
	})

	t.Run("records latency", func(t *testing.T) {
		lat := findMetric(rm, "calculator.evaluation.latency_ms")
		require.NotNil(t, lat)
		hist, ok := lat.Data.(metricdata.Histogram[float64])
		require.True(t, ok, "Expected Histogram type")

		var count uint64
		for _, dp := range hist.DataPoints {
			count += dp.Count
		}
		assert.Equal(t, uint64(5), count)
	})
}

func TestRecordHistoryWrite(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordHistoryWrite(ctx, true)
	m.RecordHistoryWrite(ctx, true)
	m.RecordHistoryWrite(ctx, false)

	writes := findMetric(collectMetrics(t, reader), "calculator.history.writes")
	assert.Equal(t, int64(2), sumFor(t, writes, attribute.Bool("success", true)))
	assert.Equal(t, int64(1), sumFor(t, writes, attribute.Bool("success", false)))
}
