package calculator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/Mohamed-Elkiky/basic-calculator/pkg/calculator/history"
	"github.com/Mohamed-Elkiky/basic-calculator/pkg/calculator/observability"
)

// testLogHandler captures log records for testing.
type testLogHandler struct {
	buf   *bytes.Buffer
	level slog.Level
	attrs []slog.Attr
}

func newTestLogHandler() *testLogHandler {
	return &testLogHandler{
		buf:   &bytes.Buffer{},
		level: slog.LevelDebug,
	}
}

func (h *testLogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *testLogHandler) Handle(_ context.Context, r slog.Record) error {
	data := map[string]any{
		"level": r.Level.String(),
		"msg":   r.Message,
	}
	for _, a := range h.attrs {
		data[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		data[a.Key] = a.Value.Any()
		return true
	})
	return json.NewEncoder(h.buf).Encode(data)
}

func (h *testLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &testLogHandler{
		buf:   h.buf,
		level: h.level,
		attrs: append(append([]slog.Attr{}, h.attrs...), attrs...),
	}
}

func (h *testLogHandler) WithGroup(_ string) slog.Handler {
	return h
}

func (h *testLogHandler) getRecords() []map[string]any {
	var records []map[string]any
	for _, line := range bytes.Split(h.buf.Bytes(), []byte("\n")) {
		if len(line) > 0 {
			var m map[string]any
			if err := json.Unmarshal(line, &m); err == nil {
				records = append(records, m)
			}
		}
	}
	return records
}

// recordingMetrics records calls for assertions.
type recordingMetrics struct {
	mu          sync.Mutex
	evaluations []string // outcomes
	writes      []bool
}

var _ observability.MetricsRecorder = (*recordingMetrics)(nil)

func (m *recordingMetrics) RecordEvaluation(_ context.Context, _ float64, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evaluations = append(m.evaluations, observability.Outcome(err))
}

func (m *recordingMetrics) RecordHistoryWrite(_ context.Context, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes = append(m.writes, success)
}

// recordedSpan is one span seen by recordingSpans.
type recordedSpan struct {
	sessionID string
	length    int
	events    []string
	err       error
	ended     bool
}

// recordingSpans records span lifecycle calls. Spans are identified by
// order. The returned span reports itself as recording unless idle is set.
type recordingSpans struct {
	spans []*recordedSpan
	idle  bool
}

// liveSpan is a no-op span that claims to record.
type liveSpan struct {
	noop.Span
}

func (liveSpan) IsRecording() bool { return true }

var _ observability.SpanManager = (*recordingSpans)(nil)

func (r *recordingSpans) StartEvaluationSpan(ctx context.Context, sessionID string, length int) (context.Context, trace.Span) {
	r.spans = append(r.spans, &recordedSpan{sessionID: sessionID, length: length})
	if r.idle {
		return ctx, noop.Span{}
	}
	span := liveSpan{}
	return trace.ContextWithSpan(ctx, span), span
}

func (r *recordingSpans) EndSpanWithError(_ trace.Span, err error) {
	s := r.spans[len(r.spans)-1]
	s.err, s.ended = err, true
}

func (r *recordingSpans) AddSpanEvent(_ context.Context, name string, _ ...attribute.KeyValue) {
	s := r.spans[len(r.spans)-1]
	s.events = append(s.events, name)
}

// failingStore is a history store whose writes fail.
type failingStore struct {
	history.Store
	err error
}

func (f failingStore) Append(context.Context, string, history.Entry) error { return f.err }
func (f failingStore) Clear(context.Context, string) error                 { return f.err }

var errDiskFull = errors.New("disk full")
