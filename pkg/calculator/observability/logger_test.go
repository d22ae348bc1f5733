package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testHandler captures log records for testing.
type testHandler struct {
	buf   *bytes.Buffer
	level slog.Level
	attrs []slog.Attr
}

func newTestHandler() *testHandler {
	return &testHandler{
		buf:   &bytes.Buffer{},
		level: slog.LevelDebug,
	}
}

func (h *testHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *testHandler) Handle(_ context.Context, r slog.Record) error {
	data := map[string]any{
		"level": r.Level.String(),
		"msg":   r.Message,
	}
	for _, attr := range h.attrs {
		data[attr.Key] = attr.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		data[a.Key] = a.Value.Any()
		return true
	})
	return json.NewEncoder(h.buf).Encode(data)
}

func (h *testHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newH := &testHandler{
		buf:   h.buf,
		level: h.level,
		attrs: make([]slog.Attr, len(h.attrs)+len(attrs)),
	}
	copy(newH.attrs, h.attrs)
	copy(newH.attrs[len(h.attrs):], attrs)
	return newH
}

func (h *testHandler) WithGroup(_ string) slog.Handler {
	return h
}

func (h *testHandler) getLastRecord() map[string]any {
	lines := bytes.Split(h.buf.Bytes(), []byte("\n"))
	for i := len(lines) - 1; i >= 0; i-- {
		if len(lines[i]) > 0 {
			var m map[string]any
			if err := json.Unmarshal(lines[i], &m); err == nil {
				return m
			}
		}
	}
	return nil
}

func TestEnrichLogger(t *testing.T) {
	t.Run("adds session_id", func(t *testing.T) {
		h := newTestHandler()
		logger := slog.New(h)

		enriched := EnrichLogger(logger, "session-123")
		enriched.Info("test message")

		record := h.getLastRecord()
		require.NotNil(t, record)
		assert.Equal(t, "session-123", record["session_id"])
		assert.Equal(t, "test message", record["msg"])
	})

	t.Run("nil logger returns nil", func(t *testing.T) {
		assert.Nil(t, EnrichLogger(nil, "session-123"))
	})
}

func TestLogEvaluation(t *testing.T) {
	h := newTestHandler()
	logger := slog.New(h)

	LogEvaluation(logger, "2+2", "4", 0.25)

	record := h.getLastRecord()
	require.NotNil(t, record)
	assert.Equal(t, "DEBUG", record["level"])
	assert.Equal(t, "expression evaluated", record["msg"])
	assert.Equal(t, "2+2", record["expression"])
	assert.Equal(t, "4", record["result"])
	assert.Equal(t, 0.25, record["duration_ms"])
}

func TestLogEvaluationError(t *testing.T) {
	h := newTestHandler()
	logger := slog.New(h)

	LogEvaluationError(logger, "5%0", "modulo_by_zero", errors.New("modulo by zero"), 0.1)

	record := h.getLastRecord()
	require.NotNil(t, record)
	assert.Equal(t, "INFO", record["level"])
	assert.Equal(t, "expression rejected", record["msg"])
	assert.Equal(t, "5%0", record["expression"])
	assert.Equal(t, "modulo_by_zero", record["kind"])
	assert.Equal(t, "modulo by zero", record["error"])
}

func TestLogHistory(t *testing.T) {
	h := newTestHandler()
	logger := slog.New(h)

	LogHistoryRestore(logger, 3)
	record := h.getLastRecord()
	require.NotNil(t, record)
	assert.Equal(t, "history restored", record["msg"])
	assert.Equal(t, float64(3), record["entries"]) // JSON decodes ints as float64

	LogHistoryError(logger, "append", errors.New("disk full"))
	record = h.getLastRecord()
	require.NotNil(t, record)
	assert.Equal(t, "WARN", record["level"])
	assert.Equal(t, "append", record["operation"])
	assert.Equal(t, "disk full", record["error"])
}

func TestLogHelpers_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		LogEvaluation(nil, "1", "1", 0)
		LogEvaluationError(nil, "", "empty_expression", errors.New("empty"), 0)
		LogHistoryRestore(nil, 0)
		LogHistoryError(nil, "recent", errors.New("closed"))
	})
}

func TestNewLogger(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := NewLogger(&buf, "debug", "json")
		require.NoError(t, err)

		logger.Debug("hello", slog.String("k", "v"))

		var m map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
		assert.Equal(t, "hello", m["msg"])
		assert.Equal(t, "v", m["k"])
	})

	t.Run("text filters by level", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := NewLogger(&buf, "warn", "text")
		require.NoError(t, err)

		logger.Info("hidden")
		logger.Warn("shown")

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.True(t, strings.Contains(out, "msg=shown"))
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := NewLogger(&bytes.Buffer{}, "loud", "text")
		assert.Error(t, err)
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := NewLogger(&bytes.Buffer{}, "info", "xml")
		assert.Error(t, err)
	})
}

func TestTimedOperation(t *testing.T) {
	done := TimedOperation()
	time.Sleep(5 * time.Millisecond)
	elapsed := done()

	assert.GreaterOrEqual(t, elapsed, 5.0)
	assert.Less(t, elapsed, 5000.0)
}
