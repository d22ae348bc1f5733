// Package observability provides logging, metrics and tracing for the
// calculator.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// Metrics and tracing are opt-in and have no-op implementations when disabled.
package observability

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

// EnrichLogger adds session context to a logger.
// Returns a new logger with a session_id field.
//
// Example:
//
//	enriched := EnrichLogger(logger, "5f0c...")
//	enriched.Info("evaluating") // includes session_id
func EnrichLogger(logger *slog.Logger, sessionID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("session_id", sessionID))
}

// LogEvaluation logs a successful evaluation.
func LogEvaluation(logger *slog.Logger, expression, result string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("expression evaluated",
		slog.String("expression", expression),
		slog.String("result", result),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogEvaluationError logs a rejected expression. Rejections are user input
// problems, so they are logged at info level.
func LogEvaluationError(logger *slog.Logger, expression string, kind string, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Info("expression rejected",
		slog.String("expression", expression),
		slog.String("kind", kind),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogHistoryRestore logs history entries loaded for a session.
func LogHistoryRestore(logger *slog.Logger, entries int) {
	if logger == nil {
		return
	}
	logger.Debug("history restored",
		slog.Int("entries", entries),
	)
}

// LogHistoryError logs a history store failure (non-fatal).
func LogHistoryError(logger *slog.Logger, op string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("history store failed",
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}

// NewLogger builds a logger writing to w. format is "text" or "json";
// level is one of debug, info, warn or error.
func NewLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000
	}
}
