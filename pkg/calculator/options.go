package calculator

import (
	"log/slog"

	"github.com/Mohamed-Elkiky/basic-calculator/pkg/calculator/expr"
	"github.com/Mohamed-Elkiky/basic-calculator/pkg/calculator/history"
	"github.com/Mohamed-Elkiky/basic-calculator/pkg/calculator/observability"
)

// Option configures a Calculator.
type Option func(*Calculator)

// WithLogger sets the logger for evaluation logs.
// Default: slog.Default()
//
// Successful evaluations are logged at debug level, rejected expressions at
// info level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Calculator) {
		c.logger = logger
	}
}

// WithMetrics enables OpenTelemetry metrics using the global meter provider.
// Default: false
func WithMetrics(enabled bool) Option {
	return func(c *Calculator) {
		if enabled {
			c.metrics = observability.NewMetricsRecorder()
		} else {
			c.metrics = observability.NoopMetrics{}
		}
	}
}

// WithTracing enables OpenTelemetry tracing using the global tracer provider.
// Default: false
func WithTracing(enabled bool) Option {
	return func(c *Calculator) {
		if enabled {
			c.spans = observability.NewSpanManager()
		} else {
			c.spans = observability.NoopSpanManager{}
		}
	}
}

// WithMetricsRecorder sets a custom metrics recorder.
func WithMetricsRecorder(m observability.MetricsRecorder) Option {
	return func(c *Calculator) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithSpanManager sets a custom span manager.
func WithSpanManager(sm observability.SpanManager) Option {
	return func(c *Calculator) {
		if sm != nil {
			c.spans = sm
		}
	}
}

// WithMaxDepth limits how deeply parentheses, signs and powers may nest.
// Zero removes the limit.
// Default: 200
func WithMaxDepth(n int) Option {
	return func(c *Calculator) {
		c.evaluator = expr.New(expr.WithMaxDepth(n))
	}
}

// SessionOption configures a Session.
type SessionOption func(*sessionConfig)

type sessionConfig struct {
	id           string
	historyLimit int
	store        history.Store
}

// DefaultHistoryLimit is the number of history entries a session keeps.
const DefaultHistoryLimit = 6

// WithHistoryLimit sets how many entries the session keeps and restores.
// Values below 1 are ignored.
// Default: DefaultHistoryLimit
func WithHistoryLimit(n int) SessionOption {
	return func(c *sessionConfig) {
		if n > 0 {
			c.historyLimit = n
		}
	}
}

// WithHistoryStore persists history to store and restores it on creation.
// The session does not close the store.
func WithHistoryStore(store history.Store) SessionOption {
	return func(c *sessionConfig) {
		c.store = store
	}
}

// WithSessionID sets the session ID used as the history key.
// Default: a random UUID
func WithSessionID(id string) SessionOption {
	return func(c *sessionConfig) {
		c.id = id
	}
}
