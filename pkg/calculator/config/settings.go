package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Setting keys.
const (
	KeyHistoryLimit       = "history_limit"
	KeyHistoryPath        = "history_path"
	KeyHistoryBusyTimeout = "history_busy_timeout"
	KeyLogLevel           = "log_level"
	KeyLogFormat          = "log_format"
	KeyMetrics            = "metrics"
	KeyTracing            = "tracing"
	KeyMaxDepth           = "max_depth"
)

// ErrInvalidSettings is wrapped by every Validate failure.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings is the resolved calculator configuration.
type Settings struct {
	HistoryLimit       int
	HistoryPath        string
	HistoryBusyTimeout time.Duration
	LogLevel           string
	LogFormat          string
	Metrics            bool
	Tracing            bool
	MaxDepth           int
}

// Defaults returns the settings used when no file is given.
func Defaults() Settings {
	return Settings{
		HistoryLimit:       6,
		HistoryBusyTimeout: 5 * time.Second,
		LogLevel:           "info",
		LogFormat:          "text",
		MaxDepth:           200,
	}
}

// FromConfig overlays the keys present in cfg on Defaults.
// Values of the wrong type are ignored.
func FromConfig(cfg Config) Settings {
	d := Defaults()
	return Settings{
		HistoryLimit:       cfg.Int(KeyHistoryLimit, d.HistoryLimit),
		HistoryPath:        cfg.String(KeyHistoryPath, d.HistoryPath),
		HistoryBusyTimeout: cfg.Duration(KeyHistoryBusyTimeout, d.HistoryBusyTimeout),
		LogLevel:           cfg.String(KeyLogLevel, d.LogLevel),
		LogFormat:          cfg.String(KeyLogFormat, d.LogFormat),
		Metrics:            cfg.Bool(KeyMetrics, d.Metrics),
		Tracing:            cfg.Bool(KeyTracing, d.Tracing),
		MaxDepth:           cfg.Int(KeyMaxDepth, d.MaxDepth),
	}
}

// FromMap is FromConfig for a plain map.
func FromMap(m map[string]any) Settings {
	return FromConfig(New(m))
}

// Validate reports the first setting that is out of range.
func (s Settings) Validate() error {
	if s.HistoryLimit < 1 {
		return fmt.Errorf("%w: %s must be at least 1, got %d", ErrInvalidSettings, KeyHistoryLimit, s.HistoryLimit)
	}
	if s.HistoryBusyTimeout < 0 {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidSettings, KeyHistoryBusyTimeout)
	}
	if s.MaxDepth < 0 {
		return fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalidSettings, KeyMaxDepth, s.MaxDepth)
	}
	switch strings.ToLower(s.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown %s %q", ErrInvalidSettings, KeyLogLevel, s.LogLevel)
	}
	switch strings.ToLower(s.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown %s %q", ErrInvalidSettings, KeyLogFormat, s.LogFormat)
	}
	return nil
}
