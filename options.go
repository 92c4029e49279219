package vexdb

import (
	"log/slog"
)

// DefaultMaxListLimit bounds how many records a single List call returns.
const DefaultMaxListLimit = 1000

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	maxListLimit     int
}

// Option configures DB constructor behavior.
type Option func(*options)

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithMaxListLimit overrides the maximum page size for List.
// Non-positive values fall back to DefaultMaxListLimit.
func WithMaxListLimit(limit int) Option {
	return func(o *options) {
		if limit > 0 {
			o.maxListLimit = limit
		}
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		maxListLimit:     DefaultMaxListLimit,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
