package postgresengine

import (
	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore"
)

type (
	Logger           = loanstore.Logger
	MetricsCollector = loanstore.MetricsCollector
	SpanContext      = loanstore.SpanContext
	TracingCollector = loanstore.TracingCollector
	ContextualLogger = loanstore.ContextualLogger
)

// Option defines a functional option for configuring LoanStore.
type Option func(*LoanStore) error

// WithTableName sets the loan table name for the LoanStore.
func WithTableName(tableName string) Option {
	return func(ls *LoanStore) error {
		if tableName == "" {
			return loanstore.ErrEmptyTableNameSupplied
		}

		ls.loanTableName = tableName

		return nil
	}
}

// WithNotificationTableName sets the table name of the notification outbox created by CreateSchema.
func WithNotificationTableName(tableName string) Option {
	return func(ls *LoanStore) error {
		if tableName == "" {
			return loanstore.ErrEmptyTableNameSupplied
		}

		ls.notificationTableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the LoanStore.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL queries with execution timing (development use)
// Info level: Record counts, durations, conflicts (production-safe)
// Warn level: Non-critical issues like cleanup failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger Logger) Option {
	return func(ls *LoanStore) error {
		ls.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the LoanStore.
// It receives operation durations, queried record counts, conflicts, and database errors.
func WithMetrics(collector MetricsCollector) Option {
	return func(ls *LoanStore) error {
		ls.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the LoanStore.
// Every store operation opens a span named loanstore.<operation>.
func WithTracing(collector TracingCollector) Option {
	return func(ls *LoanStore) error {
		ls.tracingCollector = collector
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the LoanStore.
// Log records then carry the trace and span ids of the active span.
func WithContextualLogger(logger ContextualLogger) Option {
	return func(ls *LoanStore) error {
		ls.contextualLogger = logger
		return nil
	}
}
