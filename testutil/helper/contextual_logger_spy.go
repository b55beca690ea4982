package helper

import (
	"context"
	"sync"

	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore"
)

// ContextualLogRecord represents a recorded contextual log call.
type ContextualLogRecord struct {
	Level   string
	Message string
	Args    []any
	Context context.Context
}

// Attr returns the value logged for key, or nil.
func (r ContextualLogRecord) Attr(key string) any {
	for i := 0; i+1 < len(r.Args); i += 2 {
		if k, ok := r.Args[i].(string); ok && k == key {
			return r.Args[i+1]
		}
	}

	return nil
}

// ContextualLoggerSpy captures contextual logging calls for assertions in tests.
// It implements loanstore.Logger as well, recording those calls with a background context.
type ContextualLoggerSpy struct {
	records     []ContextualLogRecord
	mu          sync.Mutex
	recordCalls bool
}

// NewContextualLoggerSpy creates a new ContextualLoggerSpy.
func NewContextualLoggerSpy(recordCalls bool) *ContextualLoggerSpy {
	return &ContextualLoggerSpy{recordCalls: recordCalls}
}

func (l *ContextualLoggerSpy) record(ctx context.Context, level, msg string, args []any) {
	if !l.recordCalls {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, ContextualLogRecord{Level: level, Message: msg, Args: args, Context: ctx})
}

func (l *ContextualLoggerSpy) DebugContext(ctx context.Context, msg string, args ...any) {
	l.record(ctx, "debug", msg, args)
}

func (l *ContextualLoggerSpy) InfoContext(ctx context.Context, msg string, args ...any) {
	l.record(ctx, "info", msg, args)
}

func (l *ContextualLoggerSpy) WarnContext(ctx context.Context, msg string, args ...any) {
	l.record(ctx, "warn", msg, args)
}

func (l *ContextualLoggerSpy) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.record(ctx, "error", msg, args)
}

func (l *ContextualLoggerSpy) Debug(msg string, args ...any) {
	l.record(context.Background(), "debug", msg, args)
}

func (l *ContextualLoggerSpy) Info(msg string, args ...any) {
	l.record(context.Background(), "info", msg, args)
}

func (l *ContextualLoggerSpy) Warn(msg string, args ...any) {
	l.record(context.Background(), "warn", msg, args)
}

func (l *ContextualLoggerSpy) Error(msg string, args ...any) {
	l.record(context.Background(), "error", msg, args)
}

// GetRecords returns a copy of all log records of the given level.
func (l *ContextualLoggerSpy) GetRecords(level string) []ContextualLogRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	records := make([]ContextualLogRecord, 0)
	for _, r := range l.records {
		if r.Level == level {
			records = append(records, r)
		}
	}

	return records
}

// Reset clears all recorded log calls.
func (l *ContextualLoggerSpy) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = l.records[:0]
}

func (l *ContextualLoggerSpy) has(level, message string) bool {
	for _, r := range l.GetRecords(level) {
		if r.Message == message {
			return true
		}
	}

	return false
}

// HasDebugLog checks if a debug log with the specified message exists.
func (l *ContextualLoggerSpy) HasDebugLog(message string) bool {
	return l.has("debug", message)
}

// HasInfoLog checks if an info log with the specified message exists.
func (l *ContextualLoggerSpy) HasInfoLog(message string) bool {
	return l.has("info", message)
}

// HasWarnLog checks if a warn log with the specified message exists.
func (l *ContextualLoggerSpy) HasWarnLog(message string) bool {
	return l.has("warn", message)
}

// HasErrorLog checks if an error log with the specified message exists.
func (l *ContextualLoggerSpy) HasErrorLog(message string) bool {
	return l.has("error", message)
}

// CountErrorLogs returns how many error logs were recorded.
func (l *ContextualLoggerSpy) CountErrorLogs() int {
	return len(l.GetRecords("error"))
}

var (
	_ loanstore.ContextualLogger = (*ContextualLoggerSpy)(nil)
	_ loanstore.Logger           = (*ContextualLoggerSpy)(nil)
)
