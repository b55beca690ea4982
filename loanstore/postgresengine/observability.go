package postgresengine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore"
)

const (
	metricInsertDuration       = "loanstore_insert_duration_seconds"
	metricUpdateDuration       = "loanstore_update_duration_seconds"
	metricGetDuration          = "loanstore_get_duration_seconds"
	metricQueryDuration        = "loanstore_query_duration_seconds"
	metricOutboxAppendDuration = "loanstore_outbox_append_duration_seconds"
	metricRecordsQueried       = "loanstore_records_queried_total"
	metricConcurrencyConflicts = "loanstore_concurrency_conflicts_total"
	metricActiveLoanConflicts  = "loanstore_active_loan_conflicts_total"
	metricDatabaseErrors       = "loanstore_database_errors_total"

	operationInsert       = "insert"
	operationUpdate       = "update"
	operationGet          = "get"
	operationQuery        = "query"
	operationOutboxAppend = "outbox_append"
	operationCreateSchema = "create_schema"

	spanNamePrefix         = "loanstore."
	spanAttrOperation      = "operation"
	spanAttrLoanID         = "loan_id"
	spanAttrExpectedStatus = "expected_status"
	spanAttrNewStatus      = "new_status"
	spanAttrRecordCount    = "record_count"
	spanAttrRowsAffected   = "rows_affected"
	spanAttrConsistency    = "consistency"
	spanAttrDurationMS     = "duration_ms"
	spanAttrErrorType      = "error_type"

	labelStatus       = "status"
	labelConflictType = "conflict_type"

	statusSuccess = "success"
	statusError   = "error"

	conflictTypeConcurrency = "concurrency"
	conflictTypeActiveLoan  = "active_loan"

	errorTypeBuildQuery          = "build_query"
	errorTypeDatabaseQuery       = "database_query"
	errorTypeDatabaseExec        = "database_exec"
	errorTypeRowScan             = "row_scan"
	errorTypeRowsAffected        = "rows_affected"
	errorTypeMapping             = "column_mapping"
	errorTypeNotFound            = "not_found"
	errorTypeActiveLoanConflict  = "active_loan_conflict"
	errorTypeConcurrencyConflict = "concurrency_conflict"
	errorTypeUnknown             = "unknown"
)

// errorTypeOf classifies an error returned from the query pipeline for metrics and spans.
func errorTypeOf(err error) string {
	switch {
	case errors.Is(err, loanstore.ErrActiveLoanExists):
		return errorTypeActiveLoanConflict
	case errors.Is(err, loanstore.ErrQueryingLoansFailed):
		return errorTypeDatabaseQuery
	case errors.Is(err, loanstore.ErrScanningDBRowFailed):
		return errorTypeRowScan
	case errors.Is(err, loanstore.ErrMappingColumnFailed):
		return errorTypeMapping
	default:
		return errorTypeUnknown
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.2f", float64(d.Nanoseconds())/1e6)
}

func formatInt(i int) string {
	return strconv.Itoa(i)
}

// === Contextual Logging ===
// The contextual logger is preferred when configured, so log records carry trace correlation.

// logQueryWithDurationContext logs SQL queries with execution time at debug level.
func (ls *LoanStore) logQueryWithDurationContext(
	ctx context.Context,
	sqlQuery string,
	action string,
	duration time.Duration,
) {

	args := []any{logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery}

	if ls.contextualLogger != nil {
		ls.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action, args...)
		return
	}

	if ls.logger != nil {
		ls.logger.Debug(logMsgSQLExecuted+action, args...)
	}
}

// logOperationContext logs operational information at info level.
func (ls *LoanStore) logOperationContext(ctx context.Context, action string, args ...any) {
	if ls.contextualLogger != nil {
		ls.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
		return
	}

	if ls.logger != nil {
		ls.logger.Info(logMsgOperation+action, args...)
	}
}

// logWarnContext logs non-critical failures at warn level.
func (ls *LoanStore) logWarnContext(ctx context.Context, message string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if ls.contextualLogger != nil {
		ls.contextualLogger.WarnContext(ctx, message, allArgs...)
		return
	}

	if ls.logger != nil {
		ls.logger.Warn(message, allArgs...)
	}
}

// logErrorContext logs error information at the error level.
func (ls *LoanStore) logErrorContext(ctx context.Context, message string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if ls.contextualLogger != nil {
		ls.contextualLogger.ErrorContext(ctx, message, allArgs...)
		return
	}

	if ls.logger != nil {
		ls.logger.Error(message, allArgs...)
	}
}

// === Metrics Observer Pattern ===
// The observer simplifies the metrics collection by encapsulating recording complexity.

// operationMetricsObserver encapsulates the metrics collection for one store operation.
type operationMetricsObserver struct {
	ls             *LoanStore
	ctx            context.Context
	operation      string
	durationMetric string
}

// startMetrics creates a new metrics observer for one store operation.
func (ls *LoanStore) startMetrics(ctx context.Context, operation, durationMetric string) *operationMetricsObserver {
	return &operationMetricsObserver{
		ls:             ls,
		ctx:            ctx,
		operation:      operation,
		durationMetric: durationMetric,
	}
}

// recordSuccess records the duration of a successful operation.
func (mo *operationMetricsObserver) recordSuccess(duration time.Duration) {
	mo.recordDuration(duration, statusSuccess)
}

// recordError records the duration and the error counter of a failed operation.
func (mo *operationMetricsObserver) recordError(errorType string, duration time.Duration) {
	mo.recordDuration(duration, statusError)
	mo.incrementCounter(metricDatabaseErrors, map[string]string{
		spanAttrOperation: mo.operation,
		labelStatus:       statusError,
		spanAttrErrorType: errorType,
	})
}

// recordConflict records a rejected conditional write. Conflicts are expected outcomes, not database errors.
func (mo *operationMetricsObserver) recordConflict(metric, conflictType string, duration time.Duration) {
	mo.recordDuration(duration, statusSuccess)
	mo.incrementCounter(metric, map[string]string{
		spanAttrOperation: mo.operation,
		labelConflictType: conflictType,
	})
}

// recordValue records a value metric labelled with the operation.
func (mo *operationMetricsObserver) recordValue(metric string, value float64) {
	if mo.ls.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: mo.operation,
		labelStatus:       statusSuccess,
	}

	if contextualCollector, ok := mo.ls.metricsCollector.(loanstore.ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(mo.ctx, metric, value, labels)
		return
	}

	mo.ls.metricsCollector.RecordValue(metric, value, labels)
}

func (mo *operationMetricsObserver) recordDuration(duration time.Duration, status string) {
	if mo.ls.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: mo.operation,
		labelStatus:       status,
	}

	// Use context-aware method if available
	if contextualCollector, ok := mo.ls.metricsCollector.(loanstore.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(mo.ctx, mo.durationMetric, duration, labels)
		return
	}

	mo.ls.metricsCollector.RecordDuration(mo.durationMetric, duration, labels)
}

func (mo *operationMetricsObserver) incrementCounter(metric string, labels map[string]string) {
	if mo.ls.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := mo.ls.metricsCollector.(loanstore.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(mo.ctx, metric, labels)
		return
	}

	mo.ls.metricsCollector.IncrementCounter(metric, labels)
}

// === Tracing Observer Pattern ===
// The observer simplifies tracing span management by encapsulating lifecycle complexity.

// operationTracingObserver encapsulates the tracing span lifecycle of one store operation.
type operationTracingObserver struct {
	ls   *LoanStore
	span SpanContext
}

// startTracing starts a span named loanstore.<operation> if the tracing collector is configured.
func (ls *LoanStore) startTracing(
	ctx context.Context,
	operation string,
	attrs map[string]string,
) (*operationTracingObserver, context.Context) {

	observer := &operationTracingObserver{ls: ls}

	if ls.tracingCollector == nil {
		return observer, ctx
	}

	spanAttrs := map[string]string{spanAttrOperation: operation}
	for key, value := range attrs {
		spanAttrs[key] = value
	}

	newCtx, span := ls.tracingCollector.StartSpan(ctx, spanNamePrefix+operation, spanAttrs)
	observer.span = span

	return observer, newCtx
}

// finishSuccess completes the span for a successful operation.
func (to *operationTracingObserver) finishSuccess(duration time.Duration, attrs map[string]string) {
	if to.span == nil {
		return
	}

	to.span.SetStatus(statusSuccess)
	to.span.AddAttribute(spanAttrDurationMS, formatDuration(duration))

	for key, value := range attrs {
		to.span.AddAttribute(key, value)
	}

	to.ls.tracingCollector.FinishSpan(to.span, statusSuccess, attrs)
}

// finishError completes the span with error details.
func (to *operationTracingObserver) finishError(errorType string, duration time.Duration) {
	if to.span == nil {
		return
	}

	to.span.SetStatus(statusError)
	to.span.AddAttribute(spanAttrErrorType, errorType)

	if duration > 0 {
		to.span.AddAttribute(spanAttrDurationMS, formatDuration(duration))
	}

	to.ls.tracingCollector.FinishSpan(to.span, statusError, map[string]string{spanAttrErrorType: errorType})
}
