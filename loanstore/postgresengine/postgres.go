package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore"
	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore/postgresengine/internal/adapters"
)

const (
	defaultLoanTableName         = "loan_requests"
	defaultNotificationTableName = "loan_notifications"
)

const (
	logMsgBuildSelectQueryFailed = "failed to build select query"
	logMsgBuildInsertQueryFailed = "failed to build insert query"
	logMsgBuildUpdateQueryFailed = "failed to build update query"
	logMsgDBQueryFailed          = "database query execution failed"
	logMsgDBExecFailed           = "database execution failed during loan insert"
	logMsgCloseRowsFailed        = "failed to close database rows"
	logMsgScanRowFailed          = "failed to scan database row"
	logMsgRowsAffectedFailed     = "failed to get rows affected count"
	logMsgQueryCompleted         = "query completed"
	logMsgLoanInserted           = "loan record inserted"
	logMsgLoanUpdated            = "loan record updated"
	logMsgActiveLoanConflict     = "active loan conflict detected"
	logMsgConcurrencyConflict    = "concurrency conflict detected"
	logMsgSQLExecuted            = "executed sql for: "
	logMsgOperation              = "loanstore operation: "
	logAttrError                 = "error"
	logAttrQuery                 = "query"
	logAttrLoanID                = "loan_id"
	logAttrRecordCount           = "record_count"
	logAttrDurationMS            = "duration_ms"
	logAttrExpectedStatus        = "expected_status"
	logAttrExpectedRevision      = "expected_revision"
	logAttrNewStatus             = "new_status"
	logAttrConsistency           = "consistency"
)

type (
	sqlQueryString = string
)

// LoanStore is the PostgreSQL engine of the loan record store.
//
// All writes are single statements that either apply atomically or not at all:
// InsertIfAbsent conditions the insert on the absence of an active record for the same user and book,
// UpdateIfStatus conditions the update on the expected status and revision.
type LoanStore struct {
	db                    adapters.DBAdapter
	loanTableName         string
	notificationTableName string
	logger                Logger
	metricsCollector      MetricsCollector
	tracingCollector      TracingCollector
	contextualLogger      ContextualLogger
}

// NewLoanStoreFromPGXPool creates a new LoanStore using a pgx Pool with optional configuration.
func NewLoanStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (*LoanStore, error) {
	if db == nil {
		return nil, loanstore.ErrNilDatabaseConnection
	}

	return newLoanStore(adapters.NewPGXAdapter(db), options...)
}

// NewLoanStoreFromPGXPoolAndReplica creates a new LoanStore using a primary and a replica pgx Pool.
// Reads run against the replica only when the context carries loanstore.WithEventualConsistency.
func NewLoanStoreFromPGXPoolAndReplica(db *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (*LoanStore, error) {
	if db == nil || replica == nil {
		return nil, loanstore.ErrNilDatabaseConnection
	}

	return newLoanStore(adapters.NewPGXAdapterWithReplica(db, replica), options...)
}

// NewLoanStoreFromSQLDB creates a new LoanStore using a sql.DB with optional configuration.
func NewLoanStoreFromSQLDB(db *sql.DB, options ...Option) (*LoanStore, error) {
	if db == nil {
		return nil, loanstore.ErrNilDatabaseConnection
	}

	return newLoanStore(adapters.NewSQLAdapter(db), options...)
}

// NewLoanStoreFromSQLX creates a new LoanStore using a sqlx.DB with optional configuration.
func NewLoanStoreFromSQLX(db *sqlx.DB, options ...Option) (*LoanStore, error) {
	if db == nil {
		return nil, loanstore.ErrNilDatabaseConnection
	}

	return newLoanStore(adapters.NewSQLXAdapter(db), options...)
}

func newLoanStore(db adapters.DBAdapter, options ...Option) (*LoanStore, error) {
	ls := &LoanStore{
		db:                    db,
		loanTableName:         defaultLoanTableName,
		notificationTableName: defaultNotificationTableName,
	}

	for _, option := range options {
		if err := option(ls); err != nil {
			return nil, err
		}
	}

	return ls, nil
}

// InsertIfAbsent inserts a new pending loan record unless a pending or approved record exists
// for the same user and book.
//
// Returns loanstore.ErrActiveLoanExists in that case. The check and the insert run as one statement,
// and a partial unique index rejects the rare race the statement cannot see.
func (ls *LoanStore) InsertIfAbsent(ctx context.Context, record loanstore.Record) (loanstore.Record, error) {
	tracer, ctx := ls.startTracing(ctx, operationInsert, map[string]string{spanAttrLoanID: record.ID})
	metrics := ls.startMetrics(ctx, operationInsert, metricInsertDuration)
	start := time.Now()

	sqlQuery, buildErr := ls.buildInsertIfAbsentQuery(record)
	if buildErr != nil {
		ls.logErrorContext(ctx, logMsgBuildInsertQueryFailed, buildErr, logAttrLoanID, record.ID)
		metrics.recordError(errorTypeBuildQuery, time.Since(start))
		tracer.finishError(errorTypeBuildQuery, time.Since(start))

		return loanstore.Record{}, buildErr
	}

	result, execErr := ls.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	ls.logQueryWithDurationContext(ctx, sqlQuery, operationInsert, duration)

	if execErr != nil {
		if isUniqueViolation(execErr) {
			return loanstore.Record{}, ls.activeLoanConflict(ctx, record, metrics, tracer, duration)
		}

		ls.logErrorContext(ctx, logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)
		metrics.recordError(errorTypeDatabaseExec, duration)
		tracer.finishError(errorTypeDatabaseExec, duration)

		return loanstore.Record{}, errors.Join(loanstore.ErrWritingLoanFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		ls.logErrorContext(ctx, logMsgRowsAffectedFailed, rowsAffectedErr)
		metrics.recordError(errorTypeRowsAffected, duration)
		tracer.finishError(errorTypeRowsAffected, duration)

		return loanstore.Record{}, errors.Join(loanstore.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	if rowsAffected == 0 {
		return loanstore.Record{}, ls.activeLoanConflict(ctx, record, metrics, tracer, duration)
	}

	ls.logOperationContext(ctx, logMsgLoanInserted, logAttrLoanID, record.ID, logAttrDurationMS, toMilliseconds(duration))
	metrics.recordSuccess(duration)
	tracer.finishSuccess(duration, map[string]string{spanAttrRowsAffected: "1"})

	return record, nil
}

func (ls *LoanStore) activeLoanConflict(
	ctx context.Context,
	record loanstore.Record,
	metrics *operationMetricsObserver,
	tracer *operationTracingObserver,
	duration time.Duration,
) error {
	ls.logOperationContext(ctx, logMsgActiveLoanConflict, logAttrLoanID, record.ID)
	metrics.recordConflict(metricActiveLoanConflicts, conflictTypeActiveLoan, duration)
	tracer.finishError(errorTypeActiveLoanConflict, duration)

	return loanstore.ErrActiveLoanExists
}

// UpdateIfStatus applies the patch to the record with the given id if, and only if,
// its current status and revision match the expectation. The revision is incremented by one.
//
// Returns loanstore.ErrConcurrencyConflict when no record matched, which includes an unknown id.
func (ls *LoanStore) UpdateIfStatus(
	ctx context.Context,
	id string,
	expectation loanstore.Expectation,
	patch loanstore.Patch,
) (loanstore.Record, error) {

	tracer, ctx := ls.startTracing(ctx, operationUpdate, map[string]string{
		spanAttrLoanID:         id,
		spanAttrExpectedStatus: string(expectation.Status),
		spanAttrNewStatus:      string(patch.Status),
	})
	metrics := ls.startMetrics(ctx, operationUpdate, metricUpdateDuration)
	start := time.Now()

	sqlQuery, buildErr := ls.buildUpdateIfStatusQuery(id, expectation, patch)
	if buildErr != nil {
		ls.logErrorContext(ctx, logMsgBuildUpdateQueryFailed, buildErr, logAttrLoanID, id)
		metrics.recordError(errorTypeBuildQuery, time.Since(start))
		tracer.finishError(errorTypeBuildQuery, time.Since(start))

		return loanstore.Record{}, buildErr
	}

	records, duration, err := ls.queryRecords(ctx, sqlQuery, operationUpdate)
	if err != nil {
		metrics.recordError(errorTypeOf(err), duration)
		tracer.finishError(errorTypeOf(err), duration)

		return loanstore.Record{}, err
	}

	if len(records) == 0 {
		ls.logOperationContext(
			ctx,
			logMsgConcurrencyConflict,
			logAttrLoanID, id,
			logAttrExpectedStatus, string(expectation.Status),
			logAttrExpectedRevision, expectation.Revision,
		)
		metrics.recordConflict(metricConcurrencyConflicts, conflictTypeConcurrency, duration)
		tracer.finishError(errorTypeConcurrencyConflict, duration)

		return loanstore.Record{}, loanstore.ErrConcurrencyConflict
	}

	ls.logOperationContext(
		ctx,
		logMsgLoanUpdated,
		logAttrLoanID, id,
		logAttrNewStatus, string(patch.Status),
		logAttrDurationMS, toMilliseconds(duration),
	)
	metrics.recordSuccess(duration)
	tracer.finishSuccess(duration, map[string]string{spanAttrRowsAffected: "1"})

	return records[0], nil
}

// Get reads a single loan record by id. Returns loanstore.ErrLoanNotFound if it does not exist.
func (ls *LoanStore) Get(ctx context.Context, id string) (loanstore.Record, error) {
	tracer, ctx := ls.startTracing(ctx, operationGet, map[string]string{spanAttrLoanID: id})
	metrics := ls.startMetrics(ctx, operationGet, metricGetDuration)
	start := time.Now()

	sqlQuery, buildErr := ls.buildGetQuery(id)
	if buildErr != nil {
		ls.logErrorContext(ctx, logMsgBuildSelectQueryFailed, buildErr, logAttrLoanID, id)
		metrics.recordError(errorTypeBuildQuery, time.Since(start))
		tracer.finishError(errorTypeBuildQuery, time.Since(start))

		return loanstore.Record{}, buildErr
	}

	records, duration, err := ls.queryRecords(ctx, sqlQuery, operationGet)
	if err != nil {
		metrics.recordError(errorTypeOf(err), duration)
		tracer.finishError(errorTypeOf(err), duration)

		return loanstore.Record{}, err
	}

	if len(records) == 0 {
		metrics.recordSuccess(duration)
		tracer.finishError(errorTypeNotFound, duration)

		return loanstore.Record{}, loanstore.ErrLoanNotFound
	}

	metrics.recordSuccess(duration)
	tracer.finishSuccess(duration, map[string]string{spanAttrRecordCount: "1"})

	return records[0], nil
}

// QueryByUser returns all loan records of one user, newest first.
func (ls *LoanStore) QueryByUser(ctx context.Context, userID string) (loanstore.Records, error) {
	return ls.QueryAll(ctx, loanstore.BuildFilter().ForUser(userID).Finalize())
}

// QueryAll returns the loan records matching the filter, newest first.
func (ls *LoanStore) QueryAll(ctx context.Context, filter loanstore.Filter) (loanstore.Records, error) {
	tracer, ctx := ls.startTracing(ctx, operationQuery, map[string]string{
		spanAttrConsistency: loanstore.GetConsistencyLevel(ctx).String(),
	})
	metrics := ls.startMetrics(ctx, operationQuery, metricQueryDuration)
	start := time.Now()

	sqlQuery, buildErr := ls.buildSelectQuery(filter)
	if buildErr != nil {
		ls.logErrorContext(ctx, logMsgBuildSelectQueryFailed, buildErr)
		metrics.recordError(errorTypeBuildQuery, time.Since(start))
		tracer.finishError(errorTypeBuildQuery, time.Since(start))

		return nil, buildErr
	}

	records, duration, err := ls.queryRecords(ctx, sqlQuery, operationQuery)
	if err != nil {
		metrics.recordError(errorTypeOf(err), duration)
		tracer.finishError(errorTypeOf(err), duration)

		return nil, err
	}

	ls.logOperationContext(
		ctx,
		logMsgQueryCompleted,
		logAttrRecordCount, len(records),
		logAttrDurationMS, toMilliseconds(duration),
		logAttrConsistency, loanstore.GetConsistencyLevel(ctx).String(),
	)
	metrics.recordSuccess(duration)
	metrics.recordValue(metricRecordsQueried, float64(len(records)))
	tracer.finishSuccess(duration, map[string]string{spanAttrRecordCount: formatInt(len(records))})

	return records, nil
}

// queryRecords runs a statement returning loan record rows and scans all of them.
func (ls *LoanStore) queryRecords(ctx context.Context, sqlQuery string, action string) (
	loanstore.Records,
	time.Duration,
	error,
) {

	start := time.Now()
	rows, queryErr := ls.db.Query(ctx, sqlQuery)
	if queryErr != nil {
		duration := time.Since(start)
		ls.logQueryWithDurationContext(ctx, sqlQuery, action, duration)

		if isUniqueViolation(queryErr) {
			return nil, duration, errors.Join(loanstore.ErrActiveLoanExists, queryErr)
		}

		ls.logErrorContext(ctx, logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)

		return nil, duration, errors.Join(loanstore.ErrQueryingLoansFailed, queryErr)
	}
	defer ls.closeRows(ctx, rows)

	records, scanErr := ls.scanRecords(ctx, rows)
	duration := time.Since(start)
	ls.logQueryWithDurationContext(ctx, sqlQuery, action, duration)

	if scanErr != nil {
		return nil, duration, scanErr
	}

	return records, duration, nil
}

// closeRows safely closes database rows and logs any errors.
func (ls *LoanStore) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		ls.logWarnContext(ctx, logMsgCloseRowsFailed, closeErr)
	}
}
