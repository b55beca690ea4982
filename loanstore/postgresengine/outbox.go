package postgresengine

import (
	"context"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore"
)

const (
	colNotificationType = "notification_type"
	colLoanID           = "loan_id"
	colOccurredAt       = "occurred_at"
	colPayload          = "payload"
	colMetadata         = "metadata"
	colSequenceNumber   = "sequence_number"

	logMsgBuildOutboxQueryFailed = "failed to build outbox query"
	logMsgNotificationAppended   = "notification appended"
	logAttrNotificationType      = "notification_type"
)

// NotificationOutbox appends lifecycle notifications to the outbox table.
// It shares the connection, table configuration, and observability of the LoanStore it was created from.
type NotificationOutbox struct {
	ls *LoanStore
}

// NotificationOutbox returns the outbox living next to the loan table.
func (ls *LoanStore) NotificationOutbox() *NotificationOutbox {
	return &NotificationOutbox{ls: ls}
}

// Append inserts one notification into the outbox.
func (o *NotificationOutbox) Append(ctx context.Context, notification loanstore.StorableNotification) error {
	ls := o.ls
	tracer, ctx := ls.startTracing(ctx, operationOutboxAppend, map[string]string{
		spanAttrLoanID:          notification.LoanID,
		logAttrNotificationType: notification.NotificationType,
	})
	metrics := ls.startMetrics(ctx, operationOutboxAppend, metricOutboxAppendDuration)
	start := time.Now()

	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(ls.notificationTableName).
		Cols(colNotificationType, colLoanID, colUserID, colOccurredAt, colPayload, colMetadata).
		Vals(goqu.Vals{
			goqu.L(castText, notification.NotificationType),
			goqu.L(castText, notification.LoanID),
			goqu.L(castText, notification.UserID),
			goqu.L(castTimestamp, notification.OccurredAt.UTC()),
			goqu.L(castJsonb, string(notification.PayloadJSON)),
			goqu.L(castJsonb, string(notification.MetadataJSON)),
		})

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		ls.logErrorContext(ctx, logMsgBuildOutboxQueryFailed, toSQLErr)
		metrics.recordError(errorTypeBuildQuery, time.Since(start))
		tracer.finishError(errorTypeBuildQuery, time.Since(start))

		return errors.Join(loanstore.ErrBuildingQueryFailed, toSQLErr)
	}

	_, execErr := ls.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	ls.logQueryWithDurationContext(ctx, sqlQuery, operationOutboxAppend, duration)

	if execErr != nil {
		ls.logErrorContext(ctx, logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)
		metrics.recordError(errorTypeDatabaseExec, duration)
		tracer.finishError(errorTypeDatabaseExec, duration)

		return errors.Join(loanstore.ErrWritingLoanFailed, execErr)
	}

	ls.logOperationContext(
		ctx,
		logMsgNotificationAppended,
		logAttrLoanID, notification.LoanID,
		logAttrNotificationType, notification.NotificationType,
	)
	metrics.recordSuccess(duration)
	tracer.finishSuccess(duration, nil)

	return nil
}

// QueryForUser returns the most recent notifications of a user, newest first. A limit of zero means no limit.
func (o *NotificationOutbox) QueryForUser(
	ctx context.Context,
	userID string,
	limit uint,
) ([]loanstore.StorableNotification, error) {

	ls := o.ls

	selectStmt := goqu.Dialect(dialectPostgres).
		From(ls.notificationTableName).
		Select(colNotificationType, colLoanID, colUserID, colOccurredAt, colPayload, colMetadata).
		Where(goqu.C(colUserID).Eq(userID)).
		Order(goqu.I(colSequenceNumber).Desc())

	if limit > 0 {
		selectStmt = selectStmt.Limit(limit)
	}

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		ls.logErrorContext(ctx, logMsgBuildOutboxQueryFailed, toSQLErr)

		return nil, errors.Join(loanstore.ErrBuildingQueryFailed, toSQLErr)
	}

	start := time.Now()
	rows, queryErr := ls.db.Query(ctx, sqlQuery)
	ls.logQueryWithDurationContext(ctx, sqlQuery, operationQuery, time.Since(start))

	if queryErr != nil {
		ls.logErrorContext(ctx, logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)

		return nil, errors.Join(loanstore.ErrQueryingLoansFailed, queryErr)
	}
	defer ls.closeRows(ctx, rows)

	notifications := make([]loanstore.StorableNotification, 0)

	for rows.Next() {
		var n loanstore.StorableNotification

		if err := rows.Scan(&n.NotificationType, &n.LoanID, &n.UserID, &n.OccurredAt, &n.PayloadJSON, &n.MetadataJSON); err != nil {
			ls.logErrorContext(ctx, logMsgScanRowFailed, err)

			return nil, errors.Join(loanstore.ErrScanningDBRowFailed, err)
		}

		n.OccurredAt = n.OccurredAt.UTC()
		notifications = append(notifications, n)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, errors.Join(loanstore.ErrScanningDBRowFailed, rowsErr)
	}

	return notifications, nil
}
