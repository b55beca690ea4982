package postgresengine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore"
)

const logMsgCreateSchemaFailed = "failed to create schema"

const createLoanTableSQL = `CREATE TABLE IF NOT EXISTS %[1]s (
	id              TEXT PRIMARY KEY,
	user_id         TEXT NOT NULL,
	book_id         TEXT NOT NULL,
	book_title      TEXT NOT NULL DEFAULT '',
	book_authors    JSONB NOT NULL DEFAULT '[]'::jsonb,
	book_image      TEXT NOT NULL DEFAULT '',
	status          TEXT NOT NULL CHECK (status IN ('pending', 'approved', 'rejected', 'returned')),
	requested_at    TIMESTAMP WITH TIME ZONE NOT NULL,
	responded_at    TIMESTAMP WITH TIME ZONE,
	responded_by    TEXT,
	due_date        TIMESTAMP WITH TIME ZONE,
	returned_at     TIMESTAMP WITH TIME ZONE,
	notes           TEXT,
	extension_count INTEGER NOT NULL DEFAULT 0,
	revision        BIGINT NOT NULL DEFAULT 1
)`

const createActiveLoanIndexSQL = `CREATE UNIQUE INDEX IF NOT EXISTS %[1]s_one_active_per_user_book
	ON %[1]s (user_id, book_id)
	WHERE status IN ('pending', 'approved')`

const createUserIndexSQL = `CREATE INDEX IF NOT EXISTS %[1]s_user_requested
	ON %[1]s (user_id, requested_at DESC)`

const createStatusIndexSQL = `CREATE INDEX IF NOT EXISTS %[1]s_status_requested
	ON %[1]s (status, requested_at DESC)`

const createNotificationTableSQL = `CREATE TABLE IF NOT EXISTS %[1]s (
	sequence_number   BIGSERIAL PRIMARY KEY,
	notification_type TEXT NOT NULL,
	loan_id           TEXT NOT NULL,
	user_id           TEXT NOT NULL,
	occurred_at       TIMESTAMP WITH TIME ZONE NOT NULL,
	payload           JSONB NOT NULL,
	metadata          JSONB NOT NULL
)`

const createNotificationUserIndexSQL = `CREATE INDEX IF NOT EXISTS %[1]s_user
	ON %[1]s (user_id, sequence_number DESC)`

// CreateSchema creates the loan table with its partial unique index on active records
// and the notification outbox table. It is idempotent.
func (ls *LoanStore) CreateSchema(ctx context.Context) error {
	tracer, ctx := ls.startTracing(ctx, operationCreateSchema, nil)
	start := time.Now()

	statements := []string{
		fmt.Sprintf(createLoanTableSQL, ls.loanTableName),
		fmt.Sprintf(createActiveLoanIndexSQL, ls.loanTableName),
		fmt.Sprintf(createUserIndexSQL, ls.loanTableName),
		fmt.Sprintf(createStatusIndexSQL, ls.loanTableName),
		fmt.Sprintf(createNotificationTableSQL, ls.notificationTableName),
		fmt.Sprintf(createNotificationUserIndexSQL, ls.notificationTableName),
	}

	for _, statement := range statements {
		if _, err := ls.db.Exec(ctx, statement); err != nil {
			ls.logErrorContext(ctx, logMsgCreateSchemaFailed, err, logAttrQuery, statement)
			tracer.finishError(errorTypeDatabaseExec, time.Since(start))

			return errors.Join(loanstore.ErrWritingLoanFailed, err)
		}

		ls.logQueryWithDurationContext(ctx, statement, operationCreateSchema, time.Since(start))
	}

	tracer.finishSuccess(time.Since(start), nil)

	return nil
}
