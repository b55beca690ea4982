package postgresengine

import (
	"context"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // driver import
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore"
	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore/postgresengine/internal/adapters"
)

const (
	colID             = "id"
	colUserID         = "user_id"
	colBookID         = "book_id"
	colBookTitle      = "book_title"
	colBookAuthors    = "book_authors"
	colBookImage      = "book_image"
	colStatus         = "status"
	colRequestedAt    = "requested_at"
	colRespondedAt    = "responded_at"
	colRespondedBy    = "responded_by"
	colDueDate        = "due_date"
	colReturnedAt     = "returned_at"
	colNotes          = "notes"
	colExtensionCount = "extension_count"
	colRevision       = "revision"
	dialectPostgres   = "postgres"
	castText          = "?::text"
	castTimestamp     = "?::timestamp with time zone"
	castJsonb         = "?::jsonb"
	castInteger       = "?::integer"
	castBigint        = "?::bigint"
	notExists         = "NOT EXISTS ?"
	incrementRevision = colRevision + " + 1"
)

var recordColumns = []any{
	colID,
	colUserID,
	colBookID,
	colBookTitle,
	colBookAuthors,
	colBookImage,
	colStatus,
	colRequestedAt,
	colRespondedAt,
	colRespondedBy,
	colDueDate,
	colReturnedAt,
	colNotes,
	colExtensionCount,
	colRevision,
}

// recordRow mirrors one row of the loan table. Nullable columns scan into pointers,
// which works the same for pgx and database/sql.
type recordRow struct {
	id             string
	userID         string
	bookID         string
	bookTitle      string
	bookAuthors    []byte
	bookImage      string
	status         string
	requestedAt    time.Time
	respondedAt    *time.Time
	respondedBy    *string
	dueDate        *time.Time
	returnedAt     *time.Time
	notes          *string
	extensionCount int
	revision       int64
}

func (ls *LoanStore) buildInsertIfAbsentQuery(record loanstore.Record) (sqlQueryString, error) {
	authorsJSON, marshalErr := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(nonNilAuthors(record.BookAuthors))
	if marshalErr != nil {
		return "", errors.Join(loanstore.ErrBuildingQueryFailed, marshalErr)
	}

	builder := goqu.Dialect(dialectPostgres)

	// an active record for the same user and book blocks the insert
	activeRecordStmt := builder.
		From(ls.loanTableName).
		Select(goqu.L("1")).
		Where(goqu.Ex{
			colUserID: record.UserID,
			colBookID: record.BookID,
			colStatus: activeStatusValues(),
		})

	selectStmt := builder.
		Select(
			goqu.L(castText, record.ID),
			goqu.L(castText, record.UserID),
			goqu.L(castText, record.BookID),
			goqu.L(castText, record.BookTitle),
			goqu.L(castJsonb, string(authorsJSON)),
			goqu.L(castText, record.BookImage),
			goqu.L(castText, string(record.Status)),
			goqu.L(castTimestamp, record.RequestedAt.UTC()),
			goqu.L(castTimestamp, nullableTime(record.RespondedAt)),
			goqu.L(castText, nullableString(record.RespondedBy)),
			goqu.L(castTimestamp, nullableTime(record.DueDate)),
			goqu.L(castTimestamp, nullableTime(record.ReturnedAt)),
			goqu.L(castText, nullableString(record.Notes)),
			goqu.L(castInteger, record.ExtensionCount),
			goqu.L(castBigint, record.Revision),
		).
		Where(goqu.L(notExists, activeRecordStmt))

	insertStmt := builder.
		Insert(ls.loanTableName).
		Cols(recordColumns...).
		FromQuery(selectStmt)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(loanstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (ls *LoanStore) buildUpdateIfStatusQuery(
	id string,
	expectation loanstore.Expectation,
	patch loanstore.Patch,
) (sqlQueryString, error) {

	updateStmt := goqu.Dialect(dialectPostgres).
		Update(ls.loanTableName).
		Set(goqu.Record{
			colStatus:         string(patch.Status),
			colRespondedAt:    goqu.L(castTimestamp, nullableTime(patch.RespondedAt)),
			colRespondedBy:    goqu.L(castText, nullableString(patch.RespondedBy)),
			colDueDate:        goqu.L(castTimestamp, nullableTime(patch.DueDate)),
			colReturnedAt:     goqu.L(castTimestamp, nullableTime(patch.ReturnedAt)),
			colNotes:          goqu.L(castText, nullableString(patch.Notes)),
			colExtensionCount: patch.ExtensionCount,
			colRevision:       goqu.L(incrementRevision),
		}).
		Where(goqu.Ex{
			colID:       id,
			colStatus:   string(expectation.Status),
			colRevision: expectation.Revision,
		}).
		Returning(recordColumns...)

	sqlQuery, _, toSQLErr := updateStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(loanstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (ls *LoanStore) buildGetQuery(id string) (sqlQueryString, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(ls.loanTableName).
		Select(recordColumns...).
		Where(goqu.Ex{colID: id})

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(loanstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (ls *LoanStore) buildSelectQuery(filter loanstore.Filter) (sqlQueryString, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(ls.loanTableName).
		Select(recordColumns...).
		Order(goqu.I(colRequestedAt).Desc(), goqu.I(colID).Desc())

	selectStmt = ls.addWhereClause(filter, selectStmt)

	if filter.Limit() > 0 {
		selectStmt = selectStmt.Limit(filter.Limit())
	}

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(loanstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (ls *LoanStore) addWhereClause(filter loanstore.Filter, selectStmt *goqu.SelectDataset) *goqu.SelectDataset {
	expressions := make([]goqu.Expression, 0)

	if statuses := filter.Statuses(); len(statuses) > 0 {
		statusValues := make([]string, 0, len(statuses))
		for _, status := range statuses {
			statusValues = append(statusValues, string(status))
		}

		// statuses must always be filtered with OR ;-)
		expressions = append(expressions, goqu.C(colStatus).In(statusValues))
	}

	if filter.UserID() != "" {
		expressions = append(expressions, goqu.C(colUserID).Eq(filter.UserID()))
	}

	if filter.BookID() != "" {
		expressions = append(expressions, goqu.C(colBookID).Eq(filter.BookID()))
	}

	if !filter.RequestedFrom().IsZero() {
		expressions = append(expressions, goqu.C(colRequestedAt).Gte(filter.RequestedFrom().UTC()))
	}

	if !filter.RequestedUntil().IsZero() {
		expressions = append(expressions, goqu.C(colRequestedAt).Lte(filter.RequestedUntil().UTC()))
	}

	if len(expressions) == 0 {
		return selectStmt
	}

	return selectStmt.Where(goqu.And(expressions...))
}

// scanRecords scans all rows into loan records.
func (ls *LoanStore) scanRecords(ctx context.Context, rows adapters.DBRows) (loanstore.Records, error) {
	records := make(loanstore.Records, 0)

	for rows.Next() {
		row := recordRow{}

		rowScanErr := rows.Scan(
			&row.id,
			&row.userID,
			&row.bookID,
			&row.bookTitle,
			&row.bookAuthors,
			&row.bookImage,
			&row.status,
			&row.requestedAt,
			&row.respondedAt,
			&row.respondedBy,
			&row.dueDate,
			&row.returnedAt,
			&row.notes,
			&row.extensionCount,
			&row.revision,
		)
		if rowScanErr != nil {
			ls.logErrorContext(ctx, logMsgScanRowFailed, rowScanErr)

			return nil, errors.Join(loanstore.ErrScanningDBRowFailed, rowScanErr)
		}

		record, mapErr := row.toRecord()
		if mapErr != nil {
			ls.logErrorContext(ctx, logMsgScanRowFailed, mapErr, logAttrLoanID, row.id)

			return nil, mapErr
		}

		records = append(records, record)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		ls.logErrorContext(ctx, logMsgScanRowFailed, rowsErr)

		return nil, errors.Join(loanstore.ErrScanningDBRowFailed, rowsErr)
	}

	return records, nil
}

func (row recordRow) toRecord() (loanstore.Record, error) {
	authors := make([]string, 0)

	if len(row.bookAuthors) > 0 {
		if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(row.bookAuthors, &authors); err != nil {
			return loanstore.Record{}, errors.Join(loanstore.ErrMappingColumnFailed, err)
		}
	}

	status := loanstore.Status(row.status)
	if !status.IsValid() {
		return loanstore.Record{}, errors.Join(loanstore.ErrMappingColumnFailed, loanstore.ErrInvalidRecord)
	}

	return loanstore.Record{
		ID:             row.id,
		UserID:         row.userID,
		BookID:         row.bookID,
		BookTitle:      row.bookTitle,
		BookAuthors:    authors,
		BookImage:      row.bookImage,
		Status:         status,
		RequestedAt:    row.requestedAt.UTC(),
		RespondedAt:    utcOrNil(row.respondedAt),
		RespondedBy:    row.respondedBy,
		DueDate:        utcOrNil(row.dueDate),
		ReturnedAt:     utcOrNil(row.returnedAt),
		Notes:          row.notes,
		ExtensionCount: row.extensionCount,
		Revision:       loanstore.RevisionUint(row.revision), //nolint:gosec
	}, nil
}

func activeStatusValues() []string {
	active := loanstore.ActiveStatuses()
	values := make([]string, 0, len(active))

	for _, status := range active {
		values = append(values, string(status))
	}

	return values
}

func nonNilAuthors(authors []string) []string {
	if authors == nil {
		return []string{}
	}

	return authors
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}

	return t.UTC()
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}

	return *s
}

func utcOrNil(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	utc := t.UTC()

	return &utc
}
