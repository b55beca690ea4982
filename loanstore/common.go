package loanstore

import (
	"errors"
)

var (
	// ErrNilDatabaseConnection is returned when a store is constructed without a database connection.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrEmptyTableNameSupplied is returned when an empty table name is configured.
	ErrEmptyTableNameSupplied = errors.New("empty table name supplied")

	// ErrActiveLoanExists is returned by InsertIfAbsent when a pending or approved record
	// already exists for the same user and book.
	ErrActiveLoanExists = errors.New("an active loan record exists for this user and book")

	// ErrConcurrencyConflict is returned by UpdateIfStatus when the record no longer matches the expectation.
	ErrConcurrencyConflict = errors.New("concurrency error, no rows were affected")

	// ErrLoanNotFound is returned when no record exists for the given id.
	ErrLoanNotFound = errors.New("loan record not found")

	ErrBuildingQueryFailed       = errors.New("building query failed")
	ErrQueryingLoansFailed       = errors.New("querying loan records failed")
	ErrScanningDBRowFailed       = errors.New("scanning db row failed")
	ErrWritingLoanFailed         = errors.New("writing loan record failed")
	ErrGettingRowsAffectedFailed = errors.New("getting rows affected failed")
	ErrMappingColumnFailed       = errors.New("mapping column value failed")
)

// RevisionUint is the optimistic concurrency counter of a Record. It starts at 1 and grows with every update.
type RevisionUint = uint
