package postgreswrapper

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/shell/config"
	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore/postgresengine"
)

// Engine type constants
const (
	typePGXPool = config.AdapterTypePGXPool
	typeSQLDB   = config.AdapterTypeSQLDB
	typeSQLXDB  = config.AdapterTypeSQLXDB

	connectTimeout = 3 * time.Second
	truncateTables = "TRUNCATE TABLE loan_requests, loan_notifications RESTART IDENTITY"
)

// Wrapper interface to abstract over different engine types
type Wrapper interface {
	GetLoanStore() *postgresengine.LoanStore
	Close()
}

// PGXPoolWrapper wraps pgxpool-based testing
type PGXPoolWrapper struct {
	pool *pgxpool.Pool
	ls   *postgresengine.LoanStore
}

func (e *PGXPoolWrapper) GetLoanStore() *postgresengine.LoanStore {
	return e.ls
}

func (e *PGXPoolWrapper) Close() {
	e.pool.Close()
}

// SQLDBWrapper wraps sql.DB-based testing
type SQLDBWrapper struct {
	db *sql.DB
	ls *postgresengine.LoanStore
}

func (e *SQLDBWrapper) GetLoanStore() *postgresengine.LoanStore {
	return e.ls
}

func (e *SQLDBWrapper) Close() {
	_ = e.db.Close() // ignore error
}

// SQLXWrapper wraps sqlx.DB-based testing
type SQLXWrapper struct {
	db *sqlx.DB
	ls *postgresengine.LoanStore
}

func (e *SQLXWrapper) GetLoanStore() *postgresengine.LoanStore {
	return e.ls
}

func (e *SQLXWrapper) Close() {
	_ = e.db.Close() // ignore error
}

// CreateWrapperWithTestConfig creates the appropriate wrapper based on the ADAPTER_TYPE environment variable,
// makes sure the schema exists, and skips the test if the test database is unreachable.
func CreateWrapperWithTestConfig(t testing.TB, options ...postgresengine.Option) Wrapper {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	engineTypeFromEnv := strings.ToLower(os.Getenv("ADAPTER_TYPE"))

	var wrapper Wrapper

	switch engineTypeFromEnv {
	case typePGXPool, "":
		poolConfig, err := config.PostgresPGXPoolTestConfig()
		assert.NoError(t, err, "error creating the pool config in test setup")

		connPool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err == nil {
			err = connPool.Ping(ctx)
		}

		if err != nil {
			t.Skipf("test database unreachable: %v", err)
		}

		ls, err := postgresengine.NewLoanStoreFromPGXPool(connPool, options...)
		assert.NoError(t, err, "error creating the loan store in test setup")
		wrapper = &PGXPoolWrapper{pool: connPool, ls: ls}

	case typeSQLDB:
		db, err := config.PostgresSQLDBTestConfig(ctx)
		if err != nil {
			t.Skipf("test database unreachable: %v", err)
		}

		ls, err := postgresengine.NewLoanStoreFromSQLDB(db, options...)
		assert.NoError(t, err, "error creating the loan store in test setup")
		wrapper = &SQLDBWrapper{db: db, ls: ls}

	case typeSQLXDB:
		db, err := config.PostgresSQLXTestConfig(ctx)
		if err != nil {
			t.Skipf("test database unreachable: %v", err)
		}

		ls, err := postgresengine.NewLoanStoreFromSQLX(db, options...)
		assert.NoError(t, err, "error creating the loan store in test setup")
		wrapper = &SQLXWrapper{db: db, ls: ls}

	default: // neither one of the known types nor empty
		panic(fmt.Sprintf("unsupported wrapper type from env: %s", engineTypeFromEnv))
	}

	assert.NoError(t, wrapper.GetLoanStore().CreateSchema(ctx), "error creating the schema in test setup")

	return wrapper
}

// CleanUp truncates the loan and notification tables for the given wrapper
func CleanUp(t testing.TB, wrapper Wrapper) {
	t.Helper()

	var err error

	switch e := wrapper.(type) {
	case *PGXPoolWrapper:
		_, err = e.pool.Exec(context.Background(), truncateTables)

	case *SQLDBWrapper:
		_, err = e.db.Exec(truncateTables)

	case *SQLXWrapper:
		_, err = e.db.Exec(truncateTables)

	default:
		panic(fmt.Sprintf("unsupported wrapper type: %T", e))
	}

	assert.NoError(t, err, "error cleaning up the loan tables")
}
