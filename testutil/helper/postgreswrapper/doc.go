// Package postgreswrapper provides test utilities for abstracting over different PostgreSQL database adapters.
//
// The same loan store test suite runs against pgx, sql.DB, or sqlx.DB, chosen by the ADAPTER_TYPE
// environment variable (pgx.pool, sql.db, sqlx.db). Tests are skipped when the test database is unreachable.
//
// Usage:
//
//	wrapper := CreateWrapperWithTestConfig(t)
//	defer wrapper.Close()
//	CleanUp(t, wrapper)
//
//	store := wrapper.GetLoanStore()
package postgreswrapper
