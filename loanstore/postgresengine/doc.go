// Package postgresengine provides the PostgreSQL implementation of the loan record store.
//
// It supports three database adapters (pgx, sql.DB, sqlx) and builds all SQL with goqu.
// Every write is one conditional statement, so concurrent requests can never create two active
// loans for the same user and book, and a transition applies at most once.
//
// Usage examples:
//
//	// Basic usage
//	db, _ := pgxpool.New(context.Background(), dsn)
//	store, _ := postgresengine.NewLoanStoreFromPGXPool(db)
//	_ = store.CreateSchema(ctx)
//
//	// With observability
//	store, _ := postgresengine.NewLoanStoreFromPGXPool(
//		db,
//		postgresengine.WithTableName("my_loans"),
//		postgresengine.WithContextualLogger(logger),
//		postgresengine.WithMetrics(metricsCollector),
//		postgresengine.WithTracing(tracingCollector),
//	)
//
//	record, err := store.InsertIfAbsent(ctx, newRecord)
//	updated, err := store.UpdateIfStatus(ctx, record.ID, loanstore.ExpectationFrom(record), patch)
package postgresengine
