// Package adapters provide database adapter implementations for the PostgreSQL loan record store.
//
// The store supports three PostgreSQL connection types: pgx.Pool, sql.DB, and sqlx.DB.
// Each adapter hides the library specifics behind the DBAdapter interface,
// so the store builds its SQL once with goqu and executes it through whichever connection it was given.
package adapters
