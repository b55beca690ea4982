// Package storage opens the loan store selected by the configuration.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/lifecycle"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/shell/config"
	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore/memoryengine"
	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore/postgresengine"
)

// ErrCreatingSchemaFailed is returned by Open when the tables could not be created.
var ErrCreatingSchemaFailed = errors.New("creating the schema failed")

// LoanStore is what the lifecycle service and the views need from a store engine.
type LoanStore interface {
	lifecycle.LoanStore
	lifecycle.LoanReader
}

// Storage holds the opened store and everything that must be closed with it.
type Storage struct {
	Loans LoanStore

	// Outbox is nil for the memory engine.
	Outbox *postgresengine.NotificationOutbox

	closers []func() error
}

// OnClose registers fn to run when the storage is closed. Closers run in reverse order.
func (s *Storage) OnClose(fn func() error) {
	s.closers = append(s.closers, fn)
}

// Close releases all connections and returns every close failure joined.
func (s *Storage) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Open connects to the configured engine. With CreateSchema set the tables are created if missing.
func Open(ctx context.Context, dbCfg config.DatabaseConfig, obs lifecycle.ObservabilityConfig) (*Storage, error) {
	if dbCfg.Engine == config.EngineMemory {
		return &Storage{Loans: memoryengine.NewLoanStore()}, nil
	}

	options := []postgresengine.Option{
		postgresengine.WithTableName(dbCfg.LoanTable),
		postgresengine.WithNotificationTableName(dbCfg.NotificationTable),
	}
	if obs.Logger != nil {
		options = append(options, postgresengine.WithLogger(obs.Logger))
	}
	if obs.ContextualLogger != nil {
		options = append(options, postgresengine.WithContextualLogger(obs.ContextualLogger))
	}
	if obs.MetricsCollector != nil {
		options = append(options, postgresengine.WithMetrics(obs.MetricsCollector))
	}
	if obs.TracingCollector != nil {
		options = append(options, postgresengine.WithTracing(obs.TracingCollector))
	}

	s := &Storage{}
	pgStore, err := openPostgres(ctx, dbCfg, s, options...)
	if err != nil {
		_ = s.Close()
		return nil, err
	}

	if dbCfg.CreateSchema {
		if err := pgStore.CreateSchema(ctx); err != nil {
			_ = s.Close()
			return nil, errors.Join(ErrCreatingSchemaFailed, err)
		}
	}

	s.Loans = pgStore
	s.Outbox = pgStore.NotificationOutbox()

	return s, nil
}

func openPostgres(
	ctx context.Context,
	dbCfg config.DatabaseConfig,
	s *Storage,
	options ...postgresengine.Option,
) (*postgresengine.LoanStore, error) {

	switch dbCfg.AdapterType {
	case config.AdapterTypePGXPool:
		pool, err := openPGXPool(ctx, dbCfg.DSN)
		if err != nil {
			return nil, err
		}
		s.OnClose(closeFunc(pool.Close))

		if dbCfg.ReplicaDSN == "" {
			return postgresengine.NewLoanStoreFromPGXPool(pool, options...)
		}

		replica, err := openPGXPool(ctx, dbCfg.ReplicaDSN)
		if err != nil {
			return nil, err
		}
		s.OnClose(closeFunc(replica.Close))

		return postgresengine.NewLoanStoreFromPGXPoolAndReplica(pool, replica, options...)

	case config.AdapterTypeSQLDB:
		db, err := config.PostgresSQLDB(ctx, dbCfg.DSN)
		if err != nil {
			return nil, err
		}
		s.OnClose(db.Close)

		return postgresengine.NewLoanStoreFromSQLDB(db, options...)

	case config.AdapterTypeSQLXDB:
		db, err := config.PostgresSQLX(ctx, dbCfg.DSN)
		if err != nil {
			return nil, err
		}
		s.OnClose(db.Close)

		return postgresengine.NewLoanStoreFromSQLX(db, options...)

	default:
		return nil, fmt.Errorf("unknown adapter type %q", dbCfg.AdapterType)
	}
}

func openPGXPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolCfg, err := config.PostgresPGXPoolConfig(dsn)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

func closeFunc(fn func()) func() error {
	return func() error {
		fn()
		return nil
	}
}
