package main

import (
	"context"
	"fmt"

	"github.com/Strob0t/clientdesk/internal/adapter/postgres"
	"github.com/Strob0t/clientdesk/internal/adapter/sqlite"
	"github.com/Strob0t/clientdesk/internal/config"
	"github.com/Strob0t/clientdesk/internal/port/database"
)

// openStore connects the configured driver and applies pending migrations.
// The returned cleanup releases the connection.
func openStore(ctx context.Context, cfg *config.Config) (database.Store, func(), error) {
	switch cfg.Store.Driver {
	case "sqlite":
		store, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite: %w", err)
		}
		return store, func() { _ = store.Close() }, nil
	default:
		if err := postgres.RunMigrations(ctx, cfg.Postgres.DSN); err != nil {
			return nil, nil, fmt.Errorf("migrations: %w", err)
		}
		pool, err := postgres.NewPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres: %w", err)
		}
		return postgres.NewStore(pool), pool.Close, nil
	}
}

// migrator runs schema migrations for the configured driver.
type migrator struct {
	up      func(ctx context.Context) error
	down    func(ctx context.Context, steps int) error
	version func(ctx context.Context) (int64, error)
	close   func()
}

func newMigrator(ctx context.Context, cfg *config.Config) (*migrator, error) {
	if cfg.Store.Driver != "sqlite" {
		dsn := cfg.Postgres.DSN
		return &migrator{
			up: func(ctx context.Context) error { return postgres.RunMigrations(ctx, dsn) },
			down: func(ctx context.Context, steps int) error {
				return postgres.RollbackMigrations(ctx, dsn, steps)
			},
			version: func(ctx context.Context) (int64, error) { return postgres.MigrationVersion(ctx, dsn) },
			close:   func() {},
		}, nil
	}

	db, err := sqlite.OpenDB(ctx, cfg.SQLite.Path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: %w", err)
	}
	return &migrator{
		up: func(ctx context.Context) error {
			_, err := sqlite.Migrate(ctx, db)
			return err
		},
		down:    func(ctx context.Context, steps int) error { return sqlite.Rollback(ctx, db, steps) },
		version: func(ctx context.Context) (int64, error) { return sqlite.Version(ctx, db) },
		close:   func() { _ = db.Close() },
	}, nil
}
