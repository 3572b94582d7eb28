// Package db owns the PostgreSQL schema: embedded goose migrations and the
// helpers that apply and inspect them.
//
// Migration files live in internal/db/migrations/ and are embedded via
// //go:embed. The server applies pending migrations on startup.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as database/sql driver
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"

	"github.com/wikipath/wikipath/internal/dbpool"
)

// newProvider opens a database/sql handle on the pool's connection string
// and builds a goose provider over fsys. The caller closes the returned DB.
func newProvider(pool *dbpool.Pool, fsys fs.FS) (*goose.Provider, *sql.DB, error) {
	sqlDB, err := sql.Open("pgx", pool.ConnString())
	if err != nil {
		return nil, nil, fmt.Errorf("opening sql.DB for migrations: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, fsys)
	if err != nil {
		sqlDB.Close()

		return nil, nil, fmt.Errorf("creating goose provider: %w", err)
	}

	return provider, sqlDB, nil
}

// RunMigrations applies all pending migrations from the provided filesystem.
// The fsys should contain goose-annotated SQL files (e.g. "00001_articles.sql").
func RunMigrations(ctx context.Context, pool *dbpool.Pool, log *logrus.Logger, fsys fs.FS) error {
	provider, sqlDB, err := newProvider(pool, fsys)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}

	for _, r := range results {
		if r.Error != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", r.Source.Version, r.Source.Path, r.Error)
		}

		log.WithFields(logrus.Fields{
			"version":  r.Source.Version,
			"file":     r.Source.Path,
			"duration": r.Duration,
		}).Info("migration applied")
	}

	if len(results) == 0 {
		log.Debug("all migrations already applied")
	}

	return nil
}

// CheckSchema reports an error when the database is behind the embedded
// migrations. The readiness probe uses it.
func CheckSchema(ctx context.Context, pool *dbpool.Pool, fsys fs.FS) error {
	provider, sqlDB, err := newProvider(pool, fsys)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	pending, err := provider.HasPending(ctx)
	if err != nil {
		return fmt.Errorf("checking pending migrations: %w", err)
	}

	if pending {
		return fmt.Errorf("schema behind: %d migrations embedded, database at %d", SchemaVersion(), currentVersion(ctx, provider))
	}

	return nil
}

func currentVersion(ctx context.Context, provider *goose.Provider) int64 {
	v, err := provider.GetDBVersion(ctx)
	if err != nil {
		return -1
	}

	return v
}
