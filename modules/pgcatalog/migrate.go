package pgcatalog

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// NewPool creates a pgx connection pool and checks it is reachable.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgcatalog: open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pgcatalog: ping: %w", err)
	}
	return pool, nil
}

// Migrate applies the embedded schema migrations to the database at dsn.
func Migrate(dsn string, logger *slog.Logger) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("pgcatalog: migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, dsn)
	if err != nil {
		return fmt.Errorf("pgcatalog: migration init: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("pgcatalog: migration up: %w", err)
	}

	return reportVersion(m, logger)
}

type versioner interface {
	Version() (version uint, dirty bool, err error)
}

// reportVersion logs the schema version reached by a migration run. A dirty
// schema or a failed version query is returned as an error.
func reportVersion(m versioner, logger *slog.Logger) error {
	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		if logger != nil {
			logger.Info("pgcatalog.migrated", "version", "none")
		}
		return nil
	case err != nil:
		return fmt.Errorf("pgcatalog: migration version: %w", err)
	case dirty:
		return fmt.Errorf("pgcatalog: schema version %d is dirty", version)
	}

	if logger != nil {
		logger.Info("pgcatalog.migrated", "version", version)
	}
	return nil
}
