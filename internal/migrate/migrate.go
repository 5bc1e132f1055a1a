package migrate

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed sql/*.sql
var migrationsFS embed.FS

// Apply runs all pending migrations from the embedded SQL files and
// returns the schema version the database ends up at.
func Apply(ctx context.Context, pool *pgxpool.Pool) (uint, error) {
	m, cleanup, err := newMigrator(ctx, pool)
	if err != nil {
		return 0, err
	}
	defer cleanup()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("migrate up: %w", err)
	}
	return currentVersion(m)
}

// Rollback undoes the most recent migration.
func Rollback(ctx context.Context, pool *pgxpool.Pool) (uint, error) {
	m, cleanup, err := newMigrator(ctx, pool)
	if err != nil {
		return 0, err
	}
	defer cleanup()

	if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("migrate down: %w", err)
	}
	return currentVersion(m)
}

func newMigrator(ctx context.Context, pool *pgxpool.Pool) (*migrate.Migrate, func(), error) {
	srcDriver, err := iofs.New(migrationsFS, "sql")
	if err != nil {
		return nil, nil, fmt.Errorf("init iofs: %w", err)
	}

	sqlDB, err := sql.Open("pgx", pool.Config().ConnString())
	if err != nil {
		return nil, nil, fmt.Errorf("open sql db: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("ping sql db: %w", err)
	}

	dbDriver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("init db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", srcDriver, "pgx", dbDriver)
	if err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("init migrate: %w", err)
	}

	cleanup := func() {
		m.Close()
		sqlDB.Close()
	}
	return m, cleanup, nil
}

func currentVersion(m *migrate.Migrate) (uint, error) {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("schema version %d is dirty", version)
	}
	return version, nil
}
