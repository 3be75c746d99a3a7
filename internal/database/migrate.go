package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	nuts "github.com/vaudience/go-nuts"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrateUp applies all pending schema migrations.
func MigrateUp(ctx context.Context, db DB) error {
	return withMigrate(ctx, db, func(m *migrate.Migrate) error {
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration up failed: %w", err)
		}

		version, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			return fmt.Errorf("failed to read migration version: %w", err)
		}
		nuts.L.Infof("[Migrate] Schema at version %d (dirty=%v)", version, dirty)
		return nil
	})
}

// MigrateDown rolls back the most recent migration.
func MigrateDown(ctx context.Context, db DB) error {
	return withMigrate(ctx, db, func(m *migrate.Migrate) error {
		if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration down failed: %w", err)
		}
		return nil
	})
}

// withMigrate runs fn on a migrate instance bound to one dedicated pool
// connection. The connection is back in the pool when withMigrate returns.
func withMigrate(ctx context.Context, db DB, fn func(m *migrate.Migrate) error) error {
	conn, err := db.GetDB().Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire migration connection: %w", err)
	}

	m, err := newMigrate(ctx, conn)
	if err != nil {
		conn.Close()
		return err
	}
	// Closing m closes the driver, which closes conn and nothing else.
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			nuts.L.Warnf("[Migrate] Failed to close migrate instance: source=%v database=%v", srcErr, dbErr)
		}
	}()

	return fn(m)
}

func newMigrate(ctx context.Context, conn *sql.Conn) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	driver, err := postgres.WithConnection(ctx, conn, &postgres.Config{})
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("failed to create postgres migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	m.Log = &migrateLogger{}
	return m, nil
}

// migrateLogger implements migrate.Logger
type migrateLogger struct{}

func (l *migrateLogger) Printf(format string, v ...interface{}) {
	nuts.L.Infof("[Migrate] "+format, v...)
}

func (l *migrateLogger) Verbose() bool {
	return false
}
