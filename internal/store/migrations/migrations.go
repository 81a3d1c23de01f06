// Package migrations creates the SQLite task schema.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"todo-cli/internal/log"
)

//go:embed sql/*.sql
var migrationFiles embed.FS

// Migrator applies the embedded schema to a SQLite database.
type Migrator struct {
	db     *sql.DB
	logger log.Logger
}

func NewMigrator(db *sql.DB, logger log.Logger) (*Migrator, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	if logger == nil {
		logger = log.Noop
	}
	return &Migrator{db: db, logger: logger}, nil
}

// Up applies pending migrations. Already-current databases are a no-op.
func (m *Migrator) Up() error {
	inst, closeSrc, err := m.instance()
	defer closeSrc()
	if err != nil {
		return err
	}

	if err := inst.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}
	m.logger.Debugf("schema is up to date")
	return nil
}

func (m *Migrator) instance() (*migrate.Migrate, func(), error) {
	closeSrc := func() {}

	driver, err := migratesqlite.WithInstance(m.db, &migratesqlite.Config{})
	if err != nil {
		return nil, closeSrc, fmt.Errorf("could not create driver: %w", err)
	}

	src, err := iofs.New(migrationFiles, "sql")
	if err != nil {
		return nil, closeSrc, fmt.Errorf("could not create fs: %w", err)
	}
	closeSrc = func() {
		if err := src.Close(); err != nil {
			m.logger.Errorf("could not close migration source: %s", err)
		}
	}

	inst, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return nil, closeSrc, fmt.Errorf("could not create migration instance: %w", err)
	}
	return inst, closeSrc, nil
}
