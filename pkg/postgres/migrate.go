package postgres

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // register postgres driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // register file source driver
)

// MigrationResult reports the schema version after a migration run.
type MigrationResult struct {
	Version uint
	Dirty   bool
	Changed bool
}

// Migrate applies pending migrations from source (for example
// "file://migrations") to the database at dsn.
func Migrate(source, dsn string) (MigrationResult, error) {
	return run(source, dsn, (*migrate.Migrate).Up)
}

// MigrateDown rolls back every applied migration.
func MigrateDown(source, dsn string) (MigrationResult, error) {
	return run(source, dsn, (*migrate.Migrate).Down)
}

func run(source, dsn string, step func(*migrate.Migrate) error) (MigrationResult, error) {
	m, err := migrate.New(source, dsn)
	if err != nil {
		return MigrationResult{}, fmt.Errorf("postgres: create migrator: %w", err)
	}
	defer m.Close()

	var res MigrationResult
	switch err := step(m); {
	case errors.Is(err, migrate.ErrNoChange):
	case err != nil:
		return MigrationResult{}, fmt.Errorf("postgres: migrate: %w", err)
	default:
		res.Changed = true
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return MigrationResult{}, fmt.Errorf("postgres: read schema version: %w", err)
	}
	res.Version, res.Dirty = version, dirty
	return res, nil
}
