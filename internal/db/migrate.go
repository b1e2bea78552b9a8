package db

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"popup-ads/db/migrations"
)

// ErrDirtySchema is returned when a previous migration failed half way.
var ErrDirtySchema = errors.New("database is in dirty state")

// Migrate moves the database at addr to migrations.Version using the
// embedded SQL files. It returns the version the schema was at before.
// A dirty schema is reported, never forced.
func Migrate(addr string) (previous uint, err error) {
	driver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return 0, fmt.Errorf("open migration source: %w", err)
	}
	defer driver.Close()

	mg, err := migrate.NewWithSourceInstance("iofs", driver, addr)
	if err != nil {
		return 0, fmt.Errorf("init migrate: %w", err)
	}
	defer mg.Close()

	previous, dirty, err := mg.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	if dirty {
		return previous, ErrDirtySchema
	}

	if err = mg.Migrate(migrations.Version); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return previous, fmt.Errorf("migrate to %d: %w", migrations.Version, err)
	}
	return previous, nil
}
