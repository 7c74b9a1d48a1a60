package database

import (
	"errors"
	"fmt"
	"log"

	migrate "github.com/golang-migrate/migrate/v4"
	// Blank imports register the postgres driver and file source for
	// golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations applies every pending SQL migration from dir against the
// database at connString. A database that is already up to date is not an
// error.
func RunMigrations(connString, dir string) error {
	m, err := migrate.New("file://"+dir, connString)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Println("Migrations: no change")
			return nil
		}
		return fmt.Errorf("apply migrations: %w", err)
	}

	log.Println("Migrations applied")
	return nil
}
