package sqlite

import (
	"database/sql"
	"embed"
	"fmt"

	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"

	"github.com/umaralireal1/qisst2026/internal/storage/sqlstore"
)

// migrationFiles holds the schema, applied in version order on startup.
//
//go:embed migrations/*.sql
var migrationFiles embed.FS

// runMigrations brings the schema up to date.
func runMigrations(db *sql.DB) error {
	driver, err := sqlitemigrate.WithInstance(db, &sqlitemigrate.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}
	// The driver is not closed: closing it would close db.
	return sqlstore.Migrate(migrationFiles, "migrations", "sqlite", driver)
}
