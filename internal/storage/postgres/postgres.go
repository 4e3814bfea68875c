// Package postgres provides a PostgreSQL-backed implementation of the storage.Store interface.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/lib/pq"

	"github.com/umaralireal1/qisst2026/internal/models"
	"github.com/umaralireal1/qisst2026/internal/storage"
	"github.com/umaralireal1/qisst2026/internal/storage/sqlstore"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

var _ storage.Store = (*PostgresStore)(nil)

// PostgresStore implements storage.Store on a PostgreSQL database.
type PostgresStore struct {
	db *sql.DB
}

// New connects to databaseURL, checks the connection and runs migrations.
func New(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}
	if err := sqlstore.Migrate(migrationFiles, "migrations", "postgres", driver); err != nil {
		db.Close()
		return nil, err
	}

	return &PostgresStore{db: db}, nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// LoadSnapshot reads every circle, member, attendance record and draw.
func (s *PostgresStore) LoadSnapshot(ctx context.Context) (models.Snapshot, error) {
	return sqlstore.Load(ctx, s.db)
}

// SaveSnapshot replaces the stored snapshot.
func (s *PostgresStore) SaveSnapshot(ctx context.Context, snap models.Snapshot) error {
	return sqlstore.Save(ctx, s.db, sqlstore.Dollar, snap)
}
