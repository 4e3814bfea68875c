// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/umaralireal1/qisst2026/internal/models"
)

// Store defines the persistence contract for the book's snapshot.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the book or service layer.
type Store interface {
	// LoadSnapshot reads the whole dataset. An empty store yields a snapshot with
	// empty (non-nil) collections and no error.
	LoadSnapshot(ctx context.Context) (models.Snapshot, error)

	// SaveSnapshot replaces everything stored with snap in one transaction.
	// On error nothing is changed.
	SaveSnapshot(ctx context.Context, snap models.Snapshot) error

	// Close releases any resources held by the store.
	Close() error
}
