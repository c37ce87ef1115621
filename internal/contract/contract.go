// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"github.com/huangsam/repocat/schema"
)

// TableManager defines the interface for opening the configured table store.
// This allows the store layer to be mocked for testing.
type TableManager interface {
	GetTableStore() TableStore
}

// TableStore defines the interface for the persisted metrics table.
type TableStore interface {
	// Import replaces the rows of every collection present in records and
	// returns the number of rows written.
	Import(records []schema.ProjectMetrics) (int, error)

	// Load returns the rows of one collection in import order, or all rows
	// when collection is empty.
	Load(collection string) ([]schema.ProjectMetrics, error)

	// Collections lists the stored collections with their row counts.
	Collections() ([]schema.CollectionInfo, error)

	// GetStatus returns status information about the store
	GetStatus() (schema.StoreStatus, error)

	// Clear removes every stored row
	Clear() error

	// Close closes the underlying connection
	Close() error
}
