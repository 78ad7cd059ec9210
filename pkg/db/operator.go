package db

import (
	"context"

	"github.com/gnames/gnplet/pkg/config"
	"gorm.io/gorm"
)

// Operator defines the interface for basic database management operations.
// It manages the connection lifecycle and exposes a *gorm.DB for the
// high-level components (SchemaManager, Importer, lookup loader).
//
// The backend is PostgreSQL or SQLite, chosen by Database.Driver.
type Operator interface {
	// Connect opens a connection to the configured database.
	Connect(context.Context, *config.Config) error

	// Close closes the database connection.
	Close() error

	// DB returns the GORM handle, or nil before Connect.
	DB() *gorm.DB

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if any lookup table exists.
	// Used to determine if schema creation should prompt for confirmation.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops all lookup tables.
	DropAllTables(ctx context.Context) error
}
