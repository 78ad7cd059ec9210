// Package lifecycle defines the stages a gnplet deployment goes through:
// preparing the lookup database, filling it, and calculating loads
// either in batch or behind HTTP. Implementations live in internal/io*
// packages.
package lifecycle

import (
	"context"

	"github.com/gnames/gnplet/pkg/config"
)

// SchemaManager creates and updates lookup tables with GORM AutoMigrate.
// Both operations are idempotent.
type SchemaManager interface {
	// Create builds lookup tables in an empty database.
	Create(ctx context.Context, cfg *config.Config) error

	// Migrate brings existing lookup tables to the current models
	// without touching their rows.
	Migrate(ctx context.Context, cfg *config.Config) error
}

// Importer copies lookup tables from a CSV directory into the database.
// Existing rows of an imported table are replaced.
type Importer interface {
	Import(ctx context.Context, cfg *config.Config) error
}

// Runner processes a field collection from Output.Input and writes results
// to Output.Dir in every configured format.
type Runner interface {
	Run(ctx context.Context, cfg *config.Config) error
}

// Server exposes the calculation over HTTP until the context is done.
type Server interface {
	Serve(ctx context.Context, cfg *config.Config) error
}
