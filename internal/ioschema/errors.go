package ioschema

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnplet/pkg/errcode"
)

// NotConnectedError creates an error for when schema
// operation is attempted without database connection.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Schema operation attempted without database connection",
		Err:  fmt.Errorf("not connected to database"),
	}
}

// CreateSchemaError creates an error for lookup table
// creation failures.
func CreateSchemaError(err error) error {
	msg := `Cannot create lookup tables

<em>How to fix:</em>
  1. Check that the database user can create tables
  2. For SQLite, check that the database file is writable
  3. Run <em>gnplet create --force</em> to recreate tables`

	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to create schema: %w", err),
	}
}

// MigrateSchemaError creates an error for lookup table
// migration failures.
func MigrateSchemaError(err error) error {
	msg := `Cannot update lookup tables

<em>How to fix:</em>
  1. Check that the database user can alter tables
  2. Recreate tables with <em>gnplet create --force</em>
     and import lookups again`

	return &gn.Error{
		Code: errcode.SchemaMigrateError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to migrate schema: %w", err),
	}
}
