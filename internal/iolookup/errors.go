package iolookup

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnplet/pkg/errcode"
	"github.com/gnames/gnplet/pkg/lookup"
)

// LoadError creates an error for lookup sources that cannot be read.
func LoadError(path string, err error) error {
	msg := "Cannot read lookup tables from <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.LookupLoadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn, path, err),
	}
}

// ConfigError creates an error for a malformed lookup table.
func ConfigError(err error) error {
	msg := `Lookup tables are malformed: <em>%s</em>

<em>How to fix:</em>
  1. Check the table and row named in the message
  2. Numeric columns accept numbers, blank cells or NA`
	vars := []any{err.Error()}

	var cerr *lookup.ConfigError
	if errors.As(err, &cerr) {
		vars = []any{cerr.Error()}
	}

	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.LookupConfigError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: invalid lookup tables: %w", fn, err),
	}
}

// ImportError creates an error for a failed database import.
func ImportError(table string, err error) error {
	msg := "Cannot import lookup table <em>%s</em> into the database"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.LookupImportError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot import %s: %w", fn, table, err),
	}
}

var errNotConnected = errors.New("database is not connected")
