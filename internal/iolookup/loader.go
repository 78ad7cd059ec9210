// Package iolookup loads PLET lookup tables from a directory of CSV files,
// an XLSX workbook or the database, and imports CSV tables into the
// database.
package iolookup

import (
	"context"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnplet/pkg/config"
	"github.com/gnames/gnplet/pkg/db"
	"github.com/gnames/gnplet/pkg/lookup"
)

// Load builds the lookup repository from the configured source. The
// operator is used only for the "db" source and must be connected.
func Load(
	ctx context.Context,
	cfg *config.Config,
	op db.Operator,
) (*lookup.Set, error) {
	var d lookup.Data
	var src string
	var err error

	switch cfg.Lookups.Source {
	case "db":
		src = "database (" + cfg.Database.Driver + ")"
		if op == nil || op.DB() == nil {
			return nil, LoadError(src, errNotConnected)
		}
		if d, err = ReadDB(ctx, op.DB()); err != nil {
			return nil, err
		}
	case "xlsx":
		src = cfg.Lookups.XLSXPath
		if d, err = parse(ReadXLSX(src)); err != nil {
			return nil, err
		}
	default:
		src = cfg.Lookups.Dir
		if d, err = parse(ReadDir(src)); err != nil {
			return nil, err
		}
	}

	set, err := lookup.New(d)
	if err != nil {
		return nil, ConfigError(err)
	}

	var total int
	for name, n := range set.Stats() {
		total += n
		slog.Debug("Lookup table loaded", "table", name.String(), "rows", n)
	}
	slog.Info("Lookup tables loaded", "source", src, "rows", total)
	gn.Info("Loaded <em>%s</em> lookup rows from %s",
		humanize.Comma(int64(total)), src)

	return set, nil
}

func parse(raws []lookup.Raw, err error) (lookup.Data, error) {
	if err != nil {
		return lookup.Data{}, err
	}
	d, err := lookup.ParseAll(raws)
	if err != nil {
		return lookup.Data{}, ConfigError(err)
	}
	return d, nil
}
