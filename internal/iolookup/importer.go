package iolookup

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnplet/pkg/config"
	"github.com/gnames/gnplet/pkg/db"
	"github.com/gnames/gnplet/pkg/lifecycle"
	"github.com/gnames/gnplet/pkg/lookup"
	"github.com/gnames/gnplet/pkg/schema"
	"gorm.io/gorm"
)

type importer struct {
	operator db.Operator
}

// NewImporter creates an Importer that writes lookup tables through the
// given operator. The operator must be connected before Import.
func NewImporter(op db.Operator) lifecycle.Importer {
	return &importer{operator: op}
}

// Import reads CSV lookup tables from cfg.Lookups.Dir, validates them and
// replaces the content of the corresponding database tables. Tables
// without a CSV file are left untouched.
func (i *importer) Import(ctx context.Context, cfg *config.Config) error {
	gdb := i.operator.DB()
	if gdb == nil {
		return ImportError("all", errNotConnected)
	}

	raws, err := ReadDir(cfg.Lookups.Dir)
	if err != nil {
		return err
	}
	d, err := lookup.ParseAll(raws)
	if err != nil {
		return ConfigError(err)
	}
	// keys must resolve before anything is written
	if _, err = lookup.New(d); err != nil {
		return ConfigError(err)
	}

	gdb = gdb.WithContext(ctx)
	if err = schema.Migrate(gdb); err != nil {
		return ImportError("schema", err)
	}

	present := make(map[lookup.Name]bool)
	for _, v := range raws {
		present[v.Name] = true
	}

	rows := schema.FromData(d)
	batch := max(cfg.Database.BatchSize, 1)

	var total int
	steps := []struct {
		name lookup.Name
		fn   func(*gorm.DB) (int, error)
	}{
		{lookup.LandUseTable, func(tx *gorm.DB) (int, error) {
			return replace(tx, rows.LandUses, batch)
		}},
		{lookup.CurveNumberTable, func(tx *gorm.DB) (int, error) {
			return replace(tx, rows.CurveNumbers, batch)
		}},
		{lookup.USLETable, func(tx *gorm.DB) (int, error) {
			return replace(tx, rows.USLEs, batch)
		}},
		{lookup.RunoffNutrientTable, func(tx *gorm.DB) (int, error) {
			return replace(tx, rows.RunoffNutrients, batch)
		}},
		{lookup.BMPEfficiencyTable, func(tx *gorm.DB) (int, error) {
			return replace(tx, rows.BMPEfficiencies, batch)
		}},
		{lookup.AnimalWeightTable, func(tx *gorm.DB) (int, error) {
			return replace(tx, rows.AnimalWeights, batch)
		}},
		{lookup.AnimalNutrientRatioTable, func(tx *gorm.DB) (int, error) {
			return replace(tx, rows.AnimalNutrientRatios, batch)
		}},
		{lookup.GWInfiltrationTable, func(tx *gorm.DB) (int, error) {
			return replace(tx, rows.GWInfiltrations, batch)
		}},
		{lookup.GWNutrientTable, func(tx *gorm.DB) (int, error) {
			return replace(tx, rows.GWNutrients, batch)
		}},
	}

	for _, s := range steps {
		if !present[s.name] {
			slog.Debug("Lookup table skipped, no CSV file", "table", s.name.String())
			continue
		}
		var n int
		err = gdb.Transaction(func(tx *gorm.DB) error {
			var err error
			n, err = s.fn(tx)
			return err
		})
		if err != nil {
			return ImportError(s.name.String(), err)
		}
		total += n
		slog.Info("Lookup table imported", "table", s.name.String(), "rows", n)
	}

	gn.Info("Imported <em>%s</em> lookup rows from %s",
		humanize.Comma(int64(total)), cfg.Lookups.Dir)
	return nil
}

// replace deletes every row of the model's table and inserts rows in
// batches.
func replace[T any](tx *gorm.DB, rows []T, batch int) (int, error) {
	var model T
	err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model).Error
	if err != nil {
		return 0, fmt.Errorf("cannot clear table: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	bar := pb.Full.Start(len(rows))
	bar.Set("prefix", fmt.Sprintf("Importing %T: ", model))
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	for i := 0; i < len(rows); i += batch {
		end := slices.Min([]int{i + batch, len(rows)})
		if err = tx.Create(rows[i:end]).Error; err != nil {
			return 0, fmt.Errorf("cannot insert rows %d-%d: %w", i, end, err)
		}
		bar.Add(end - i)
	}
	return len(rows), nil
}
