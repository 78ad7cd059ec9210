package iolookup

import (
	"context"

	"github.com/gnames/gnplet/pkg/lookup"
	"github.com/gnames/gnplet/pkg/schema"
	"gorm.io/gorm"
)

// ReadDB reads lookup tables created by the create and import commands.
// Tables that do not exist are skipped.
func ReadDB(ctx context.Context, gdb *gorm.DB) (lookup.Data, error) {
	gdb = gdb.WithContext(ctx)
	var rows schema.Rows

	find := func(table string, dest any) error {
		if !gdb.Migrator().HasTable(table) {
			return nil
		}
		if err := gdb.Find(dest).Error; err != nil {
			return LoadError("database table "+table, err)
		}
		return nil
	}

	tables := []struct {
		name lookup.Name
		dest any
	}{
		{lookup.LandUseTable, &rows.LandUses},
		{lookup.CurveNumberTable, &rows.CurveNumbers},
		{lookup.USLETable, &rows.USLEs},
		{lookup.RunoffNutrientTable, &rows.RunoffNutrients},
		{lookup.BMPEfficiencyTable, &rows.BMPEfficiencies},
		{lookup.AnimalWeightTable, &rows.AnimalWeights},
		{lookup.AnimalNutrientRatioTable, &rows.AnimalNutrientRatios},
		{lookup.GWInfiltrationTable, &rows.GWInfiltrations},
		{lookup.GWNutrientTable, &rows.GWNutrients},
	}
	for _, v := range tables {
		if err := find(v.name.String(), v.dest); err != nil {
			return lookup.Data{}, err
		}
	}
	return rows.Data(), nil
}
