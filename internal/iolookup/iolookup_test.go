package iolookup_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnplet/internal/iodb"
	"github.com/gnames/gnplet/internal/iolookup"
	"github.com/gnames/gnplet/internal/iotesting"
	"github.com/gnames/gnplet/pkg/config"
	"github.com/gnames/gnplet/pkg/errcode"
	"github.com/gnames/gnplet/pkg/lookup"
	"github.com/gnames/gnplet/pkg/num"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const lookupsDir = "testdata/lookups"

func TestReadDir(t *testing.T) {
	raws, err := iolookup.ReadDir(lookupsDir)
	require.NoError(t, err)
	assert.Len(t, raws, len(lookup.AllNames()))

	set, err := lookup.Build(raws)
	require.NoError(t, err)

	userLU, ok := set.UserLandUse("Cultivated Crops")
	require.True(t, ok)
	assert.Equal(t, "cropland", userLU)

	u, ok := set.USLE("01001", "cropland")
	require.True(t, ok)
	assert.True(t, u.R.Equal(num.Of(300)))

	bmp, ok := set.BMPEfficiency("nutrient_mgmt", "cropland")
	require.True(t, ok)
	assert.False(t, bmp.SedEff.IsDefined())
	assert.False(t, bmp.WQFlag)
}

func TestReadDirErrors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := iolookup.ReadDir(filepath.Join(t.TempDir(), "none"))
		require.Error(t, err)
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok)
		assert.Equal(t, errcode.LookupLoadError, gnErr.Code)
	})

	t.Run("missing files are skipped", func(t *testing.T) {
		dir := t.TempDir()
		err := os.WriteFile(filepath.Join(dir, "lu.csv"),
			[]byte("land_use,user_lu\ncrop,cropland\n"), 0644)
		require.NoError(t, err)

		raws, err := iolookup.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, raws, 1)
		assert.Equal(t, lookup.LandUseTable, raws[0].Name)
		assert.Equal(t, [][]string{{"crop", "cropland"}}, raws[0].Rows)
	})
}

func TestReadXLSX(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	raws, err := iolookup.ReadDir(lookupsDir)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "lookups.xlsx")
	f := excelize.NewFile()
	for _, raw := range raws {
		sheet := raw.Name.String()
		_, err = f.NewSheet(sheet)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, "A1", &raw.Header))
		for i, row := range raw.Rows {
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(sheet, cell, &row))
		}
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	res, err := iolookup.ReadXLSX(path)
	require.NoError(t, err)
	assert.Len(t, res, len(raws))

	set, err := lookup.Build(res)
	require.NoError(t, err)
	cn, ok := set.CurveNumber("D", "cropland")
	require.True(t, ok)
	assert.True(t, cn.CN.Equal(num.Of(89)))
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("dir", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{config.OptLookupsDir(lookupsDir)})
		set, err := iolookup.Load(ctx, cfg, nil)
		require.NoError(t, err)
		assert.Equal(t, 10, set.Stats()[lookup.CurveNumberTable])
	})

	t.Run("malformed table", func(t *testing.T) {
		dir := t.TempDir()
		err := os.WriteFile(filepath.Join(dir, "cn.csv"),
			[]byte("hsg,land_use\nB,cropland\n"), 0644)
		require.NoError(t, err)

		cfg := config.New()
		cfg.Update([]config.Option{config.OptLookupsDir(dir)})
		_, err = iolookup.Load(ctx, cfg, nil)
		require.Error(t, err)
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok)
		assert.Equal(t, errcode.LookupConfigError, gnErr.Code)
	})

	t.Run("db without connection", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{config.OptLookupsSource("db")})
		_, err := iolookup.Load(ctx, cfg, iodb.NewOperator())
		require.Error(t, err)
	})
}

func TestImport(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}

	ctx := context.Background()
	cfg := iotesting.SQLiteConfig(t)
	cfg.Update([]config.Option{
		config.OptLookupsDir(lookupsDir),
		config.OptDatabaseBatchSize(3),
	})

	op := iodb.NewOperator()
	require.NoError(t, op.Connect(ctx, cfg))
	defer op.Close()

	imp := iolookup.NewImporter(op)
	require.NoError(t, imp.Import(ctx, cfg))
	// importing twice replaces rows instead of duplicating them
	require.NoError(t, imp.Import(ctx, cfg))

	cfg.Update([]config.Option{config.OptLookupsSource("db")})
	set, err := iolookup.Load(ctx, cfg, op)
	require.NoError(t, err)

	stats := set.Stats()
	assert.Equal(t, 3, stats[lookup.LandUseTable])
	assert.Equal(t, 10, stats[lookup.CurveNumberTable])
	assert.Equal(t, 4, stats[lookup.USLETable])
	assert.Equal(t, 7, stats[lookup.RunoffNutrientTable])
	assert.Equal(t, 4, stats[lookup.BMPEfficiencyTable])

	bmp, ok := set.BMPEfficiency("nutrient_mgmt", "cropland")
	require.True(t, ok)
	assert.False(t, bmp.SedEff.IsDefined())

	bmp, ok = set.BMPEfficiency("cover_crop", "cropland")
	require.True(t, ok)
	assert.True(t, bmp.IsCoverCrop())
}

func TestImportNotConnected(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptLookupsDir(lookupsDir)})
	err := iolookup.NewImporter(iodb.NewOperator()).
		Import(context.Background(), cfg)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.LookupImportError, gnErr.Code)
}
