package lookup_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/gnames/gnplet/pkg/lookup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raws() []lookup.Raw {
	return []lookup.Raw{
		{
			Name:   lookup.LandUseTable,
			Header: []string{"land_use", "user_lu"},
			Rows: [][]string{
				{"cropland-cultivated", "cropland"},
				{"pasture", "pastureland"},
				{"Forest", "forest"},
			},
		},
		{
			Name:   lookup.CurveNumberTable,
			Header: []string{"hsg", "land_use", "cn_value", "notes"},
			Rows: [][]string{
				{"B", "cropland", "78", "row crops"},
				{"D", "cropland", "89", ""},
				{"B", "pastureland", "69", ""},
			},
		},
		{
			Name: lookup.USLETable,
			Header: []string{"fips", "state_name", "name", "land_use",
				"r_fact", "k_fact", "ls_fact", "c_fact", "p_fact"},
			Rows: [][]string{
				{"1001", "AL", "Autauga", "cropland", "300", "0.3", "1.2", "0.2", "1"},
				{"37183", "NC", "Wake", "cropland", "250", "0.25", "0.9", "0.18", "1"},
			},
		},
		{
			Name: lookup.RunoffNutrientTable,
			Header: []string{"land_use", "animal_inten", "n_conc", "p_conc",
				"n_conc_m", "p_conc_m"},
			Rows: [][]string{
				{"cropland", "low", "1.9", "0.3", "8", "2"},
				{"pastureland", "high", "4", "0.3", "13", "2.5"},
			},
		},
		{
			Name: lookup.BMPEfficiencyTable,
			Header: []string{"bmp_name", "bmp_full_name", "land_use", "n_eff",
				"p_eff", "sed_eff", "wq_flag", "bmp_cat"},
			Rows: [][]string{
				{"cover_crop", "Cover Crop", "cropland", "0.2", "0.1", "", "1", "cover_crop"},
				{"terrace", "Terrace", "cropland", "0.1", "0.7", "0.4", "yes", ""},
			},
		},
		{
			Name:   lookup.AnimalWeightTable,
			Header: []string{"animal_type", "wt_lbs"},
			Rows:   [][]string{{"beef_cattle", "1000"}},
		},
		{
			Name:   "notes",
			Header: []string{"anything"},
			Rows:   [][]string{{"ignored"}},
		},
	}
}

func TestBuild(t *testing.T) {
	set, err := lookup.Build(raws())
	require.NoError(t, err)

	stats := set.Stats()
	assert.Equal(t, 3, stats[lookup.LandUseTable])
	assert.Equal(t, 3, stats[lookup.CurveNumberTable])
	assert.Equal(t, 2, stats[lookup.BMPEfficiencyTable])
	assert.Equal(t, 0, stats[lookup.GWNutrientTable])

	t.Run("crosswalk is case insensitive", func(t *testing.T) {
		lu, ok := set.UserLandUse("FOREST")
		assert.True(t, ok)
		assert.Equal(t, "forest", lu)
	})

	t.Run("curve number on composite key", func(t *testing.T) {
		cn, ok := set.CurveNumber("d", "Cropland")
		require.True(t, ok)
		assert.Equal(t, 89.0, cn.CN.Or(0))
	})

	t.Run("fips forms match", func(t *testing.T) {
		for _, fips := range []string{"1001", "01001", "1001.0"} {
			u, ok := set.USLE(fips, "cropland")
			require.True(t, ok, fips)
			assert.Equal(t, 300.0, u.R.Or(0))
		}
	})

	t.Run("blank efficiency is undefined", func(t *testing.T) {
		b, ok := set.BMPEfficiency("cover_crop", "cropland")
		require.True(t, ok)
		assert.False(t, b.SedEff.IsDefined())
		assert.True(t, b.NEff.IsDefined())
		assert.True(t, b.WQFlag)
		assert.True(t, b.IsCoverCrop())

		b, ok = set.BMPEfficiency("terrace", "cropland")
		require.True(t, ok)
		assert.True(t, b.WQFlag)
		assert.False(t, b.IsCoverCrop())
	})

	t.Run("missing key is reported, not zero", func(t *testing.T) {
		_, ok := set.CurveNumber("A", "cropland")
		assert.False(t, ok)
		_, ok = set.BMPEfficiency("terrace", "pastureland")
		assert.False(t, ok)
		_, ok = set.GWInfiltration("A")
		assert.False(t, ok)
	})

	t.Run("resolve by table name", func(t *testing.T) {
		row, ok := set.Resolve(lookup.USLETable, "37183", "cropland")
		require.True(t, ok)
		u, ok := row.(lookup.USLE)
		require.True(t, ok)
		assert.Equal(t, "Wake", u.County)

		_, ok = set.Resolve(lookup.USLETable, "99999", "cropland")
		assert.False(t, ok)
		_, ok = set.Resolve("unknown", "x")
		assert.False(t, ok)
	})
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		msg    string
		mod    func([]lookup.Raw) []lookup.Raw
		table  lookup.Name
		column string
		text   string
	}{
		{
			msg: "duplicate key",
			mod: func(rs []lookup.Raw) []lookup.Raw {
				rs[1].Rows = append(rs[1].Rows, []string{"b", "CROPLAND", "80", ""})
				return rs
			},
			table: lookup.CurveNumberTable,
			text:  "duplicate key",
		},
		{
			msg: "missing required column",
			mod: func(rs []lookup.Raw) []lookup.Raw {
				rs[1].Header = []string{"hsg", "land_use", "cn", "notes"}
				return rs
			},
			table:  lookup.CurveNumberTable,
			column: "cn_value",
			text:   "required column is missing",
		},
		{
			msg: "not a number",
			mod: func(rs []lookup.Raw) []lookup.Raw {
				rs[5].Rows[0][1] = "heavy"
				return rs
			},
			table:  lookup.AnimalWeightTable,
			column: "wt_lbs",
			text:   "is not a number",
		},
		{
			msg: "bad flag",
			mod: func(rs []lookup.Raw) []lookup.Raw {
				rs[4].Rows[1][6] = "maybe"
				return rs
			},
			table:  lookup.BMPEfficiencyTable,
			column: "wq_flag",
			text:   "is not a boolean",
		},
		{
			msg: "missing required table",
			mod: func(rs []lookup.Raw) []lookup.Raw {
				return rs[1:]
			},
			table: lookup.LandUseTable,
			text:  "missing or empty",
		},
		{
			msg: "empty key value",
			mod: func(rs []lookup.Raw) []lookup.Raw {
				rs[0].Rows[0][0] = " "
				return rs
			},
			table:  lookup.LandUseTable,
			column: "land_use",
			text:   "key value is empty",
		},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			_, err := lookup.Build(v.mod(raws()))
			require.Error(t, err)
			var cfgErr *lookup.ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, v.table, cfgErr.Table)
			assert.Equal(t, v.column, cfgErr.Column)
			assert.Contains(t, err.Error(), v.text)
		})
	}
}

func TestBlankRowsSkipped(t *testing.T) {
	rs := raws()
	rs[0].Rows = append(rs[0].Rows, []string{"", " "})
	set, err := lookup.Build(rs)
	require.NoError(t, err)
	assert.Equal(t, 3, set.LandUses.Len())
}

func TestConcurrentResolve(t *testing.T) {
	set, err := lookup.Build(raws())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				_, ok := set.CurveNumber("B", "cropland")
				assert.True(t, ok)
			}
		}()
	}
	wg.Wait()
}

func TestNormalizeFIPS(t *testing.T) {
	tests := []struct{ in, out string }{
		{"1001", "01001"},
		{"1001.0", "01001"},
		{" 37183 ", "37183"},
		{"abc", "abc"},
		{"10.5", "10.5"},
	}
	for _, v := range tests {
		assert.Equal(t, v.out, lookup.NormalizeFIPS(v.in), v.in)
	}
}

func TestColumns(t *testing.T) {
	for _, n := range lookup.AllNames() {
		req, _ := lookup.Columns(n)
		assert.NotEmpty(t, req, n.String())
	}
	req, opt := lookup.Columns("unknown")
	assert.Nil(t, req)
	assert.Nil(t, opt)
}
