package schema_test

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gnames/gnplet/pkg/lookup"
	"github.com/gnames/gnplet/pkg/num"
	"github.com/gnames/gnplet/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func memDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	return db
}

func TestTableNames(t *testing.T) {
	names := schema.TableNames()
	require.Len(t, names, len(lookup.AllNames()))
	for _, v := range names {
		assert.True(t, lookup.Name(v).IsKnown(), v)
	}
}

func TestMigrate(t *testing.T) {
	db := memDB(t)
	require.NoError(t, schema.Migrate(db))

	for _, v := range schema.TableNames() {
		assert.True(t, db.Migrator().HasTable(v), v)
	}

	// idempotent
	require.NoError(t, schema.Migrate(db))
}

func TestRoundTrip(t *testing.T) {
	d := lookup.Data{
		LandUses: []lookup.LandUse{{LandUse: "crop", UserLU: "cropland"}},
		CurveNumbers: []lookup.CurveNumber{
			{HSG: "B", LandUse: "cropland", CN: num.Of(78)},
		},
		USLEs: []lookup.USLE{
			{FIPS: "1001", LandUse: "cropland", R: num.Of(300), K: num.Of(0.3),
				LS: num.Of(1.2), C: num.Of(0.2), P: num.Of(1), County: "Autauga"},
		},
		RunoffNutrients: []lookup.RunoffNutrient{
			{LandUse: "cropland", AnimalInten: "low", NConc: num.Of(1.9),
				PConc: num.Of(0.3), NConcManure: num.Of(8), PConcManure: num.Of(2)},
		},
		BMPEfficiencies: []lookup.BMPEfficiency{
			{BMPName: "cover_crop", LandUse: "cropland", NEff: num.Of(0.2),
				PEff: num.Of(0.1), SedEff: num.Undef(), WQFlag: true,
				Category: lookup.CoverCropCategory},
		},
		AnimalWeights: []lookup.AnimalWeight{
			{AnimalType: "beef_cattle", WeightLbs: num.Of(1000)},
		},
	}

	db := memDB(t)
	require.NoError(t, schema.Migrate(db))

	rows := schema.FromData(d)
	assert.Equal(t, "01001", rows.USLEs[0].FIPS)
	require.NoError(t, db.Create(&rows.LandUses).Error)
	require.NoError(t, db.Create(&rows.CurveNumbers).Error)
	require.NoError(t, db.Create(&rows.USLEs).Error)
	require.NoError(t, db.Create(&rows.RunoffNutrients).Error)
	require.NoError(t, db.Create(&rows.BMPEfficiencies).Error)
	require.NoError(t, db.Create(&rows.AnimalWeights).Error)

	var res schema.Rows
	require.NoError(t, db.Find(&res.LandUses).Error)
	require.NoError(t, db.Find(&res.CurveNumbers).Error)
	require.NoError(t, db.Find(&res.USLEs).Error)
	require.NoError(t, db.Find(&res.RunoffNutrients).Error)
	require.NoError(t, db.Find(&res.BMPEfficiencies).Error)
	require.NoError(t, db.Find(&res.AnimalWeights).Error)

	set, err := lookup.New(res.Data())
	require.NoError(t, err)

	bmp, ok := set.BMPEfficiency("cover_crop", "cropland")
	require.True(t, ok)
	assert.False(t, bmp.SedEff.IsDefined())
	assert.True(t, bmp.NEff.Equal(num.Of(0.2)))
	assert.True(t, bmp.IsCoverCrop())

	u, ok := set.USLE("1001", "cropland")
	require.True(t, ok)
	assert.Equal(t, "Autauga", u.County)
}

func TestUniqueKey(t *testing.T) {
	db := memDB(t)
	require.NoError(t, schema.Migrate(db))

	cn := []schema.CurveNumber{
		{HSG: "B", LandUse: "cropland"},
		{HSG: "B", LandUse: "cropland"},
	}
	assert.Error(t, db.Create(&cn).Error)
}
