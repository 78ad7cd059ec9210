package plet_test

import (
	"math"
	"testing"

	"github.com/gnames/gnplet/pkg/config"
	"github.com/gnames/gnplet/pkg/field"
	"github.com/gnames/gnplet/pkg/lookup"
	"github.com/gnames/gnplet/pkg/num"
	"github.com/gnames/gnplet/pkg/plet"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var floatCmp = cmp.Comparer(func(a, b num.Float) bool { return a.Equal(b) })

func n(v float64) num.Float { return num.Of(v) }

func testSet(t *testing.T) *lookup.Set {
	t.Helper()
	d := lookup.Data{
		LandUses: []lookup.LandUse{
			{LandUse: "crop", UserLU: "cropland"},
			{LandUse: "pasture", UserLU: "pastureland"},
			{LandUse: "forest", UserLU: "forest"},
		},
		CurveNumbers: []lookup.CurveNumber{
			{HSG: "B", LandUse: "cropland", CN: n(80)},
			{HSG: "D", LandUse: "cropland", CN: n(89)},
			{HSG: "B", LandUse: "pastureland", CN: n(69)},
			{HSG: "B", LandUse: "forest", CN: n(55)},
		},
		USLEs: []lookup.USLE{
			{FIPS: "01001", LandUse: "cropland", R: n(300), K: n(0.3),
				LS: n(1.2), C: n(0.2), P: n(1)},
			{FIPS: "01001", LandUse: "pastureland", R: n(300), K: n(0.3),
				LS: n(1.2), C: n(0.02), P: n(1)},
			{FIPS: "01001", LandUse: "forest", R: n(300), K: n(0.3),
				LS: n(1.2), C: n(0.003), P: n(1)},
		},
		RunoffNutrients: []lookup.RunoffNutrient{
			{LandUse: "cropland", AnimalInten: "low", NConc: n(1.9),
				PConc: n(0.3), NConcManure: n(8), PConcManure: n(2)},
			{LandUse: "pastureland", AnimalInten: "low", NConc: n(2),
				PConc: n(0.15), NConcManure: n(4), PConcManure: n(0.3)},
			{LandUse: "forest", AnimalInten: "low", NConc: n(0.2),
				PConc: n(0.01), NConcManure: n(0.2), PConcManure: n(0.01)},
		},
		BMPEfficiencies: []lookup.BMPEfficiency{
			{BMPName: "cover_crop", LandUse: "cropland", NEff: n(0.2),
				PEff: n(0.1), SedEff: n(0.3), WQFlag: true,
				Category: lookup.CoverCropCategory},
			{BMPName: "terrace", LandUse: "cropland", NEff: num.Undef(),
				PEff: n(0.7), SedEff: n(0.4), WQFlag: true},
			{BMPName: "nutrient_mgmt", LandUse: "cropland", NEff: n(0.3),
				PEff: n(0.2), SedEff: num.Undef()},
			{BMPName: "grazing", LandUse: "pastureland", NEff: n(0.4),
				PEff: n(0.5), SedEff: n(0.2)},
			{BMPName: "fencing", LandUse: "pastureland", NEff: num.Undef(),
				PEff: n(0.5), SedEff: n(0.2)},
			{BMPName: "grazing", LandUse: "forest", NEff: n(0.4),
				PEff: n(0.5), SedEff: n(0.2)},
		},
		AnimalWeights: []lookup.AnimalWeight{
			{AnimalType: "beef_cattle", WeightLbs: n(1000)},
		},
		AnimalNutrientRatios: []lookup.AnimalNutrientRatio{
			{AnimalType: "beef_cattle", NRatio: n(0.34), PRatio: n(0.092)},
		},
		GWInfiltrations: []lookup.GWInfiltration{
			{HSG: "B", Frac: n(0.3)},
			{HSG: "D", Frac: n(0.1)},
		},
		GWNutrients: []lookup.GWNutrient{
			{LandUse: "cropland", NConc: n(1.44), PConc: n(0.063)},
		},
	}
	set, err := lookup.New(d)
	require.NoError(t, err)
	return set
}

func cropField() field.Record {
	return field.Record{
		ID:         "f1",
		Year:       2024,
		AreaAcres:  n(100),
		AARain:     n(200),
		RainCor:    n(1),
		RainDays:   n(100),
		RainDayCor: n(1),
		HSG:        "B",
		LandUse:    "crop",
		FIPS:       "1001",
		NAnimals:   n(50),
		NMonths:    n(0),
	}
}

func TestHydrology(t *testing.T) {
	t.Run("retention", func(t *testing.T) {
		s, ok := plet.Retention(n(80)).Get()
		assert.True(t, ok)
		assert.InDelta(t, 2.5, s, 1e-12)

		assert.False(t, plet.Retention(n(0)).IsDefined())
		assert.False(t, plet.Retention(num.Undef()).IsDefined())
	})

	t.Run("runoff depth and volume", func(t *testing.T) {
		q := plet.RunoffDepth(n(2), n(2.5))
		v, ok := q.Get()
		require.True(t, ok)
		assert.InDelta(t, 4.0/4.5, v, 1e-12)

		vol, ok := plet.RunoffVolume(q, n(100), n(100), n(1)).Get()
		require.True(t, ok)
		assert.InDelta(t, 740.74, vol, 0.01)
	})

	t.Run("zero denominator is undefined", func(t *testing.T) {
		assert.False(t, plet.RunoffDepth(n(0), n(0)).IsDefined())
		assert.False(t, plet.RainfallPerEvent(n(40), n(1), n(0), n(1)).IsDefined())
		assert.False(t, plet.RainfallPerEvent(n(40), n(1), n(100), n(0)).IsDefined())
	})

	t.Run("runoff depth is not negative", func(t *testing.T) {
		for _, p := range []float64{0, 0.1, 1, 5} {
			for _, cn := range []float64{30, 60, 98} {
				q := plet.RunoffDepth(n(p), plet.Retention(n(cn)))
				if v, ok := q.Get(); ok {
					assert.GreaterOrEqual(t, v, 0.0)
				}
			}
		}
	})
}

func TestDeliveryRatio(t *testing.T) {
	tests := []struct {
		msg  string
		area float64
		res  float64
	}{
		{"small field", 100, 0.42 * math.Pow(100.0/640, -0.125)},
		{"breakpoint", 200, 0.42 * math.Pow(200.0/640, -0.125)},
		{"large field", 300,
			0.417662*math.Pow(300.0/640, -0.134958) - 0.127097},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			res, ok := plet.DeliveryRatio(n(v.area)).Get()
			require.True(t, ok)
			assert.InDelta(t, v.res, res, 1e-12)
			assert.Greater(t, res, 0.0)
		})
	}

	t.Run("positive around the breakpoint", func(t *testing.T) {
		for _, a := range []float64{199.9, 200.1, 1, 10_000} {
			assert.True(t, plet.DeliveryRatio(n(a)).Gt(0), a)
		}
	})

	t.Run("non-positive area", func(t *testing.T) {
		assert.False(t, plet.DeliveryRatio(n(0)).IsDefined())
		assert.False(t, plet.DeliveryRatio(num.Undef()).IsDefined())
	})
}

func TestNutrientLoad(t *testing.T) {
	res, ok := plet.NutrientLoad(n(100), n(0), n(2), n(10)).Get()
	require.True(t, ok)
	assert.InDelta(t, 200*plet.NutrientConversion, res, 1e-9)

	res, ok = plet.NutrientLoad(n(100), n(0.5), n(2), n(10)).Get()
	require.True(t, ok)
	assert.InDelta(t, 600*plet.NutrientConversion, res, 1e-9)

	assert.False(t,
		plet.NutrientLoad(n(100), num.Undef(), n(2), n(10)).IsDefined())
}

func TestPercentChange(t *testing.T) {
	tests := []struct {
		msg      string
		baseline num.Float
		practice num.Float
		res      num.Float
	}{
		{"reduction", n(50), n(30), n(40)},
		{"increase", n(50), n(60), n(-20)},
		{"rounding", n(3), n(2), n(33.3)},
		{"zero baseline", n(0), n(0), num.Undef()},
		{"negative baseline", n(-5), n(1), num.Undef()},
		{"undefined baseline", num.Undef(), n(1), num.Undef()},
		{"undefined practice", n(5), num.Undef(), num.Undef()},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			res := plet.PercentChange(v.baseline, v.practice)
			assert.True(t, v.res.Equal(res), res.String())
		})
	}
}

func TestAnimalIntensity(t *testing.T) {
	tests := []struct {
		aeu num.Float
		res string
	}{
		{n(0), plet.IntensityLow},
		{n(1.5), plet.IntensityLow},
		{n(1.51), plet.IntensityMedium},
		{n(2.49), plet.IntensityMedium},
		{n(2.5), plet.IntensityHigh},
		{n(10), plet.IntensityHigh},
		{num.Undef(), ""},
	}
	for _, v := range tests {
		assert.Equal(t, v.res, plet.AnimalIntensity(v.aeu), v.aeu.String())
	}
}

func TestEnrich(t *testing.T) {
	set := testSet(t)
	model := config.New().Model

	t.Run("all joins succeed", func(t *testing.T) {
		e, cs := plet.Enrich(cropField(), set, model)
		assert.Empty(t, cs)
		assert.Equal(t, "cropland", e.UserLU)
		assert.True(t, e.CN.Equal(n(80)))
		assert.True(t, e.RFact.Equal(n(300)))
		// 50 head x 1000 lbs / 100 acres
		assert.True(t, e.AnimalDensity.Equal(n(500)))
		assert.True(t, e.AEU.Equal(n(0.5)))
		assert.Equal(t, plet.IntensityLow, e.AnimalInten)
		assert.True(t, e.NConc.Equal(n(1.9)))
		assert.True(t, e.GWInfilFrac.Equal(n(0.3)))
		assert.True(t, e.ManureNRatio.Equal(n(0.34)))
	})

	t.Run("failed join marks only its coefficients", func(t *testing.T) {
		r := cropField()
		r.FIPS = "99999"
		e, cs := plet.Enrich(r, set, model)
		assert.False(t, e.RFact.IsDefined())
		assert.True(t, e.CN.IsDefined())
		assert.True(t, e.NConc.IsDefined())
		require.Len(t, cs, 1)
		assert.Equal(t, plet.StageEnrichment, cs[0].Stage)
		assert.Equal(t, "f1", cs[0].FieldID)
		assert.Contains(t, cs[0].Key, "usle{fips=99999")
	})

	t.Run("unsupported species", func(t *testing.T) {
		r := cropField()
		r.AnimalType = "Dairy_Cattle"
		e, cs := plet.Enrich(r, set, model)
		assert.Equal(t, "dairy_cattle", e.Species)
		assert.False(t, e.AnimalDensity.IsDefined())
		assert.False(t, e.AEU.IsDefined())
		assert.Empty(t, e.AnimalInten)
		assert.False(t, e.NConc.IsDefined())
		assert.NotEmpty(t, cs)
	})

	t.Run("dual soil group", func(t *testing.T) {
		r := cropField()
		r.HSG = "b/d"
		e, _ := plet.Enrich(r, set, model)
		assert.Equal(t, "D", e.ModelHSG)
		assert.True(t, e.CN.Equal(n(89)))

		drained := true
		r.Drained = &drained
		e, _ = plet.Enrich(r, set, model)
		assert.Equal(t, "B", e.ModelHSG)
		assert.True(t, e.CN.Equal(n(80)))
	})

	t.Run("BMP without a row", func(t *testing.T) {
		r := cropField()
		r.BMPName = "unknown_bmp"
		r.BMPAcres = n(50)
		e, cs := plet.Enrich(r, set, model)
		assert.False(t, e.NEff.IsDefined())
		assert.False(t, e.WQFlag)
		require.Len(t, cs, 1)
		assert.Contains(t, cs[0].Key, "bmp_eff_vals")
	})
}

func TestCalculate(t *testing.T) {
	set := testSet(t)
	model := config.New().Model
	calc := plet.New(set, model)

	t.Run("no BMP keeps baseline", func(t *testing.T) {
		res := calc.Calculate(cropField())
		assert.Equal(t, plet.StatusOK, res.Status)
		assert.Empty(t, res.Conditions)

		p, ok := res.Hydrology.RainPerEvent.Get()
		require.True(t, ok)
		assert.InDelta(t, 2.0, p, 1e-12)
		vol, ok := res.Baseline.RunoffVolume.Get()
		require.True(t, ok)
		assert.InDelta(t, 740.74, vol, 0.01)

		assert.True(t, res.Practice.RunoffN.Equal(res.Baseline.RunoffN))
		assert.True(t, res.Practice.RunoffVolume.Equal(res.Baseline.RunoffVolume))
		assert.True(t, res.Change.N.Equal(n(0)))
		assert.True(t, res.Change.Sediment.Equal(n(0)))
		assert.True(t, res.Baseline.GWN.Gt(0))
	})

	t.Run("cover crop lowers curve number by offset", func(t *testing.T) {
		r := cropField()
		r.BMPName = "cover_crop"
		r.BMPAcres = n(50)
		res := calc.Calculate(r)
		assert.True(t, res.Practice.CN.Equal(n(77)))
		assert.True(t, res.Practice.Retention.Equal(plet.Retention(n(77))))
		assert.True(t, res.Change.Volume.Gt(0))

		// efficiency 0.2 on half the field
		exp := res.Baseline.RunoffN.Scale(0.1)
		assert.True(t, res.Practice.RunoffN.Equal(exp))
	})

	t.Run("water quantity BMP scales curve number", func(t *testing.T) {
		r := cropField()
		r.BMPName = "terrace"
		r.BMPAcres = n(100)
		res := calc.Calculate(r)
		cn, ok := res.Practice.CN.Get()
		require.True(t, ok)
		assert.InDelta(t, 48, cn, 1e-9)

		// undefined nitrogen efficiency on cropland
		assert.True(t, res.Practice.RunoffN.Equal(res.Baseline.RunoffN))
		assert.False(t, res.Practice.SedBoundN.IsDefined())
		assert.True(t, res.Practice.SedBoundP.IsDefined())

		sl, ok := res.Practice.SedimentLoad.Get()
		require.True(t, ok)
		bsl, _ := res.Baseline.SedimentLoad.Get()
		assert.InDelta(t, bsl*0.6, sl, 1e-9)
	})

	t.Run("undefined sediment efficiency", func(t *testing.T) {
		r := cropField()
		r.BMPName = "nutrient_mgmt"
		r.BMPAcres = n(100)
		res := calc.Calculate(r)
		assert.True(t, res.Practice.SedimentLoad.Equal(res.Baseline.SedimentLoad))
		assert.True(t, res.Practice.CN.Equal(res.Enriched.CN))
		var keys []string
		for _, v := range res.Conditions {
			keys = append(keys, v.Key)
		}
		assert.Contains(t, keys, "sed_eff")
	})

	t.Run("pastureland adds sediment-bound load", func(t *testing.T) {
		r := cropField()
		r.LandUse = "pasture"
		r.BMPName = "grazing"
		r.BMPAcres = n(100)
		res := calc.Calculate(r)
		exp := res.Baseline.RunoffN.Scale(0.4).Add(res.Practice.SedBoundN)
		assert.True(t, res.Practice.RunoffN.Equal(exp))

		sb, ok := res.Practice.SedBoundN.Get()
		require.True(t, ok)
		e, _ := res.Baseline.Erosion.Get()
		dr, _ := res.Baseline.DeliveryRatio.Get()
		assert.InDelta(t, e*2000*dr*0.6*0.08, sb, 1e-6)
	})

	t.Run("pastureland keeps baseline for undefined efficiency", func(t *testing.T) {
		r := cropField()
		r.LandUse = "pasture"
		r.BMPName = "fencing"
		r.BMPAcres = n(100)
		res := calc.Calculate(r)
		require.True(t, res.Baseline.RunoffN.IsDefined())
		assert.True(t, res.Practice.RunoffN.Equal(res.Baseline.RunoffN))
		assert.False(t, res.Practice.SedBoundN.IsDefined())
		assert.True(t, res.Change.N.Equal(n(0)))

		exp := res.Baseline.RunoffP.Scale(0.5).Add(res.Practice.SedBoundP)
		assert.True(t, res.Practice.RunoffP.Equal(exp))
		assert.True(t, res.Practice.SedBoundP.IsDefined())
	})

	t.Run("missing BMP acreage", func(t *testing.T) {
		r := cropField()
		r.BMPName = "terrace"
		res := calc.Calculate(r)
		assert.Equal(t, plet.StatusOK, res.Status)
		assert.True(t, res.Practice.CN.Equal(res.Enriched.CN))
		assert.True(t, res.Practice.SedimentLoad.Equal(res.Baseline.SedimentLoad))
		assert.True(t, res.Practice.RunoffP.Equal(res.Baseline.RunoffP))

		var keys []string
		for _, v := range res.Conditions {
			keys = append(keys, v.Key)
		}
		assert.Contains(t, keys, "bmp_acres")
		assert.NotContains(t, keys, "sed_eff")
		assert.NotContains(t, keys, "p_cn")
		for _, v := range res.Conditions {
			if v.Key == "bmp_acres" {
				assert.Equal(t, plet.StagePractice, v.Stage)
				assert.Contains(t, v.Reason, "terrace")
			}
		}
	})

	t.Run("missing field area with BMP", func(t *testing.T) {
		r := cropField()
		r.AreaAcres = num.Undef()
		r.BMPName = "terrace"
		r.BMPAcres = n(50)
		res := calc.Calculate(r)
		var keys []string
		for _, v := range res.Conditions {
			if v.Stage == plet.StagePractice {
				keys = append(keys, v.Key)
			}
		}
		assert.Contains(t, keys, "area_ac")
		assert.NotContains(t, keys, "sed_eff")
	})

	t.Run("land use without practice rule", func(t *testing.T) {
		r := cropField()
		r.LandUse = "forest"
		r.BMPName = "grazing"
		r.BMPAcres = n(10)
		res := calc.Calculate(r)
		assert.False(t, res.Practice.RunoffN.IsDefined())
		assert.False(t, res.Change.N.IsDefined())
		assert.True(t, res.Practice.SedimentLoad.IsDefined())

		var stages []plet.Stage
		for _, v := range res.Conditions {
			if v.Key == "p_run_nl_n" || v.Key == "pc_n" {
				stages = append(stages, v.Stage)
			}
		}
		assert.Equal(t,
			[]plet.Stage{plet.StagePractice, plet.StageComparison}, stages)
	})

	t.Run("zero baseline gives undefined change", func(t *testing.T) {
		r := cropField()
		r.AARain = n(0)
		res := calc.Calculate(r)
		assert.True(t, res.Baseline.RunoffVolume.Equal(n(0)))
		assert.False(t, res.Change.Volume.IsDefined())
		assert.Equal(t, plet.StatusOK, res.Status)
	})

	t.Run("rejected field", func(t *testing.T) {
		r := cropField()
		r.BMPName = "terrace"
		r.BMPAcres = n(150)
		res := calc.Calculate(r)
		assert.True(t, res.IsRejected())
		require.Len(t, res.Issues, 1)
		assert.Equal(t, "bmp_acres", res.Issues[0].Attr)
		assert.Equal(t, plet.StageValidation, res.Conditions[0].Stage)
		assert.False(t, res.Baseline.RunoffVolume.IsDefined())
	})

	t.Run("calculation is idempotent", func(t *testing.T) {
		r := cropField()
		r.BMPName = "cover_crop"
		r.BMPAcres = n(30)
		res1 := calc.Calculate(r)
		res2 := calc.Calculate(r)
		assert.Empty(t, cmp.Diff(res1, res2, floatCmp))
	})
}

func TestColumns(t *testing.T) {
	set := testSet(t)
	res := plet.New(set, config.New().Model).Calculate(cropField())

	names := plet.ColumnNames()
	cols := res.Columns()
	require.Len(t, cols, len(names))
	for i := range cols {
		assert.Equal(t, names[i], cols[i].Name)
	}
	assert.Equal(t, "field_id", names[0])

	byName := make(map[string]plet.Column)
	for _, v := range cols {
		byName[v.Name] = v
	}
	assert.Equal(t, "f1", byName["field_id"].Value())
	assert.Equal(t, "2024", byName["year"].String())
	assert.Equal(t, 80.0, byName["cn_value"].Value())
	assert.Nil(t, byName["n_eff"].Value())
	assert.Equal(t, "", byName["n_eff"].String())
}
