package plet

import (
	"strings"

	"github.com/gnames/gnplet/pkg/config"
	"github.com/gnames/gnplet/pkg/field"
	"github.com/gnames/gnplet/pkg/lookup"
	"github.com/gnames/gnplet/pkg/num"
)

// Enriched is a field record with every coefficient the formulas need.
// Coefficients whose join failed are undefined.
type Enriched struct {
	field.Record

	// UserLU is the canonical land use from the crosswalk.
	UserLU string `json:"user_lu"`

	// ModelHSG is the soil group after drainage reclassification.
	ModelHSG string `json:"model_hsg"`

	// CN is the baseline curve number.
	CN num.Float `json:"cn_value"`

	// RUSLE/USLE factors.
	RFact  num.Float `json:"r_fact"`
	KFact  num.Float `json:"k_fact"`
	LSFact num.Float `json:"ls_fact"`
	CFact  num.Float `json:"c_fact"`
	PFact  num.Float `json:"p_fact"`

	// Animal statistics.
	Species       string    `json:"species"`
	AnimalDensity num.Float `json:"animal_density"`
	AEU           num.Float `json:"aeu"`
	AnimalInten   string    `json:"animal_inten"`
	ManureNRatio  num.Float `json:"manure_n_ratio"`
	ManurePRatio  num.Float `json:"manure_p_ratio"`

	// Runoff nutrient concentrations (mg/L).
	NConc       num.Float `json:"n_conc"`
	PConc       num.Float `json:"p_conc"`
	NConcManure num.Float `json:"n_conc_m"`
	PConcManure num.Float `json:"p_conc_m"`

	// BMP efficiencies.
	NEff      num.Float `json:"n_eff"`
	PEff      num.Float `json:"p_eff"`
	SedEff    num.Float `json:"sed_eff"`
	WQFlag    bool      `json:"wq_flag"`
	CoverCrop bool      `json:"cover_crop"`

	// Groundwater coefficients.
	GWInfilFrac num.Float `json:"gw_infil_frac"`
	GWNConc     num.Float `json:"gw_n_conc"`
	GWPConc     num.Float `json:"gw_p_conc"`
}

// Enrich joins a field against the lookup repository. Each join is
// independent: a failed join leaves only its own coefficients undefined
// and adds a condition.
func Enrich(
	r field.Record,
	set *lookup.Set,
	m config.ModelConfig,
) (Enriched, []Condition) {
	cs := conditions{fieldID: r.ID, stage: StageEnrichment}
	res := Enriched{Record: r}

	if r.AreaNote != "" {
		cs.add("area_ac", r.AreaNote)
	}

	res.ModelHSG = modelHSG(r, m)

	// land-use crosswalk
	if userLU, ok := set.UserLandUse(r.LandUse); ok {
		res.UserLU = userLU
	} else {
		cs.add(tableKey(string(lookup.LandUseTable), "land_use", r.LandUse),
			"land use has no crosswalk entry")
	}

	// curve number
	if cn, ok := set.CurveNumber(res.ModelHSG, res.UserLU); ok {
		res.CN = cn.CN
	} else {
		cs.add(tableKey(string(lookup.CurveNumberTable),
			"hsg", res.ModelHSG, "user_lu", res.UserLU),
			"no curve number")
	}

	// RUSLE factors
	if u, ok := set.USLE(r.FIPS, res.UserLU); ok {
		res.RFact, res.KFact, res.LSFact, res.CFact, res.PFact =
			u.R, u.K, u.LS, u.C, u.P
	} else {
		cs.add(tableKey(string(lookup.USLETable),
			"fips", r.FIPS, "user_lu", res.UserLU),
			"no USLE factors")
	}

	enrichAnimals(&res, set, m, &cs)

	// manure and nutrient concentrations
	if rn, ok := set.RunoffNutrient(res.UserLU, res.AnimalInten); ok {
		res.NConc, res.PConc = rn.NConc, rn.PConc
		res.NConcManure, res.PConcManure = rn.NConcManure, rn.PConcManure
	} else {
		cs.add(tableKey(string(lookup.RunoffNutrientTable),
			"user_lu", res.UserLU, "animal_inten", res.AnimalInten),
			"no runoff nutrient concentrations")
	}

	// BMP efficiencies
	if r.HasBMP() {
		if b, ok := set.BMPEfficiency(r.BMPName, res.UserLU); ok {
			res.NEff, res.PEff, res.SedEff = b.NEff, b.PEff, b.SedEff
			res.WQFlag = b.WQFlag
			res.CoverCrop = b.IsCoverCrop()
		} else {
			cs.add(tableKey(string(lookup.BMPEfficiencyTable),
				"bmp_name", r.BMPName, "user_lu", res.UserLU),
				"no BMP efficiencies, practice has no effect")
		}
	}

	// groundwater
	if gw, ok := set.GWInfiltration(res.ModelHSG); ok {
		res.GWInfilFrac = gw.Frac
	} else {
		cs.add(tableKey(string(lookup.GWInfiltrationTable),
			"hsg", res.ModelHSG),
			"no groundwater infiltration fraction")
	}
	if gw, ok := set.GWNutrient(res.UserLU); ok {
		res.GWNConc, res.GWPConc = gw.NConc, gw.PConc
	} else {
		cs.add(tableKey(string(lookup.GWNutrientTable),
			"user_lu", res.UserLU),
			"no groundwater nutrient concentrations")
	}

	return res, cs.list
}

func modelHSG(r field.Record, m config.ModelConfig) string {
	drained := m.Drained
	if r.Drained != nil {
		drained = *r.Drained
	}
	return field.ReclassHSG(r.HSG, drained)
}

func enrichAnimals(
	res *Enriched,
	set *lookup.Set,
	m config.ModelConfig,
	cs *conditions,
) {
	species := strings.ToLower(strings.TrimSpace(res.AnimalType))
	if species == "" {
		species = m.AnimalType
	}
	res.Species = species

	if species != SupportedAnimalType {
		cs.add(tableKey("animal", "species", species),
			"unsupported animal species, animal statistics are undefined")
		return
	}

	wt, ok := set.AnimalWeight(species)
	if !ok {
		cs.add(tableKey(string(lookup.AnimalWeightTable),
			"animal_type", species), "no animal weight")
		return
	}

	if ratio, ok := set.AnimalNutrientRatio(species); ok {
		res.ManureNRatio, res.ManurePRatio = ratio.NRatio, ratio.PRatio
	}

	res.AnimalDensity = AnimalDensity(res.NAnimals, wt.WeightLbs, res.AreaAcres)
	res.AEU = res.AnimalDensity.Scale(1.0 / 1000)
	res.AnimalInten = AnimalIntensity(res.AEU)
	if res.AnimalInten == "" {
		cs.add("animal_inten", "animal intensity is undefined")
	}
}

// AnimalDensity returns live weight per acre (lbs/acre).
func AnimalDensity(count, unitWeight, area num.Float) num.Float {
	return count.Mul(unitWeight).Div(area)
}

// AnimalIntensity classifies animal equivalent units: up to 1.5 is low,
// 2.5 and above is high, anything between is medium. It returns an empty
// string for an undefined value.
func AnimalIntensity(aeu num.Float) string {
	v, ok := aeu.Get()
	switch {
	case !ok:
		return ""
	case v <= 1.5:
		return IntensityLow
	case v > 1.5 && v < 2.5:
		return IntensityMedium
	default:
		return IntensityHigh
	}
}
