package plet

import "github.com/gnames/gnplet/pkg/num"

// Baseline holds pollutant loads under current management.
type Baseline struct {
	// RunoffVolume is in acre-feet.
	RunoffVolume num.Float `json:"b_run_v"`
	// GWVolume is the groundwater infiltration volume in acre-feet.
	GWVolume num.Float `json:"b_in_v"`

	ManureFraction num.Float `json:"manure_frac"`
	RunoffN        num.Float `json:"b_run_nl_n"`
	RunoffP        num.Float `json:"b_run_nl_p"`
	GWN            num.Float `json:"b_gw_nl_n"`
	GWP            num.Float `json:"b_gw_nl_p"`

	// Erosion is in tons per year.
	Erosion       num.Float `json:"erosion"`
	DeliveryRatio num.Float `json:"del_ratio"`
	SedimentLoad  num.Float `json:"b_run_sl"`
}

// RunoffVolume converts runoff depth (in) to annual volume (acre-feet).
func RunoffVolume(q, area, rainDays, rainDayCor num.Float) num.Float {
	return q.Scale(1.0 / 12).Mul(area).Mul(rainDays).Mul(rainDayCor)
}

// GWInfiltrationVolume returns annual infiltration volume (acre-feet).
func GWInfiltrationVolume(frac, p, area, rainDays, rainDayCor num.Float) num.Float {
	return frac.Mul(p).Scale(1.0 / 12).Mul(area).Mul(rainDays).Mul(rainDayCor)
}

// ManureFraction is the share of the year with manure applied.
func ManureFraction(nMonths num.Float) num.Float {
	return nMonths.Scale(1.0 / 12)
}

// NutrientLoad returns pounds of a nutrient carried by a runoff volume,
// mixing off-season and manure-season concentrations.
func NutrientLoad(vol, manureFrac, conc, concManure num.Float) num.Float {
	mix := num.Of(1).Sub(manureFrac).Mul(conc).Add(manureFrac.Mul(concManure))
	return vol.Mul(mix).Scale(NutrientConversion)
}

// Erosion is the RUSLE soil loss of the whole field (tons/year).
func Erosion(r, k, ls, c, p, area num.Float) num.Float {
	return r.Mul(k).Mul(ls).Mul(c).Mul(p).Mul(area)
}

// DeliveryRatio returns the sediment delivery ratio for a field area in
// acres. The result is undefined for non-positive areas or when the
// large-area branch drops to zero or below.
func DeliveryRatio(area num.Float) num.Float {
	if !area.Gt(0) {
		return num.Undef()
	}
	a, _ := area.Get()
	mi := area.Scale(1 / AcresPerSquareMile)

	var res num.Float
	if a <= DeliveryRatioBreakpoint {
		res = mi.Pow(-0.125).Scale(0.42)
	} else {
		res = mi.Pow(-0.134958).Scale(0.417662).Sub(num.Of(0.127097))
	}
	if !res.Gt(0) {
		return num.Undef()
	}
	return res
}

// ComputeBaseline runs the baseline stage.
func ComputeBaseline(e Enriched, h Hydrology) (Baseline, []Condition) {
	cs := conditions{fieldID: e.ID, stage: StageBaseline}
	var res Baseline

	res.RunoffVolume = RunoffVolume(h.RunoffDepth, e.AreaAcres, e.RainDays, e.RainDayCor)
	if !res.RunoffVolume.IsDefined() {
		cs.add("b_run_v", "runoff volume is undefined")
	}

	res.ManureFraction = ManureFraction(e.NMonths)
	if !res.ManureFraction.IsDefined() {
		cs.add("n_months", "months of manure application are missing")
	}
	res.RunoffN = NutrientLoad(res.RunoffVolume, res.ManureFraction,
		e.NConc, e.NConcManure)
	res.RunoffP = NutrientLoad(res.RunoffVolume, res.ManureFraction,
		e.PConc, e.PConcManure)

	res.Erosion = Erosion(e.RFact, e.KFact, e.LSFact, e.CFact, e.PFact,
		e.AreaAcres)
	res.DeliveryRatio = DeliveryRatio(e.AreaAcres)
	if !res.DeliveryRatio.IsDefined() {
		cs.add("del_ratio", "delivery ratio is undefined for area %q",
			e.AreaAcres.String())
	}
	res.SedimentLoad = res.Erosion.Mul(res.DeliveryRatio)

	res.GWVolume = GWInfiltrationVolume(e.GWInfilFrac, h.RainPerEvent,
		e.AreaAcres, e.RainDays, e.RainDayCor)
	res.GWN = res.GWVolume.Mul(e.GWNConc).Scale(NutrientConversion)
	res.GWP = res.GWVolume.Mul(e.GWPConc).Scale(NutrientConversion)

	return res, cs.list
}
