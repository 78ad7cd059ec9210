package plet

import (
	"github.com/gnames/gnplet/pkg/config"
	"github.com/gnames/gnplet/pkg/num"
)

// Practice holds loads with the assigned BMP in place.
type Practice struct {
	CN           num.Float `json:"p_cn"`
	Retention    num.Float `json:"p_s"`
	RunoffDepth  num.Float `json:"p_q"`
	RunoffVolume num.Float `json:"p_run_v"`

	// Sediment-bound nutrient loads (lbs).
	SedBoundN num.Float `json:"p_sed_nl_n"`
	SedBoundP num.Float `json:"p_sed_nl_p"`

	RunoffN      num.Float `json:"p_run_nl_n"`
	RunoffP      num.Float `json:"p_run_nl_p"`
	SedimentLoad num.Float `json:"p_run_sl"`
}

// EffectiveEfficiency scales a BMP efficiency by the share of the field the
// BMP covers.
func EffectiveEfficiency(eff, bmpAcres, area num.Float) num.Float {
	return eff.Mul(bmpAcres.Div(area))
}

// SedimentBoundLoad returns the nutrient attached to delivered sediment
// (lbs) after the BMP effect.
func SedimentBoundLoad(erosion, ratio, effEff num.Float, soilConc float64) num.Float {
	if !effEff.IsDefined() {
		return num.Undef()
	}
	return erosion.Scale(TonsToPounds).Mul(ratio).
		Mul(num.Of(1).Sub(effEff)).Scale(soilConc)
}

// ComputePractice runs the practice-change stage. Fields without a BMP
// carry the baseline forward unchanged.
func ComputePractice(
	e Enriched,
	h Hydrology,
	b Baseline,
	m config.ModelConfig,
) (Practice, []Condition) {
	cs := conditions{fieldID: e.ID, stage: StagePractice}

	res := Practice{
		CN:           e.CN,
		Retention:    h.Retention,
		RunoffDepth:  h.RunoffDepth,
		RunoffVolume: b.RunoffVolume,
		RunoffN:      b.RunoffN,
		RunoffP:      b.RunoffP,
		SedimentLoad: b.SedimentLoad,
	}
	if !e.HasBMP() {
		return res, nil
	}

	effN := EffectiveEfficiency(e.NEff, e.BMPAcres, e.AreaAcres)
	effP := EffectiveEfficiency(e.PEff, e.BMPAcres, e.AreaAcres)
	effSed := EffectiveEfficiency(e.SedEff, e.BMPAcres, e.AreaAcres)

	// Efficiencies cannot be scaled to the field without both areas.
	scaled := true
	switch {
	case !e.BMPAcres.IsDefined():
		scaled = false
		cs.add("bmp_acres", "bmp_acres is missing, BMP %q has no effect", e.BMPName)
	case !e.AreaAcres.IsDefined():
		scaled = false
		cs.add("area_ac", "area_ac is missing, BMP %q has no effect", e.BMPName)
	}

	practiceHydrology(&res, e, h, effSed, scaled, m, &cs)

	res.SedBoundN = SedimentBoundLoad(b.Erosion, b.DeliveryRatio, effN,
		m.NitrogenSoilConc)
	res.SedBoundP = SedimentBoundLoad(b.Erosion, b.DeliveryRatio, effP,
		m.PhosphorusSoilConc)

	res.RunoffN = practiceNutrient(e.UserLU, "p_run_nl_n", b.RunoffN, effN,
		res.SedBoundN, &cs)
	res.RunoffP = practiceNutrient(e.UserLU, "p_run_nl_p", b.RunoffP, effP,
		res.SedBoundP, &cs)

	if effSed.IsDefined() {
		res.SedimentLoad = b.Erosion.Mul(b.DeliveryRatio).
			Mul(num.Of(1).Sub(effSed))
	} else if scaled {
		cs.add("sed_eff", "sediment efficiency is undefined, baseline sediment load kept")
	}

	return res, cs.list
}

func practiceHydrology(
	res *Practice,
	e Enriched,
	h Hydrology,
	effSed num.Float,
	scaled bool,
	m config.ModelConfig,
	cs *conditions,
) {
	if !e.WQFlag {
		return
	}

	switch {
	case e.CoverCrop:
		res.CN = e.CN.Sub(num.Of(m.CoverCropCNOffset))
	case effSed.IsDefined():
		res.CN = e.CN.Mul(num.Of(1).Sub(effSed))
	default:
		if scaled {
			cs.add("p_cn", "sediment efficiency is undefined, BMP has no hydrologic effect")
		}
		return
	}

	res.Retention = Retention(res.CN)
	res.RunoffDepth = RunoffDepth(h.RainPerEvent, res.Retention)
	res.RunoffVolume = RunoffVolume(res.RunoffDepth, e.AreaAcres, e.RainDays,
		e.RainDayCor)
	if !res.RunoffVolume.IsDefined() {
		cs.add("p_run_v", "practice runoff volume is undefined")
	}
}

func practiceNutrient(
	userLU, key string,
	baseline, effEff, sedBound num.Float,
	cs *conditions,
) num.Float {
	switch userLU {
	case Cropland:
		if !effEff.IsDefined() {
			return baseline
		}
		return baseline.Mul(effEff)
	case Pastureland:
		if !effEff.IsDefined() {
			return baseline
		}
		return baseline.Mul(effEff).Add(sedBound)
	default:
		cs.add(key, "land use %q has no practice-change rule", userLU)
		return num.Undef()
	}
}
