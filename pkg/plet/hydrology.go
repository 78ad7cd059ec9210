package plet

import "github.com/gnames/gnplet/pkg/num"

// Hydrology holds per-event rainfall (in), retention (in) and runoff depth
// (in).
type Hydrology struct {
	RainPerEvent num.Float `json:"p"`
	Retention    num.Float `json:"s"`
	RunoffDepth  num.Float `json:"q"`
}

// RainfallPerEvent returns average rainfall of a single rain event.
func RainfallPerEvent(aaRain, rainCor, rainDays, rainDayCor num.Float) num.Float {
	return aaRain.Mul(rainCor).Div(rainDays.Mul(rainDayCor))
}

// Retention returns potential maximum retention for a curve number.
// Non-positive curve numbers give an undefined value.
func Retention(cn num.Float) num.Float {
	if !cn.Gt(0) {
		return num.Undef()
	}
	return num.Of(1000).Div(cn).Sub(num.Of(10))
}

// RunoffDepth returns p²/(p+s).
func RunoffDepth(p, s num.Float) num.Float {
	return p.Mul(p).Div(p.Add(s))
}

// ComputeHydrology runs the hydrology stage over an enriched field.
func ComputeHydrology(e Enriched) (Hydrology, []Condition) {
	cs := conditions{fieldID: e.ID, stage: StageHydrology}
	var res Hydrology

	res.RainPerEvent = RainfallPerEvent(e.AARain, e.RainCor, e.RainDays, e.RainDayCor)
	if !res.RainPerEvent.IsDefined() {
		cs.add("p", "rainfall per event is undefined")
	}

	res.Retention = Retention(e.CN)
	if !res.Retention.IsDefined() {
		cs.add("s", "retention is undefined for curve number %q", e.CN.String())
	}

	res.RunoffDepth = RunoffDepth(res.RainPerEvent, res.Retention)
	if !res.RunoffDepth.IsDefined() &&
		res.RainPerEvent.IsDefined() && res.Retention.IsDefined() {
		cs.add("q", "runoff depth denominator is zero")
	}
	return res, cs.list
}
