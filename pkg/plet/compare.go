package plet

import "github.com/gnames/gnplet/pkg/num"

// Change holds percent reductions from baseline to practice change.
// Negative values mean the practice increased the quantity.
type Change struct {
	Volume   num.Float `json:"pc_run_v"`
	N        num.Float `json:"pc_n"`
	P        num.Float `json:"pc_p"`
	Sediment num.Float `json:"pc_sl"`
}

// PercentChange returns (b-p)/b*100 rounded to one decimal. It is defined
// only for a positive baseline and a defined practice value.
func PercentChange(baseline, practice num.Float) num.Float {
	if !baseline.Gt(0) {
		return num.Undef()
	}
	return baseline.Sub(practice).Div(baseline).Scale(100).Round(1)
}

// Compare runs the comparison stage.
func Compare(id string, b Baseline, p Practice) (Change, []Condition) {
	cs := conditions{fieldID: id, stage: StageComparison}

	pc := func(key string, bv, pv num.Float) num.Float {
		res := PercentChange(bv, pv)
		if !res.IsDefined() {
			if bv.IsDefined() && !bv.Gt(0) {
				cs.add(key, "baseline %s is not positive", bv.String())
			} else {
				cs.add(key, "percent change is undefined")
			}
		}
		return res
	}

	res := Change{
		Volume:   pc("pc_run_v", b.RunoffVolume, p.RunoffVolume),
		N:        pc("pc_n", b.RunoffN, p.RunoffN),
		P:        pc("pc_p", b.RunoffP, p.RunoffP),
		Sediment: pc("pc_sl", b.SedimentLoad, p.SedimentLoad),
	}
	return res, cs.list
}
