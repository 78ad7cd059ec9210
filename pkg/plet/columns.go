package plet

import (
	"strconv"

	"github.com/gnames/gnplet/pkg/num"
)

// Column is one named output value. Numeric columns carry Num, the rest
// carry Text.
type Column struct {
	Name    string
	Numeric bool
	Num     num.Float
	Text    string
}

// Value returns the column as a table cell: a float64, a string, or nil
// for an undefined number.
func (c Column) Value() any {
	if !c.Numeric {
		return c.Text
	}
	if v, ok := c.Num.Get(); ok {
		return v
	}
	return nil
}

// String returns the column formatted for text tables.
func (c Column) String() string {
	if c.Numeric {
		return c.Num.String()
	}
	return c.Text
}

func text(name, s string) Column {
	return Column{Name: name, Text: s}
}

func number(name string, f num.Float) Column {
	return Column{Name: name, Numeric: true, Num: f}
}

// InputColumns returns the field attributes that identify a result row.
func (r Result) InputColumns() []Column {
	e := r.Enriched
	year := ""
	if e.Year != 0 {
		year = strconv.Itoa(e.Year)
	}
	return []Column{
		text("field_id", e.ID),
		text("year", year),
		number("area_ac", e.AreaAcres),
		text("land_use", e.LandUse),
		text("hsg", e.HSG),
		text("fips", e.FIPS),
		number("n_animals", e.NAnimals),
		number("n_months", e.NMonths),
		text("bmp_name", e.BMPName),
		number("bmp_acres", e.BMPAcres),
	}
}

// DerivedColumns returns coefficients and model outputs in a stable order.
func (r Result) DerivedColumns() []Column {
	e, h, b, p, c := r.Enriched, r.Hydrology, r.Baseline, r.Practice, r.Change
	return []Column{
		text("plet_status", r.Status),
		text("user_lu", e.UserLU),
		text("model_hsg", e.ModelHSG),
		number("cn_value", e.CN),
		number("r_fact", e.RFact),
		number("k_fact", e.KFact),
		number("ls_fact", e.LSFact),
		number("c_fact", e.CFact),
		number("p_fact", e.PFact),
		number("animal_density", e.AnimalDensity),
		number("aeu", e.AEU),
		text("animal_inten", e.AnimalInten),
		number("manure_n_ratio", e.ManureNRatio),
		number("manure_p_ratio", e.ManurePRatio),
		number("n_eff", e.NEff),
		number("p_eff", e.PEff),
		number("sed_eff", e.SedEff),
		text("wq_flag", strconv.FormatBool(e.WQFlag)),
		number("p", h.RainPerEvent),
		number("s", h.Retention),
		number("q", h.RunoffDepth),
		number("b_run_v", b.RunoffVolume),
		number("b_in_v", b.GWVolume),
		number("b_run_nl_n", b.RunoffN),
		number("b_run_nl_p", b.RunoffP),
		number("b_gw_nl_n", b.GWN),
		number("b_gw_nl_p", b.GWP),
		number("erosion", b.Erosion),
		number("del_ratio", b.DeliveryRatio),
		number("b_run_sl", b.SedimentLoad),
		number("p_cn", p.CN),
		number("p_s", p.Retention),
		number("p_q", p.RunoffDepth),
		number("p_run_v", p.RunoffVolume),
		number("p_sed_nl_n", p.SedBoundN),
		number("p_sed_nl_p", p.SedBoundP),
		number("p_run_nl_n", p.RunoffN),
		number("p_run_nl_p", p.RunoffP),
		number("p_run_sl", p.SedimentLoad),
		number("pc_run_v", c.Volume),
		number("pc_n", c.N),
		number("pc_p", c.P),
		number("pc_sl", c.Sediment),
	}
}

// Columns returns input and derived columns of a table row.
func (r Result) Columns() []Column {
	return append(r.InputColumns(), r.DerivedColumns()...)
}

// ColumnNames returns the header of a result table.
func ColumnNames() []string {
	cols := Result{}.Columns()
	res := make([]string, len(cols))
	for i, v := range cols {
		res[i] = v.Name
	}
	return res
}
