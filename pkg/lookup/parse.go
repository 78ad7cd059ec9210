package lookup

import (
	"fmt"
	"strings"

	"github.com/gnames/gnplet/pkg/num"
)

// Raw is a table as read from a file: a header row and data rows.
type Raw struct {
	Name   Name
	Header []string
	Rows   [][]string
}

// Columns returns required and optional columns of a table.
func Columns(n Name) (required, optional []string) {
	switch n {
	case LandUseTable:
		return []string{"land_use", "user_lu"}, nil
	case CurveNumberTable:
		return []string{"hsg", "land_use", "cn_value"}, []string{"notes"}
	case USLETable:
		return []string{"fips", "land_use", "r_fact", "k_fact", "ls_fact",
				"c_fact", "p_fact"},
			[]string{"state_name", "name"}
	case RunoffNutrientTable:
		return []string{"land_use", "animal_inten", "n_conc", "p_conc",
			"n_conc_m", "p_conc_m"}, nil
	case BMPEfficiencyTable:
		return []string{"bmp_name", "land_use", "n_eff", "p_eff", "sed_eff",
				"wq_flag"},
			[]string{"bmp_cat", "bmp_full_name"}
	case AnimalWeightTable:
		return []string{"animal_type", "wt_lbs"}, nil
	case AnimalNutrientRatioTable:
		return []string{"animal_type", "n_ratio", "p_ratio"}, nil
	case GWInfiltrationTable:
		return []string{"hsg", "gw_infil_frac"}, nil
	case GWNutrientTable:
		return []string{"land_use", "n_conc", "p_conc"}, nil
	default:
		return nil, nil
	}
}

// Build parses raw tables and keys them into a Set. Unknown tables are
// ignored.
func Build(raws []Raw) (*Set, error) {
	d, err := ParseAll(raws)
	if err != nil {
		return nil, err
	}
	return New(d)
}

// ParseAll parses raw tables into rows without keying them. Unknown
// tables are ignored.
func ParseAll(raws []Raw) (Data, error) {
	var d Data
	for _, r := range raws {
		if !r.Name.IsKnown() {
			continue
		}
		if err := r.Parse(&d); err != nil {
			return Data{}, err
		}
	}
	return d, nil
}

// Parse appends the rows of the raw table to d.
func (r Raw) Parse(d *Data) error {
	required, optional := Columns(r.Name)
	if required == nil {
		return &ConfigError{Table: r.Name, Msg: "unknown table"}
	}

	idx := make(map[string]int, len(r.Header))
	for i, v := range r.Header {
		h := normalize(strings.TrimPrefix(v, "\ufeff"))
		if _, ok := idx[h]; ok {
			return &ConfigError{Table: r.Name, Column: h, Msg: "duplicate column"}
		}
		idx[h] = i
	}
	for _, c := range required {
		if _, ok := idx[c]; !ok {
			return &ConfigError{Table: r.Name, Column: c,
				Msg: "required column is missing"}
		}
	}
	for _, c := range optional {
		if _, ok := idx[c]; !ok {
			idx[c] = -1
		}
	}

	for i, row := range r.Rows {
		if isBlank(row) {
			continue
		}
		rp := rowParser{table: r.Name, row: i + 1, idx: idx, vals: row}
		r.appendRow(d, &rp)
		if rp.err != nil {
			return rp.err
		}
	}
	return nil
}

func (r Raw) appendRow(d *Data, rp *rowParser) {
	switch r.Name {
	case LandUseTable:
		d.LandUses = append(d.LandUses, LandUse{
			LandUse: rp.key("land_use"),
			UserLU:  rp.key("user_lu"),
		})
	case CurveNumberTable:
		d.CurveNumbers = append(d.CurveNumbers, CurveNumber{
			HSG:     rp.key("hsg"),
			LandUse: rp.key("land_use"),
			CN:      rp.number("cn_value"),
			Notes:   rp.str("notes"),
		})
	case USLETable:
		d.USLEs = append(d.USLEs, USLE{
			FIPS:      rp.key("fips"),
			LandUse:   rp.key("land_use"),
			R:         rp.number("r_fact"),
			K:         rp.number("k_fact"),
			LS:        rp.number("ls_fact"),
			C:         rp.number("c_fact"),
			P:         rp.number("p_fact"),
			StateName: rp.str("state_name"),
			County:    rp.str("name"),
		})
	case RunoffNutrientTable:
		d.RunoffNutrients = append(d.RunoffNutrients, RunoffNutrient{
			LandUse:     rp.key("land_use"),
			AnimalInten: rp.key("animal_inten"),
			NConc:       rp.number("n_conc"),
			PConc:       rp.number("p_conc"),
			NConcManure: rp.number("n_conc_m"),
			PConcManure: rp.number("p_conc_m"),
		})
	case BMPEfficiencyTable:
		d.BMPEfficiencies = append(d.BMPEfficiencies, BMPEfficiency{
			BMPName:  rp.key("bmp_name"),
			LandUse:  rp.key("land_use"),
			NEff:     rp.number("n_eff"),
			PEff:     rp.number("p_eff"),
			SedEff:   rp.number("sed_eff"),
			WQFlag:   rp.flag("wq_flag"),
			Category: rp.str("bmp_cat"),
			FullName: rp.str("bmp_full_name"),
		})
	case AnimalWeightTable:
		d.AnimalWeights = append(d.AnimalWeights, AnimalWeight{
			AnimalType: rp.key("animal_type"),
			WeightLbs:  rp.number("wt_lbs"),
		})
	case AnimalNutrientRatioTable:
		d.AnimalNutrientRatios = append(d.AnimalNutrientRatios,
			AnimalNutrientRatio{
				AnimalType: rp.key("animal_type"),
				NRatio:     rp.number("n_ratio"),
				PRatio:     rp.number("p_ratio"),
			})
	case GWInfiltrationTable:
		d.GWInfiltrations = append(d.GWInfiltrations, GWInfiltration{
			HSG:  rp.key("hsg"),
			Frac: rp.number("gw_infil_frac"),
		})
	case GWNutrientTable:
		d.GWNutrients = append(d.GWNutrients, GWNutrient{
			LandUse: rp.key("land_use"),
			NConc:   rp.number("n_conc"),
			PConc:   rp.number("p_conc"),
		})
	}
}

// rowParser extracts typed values from one row, keeping the first error.
type rowParser struct {
	table Name
	row   int
	idx   map[string]int
	vals  []string
	err   error
}

func (rp *rowParser) str(col string) string {
	i := rp.idx[col]
	if i < 0 || i >= len(rp.vals) {
		return ""
	}
	return strings.TrimSpace(rp.vals[i])
}

func (rp *rowParser) key(col string) string {
	s := rp.str(col)
	if s == "" && rp.err == nil {
		rp.err = &ConfigError{Table: rp.table, Row: rp.row, Column: col,
			Msg: "key value is empty"}
	}
	return s
}

func (rp *rowParser) number(col string) num.Float {
	s := rp.str(col)
	f, err := num.Parse(s)
	if err != nil && rp.err == nil {
		rp.err = &ConfigError{Table: rp.table, Row: rp.row, Column: col,
			Msg: fmt.Sprintf("%q is not a number", s)}
	}
	return f
}

func (rp *rowParser) flag(col string) bool {
	s := normalize(rp.str(col))
	switch s {
	case "1", "1.0", "true", "t", "yes", "y":
		return true
	case "", "0", "0.0", "false", "f", "no", "n":
		return false
	}
	if rp.err == nil {
		rp.err = &ConfigError{Table: rp.table, Row: rp.row, Column: col,
			Msg: fmt.Sprintf("%q is not a boolean", s)}
	}
	return false
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
