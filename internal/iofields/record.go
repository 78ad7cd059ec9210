package iofields

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/gnames/gnlib"
	"github.com/gnames/gnplet/pkg/field"
	"github.com/gnames/gnplet/pkg/num"
	"github.com/gnames/gnuuid"
	"github.com/spf13/cast"
)

// dbfNameLen is the longest attribute name a DBF table can hold.
const dbfNameLen = 10

// props gives case-insensitive access to feature properties. Names
// truncated by the DBF format match their full form.
type props map[string]any

func newProps(m map[string]any) props {
	res := make(props, len(m))
	for k, v := range m {
		res[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return res
}

func (p props) get(names ...string) (any, bool) {
	for _, n := range names {
		if v, ok := p[n]; ok && v != nil {
			return v, true
		}
		if len(n) > dbfNameLen {
			if v, ok := p[n[:dbfNameLen]]; ok && v != nil {
				return v, true
			}
		}
	}
	return nil, false
}

func (p props) str(names ...string) string {
	v, ok := p.get(names...)
	if !ok {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(gnlib.FixUtf8(s))
}

// number returns an undefined value for missing, blank and non-numeric
// properties.
func (p props) number(name string) num.Float {
	v, ok := p.get(name)
	if !ok {
		return num.Undef()
	}
	if s, isStr := v.(string); isStr {
		s = strings.TrimSpace(s)
		if s == "" || strings.EqualFold(s, "na") {
			return num.Undef()
		}
		v = s
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) {
		return num.Undef()
	}
	return num.Of(f)
}

func (p props) flag(name string) *bool {
	v, ok := p.get(name)
	if !ok {
		return nil
	}
	if s, isStr := v.(string); isStr {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "":
			return nil
		case "yes", "y":
			v = true
		case "no", "n":
			v = false
		}
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return nil
	}
	return &b
}

// toRecord converts properties of the idx-th feature to a field record.
// The geometry area in square meters is used when area_ac is missing.
func toRecord(m map[string]any, fp footprint, idx int) field.Record {
	p := newProps(m)
	res := field.Record{
		ID:         p.str("siteid", "field_id"),
		AreaAcres:  p.number("area_ac"),
		AARain:     p.number("aa_rain"),
		RainCor:    p.number("r_cor"),
		RainDays:   p.number("rain_days"),
		RainDayCor: p.number("rd_cor"),
		HSG:        p.str("hsg"),
		Drained:    p.flag("drained"),
		LandUse:    p.str("land_use"),
		FIPS:       p.str("fips"),
		NAnimals:   p.number("n_animals"),
		AnimalType: p.str("animal_type"),
		NMonths:    p.number("n_months"),
		ManureArea: p.number("manure_area"),
		BMPName:    p.str("bmp_name", "bmp_short_name"),
		BMPAcres:   p.number("bmp_acres"),
	}
	if y, ok := p.get("year"); ok {
		res.Year = cast.ToInt(y)
	}
	if !res.AreaAcres.IsDefined() {
		res.AreaAcres = fp.area.Scale(1 / AcreM2)
		res.AreaNote = fp.note
	}
	if res.ID == "" {
		res.ID = featureID(m, idx)
	}
	return res
}

// featureID builds a deterministic identifier from the feature position
// and its properties.
func featureID(m map[string]any, idx int) string {
	// map keys are sorted by the encoder
	bs, _ := json.Marshal(m)
	return gnuuid.New(fmt.Sprintf("%d|%s", idx, bs)).String()
}
