package field

import (
	"fmt"
	"strings"

	"github.com/gnames/gnplet/pkg/num"
)

// Issue describes one data-quality violation of a field attribute.
type Issue struct {
	Attr   string `json:"attr"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s=%q: %s", i.Attr, i.Value, i.Reason)
}

// ValidationError is returned for a field whose raw attributes cannot be
// used by the model.
type ValidationError struct {
	FieldID string
	Issues  []Issue
}

func (e *ValidationError) Error() string {
	issues := make([]string, len(e.Issues))
	for i, v := range e.Issues {
		issues[i] = v.String()
	}
	return fmt.Sprintf("field %q rejected: %s",
		e.FieldID, strings.Join(issues, "; "))
}

// Validate checks attributes that would make the formulas meaningless.
// Missing attributes are not violations.
func Validate(r Record) error {
	var issues []Issue
	add := func(attr string, v num.Float, reason string) {
		issues = append(issues, Issue{Attr: attr, Value: v.String(), Reason: reason})
	}

	if strings.TrimSpace(r.ID) == "" {
		issues = append(issues, Issue{Attr: "field_id", Reason: "is empty"})
	}

	if v, ok := r.AreaAcres.Get(); ok && v <= 0 {
		add("area_ac", r.AreaAcres, "must be positive")
	}

	if v, ok := r.BMPAcres.Get(); ok {
		if v < 0 {
			add("bmp_acres", r.BMPAcres, "cannot be negative")
		}
		if area, ok := r.AreaAcres.Get(); ok && area > 0 && v > area {
			add("bmp_acres", r.BMPAcres,
				fmt.Sprintf("exceeds field area %s", r.AreaAcres))
		}
	}

	if r.HSG != "" && !IsValidHSG(r.HSG) {
		issues = append(issues, Issue{
			Attr:   "hsg",
			Value:  r.HSG,
			Reason: "is not one of A, B, C, D, A/D, B/D, C/D",
		})
	}

	if v, ok := r.NMonths.Get(); ok && (v < 0 || v > 12) {
		add("n_months", r.NMonths, "must be within 0..12")
	}

	nonNegative := []struct {
		attr string
		val  num.Float
	}{
		{"n_animals", r.NAnimals},
		{"aa_rain", r.AARain},
		{"r_cor", r.RainCor},
		{"rain_days", r.RainDays},
		{"rd_cor", r.RainDayCor},
	}
	for _, v := range nonNegative {
		if f, ok := v.val.Get(); ok && f < 0 {
			add(v.attr, v.val, "cannot be negative")
		}
	}

	if len(issues) == 0 {
		return nil
	}
	return &ValidationError{FieldID: r.ID, Issues: issues}
}
