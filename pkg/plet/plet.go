// Package plet implements the PLET (Pollutant Load Estimation Tool)
// calculation core adapted from the STEPL spreadsheet model.
//
// A field record passes once through five stages, each a pure function of
// its inputs:
//
//	Enrich -> Hydrology -> Baseline -> PracticeChange -> Compare
//
// Enrich joins the field against the lookup repository, Hydrology computes
// rainfall per event, retention and runoff depth, Baseline computes runoff
// volume, nutrient and sediment loads under current management,
// PracticeChange recomputes them with the assigned BMP, and Compare
// reports percent reductions.
//
// Every quantity is a num.Float. A value that cannot be computed (no
// matching lookup row, division by zero, unsupported species or land use,
// non-positive baseline) is undefined rather than zero, and the reason is
// returned as a Condition naming the field, the stage and the key.
//
// Units: runoff volume in acre-feet, nutrient loads in pounds, sediment
// loads and erosion in tons per year, areas in acres.
package plet

import "fmt"

// Canonical user land uses with their own practice-change rules.
const (
	Cropland    = "cropland"
	Pastureland = "pastureland"
)

// SupportedAnimalType is the only species the model handles.
const SupportedAnimalType = "beef_cattle"

// Animal intensity classes.
const (
	IntensityLow    = "low"
	IntensityMedium = "medium"
	IntensityHigh   = "high"
)

const (
	// NutrientConversion converts acre-feet times mg/L to pounds.
	NutrientConversion = 4047 * 0.3048 / 1000 * 2.2

	// TonsToPounds converts erosion to pounds.
	TonsToPounds = 2000.0

	// AcresPerSquareMile is used by the sediment delivery ratio.
	AcresPerSquareMile = 640.0

	// DeliveryRatioBreakpoint is the field area (acres) where the delivery
	// ratio switches formulas.
	DeliveryRatioBreakpoint = 200.0
)

// Stage names a pipeline stage.
type Stage string

// Pipeline stages.
const (
	StageValidation Stage = "validation"
	StageEnrichment Stage = "enrichment"
	StageHydrology  Stage = "hydrology"
	StageBaseline   Stage = "baseline"
	StagePractice   Stage = "practice_change"
	StageComparison Stage = "comparison"
)

// Condition is a reportable, recovered problem: a value that was left
// undefined, or a BMP effect that was skipped.
type Condition struct {
	FieldID string `json:"field_id"`
	Stage   Stage  `json:"stage"`
	Key     string `json:"key"`
	Reason  string `json:"reason"`
}

func (c Condition) String() string {
	return fmt.Sprintf("%s %s: %s", c.Stage, c.Key, c.Reason)
}

// conditions collects conditions of one field and stage.
type conditions struct {
	fieldID string
	stage   Stage
	list    []Condition
}

func (c *conditions) add(key, reason string, args ...any) {
	if len(args) > 0 {
		reason = fmt.Sprintf(reason, args...)
	}
	c.list = append(c.list, Condition{
		FieldID: c.fieldID,
		Stage:   c.stage,
		Key:     key,
		Reason:  reason,
	})
}

func tableKey(table string, kv ...string) string {
	res := table + "{"
	for i := 0; i+1 < len(kv); i += 2 {
		if i > 0 {
			res += ", "
		}
		res += kv[i] + "=" + kv[i+1]
	}
	return res + "}"
}
