package plet

import (
	"errors"

	"github.com/gnames/gnplet/pkg/config"
	"github.com/gnames/gnplet/pkg/field"
	"github.com/gnames/gnplet/pkg/lookup"
)

// Result status values.
const (
	StatusOK       = "ok"
	StatusRejected = "rejected"
)

// Result is the outcome of all stages for one field.
type Result struct {
	Status string `json:"status"`
	// Issues are data-quality violations of a rejected field.
	Issues     []field.Issue `json:"issues,omitempty"`
	Enriched   Enriched      `json:"enriched"`
	Hydrology  Hydrology     `json:"hydrology"`
	Baseline   Baseline      `json:"baseline"`
	Practice   Practice      `json:"practice"`
	Change     Change        `json:"change"`
	Conditions []Condition   `json:"conditions,omitempty"`
}

// ID returns the identifier of the source field.
func (r Result) ID() string {
	return r.Enriched.ID
}

// IsRejected reports whether the field failed ingestion validation.
func (r Result) IsRejected() bool {
	return r.Status == StatusRejected
}

// Calculator runs the stages against a shared lookup repository. It holds
// no mutable state and is safe for concurrent use.
type Calculator struct {
	set   *lookup.Set
	model config.ModelConfig
}

// New creates a Calculator.
func New(set *lookup.Set, m config.ModelConfig) *Calculator {
	return &Calculator{set: set, model: m}
}

// Calculate validates a field and runs it through every stage. A field
// that fails validation is returned with StatusRejected and its issues;
// no stage runs for it.
func (c *Calculator) Calculate(r field.Record) Result {
	if err := field.Validate(r); err != nil {
		res := Result{Status: StatusRejected, Enriched: Enriched{Record: r}}
		var verr *field.ValidationError
		if errors.As(err, &verr) {
			res.Issues = verr.Issues
			for _, v := range verr.Issues {
				res.Conditions = append(res.Conditions, Condition{
					FieldID: r.ID,
					Stage:   StageValidation,
					Key:     v.Attr,
					Reason:  v.Reason,
				})
			}
		}
		return res
	}

	res := Result{Status: StatusOK}
	var cs []Condition

	res.Enriched, cs = Enrich(r, c.set, c.model)
	res.Conditions = append(res.Conditions, cs...)

	res.Hydrology, cs = ComputeHydrology(res.Enriched)
	res.Conditions = append(res.Conditions, cs...)

	res.Baseline, cs = ComputeBaseline(res.Enriched, res.Hydrology)
	res.Conditions = append(res.Conditions, cs...)

	res.Practice, cs = ComputePractice(res.Enriched, res.Hydrology,
		res.Baseline, c.model)
	res.Conditions = append(res.Conditions, cs...)

	res.Change, cs = Compare(r.ID, res.Baseline, res.Practice)
	res.Conditions = append(res.Conditions, cs...)

	return res
}
