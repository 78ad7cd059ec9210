package iorun

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gnplet/internal/iofs"
	"github.com/gnames/gnplet/pkg/num"
	"github.com/gnames/gnplet/pkg/plet"
	"gonum.org/v1/gonum/floats"
	"gopkg.in/yaml.v3"
)

// Totals are sums of defined loads over a batch.
type Totals struct {
	RunoffVolume float64 `json:"runoff_volume" yaml:"runoff_volume"`
	N            float64 `json:"n"             yaml:"n"`
	P            float64 `json:"p"             yaml:"p"`
	Sediment     float64 `json:"sediment"      yaml:"sediment"`
}

// Summary describes a finished batch.
type Summary struct {
	RunID          string   `json:"run_id"          yaml:"run_id"`
	Input          string   `json:"input,omitempty" yaml:"input,omitempty"`
	Fields         int      `json:"fields"          yaml:"fields"`
	Rejected       int      `json:"rejected"        yaml:"rejected"`
	WithConditions int      `json:"with_conditions" yaml:"with_conditions"`
	Conditions     int      `json:"conditions"      yaml:"conditions"`
	Baseline       Totals   `json:"baseline"        yaml:"baseline"`
	Practice       Totals   `json:"practice"        yaml:"practice"`
	ElapsedSec     float64  `json:"elapsed_sec"     yaml:"elapsed_sec"`
	Elapsed        string   `json:"elapsed"         yaml:"elapsed"`
	Outputs        []string `json:"outputs,omitempty" yaml:"outputs,omitempty"`
}

// Summarize counts results and sums their defined loads. Rejected fields
// do not contribute to totals.
func Summarize(runID string, res []plet.Result, elapsedSec float64) Summary {
	s := Summary{
		RunID:      runID,
		Fields:     len(res),
		ElapsedSec: elapsedSec,
		Elapsed:    gnfmt.TimeString(elapsedSec),
	}

	var bv, bn, bp, bs, pv, pn, pp, ps []float64
	for _, r := range res {
		if r.IsRejected() {
			s.Rejected++
		}
		if len(r.Conditions) > 0 {
			s.WithConditions++
			s.Conditions += len(r.Conditions)
		}
		if r.IsRejected() {
			continue
		}
		b, p := r.Baseline, r.Practice
		bv = appendDefined(bv, b.RunoffVolume)
		bn = appendDefined(bn, b.RunoffN)
		bp = appendDefined(bp, b.RunoffP)
		bs = appendDefined(bs, b.SedimentLoad)
		pv = appendDefined(pv, p.RunoffVolume)
		pn = appendDefined(pn, p.RunoffN)
		pp = appendDefined(pp, p.RunoffP)
		ps = appendDefined(ps, p.SedimentLoad)
	}

	s.Baseline = Totals{
		RunoffVolume: floats.Sum(bv),
		N:            floats.Sum(bn),
		P:            floats.Sum(bp),
		Sediment:     floats.Sum(bs),
	}
	s.Practice = Totals{
		RunoffVolume: floats.Sum(pv),
		N:            floats.Sum(pn),
		P:            floats.Sum(pp),
		Sediment:     floats.Sum(ps),
	}
	return s
}

func appendDefined(fs []float64, f num.Float) []float64 {
	if v, ok := f.Get(); ok {
		return append(fs, v)
	}
	return fs
}

// Save writes the summary as YAML for .yaml/.yml paths and as JSON
// otherwise.
func (s Summary) Save(path string) error {
	var bs []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		bs, err = yaml.Marshal(s)
	default:
		bs, err = gnfmt.GNjson{Pretty: true}.Encode(s)
	}
	if err != nil {
		return ReportError(path, err)
	}
	if err = iofs.WriteFile(path, bs); err != nil {
		return ReportError(path, err)
	}
	slog.Info("Run report saved", "path", path)
	return nil
}
