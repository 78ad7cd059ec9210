// Package iorun processes a collection of fields in parallel and writes
// the results.
package iorun

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnplet/internal/iofields"
	"github.com/gnames/gnplet/internal/iolookup"
	"github.com/gnames/gnplet/pkg/config"
	"github.com/gnames/gnplet/pkg/db"
	"github.com/gnames/gnplet/pkg/field"
	"github.com/gnames/gnplet/pkg/lifecycle"
	"github.com/gnames/gnplet/pkg/plet"
	"github.com/google/uuid"
)

type runner struct {
	operator db.Operator
}

// NewRunner creates a Runner. The operator is used only when lookup
// tables come from the database and must be connected by the caller.
func NewRunner(op db.Operator) lifecycle.Runner {
	return &runner{operator: op}
}

// Run reads fields from cfg.Output.Input, calculates loads and writes
// results to cfg.Output.Dir. Lookup tables are loaded before any field
// is processed, a malformed table stops the run.
func (r *runner) Run(ctx context.Context, cfg *config.Config) error {
	start := time.Now()
	runID := uuid.New().String()
	slog.Info("Run started", "run_id", runID, "input", cfg.Output.Input)

	set, err := iolookup.Load(ctx, cfg, r.operator)
	if err != nil {
		return err
	}

	feats, err := iofields.Read(cfg.Output.Input)
	if err != nil {
		return err
	}
	if len(feats) == 0 {
		return NoFieldsError(cfg.Output.Input)
	}
	gn.Info("Processing <em>%s</em> fields with %d workers",
		humanize.Comma(int64(len(feats))), cfg.JobsNumber)

	recs := make([]field.Record, len(feats))
	for i, f := range feats {
		recs[i] = f.Record
	}

	bar := pb.Full.Start(len(recs))
	bar.Set("prefix", "Calculating loads: ")
	bar.Set(pb.CleanOnFinish, true)
	calc := plet.New(set, cfg.Model)
	res, err := Process(ctx, calc, recs, cfg.JobsNumber, bar)
	bar.Finish()
	if err != nil {
		return err
	}

	LogConditions(res)

	stem := strings.TrimSuffix(filepath.Base(cfg.Output.Input),
		filepath.Ext(cfg.Output.Input)) + "_plet"
	paths, err := iofields.Write(cfg.Output.Dir, stem, cfg.Output.Formats,
		feats, res)
	if err != nil {
		return err
	}

	s := Summarize(runID, res, time.Since(start).Seconds())
	s.Input = cfg.Output.Input
	s.Outputs = paths
	Report(s)

	if cfg.Output.Report != "" {
		return s.Save(cfg.Output.Report)
	}
	return nil
}

// LogConditions writes conditions and rejections of results to the log.
func LogConditions(res []plet.Result) {
	for _, r := range res {
		if r.IsRejected() {
			for _, is := range r.Issues {
				slog.Warn("Field rejected",
					"field_id", r.ID(),
					"attr", is.Attr,
					"value", is.Value,
					"reason", is.Reason,
				)
			}
		}
		for _, c := range r.Conditions {
			slog.Info("Condition",
				"field_id", c.FieldID,
				"stage", string(c.Stage),
				"key", c.Key,
				"reason", c.Reason,
			)
		}
	}
}

// Report prints a run summary for the user and logs it.
func Report(s Summary) {
	slog.Info("Run finished",
		"run_id", s.RunID,
		"fields", s.Fields,
		"rejected", s.Rejected,
		"with_conditions", s.WithConditions,
		"duration", s.Elapsed,
	)
	gn.Info("Processed <em>%s</em> fields in %s: %s rejected, %s with conditions",
		humanize.Comma(int64(s.Fields)), s.Elapsed,
		humanize.Comma(int64(s.Rejected)),
		humanize.Comma(int64(s.WithConditions)),
	)
	gn.Info("Runoff N: baseline %s lb/yr, practice %s lb/yr",
		humanize.FormatFloat("#,###.##", s.Baseline.N),
		humanize.FormatFloat("#,###.##", s.Practice.N),
	)
	gn.Info("Runoff P: baseline %s lb/yr, practice %s lb/yr",
		humanize.FormatFloat("#,###.##", s.Baseline.P),
		humanize.FormatFloat("#,###.##", s.Practice.P),
	)
	gn.Info("Sediment: baseline %s t/yr, practice %s t/yr",
		humanize.FormatFloat("#,###.##", s.Baseline.Sediment),
		humanize.FormatFloat("#,###.##", s.Practice.Sediment),
	)
	for _, v := range s.Outputs {
		gn.Info("Results saved to <em>%s</em>", v)
	}
}
