/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gnames/gn"
	"github.com/gnames/gnplet/internal/iorun"
	"github.com/gnames/gnplet/pkg/config"
	"github.com/spf13/cobra"
)

// getRunCmd returns the run command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getRunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Calculate pollutant loads of a field collection",
		Long: `Calculate baseline and practice-change loads for every field.

This command:
  1. Loads lookup tables (CSV directory, XLSX workbook or database)
  2. Reads fields from a GeoJSON FeatureCollection or ESRI shapefile
  3. Runs enrichment, hydrology, baseline, practice-change and
     comparison stages for each field in parallel
  4. Writes results in every requested format
  5. Prints a summary of the run

Malformed lookup tables stop the run before any field is processed.
Fields with invalid attributes are kept in the output with status
'rejected'.

Examples:
  gnplet run -i fields.geojson
  gnplet run -i fields.shp -o results -f geojson,csv,xlsx
  gnplet run -i fields.geojson -l lookups.xlsx -j 8 -r report.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runRun(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	runCmd.Flags().StringP("input", "i", "",
		"field collection (.geojson or .shp)")
	runCmd.Flags().StringP("output", "o", "",
		"directory for result files")
	runCmd.Flags().StringSliceP("formats", "f", nil,
		"result formats: geojson, csv, xlsx")
	runCmd.Flags().IntP("jobs", "j", 0,
		"number of concurrent workers")
	runCmd.Flags().StringP("report", "r", "",
		"save run summary to a JSON or YAML file")
	runCmd.Flags().Bool("drained", false,
		"treat dual soil groups as drained")
	addLookupsFlags(runCmd)
	_ = runCmd.MarkFlagRequired("input")

	return runCmd
}

func runRun(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	input, _ := cmd.Flags().GetString("input")
	runOpts := []config.Option{config.OptOutputInput(input)}
	if cmd.Flags().Changed("output") {
		s, _ := cmd.Flags().GetString("output")
		runOpts = append(runOpts, config.OptOutputDir(s))
	}
	if cmd.Flags().Changed("formats") {
		ss, _ := cmd.Flags().GetStringSlice("formats")
		runOpts = append(runOpts, config.OptOutputFormats(ss))
	}
	if cmd.Flags().Changed("report") {
		s, _ := cmd.Flags().GetString("report")
		runOpts = append(runOpts, config.OptOutputReport(s))
	}
	runOpts = append(runOpts, flagOptions(cmd,
		lookupsFlag, lookupsSourceFlag, jobsFlag, drainedFlag)...)
	cfg.Update(runOpts)

	op, closeDB, err := lookupsOperator(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	return iorun.NewRunner(op).Run(ctx, cfg)
}
