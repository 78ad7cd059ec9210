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

	"github.com/gnames/gn"
	"github.com/gnames/gnplet/internal/iolookup"
	"github.com/gnames/gnplet/pkg/config"
	"github.com/spf13/cobra"
)

// getImportCmd returns the import command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getImportCmd() *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Import CSV lookup tables into the database",
		Long: `Import lookup tables from a directory of CSV files.

This command:
  1. Reads lu.csv, cn.csv, usle.csv, runoff_nutrients.csv,
     bmp_eff_vals.csv, animal_wts.csv, animal_nutrient_ratio.csv,
     gw_infil_frac.csv and gw_nutrients.csv
  2. Validates every table before writing anything
  3. Replaces rows of each imported table in a transaction

Tables without a CSV file are left untouched.

Examples:
  gnplet import -l lookups
  gnplet import --lookups /data/plet/lookups`,
		Aliases: []string{"load"},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runImport(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	importCmd.Flags().StringP("lookups", "l", "",
		"directory with lookup CSV files")

	return importCmd
}

func runImport(cmd *cobra.Command) error {
	ctx := context.Background()

	if cmd.Flags().Changed("lookups") {
		s, _ := cmd.Flags().GetString("lookups")
		cfg.Update([]config.Option{config.OptLookupsDir(s)})
	}

	op, err := connect(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	imp := iolookup.NewImporter(op)
	if err = imp.Import(ctx, cfg); err != nil {
		return err
	}

	gn.Info(`Next steps:
  - Set lookups.source to 'db' or use '<em>-s db</em>' with run and serve`)
	return nil
}
