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
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnplet/internal/iolookup"
	"github.com/gnames/gnplet/internal/ioschema"
	"github.com/gnames/gnplet/pkg/config"
	"github.com/spf13/cobra"
)

// getCreateCmd returns the create command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getCreateCmd() *cobra.Command {
	var forceCreate bool

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create lookup tables schema",
		Long: `Create the lookup tables schema from scratch.

This command:
  1. Connects to SQLite or PostgreSQL using configuration settings
  2. Checks for existing lookup tables and prompts for confirmation
  3. Creates all lookup tables using GORM AutoMigrate
  4. Optionally imports CSV lookup tables from --lookups

Use --force to skip confirmation and drop existing tables.

Examples:
  gnplet create
  gnplet create --force
  gnplet create -f -l lookups`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runCreate(cmd, forceCreate)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	createCmd.Flags().BoolVarP(&forceCreate, "force", "f",
		false, "drop existing tables without confirmation")
	createCmd.Flags().StringP("lookups", "l", "",
		"directory with lookup CSV files to import after creation")

	return createCmd
}

func runCreate(cmd *cobra.Command, force bool) error {
	ctx := context.Background()

	op, err := connect(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	// Check if database has existing tables
	hasTables, err := op.HasTables(ctx)
	if err != nil {
		return err
	}

	// Handle existing tables
	if hasTables {
		if !force {
			gn.Warn("\nWarning: Database contains existing lookup tables.")
			gn.Warn("Creating schema will drop ALL lookup tables and data.")
			fmt.Print("\nDo you want to continue? (yes/no): ")

			reader := bufio.NewReader(os.Stdin)
			response, err := reader.ReadString('\n')
			if err != nil {
				gn.Warn("Failed to read user input")
				return err
			}

			response = strings.TrimSpace(strings.ToLower(response))
			if response != "yes" && response != "y" {
				gn.Info("Aborted. No changes made.")
				return nil
			}
		}

		gn.Info("Dropping all existing lookup tables...")
		if err = op.DropAllTables(ctx); err != nil {
			return err
		}
		gn.Info("All lookup tables dropped")
	}

	sm := ioschema.NewManager(op)

	gn.Info("Creating schema using GORM AutoMigrate...")
	if err = sm.Create(ctx, cfg); err != nil {
		return err
	}

	if !cmd.Flags().Changed("lookups") {
		gn.Info(`Lookup tables schema is created.

Next steps:
  - Run '<em>gnplet import -l lookups_dir</em>' to load lookup tables
  - Set lookups.source to 'db' to use them in run and serve`)
		return nil
	}

	dir, _ := cmd.Flags().GetString("lookups")
	cfg.Update([]config.Option{config.OptLookupsDir(dir)})
	if err = iolookup.NewImporter(op).Import(ctx, cfg); err != nil {
		return err
	}
	gn.Info("Lookup tables are created and imported from <em>%s</em>", dir)
	return nil
}
