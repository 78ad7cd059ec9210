package cmd

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnplet/internal/iodb"
	"github.com/gnames/gnplet/pkg/config"
	"github.com/gnames/gnplet/pkg/db"
	"github.com/spf13/cobra"
)

type funcFlag func(cmd *cobra.Command) []config.Option

// lookupsFlag sets the lookup source from a path: a workbook for .xlsx
// files, a directory of CSV files otherwise.
func lookupsFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("lookups") {
		return nil
	}
	s, _ := cmd.Flags().GetString("lookups")
	if strings.EqualFold(filepath.Ext(s), ".xlsx") {
		return []config.Option{
			config.OptLookupsSource("xlsx"),
			config.OptLookupsXLSXPath(s),
		}
	}
	return []config.Option{
		config.OptLookupsSource("dir"),
		config.OptLookupsDir(s),
	}
}

func lookupsSourceFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("lookups-source") {
		return nil
	}
	s, _ := cmd.Flags().GetString("lookups-source")
	return []config.Option{config.OptLookupsSource(s)}
}

func jobsFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("jobs") {
		return nil
	}
	i, _ := cmd.Flags().GetInt("jobs")
	return []config.Option{config.OptJobsNumber(i)}
}

func portFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("port") {
		return nil
	}
	i, _ := cmd.Flags().GetInt("port")
	return []config.Option{config.OptServePort(i)}
}

func drainedFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("drained") {
		return nil
	}
	b, _ := cmd.Flags().GetBool("drained")
	return []config.Option{config.OptModelDrained(b)}
}

// flagOptions collects options from flags set explicitly by the user.
func flagOptions(cmd *cobra.Command, fns ...funcFlag) []config.Option {
	var res []config.Option
	for _, fn := range fns {
		res = append(res, fn(cmd)...)
	}
	return res
}

// addLookupsFlags adds flags that choose where lookup tables come from.
func addLookupsFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("lookups", "l", "",
		"lookup tables: directory of CSV files or XLSX workbook")
	cmd.Flags().StringP("lookups-source", "s", "",
		"lookup tables source: dir, xlsx or db")
}

// connect opens the configured database and reports where it is.
func connect(ctx context.Context) (db.Operator, error) {
	op := iodb.NewOperator()
	if err := op.Connect(ctx, cfg); err != nil {
		return nil, err
	}
	if cfg.Database.Driver == "postgres" {
		gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
			cfg.Database.User, cfg.Database.Host,
			cfg.Database.Port, cfg.Database.Database)
	} else {
		gn.Info("Connected to database: <em>%s</em>", cfg.SQLitePath())
	}
	return op, nil
}

// lookupsOperator connects to the database only when lookup tables are
// read from it. The returned closer is always safe to call.
func lookupsOperator(ctx context.Context) (db.Operator, func(), error) {
	if cfg.Lookups.Source != "db" {
		return nil, func() {}, nil
	}
	op, err := connect(ctx)
	if err != nil {
		return nil, func() {}, err
	}
	return op, func() { op.Close() }, nil
}
