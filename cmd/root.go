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
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnplet/internal/iofs"
	"github.com/gnames/gnplet/internal/iologger"
	app "github.com/gnames/gnplet/pkg"
	"github.com/gnames/gnplet/pkg/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the base command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "gnplet",
		Short:   "GNplet calculates pollutant loads of agricultural fields",
		Long: `GNplet estimates annual runoff volume, nitrogen, phosphorus and
sediment loads of agricultural fields before and after a conservation
practice (BMP), using the Pollutant Load Estimation Tool method.

Commands:
  - run: calculate loads for a GeoJSON or shapefile field collection
  - create: create lookup tables in the database
  - migrate: update lookup tables schema
  - import: load CSV lookup tables into the database
  - serve: start the HTTP wrapper

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (GNPLET_*, also read from .env)
  3. Config file (~/.config/gnplet/config.yaml)
  4. Built-in defaults

Environment Variables:
  Nested fields use underscores (database.host → GNPLET_DATABASE_HOST).

  Examples:
    GNPLET_DATABASE_DRIVER             sqlite or postgres
    GNPLET_LOOKUPS_SOURCE              dir, xlsx or db
    GNPLET_LOOKUPS_DIR                 directory with lookup CSV files
    GNPLET_MODEL_PHOSPHORUS_SOIL_CONC  soil phosphorus concentration
    GNPLET_JOBS_NUMBER                 number of workers`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "gnplet version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for gnplet")
	rootCmd.Flags().Bool("show-config", false,
		"print configuration as YAML and exit")

	rootCmd.AddCommand(
		getRunCmd(),
		getCreateCmd(),
		getMigrateCmd(),
		getImportCmd(),
		getServeCmd(),
	)

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// .env is optional
	if err = godotenv.Load(); err == nil {
		slog.Info("Environment loaded from .env")
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings and proper log file location
	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded", "config_file", config.ConfigFilePath(homeDir))

	return nil
}

// reconfigureLogging reinitializes the logger with the loaded configuration.
func reconfigureLogging(cfg *config.Config) error {
	logDir := config.LogDir(cfg.HomeDir)
	return iologger.Init(logDir, cfg.Log)
}

func runRoot(cmd *cobra.Command, args []string) error {
	showConfig, _ := cmd.Flags().GetBool("show-config")
	if !showConfig {
		return cmd.Help()
	}

	c := *cfg
	if c.Database.Password != "" {
		c.Database.Password = "********"
	}
	bs, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(bs))
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	defer iologger.Close()
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("GNPLET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Database configuration
	v.BindEnv("database.driver", "GNPLET_DATABASE_DRIVER")
	v.BindEnv("database.host", "GNPLET_DATABASE_HOST")
	v.BindEnv("database.port", "GNPLET_DATABASE_PORT")
	v.BindEnv("database.user", "GNPLET_DATABASE_USER")
	v.BindEnv("database.password", "GNPLET_DATABASE_PASSWORD")
	v.BindEnv("database.database", "GNPLET_DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "GNPLET_DATABASE_SSL_MODE")
	v.BindEnv("database.sqlite_path", "GNPLET_DATABASE_SQLITE_PATH")
	v.BindEnv("database.batch_size", "GNPLET_DATABASE_BATCH_SIZE")

	// Lookups configuration
	v.BindEnv("lookups.source", "GNPLET_LOOKUPS_SOURCE")
	v.BindEnv("lookups.dir", "GNPLET_LOOKUPS_DIR")
	v.BindEnv("lookups.xlsx_path", "GNPLET_LOOKUPS_XLSX_PATH")

	// Model configuration
	v.BindEnv("model.nitrogen_soil_conc", "GNPLET_MODEL_NITROGEN_SOIL_CONC")
	v.BindEnv("model.phosphorus_soil_conc", "GNPLET_MODEL_PHOSPHORUS_SOIL_CONC")
	v.BindEnv("model.animal_type", "GNPLET_MODEL_ANIMAL_TYPE")
	v.BindEnv("model.cover_crop_cn_offset", "GNPLET_MODEL_COVER_CROP_CN_OFFSET")
	v.BindEnv("model.drained", "GNPLET_MODEL_DRAINED")

	// Output and server configuration
	v.BindEnv("output.dir", "GNPLET_OUTPUT_DIR")
	v.BindEnv("output.formats", "GNPLET_OUTPUT_FORMATS")
	v.BindEnv("serve.port", "GNPLET_SERVE_PORT")

	// Log configuration
	v.BindEnv("log.level", "GNPLET_LOG_LEVEL")
	v.BindEnv("log.format", "GNPLET_LOG_FORMAT")
	v.BindEnv("log.destination", "GNPLET_LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "GNPLET_JOBS_NUMBER")

	v.AutomaticEnv()
}
