// Package config provides configuration management for gnplet.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: driver, host, port, user, password, database, ssl_mode,
//     sqlite_path, batch_size
//   - Lookups: source, dir, xlsx_path
//   - Model: nitrogen_soil_conc, phosphorus_soil_conc, animal_type,
//     cover_crop_cn_offset, drained
//   - Output: dir, formats
//   - Serve: port
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Output.Input, Output.Report (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GNPLET_ prefix with underscores for nesting:
//
//	GNPLET_DATABASE_DRIVER=postgres
//	GNPLET_LOOKUPS_DIR=/data/plet/lookups
//	GNPLET_MODEL_PHOSPHORUS_SOIL_CONC=0.16
//	GNPLET_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete gnplet configuration.
type Config struct {
	// Database contains settings of the lookup database.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Lookups determines where lookup tables are loaded from.
	Lookups LookupsConfig `mapstructure:"lookups" yaml:"lookups"`

	// Model contains model constants that are not part of lookup tables.
	Model ModelConfig `mapstructure:"model" yaml:"model"`

	// Output contains settings for the run command.
	Output OutputConfig `mapstructure:"output" yaml:"output"`

	// Serve contains settings of the HTTP wrapper.
	Serve ServeConfig `mapstructure:"serve" yaml:"serve"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for field processing.
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains connection parameters of the lookup database.
type DatabaseConfig struct {
	// Driver is either "sqlite" or "postgres".
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// SQLitePath is the SQLite database file. Empty means
	// ~/.cache/gnplet/gnplet.sqlite.
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`

	// BatchSize is the number of rows per insert during lookup import.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// LookupsConfig determines the source of lookup tables.
type LookupsConfig struct {
	// Source is "dir" (CSV files), "xlsx" (one workbook) or "db".
	Source string `mapstructure:"source" yaml:"source"`

	// Dir is the directory with lookup CSV files.
	Dir string `mapstructure:"dir" yaml:"dir"`

	// XLSXPath is the workbook with one sheet per lookup table.
	XLSXPath string `mapstructure:"xlsx_path" yaml:"xlsx_path"`
}

// ModelConfig contains model constants.
type ModelConfig struct {
	// NitrogenSoilConc is the soil nitrogen concentration (decimal
	// fraction) used for sediment-bound nitrogen.
	NitrogenSoilConc float64 `mapstructure:"nitrogen_soil_conc" yaml:"nitrogen_soil_conc"`

	// PhosphorusSoilConc is the soil phosphorus concentration (decimal
	// fraction) used for sediment-bound phosphorus. Historical revisions
	// of the model used 0.16 and 0.0308.
	PhosphorusSoilConc float64 `mapstructure:"phosphorus_soil_conc" yaml:"phosphorus_soil_conc"`

	// AnimalType is the species assumed for fields that do not name one.
	AnimalType string `mapstructure:"animal_type" yaml:"animal_type"`

	// CoverCropCNOffset is subtracted from the curve number of fields with
	// a cover-crop practice.
	CoverCropCNOffset float64 `mapstructure:"cover_crop_cn_offset" yaml:"cover_crop_cn_offset"`

	// Drained is the drainage assumed for dual soil groups (A/D, B/D, C/D)
	// when a field does not specify it.
	Drained bool `mapstructure:"drained" yaml:"drained"`
}

// OutputConfig contains settings of the run command.
type OutputConfig struct {
	// Dir is where result files are written.
	Dir string `mapstructure:"dir" yaml:"dir"`

	// Formats of result files: "geojson", "csv", "xlsx".
	Formats []string `mapstructure:"formats" yaml:"formats"`

	// Input is the path of the field collection (GeoJSON or shapefile).
	// Runtime-only.
	Input string `mapstructure:"input" yaml:"input"`

	// Report is a path for the run summary (JSON or YAML by extension).
	// Runtime-only.
	Report string `mapstructure:"report" yaml:"report"`
}

// ServeConfig contains settings of the HTTP wrapper.
type ServeConfig struct {
	// Port the server listens on.
	Port int `mapstructure:"port" yaml:"port"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Driver:    "sqlite",
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "gnplet",
			SSLMode:   "disable",
			BatchSize: 5_000,
		},
		Lookups: LookupsConfig{
			Source: "dir",
			Dir:    "lookups",
		},
		Model: ModelConfig{
			NitrogenSoilConc:   0.08,
			PhosphorusSoilConc: 0.0308,
			AnimalType:         "beef_cattle",
			CoverCropCNOffset:  3,
		},
		Output: OutputConfig{
			Dir:     ".",
			Formats: []string{"geojson", "csv"},
		},
		Serve: ServeConfig{
			Port: 8080,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
