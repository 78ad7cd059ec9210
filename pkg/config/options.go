package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseDriver sets the database driver.
// Valid values: "sqlite", "postgres".
func OptDatabaseDriver(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Database.Driver", s) {
			c.Database.Driver = s
		}
	}
}

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabaseSQLitePath sets the SQLite database file.
func OptDatabaseSQLitePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database SQLite Path", s) {
			c.Database.SQLitePath = s
		}
	}
}

// OptDatabaseBatchSize sets the number of rows per insert.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
		}
	}
}

// OptLookupsSource sets where lookup tables are loaded from.
// Valid values: "dir", "xlsx", "db".
func OptLookupsSource(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Lookups.Source", s) {
			c.Lookups.Source = s
		}
	}
}

// OptLookupsDir sets the directory with lookup CSV files.
func OptLookupsDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Lookups Dir", s) {
			c.Lookups.Dir = s
		}
	}
}

// OptLookupsXLSXPath sets the lookup workbook path.
func OptLookupsXLSXPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Lookups XLSX Path", s) {
			c.Lookups.XLSXPath = s
		}
	}
}

// OptModelNitrogenSoilConc sets the soil nitrogen concentration.
func OptModelNitrogenSoilConc(f float64) Option {
	return func(c *Config) {
		if isValidFraction("Model Nitrogen Soil Concentration", f) {
			c.Model.NitrogenSoilConc = f
		}
	}
}

// OptModelPhosphorusSoilConc sets the soil phosphorus concentration.
func OptModelPhosphorusSoilConc(f float64) Option {
	return func(c *Config) {
		if isValidFraction("Model Phosphorus Soil Concentration", f) {
			c.Model.PhosphorusSoilConc = f
		}
	}
}

// OptModelAnimalType sets the default animal species.
func OptModelAnimalType(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidString("Model Animal Type", s) {
			c.Model.AnimalType = s
		}
	}
}

// OptModelCoverCropCNOffset sets the curve number reduction of cover crops.
func OptModelCoverCropCNOffset(f float64) Option {
	return func(c *Config) {
		if isValidNonNegative("Model Cover Crop CN Offset", f) {
			c.Model.CoverCropCNOffset = f
		}
	}
}

// OptModelDrained sets the default drainage of dual soil groups.
func OptModelDrained(b bool) Option {
	return func(c *Config) {
		c.Model.Drained = b
	}
}

// OptOutputDir sets the directory for result files.
func OptOutputDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Output Dir", s) {
			c.Output.Dir = s
		}
	}
}

// OptOutputFormats sets result file formats.
// Valid values: "geojson", "csv", "xlsx". Invalid values are dropped.
func OptOutputFormats(ss []string) Option {
	return func(c *Config) {
		var res []string
		seen := make(map[string]struct{})
		for _, s := range ss {
			s = strings.ToLower(strings.TrimSpace(s))
			if _, ok := seen[s]; ok {
				continue
			}
			if isValidEnum("Output.Formats", s) {
				seen[s] = struct{}{}
				res = append(res, s)
			}
		}
		if len(res) > 0 {
			c.Output.Formats = res
		}
	}
}

// OptOutputInput sets the path of the field collection.
// Runtime-only field - not in ToOptions().
func OptOutputInput(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Input", s) {
			c.Output.Input = s
		}
	}
}

// OptOutputReport sets the path of the run summary.
// Runtime-only field - not in ToOptions().
func OptOutputReport(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Report", s) {
			c.Output.Report = s
		}
	}
}

// OptServePort sets the HTTP port.
func OptServePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Serve Port", i) {
			c.Serve.Port = i
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
