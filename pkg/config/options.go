package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

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

// OptDatabaseBatchSize sets the number of rows per bulk write batch.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
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
// Valid values: "json", "text".
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

// OptPipelineAnalysisDir sets the root directory for assembly data.
func OptPipelineAnalysisDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Analysis Directory", s) {
			c.Pipeline.AnalysisDir = s
		}
	}
}

// OptPipelineDownloadJobs sets the size of the download pool.
func OptPipelineDownloadJobs(i int) Option {
	return func(c *Config) {
		if isValidInt("Download Jobs", i) {
			c.Pipeline.DownloadJobs = i
		}
	}
}

// OptPipelineDetectorJobs sets the size of the detector pool.
func OptPipelineDetectorJobs(i int) Option {
	return func(c *Config) {
		if isValidInt("Detector Jobs", i) {
			c.Pipeline.DetectorJobs = i
		}
	}
}

// OptPipelineDownloadTimeout sets the HTTP timeout of a download in
// seconds.
func OptPipelineDownloadTimeout(i int) Option {
	return func(c *Config) {
		if isValidInt("Download Timeout", i) {
			c.Pipeline.DownloadTimeout = i
		}
	}
}

// OptPipelineWithDatabase enables recording of run status in PostgreSQL.
// Runtime-only field - not in ToOptions().
func OptPipelineWithDatabase(b bool) Option {
	return func(c *Config) {
		c.Pipeline.WithDatabase = b
	}
}

// OptPipelineWithProgress enables progress bars.
// Runtime-only field - not in ToOptions().
func OptPipelineWithProgress(b bool) Option {
	return func(c *Config) {
		c.Pipeline.WithProgress = b
	}
}

// OptDetectorServer sets the deployment profile of the detector.
// Valid values: "denbi", "binac", "custom".
func OptDetectorServer(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Detector.Server", s) {
			c.Detector.Server = s
		}
	}
}

// OptDetectorCondaPath sets the conda root used by the custom profile.
func OptDetectorCondaPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Conda Path", s) {
			c.Detector.CondaPath = s
		}
	}
}

// OptDetectorCondaEnv sets the conda environment with antiSMASH.
func OptDetectorCondaEnv(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Conda Environment", s) {
			c.Detector.CondaEnv = s
		}
	}
}

// OptDetectorCores sets the number of cores given to antiSMASH.
func OptDetectorCores(i int) Option {
	return func(c *Config) {
		if isValidInt("Detector Cores", i) {
			c.Detector.Cores = i
		}
	}
}

// OptDetectorVersion sets the antiSMASH version recorded with runs.
func OptDetectorVersion(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Detector Version", s) {
			c.Detector.Version = s
		}
	}
}

// OptReconcileThreshold sets the clustering threshold recorded with
// membership rows.
func OptReconcileThreshold(f float64) Option {
	return func(c *Config) {
		if isValidFloat("Reconcile Threshold", f) {
			c.Reconcile.Threshold = f
		}
	}
}

// OptReconcileMinMembership sets the lower bound for core membership
// values. Zero disables filtering.
func OptReconcileMinMembership(f float64) Option {
	return func(c *Config) {
		if f >= 0 {
			c.Reconcile.MinMembership = f
		}
	}
}

// OptReconcileBiomePrefix sets the prefix removed from biome lineages.
func OptReconcileBiomePrefix(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Biome Prefix", s) {
			c.Reconcile.BiomePrefix = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for parallel operations.
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
