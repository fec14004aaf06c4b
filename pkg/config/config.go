// Package config provides configuration management for bgcatlas.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: host, port, user, password, database, ssl_mode, batch_size
//   - Log: level, format, destination
//   - Pipeline: analysis_dir, download_jobs, detector_jobs, download_timeout
//   - Detector: server, conda_path, conda_env, cores, version
//   - Reconcile: threshold, min_membership, biome_prefix
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Pipeline.WithDatabase, Pipeline.WithProgress
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use BGCATLAS_ prefix with underscores for nesting:
//
//	BGCATLAS_DATABASE_HOST=localhost
//	BGCATLAS_PIPELINE_ANALYSIS_DIR=/data/analysis
//	BGCATLAS_DETECTOR_SERVER=binac
//	BGCATLAS_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete bgcatlas configuration.
type Config struct {
	// Database contains PostgreSQL connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// Pipeline contains settings for download and detection pools.
	Pipeline PipelineConfig `mapstructure:"pipeline" yaml:"pipeline"`

	// Detector describes how antiSMASH is invoked.
	Detector DetectorConfig `mapstructure:"detector" yaml:"detector"`

	// Reconcile contains settings for GCF reconciliation.
	Reconcile ReconcileConfig `mapstructure:"reconcile" yaml:"reconcile"`

	// JobsNumber is the number of concurrent workers for harvesting
	// and status checks. Defaults to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
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

	// BatchSize is the number of rows sent per batch for bulk writes.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// PipelineConfig contains settings of the download -> detect pipeline.
type PipelineConfig struct {
	// AnalysisDir is the root where every assembly gets its own
	// directory with downloaded inputs and detector results.
	AnalysisDir string `mapstructure:"analysis_dir" yaml:"analysis_dir"`

	// DownloadJobs is the size of the download pool.
	DownloadJobs int `mapstructure:"download_jobs" yaml:"download_jobs"`

	// DetectorJobs is the size of the detector pool.
	DetectorJobs int `mapstructure:"detector_jobs" yaml:"detector_jobs"`

	// DownloadTimeout is the HTTP timeout of one download in seconds.
	DownloadTimeout int `mapstructure:"download_timeout" yaml:"download_timeout"`

	// WithDatabase enables recording of run status in PostgreSQL.
	WithDatabase bool `mapstructure:"-" yaml:"-"`

	// WithProgress shows progress bars on the terminal.
	WithProgress bool `mapstructure:"-" yaml:"-"`
}

// DetectorConfig describes the antiSMASH environment.
type DetectorConfig struct {
	// Server selects a deployment profile that determines the conda
	// activation script. Valid values: "denbi", "binac", "custom".
	Server string `mapstructure:"server" yaml:"server"`

	// CondaPath is the conda installation root for the "custom" profile.
	CondaPath string `mapstructure:"conda_path" yaml:"conda_path"`

	// CondaEnv is the name of the conda environment with antiSMASH.
	CondaEnv string `mapstructure:"conda_env" yaml:"conda_env"`

	// Cores is the value of antiSMASH -c option.
	Cores int `mapstructure:"cores" yaml:"cores"`

	// Version is the antiSMASH version recorded with each run.
	Version string `mapstructure:"version" yaml:"version"`
}

// ReconcileConfig contains settings for GCF reconciliation.
type ReconcileConfig struct {
	// Threshold is the BiG-SLICE clustering threshold written next to
	// every membership row.
	Threshold float64 `mapstructure:"threshold" yaml:"threshold"`

	// MinMembership drops core membership rows with a value not
	// exceeding it. Zero keeps everything.
	MinMembership float64 `mapstructure:"min_membership" yaml:"min_membership"`

	// BiomePrefix is removed from biome lineages before counting.
	BiomePrefix string `mapstructure:"biome_prefix" yaml:"biome_prefix"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), stderr or stdout
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "bgcatlas",
			SSLMode:   "disable",
			BatchSize: 10_000,
		},
		Log: LogConfig{
			Format:      "json",
			Level:       "info",
			Destination: "file",
		},
		Pipeline: PipelineConfig{
			AnalysisDir:     "analysis",
			DownloadJobs:    4,
			DetectorJobs:    1,
			DownloadTimeout: 3600,
		},
		Detector: DetectorConfig{
			Server:   string(ServerDenbi),
			CondaEnv: "antismash7",
			Cores:    1,
			Version:  "7.0.0",
		},
		Reconcile: ReconcileConfig{
			Threshold:   0.4,
			BiomePrefix: "root:",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
