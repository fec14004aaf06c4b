package config_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/canerbagci/bgcatlas/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "bgcatlas"),
		},
		{
			msg: "cache dir",
			fn:  config.CacheDir,
			res: filepath.Join(tempHome, ".cache", "bgcatlas"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "bgcatlas", "logs"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "bgcatlas", "config.yaml"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestAssemblyDirs(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(filepath.Join("/data", "MGYA001"),
		config.AssemblyDir("/data", "MGYA001"))
	assert.Equal(filepath.Join("/data", "MGYA001", "antismash"),
		config.DetectorDir("/data", "MGYA001"))
	assert.Equal(
		filepath.Join("/data", "MGYA001", "antismash", "antismash_log.txt"),
		config.DetectorLogPath("/data", "MGYA001"),
	)
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "bgcatlas", cfg.Database.Database)
		assert.Equal(t, "disable", cfg.Database.SSLMode)

		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)

		assert.Equal(t, 4, cfg.Pipeline.DownloadJobs)
		assert.Equal(t, 1, cfg.Pipeline.DetectorJobs)
		assert.Equal(t, "denbi", cfg.Detector.Server)
		assert.Equal(t, "antismash7", cfg.Detector.CondaEnv)
		assert.Equal(t, 0.4, cfg.Reconcile.Threshold)
		assert.Equal(t, "root:", cfg.Reconcile.BiomePrefix)

		assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)
	})
}

func TestOptionDatabaseHost(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid host",
			input:    "db.example.com",
			expected: "db.example.com",
		},
		{
			name:     "trims whitespace",
			input:    "  db.example.com  ",
			expected: "db.example.com",
		},
		{
			name:     "ignores empty string",
			input:    "",
			expected: "localhost",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptDatabaseHost(tt.input)})
			assert.Equal(t, tt.expected, cfg.Database.Host)
		})
	}
}

func TestOptionPoolSizes(t *testing.T) {
	tests := []struct {
		name     string
		opt      config.Option
		download int
		detector int
	}{
		{"download jobs", config.OptPipelineDownloadJobs(8), 8, 1},
		{"detector jobs", config.OptPipelineDetectorJobs(3), 4, 3},
		{"ignores zero download", config.OptPipelineDownloadJobs(0), 4, 1},
		{"ignores negative detector", config.OptPipelineDetectorJobs(-2), 4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{tt.opt})
			assert.Equal(t, tt.download, cfg.Pipeline.DownloadJobs)
			assert.Equal(t, tt.detector, cfg.Pipeline.DetectorJobs)
		})
	}
}

func TestOptionDetectorServer(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets binac", "binac", "binac"},
		{"normalizes to lowercase", "BinAC", "binac"},
		{"sets custom", "custom", "custom"},
		{"ignores unknown server", "azure", "denbi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptDetectorServer(tt.input)})
			assert.Equal(t, tt.expected, cfg.Detector.Server)
		})
	}
}

func TestActivationScript(t *testing.T) {
	tests := []struct {
		name   string
		cfg    config.DetectorConfig
		script string
		ok     bool
	}{
		{
			name:   "denbi",
			cfg:    config.DetectorConfig{Server: "denbi"},
			script: "/home/ubuntu/anaconda3/etc/profile.d/conda.sh",
			ok:     true,
		},
		{
			name:   "binac",
			cfg:    config.DetectorConfig{Server: "binac"},
			script: "/beegfs/work/tu_iijcb01/software/miniforge3/etc/profile.d/conda.sh",
			ok:     true,
		},
		{
			name:   "custom",
			cfg:    config.DetectorConfig{Server: "custom", CondaPath: "/opt/conda"},
			script: filepath.Join("/opt/conda", "etc", "profile.d", "conda.sh"),
			ok:     true,
		},
		{
			name: "custom without path",
			cfg:  config.DetectorConfig{Server: "custom"},
		},
		{
			name: "unknown",
			cfg:  config.DetectorConfig{Server: "laptop"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script, ok := tt.cfg.ActivationScript()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.script, script)
		})
	}
}

func TestOptionReconcile(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptReconcileThreshold(0.6),
		config.OptReconcileMinMembership(0.4),
		config.OptReconcileBiomePrefix("root:Host-associated:"),
	})
	assert.Equal(t, 0.6, cfg.Reconcile.Threshold)
	assert.Equal(t, 0.4, cfg.Reconcile.MinMembership)
	assert.Equal(t, "root:Host-associated:", cfg.Reconcile.BiomePrefix)

	cfg.Update([]config.Option{
		config.OptReconcileThreshold(0),
		config.OptReconcileMinMembership(-1),
	})
	assert.Equal(t, 0.6, cfg.Reconcile.Threshold)
	assert.Equal(t, 0.4, cfg.Reconcile.MinMembership)
}

func TestToOptionsRoundTrip(t *testing.T) {
	src := config.New()
	src.Update([]config.Option{
		config.OptDatabaseHost("db.local"),
		config.OptPipelineAnalysisDir("/data/analysis"),
		config.OptDetectorServer("custom"),
		config.OptDetectorCondaPath("/opt/conda"),
		config.OptDetectorCores(16),
		config.OptJobsNumber(3),
		config.OptHomeDir("/home/test"),
		config.OptPipelineWithDatabase(true),
	})

	dst := config.New()
	dst.Update(src.ToOptions())

	assert.Equal(t, "db.local", dst.Database.Host)
	assert.Equal(t, "/data/analysis", dst.Pipeline.AnalysisDir)
	assert.Equal(t, "custom", dst.Detector.Server)
	assert.Equal(t, "/opt/conda", dst.Detector.CondaPath)
	assert.Equal(t, 16, dst.Detector.Cores)
	assert.Equal(t, 3, dst.JobsNumber)

	// runtime-only fields are not carried over
	assert.Empty(t, dst.HomeDir)
	assert.False(t, dst.Pipeline.WithDatabase)
}
