package ioconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/canerbagci/bgcatlas/internal/ioconfig"
	"github.com/canerbagci/bgcatlas/internal/iofs"
	"github.com/canerbagci/bgcatlas/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, home, content string) {
	t.Helper()
	require.NoError(t, iofs.EnsureDirs(home))
	err := os.WriteFile(config.ConfigFilePath(home), []byte(content), 0644)
	require.NoError(t, err)
}

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, iofs.EnsureDirs(home))
	require.NoError(t, iofs.EnsureConfigFile(home))

	cfg, err := ioconfig.Load(home, "")
	require.NoError(t, err)
	def := config.New()
	def.HomeDir = home
	assert.Equal(t, def, cfg)
}

func TestLoadFileAndEnv(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, `
database:
  host: db.local
  database: atlas
pipeline:
  analysis_dir: /data/analysis
  download_jobs: 8
detector:
  server: binac
reconcile:
  threshold: 0.6
`)
	t.Setenv("BGCATLAS_DATABASE_HOST", "env.host")
	t.Setenv("BGCATLAS_DETECTOR_CORES", "16")

	cfg, err := ioconfig.Load(home, "")
	require.NoError(t, err)

	assert.Equal(t, "env.host", cfg.Database.Host)
	assert.Equal(t, "atlas", cfg.Database.Database)
	assert.Equal(t, "/data/analysis", cfg.Pipeline.AnalysisDir)
	assert.Equal(t, 8, cfg.Pipeline.DownloadJobs)
	assert.Equal(t, 1, cfg.Pipeline.DetectorJobs)
	assert.Equal(t, "binac", cfg.Detector.Server)
	assert.Equal(t, 16, cfg.Detector.Cores)
	assert.Equal(t, 0.6, cfg.Reconcile.Threshold)
	assert.Equal(t, home, cfg.HomeDir)
}

func TestLoadEnvFile(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, "log:\n  level: debug\n")

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "BGCATLAS_DATABASE_USER=atlas\nBGCATLAS_LOG_LEVEL=warn\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0644))
	// register for cleanup, godotenv sets variables with os.Setenv
	t.Setenv("BGCATLAS_DATABASE_USER", "")
	t.Setenv("BGCATLAS_LOG_LEVEL", "")
	os.Unsetenv("BGCATLAS_DATABASE_USER")
	os.Unsetenv("BGCATLAS_LOG_LEVEL")

	cfg, err := ioconfig.Load(home, envFile)
	require.NoError(t, err)
	assert.Equal(t, "atlas", cfg.Database.User)
	assert.Equal(t, "warn", cfg.Log.Level)

	_, err = ioconfig.Load(home, filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}

func TestLoadBadYAML(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, "database: [unclosed\n")
	_, err := ioconfig.Load(home, "")
	assert.Error(t, err)
}
