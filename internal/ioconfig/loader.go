// Package ioconfig reads configuration from config.yaml, a .env file and
// BGCATLAS_* environment variables.
package ioconfig

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/canerbagci/bgcatlas/internal/iofs"
	"github.com/canerbagci/bgcatlas/pkg/config"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables.
const EnvPrefix = "BGCATLAS"

// envKeys are configuration keys that can be set from environment. They
// match persistent fields of config.ToOptions.
var envKeys = []string{
	"database.host",
	"database.port",
	"database.user",
	"database.password",
	"database.database",
	"database.ssl_mode",
	"database.batch_size",

	"log.level",
	"log.format",
	"log.destination",

	"pipeline.analysis_dir",
	"pipeline.download_jobs",
	"pipeline.detector_jobs",
	"pipeline.download_timeout",

	"detector.server",
	"detector.conda_path",
	"detector.conda_env",
	"detector.cores",
	"detector.version",

	"reconcile.threshold",
	"reconcile.min_membership",
	"reconcile.biome_prefix",

	"jobs_number",
}

// Load creates a Config from defaults updated by config.yaml of homeDir
// and environment variables. Variables from envFile are loaded first
// unless they are already set, a missing envFile is ignored.
func Load(homeDir, envFile string) (*config.Config, error) {
	if err := loadEnvFile(envFile); err != nil {
		return nil, err
	}

	cfgPath := config.ConfigFilePath(homeDir)
	v := viper.New()
	v.SetConfigType("yaml")
	initEnvVars(v)

	if _, err := os.Stat(cfgPath); err == nil {
		v.SetConfigFile(cfgPath)
		if err = v.ReadInConfig(); err != nil {
			return nil, iofs.ReadFileError(cfgPath, err)
		}
	}

	var cfgViper config.Config
	if err := v.Unmarshal(&cfgViper); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	res := config.New()
	res.Update(cfgViper.ToOptions())
	res.Update([]config.Option{config.OptHomeDir(homeDir)})
	return res, nil
}

func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return iofs.ReadFileError(path, err)
}

// initEnvVars binds every allowed variable explicitly, so it is clear
// which BGCATLAS_* variables have effect.
func initEnvVars(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, k := range envKeys {
		_ = v.BindEnv(k, strings.ToUpper(strings.ReplaceAll(k, ".", "_")))
	}
	v.AutomaticEnv()
}
