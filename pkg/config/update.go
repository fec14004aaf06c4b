package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Used for round-tripping config.yaml <-> Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	addStr := func(s string, fn func(string) Option) {
		if s != "" {
			res = append(res, fn(s))
		}
	}
	addInt := func(i int, fn func(int) Option) {
		if i > 0 {
			res = append(res, fn(i))
		}
	}

	addStr(c.Database.Host, OptDatabaseHost)
	addInt(c.Database.Port, OptDatabasePort)
	addStr(c.Database.User, OptDatabaseUser)
	addStr(c.Database.Password, OptDatabasePassword)
	addStr(c.Database.Database, OptDatabaseDatabase)
	addStr(c.Database.SSLMode, OptDatabaseSSLMode)
	addInt(c.Database.BatchSize, OptDatabaseBatchSize)

	addStr(c.Log.Format, OptLogFormat)
	addStr(c.Log.Level, OptLogLevel)
	addStr(c.Log.Destination, OptLogDestination)

	addStr(c.Pipeline.AnalysisDir, OptPipelineAnalysisDir)
	addInt(c.Pipeline.DownloadJobs, OptPipelineDownloadJobs)
	addInt(c.Pipeline.DetectorJobs, OptPipelineDetectorJobs)
	addInt(c.Pipeline.DownloadTimeout, OptPipelineDownloadTimeout)

	addStr(c.Detector.Server, OptDetectorServer)
	addStr(c.Detector.CondaPath, OptDetectorCondaPath)
	addStr(c.Detector.CondaEnv, OptDetectorCondaEnv)
	addInt(c.Detector.Cores, OptDetectorCores)
	addStr(c.Detector.Version, OptDetectorVersion)

	if c.Reconcile.Threshold > 0 {
		res = append(res, OptReconcileThreshold(c.Reconcile.Threshold))
	}
	if c.Reconcile.MinMembership > 0 {
		res = append(res, OptReconcileMinMembership(c.Reconcile.MinMembership))
	}
	addStr(c.Reconcile.BiomePrefix, OptReconcileBiomePrefix)

	addInt(c.JobsNumber, OptJobsNumber)
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidFloat(name string, f float64) bool {
	res := f > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %g", name, f)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Database.SSLMode": {"disable": s, "require": s,
			"verify-ca": s, "verify-full": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
		"Detector.Server": {string(ServerDenbi): s, string(ServerBinAC): s,
			string(ServerCustom): s},
	}
	if _, ok := data[name][val]; ok {
		return true
	}

	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		lines = append(lines, fmt.Sprintf("  * %s", v))
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
