package cmd

import (
	"github.com/canerbagci/bgcatlas/pkg/config"
	"github.com/spf13/cobra"
)

type flagOption func(cmd *cobra.Command, name string) config.Option

func stringFlag(fn func(string) config.Option) flagOption {
	return func(cmd *cobra.Command, name string) config.Option {
		v, _ := cmd.Flags().GetString(name)
		return fn(v)
	}
}

func intFlag(fn func(int) config.Option) flagOption {
	return func(cmd *cobra.Command, name string) config.Option {
		v, _ := cmd.Flags().GetInt(name)
		return fn(v)
	}
}

func floatFlag(fn func(float64) config.Option) flagOption {
	return func(cmd *cobra.Command, name string) config.Option {
		v, _ := cmd.Flags().GetFloat64(name)
		return fn(v)
	}
}

func boolFlag(fn func(bool) config.Option) flagOption {
	return func(cmd *cobra.Command, name string) config.Option {
		v, _ := cmd.Flags().GetBool(name)
		return fn(v)
	}
}

// configFlags maps flag names to config options. Commands register only
// the flags they need.
var configFlags = map[string]flagOption{
	"analysis-dir":   stringFlag(config.OptPipelineAnalysisDir),
	"jobs":           intFlag(config.OptJobsNumber),
	"progress":       boolFlag(config.OptPipelineWithProgress),
	"db":             boolFlag(config.OptPipelineWithDatabase),
	"download-jobs":  intFlag(config.OptPipelineDownloadJobs),
	"detector-jobs":  intFlag(config.OptPipelineDetectorJobs),
	"timeout":        intFlag(config.OptPipelineDownloadTimeout),
	"server":         stringFlag(config.OptDetectorServer),
	"conda-path":     stringFlag(config.OptDetectorCondaPath),
	"conda-env":      stringFlag(config.OptDetectorCondaEnv),
	"cores":          intFlag(config.OptDetectorCores),
	"threshold":      floatFlag(config.OptReconcileThreshold),
	"min-membership": floatFlag(config.OptReconcileMinMembership),
	"biome-prefix":   stringFlag(config.OptReconcileBiomePrefix),
}

// flagOptions converts flags set on the command line to options, so
// flags override config file and environment.
func flagOptions(cmd *cobra.Command) []config.Option {
	var res []config.Option
	for name, fn := range configFlags {
		f := cmd.Flags().Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		res = append(res, fn(cmd, name))
	}
	return res
}

func dbFlag(cmd *cobra.Command, usage string) {
	cmd.Flags().BoolP("db", "d", false, usage)
}
