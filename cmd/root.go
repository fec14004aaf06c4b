/*
Copyright © 2025 The bgcatlas Authors

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
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/canerbagci/bgcatlas/internal/ioconfig"
	"github.com/canerbagci/bgcatlas/internal/iodb"
	"github.com/canerbagci/bgcatlas/internal/iofs"
	"github.com/canerbagci/bgcatlas/internal/iologger"
	app "github.com/canerbagci/bgcatlas/pkg"
	"github.com/canerbagci/bgcatlas/pkg/config"
	"github.com/canerbagci/bgcatlas/pkg/db"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// envFile is read from the working directory before the environment.
const envFile = ".env"

var (
	homeDir string
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "bgcatlas",
		Short:   "BGC Atlas analysis pipeline",
		Long: `bgcatlas finds biosynthetic gene clusters (BGCs) in metagenomic
assemblies and assigns them to gene cluster families (GCFs).

The pipeline has these steps:
  - create: create PostgreSQL schema
  - analyze: download assemblies and run antiSMASH on them
  - check: find antiSMASH runs that did not finish
  - harvest: collect regions and protoclusters from antiSMASH output
  - bigslice: prepare BiG-SLICE input and export its results
  - reconcile: assign regions to GCFs and compute family statistics

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (BGCATLAS_*), .env file in working directory
  3. Config file (~/.config/bgcatlas/config.yaml)
  4. Built-in defaults

Examples of environment variables:
  BGCATLAS_DATABASE_HOST          PostgreSQL host
  BGCATLAS_DATABASE_PASSWORD      PostgreSQL password
  BGCATLAS_PIPELINE_ANALYSIS_DIR  Directory with per-assembly results
  BGCATLAS_DETECTOR_SERVER        denbi, binac or custom
  BGCATLAS_JOBS_NUMBER            Number of concurrent workers`,
		PersistentPreRunE: bootstrap,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "bgcatlas version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "version for bgcatlas")

	pf := rootCmd.PersistentFlags()
	pf.StringP("analysis-dir", "a", "", "directory with per-assembly results")
	pf.IntP("jobs", "j", 0, "number of concurrent workers")
	pf.BoolP("progress", "p", false, "show progress bar")

	rootCmd.AddCommand(
		getCreateCmd(),
		getMigrateCmd(),
		getAnalyzeCmd(),
		getCheckCmd(),
		getHarvestCmd(),
		getBigsliceCmd(),
		getReconcileCmd(),
	)
	return rootCmd
}

func bootstrap(cmd *cobra.Command, _ []string) error {
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

	// Defaults until the user's settings are known.
	defaultLog := config.New().Log
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if cfg, err = ioconfig.Load(homeDir, envFile); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	cfg.Update(flagOptions(cmd))

	err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log, true)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"command", cmd.Name(),
	)
	return nil
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// signalContext is cancelled on Ctrl-C or SIGTERM.
func signalContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

// connect opens the configured database.
func connect(ctx context.Context) (db.Operator, error) {
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return nil, err
	}
	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)
	return op, nil
}
