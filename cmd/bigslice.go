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
	"slices"

	"github.com/canerbagci/bgcatlas/internal/iobigslice"
	"github.com/canerbagci/bgcatlas/internal/iodb"
	"github.com/canerbagci/bgcatlas/internal/iostatus"
	"github.com/canerbagci/bgcatlas/pkg/pipeline"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getBigsliceCmd returns the bigslice command with its subcommands.
func getBigsliceCmd() *cobra.Command {
	bigsliceCmd := &cobra.Command{
		Use:   "bigslice",
		Short: "Prepare BiG-SLICE input and export its results",
		Long: `BiG-SLICE clusters regions into gene cluster families. It runs
outside of bgcatlas, these subcommands prepare its input folder and
read its results.`,
	}
	bigsliceCmd.AddCommand(getBigslicePrepCmd(), getBigsliceExportCmd())
	return bigsliceCmd
}

func getBigslicePrepCmd() *cobra.Command {
	prepCmd := &cobra.Command{
		Use:   "prep INPUT_DIR",
		Short: "Write datasets.tsv and taxonomy files",
		Long: `Write datasets.tsv and one taxonomy file per successful antiSMASH run
into a BiG-SLICE input folder.

Region GenBank files of every run are expected in
INPUT_DIR/datasets/RUN. Runs without such folder are skipped.

Successful runs are found by checking antiSMASH logs in the analysis
directory, or read from the antismash_runs table with --db.

Examples:
  bgcatlas bigslice prep /data/bigslice-input -a /data/analysis
  bgcatlas bigslice prep /data/bigslice-input --db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runBigslicePrep(cmd.Context(), args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	dbFlag(prepCmd, "read successful runs from the database")
	return prepCmd
}

func getBigsliceExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export DATA_DB OUT_DIR",
		Short: "Export BGCs and GCF memberships from data.db",
		Long: `Export BiG-SLICE results from its SQLite database.

Writes bgc-info.tsv and gcf-membership.tsv with headers to OUT_DIR.
These files are accepted by 'bgcatlas reconcile'.

Examples:
  bgcatlas bigslice export /data/bigslice-output/result/data.db /data/export`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runBigsliceExport(cmd.Context(), args[0], args[1])
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
}

func runBigslicePrep(ctx context.Context, inputDir string) error {
	ctx, cancel := signalContext(ctx)
	defer cancel()

	runs, err := successfulRuns(ctx)
	if err != nil {
		return err
	}

	written, err := iobigslice.Prep(inputDir, runs)
	if err != nil {
		return err
	}
	gn.Info("Prepared %s of %s successful runs in <em>%s</em>",
		humanize.Comma(int64(len(written))),
		humanize.Comma(int64(len(runs))),
		inputDir,
	)
	return nil
}

func successfulRuns(ctx context.Context) ([]string, error) {
	var res []string
	if !cfg.Pipeline.WithDatabase {
		report, err := iostatus.New(cfg, nil).Check(ctx)
		if err != nil {
			return nil, err
		}
		for _, v := range report.Results {
			if v.State == iostatus.Success {
				res = append(res, v.Assembly)
			}
		}
		return res, nil
	}

	op, err := connect(ctx)
	if err != nil {
		return nil, err
	}
	defer op.Close()
	if err = op.RequireTables(ctx, "antismash_runs"); err != nil {
		return nil, err
	}
	statuses, err := iodb.NewRunStore(op, cfg.Detector).Statuses(ctx)
	if err != nil {
		return nil, err
	}
	for k, v := range statuses {
		if v == pipeline.StatusSucceeded.String() {
			res = append(res, k)
		}
	}
	slices.Sort(res)
	return res, nil
}

func runBigsliceExport(ctx context.Context, dbPath, outDir string) error {
	r, err := iobigslice.Open(dbPath)
	if err != nil {
		return err
	}
	defer r.Close()
	return r.Export(ctx, outDir)
}
