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
	"os"

	"github.com/canerbagci/bgcatlas/internal/iodb"
	"github.com/canerbagci/bgcatlas/internal/iostatus"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getCheckCmd returns the check command.
func getCheckCmd() *cobra.Command {
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Find antiSMASH runs that did not finish",
		Long: `Check antiSMASH logs of every assembly in the analysis directory.

A run is successful when the last line of its antismash_log.txt is
"antiSMASH status: SUCCESS". Runs with another last line are incomplete,
assemblies without a log are reported separately.

With --db the outcome of every run with a log is stored in the
antismash_runs table.

Examples:
  bgcatlas check -a /data/analysis
  bgcatlas check --db -j 16`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runCheck(cmd.Context())
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	dbFlag(checkCmd, "store run outcomes in the database")
	return checkCmd
}

func runCheck(ctx context.Context) error {
	ctx, cancel := signalContext(ctx)
	defer cancel()

	var rec iostatus.StatusRecorder
	if cfg.Pipeline.WithDatabase {
		op, err := connect(ctx)
		if err != nil {
			return err
		}
		defer op.Close()
		if err = op.RequireTables(ctx, "antismash_runs"); err != nil {
			return err
		}
		rec = iodb.NewRunStore(op, cfg.Detector)
	}

	report, err := iostatus.New(cfg, rec).Check(ctx)
	if err != nil {
		return err
	}
	iostatus.PrintReport(os.Stdout, report)
	return nil
}
