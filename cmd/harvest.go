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
	"errors"
	"path/filepath"

	"github.com/canerbagci/bgcatlas/internal/iofs"
	"github.com/canerbagci/bgcatlas/internal/ioharvest"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// Output files of harvest without a database.
const (
	regionsFile       = "regions.tsv"
	protoclustersFile = "protoclusters.tsv"
)

// getHarvestCmd returns the harvest command.
func getHarvestCmd() *cobra.Command {
	var outDir string

	harvestCmd := &cobra.Command{
		Use:   "harvest",
		Short: "Collect regions and protoclusters from antiSMASH output",
		Long: `Harvest antiSMASH results of every assembly in the analysis directory.

Regions come from regions.js, protoclusters from region GenBank files.
Assemblies without regions.js are counted and skipped. Malformed
records are logged and skipped, the rest of the assembly is kept.

With --db results go to the regions and protoclusters tables. Results
of an assembly that was harvested before are replaced. Without --db
results are written to regions.tsv and protoclusters.tsv in --out-dir.

Examples:
  bgcatlas harvest -a /data/analysis --db -p
  bgcatlas harvest -a /data/analysis -o /data/harvest`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runHarvest(cmd.Context(), outDir)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	harvestCmd.Flags().StringVarP(&outDir, "out-dir", "o", ".",
		"directory for TSV output when --db is not set")
	dbFlag(harvestCmd, "save results to the database")
	return harvestCmd
}

func runHarvest(ctx context.Context, outDir string) (err error) {
	ctx, cancel := signalContext(ctx)
	defer cancel()

	var sink ioharvest.Sink
	if cfg.Pipeline.WithDatabase {
		op, err := connect(ctx)
		if err != nil {
			return err
		}
		defer op.Close()
		if err = op.RequireTables(ctx, ioharvest.DBTables...); err != nil {
			return err
		}
		sink = ioharvest.NewDBSink(op)
	} else {
		if err = iofs.TouchDir(outDir); err != nil {
			return err
		}
		sink, err = ioharvest.NewTSVSink(
			filepath.Join(outDir, regionsFile),
			filepath.Join(outDir, protoclustersFile),
		)
		if err != nil {
			return err
		}
		gn.Info("Writing results to <em>%s</em>", outDir)
	}
	defer func() {
		err = errors.Join(err, sink.Close())
	}()

	_, err = ioharvest.New(cfg, sink).Harvest(ctx)
	return err
}
