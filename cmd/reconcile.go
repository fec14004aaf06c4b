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
	"strings"

	"github.com/canerbagci/bgcatlas/internal/iofs"
	"github.com/canerbagci/bgcatlas/internal/ioreconcile"
	"github.com/canerbagci/bgcatlas/pkg/db"
	"github.com/canerbagci/bgcatlas/pkg/region"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

type reconcileOpts struct {
	regions    string
	biomes     string
	bigsliceDB string
	bgc        string
	membership string
	search     string
	sep        string
	outDir     string
}

// getReconcileCmd returns the reconcile command.
func getReconcileCmd() *cobra.Command {
	var opts reconcileOpts

	reconcileCmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Assign regions to GCFs and compute family statistics",
		Long: `Join harvested regions with BiG-SLICE results.

Regions are matched to BiG-SLICE BGCs by the GenBank file name BiG-SLICE
imported. Memberships from the clustering run come first. Results of
the threshold query (--search) only fill regions without a family.
For every family the most common products and biomes are computed, for
core members and for all members.

Regions are read from the database with --db, or from a harvest TSV
(--regions) with an optional assembly to biome table (--biomes).
BiG-SLICE results are read from its data.db (--bigslice-db) or from
exports (--bgc and --membership).

With --db results go to bigslice_gcf_membership and bigslice_gcf.
Without --db, or when --out-dir is given, TSV files are written.

Examples:
  bgcatlas reconcile --db --bigslice-db data.db --search query.tsv
  bgcatlas reconcile --regions regions.tsv --biomes biomes.tsv \
    --bgc bgc-info.csv --membership gcf-membership.csv --sep comma -o out`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runReconcile(cmd.Context(), opts)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	f := reconcileCmd.Flags()
	f.StringVar(&opts.regions, "regions", "", "harvest TSV with regions")
	f.StringVar(&opts.biomes, "biomes", "", "TSV of assemblies and their longest biome")
	f.StringVar(&opts.bigsliceDB, "bigslice-db", "", "BiG-SLICE data.db")
	f.StringVar(&opts.bgc, "bgc", "", "BGC-info export")
	f.StringVar(&opts.membership, "membership", "", "GCF-membership export")
	f.StringVar(&opts.search, "search", "", "extended export of the threshold query")
	f.StringVar(&opts.sep, "sep", "tab", "field separator of exports: tab or comma")
	f.StringVarP(&opts.outDir, "out-dir", "o", "", "directory for TSV output")
	f.Float64("threshold", 0, "BiG-SLICE clustering threshold")
	f.Float64("min-membership", 0, "drop core memberships with value not above it")
	f.String("biome-prefix", "", "prefix removed from biome labels")
	dbFlag(reconcileCmd, "read regions from and save results to the database")

	return reconcileCmd
}

func runReconcile(ctx context.Context, opts reconcileOpts) error {
	ctx, cancel := signalContext(ctx)
	defer cancel()

	src := ioreconcile.BigsliceSource{
		DBPath:         opts.bigsliceDB,
		BgcPath:        opts.bgc,
		MembershipPath: opts.membership,
		SearchPath:     opts.search,
		Sep:            separator(opts.sep),
	}
	if err := src.Validate(); err != nil {
		return err
	}

	var op db.Operator
	if cfg.Pipeline.WithDatabase {
		var err error
		if op, err = connect(ctx); err != nil {
			return err
		}
		defer op.Close()
	}

	var in ioreconcile.Inputs
	var err error
	in.Regions, err = loadRegions(ctx, op, opts)
	if err != nil {
		return err
	}
	if err = src.Load(ctx, &in); err != nil {
		return err
	}

	res, err := ioreconcile.Reconcile(in, cfg.Reconcile)
	if err != nil {
		return err
	}

	var writers []ioreconcile.Writer
	if op != nil {
		writers = append(writers, ioreconcile.NewDBWriter(op))
	}
	if op == nil || opts.outDir != "" {
		dir := opts.outDir
		if dir == "" {
			dir = "."
		}
		if err = iofs.TouchDir(dir); err != nil {
			return err
		}
		writers = append(writers, ioreconcile.NewTSVWriter(dir))
	}
	for _, w := range writers {
		if err = w.Write(ctx, res); err != nil {
			return err
		}
	}
	return nil
}

func loadRegions(
	ctx context.Context,
	op db.Operator,
	opts reconcileOpts,
) ([]region.Region, error) {
	if opts.regions != "" {
		return ioreconcile.LoadRegionsTSV(opts.regions, opts.biomes)
	}
	if op == nil {
		return nil, ioreconcile.InputError("--regions file or --db")
	}
	return ioreconcile.LoadRegionsDB(ctx, op)
}

func separator(s string) rune {
	switch strings.ToLower(s) {
	case "comma", ",":
		return ','
	default:
		return '\t'
	}
}
