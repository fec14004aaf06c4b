// Package ioreconcile loads harvested regions and BiG-SLICE results,
// assigns regions to gene cluster families and saves memberships and
// family statistics.
package ioreconcile

import (
	"cmp"
	"context"
	"log/slog"
	"slices"

	"github.com/canerbagci/bgcatlas/pkg/bigslice"
	"github.com/canerbagci/bgcatlas/pkg/config"
	"github.com/canerbagci/bgcatlas/pkg/reconcile"
	"github.com/canerbagci/bgcatlas/pkg/region"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
)

// Inputs of one reconciliation run. Regions carry their biome.
type Inputs struct {
	Regions     []region.Region
	Bgcs        []bigslice.Bgc
	Memberships []bigslice.Membership
	Search      []bigslice.SearchHit
}

// Result of a reconciliation run.
type Result struct {
	// Threshold is the clustering threshold stored with memberships.
	Threshold   float64
	MapStats    reconcile.MapStats
	CoreStats   reconcile.CoreStats
	SearchStats reconcile.SearchStats
	// Memberships are ordered by region ID.
	Memberships []reconcile.Membership
	// Aggregates are ordered by GCF ID.
	Aggregates []reconcile.Aggregate
	// Regions are ordered by region ID.
	Regions []reconcile.RegionRow
}

// Writer saves results of a run.
type Writer interface {
	Write(ctx context.Context, res Result) error
}

// Reconcile joins regions with BiG-SLICE results. Core memberships come
// first, search results only fill regions without a family.
func Reconcile(in Inputs, cfg config.ReconcileConfig) (Result, error) {
	if len(in.Regions) == 0 {
		return Result{}, NoRegionsError()
	}

	m := reconcile.NewMapper(in.Regions)
	res := Result{Threshold: cfg.Threshold}
	res.MapStats = m.MapBgcs(in.Bgcs)

	var core []reconcile.Membership
	core, res.CoreStats = m.CoreMemberships(in.Memberships, cfg.MinMembership)

	r := reconcile.NewReconciler(m, core)
	res.SearchStats = r.AddSearch(in.Search)

	res.Memberships = r.Memberships()
	slices.SortStableFunc(res.Memberships, func(a, b reconcile.Membership) int {
		return cmp.Compare(a.RegionID, b.RegionID)
	})
	res.Aggregates = r.Aggregates(cfg.BiomePrefix)
	res.Regions = r.RegionRows()

	logResult(res)
	return res, nil
}

func logResult(res Result) {
	ms, cs, ss := res.MapStats, res.CoreStats, res.SearchStats
	slog.Info("Mapped BiG-SLICE BGCs to regions",
		"regions", ms.Regions,
		"duplicate_regions", ms.DuplicateRegions,
		"bgc_matched", ms.BgcMatched,
		"bgc_unmatched", ms.BgcUnmatched,
	)
	slog.Info("Translated GCF memberships",
		"added", cs.Added,
		"unknown_bgc", cs.UnknownBgc,
		"below_min", cs.BelowMin,
		"duplicates", cs.Duplicates,
	)
	slog.Info("Ingested search results",
		"added", ss.Added,
		"kept", ss.Kept,
		"unmatched", ss.Unmatched,
	)
	gn.Info("Assigned %s of %s regions to %s families",
		humanize.Comma(int64(len(res.Memberships))),
		humanize.Comma(int64(ms.Regions)),
		humanize.Comma(int64(len(res.Aggregates))),
	)
	if ms.BgcUnmatched > 0 {
		gn.Warn("%s BiG-SLICE BGCs have no region",
			humanize.Comma(int64(ms.BgcUnmatched)))
	}
}
