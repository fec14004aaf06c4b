package ioreconcile

import (
	"context"
	"log/slog"

	"github.com/canerbagci/bgcatlas/internal/iobigslice"
	"github.com/canerbagci/bgcatlas/internal/ioexport"
	"github.com/canerbagci/bgcatlas/pkg/bigslice"
	"github.com/canerbagci/bgcatlas/pkg/db"
	"github.com/canerbagci/bgcatlas/pkg/region"
)

// RegionTables are read by LoadRegionsDB.
var RegionTables = []string{"regions", "assembly2longestbiome"}

const regionsQuery = `SELECT r.region_id, r.assembly, r.contig_name,
  r.contig_len, r.product_categories, r.anchor, r.start, r."end",
  r.contig_edge, r.type, r.products, r.region_num,
  coalesce(b.longest_biome, '')
FROM regions r
  LEFT JOIN assembly2longestbiome b ON b.assembly = r.assembly
ORDER BY r.region_id`

// LoadRegionsDB reads all regions with their biomes.
func LoadRegionsDB(ctx context.Context, op db.Operator) ([]region.Region, error) {
	if err := op.RequireTables(ctx, RegionTables...); err != nil {
		return nil, err
	}
	rows, err := op.Pool().Query(ctx, regionsQuery)
	if err != nil {
		return nil, LoadError("regions", err)
	}
	defer rows.Close()

	var res []region.Region
	for rows.Next() {
		var r region.Region
		err = rows.Scan(&r.ID, &r.Assembly, &r.Contig, &r.ContigLen,
			&r.ProductCategories, &r.Anchor, &r.Start, &r.End, &r.ContigEdge,
			&r.Type, &r.Products, &r.Number, &r.LongestBiome)
		if err != nil {
			return nil, LoadError("regions", err)
		}
		res = append(res, r)
	}
	if err = rows.Err(); err != nil {
		return nil, LoadError("regions", err)
	}
	return res, nil
}

// LoadRegionsTSV reads regions from a file and, when biomesPath is not
// empty, adds biomes of their assemblies.
func LoadRegionsTSV(regionsPath, biomesPath string) ([]region.Region, error) {
	res, skipped, err := ioexport.ReadRegions(regionsPath)
	if err != nil {
		return nil, err
	}
	logSkipped(regionsPath, skipped)
	if biomesPath == "" {
		return res, nil
	}

	biomes, skipped, err := ioexport.ReadBiomes(biomesPath)
	if err != nil {
		return nil, err
	}
	logSkipped(biomesPath, skipped)
	for i := range res {
		res[i].LongestBiome = biomes[res[i].Assembly]
	}
	return res, nil
}

// BigsliceSource tells where BiG-SLICE results are. When DBPath is set,
// BGCs and memberships are read from data.db, otherwise from BgcPath and
// MembershipPath exports. SearchPath is optional.
type BigsliceSource struct {
	DBPath         string
	BgcPath        string
	MembershipPath string
	SearchPath     string
	// Sep separates fields of export files.
	Sep rune
}

// Validate reports missing BiG-SLICE inputs.
func (s BigsliceSource) Validate() error {
	if s.DBPath != "" {
		return nil
	}
	if s.BgcPath == "" || s.MembershipPath == "" {
		return InputError("BiG-SLICE data.db or both BGC and membership exports")
	}
	return nil
}

// Load reads BiG-SLICE results into in.
func (s BigsliceSource) Load(ctx context.Context, in *Inputs) error {
	var err error
	if s.DBPath != "" {
		err = s.loadDB(ctx, in)
	} else {
		err = s.loadTSV(in)
	}
	if err != nil {
		return err
	}

	if s.SearchPath == "" {
		return nil
	}
	var skipped []error
	in.Search, skipped, err = ioexport.ReadSearchHits(s.SearchPath, s.sep())
	if err != nil {
		return err
	}
	logSkipped(s.SearchPath, skipped)
	return nil
}

func (s BigsliceSource) loadDB(ctx context.Context, in *Inputs) error {
	r, err := iobigslice.Open(s.DBPath)
	if err != nil {
		return err
	}
	defer r.Close()

	if in.Bgcs, err = r.Bgcs(ctx); err != nil {
		return err
	}
	in.Memberships, err = r.Memberships(ctx)
	return err
}

func (s BigsliceSource) loadTSV(in *Inputs) error {
	var err error
	var skipped []error
	if in.Bgcs, skipped, err = ioexport.ReadBgcs(s.BgcPath, s.sep()); err != nil {
		return err
	}
	logSkipped(s.BgcPath, skipped)

	var ms []bigslice.Membership
	ms, skipped, err = ioexport.ReadMemberships(s.MembershipPath, s.sep())
	if err != nil {
		return err
	}
	logSkipped(s.MembershipPath, skipped)
	in.Memberships = ms
	return nil
}

func (s BigsliceSource) sep() rune {
	if s.Sep == 0 {
		return '\t'
	}
	return s.Sep
}

func logSkipped(path string, errs []error) {
	for _, v := range errs {
		slog.Warn("Skipped row", "file", path, "error", v)
	}
	if len(errs) > 0 {
		slog.Warn("Malformed rows", "file", path, "count", len(errs))
	}
}
