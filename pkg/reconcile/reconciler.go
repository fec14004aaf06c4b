package reconcile

import (
	"cmp"
	"slices"
	"strings"

	"github.com/canerbagci/bgcatlas/pkg/bigslice"
	"github.com/canerbagci/bgcatlas/pkg/region"
)

// Membership assigns a region to a gene cluster family.
type Membership struct {
	RegionKey string
	RegionID  int
	// BgcID is the BiG-SLICE BGC ID of the region, 0 if the region was
	// not part of the clustering run.
	BgcID int
	GcfID int
	Value float64
	Rank  int
	// FromSearch is true for assignments made by the threshold-based
	// query instead of the full clustering run.
	FromSearch bool
}

// SearchStats counts outcomes of ingesting search rows.
type SearchStats struct {
	// Added counts new search memberships.
	Added int
	// Kept counts rows ignored because the region already had a family.
	Kept int
	// Unmatched counts rows whose file name has no region.
	Unmatched int
}

// Aggregate holds statistics of one family.
type Aggregate struct {
	GcfID        int
	CoreCount    int
	CoreProducts []Freq
	CoreBiomes   []Freq
	AllCount     int
	AllProducts  []Freq
	AllBiomes    []Freq
}

// RegionRow is a region with its family assignment, if any.
type RegionRow struct {
	Region     region.Region
	BgcID      int
	GcfID      int
	Value      float64
	HasFamily  bool
	FromSearch bool
}

// Reconciler merges core and search memberships. A region gets at most
// one membership. Search rows never replace an existing membership.
type Reconciler struct {
	mapper  *Mapper
	members map[string]*Membership
	order   []string
}

// NewReconciler starts from core memberships produced by the mapper.
func NewReconciler(m *Mapper, core []Membership) *Reconciler {
	res := &Reconciler{
		mapper:  m,
		members: make(map[string]*Membership, len(core)),
	}
	for _, v := range core {
		res.put(v)
	}
	return res
}

func (r *Reconciler) put(mb Membership) bool {
	if _, ok := r.members[mb.RegionKey]; ok {
		return false
	}
	r.members[mb.RegionKey] = &mb
	r.order = append(r.order, mb.RegionKey)
	return true
}

// AddSearch ingests rows of the extended search export. A row whose
// region already has a membership is skipped.
func (r *Reconciler) AddSearch(rows []bigslice.SearchHit) SearchStats {
	var stats SearchStats
	for _, v := range rows {
		k := v.Bgc.RegionKey()
		reg, ok := r.mapper.Region(k)
		if !ok {
			stats.Unmatched++
			continue
		}
		bgcID, _ := r.mapper.BgcID(k)
		mb := Membership{
			RegionKey:  k,
			RegionID:   reg.ID,
			BgcID:      bgcID,
			GcfID:      v.Membership.GcfID,
			Value:      v.Membership.Value,
			Rank:       v.Membership.Rank,
			FromSearch: true,
		}
		if r.put(mb) {
			stats.Added++
		} else {
			stats.Kept++
		}
	}
	return stats
}

// Membership returns the membership of a region key.
func (r *Reconciler) Membership(key string) (Membership, bool) {
	res, ok := r.members[key]
	if !ok {
		return Membership{}, false
	}
	return *res, true
}

// Memberships returns all memberships in the order they were created.
func (r *Reconciler) Memberships() []Membership {
	res := make([]Membership, 0, len(r.order))
	for _, k := range r.order {
		res = append(res, *r.members[k])
	}
	return res
}

// Aggregates computes statistics of every family, ordered by GCF ID.
// Product fields are split on commas and every token is counted. Biome
// labels lose biomePrefix, empty labels are not counted.
func (r *Reconciler) Aggregates(biomePrefix string) []Aggregate {
	type acc struct {
		coreCount, allCount       int
		coreProducts, allProducts *Counter
		coreBiomes, allBiomes     *Counter
	}
	groups := make(map[int]*acc)

	for _, k := range r.order {
		mb := r.members[k]
		g, ok := groups[mb.GcfID]
		if !ok {
			g = &acc{
				coreProducts: NewCounter(), allProducts: NewCounter(),
				coreBiomes: NewCounter(), allBiomes: NewCounter(),
			}
			groups[mb.GcfID] = g
		}

		reg, _ := r.mapper.Region(k)
		biome := strings.TrimPrefix(reg.LongestBiome, biomePrefix)

		g.allCount++
		countRegion(g.allProducts, g.allBiomes, reg.Products, biome)
		if !mb.FromSearch {
			g.coreCount++
			countRegion(g.coreProducts, g.coreBiomes, reg.Products, biome)
		}
	}

	res := make([]Aggregate, 0, len(groups))
	for id, g := range groups {
		res = append(res, Aggregate{
			GcfID:        id,
			CoreCount:    g.coreCount,
			CoreProducts: g.coreProducts.Ranked(),
			CoreBiomes:   g.coreBiomes.Ranked(),
			AllCount:     g.allCount,
			AllProducts:  g.allProducts.Ranked(),
			AllBiomes:    g.allBiomes.Ranked(),
		})
	}
	slices.SortFunc(res, func(a, b Aggregate) int {
		return cmp.Compare(a.GcfID, b.GcfID)
	})
	return res
}

func countRegion(products, biomes *Counter, ps []string, biome string) {
	for _, p := range ps {
		for _, tok := range region.ParseList(p) {
			products.Add(tok)
		}
	}
	if biome != "" {
		biomes.Add(biome)
	}
}

// RegionRows returns every indexed region with its assignment, ordered
// by region ID and then by key.
func (r *Reconciler) RegionRows() []RegionRow {
	res := make([]RegionRow, 0, len(r.mapper.keys))
	for _, k := range r.mapper.keys {
		reg := r.mapper.regions[k]
		row := RegionRow{Region: reg}
		row.BgcID, _ = r.mapper.BgcID(k)
		if mb, ok := r.members[k]; ok {
			row.GcfID = mb.GcfID
			row.Value = mb.Value
			row.HasFamily = true
			row.FromSearch = mb.FromSearch
		}
		res = append(res, row)
	}
	slices.SortFunc(res, func(a, b RegionRow) int {
		if c := cmp.Compare(a.Region.ID, b.Region.ID); c != 0 {
			return c
		}
		return cmp.Compare(a.Region.Key(), b.Region.Key())
	})
	return res
}
