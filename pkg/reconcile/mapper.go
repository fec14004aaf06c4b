// Package reconcile joins antiSMASH regions with BiG-SLICE results.
//
// Three identifier spaces meet here: internal region IDs, region keys
// synthesized from antiSMASH file names, and integer IDs minted by
// BiG-SLICE. The only link between a BiG-SLICE BGC and a region is the
// file name BiG-SLICE imported, so everything is joined on region keys.
//
// A Mapper and a Reconciler are created for every reconciliation run and
// hold all of its state.
package reconcile

import (
	"github.com/canerbagci/bgcatlas/pkg/bigslice"
	"github.com/canerbagci/bgcatlas/pkg/region"
)

// MapStats counts outcomes of indexing regions and BGC-info rows.
type MapStats struct {
	// Regions is the number of distinct region keys.
	Regions int
	// DuplicateRegions counts regions ignored because their key was
	// already taken.
	DuplicateRegions int
	// BgcMatched counts BGC-info rows matched to a region.
	BgcMatched int
	// BgcUnmatched counts BGC-info rows without a region.
	BgcUnmatched int
}

// CoreStats counts outcomes of translating GCF-membership rows.
type CoreStats struct {
	// Added is the number of core memberships.
	Added int
	// UnknownBgc counts rows whose BGC ID has no region.
	UnknownBgc int
	// BelowMin counts rows with membership value not above the minimum.
	BelowMin int
	// Duplicates counts extra rows for an already assigned region.
	Duplicates int
}

// Mapper builds bidirectional mappings between region keys and BiG-SLICE
// BGC IDs.
type Mapper struct {
	regions  map[string]region.Region
	keys     []string
	keyToBgc map[string]int
	bgcToKey map[int]string
	stats    MapStats
}

// NewMapper indexes regions by key. The first region with a given key
// wins, later ones are counted as duplicates.
func NewMapper(regions []region.Region) *Mapper {
	res := &Mapper{
		regions:  make(map[string]region.Region, len(regions)),
		keyToBgc: make(map[string]int),
		bgcToKey: make(map[int]string),
	}
	for _, r := range regions {
		k := r.Key()
		if _, ok := res.regions[k]; ok {
			res.stats.DuplicateRegions++
			continue
		}
		res.regions[k] = r
		res.keys = append(res.keys, k)
	}
	res.stats.Regions = len(res.keys)
	return res
}

// MapBgcs matches BGC-info rows to regions by stripping ".gbk" from the
// original file name. Rows without a region are dropped and counted.
func (m *Mapper) MapBgcs(rows []bigslice.Bgc) MapStats {
	for _, b := range rows {
		k := b.RegionKey()
		if _, ok := m.regions[k]; !ok {
			m.stats.BgcUnmatched++
			continue
		}
		m.keyToBgc[k] = b.ID
		m.bgcToKey[b.ID] = k
		m.stats.BgcMatched++
	}
	return m.stats
}

// CoreMemberships translates GCF-membership rows into core memberships.
// Rows with unknown BGC IDs are dropped and counted. When minValue is
// positive, rows with a value not above it are dropped as well. If a
// region appears more than once, the row with the lowest rank is kept,
// ties go to the row seen first.
func (m *Mapper) CoreMemberships(
	rows []bigslice.Membership,
	minValue float64,
) ([]Membership, CoreStats) {
	var stats CoreStats
	var res []Membership
	idx := make(map[string]int)

	for _, v := range rows {
		k, ok := m.bgcToKey[v.BgcID]
		if !ok {
			stats.UnknownBgc++
			continue
		}
		if minValue > 0 && v.Value <= minValue {
			stats.BelowMin++
			continue
		}
		mb := Membership{
			RegionKey: k,
			RegionID:  m.regions[k].ID,
			BgcID:     v.BgcID,
			GcfID:     v.GcfID,
			Value:     v.Value,
			Rank:      v.Rank,
		}
		if i, ok := idx[k]; ok {
			stats.Duplicates++
			if v.Rank < res[i].Rank {
				res[i] = mb
			}
			continue
		}
		idx[k] = len(res)
		res = append(res, mb)
	}
	stats.Added = len(res)
	return res, stats
}

// Region returns a region by key.
func (m *Mapper) Region(key string) (region.Region, bool) {
	res, ok := m.regions[key]
	return res, ok
}

// BgcID returns the BiG-SLICE BGC ID of a region key.
func (m *Mapper) BgcID(key string) (int, bool) {
	res, ok := m.keyToBgc[key]
	return res, ok
}

// RegionKey returns the region key of a BiG-SLICE BGC ID.
func (m *Mapper) RegionKey(bgcID int) (string, bool) {
	res, ok := m.bgcToKey[bgcID]
	return res, ok
}

// Stats returns counters collected so far.
func (m *Mapper) Stats() MapStats {
	return m.stats
}
