package ioexport

import (
	"github.com/canerbagci/bgcatlas/pkg/region"
)

// RegionIDColumn starts region exports of the database. Harvested TSV
// files have no region IDs.
const RegionIDColumn = "region_id"

// ReadRegions reads regions from a tab-separated file with a header. Two
// layouts are accepted: a database export that starts with region_id,
// or a harvest file in region.RegionColumns order. Regions of a harvest
// file get IDs from their line order, starting with 1.
func ReadRegions(path string) ([]region.Region, []error, error) {
	var res []region.Region
	var withID, detected bool
	var nextID int

	skipped, err := readRows(path, '\t', always,
		len(region.RegionColumns),
		func(_ int, row []string) error {
			if !detected {
				// readRows skipped the header already, so the layout is
				// decided by the column count of the first data row.
				withID = len(row) > len(region.RegionColumns)
				detected = true
			}
			cols := row
			f := fields{row: row}
			var id int
			if withID {
				id = f.int(0, RegionIDColumn)
				cols = row[1:]
			}
			r, err := parseRegion(cols)
			if err != nil {
				return err
			}
			if f.err != nil {
				return f.err
			}
			if withID {
				r.ID = id
			} else {
				nextID++
				r.ID = nextID
			}
			res = append(res, r)
			return nil
		})
	return res, skipped, err
}

func parseRegion(row []string) (region.Region, error) {
	f := fields{row: row}
	res := region.Region{
		Assembly:          f.str(0),
		Contig:            f.str(1),
		ContigLen:         f.int(2, "contig_len"),
		ProductCategories: region.ParseList(f.str(3)),
		Anchor:            f.str(4),
		Start:             f.int(5, "start"),
		End:               f.int(6, "end"),
		ContigEdge:        f.bool(7, "contig_edge"),
		Type:              f.str(8),
		Products:          region.ParseList(f.str(9)),
		Number:            f.int(10, "region_num"),
	}
	return res, f.err
}

// ReadBiomes reads "assembly<TAB>longest_biome" rows into a map. A header
// line starting with "assembly" is skipped.
func ReadBiomes(path string) (map[string]string, []error, error) {
	res := make(map[string]string)
	skipped, err := readRows(path, '\t', firstColumn("assembly"), 2,
		func(_ int, row []string) error {
			f := fields{row: row}
			res[f.str(0)] = f.str(1)
			return nil
		})
	return res, skipped, err
}
