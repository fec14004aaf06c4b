package ioexport

import (
	"github.com/canerbagci/bgcatlas/pkg/bigslice"
)

// ReadBgcs reads a BGC-info export.
func ReadBgcs(path string, sep rune) ([]bigslice.Bgc, []error, error) {
	var res []bigslice.Bgc
	skipped, err := readRows(path, sep, numericID, len(bigslice.BgcColumns),
		func(_ int, row []string) error {
			b, err := parseBgc(row)
			if err != nil {
				return err
			}
			res = append(res, b)
			return nil
		})
	return res, skipped, err
}

func parseBgc(row []string) (bigslice.Bgc, error) {
	f := fields{row: row}
	res := bigslice.Bgc{
		ID:           f.int(0, "id"),
		DatasetID:    f.int(1, "dataset_id"),
		Name:         f.str(2),
		Type:         f.str(3),
		OnContigEdge: f.bool(4, "on_contig_edge"),
		Length:       f.int(5, "length_nt"),
		OrigFolder:   f.str(6),
		OrigFilename: f.str(7),
	}
	return res, f.err
}

// ReadMemberships reads a GCF-membership export.
func ReadMemberships(
	path string,
	sep rune,
) ([]bigslice.Membership, []error, error) {
	var res []bigslice.Membership
	skipped, err := readRows(path, sep, numericID,
		len(bigslice.MembershipColumns),
		func(_ int, row []string) error {
			m, err := parseMembership(row)
			if err != nil {
				return err
			}
			res = append(res, m)
			return nil
		})
	return res, skipped, err
}

func parseMembership(row []string) (bigslice.Membership, error) {
	f := fields{row: row}
	res := bigslice.Membership{
		GcfID: f.int(0, "gcf_id"),
		BgcID: f.int(1, "bgc_id"),
		Value: f.float(2, "membership_value"),
		Rank:  f.int(3, "rank"),
	}
	return res, f.err
}

// ReadSearchHits reads a search results export, a membership followed by
// the description of the query BGC.
func ReadSearchHits(
	path string,
	sep rune,
) ([]bigslice.SearchHit, []error, error) {
	var res []bigslice.SearchHit
	skipped, err := readRows(path, sep, numericID,
		len(bigslice.SearchColumns),
		func(_ int, row []string) error {
			m, err := parseMembership(row[:4])
			if err != nil {
				return err
			}
			f := fields{row: row}
			b := bigslice.Bgc{
				ID:           m.BgcID,
				Name:         f.str(4),
				Type:         f.str(5),
				OnContigEdge: f.bool(6, "on_contig_edge"),
				Length:       f.int(7, "length_nt"),
				OrigFolder:   f.str(8),
				OrigFilename: f.str(9),
			}
			if f.err != nil {
				return f.err
			}
			res = append(res, bigslice.SearchHit{Membership: m, Bgc: b})
			return nil
		})
	return res, skipped, err
}
