// Package bigslice describes rows exported from BiG-SLICE, the tool that
// groups BGCs into gene cluster families.
package bigslice

import (
	"github.com/canerbagci/bgcatlas/pkg/region"
)

// Bgc is a row of the BGC-info export (table bgc of BiG-SLICE data.db).
type Bgc struct {
	ID           int
	DatasetID    int
	Name         string
	Type         string
	OnContigEdge bool
	Length       int
	OrigFolder   string
	OrigFilename string
}

// RegionKey returns the key of the antiSMASH region the BGC was
// imported from.
func (b Bgc) RegionKey() string {
	return region.KeyFromFilename(b.OrigFilename)
}

// Membership is a row of the GCF-membership export.
type Membership struct {
	GcfID int
	BgcID int
	Value float64
	Rank  int
}

// SearchHit is a row of the query (extended search) export: a membership
// of a query BGC together with the BGC description used for matching.
type SearchHit struct {
	Membership Membership
	Bgc        Bgc
}

// Column layouts of the TSV exports. Every export starts with a header
// line.
var (
	BgcColumns = []string{
		"id", "dataset_id", "name", "type", "on_contig_edge",
		"length_nt", "orig_folder", "orig_filename",
	}
	MembershipColumns = []string{
		"gcf_id", "bgc_id", "membership_value", "rank",
	}
	SearchColumns = []string{
		"gcf_id", "bgc_id", "membership_value", "rank", "name", "type",
		"on_contig_edge", "length_nt", "orig_folder", "orig_filename",
	}
)
