// Package region describes antiSMASH regions and protoclusters and the
// key that joins them to BiG-SLICE exports.
//
// antiSMASH writes one GenBank file per region named
// {assembly}_{contig}.region{NNN}.gbk. BiG-SLICE keeps that file name as
// the only reference to the region, so the same string, without the
// .gbk suffix, is used as the region key everywhere in bgcatlas.
package region

import (
	"fmt"
	"strings"
)

// GbkSuffix is the extension of antiSMASH region files.
const GbkSuffix = ".gbk"

// Key builds the region key from assembly ID, contig name and 1-based
// region ordinal. The ordinal is zero-padded to three digits.
func Key(assembly, contig string, ordinal int) string {
	return fmt.Sprintf("%s_%s.region%03d", assembly, contig, ordinal)
}

// ContigName returns the contig name of a record ID. Contig headers are
// prefixed with "{assembly}_" before antiSMASH runs, so record IDs in its
// output carry the prefix. It is removed once, IDs without it are kept.
func ContigName(assembly, recordID string) string {
	return strings.TrimPrefix(recordID, assembly+"_")
}

// KeyFromFilename converts a region file name to its key by removing one
// trailing ".gbk". Names without the suffix are returned unchanged.
func KeyFromFilename(name string) string {
	return strings.TrimSuffix(name, GbkSuffix)
}

// Protocluster is one protocluster feature from a region GenBank file.
type Protocluster struct {
	// Assembly is the assembly (run) ID.
	Assembly string
	// Contig is the record accession.
	Contig string
	// Category is the value of /category.
	Category string
	// ContigEdge is the raw value of /contig_edge ("True", "False").
	ContigEdge string
	// Product is the value of /product.
	Product string
	// Number is the value of /protocluster_number.
	Number int
	// RegionKey is the key of the region file the protocluster came from.
	RegionKey string
}

// Region is one antiSMASH region as reported in regions.js and persisted
// in the regions table.
type Region struct {
	// ID is the internal region ID. Zero until persisted.
	ID int
	// Assembly is the assembly (run) ID.
	Assembly string
	// Contig is the record (contig) name.
	Contig string
	// ContigLen is the length of the contig.
	ContigLen int
	// ProductCategories are the antiSMASH product categories.
	ProductCategories []string
	// Anchor is the HTML anchor of the region in the antiSMASH report.
	Anchor string
	// Start and End are 1-based region coordinates on the contig.
	Start int
	End   int
	// ContigEdge is true when the region touches a contig end.
	ContigEdge bool
	// Type is the region type string.
	Type string
	// Products are the region products.
	Products []string
	// Number is the 1-based ordinal of the region on its contig.
	Number int
	// LongestBiome is the most specific biome lineage of the assembly.
	LongestBiome string
}

// Key returns the region key.
func (r Region) Key() string {
	return Key(r.Assembly, r.Contig, r.Number)
}

// OnContigEdge reports if a region with the given coordinates touches an
// end of a contig of length contigLen.
func OnContigEdge(start, end, contigLen int) bool {
	return start == 1 || end == contigLen
}

// FormatList renders a list in PostgreSQL array literal form, for example
// {NRPS,T1PKS}.
func FormatList(ss []string) string {
	return "{" + strings.Join(ss, ",") + "}"
}

// ParseList is the inverse of FormatList. Braces are optional, elements
// lose surrounding double quotes and empty elements are dropped.
func ParseList(s string) []string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")
	var res []string
	for _, v := range strings.Split(s, ",") {
		v = strings.Trim(strings.TrimSpace(v), `"`)
		if v != "" {
			res = append(res, v)
		}
	}
	return res
}

// Column layouts of harvested TSV files. Both files start with a header
// line. List columns use FormatList.
var (
	RegionColumns = []string{
		"run", "record", "length", "product_categories", "anchor", "start",
		"end", "contig_edge", "type", "products", "region_num",
	}
	ProtoclusterColumns = []string{
		"run", "record", "region_key", "category", "contig_edge", "product",
		"protocluster_num",
	}
)
