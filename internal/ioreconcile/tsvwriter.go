package ioreconcile

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/canerbagci/bgcatlas/internal/iofs"
	"github.com/canerbagci/bgcatlas/pkg/reconcile"
	"github.com/canerbagci/bgcatlas/pkg/region"
	"github.com/gnames/gnfmt"
)

// Names of files written by the TSV writer.
const (
	RegionsOutFile    = "regions_out.tsv"
	GcfOutFile        = "bigslice_gcf_out.tsv"
	MembershipOutFile = "membership_out.tsv"
)

var (
	regionOutCols = slices.Concat(
		[]string{"region_id"},
		region.RegionColumns,
		[]string{
			"longest_biome", "bgc_id", "gcf_id", "membership_value",
			"gcf_from_search",
		},
	)
	membershipOutCols = []string{
		"region_key", "region_id", "bgc_id", "gcf_id", "membership_value",
		"threshold", "gcf_from_search",
	}
)

type tsvWriter struct {
	dir string
}

// NewTSVWriter writes enriched regions, family statistics and
// memberships as TSV files with headers into dir.
func NewTSVWriter(dir string) Writer {
	return &tsvWriter{dir: dir}
}

func (w *tsvWriter) Write(_ context.Context, res Result) error {
	if err := iofs.TouchDir(w.dir); err != nil {
		return err
	}

	rows := make([][]string, 0, len(res.Regions))
	for _, v := range res.Regions {
		r := v.Region
		row := []string{
			strconv.Itoa(r.ID),
			r.Assembly,
			r.Contig,
			strconv.Itoa(r.ContigLen),
			region.FormatList(r.ProductCategories),
			r.Anchor,
			strconv.Itoa(r.Start),
			strconv.Itoa(r.End),
			strconv.FormatBool(r.ContigEdge),
			r.Type,
			region.FormatList(r.Products),
			strconv.Itoa(r.Number),
			r.LongestBiome,
			optInt(v.BgcID),
		}
		if v.HasFamily {
			row = append(row,
				strconv.Itoa(v.GcfID),
				formatFloat(v.Value),
				strconv.FormatBool(v.FromSearch),
			)
		} else {
			row = append(row, "", "", "")
		}
		rows = append(rows, row)
	}
	if err := w.write(RegionsOutFile, regionOutCols, rows); err != nil {
		return err
	}

	rows = rows[:0]
	for _, a := range res.Aggregates {
		rows = append(rows, []string{
			strconv.Itoa(a.GcfID),
			strconv.Itoa(a.CoreCount),
			reconcile.FormatFreqs(a.CoreProducts),
			reconcile.FormatFreqs(a.CoreBiomes),
			strconv.Itoa(a.AllCount),
			reconcile.FormatFreqs(a.AllProducts),
			reconcile.FormatFreqs(a.AllBiomes),
		})
	}
	if err := w.write(GcfOutFile, gcfCols, rows); err != nil {
		return err
	}

	rows = rows[:0]
	for _, m := range res.Memberships {
		rows = append(rows, []string{
			m.RegionKey,
			strconv.Itoa(m.RegionID),
			optInt(m.BgcID),
			strconv.Itoa(m.GcfID),
			formatFloat(m.Value),
			formatFloat(res.Threshold),
			strconv.FormatBool(m.FromSearch),
		})
	}
	return w.write(MembershipOutFile, membershipOutCols, rows)
}

func (w *tsvWriter) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return SaveError(path, err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if _, err = bw.WriteString(gnfmt.ToCSV(header, '\t') + "\n"); err != nil {
		return SaveError(path, err)
	}
	for _, row := range rows {
		if _, err = bw.WriteString(gnfmt.ToCSV(row, '\t') + "\n"); err != nil {
			return SaveError(path, err)
		}
	}
	if err = bw.Flush(); err != nil {
		return SaveError(path, err)
	}
	return nil
}

// optInt renders zero as an empty field.
func optInt(i int) string {
	if i == 0 {
		return ""
	}
	return strconv.Itoa(i)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
