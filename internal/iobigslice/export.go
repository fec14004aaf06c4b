package iobigslice

import (
	"bufio"
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/canerbagci/bgcatlas/internal/iofs"
	"github.com/canerbagci/bgcatlas/pkg/bigslice"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	_ "modernc.org/sqlite"
)

// Names of exported files.
const (
	BgcFile        = "bgc-info.tsv"
	MembershipFile = "gcf-membership.tsv"
)

const (
	bgcQuery = `SELECT id, dataset_id, name, type, on_contig_edge, length_nt,
  orig_folder, orig_filename
FROM bgc
ORDER BY id`

	membershipQuery = `SELECT gcf_id, bgc_id, membership_value, rank
FROM gcf_membership
ORDER BY gcf_id, bgc_id`
)

// Reader reads clustering results from a BiG-SLICE data.db.
type Reader struct {
	path string
	db   *sql.DB
}

// Open opens a BiG-SLICE database for reading.
func Open(path string) (*Reader, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, OpenError(path, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, OpenError(path, err)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, OpenError(path, err)
	}
	return &Reader{path: path, db: db}, nil
}

// Close closes the database.
func (r *Reader) Close() error {
	return r.db.Close()
}

// Bgcs returns rows of the bgc table.
func (r *Reader) Bgcs(ctx context.Context) ([]bigslice.Bgc, error) {
	rows, err := r.db.QueryContext(ctx, bgcQuery)
	if err != nil {
		return nil, QueryError("bgc", err)
	}
	defer rows.Close()

	var res []bigslice.Bgc
	for rows.Next() {
		var b bigslice.Bgc
		var edge sql.NullBool
		err = rows.Scan(&b.ID, &b.DatasetID, &b.Name, &b.Type, &edge,
			&b.Length, &b.OrigFolder, &b.OrigFilename)
		if err != nil {
			return nil, QueryError("bgc", err)
		}
		b.OnContigEdge = edge.Bool
		res = append(res, b)
	}
	if err = rows.Err(); err != nil {
		return nil, QueryError("bgc", err)
	}
	return res, nil
}

// Memberships returns rows of the gcf_membership table.
func (r *Reader) Memberships(ctx context.Context) ([]bigslice.Membership, error) {
	rows, err := r.db.QueryContext(ctx, membershipQuery)
	if err != nil {
		return nil, QueryError("gcf_membership", err)
	}
	defer rows.Close()

	var res []bigslice.Membership
	for rows.Next() {
		var m bigslice.Membership
		if err = rows.Scan(&m.GcfID, &m.BgcID, &m.Value, &m.Rank); err != nil {
			return nil, QueryError("gcf_membership", err)
		}
		res = append(res, m)
	}
	if err = rows.Err(); err != nil {
		return nil, QueryError("gcf_membership", err)
	}
	return res, nil
}

// Export writes BGC-info and GCF-membership TSV files with headers to
// outDir.
func (r *Reader) Export(ctx context.Context, outDir string) error {
	if err := iofs.TouchDir(outDir); err != nil {
		return err
	}

	bgcs, err := r.Bgcs(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, len(bgcs))
	for i, b := range bgcs {
		rows[i] = []string{
			strconv.Itoa(b.ID),
			strconv.Itoa(b.DatasetID),
			b.Name,
			b.Type,
			strconv.FormatBool(b.OnContigEdge),
			strconv.Itoa(b.Length),
			b.OrigFolder,
			b.OrigFilename,
		}
	}
	err = writeTSV(filepath.Join(outDir, BgcFile), bigslice.BgcColumns, rows)
	if err != nil {
		return err
	}

	ms, err := r.Memberships(ctx)
	if err != nil {
		return err
	}
	rows = make([][]string, len(ms))
	for i, m := range ms {
		rows[i] = []string{
			strconv.Itoa(m.GcfID),
			strconv.Itoa(m.BgcID),
			strconv.FormatFloat(m.Value, 'f', -1, 64),
			strconv.Itoa(m.Rank),
		}
	}
	err = writeTSV(
		filepath.Join(outDir, MembershipFile), bigslice.MembershipColumns, rows,
	)
	if err != nil {
		return err
	}

	slog.Info("Exported BiG-SLICE results",
		"db", r.path, "bgcs", len(bgcs), "memberships", len(ms))
	gn.Info("Exported %s BGCs and %s memberships to <em>%s</em>",
		humanize.Comma(int64(len(bgcs))),
		humanize.Comma(int64(len(ms))),
		outDir,
	)
	return nil
}

func writeTSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return iofs.WriteFileError(path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err = w.WriteString(gnfmt.ToCSV(header, '\t') + "\n"); err != nil {
		return iofs.WriteFileError(path, err)
	}
	for _, row := range rows {
		if _, err = w.WriteString(gnfmt.ToCSV(row, '\t') + "\n"); err != nil {
			return iofs.WriteFileError(path, err)
		}
	}
	if err = w.Flush(); err != nil {
		return iofs.WriteFileError(path, err)
	}
	return nil
}
