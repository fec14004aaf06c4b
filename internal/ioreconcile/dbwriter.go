package ioreconcile

import (
	"context"
	"log/slog"

	"github.com/canerbagci/bgcatlas/pkg/db"
	"github.com/canerbagci/bgcatlas/pkg/reconcile"
	"github.com/jackc/pgx/v5"
)

// OutputTables are written by the database writer.
var OutputTables = []string{"bigslice_gcf_membership", "bigslice_gcf"}

const batchSize = 5_000

// Core memberships replace search memberships, nothing else is
// overwritten.
const upsertMembership = `INSERT INTO bigslice_gcf_membership
  (region_key, region_id, bgc_id, gcf_id, membership_value, threshold,
   gcf_from_search)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (region_key) DO UPDATE SET
  region_id = EXCLUDED.region_id,
  bgc_id = EXCLUDED.bgc_id,
  gcf_id = EXCLUDED.gcf_id,
  membership_value = EXCLUDED.membership_value,
  threshold = EXCLUDED.threshold,
  gcf_from_search = false
WHERE bigslice_gcf_membership.gcf_from_search
  AND NOT EXCLUDED.gcf_from_search`

var gcfCols = []string{
	"gcf_id", "num_core_regions", "core_products", "core_biomes",
	"num_all_regions", "all_products", "all_biomes",
}

type dbWriter struct {
	op db.Operator
}

// NewDBWriter saves memberships and family statistics to PostgreSQL.
// Family statistics are rewritten on every run.
func NewDBWriter(op db.Operator) Writer {
	return &dbWriter{op: op}
}

func (w *dbWriter) Write(ctx context.Context, res Result) error {
	if err := w.op.RequireTables(ctx, OutputTables...); err != nil {
		return err
	}

	tx, err := w.op.Pool().Begin(ctx)
	if err != nil {
		return SaveError("memberships", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for i := 0; i < len(res.Memberships); i += batchSize {
		end := min(i+batchSize, len(res.Memberships))
		if err = sendMemberships(ctx, tx, res.Memberships[i:end], res.Threshold); err != nil {
			return SaveError("bigslice_gcf_membership", err)
		}
	}

	if _, err = tx.Exec(ctx, "TRUNCATE TABLE bigslice_gcf"); err != nil {
		return SaveError("bigslice_gcf", err)
	}
	rows := make([][]any, len(res.Aggregates))
	for i, a := range res.Aggregates {
		rows[i] = []any{
			a.GcfID,
			a.CoreCount,
			reconcile.FormatFreqs(a.CoreProducts),
			reconcile.FormatFreqs(a.CoreBiomes),
			a.AllCount,
			reconcile.FormatFreqs(a.AllProducts),
			reconcile.FormatFreqs(a.AllBiomes),
		}
	}
	_, err = tx.CopyFrom(
		ctx, pgx.Identifier{"bigslice_gcf"}, gcfCols, pgx.CopyFromRows(rows),
	)
	if err != nil {
		return SaveError("bigslice_gcf", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return SaveError("bigslice_gcf", err)
	}
	slog.Info("Saved reconciliation to database",
		"memberships", len(res.Memberships),
		"families", len(res.Aggregates),
	)
	return nil
}

func sendMemberships(
	ctx context.Context,
	tx pgx.Tx,
	ms []reconcile.Membership,
	threshold float64,
) error {
	batch := &pgx.Batch{}
	for _, m := range ms {
		var bgcID *int
		if m.BgcID != 0 {
			bgcID = &m.BgcID
		}
		batch.Queue(upsertMembership,
			m.RegionKey, m.RegionID, bgcID, m.GcfID, m.Value, threshold,
			m.FromSearch,
		)
	}
	return tx.SendBatch(ctx, batch).Close()
}
