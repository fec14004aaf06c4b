package ioharvest

import (
	"context"
	"errors"

	"github.com/canerbagci/bgcatlas/pkg/db"
	"github.com/jackc/pgx/v5"
)

// DBTables are the tables a harvest writes to.
var DBTables = []string{"regions", "protoclusters"}

var (
	regionCols = []string{
		"assembly", "contig_name", "contig_len", "product_categories",
		"anchor", "start", "end", "contig_edge", "type", "products",
		"region_num",
	}
	protoclusterCols = []string{
		"region_key", "assembly", "contig_name", "category", "contig_edge",
		"product", "protocluster_num",
	}
)

var errNotConnected = errors.New("database is not connected")

type dbSink struct {
	op db.Operator
}

// NewDBSink saves batches to the regions and protoclusters tables. Rows
// of an assembly are replaced on every save.
func NewDBSink(op db.Operator) Sink {
	return &dbSink{op: op}
}

func (s *dbSink) Save(ctx context.Context, b Batch) error {
	pool := s.op.Pool()
	if pool == nil {
		return SaveError(b.Assembly, errNotConnected)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return SaveError(b.Assembly, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, q := range []string{
		"DELETE FROM protoclusters WHERE assembly = $1",
		"DELETE FROM regions WHERE assembly = $1",
	} {
		if _, err = tx.Exec(ctx, q, b.Assembly); err != nil {
			return SaveError(b.Assembly, err)
		}
	}

	regs := make([][]any, len(b.Regions))
	for i, v := range b.Regions {
		regs[i] = []any{
			v.Assembly, v.Contig, v.ContigLen, nonNil(v.ProductCategories),
			v.Anchor, v.Start, v.End, v.ContigEdge, v.Type, nonNil(v.Products),
			v.Number,
		}
	}
	_, err = tx.CopyFrom(
		ctx, pgx.Identifier{"regions"}, regionCols, pgx.CopyFromRows(regs),
	)
	if err != nil {
		return SaveError(b.Assembly, err)
	}

	pcs := make([][]any, len(b.Protoclusters))
	for i, v := range b.Protoclusters {
		pcs[i] = []any{
			v.RegionKey, v.Assembly, v.Contig, v.Category, v.ContigEdge,
			v.Product, v.Number,
		}
	}
	_, err = tx.CopyFrom(
		ctx, pgx.Identifier{"protoclusters"}, protoclusterCols,
		pgx.CopyFromRows(pcs),
	)
	if err != nil {
		return SaveError(b.Assembly, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return SaveError(b.Assembly, err)
	}
	return nil
}

func (s *dbSink) Close() error {
	return nil
}

func nonNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
