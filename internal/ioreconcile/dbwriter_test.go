package ioreconcile_test

import (
	"context"
	"testing"

	"github.com/canerbagci/bgcatlas/internal/iodb"
	"github.com/canerbagci/bgcatlas/internal/ioreconcile"
	"github.com/canerbagci/bgcatlas/internal/ioschema"
	"github.com/canerbagci/bgcatlas/internal/iotesting"
	"github.com/canerbagci/bgcatlas/pkg/reconcile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBWriter(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	assert := assert.New(t)
	ctx := context.Background()
	op := iodb.NewPgxOperator()
	require.NoError(t, op.Connect(ctx, iotesting.GetTestDatabaseConfig()))
	defer op.Close()
	require.NoError(t, op.DropAllTables(ctx))
	require.NoError(t, ioschema.NewManager(op).Create(ctx))

	w := ioreconcile.NewDBWriter(op)
	search := ioreconcile.Result{
		Threshold: 0.4,
		Memberships: []reconcile.Membership{
			{RegionKey: "A1_c1.region001", RegionID: 1, GcfID: 8, Value: 0.9,
				FromSearch: true},
		},
		Aggregates: []reconcile.Aggregate{{GcfID: 8, AllCount: 1}},
	}
	require.NoError(t, w.Write(ctx, search))

	core := ioreconcile.Result{
		Threshold: 0.4,
		Memberships: []reconcile.Membership{
			{RegionKey: "A1_c1.region001", RegionID: 1, BgcID: 10, GcfID: 5,
				Value: 0.2},
		},
		Aggregates: []reconcile.Aggregate{{GcfID: 5, CoreCount: 1, AllCount: 1}},
	}
	require.NoError(t, w.Write(ctx, core))
	// a later search row never replaces a core membership
	require.NoError(t, w.Write(ctx, search))

	pool := op.Pool()
	var gcfID int
	var fromSearch bool
	var bgcID *int
	err := pool.QueryRow(ctx, `SELECT gcf_id, gcf_from_search, bgc_id
FROM bigslice_gcf_membership WHERE region_key = 'A1_c1.region001'`).
		Scan(&gcfID, &fromSearch, &bgcID)
	require.NoError(t, err)
	assert.Equal(5, gcfID)
	assert.False(fromSearch)
	require.NotNil(t, bgcID)
	assert.Equal(10, *bgcID)

	var gcfs int
	require.NoError(t, pool.QueryRow(ctx,
		"SELECT count(*) FROM bigslice_gcf").Scan(&gcfs))
	assert.Equal(1, gcfs)
}

func TestLoadRegionsDB(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	assert := assert.New(t)
	ctx := context.Background()
	op := iodb.NewPgxOperator()
	require.NoError(t, op.Connect(ctx, iotesting.GetTestDatabaseConfig()))
	defer op.Close()
	require.NoError(t, op.DropAllTables(ctx))
	require.NoError(t, ioschema.NewManager(op).Create(ctx))

	pool := op.Pool()
	_, err := pool.Exec(ctx, `INSERT INTO regions
  (assembly, contig_name, contig_len, product_categories, anchor, start,
   "end", contig_edge, type, products, region_num)
VALUES ('A1', 'c1', 3000, '{NRPS}', 'r1c1', 1, 900, true, 'NRPS',
  '{NRPS,T1PKS}', 1)`)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `INSERT INTO assembly2longestbiome
  (assembly, longest_biome) VALUES ('A1', 'root:Aquatic')`)
	require.NoError(t, err)

	res, err := ioreconcile.LoadRegionsDB(ctx, op)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal("A1_c1.region001", res[0].Key())
	assert.Equal([]string{"NRPS", "T1PKS"}, res[0].Products)
	assert.Equal("root:Aquatic", res[0].LongestBiome)
	assert.NotZero(res[0].ID)
}
