package ioharvest_test

import (
	"context"
	"testing"

	"github.com/canerbagci/bgcatlas/internal/iodb"
	"github.com/canerbagci/bgcatlas/internal/ioharvest"
	"github.com/canerbagci/bgcatlas/internal/ioschema"
	"github.com/canerbagci/bgcatlas/internal/iotesting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBSinkNotConnected(t *testing.T) {
	sink := ioharvest.NewDBSink(iodb.NewPgxOperator())
	err := sink.Save(context.Background(), ioharvest.Batch{Assembly: "A1"})
	assert.Error(t, err)
}

func TestDBSinkReplacesAssembly(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	ctx := context.Background()
	op := iodb.NewPgxOperator()
	require.NoError(t, op.Connect(ctx, iotesting.GetTestDatabaseConfig()))
	defer op.Close()
	require.NoError(t, op.DropAllTables(ctx))
	require.NoError(t, ioschema.NewManager(op).Create(ctx))

	dir := analysisDir(t)
	h := ioharvest.New(newConfig(dir), ioharvest.NewDBSink(op))

	// second harvest of the same directory must not violate unique keys
	for range 2 {
		_, err := h.Harvest(ctx)
		require.NoError(t, err)
	}

	var regs, pcs int
	pool := op.Pool()
	require.NoError(t, pool.QueryRow(ctx,
		"SELECT count(*) FROM regions WHERE assembly = 'A1'").Scan(&regs))
	require.NoError(t, pool.QueryRow(ctx,
		"SELECT count(*) FROM protoclusters WHERE assembly = 'A1'").Scan(&pcs))
	assert.Equal(t, 2, regs)
	assert.Equal(t, 1, pcs)
}
