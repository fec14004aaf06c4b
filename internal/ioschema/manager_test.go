package ioschema_test

import (
	"context"
	"testing"

	"github.com/canerbagci/bgcatlas/internal/iodb"
	"github.com/canerbagci/bgcatlas/internal/ioschema"
	"github.com/canerbagci/bgcatlas/internal/iotesting"
	"github.com/canerbagci/bgcatlas/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerNotConnected(t *testing.T) {
	var mgr lifecycle.SchemaManager = ioschema.NewManager(iodb.NewPgxOperator())
	assert.Error(t, mgr.Create(context.Background()))
	assert.Error(t, mgr.Migrate(context.Background()))
}

func TestManagerCreate(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	op := iodb.NewPgxOperator()
	ctx := context.Background()
	require.NoError(t, op.Connect(ctx, iotesting.GetTestDatabaseConfig()))
	defer op.Close()
	require.NoError(t, op.DropAllTables(ctx))

	mgr := ioschema.NewManager(op)
	require.NoError(t, mgr.Create(ctx))

	tables := []string{
		"antismash_runs", "regions", "protoclusters",
		"assembly2longestbiome", "bigslice_gcf_membership", "bigslice_gcf",
	}
	require.NoError(t, op.RequireTables(ctx, tables...))

	// idempotent
	require.NoError(t, mgr.Migrate(ctx))

	var n int
	err := op.Pool().QueryRow(ctx,
		"SELECT count(*) FROM "+ioschema.RegionFamiliesView).Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
