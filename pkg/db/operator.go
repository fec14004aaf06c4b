package db

import (
	"context"

	"github.com/canerbagci/bgcatlas/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Operator defines the interface for basic database management operations.
// It provides connection lifecycle management and exposes the pgxpool.Pool
// for components that run their own SQL (run store, harvester,
// reconciliation writer).
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool. Components use it for
	// transactions, bulk inserts (CopyFrom), and custom queries.
	Pool() *pgxpool.Pool

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the database has any tables in the public schema.
	// Used to determine if schema creation should prompt for confirmation.
	HasTables(ctx context.Context) (bool, error)

	// RequireTables returns an error naming tables that do not exist.
	RequireTables(ctx context.Context, tables ...string) error

	// DropAllTables drops all tables in the public schema.
	DropAllTables(ctx context.Context) error
}
