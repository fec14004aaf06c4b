// Package ioschema implements lifecycle.SchemaManager with GORM
// AutoMigrate over the pgx connection pool.
package ioschema

import (
	"context"

	"github.com/canerbagci/bgcatlas/pkg/db"
	"github.com/canerbagci/bgcatlas/pkg/lifecycle"
	"github.com/canerbagci/bgcatlas/pkg/schema"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// RegionFamiliesView joins regions with their family assignments.
const RegionFamiliesView = "region_families"

const regionFamiliesSQL = `CREATE OR REPLACE VIEW ` + RegionFamiliesView + ` AS
SELECT r.region_id, r.assembly, r.contig_name, r.contig_len,
	r.product_categories, r.anchor, r.start, r."end", r.contig_edge,
	r.type, r.products, r.region_num,
	m.bgc_id, m.gcf_id, m.membership_value, m.gcf_from_search
FROM regions r
LEFT JOIN bigslice_gcf_membership m ON m.region_id = r.region_id`

type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// Create creates all tables and the region_families view.
func (m *manager) Create(ctx context.Context) error {
	gormDB, err := m.open()
	if err != nil {
		return err
	}

	if err := schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return CreateSchemaError(err)
	}

	if _, err := m.operator.Pool().Exec(ctx, regionFamiliesSQL); err != nil {
		return CreateSchemaError(err)
	}

	return nil
}

// Migrate updates tables to the current models. Existing data is kept.
func (m *manager) Migrate(ctx context.Context) error {
	gormDB, err := m.open()
	if err != nil {
		return err
	}

	if err := schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return MigrateSchemaError(err)
	}

	if _, err := m.operator.Pool().Exec(ctx, regionFamiliesSQL); err != nil {
		return MigrateSchemaError(err)
	}

	return nil
}

func (m *manager) open() (*gorm.DB, error) {
	pool := m.operator.Pool()
	if pool == nil {
		return nil, NotConnectedError()
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{},
	)
	if err != nil {
		return nil, GORMConnectionError(err)
	}
	return gormDB, nil
}
