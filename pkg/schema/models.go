// Package schema provides database schema models for bgcatlas.
// Tables are created by GORM AutoMigrate, rows are written with pgx.
package schema

import (
	"time"
)

// AntismashRun records the state of one detector run of an assembly.
type AntismashRun struct {
	// ID is UUID v5 generated from assembly ID and server profile.
	ID string `db:"id" gorm:"type:uuid;primaryKey"`

	// Assembly is the assembly (run) accession.
	Assembly string `db:"assembly" gorm:"type:varchar(255);not null;index"`

	// DetectorVersion is the antiSMASH version.
	DetectorVersion string `db:"antismash_version" gorm:"column:antismash_version;type:varchar(50)"`

	// PipelineVersion is the version of this pipeline.
	PipelineVersion string `db:"pipeline_version" gorm:"type:varchar(50)"`

	// Server is the deployment profile the run was executed on.
	Server string `db:"run_server" gorm:"column:run_server;type:varchar(50)"`

	// Status is one of pipeline statuses (downloading, running, success...).
	Status string `db:"status" gorm:"type:varchar(50);index"`

	// ResultPath is the directory with antiSMASH output.
	ResultPath string `db:"result_path" gorm:"type:text"`

	// UpdatedAt is the time of the last status change.
	UpdatedAt time.Time `db:"run_timestamp" gorm:"column:run_timestamp"`
}

// Region is one antiSMASH region.
type Region struct {
	RegionID          int    `db:"region_id" gorm:"primaryKey;autoIncrement"`
	Assembly          string `db:"assembly" gorm:"type:varchar(255);not null;uniqueIndex:idx_region_key"`
	ContigName        string `db:"contig_name" gorm:"type:varchar(255);not null;uniqueIndex:idx_region_key"`
	ContigLen         int    `db:"contig_len"`
	ProductCategories string `db:"product_categories" gorm:"type:text[]"`
	Anchor            string `db:"anchor" gorm:"type:varchar(255)"`
	Start             int    `db:"start"`
	End               int    `db:"end" gorm:"column:end"`
	ContigEdge        bool   `db:"contig_edge"`
	Type              string `db:"type" gorm:"type:varchar(255)"`
	Products          string `db:"products" gorm:"type:text[]"`
	RegionNum         int    `db:"region_num" gorm:"not null;uniqueIndex:idx_region_key"`
}

// Protocluster is one protocluster of a region.
type Protocluster struct {
	ID              int    `db:"id" gorm:"primaryKey;autoIncrement"`
	RegionKey       string `db:"region_key" gorm:"type:varchar(512);index"`
	Assembly        string `db:"assembly" gorm:"type:varchar(255);index"`
	ContigName      string `db:"contig_name" gorm:"type:varchar(255)"`
	Category        string `db:"category" gorm:"type:varchar(255)"`
	ContigEdge      string `db:"contig_edge" gorm:"type:varchar(10)"`
	Product         string `db:"product" gorm:"type:varchar(255)"`
	ProtoclusterNum int    `db:"protocluster_num"`
}

// AssemblyBiome keeps the most specific biome lineage of an assembly.
type AssemblyBiome struct {
	Assembly     string `db:"assembly" gorm:"type:varchar(255);primaryKey"`
	LongestBiome string `db:"longest_biome" gorm:"type:varchar(255)"`
}

// TableName overrides the default table name.
func (AssemblyBiome) TableName() string {
	return "assembly2longestbiome"
}

// GcfMembership assigns a region to a BiG-SLICE gene cluster family.
type GcfMembership struct {
	RegionKey string `db:"region_key" gorm:"type:varchar(512);primaryKey"`
	RegionID  int    `db:"region_id" gorm:"index"`
	// BgcID is NULL for regions that only appear in search results.
	BgcID           *int    `db:"bgc_id"`
	GcfID           int     `db:"gcf_id" gorm:"not null;index"`
	MembershipValue float64 `db:"membership_value"`
	Threshold       float64 `db:"threshold"`
	GcfFromSearch   bool    `db:"gcf_from_search" gorm:"not null;default:false"`
}

// TableName overrides the default table name.
func (GcfMembership) TableName() string {
	return "bigslice_gcf_membership"
}

// Gcf holds aggregate statistics of one family.
type Gcf struct {
	GcfID          int    `db:"gcf_id" gorm:"primaryKey;autoIncrement:false"`
	NumCoreRegions int    `db:"num_core_regions"`
	CoreProducts   string `db:"core_products" gorm:"type:text"`
	CoreBiomes     string `db:"core_biomes" gorm:"type:text"`
	NumAllRegions  int    `db:"num_all_regions"`
	AllProducts    string `db:"all_products" gorm:"type:text"`
	AllBiomes      string `db:"all_biomes" gorm:"type:text"`
}

// TableName overrides the default table name.
func (Gcf) TableName() string {
	return "bigslice_gcf"
}
