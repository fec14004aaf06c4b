// Package lifecycle defines the steps of the bgcatlas pipeline. The
// implementations live in internal/io* packages.
package lifecycle

import (
	"context"

	"github.com/canerbagci/bgcatlas/pkg/pipeline"
)

// SchemaManager creates and migrates the database schema with GORM
// AutoMigrate. Schema management is idempotent.
type SchemaManager interface {
	// Create creates all tables.
	Create(ctx context.Context) error

	// Migrate updates tables to the current models.
	Migrate(ctx context.Context) error
}

// Fetcher downloads input files of an assembly.
type Fetcher interface {
	// Fetch downloads contigs and detector summary of the job into its
	// directory. It releases job.Fetched exactly once, whatever happens,
	// and marks the job degraded on failure.
	Fetch(ctx context.Context, job *pipeline.AssemblyJob) error
}

// Detector runs the cluster detection tool on fetched inputs.
type Detector interface {
	// Detect waits for job.Fetched and runs the detector on every input
	// file of the job. A nonzero exit code marks the job as failed.
	Detect(ctx context.Context, job *pipeline.AssemblyJob) error
}

// ResultTransfer takes over results of a successful detector run.
type ResultTransfer interface {
	Transfer(ctx context.Context, job *pipeline.AssemblyJob) error
}

// RunRecorder keeps track of job status transitions.
type RunRecorder interface {
	// Record stores the current status of a job. resultPath may be empty.
	Record(ctx context.Context, job *pipeline.AssemblyJob, resultPath string) error
}

// NopRecorder is a RunRecorder that keeps nothing. It is used when the
// pipeline runs without a database.
type NopRecorder struct{}

// Record does nothing.
func (NopRecorder) Record(context.Context, *pipeline.AssemblyJob, string) error {
	return nil
}
