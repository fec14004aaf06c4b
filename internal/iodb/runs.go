package iodb

import (
	"context"
	"time"

	"github.com/canerbagci/bgcatlas/pkg/config"
	"github.com/canerbagci/bgcatlas/pkg/db"
	"github.com/canerbagci/bgcatlas/pkg/lifecycle"
	"github.com/canerbagci/bgcatlas/pkg/pipeline"
	"github.com/gnames/gnuuid"
)

// RunStore keeps antismash_runs rows up to date.
type RunStore struct {
	op  db.Operator
	cfg config.DetectorConfig
	now func() time.Time
}

var _ lifecycle.RunRecorder = (*RunStore)(nil)

// NewRunStore creates a RunStore that uses connected operator.
func NewRunStore(op db.Operator, cfg config.DetectorConfig) *RunStore {
	return &RunStore{op: op, cfg: cfg, now: time.Now}
}

// RunID returns the identifier of a run. The same assembly analyzed on
// the same server always gets the same ID.
func RunID(assembly, server string) string {
	return gnuuid.New(assembly + "|" + server).String()
}

const upsertRun = `
INSERT INTO antismash_runs
	(id, assembly, antismash_version, pipeline_version, run_server,
	 status, result_path, run_timestamp)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE SET
	antismash_version = EXCLUDED.antismash_version,
	pipeline_version = EXCLUDED.pipeline_version,
	status = EXCLUDED.status,
	result_path = CASE
		WHEN EXCLUDED.result_path = '' THEN antismash_runs.result_path
		ELSE EXCLUDED.result_path
	END,
	run_timestamp = EXCLUDED.run_timestamp`

// Record stores the current status of the job.
func (s *RunStore) Record(
	ctx context.Context,
	job *pipeline.AssemblyJob,
	resultPath string,
) error {
	return s.RecordStatus(ctx, job.ID, job.Status().String(), resultPath)
}

// RecordStatus stores a status of an assembly run. An empty resultPath
// keeps the stored one.
func (s *RunStore) RecordStatus(
	ctx context.Context,
	assembly, status, resultPath string,
) error {
	pool := s.op.Pool()
	if pool == nil {
		return NotConnectedError()
	}
	_, err := pool.Exec(ctx, upsertRun,
		RunID(assembly, s.cfg.Server),
		assembly,
		s.cfg.Version,
		config.PipelineVersion,
		s.cfg.Server,
		status,
		resultPath,
		s.now().UTC(),
	)
	if err != nil {
		return RunStatusError(assembly, status, err)
	}
	return nil
}

// Statuses returns the latest status of every recorded assembly on the
// configured server.
func (s *RunStore) Statuses(ctx context.Context) (map[string]string, error) {
	pool := s.op.Pool()
	if pool == nil {
		return nil, NotConnectedError()
	}
	rows, err := pool.Query(ctx,
		`SELECT assembly, status FROM antismash_runs WHERE run_server = $1`,
		s.cfg.Server)
	if err != nil {
		return nil, RunStatusError("*", "query", err)
	}
	defer rows.Close()

	res := make(map[string]string)
	for rows.Next() {
		var assembly, status string
		if err := rows.Scan(&assembly, &status); err != nil {
			return nil, RunStatusError("*", "scan", err)
		}
		res[assembly] = status
	}
	if err := rows.Err(); err != nil {
		return nil, RunStatusError("*", "scan", err)
	}
	return res, nil
}
