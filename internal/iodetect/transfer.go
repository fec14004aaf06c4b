package iodetect

import (
	"context"
	"os"
	"path/filepath"

	"github.com/canerbagci/bgcatlas/pkg/config"
	"github.com/canerbagci/bgcatlas/pkg/lifecycle"
	"github.com/canerbagci/bgcatlas/pkg/pipeline"
)

// LocalTransfer leaves results in the assembly directory and records
// their location.
type LocalTransfer struct {
	recorder lifecycle.RunRecorder
}

var _ lifecycle.ResultTransfer = (*LocalTransfer)(nil)

// NewLocalTransfer creates a LocalTransfer.
func NewLocalTransfer(rec lifecycle.RunRecorder) *LocalTransfer {
	if rec == nil {
		rec = lifecycle.NopRecorder{}
	}
	return &LocalTransfer{recorder: rec}
}

// Transfer checks that antiSMASH produced regions.js and records the
// result directory.
func (t *LocalTransfer) Transfer(ctx context.Context, job *pipeline.AssemblyJob) error {
	dir, err := filepath.Abs(filepath.Join(job.Dir, config.DetectorDirName))
	if err != nil {
		return err
	}
	if _, err = os.Stat(filepath.Join(dir, config.RegionsJSName)); err != nil {
		return err
	}
	return t.recorder.Record(context.WithoutCancel(ctx), job, dir)
}
