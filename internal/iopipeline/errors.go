package iopipeline

import (
	"fmt"

	"github.com/canerbagci/bgcatlas/pkg/errcode"
	"github.com/gnames/gn"
)

func CancelledError(batchID string, err error) error {
	return &gn.Error{
		Code: errcode.PipelineCancelledError,
		Msg:  "Pipeline batch %s was interrupted",
		Vars: []any{batchID},
		Err:  fmt.Errorf("batch %s: %w", batchID, err),
	}
}

func AllJobsFailedError(batchID string, total int) error {
	return &gn.Error{
		Code: errcode.PipelineAllJobsFailedError,
		Msg:  "None of %d assemblies was analyzed successfully",
		Vars: []any{total},
		Err:  fmt.Errorf("batch %s: all %d jobs failed", batchID, total),
	}
}
