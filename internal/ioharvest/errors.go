package ioharvest

import (
	"fmt"
	"runtime"

	"github.com/canerbagci/bgcatlas/pkg/errcode"
	"github.com/gnames/gn"
)

func SaveError(assembly string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.HarvestSaveError,
		Msg:  "Cannot save results of <em>%s</em>",
		Vars: []any{assembly},
		Err:  fmt.Errorf("from %s: save %s: %w", fn.Name(), assembly, err),
	}
}

func NoResultsError(analysisDir string) error {
	return &gn.Error{
		Code: errcode.HarvestNoResultsError,
		Msg:  "No antiSMASH results found in <em>%s</em>",
		Vars: []any{analysisDir},
		Err:  fmt.Errorf("no regions.js files in %s", analysisDir),
	}
}
