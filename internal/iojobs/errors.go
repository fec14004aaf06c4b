package iojobs

import (
	"fmt"
	"runtime"

	"github.com/canerbagci/bgcatlas/pkg/errcode"
	"github.com/gnames/gn"
)

func JobsFileError(path string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.JobsFileError,
		Msg:  "Cannot read jobs file <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: jobs file %s: %w", fn.Name(), path, err),
	}
}

func JobsEmptyError(path string) error {
	return &gn.Error{
		Code: errcode.JobsEmptyError,
		Msg:  "Jobs file <em>%s</em> has no usable assemblies",
		Vars: []any{path},
		Err:  fmt.Errorf("no valid assemblies in %s", path),
	}
}
