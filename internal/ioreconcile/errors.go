package ioreconcile

import (
	"fmt"
	"runtime"

	"github.com/canerbagci/bgcatlas/pkg/errcode"
	"github.com/gnames/gn"
)

func LoadError(source string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReconcileLoadError,
		Msg:  "Cannot load <em>%s</em>",
		Vars: []any{source},
		Err:  fmt.Errorf("from %s: load %s: %w", fn.Name(), source, err),
	}
}

func SaveError(target string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReconcileSaveError,
		Msg:  "Cannot save <em>%s</em>",
		Vars: []any{target},
		Err:  fmt.Errorf("from %s: save %s: %w", fn.Name(), target, err),
	}
}

func NoRegionsError() error {
	return &gn.Error{
		Code: errcode.ReconcileNoRegionsError,
		Msg:  "No regions to reconcile, run <em>bgcatlas harvest</em> first",
		Err:  fmt.Errorf("no regions"),
	}
}

func InputError(msg string) error {
	return &gn.Error{
		Code: errcode.ReconcileInputError,
		Msg:  "Missing input: %s",
		Vars: []any{msg},
		Err:  fmt.Errorf("missing input: %s", msg),
	}
}
