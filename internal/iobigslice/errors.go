package iobigslice

import (
	"fmt"
	"runtime"

	"github.com/canerbagci/bgcatlas/pkg/errcode"
	"github.com/gnames/gn"
)

func OpenError(path string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.BigsliceOpenError,
		Msg:  "Cannot open BiG-SLICE database <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: open %s: %w", fn.Name(), path, err),
	}
}

func QueryError(table string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.BigsliceQueryError,
		Msg:  "Cannot read table <em>%s</em> of BiG-SLICE database",
		Vars: []any{table},
		Err:  fmt.Errorf("from %s: query %s: %w", fn.Name(), table, err),
	}
}
