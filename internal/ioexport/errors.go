package ioexport

import (
	"fmt"

	"github.com/canerbagci/bgcatlas/pkg/errcode"
	"github.com/gnames/gn"
)

// RowError reports a skipped row. Line is 1-based.
func RowError(path string, line int, err error) error {
	return &gn.Error{
		Code: errcode.ParseRowError,
		Msg:  "Skipped row at <em>%s:%d</em>",
		Vars: []any{path, line},
		Err:  fmt.Errorf("%s:%d: %w", path, line, err),
	}
}
