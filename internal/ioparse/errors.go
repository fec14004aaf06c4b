package ioparse

import (
	"fmt"
	"runtime"

	"github.com/canerbagci/bgcatlas/pkg/errcode"
	"github.com/gnames/gn"
)

// BlockError reports a protocluster block that was skipped. Line is the
// line where the block started.
func BlockError(path string, line int, reason string) error {
	return &gn.Error{
		Code: errcode.ParseBlockError,
		Msg:  "Skipped protocluster at <em>%s:%d</em>: %s",
		Vars: []any{path, line, reason},
		Err:  fmt.Errorf("%s:%d: protocluster block: %s", path, line, reason),
	}
}

// RegionsJSError reports a regions.js file that could not be read at all.
func RegionsJSError(path string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ParseRegionsJSError,
		Msg:  "Cannot parse <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: parse %s: %w", fn.Name(), path, err),
	}
}

// RecordError reports one record of regions.js that was skipped. Index
// is 0-based.
func RecordError(path string, index int, err error) error {
	return &gn.Error{
		Code: errcode.ParseRegionsJSError,
		Msg:  "Skipped record %d of <em>%s</em>",
		Vars: []any{index, path},
		Err:  fmt.Errorf("%s: record %d: %w", path, index, err),
	}
}
