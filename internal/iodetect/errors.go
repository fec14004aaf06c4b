package iodetect

import (
	"fmt"
	"runtime"

	"github.com/canerbagci/bgcatlas/pkg/errcode"
	"github.com/gnames/gn"
)

func NoInputError(assembly, dir string) error {
	return &gn.Error{
		Code: errcode.DetectorNoInputError,
		Msg:  "No contig files for <em>%s</em> in %s",
		Vars: []any{assembly, dir},
		Err:  fmt.Errorf("assembly %s: no *%s files in %s", assembly, InputSuffix, dir),
	}
}

func ExitError(assembly, input string, code int) error {
	return &gn.Error{
		Code: errcode.DetectorExitError,
		Msg:  "antiSMASH failed for <em>%s</em> with exit code %d",
		Vars: []any{assembly, code},
		Err:  fmt.Errorf("assembly %s: antismash on %s exited with %d", assembly, input, code),
	}
}

func StartError(assembly string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DetectorStartError,
		Msg:  "Cannot run antiSMASH for <em>%s</em>",
		Vars: []any{assembly},
		Err:  fmt.Errorf("from %s: assembly %s: %w", fn.Name(), assembly, err),
	}
}

func ProfileError(server string) error {
	msg := `Cannot find conda activation script for server <em>%s</em>

<em>How to fix:</em>
  Use <em>denbi</em>, <em>binac</em> or <em>custom</em> server,
  the custom server needs <em>detector.conda_path</em>.`
	return &gn.Error{
		Code: errcode.DetectorProfileError,
		Msg:  msg,
		Vars: []any{server},
		Err:  fmt.Errorf("no activation script for server %q", server),
	}
}

func TransferError(assembly string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DetectorTransferError,
		Msg:  "Cannot take over antiSMASH results of <em>%s</em>",
		Vars: []any{assembly},
		Err:  fmt.Errorf("from %s: assembly %s: %w", fn.Name(), assembly, err),
	}
}
