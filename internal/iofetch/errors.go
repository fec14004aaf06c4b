package iofetch

import (
	"fmt"
	"runtime"

	"github.com/canerbagci/bgcatlas/pkg/errcode"
	"github.com/gnames/gn"
)

func DownloadError(url string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FetchDownloadError,
		Msg:  "Cannot download <em>%s</em>",
		Vars: []any{url},
		Err:  fmt.Errorf("from %s: download %s: %w", fn.Name(), url, err),
	}
}

func HTTPStatusError(url string, status int) error {
	return &gn.Error{
		Code: errcode.FetchHTTPStatusError,
		Msg:  "Server returned %d for <em>%s</em>",
		Vars: []any{status, url},
		Err:  fmt.Errorf("download %s: unexpected HTTP status %d", url, status),
	}
}

func RewriteError(path string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FetchRewriteError,
		Msg:  "Cannot rewrite sequence headers in <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: rewrite %s: %w", fn.Name(), path, err),
	}
}

func NoLinksError(assembly string) error {
	return &gn.Error{
		Code: errcode.FetchNoLinksError,
		Msg:  "Assembly <em>%s</em> has no processed contigs link",
		Vars: []any{assembly},
		Err:  fmt.Errorf("assembly %s: no processed contigs link", assembly),
	}
}
