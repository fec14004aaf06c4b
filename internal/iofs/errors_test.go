package iofs

import (
	"errors"
	"testing"

	"github.com/canerbagci/bgcatlas/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	cause := errors.New("permission denied")

	tests := []struct {
		name string
		err  error
		code gn.ErrorCode
		path string
		text string
	}{
		{"create dir", CreateDirError("/a/dir", cause), errcode.CreateDirError, "/a/dir", "cannot create"},
		{"remove dir", RemoveDirError("/a/dir", cause), errcode.RemoveDirError, "/a/dir", "cannot remove"},
		{"copy file", CopyFileError("/a/c.yaml", cause), errcode.CopyFileError, "/a/c.yaml", "cannot copy"},
		{"read file", ReadFileError("/a/r.js", cause), errcode.ReadFileError, "/a/r.js", "cannot read"},
		{"write file", WriteFileError("/a/o.tsv", cause), errcode.WriteFileError, "/a/o.tsv", "cannot write"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gnErr *gn.Error
			require.True(t, errors.As(tt.err, &gnErr))
			assert.Equal(t, tt.code, gnErr.Code)
			assert.Contains(t, gnErr.Msg, "%s")
			require.Len(t, gnErr.Vars, 1)
			assert.Equal(t, tt.path, gnErr.Vars[0])
			assert.ErrorIs(t, gnErr.Err, cause)
			assert.Contains(t, gnErr.Err.Error(), tt.text)
			assert.Contains(t, gnErr.Err.Error(), "from")
		})
	}
}
