package iojobs_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/canerbagci/bgcatlas/internal/iojobs"
	"github.com/canerbagci/bgcatlas/pkg/errcode"
	"github.com/canerbagci/bgcatlas/pkg/pipeline"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	jf, err := iojobs.Load(filepath.Join("testdata", "jobs.yaml"))
	require.NoError(t, err)
	require.Len(t, jf.Assemblies, 5)
	assert.Equal(t, "ERZ1049440", jf.Assemblies[0].ID)
	require.Len(t, jf.Assemblies[0].Links, 2)
	assert.Equal(t, "antiSMASH summary", jf.Assemblies[0].Links[1].Label)
}

func TestJobs(t *testing.T) {
	jobs, err := iojobs.Jobs(filepath.Join("testdata", "jobs.yaml"), "/data")
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	assert.Equal(t, "ERZ1049440", jobs[0].ID)
	assert.Equal(t, filepath.Join("/data", "ERZ1049440"), jobs[0].Dir)
	assert.Len(t, jobs[0].LinksByLabel(pipeline.LabelSummary), 1)
	assert.Equal(t, "ERZ1049441", jobs[1].ID)
	assert.Equal(t, pipeline.StatusQueued, jobs[1].Status())
	assert.False(t, jobs[1].Fetched.Released())
}

func TestJobsErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		code    gn.ErrorCode
	}{
		{"no usable entries", "assemblies:\n  - id: A\n    links: []\n", errcode.JobsEmptyError},
		{"unknown field", "assembly:\n  - id: A\n", errcode.JobsFileError},
		{"malformed", "assemblies: [\n", errcode.JobsFileError},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, string(rune('a'+i))+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))
			_, err := iojobs.Jobs(path, dir)
			var gnErr *gn.Error
			require.True(t, errors.As(err, &gnErr))
			assert.Equal(t, tt.code, gnErr.Code)
		})
	}

	_, err := iojobs.Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
