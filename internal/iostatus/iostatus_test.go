package iostatus_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/canerbagci/bgcatlas/internal/iostatus"
	"github.com/canerbagci/bgcatlas/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu       sync.Mutex
	statuses map[string]string
}

func (r *recorder) RecordStatus(
	_ context.Context,
	assembly, status, _ string,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses[assembly] = status
	return nil
}

func writeLog(t *testing.T, dir, id, content string) {
	t.Helper()
	path := config.DetectorLogPath(dir, id)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLastLine(t *testing.T) {
	dir := t.TempDir()
	long := strings.Repeat("INFO 01/01 00:00:00 running step\n", 1000)

	tests := []struct {
		msg     string
		content string
		res     string
	}{
		{"single line", "antiSMASH status: SUCCESS", "antiSMASH status: SUCCESS"},
		{"trailing newlines", "a\nb\n\n", "b"},
		{"crlf", "a\r\nb\r\n", "b"},
		{"empty", "", ""},
		{"long file", long + "INFO 01/01 00:10:00 antiSMASH status: SUCCESS\n",
			"INFO 01/01 00:10:00 antiSMASH status: SUCCESS"},
	}

	for i, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			path := filepath.Join(dir, strings.Repeat("x", i+1))
			require.NoError(t, os.WriteFile(path, []byte(v.content), 0644))
			res, err := iostatus.LastLine(path)
			require.NoError(t, err)
			assert.Equal(t, v.res, res)
		})
	}
}

func TestCheck(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	writeLog(t, dir, "A1", "INFO start\nINFO antiSMASH status: SUCCESS\n")
	writeLog(t, dir, "A2", "INFO start\nERROR out of memory\n")
	require.NoError(t, os.MkdirAll(config.AssemblyDir(dir, "A3"), 0755))

	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptPipelineAnalysisDir(dir),
		config.OptJobsNumber(2),
	})
	rec := &recorder{statuses: make(map[string]string)}

	res, err := iostatus.New(cfg, rec).Check(context.Background())
	require.NoError(t, err)

	assert.Equal([]iostatus.Result{
		{Assembly: "A1", State: iostatus.Success,
			LastLine: "INFO antiSMASH status: SUCCESS"},
		{Assembly: "A2", State: iostatus.Incomplete,
			LastLine: "ERROR out of memory"},
		{Assembly: "A3", State: iostatus.NoLog},
	}, res.Results)
	assert.Equal(map[string]string{"A1": "success", "A2": "failed"},
		rec.statuses)

	var buf bytes.Buffer
	iostatus.PrintReport(&buf, res)
	out := buf.String()
	assert.Contains(out, "A2: ERROR out of memory")
	assert.Contains(out, "A3: no log")
	assert.Contains(out, "success: 1")
}

func TestCheckMissingDir(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptPipelineAnalysisDir(filepath.Join(t.TempDir(), "none")),
	})
	_, err := iostatus.New(cfg, nil).Check(context.Background())
	assert.Error(t, err)
}
