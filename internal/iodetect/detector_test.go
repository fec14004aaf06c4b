package iodetect_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/canerbagci/bgcatlas/internal/iodetect"
	"github.com/canerbagci/bgcatlas/pkg/config"
	"github.com/canerbagci/bgcatlas/pkg/pipeline"
	"github.com/kballard/go-shellquote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner pretends to be antiSMASH. It writes regions.js into the
// output directory and returns the configured exit code.
type fakeRunner struct {
	mu       sync.Mutex
	code     int
	err      error
	commands []string
	sawStale bool
}

func (f *fakeRunner) Run(
	_ context.Context,
	workDir, name string,
	args ...string,
) ([]byte, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = append(f.commands, name+" "+strings.Join(args, " "))
	if f.err != nil {
		return nil, -1, f.err
	}
	outDir := filepath.Join(workDir, "antismash")
	if _, err := os.Stat(filepath.Join(outDir, "stale.txt")); err == nil {
		f.sawStale = true
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, -1, err
	}
	if err := os.WriteFile(filepath.Join(outDir, "regions.js"), []byte("var recordData = [];"), 0644); err != nil {
		return nil, -1, err
	}
	return []byte("antiSMASH status: SUCCESS\n"), f.code, nil
}

func (f *fakeRunner) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.commands)
}

type recorder struct {
	mu    sync.Mutex
	paths map[string]string
	last  string
}

func (r *recorder) Record(_ context.Context, job *pipeline.AssemblyJob, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.paths == nil {
		r.paths = make(map[string]string)
	}
	r.last = job.Status().String()
	if path != "" {
		r.paths[job.ID] = path
	}
	return nil
}

func detectorConfig() config.DetectorConfig {
	cfg := config.New().Detector
	cfg.Cores = 4
	return cfg
}

func fetchedJob(t *testing.T, inputs ...string) *pipeline.AssemblyJob {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "MGYA1")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "antismash"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "antismash", "stale.txt"), nil, 0644))
	for _, v := range inputs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, v), []byte("x"), 0644))
	}
	job := pipeline.NewAssemblyJob("MGYA1", nil, dir)
	job.SetStatus(pipeline.StatusDownloaded)
	job.Fetched.Release()
	return job
}

func TestDetectSuccess(t *testing.T) {
	runner := &fakeRunner{}
	rec := &recorder{}
	d, err := iodetect.New(detectorConfig(), runner, nil, rec)
	require.NoError(t, err)

	job := fetchedJob(t, "MGYA1_FASTA.fasta.gz", "MGYA1_summary.tsv.gz")
	require.NoError(t, d.Detect(context.Background(), job))

	assert.Equal(t, pipeline.StatusSucceeded, job.Status())
	require.Equal(t, 1, runner.calls())
	assert.False(t, runner.sawStale)

	cmd := runner.commands[0]
	assert.True(t, strings.HasPrefix(cmd,
		"bash -c source /home/ubuntu/anaconda3/etc/profile.d/conda.sh && conda activate antismash7 && antismash -c 4"))
	assert.Contains(t, cmd, "--output-basename MGYA1")
	assert.Contains(t, cmd, "--genefinding-tool prodigal-m --allow-long-headers --logfile")
	assert.True(t, strings.HasSuffix(cmd, "MGYA1_FASTA.fasta.gz"))

	exits := job.Exits()
	require.Len(t, exits, 1)
	assert.True(t, exits[0].Success())
	assert.Contains(t, exits[0].Output, "SUCCESS")

	assert.Equal(t, "success", rec.last)
	assert.True(t, strings.HasSuffix(rec.paths["MGYA1"], filepath.Join("MGYA1", "antismash")))
}

func TestDetectWaitsForFetch(t *testing.T) {
	runner := &fakeRunner{}
	d, err := iodetect.New(detectorConfig(), runner, nil, nil)
	require.NoError(t, err)

	job := fetchedJob(t, "a.fasta.gz")
	job.Fetched = pipeline.NewBarrier()

	done := make(chan error)
	go func() { done <- d.Detect(context.Background(), job) }()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, runner.calls())

	job.Fetched.Release()
	require.NoError(t, <-done)
	assert.Equal(t, 1, runner.calls())
}

func TestDetectSkipsDegraded(t *testing.T) {
	runner := &fakeRunner{}
	d, err := iodetect.New(detectorConfig(), runner, nil, nil)
	require.NoError(t, err)

	job := fetchedJob(t, "a.fasta.gz")
	job.Degrade(errors.New("404"))
	require.NoError(t, d.Detect(context.Background(), job))
	assert.Equal(t, 0, runner.calls())
	assert.Equal(t, pipeline.StatusDegraded, job.Status())
}

func TestDetectFailures(t *testing.T) {
	tests := []struct {
		name   string
		runner *fakeRunner
		inputs []string
		calls  int
		code   int
	}{
		{"nonzero exit", &fakeRunner{code: 1}, []string{"a.fasta.gz", "b.fasta.gz"}, 1, 1},
		{"cannot start", &fakeRunner{err: errors.New("no bash")}, []string{"a.fasta.gz"}, 1, -1},
		{"no input", &fakeRunner{}, []string{"summary.tsv"}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			d, err := iodetect.New(detectorConfig(), tt.runner, nil, rec)
			require.NoError(t, err)

			job := fetchedJob(t, tt.inputs...)
			assert.Error(t, d.Detect(context.Background(), job))
			assert.Equal(t, pipeline.StatusFailed, job.Status())
			assert.Error(t, job.Err())
			assert.Equal(t, tt.calls, tt.runner.calls())
			assert.Equal(t, "failed", rec.last)
			assert.Empty(t, rec.paths)
			if tt.calls > 0 {
				assert.Equal(t, tt.code, job.Exits()[0].Code)
			}
		})
	}
}

func TestDetectCancelledWhileWaiting(t *testing.T) {
	runner := &fakeRunner{}
	d, err := iodetect.New(detectorConfig(), runner, nil, nil)
	require.NoError(t, err)

	job := pipeline.NewAssemblyJob("MGYA1", nil, t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = d.Detect(ctx, job)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, pipeline.StatusCancelled, job.Status())
	assert.Equal(t, 0, runner.calls())
}

func TestNewProfile(t *testing.T) {
	cfg := detectorConfig()
	cfg.Server = "custom"
	_, err := iodetect.New(cfg, &fakeRunner{}, nil, nil)
	assert.Error(t, err)

	cfg.CondaPath = "/opt/conda"
	_, err = iodetect.New(cfg, &fakeRunner{}, nil, nil)
	assert.NoError(t, err)
}

func TestInvocationShell(t *testing.T) {
	inv := iodetect.Invocation{
		Script:   "/opt/conda/etc/profile.d/conda.sh",
		Env:      "antismash7",
		Cores:    8,
		Dir:      "/data/ERZ1",
		Assembly: "ERZ1",
		Input:    "/data/ERZ1/ERZ1_FASTA.fasta.gz",
	}
	exp := "source /opt/conda/etc/profile.d/conda.sh && conda activate antismash7 && " +
		"antismash -c 8 --output-dir /data/ERZ1/antismash --output-basename ERZ1 " +
		"--clusterhmmer --tigrfam --asf --cc-mibig --cb-subclusters " +
		"--cb-knownclusters --pfam2go --rre --tfbs " +
		"--genefinding-tool prodigal-m --allow-long-headers " +
		"--logfile /data/ERZ1/antismash/antismash_log.txt " +
		"/data/ERZ1/ERZ1_FASTA.fasta.gz"
	assert.Equal(t, exp, inv.Shell())
}

func TestInvocationShellQuotesPaths(t *testing.T) {
	inv := iodetect.Invocation{
		Script:   "/opt/my conda/etc/profile.d/conda.sh",
		Env:      "antismash7",
		Cores:    2,
		Dir:      "/data/my runs/ERZ1",
		Assembly: "ERZ1",
		Input:    "/data/my runs/ERZ1/ERZ1_FASTA.fasta.gz",
	}
	cmd := inv.Shell()
	assert.True(t, strings.HasPrefix(cmd,
		"source '/opt/my conda/etc/profile.d/conda.sh' && conda activate antismash7 && "))
	assert.Contains(t, cmd, "--output-dir '/data/my runs/ERZ1/antismash' ")
	assert.Contains(t, cmd, "--logfile '/data/my runs/ERZ1/antismash/antismash_log.txt' ")
	assert.True(t, strings.HasSuffix(cmd, " '/data/my runs/ERZ1/ERZ1_FASTA.fasta.gz'"))

	res, err := shellquote.Split(cmd)
	require.NoError(t, err)
	assert.Contains(t, res, "/data/my runs/ERZ1/ERZ1_FASTA.fasta.gz")
}

func TestExecRunner(t *testing.T) {
	r := iodetect.NewRunner()
	ctx := context.Background()

	out, code, err := r.Run(ctx, "", "sh", "-c", "echo hello; exit 3")
	require.NoError(t, err)
	assert.Equal(t, 3, code)
	assert.Equal(t, "hello\n", string(out))

	_, code, err = r.Run(ctx, "", "definitely-not-a-command-bgcatlas")
	assert.Error(t, err)
	assert.Equal(t, -1, code)
}
