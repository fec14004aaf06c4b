// Package pipeline contains the data that flows through the
// download -> detect pipeline: assembly jobs, their status and the
// barrier that orders the two steps.
package pipeline

import (
	"slices"
	"strings"
	"sync"
	"time"
)

// Labels of download links used by the pipeline.
const (
	LabelContigs = "processed contigs"
	LabelSummary = "detector summary"
)

// labelAliases maps labels used by the metadata provider to pipeline
// labels.
var labelAliases = map[string]string{
	"processed contigs": LabelContigs,
	"detector summary":  LabelSummary,
	"antismash summary": LabelSummary,
}

// NormalizeLabel converts a link label to one of the pipeline labels.
// Unknown labels are returned lowercased and trimmed.
func NormalizeLabel(label string) string {
	l := strings.ToLower(strings.TrimSpace(label))
	if res, ok := labelAliases[l]; ok {
		return res
	}
	return l
}

// Link is a typed download link of an assembly.
type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// Status is the state of an AssemblyJob.
type Status int

const (
	StatusQueued Status = iota
	StatusDownloading
	StatusDownloaded
	StatusDegraded
	StatusRunning
	StatusSucceeded
	StatusFailed
	StatusCancelled
)

var statusNames = []string{
	"queued", "downloading", "downloaded", "degraded",
	"running", "success", "failed", "cancelled",
}

// String returns the name of the status as stored in the runs table.
func (s Status) String() string {
	if int(s) < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[s]
}

// Final reports whether no further transitions are expected.
func (s Status) Final() bool {
	switch s {
	case StatusDegraded, StatusSucceeded, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// ExitStatus is the outcome of one detector subprocess.
type ExitStatus struct {
	// Input is the file given to the detector.
	Input string
	// Code is the process exit code, -1 if it never started.
	Code int
	// Duration is the wall time of the subprocess.
	Duration time.Duration
	// Output keeps the tail of combined stdout and stderr.
	Output string
}

// Success reports a zero exit code.
func (e ExitStatus) Success() bool {
	return e.Code == 0
}

// AssemblyJob is one unit of orchestration work. Fetch and detect steps
// run on different goroutines, so the mutable part is guarded.
type AssemblyJob struct {
	// ID of the assembly.
	ID string
	// Links are the typed download links of the assembly.
	Links []Link
	// Dir is the working directory owned exclusively by this job.
	Dir string
	// Fetched is released by the fetch step when it is over, whatever the
	// outcome.
	Fetched *Barrier

	mu     sync.RWMutex
	status Status
	files  []string
	exits  []ExitStatus
	err    error
}

// NewAssemblyJob creates a queued job with its own barrier.
func NewAssemblyJob(id string, links []Link, dir string) *AssemblyJob {
	return &AssemblyJob{
		ID:      id,
		Links:   links,
		Dir:     dir,
		Fetched: NewBarrier(),
	}
}

// LinksByLabel returns links that normalize to the given label.
func (j *AssemblyJob) LinksByLabel(label string) []Link {
	var res []Link
	for _, v := range j.Links {
		if NormalizeLabel(v.Label) == label {
			res = append(res, v)
		}
	}
	return res
}

// Status returns the current status.
func (j *AssemblyJob) Status() Status {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.status
}

// SetStatus changes the status.
func (j *AssemblyJob) SetStatus(s Status) {
	j.mu.Lock()
	j.status = s
	j.mu.Unlock()
}

// Degrade marks the job as degraded and keeps the cause.
func (j *AssemblyJob) Degrade(err error) {
	j.mu.Lock()
	j.status = StatusDegraded
	j.err = err
	j.mu.Unlock()
}

// Fail marks the job as failed and keeps the cause.
func (j *AssemblyJob) Fail(err error) {
	j.mu.Lock()
	j.status = StatusFailed
	j.err = err
	j.mu.Unlock()
}

// Err returns the cause of degradation or failure.
func (j *AssemblyJob) Err() error {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.err
}

// AddFile records a fetched file.
func (j *AssemblyJob) AddFile(path string) {
	j.mu.Lock()
	j.files = append(j.files, path)
	j.mu.Unlock()
}

// Files returns fetched files.
func (j *AssemblyJob) Files() []string {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return slices.Clone(j.files)
}

// AddExit records the outcome of a detector run.
func (j *AssemblyJob) AddExit(e ExitStatus) {
	j.mu.Lock()
	j.exits = append(j.exits, e)
	j.mu.Unlock()
}

// Exits returns outcomes of detector runs.
func (j *AssemblyJob) Exits() []ExitStatus {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return slices.Clone(j.exits)
}
