// Package iostatus checks antiSMASH logs of assemblies that were analyzed
// earlier and tells which runs finished.
package iostatus

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/canerbagci/bgcatlas/internal/iofs"
	"github.com/canerbagci/bgcatlas/pkg/config"
	"github.com/canerbagci/bgcatlas/pkg/pipeline"
	"github.com/fatih/color"
	"github.com/gnames/gn"
	"golang.org/x/sync/errgroup"
)

// SuccessMark is written by antiSMASH as the last log line of a
// successful run.
const SuccessMark = "antiSMASH status: SUCCESS"

// tailSize is how much of the end of a log is read to find its last line.
const tailSize = 8 * 1024

// State is the outcome of a log check.
type State string

const (
	Success    State = "success"
	Incomplete State = "incomplete"
	NoLog      State = "no_log"
)

// Result is the state of one assembly.
type Result struct {
	Assembly string
	State    State
	LastLine string
}

// Report holds results sorted by assembly.
type Report struct {
	Results []Result
}

// Count returns the number of assemblies in a state.
func (r Report) Count(s State) int {
	var res int
	for _, v := range r.Results {
		if v.State == s {
			res++
		}
	}
	return res
}

// StatusRecorder stores the outcome of a run.
type StatusRecorder interface {
	RecordStatus(ctx context.Context, assembly, status, resultPath string) error
}

// Checker reads logs of every assembly of an analysis directory.
type Checker struct {
	analysisDir string
	jobsNum     int
	rec         StatusRecorder
}

// New creates a Checker. When rec is not nil, outcomes of runs with a
// log are recorded with it.
func New(cfg *config.Config, rec StatusRecorder) *Checker {
	return &Checker{
		analysisDir: cfg.Pipeline.AnalysisDir,
		jobsNum:     max(cfg.JobsNumber, 1),
		rec:         rec,
	}
}

// Check looks at the last log line of every assembly.
func (c *Checker) Check(ctx context.Context) (Report, error) {
	dirs, err := iofs.AssemblyDirs(c.analysisDir)
	if err != nil {
		return Report{}, err
	}

	var mu sync.Mutex
	res := Report{Results: make([]Result, 0, len(dirs))}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.jobsNum)
	for _, id := range dirs {
		g.Go(func() error {
			r, err := c.checkAssembly(gctx, id)
			if err != nil {
				return err
			}
			mu.Lock()
			res.Results = append(res.Results, r)
			mu.Unlock()
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return res, err
	}

	slices.SortFunc(res.Results, func(a, b Result) int {
		return strings.Compare(a.Assembly, b.Assembly)
	})
	slog.Info("Checked antiSMASH logs",
		"assemblies", len(res.Results),
		"success", res.Count(Success),
		"incomplete", res.Count(Incomplete),
		"no_log", res.Count(NoLog),
	)
	return res, nil
}

func (c *Checker) checkAssembly(ctx context.Context, id string) (Result, error) {
	res := Result{Assembly: id}
	line, err := LastLine(config.DetectorLogPath(c.analysisDir, id))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		res.State = NoLog
		return res, nil
	case err != nil:
		return res, err
	}

	res.LastLine = line
	status := pipeline.StatusFailed
	res.State = Incomplete
	if strings.Contains(line, SuccessMark) {
		res.State = Success
		status = pipeline.StatusSucceeded
	}

	if c.rec != nil {
		err = c.rec.RecordStatus(ctx, id, status.String(),
			config.DetectorDir(c.analysisDir, id))
		if err != nil {
			slog.Warn("Cannot record run status", "assembly", id, "error", err)
		}
	}
	return res, nil
}

// LastLine returns the last non-empty line of a file. An empty file
// gives an empty line.
func LastLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return "", iofs.ReadFileError(path, err)
	}
	off := max(st.Size()-tailSize, 0)
	buf := make([]byte, st.Size()-off)
	if _, err = f.ReadAt(buf, off); err != nil && err != io.EOF {
		return "", iofs.ReadFileError(path, err)
	}

	buf = bytes.TrimRight(buf, "\r\n\t ")
	if i := bytes.LastIndexByte(buf, '\n'); i >= 0 {
		buf = buf[i+1:]
	}
	return strings.TrimSpace(string(buf)), nil
}

// PrintReport writes a coloured summary and lists assemblies that did not
// finish.
func PrintReport(w io.Writer, r Report) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	for _, v := range r.Results {
		switch v.State {
		case Incomplete:
			fmt.Fprintf(w, "%s %s: %s\n", yellow("!"), v.Assembly, v.LastLine)
		case NoLog:
			fmt.Fprintf(w, "%s %s: no log\n", red("✗"), v.Assembly)
		}
	}
	fmt.Fprintf(w, "%s success: %d\n", green("✓"), r.Count(Success))
	fmt.Fprintf(w, "%s incomplete: %d\n", yellow("!"), r.Count(Incomplete))
	fmt.Fprintf(w, "%s no log: %d\n", red("✗"), r.Count(NoLog))
	if r.Count(Success) < len(r.Results) {
		gn.Warn("%d of %d assemblies did not finish",
			len(r.Results)-r.Count(Success), len(r.Results))
	}
}
