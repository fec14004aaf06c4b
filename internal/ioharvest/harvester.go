// Package ioharvest collects antiSMASH results of many assemblies and
// saves regions and protoclusters to PostgreSQL or to TSV files.
package ioharvest

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/canerbagci/bgcatlas/internal/iofs"
	"github.com/canerbagci/bgcatlas/internal/ioparse"
	"github.com/canerbagci/bgcatlas/pkg/config"
	"github.com/canerbagci/bgcatlas/pkg/region"
	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"golang.org/x/sync/errgroup"
)

// Batch holds harvested rows of one assembly.
type Batch struct {
	Assembly      string
	Regions       []region.Region
	Protoclusters []region.Protocluster
}

// Sink stores harvested batches. Save is called from several goroutines.
type Sink interface {
	Save(ctx context.Context, b Batch) error
	Close() error
}

// Summary counts outcomes of a harvest.
type Summary struct {
	// Assemblies is the number of assembly directories looked at.
	Assemblies int
	// Harvested is the number of assemblies with saved results.
	Harvested int
	// NoResults counts assemblies without regions.js.
	NoResults int
	// Failed counts assemblies whose results could not be read.
	Failed int
	// Regions and Protoclusters count saved rows.
	Regions       int
	Protoclusters int
	// Skipped counts malformed records and protocluster blocks.
	Skipped int
}

// Harvester walks assembly directories of an analysis directory.
type Harvester struct {
	analysisDir  string
	jobsNum      int
	withProgress bool
	sink         Sink

	mu      sync.Mutex
	summary Summary
}

// New creates a Harvester that saves into sink.
func New(cfg *config.Config, sink Sink) *Harvester {
	return &Harvester{
		analysisDir:  cfg.Pipeline.AnalysisDir,
		jobsNum:      max(cfg.JobsNumber, 1),
		withProgress: cfg.Pipeline.WithProgress,
		sink:         sink,
	}
}

// Harvest reads results of every assembly in parallel. Unreadable
// results of one assembly are logged and counted, a failure to save
// stops the harvest.
func (h *Harvester) Harvest(ctx context.Context) (Summary, error) {
	start := time.Now()
	dirs, err := iofs.AssemblyDirs(h.analysisDir)
	if err != nil {
		return Summary{}, err
	}
	h.summary = Summary{Assemblies: len(dirs)}
	slog.Info("Harvesting antiSMASH results",
		"dir", h.analysisDir, "assemblies", len(dirs), "jobs", h.jobsNum)

	var bar *pb.ProgressBar
	if h.withProgress {
		bar = pb.Full.Start(len(dirs))
		bar.Set("prefix", "Harvest: ")
		bar.Set(pb.CleanOnFinish, true)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.jobsNum)
	for _, id := range dirs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if bar != nil {
				defer bar.Increment()
			}
			return h.harvestAssembly(gctx, id)
		})
	}
	err = g.Wait()
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return h.summary, err
	}
	if err = ctx.Err(); err != nil {
		return h.summary, err
	}

	res := h.summary
	slog.Info("Harvest finished",
		"harvested", res.Harvested,
		"no_results", res.NoResults,
		"failed", res.Failed,
		"regions", res.Regions,
		"protoclusters", res.Protoclusters,
		"skipped", res.Skipped,
	)
	gn.Info(
		"Harvested %s regions and %s protoclusters from %s assemblies in %s",
		humanize.Comma(int64(res.Regions)),
		humanize.Comma(int64(res.Protoclusters)),
		humanize.Comma(int64(res.Harvested)),
		gnfmt.TimeString(time.Since(start).Seconds()),
	)
	if res.Harvested == 0 {
		return res, NoResultsError(h.analysisDir)
	}
	return res, nil
}

func (h *Harvester) harvestAssembly(ctx context.Context, id string) error {
	jsPath := config.RegionsJSPath(h.analysisDir, id)
	if _, err := os.Stat(jsPath); errors.Is(err, fs.ErrNotExist) {
		slog.Debug("No regions.js", "assembly", id)
		h.count(func(s *Summary) { s.NoResults++ })
		return nil
	}

	b, skipped, err := readAssembly(h.analysisDir, id)
	if err != nil {
		slog.Error("Cannot read antiSMASH results", "assembly", id, "error", err)
		h.count(func(s *Summary) { s.Failed++ })
		return nil
	}
	for _, v := range skipped {
		slog.Warn("Skipped malformed data", "assembly", id, "error", v)
	}

	if err = h.sink.Save(ctx, b); err != nil {
		return err
	}
	h.count(func(s *Summary) {
		s.Harvested++
		s.Regions += len(b.Regions)
		s.Protoclusters += len(b.Protoclusters)
		s.Skipped += len(skipped)
	})
	return nil
}

func (h *Harvester) count(fn func(*Summary)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn(&h.summary)
}

// readAssembly parses regions.js and every region GenBank file of an
// assembly. The full-record GenBank file is not a region file and is
// ignored.
func readAssembly(analysisDir, id string) (Batch, []error, error) {
	res := Batch{Assembly: id}
	var skipped []error

	regs, bad, err := ioparse.ReadRegionsJS(config.RegionsJSPath(analysisDir, id), id)
	if err != nil {
		return res, nil, err
	}
	res.Regions = regs
	skipped = append(skipped, bad...)

	files, err := iofs.FilesWithSuffix(
		config.DetectorDir(analysisDir, id), region.GbkSuffix,
	)
	if err != nil {
		return res, nil, err
	}
	for _, f := range files {
		if !strings.Contains(filepath.Base(f), ".region") {
			continue
		}
		pcs, bad, err := ioparse.ReadGenBank(f, id)
		if err != nil {
			return res, nil, err
		}
		res.Protoclusters = append(res.Protoclusters, pcs...)
		skipped = append(skipped, bad...)
	}
	return res, skipped, nil
}
