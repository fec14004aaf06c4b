// Package iopipeline drives assemblies through download and detection.
package iopipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/canerbagci/bgcatlas/pkg/config"
	"github.com/canerbagci/bgcatlas/pkg/lifecycle"
	"github.com/canerbagci/bgcatlas/pkg/pipeline"
	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Coordinator runs downloads and detector invocations in two pools of
// independent size. Detection of an assembly starts only after its
// download step is over.
type Coordinator struct {
	cfg      config.PipelineConfig
	fetcher  lifecycle.Fetcher
	detector lifecycle.Detector
}

// New creates a Coordinator.
func New(
	cfg config.PipelineConfig,
	f lifecycle.Fetcher,
	d lifecycle.Detector,
) *Coordinator {
	return &Coordinator{cfg: cfg, fetcher: f, detector: d}
}

// Run processes all jobs and blocks until every detector task is over.
// A failure of one assembly does not affect others. When ctx is
// cancelled Run returns right away with a cancellation error, running
// tasks are expected to stop through the same context.
func (c *Coordinator) Run(
	ctx context.Context,
	jobs []*pipeline.AssemblyJob,
) (pipeline.Summary, error) {
	batchID := uuid.NewString()
	start := time.Now()
	slog.Info("Starting pipeline batch",
		"batch", batchID,
		"assemblies", len(jobs),
		"download_jobs", c.cfg.DownloadJobs,
		"detector_jobs", c.cfg.DetectorJobs,
	)

	var bar *pb.ProgressBar
	if c.cfg.WithProgress {
		bar = newProgressBar(len(jobs), "antiSMASH: ")
	}
	defer finishBar(bar)

	var downloads, detections errgroup.Group
	downloads.SetLimit(max(c.cfg.DownloadJobs, 1))
	detections.SetLimit(max(c.cfg.DetectorJobs, 1))

	// Submission blocks when a pool is full, so each pool gets its own
	// submitter. Downloads keep running ahead of detection.
	var submit sync.WaitGroup
	submit.Add(2)
	go func() {
		defer submit.Done()
		for _, j := range jobs {
			downloads.Go(func() error {
				_ = c.fetcher.Fetch(ctx, j)
				return nil
			})
		}
	}()
	go func() {
		defer submit.Done()
		for _, j := range jobs {
			detections.Go(func() error {
				_ = c.detector.Detect(ctx, j)
				if bar != nil {
					bar.Increment()
				}
				return nil
			})
		}
	}()

	done := make(chan struct{})
	go func() {
		submit.Wait()
		_ = downloads.Wait()
		_ = detections.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		summary := pipeline.NewSummary(batchID, jobs, time.Since(start))
		slog.Warn("Pipeline batch interrupted", "batch", batchID)
		return summary, CancelledError(batchID, ctx.Err())
	}

	summary := pipeline.NewSummary(batchID, jobs, time.Since(start))
	slog.Info("Pipeline batch finished",
		"batch", batchID,
		"assemblies", humanize.Comma(int64(summary.Total)),
		"succeeded", humanize.Comma(int64(summary.Succeeded())),
		"degraded", summary.ByStatus[pipeline.StatusDegraded],
		"failed", summary.ByStatus[pipeline.StatusFailed],
		"duration", gnfmt.TimeString(summary.Elapsed.Seconds()),
	)

	if summary.Total > 0 && summary.Succeeded() == 0 {
		return summary, AllJobsFailedError(batchID, summary.Total)
	}
	return summary, nil
}
