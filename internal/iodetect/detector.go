// Package iodetect runs antiSMASH on downloaded assemblies.
package iodetect

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/canerbagci/bgcatlas/internal/iofs"
	"github.com/canerbagci/bgcatlas/pkg/config"
	"github.com/canerbagci/bgcatlas/pkg/lifecycle"
	"github.com/canerbagci/bgcatlas/pkg/pipeline"
)

// outputTail is the number of output bytes kept in ExitStatus.
const outputTail = 4096

type detector struct {
	cfg      config.DetectorConfig
	script   string
	runner   CommandRunner
	transfer lifecycle.ResultTransfer
	recorder lifecycle.RunRecorder
}

// New creates a Detector. The activation script is resolved here, an
// unusable server profile is an error. A nil recorder disables status
// recording, a nil transfer keeps results where they are.
func New(
	cfg config.DetectorConfig,
	runner CommandRunner,
	tr lifecycle.ResultTransfer,
	rec lifecycle.RunRecorder,
) (lifecycle.Detector, error) {
	script, ok := cfg.ActivationScript()
	if !ok {
		return nil, ProfileError(cfg.Server)
	}
	if rec == nil {
		rec = lifecycle.NopRecorder{}
	}
	if tr == nil {
		tr = NewLocalTransfer(rec)
	}
	res := detector{
		cfg:      cfg,
		script:   script,
		runner:   runner,
		transfer: tr,
		recorder: rec,
	}
	return &res, nil
}

// Detect waits until the job is fetched and runs antiSMASH on every
// contig file of the job. Degraded jobs are skipped, so antiSMASH never
// works on an incomplete input set.
func (d *detector) Detect(ctx context.Context, job *pipeline.AssemblyJob) error {
	if err := job.Fetched.Wait(ctx); err != nil {
		job.SetStatus(pipeline.StatusCancelled)
		return err
	}

	switch job.Status() {
	case pipeline.StatusDegraded, pipeline.StatusCancelled:
		slog.Warn("Skipping antiSMASH", "assembly", job.ID,
			"status", job.Status().String(), "error", job.Err())
		return nil
	}

	inputs, err := iofs.FilesWithSuffix(job.Dir, InputSuffix)
	if err != nil {
		return d.fail(ctx, job, err)
	}
	if len(inputs) == 0 {
		return d.fail(ctx, job, NoInputError(job.ID, job.Dir))
	}

	outDir := filepath.Join(job.Dir, config.DetectorDirName)
	if err = iofs.ResetDir(outDir); err != nil {
		return d.fail(ctx, job, err)
	}

	job.SetStatus(pipeline.StatusRunning)
	d.record(ctx, job, "")

	for _, input := range inputs {
		if err = d.run(ctx, job, input); err != nil {
			if ctx.Err() != nil {
				job.SetStatus(pipeline.StatusCancelled)
				d.record(ctx, job, "")
				return err
			}
			return d.fail(ctx, job, err)
		}
	}

	job.SetStatus(pipeline.StatusSucceeded)
	if err = d.transfer.Transfer(ctx, job); err != nil {
		return d.fail(ctx, job, TransferError(job.ID, err))
	}
	return nil
}

func (d *detector) run(ctx context.Context, job *pipeline.AssemblyJob, input string) error {
	abs, err := filepath.Abs(input)
	if err != nil {
		abs = input
	}
	inv := Invocation{
		Script:   d.script,
		Env:      d.cfg.CondaEnv,
		Cores:    d.cfg.Cores,
		Dir:      job.Dir,
		Assembly: job.ID,
		Input:    abs,
	}

	slog.Info("Running antiSMASH", "assembly", job.ID, "input", filepath.Base(input))
	start := time.Now()
	out, code, err := d.runner.Run(ctx, job.Dir, "bash", "-c", inv.Shell())
	exit := pipeline.ExitStatus{
		Input:    input,
		Code:     code,
		Duration: time.Since(start),
		Output:   tail(out, outputTail),
	}
	job.AddExit(exit)
	slog.Info("antiSMASH finished", "assembly", job.ID,
		"exit_code", code, "duration", exit.Duration.Round(time.Second).String())

	if err != nil {
		return StartError(job.ID, err)
	}
	if !exit.Success() {
		return ExitError(job.ID, input, code)
	}
	return nil
}

func (d *detector) fail(ctx context.Context, job *pipeline.AssemblyJob, err error) error {
	job.Fail(err)
	slog.Error("antiSMASH step failed", "assembly", job.ID, "error", err)
	d.record(ctx, job, "")
	return err
}

func (d *detector) record(ctx context.Context, job *pipeline.AssemblyJob, path string) {
	ctx = context.WithoutCancel(ctx)
	if err := d.recorder.Record(ctx, job, path); err != nil {
		slog.Warn("Cannot record run status",
			"assembly", job.ID, "status", job.Status().String(), "error", err)
	}
}

func tail(b []byte, n int) string {
	if len(b) > n {
		b = b[len(b)-n:]
	}
	return string(b)
}
