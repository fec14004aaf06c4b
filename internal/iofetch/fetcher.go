// Package iofetch downloads input files of assemblies.
package iofetch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/canerbagci/bgcatlas/internal/iofs"
	"github.com/canerbagci/bgcatlas/pkg/config"
	"github.com/canerbagci/bgcatlas/pkg/lifecycle"
	"github.com/canerbagci/bgcatlas/pkg/pipeline"
	"github.com/dustin/go-humanize"
)

type fetcher struct {
	client   *http.Client
	recorder lifecycle.RunRecorder
}

// New creates a Fetcher. A nil recorder disables status recording.
func New(cfg config.PipelineConfig, rec lifecycle.RunRecorder) lifecycle.Fetcher {
	client := &http.Client{
		Timeout: time.Duration(cfg.DownloadTimeout) * time.Second,
	}
	return NewWithClient(client, rec)
}

// NewWithClient creates a Fetcher that uses the given HTTP client.
func NewWithClient(client *http.Client, rec lifecycle.RunRecorder) lifecycle.Fetcher {
	if rec == nil {
		rec = lifecycle.NopRecorder{}
	}
	return &fetcher{client: client, recorder: rec}
}

// Fetch downloads detector summaries and processed contigs of the job.
// Contig files get sequence headers prefixed with the assembly ID. The
// job barrier is released when Fetch returns.
func (f *fetcher) Fetch(ctx context.Context, job *pipeline.AssemblyJob) (err error) {
	defer job.Fetched.Release()
	defer func() {
		if err == nil {
			return
		}
		if ctx.Err() != nil {
			job.SetStatus(pipeline.StatusCancelled)
		} else {
			job.Degrade(err)
		}
		slog.Error("Download failed", "assembly", job.ID, "error", err)
		f.record(ctx, job)
	}()

	job.SetStatus(pipeline.StatusDownloading)
	f.record(ctx, job)

	contigs := job.LinksByLabel(pipeline.LabelContigs)
	if len(contigs) == 0 {
		return NoLinksError(job.ID)
	}

	if err = iofs.TouchDir(job.Dir); err != nil {
		return err
	}

	for _, l := range job.LinksByLabel(pipeline.LabelSummary) {
		if _, err = f.download(ctx, job, l.URL); err != nil {
			return err
		}
	}

	for _, l := range contigs {
		var file string
		if file, err = f.download(ctx, job, l.URL); err != nil {
			return err
		}
		if err = PrefixHeaders(file, job.ID); err != nil {
			return err
		}
	}

	job.SetStatus(pipeline.StatusDownloaded)
	f.record(ctx, job)
	return nil
}

func (f *fetcher) record(ctx context.Context, job *pipeline.AssemblyJob) {
	// cancelled jobs are still recorded
	ctx = context.WithoutCancel(ctx)
	if err := f.recorder.Record(ctx, job, ""); err != nil {
		slog.Warn("Cannot record run status",
			"assembly", job.ID, "status", job.Status().String(), "error", err)
	}
}

// download saves the URL into the job directory. Data goes to a
// temporary file first, so a failed download never leaves a complete
// looking file behind.
func (f *fetcher) download(
	ctx context.Context,
	job *pipeline.AssemblyJob,
	rawURL string,
) (string, error) {
	name, err := FileName(rawURL)
	if err != nil {
		return "", DownloadError(rawURL, err)
	}
	target := filepath.Join(job.Dir, name)
	tmp := target + ".part"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", DownloadError(rawURL, err)
	}

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return "", DownloadError(rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", HTTPStatusError(rawURL, resp.StatusCode)
	}

	out, err := os.Create(tmp)
	if err != nil {
		return "", DownloadError(rawURL, err)
	}
	n, err := io.Copy(out, resp.Body)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return "", DownloadError(rawURL, err)
	}

	if err = os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return "", DownloadError(rawURL, err)
	}

	job.AddFile(target)
	slog.Info("Downloaded file",
		"assembly", job.ID,
		"file", name,
		"size", humanize.Bytes(uint64(n)),
		"duration", time.Since(start).Round(time.Millisecond).String(),
	)
	return target, nil
}

// FileName returns the last path segment of a URL without its query.
func FileName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	name := path.Base(u.Path)
	if name == "/" || name == "." || name == "" {
		return "", errors.New("no file name in URL path")
	}
	return name, nil
}
