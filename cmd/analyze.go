/*
Copyright © 2025 The bgcatlas Authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"

	"github.com/canerbagci/bgcatlas/internal/iodb"
	"github.com/canerbagci/bgcatlas/internal/iodetect"
	"github.com/canerbagci/bgcatlas/internal/iofetch"
	"github.com/canerbagci/bgcatlas/internal/iojobs"
	"github.com/canerbagci/bgcatlas/internal/iopipeline"
	"github.com/canerbagci/bgcatlas/pkg/lifecycle"
	"github.com/canerbagci/bgcatlas/pkg/pipeline"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

// getAnalyzeCmd returns the analyze command.
func getAnalyzeCmd() *cobra.Command {
	analyzeCmd := &cobra.Command{
		Use:   "analyze JOBS_FILE",
		Short: "Download assemblies and run antiSMASH on them",
		Long: `Analyze assemblies listed in a jobs file.

Every assembly gets its own directory under the analysis directory.
Contigs and antiSMASH summaries are downloaded by a pool of
--download-jobs workers, antiSMASH runs in a pool of --detector-jobs
workers. antiSMASH starts on an assembly only after all its downloads
are over. A failed assembly does not stop the others.

With --db every status change is recorded in the antismash_runs table.

Jobs file format (YAML):
  assemblies:
    - id: MGYA00000001
      links:
        - label: processed contigs
          url: https://example.org/MGYA00000001.fasta.gz
        - label: antiSMASH summary
          url: https://example.org/MGYA00000001_summary.tsv

Examples:
  bgcatlas analyze jobs.yaml -a /data/analysis --server binac
  bgcatlas analyze jobs.yaml --download-jobs 8 --detector-jobs 2 --db -p`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runAnalyze(cmd.Context(), args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	f := analyzeCmd.Flags()
	f.Int("download-jobs", 0, "size of the download pool")
	f.Int("detector-jobs", 0, "size of the antiSMASH pool")
	f.Int("timeout", 0, "download timeout in seconds")
	f.String("server", "", "server profile: denbi, binac or custom")
	f.String("conda-path", "", "conda installation for the custom server")
	f.String("conda-env", "", "conda environment with antiSMASH")
	f.IntP("cores", "c", 0, "CPU cores for each antiSMASH run")
	dbFlag(analyzeCmd, "record run statuses in the database")

	return analyzeCmd
}

func runAnalyze(ctx context.Context, jobsPath string) error {
	ctx, cancel := signalContext(ctx)
	defer cancel()

	jobs, err := iojobs.Jobs(jobsPath, cfg.Pipeline.AnalysisDir)
	if err != nil {
		return err
	}

	var rec lifecycle.RunRecorder = lifecycle.NopRecorder{}
	if cfg.Pipeline.WithDatabase {
		op, err := connect(ctx)
		if err != nil {
			return err
		}
		defer op.Close()
		if err = op.RequireTables(ctx, "antismash_runs"); err != nil {
			return err
		}
		rec = iodb.NewRunStore(op, cfg.Detector)
	}

	fetcher := iofetch.New(cfg.Pipeline, rec)
	detector, err := iodetect.New(cfg.Detector, iodetect.NewRunner(), nil, rec)
	if err != nil {
		return err
	}

	gn.Info("Analyzing <em>%s</em> assemblies in <em>%s</em>",
		humanize.Comma(int64(len(jobs))), cfg.Pipeline.AnalysisDir)
	summary, err := iopipeline.New(cfg.Pipeline, fetcher, detector).Run(ctx, jobs)
	printSummary(summary)
	return err
}

func printSummary(s pipeline.Summary) {
	gn.Info("Batch <em>%s</em> finished in %s", s.BatchID,
		gnfmt.TimeString(s.Elapsed.Seconds()))
	gn.Info("Assemblies: %s, succeeded: %s, degraded: %s, failed: %s, "+
		"cancelled: %s",
		humanize.Comma(int64(s.Total)),
		humanize.Comma(int64(s.Succeeded())),
		humanize.Comma(int64(s.ByStatus[pipeline.StatusDegraded])),
		humanize.Comma(int64(s.ByStatus[pipeline.StatusFailed])),
		humanize.Comma(int64(s.ByStatus[pipeline.StatusCancelled])),
	)
}
