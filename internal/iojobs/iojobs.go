// Package iojobs reads jobs files and turns them into assembly jobs.
package iojobs

import (
	"log/slog"
	"os"

	"github.com/canerbagci/bgcatlas/pkg/config"
	"github.com/canerbagci/bgcatlas/pkg/pipeline"
	"github.com/gnames/gn"
	"gopkg.in/yaml.v3"
)

// Load decodes a jobs file. Unknown fields are errors.
func Load(path string) (pipeline.JobsFile, error) {
	var res pipeline.JobsFile

	f, err := os.Open(path)
	if err != nil {
		return res, JobsFileError(path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err = dec.Decode(&res); err != nil {
		return res, JobsFileError(path, err)
	}
	return res, nil
}

// Jobs loads a jobs file and creates a job for every valid entry. Each
// job works in its own directory under analysisDir. Skipped entries are
// reported as warnings.
func Jobs(path, analysisDir string) ([]*pipeline.AssemblyJob, error) {
	jf, err := Load(path)
	if err != nil {
		return nil, err
	}

	entries, warns := jf.Valid()
	for _, w := range warns {
		slog.Warn("Skipping jobs file entry", "file", path,
			"index", w.Index, "assembly", w.ID, "reason", w.Message)
		gn.Warn("Skipping %s", w.String())
	}
	if len(entries) == 0 {
		return nil, JobsEmptyError(path)
	}

	res := make([]*pipeline.AssemblyJob, len(entries))
	for i, v := range entries {
		dir := config.AssemblyDir(analysisDir, v.ID)
		res[i] = pipeline.NewAssemblyJob(v.ID, v.Links, dir)
	}
	return res, nil
}
