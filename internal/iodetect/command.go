package iodetect

import (
	"fmt"
	"path/filepath"

	"github.com/canerbagci/bgcatlas/pkg/config"
	"github.com/kballard/go-shellquote"
)

// InputSuffix selects detector input files in an assembly directory.
const InputSuffix = "fasta.gz"

// FeatureFlags are antiSMASH options used for every run.
var FeatureFlags = []string{
	"--clusterhmmer",
	"--tigrfam",
	"--asf",
	"--cc-mibig",
	"--cb-subclusters",
	"--cb-knownclusters",
	"--pfam2go",
	"--rre",
	"--tfbs",
	"--genefinding-tool", "prodigal-m",
	"--allow-long-headers",
}

// Invocation describes one detector run.
type Invocation struct {
	// Script is the conda activation script.
	Script string
	// Env is the conda environment.
	Env string
	// Cores is the number of CPUs given to antiSMASH.
	Cores int
	// Dir is the assembly directory.
	Dir string
	// Assembly is used as output basename.
	Assembly string
	// Input is the contig file.
	Input string
}

// OutputDir is where antiSMASH writes results.
func (in Invocation) OutputDir() string {
	return filepath.Join(in.Dir, config.DetectorDirName)
}

// LogFile is the antiSMASH log.
func (in Invocation) LogFile() string {
	return filepath.Join(in.OutputDir(), config.DetectorLogName)
}

// Shell returns the bash command line of the invocation. Words with
// spaces or shell metacharacters are quoted.
func (in Invocation) Shell() string {
	args := []string{
		"antismash",
		"-c", fmt.Sprint(in.Cores),
		"--output-dir", in.OutputDir(),
		"--output-basename", in.Assembly,
	}
	args = append(args, FeatureFlags...)
	args = append(args, "--logfile", in.LogFile(), in.Input)

	return fmt.Sprintf("source %s && conda activate %s && %s",
		shellquote.Join(in.Script), shellquote.Join(in.Env),
		shellquote.Join(args...))
}
