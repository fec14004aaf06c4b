// Package iobigslice prepares BiG-SLICE input folders and reads results
// back from BiG-SLICE's SQLite database.
package iobigslice

import (
	"bufio"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/canerbagci/bgcatlas/internal/iofs"
	"github.com/gnames/gnfmt"
)

const (
	// DatasetsFile lists datasets of a BiG-SLICE input folder.
	DatasetsFile = "datasets.tsv"
	// DatasetsDir holds one folder of region files per run.
	DatasetsDir = "datasets"
	// TaxonomyDir holds one taxonomy file per run.
	TaxonomyDir = "taxonomy"
)

var datasetsHeader = []string{
	"#Dataset name", "Path to folder", "Path to taxonomy", "Description",
}

// TaxonomyPath returns the path of a run's taxonomy file relative to the
// input folder.
func TaxonomyPath(run string) string {
	return filepath.Join(TaxonomyDir, "taxonomy_"+run+".tsv")
}

// Prep writes datasets.tsv and taxonomy files for runs that have a
// folder in {inputDir}/datasets. Other runs are skipped. It returns the
// runs that were written.
func Prep(inputDir string, runs []string) ([]string, error) {
	if err := iofs.TouchDir(filepath.Join(inputDir, TaxonomyDir)); err != nil {
		return nil, err
	}

	path := filepath.Join(inputDir, DatasetsFile)
	f, err := os.Create(path)
	if err != nil {
		return nil, iofs.WriteFileError(path, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	var res []string
	if _, err = w.WriteString(gnfmt.ToCSV(datasetsHeader, '\t') + "\n"); err != nil {
		return nil, iofs.WriteFileError(path, err)
	}
	for _, run := range runs {
		dsDir := filepath.Join(DatasetsDir, run)
		_, err = os.Stat(filepath.Join(inputDir, dsDir))
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("No dataset folder", "run", run)
			continue
		}

		row := []string{run, dsDir, TaxonomyPath(run), run}
		if _, err = w.WriteString(gnfmt.ToCSV(row, '\t') + "\n"); err != nil {
			return nil, iofs.WriteFileError(path, err)
		}
		if err = writeTaxonomy(inputDir, run); err != nil {
			return nil, err
		}
		res = append(res, run)
	}

	if err = w.Flush(); err != nil {
		return nil, iofs.WriteFileError(path, err)
	}
	slog.Info("Prepared BiG-SLICE input", "dir", inputDir,
		"runs", len(runs), "datasets", len(res))
	return res, nil
}

// writeTaxonomy assigns every BGC of a run to Bacteria, lower ranks are
// blank and the run ID stands for the species.
func writeTaxonomy(inputDir, run string) error {
	path := filepath.Join(inputDir, TaxonomyPath(run))
	line := "antismash\tBacteria\t \t \t \t \t \t" + run + "\n"
	if err := os.WriteFile(path, []byte(line), 0644); err != nil {
		return iofs.WriteFileError(path, err)
	}
	return nil
}
