// Package iofs handles application directories and the per-assembly
// layout of the analysis directory.
package iofs

import (
	_ "embed"
	"os"
	"path/filepath"
	"slices"

	"github.com/canerbagci/bgcatlas/pkg/config"
)

//go:embed config.yaml
var ConfigYAML string

func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := TouchDir(v); err != nil {
			return err
		}
	}
	return nil
}

// TouchDir creates a directory with parents if it does not exist.
func TouchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// ResetDir removes a directory with its content. A missing directory is
// not an error.
func ResetDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return RemoveDirError(dir, err)
	}
	return nil
}

func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

// AssemblyDirs returns names of assembly directories under analysisDir
// in lexical order.
func AssemblyDirs(analysisDir string) ([]string, error) {
	entries, err := os.ReadDir(analysisDir)
	if err != nil {
		return nil, ReadFileError(analysisDir, err)
	}
	var res []string
	for _, e := range entries {
		if e.IsDir() {
			res = append(res, e.Name())
		}
	}
	slices.Sort(res)
	return res, nil
}

// FilesWithSuffix returns paths of regular files in dir whose names end
// with suffix, in lexical order.
func FilesWithSuffix(dir, suffix string) ([]string, error) {
	pattern := filepath.Join(dir, "*"+suffix)
	res, err := filepath.Glob(pattern)
	if err != nil {
		return nil, ReadFileError(dir, err)
	}
	var files []string
	for _, v := range res {
		if info, err := os.Stat(v); err == nil && info.Mode().IsRegular() {
			files = append(files, v)
		}
	}
	slices.Sort(files)
	return files, nil
}
