package config

import (
	"path/filepath"
	"strings"
)

var (
	// AppName is used in generating file system paths.
	AppName = "bgcatlas"

	// PipelineVersion is recorded with every detector run.
	PipelineVersion = "0.1"
)

// ServerProfile is a deployment target of the detector.
type ServerProfile string

const (
	ServerDenbi  ServerProfile = "denbi"
	ServerBinAC  ServerProfile = "binac"
	ServerCustom ServerProfile = "custom"
)

// activationScripts maps fixed deployment targets to their conda
// activation scripts. The custom profile is built from CondaPath.
var activationScripts = map[ServerProfile]string{
	ServerDenbi: "/home/ubuntu/anaconda3/etc/profile.d/conda.sh",
	ServerBinAC: "/beegfs/work/tu_iijcb01/software/miniforge3/etc/profile.d/conda.sh",
}

// ActivationScript returns the conda.sh path for the configured server
// profile. The second value is false if the profile is unknown, or if the
// custom profile has no CondaPath.
func (d DetectorConfig) ActivationScript() (string, bool) {
	p := ServerProfile(strings.ToLower(d.Server))
	if p == ServerCustom {
		if d.CondaPath == "" {
			return "", false
		}
		return filepath.Join(d.CondaPath, "etc", "profile.d", "conda.sh"), true
	}
	res, ok := activationScripts[p]
	return res, ok
}

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/bgcatlas by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/bgcatlas by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/bgcatlas/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/bgcatlas/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// AssemblyDir returns the working directory of one assembly.
func AssemblyDir(analysisDir, assemblyID string) string {
	return filepath.Join(analysisDir, assemblyID)
}

// Names inside an assembly directory.
const (
	DetectorDirName = "antismash"
	DetectorLogName = "antismash_log.txt"
	RegionsJSName   = "regions.js"
)

// DetectorDir returns the antiSMASH output directory of one assembly.
func DetectorDir(analysisDir, assemblyID string) string {
	return filepath.Join(analysisDir, assemblyID, DetectorDirName)
}

// DetectorLogPath returns the antiSMASH log file of one assembly.
func DetectorLogPath(analysisDir, assemblyID string) string {
	return filepath.Join(DetectorDir(analysisDir, assemblyID), DetectorLogName)
}

// RegionsJSPath returns the antiSMASH regions.js file of one assembly.
func RegionsJSPath(analysisDir, assemblyID string) string {
	return filepath.Join(DetectorDir(analysisDir, assemblyID), RegionsJSName)
}
