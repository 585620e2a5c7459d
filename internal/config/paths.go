package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath names an explicit config file
	EnvConfigPath = "MEPGRAPHS_CONFIG"
	// ConfigFileName is looked up in the working directory
	ConfigFileName = "mepgraphs.yaml"
	// ConfigDirName is the per-user and system config directory
	ConfigDirName = "mepgraphs"
)

// configCandidates lists config locations after the environment override,
// most specific first
func configCandidates() []string {
	candidates := []string{ConfigFileName}
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		candidates = append(candidates, filepath.Join(xdgHome, ConfigDirName, "config.yaml"))
	}
	if home := os.Getenv("HOME"); home != "" {
		candidates = append(candidates, filepath.Join(home, ".config", ConfigDirName, "config.yaml"))
	}
	return append(candidates, filepath.Join("/etc", ConfigDirName, "config.yaml"))
}

// FindConfigPath returns the first existing config file: $MEPGRAPHS_CONFIG,
// ./mepgraphs.yaml, the XDG config directory, then /etc/mepgraphs.
// Returns empty string if none exists.
func FindConfigPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" && fileExists(path) {
		return path
	}
	for _, path := range configCandidates() {
		if fileExists(path) {
			return absOrSelf(path)
		}
	}
	return ""
}

// FindParamsPath resolves the job parameters file. An explicit path is
// returned as given, even when missing, since a missing params file means
// every switch is on. Otherwise ./params.json is used if present.
func FindParamsPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if fileExists(ParamsFileName) {
		return absOrSelf(ParamsFileName)
	}
	return ""
}

// DefaultConfigPath is where config init writes when no path is given
func DefaultConfigPath() string {
	candidates := configCandidates()
	if len(candidates) > 2 {
		// first per-user location
		return candidates[1]
	}
	return ConfigFileName
}

// EnsureConfigDir creates the directory holding configPath
func EnsureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0755)
}

func absOrSelf(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
