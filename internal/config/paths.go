package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// GlobalConfigPath returns the per-user global config file. The
// SOLGO_CONFIG environment variable overrides discovery; otherwise the
// file lives under the XDG config home (APPDATA on Windows).
func GlobalConfigPath() string {
	if path := os.Getenv("SOLGO_CONFIG"); path != "" {
		return path
	}
	return filepath.Join(globalConfigDir(), "solgo.toml")
}

// ProjectConfigPath returns the optional project config file inside the
// given project root.
func ProjectConfigPath(dir string) string {
	return filepath.Join(dir, "solgo.toml")
}

func globalConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "solgo")
	}
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), "solgo")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "solgo")
}
