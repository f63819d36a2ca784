package main

import (
	"os"
	"path/filepath"
)

// settingsPath is where qdirstat's TOML settings file lives: qdirstat/
// settings.toml under os.UserConfigDir, or .qdirstat.toml in the working
// directory when no user config directory is known.
func settingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".qdirstat.toml"
	}
	return filepath.Join(dir, "qdirstat", "settings.toml")
}
