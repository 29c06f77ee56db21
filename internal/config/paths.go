package config

import (
	"os"
	"path/filepath"
)

// GetGlobalConfigDir returns the path to the global configuration directory (~/.promptfy).
// It's a variable to allow overriding in tests.
var GetGlobalConfigDir = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".promptfy"), nil
}

// SearchPaths returns the directories searched for .promptfy.yaml, in
// priority order: the working directory, then the home directory.
func SearchPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, home)
	}
	return paths
}
