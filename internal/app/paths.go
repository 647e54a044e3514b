package app

import (
	"os"
	"path/filepath"
)

// DataDir returns the redite data directory, ~/.redite by default,
// overridable via REDITE_HOME.
func DataDir() string {
	if dir := os.Getenv("REDITE_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".redite"
	}
	return filepath.Join(home, ".redite")
}

// DBPath returns the bbolt database path inside dataDir.
func DBPath(dataDir string) string {
	return filepath.Join(dataDir, "redite.db")
}

// BundlePath returns the portable bundle file path inside dataDir.
func BundlePath(dataDir string) string {
	return filepath.Join(dataDir, "bundle.json")
}
