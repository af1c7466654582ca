package logging

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultLogDir returns ~/.fade/logs, or a temp-dir fallback without a home directory.
func DefaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".fade", "logs")
	}
	return filepath.Join(home, ".fade", "logs")
}

// DefaultLogPath returns the log file written under --debug.
func DefaultLogPath() string {
	return filepath.Join(DefaultLogDir(), "fade.log")
}

// FindLogFile returns explicit if it exists, otherwise the default log path if it exists.
func FindLogFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("log file not found: %s", explicit)
		}
		return explicit, nil
	}

	path := DefaultLogPath()
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("no log file found, run fade with --debug first.\nExpected at: %s", path)
	}
	return path, nil
}
