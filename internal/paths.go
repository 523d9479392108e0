package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// dbFileName is the chat database file inside the data directory.
const dbFileName = "chat.db"

// DefaultDataDir returns the per-OS directory where chat state lives.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library/Application Support/DeepSense"), nil
	case "linux":
		return filepath.Join(home, ".deepsense"), nil
	default:
		return "", fmt.Errorf("unsupported OS: %s (only macOS and Linux are supported)", runtime.GOOS)
	}
}

// DatabasePath resolves the chat database path, creating the data
// directory when needed. An empty dataDir means the per-OS default.
func DatabasePath(dataDir string) (string, error) {
	if dataDir == "" {
		var err error
		dataDir, err = DefaultDataDir()
		if err != nil {
			return "", err
		}
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return filepath.Join(dataDir, dbFileName), nil
}
