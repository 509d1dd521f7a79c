package history

import (
	"fmt"
	"os"
	"path/filepath"
)

// HistFileEnv names the environment variable bash uses for its history file.
const HistFileEnv = "HISTFILE"

// DetectPath returns the history file to read when none was given.
// $HISTFILE wins; otherwise the first existing common bash location is
// used, falling back to ~/.bash_history even if it does not exist.
func DetectPath() (string, error) {
	if path := os.Getenv(HistFileEnv); path != "" {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	for _, path := range candidatePaths(home) {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}

	return filepath.Join(home, ".bash_history"), nil
}

func candidatePaths(home string) []string {
	return []string{
		filepath.Join(home, ".bash_history"),
		filepath.Join(home, ".local/share/bash/history"),
	}
}
