// Package testutil provides helper functions for testing.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleHistory is a small bash history with timestamps, a multi-line
// command and a consecutive duplicate.
const SampleHistory = `#1616420000
git status
#1616420060
git status
#1616420120
for f in *.log; do
  gzip "$f"
done
#1616420180
kubectl get pods -n prod
#1616420240
grep 'asd[12]' notes.txt
`

// TempDir creates a temporary directory and registers a cleanup function.
// The directory is automatically deleted when the test completes.
func TempDir(t *testing.T) string {
	t.Helper()

	dir, err := os.MkdirTemp("", "test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	t.Cleanup(func() {
		if err := os.RemoveAll(dir); err != nil {
			t.Errorf("failed to cleanup temp dir %s: %v", dir, err)
		}
	})

	return dir
}

// WriteHistory writes content to a temporary history file and returns the path.
// The file is automatically deleted when the test completes.
func WriteHistory(t *testing.T, content string) string {
	t.Helper()

	dir := TempDir(t)
	path := filepath.Join(dir, "bash_history")

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write history file: %v", err)
	}

	return path
}
