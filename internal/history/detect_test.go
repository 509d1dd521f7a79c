package history

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetectPath_HistFileEnv(t *testing.T) {
	t.Setenv(HistFileEnv, "/custom/history")

	path, err := DetectPath()
	if err != nil {
		t.Fatalf("DetectPath() error = %v", err)
	}
	if path != "/custom/history" {
		t.Errorf("DetectPath() = %q, want /custom/history", path)
	}
}

func TestDetectPath_FallsBackToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(HistFileEnv, "")

	path, err := DetectPath()
	if err != nil {
		t.Fatalf("DetectPath() error = %v", err)
	}
	if want := filepath.Join(home, ".bash_history"); path != want {
		t.Errorf("DetectPath() = %q, want %q", path, want)
	}

	// An existing XDG-style location is preferred over a missing default.
	alt := filepath.Join(home, ".local/share/bash/history")
	if err := os.MkdirAll(filepath.Dir(alt), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(alt, []byte("ls\n"), 0644); err != nil {
		t.Fatal(err)
	}

	path, err = DetectPath()
	if err != nil {
		t.Fatalf("DetectPath() error = %v", err)
	}
	if path != alt {
		t.Errorf("DetectPath() = %q, want %q", path, alt)
	}
}
