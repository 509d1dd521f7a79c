package errors_test

import (
	"errors"
	"fmt"
	"io"
	"os"
	"testing"

	hgreperrors "github.com/chazuruo/hgrep/internal/errors"
)

// TestBaseErrors verifies that all base error types have correct messages.
func TestBaseErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"ErrNotFound", hgreperrors.ErrNotFound, "not found"},
		{"ErrInvalid", hgreperrors.ErrInvalid, "invalid"},
		{"ErrIO", hgreperrors.ErrIO, "I/O error"},
		{"ErrOutOfRange", hgreperrors.ErrOutOfRange, "out of range"},
		{"ErrCanceled", hgreperrors.ErrCanceled, "canceled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestOpenError verifies OpenError carries the path and unwraps.
func TestOpenError(t *testing.T) {
	err := &hgreperrors.OpenError{Path: "/tmp/hist", Err: hgreperrors.ErrNotFound}
	want := `opening history file "/tmp/hist": not found`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !hgreperrors.IsNotFound(err) {
		t.Error("IsNotFound() = false, want true")
	}

	wrapped := fmt.Errorf("loading: %w", err)
	oe, ok := hgreperrors.AsOpenError(wrapped)
	if !ok {
		t.Fatal("AsOpenError() did not find the OpenError")
	}
	if oe.Path != "/tmp/hist" {
		t.Errorf("Path = %q, want /tmp/hist", oe.Path)
	}
}

// TestReadError verifies ReadError carries the line number and matches ErrIO.
func TestReadError(t *testing.T) {
	err := &hgreperrors.ReadError{Line: 42, Err: io.ErrUnexpectedEOF}
	want := "reading line number 42: unexpected EOF"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !hgreperrors.IsIO(err) {
		t.Error("IsIO() = false, want true")
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("errors.Is() did not find the underlying error")
	}
	re, ok := hgreperrors.AsReadError(hgreperrors.Wrap(err, "parse"))
	if !ok || re.Line != 42 {
		t.Errorf("AsReadError() = %v, %v; want line 42", re, ok)
	}
}

// TestPatternError verifies PatternError names the pattern and matches ErrInvalid.
func TestPatternError(t *testing.T) {
	err := &hgreperrors.PatternError{Pattern: "/a(/", Err: fmt.Errorf("missing closing )")}
	want := `parsing pattern "/a(/": missing closing )`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !hgreperrors.IsInvalid(err) {
		t.Error("IsInvalid() = false, want true")
	}
	if _, ok := hgreperrors.AsPatternError(err); !ok {
		t.Error("AsPatternError() = false, want true")
	}
}

// TestIndexError verifies IndexError formatting for empty and non-empty lists.
func TestIndexError(t *testing.T) {
	tests := []struct {
		name string
		err  *hgreperrors.IndexError
		want string
	}{
		{
			name: "non-empty",
			err:  &hgreperrors.IndexError{Requested: 0x20, Max: 0x1f},
			want: "entry index 20 out of range: maximum is 1f",
		},
		{
			name: "empty",
			err:  &hgreperrors.IndexError{Requested: 0, Max: -1},
			want: "entry index 0 out of range: history is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
			if !hgreperrors.IsOutOfRange(tt.err) {
				t.Error("IsOutOfRange() = false, want true")
			}
		})
	}
}

// TestConfigError verifies ConfigError formatting and unwrapping.
func TestConfigError(t *testing.T) {
	tests := []struct {
		name string
		err  *hgreperrors.ConfigError
		want string
	}{
		{
			name: "with path",
			err:  &hgreperrors.ConfigError{Path: "/etc/hgrep.toml", Err: hgreperrors.ErrInvalid},
			want: "config /etc/hgrep.toml: invalid",
		},
		{
			name: "without path",
			err:  &hgreperrors.ConfigError{Err: os.ErrPermission},
			want: "config: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("AsConfigError", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", &hgreperrors.ConfigError{Path: "x", Err: hgreperrors.ErrInvalid})
		ce, ok := hgreperrors.AsConfigError(err)
		if !ok || ce.Path != "x" {
			t.Errorf("AsConfigError() = %v, %v", ce, ok)
		}
	})
}

// TestWrap verifies Wrap formatting and nil passthrough.
func TestWrap(t *testing.T) {
	if hgreperrors.Wrap(nil, "op") != nil {
		t.Error("Wrap(nil) should return nil")
	}

	err := hgreperrors.Wrap(hgreperrors.ErrCanceled, "select entry")
	if got, want := err.Error(), "select entry: canceled"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !hgreperrors.IsCanceled(err) {
		t.Error("IsCanceled() = false, want true")
	}
}
