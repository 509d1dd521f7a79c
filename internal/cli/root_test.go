// Package cli provides tests for CLI commands.
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hgreperrors "github.com/chazuruo/hgrep/internal/errors"
	"github.com/chazuruo/hgrep/internal/export"
	"github.com/chazuruo/hgrep/internal/history"
	"github.com/chazuruo/hgrep/internal/testutil"
	"github.com/chazuruo/hgrep/internal/tui"
)

// isolate points every config and history lookup at empty temp locations.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(history.HistFileEnv, "")
	t.Setenv("HGREP_QUERY", "")
}

func execute(t *testing.T, pick func(context.Context, []history.Entry, tui.Options, ...tea.ProgramOption) (*history.Entry, error), args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand(BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2026-01-01"}, pick)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestRoot_Batch(t *testing.T) {
	isolate(t)
	path := testutil.WriteHistory(t, testutil.SampleHistory)

	out, err := execute(t, nil, "-f", path, "git")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "0 "))
	assert.True(t, strings.HasSuffix(lines[0], " git status"))
	assert.True(t, strings.HasPrefix(lines[1], "1 "))
}

func TestRoot_BatchOptions(t *testing.T) {
	isolate(t)
	path := testutil.WriteHistory(t, testutil.SampleHistory)

	tests := []struct {
		name string
		args []string
		want []string // hex index prefixes, in order
	}{
		{"all entries", []string{}, []string{"0", "1", "2", "3", "4"}},
		{"dedup", []string{"--dedup"}, []string{"0", "1", "2", "3"}},
		{"exclude", []string{"-e", "git", "--exclude", "/^for /"}, []string{"3", "4"}},
		{"case sensitive", []string{"-s", "GIT"}, nil},
		{"regex", []string{"/asd[12]/"}, nil},
		{"literal brackets", []string{"asd[12]"}, []string{"4"}},
		{"limit", []string{"--limit", "1"}, []string{"4"}},
		{"all patterns must match", []string{"kubectl", "prod"}, []string{"3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, nil, append([]string{"-f", path}, tt.args...)...)
			require.NoError(t, err)

			var got []string
			for _, line := range strings.Split(out, "\n") {
				if line == "" || strings.HasPrefix(line, " ") || line == "done" {
					continue
				}
				got = append(got, strings.SplitN(line, " ", 2)[0])
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoot_Entry(t *testing.T) {
	isolate(t)
	path := testutil.WriteHistory(t, testutil.SampleHistory)

	out, err := execute(t, nil, "-f", path, "--entry", "3")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "3 "))
	assert.True(t, strings.HasSuffix(out, " kubectl get pods -n prod\n"))

	_, err = execute(t, nil, "-f", path, "--entry", "ff")
	require.Error(t, err)
	ie, ok := hgreperrors.AsIndexError(err)
	require.True(t, ok)
	assert.Equal(t, 255, ie.Requested)
	assert.Equal(t, 4, ie.Max)

	_, err = execute(t, nil, "-f", path, "--entry", "zz")
	assert.True(t, hgreperrors.IsInvalid(err))
}

func TestRoot_JSONFormat(t *testing.T) {
	isolate(t)
	path := testutil.WriteHistory(t, testutil.SampleHistory)

	out, err := execute(t, nil, "-f", path, "--format", "json", "gzip")
	require.NoError(t, err)

	var records []export.Record
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].Index)
	assert.Equal(t, "for f in *.log; do\n  gzip \"$f\"\ndone", records[0].Command)
}

func TestRoot_Errors(t *testing.T) {
	isolate(t)
	path := testutil.WriteHistory(t, testutil.SampleHistory)

	t.Run("missing file", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "nope")
		_, err := execute(t, nil, "-f", missing)
		require.Error(t, err)
		assert.True(t, hgreperrors.IsNotFound(err))
		assert.Contains(t, err.Error(), missing)
	})

	t.Run("bad pattern", func(t *testing.T) {
		_, err := execute(t, nil, "-f", path, "/(unclosed/")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "/(unclosed/")
	})

	t.Run("bad format", func(t *testing.T) {
		_, err := execute(t, nil, "-f", path, "--format", "xml")
		assert.Error(t, err)
	})

	t.Run("bad empty-lines", func(t *testing.T) {
		_, err := execute(t, nil, "-f", path, "--empty-lines", "squash")
		assert.Error(t, err)
	})

	t.Run("interactive with no-tui", func(t *testing.T) {
		_, err := execute(t, nil, "-f", path, "-i", "--no-tui")
		assert.Error(t, err)
	})
}

func TestRoot_ConfigFile(t *testing.T) {
	isolate(t)
	path := testutil.WriteHistory(t, testutil.SampleHistory)

	configPath := filepath.Join(t.TempDir(), "config.toml")
	content := "[history]\npath = \"" + path + "\"\ndedup = true\n\n[search]\ncase = \"sensitive\"\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	out, err := execute(t, nil, "--config", configPath, "status")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "git status"), "dedup from config")

	out, err = execute(t, nil, "--config", configPath, "STATUS")
	require.NoError(t, err)
	assert.Empty(t, out, "case mode from config")

	out, err = execute(t, nil, "--config", configPath, "-s=false", "STATUS")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "git status"), "-s=false overrides a sensitive config")
}

func TestRoot_Interactive(t *testing.T) {
	isolate(t)
	path := testutil.WriteHistory(t, testutil.SampleHistory)

	var gotOpts tui.Options
	var gotEntries int
	pick := func(_ context.Context, entries []history.Entry, opts tui.Options, _ ...tea.ProgramOption) (*history.Entry, error) {
		gotOpts = opts
		gotEntries = len(entries)
		e := entries[3]
		return &e, nil
	}

	out, err := execute(t, pick, "-f", path, "-i", "--no-clipboard", "-e", "git", "kube", "prod")
	require.NoError(t, err)
	assert.Equal(t, "kubectl get pods -n prod\n", out)

	assert.Equal(t, 5, gotEntries)
	assert.Equal(t, "kube prod", gotOpts.InitialSearch)
	require.Len(t, gotOpts.Excludes, 1)
	assert.Equal(t, "git", gotOpts.Excludes[0].String())
	assert.Equal(t, "hgrep", gotOpts.Title)
}

func TestRoot_InteractiveQuerySeed(t *testing.T) {
	isolate(t)
	path := testutil.WriteHistory(t, testutil.SampleHistory)

	var seed string
	pick := func(_ context.Context, _ []history.Entry, opts tui.Options, _ ...tea.ProgramOption) (*history.Entry, error) {
		seed = opts.InitialSearch
		return nil, nil
	}

	t.Setenv("HGREP_QUERY", "from env")
	out, err := execute(t, pick, "-f", path, "-i", "ignored")
	require.NoError(t, err)
	assert.Empty(t, out, "nothing printed without a selection")
	assert.Equal(t, "from env", seed)

	_, err = execute(t, pick, "-f", path, "-i", "-q", "from flag")
	require.NoError(t, err)
	assert.Equal(t, "from flag", seed)
}

func TestRoot_OutputPath(t *testing.T) {
	isolate(t)
	path := testutil.WriteHistory(t, testutil.SampleHistory)
	target := filepath.Join(t.TempDir(), "selection")

	pick := func(_ context.Context, entries []history.Entry, _ tui.Options, _ ...tea.ProgramOption) (*history.Entry, error) {
		e := entries[2]
		return &e, nil
	}

	out, err := execute(t, pick, "-f", path, "--output-path", target)
	require.NoError(t, err)
	assert.Empty(t, out, "nothing printed in integration mode")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "for f in *.log; do\n  gzip \"$f\"\ndone", string(data))
}

func TestRoot_LogFile(t *testing.T) {
	isolate(t)
	path := testutil.WriteHistory(t, "#1262305001\n#1262305003\nfoo\n")
	logPath := filepath.Join(t.TempDir(), "logs", "hgrep.log")

	_, err := execute(t, nil, "-f", path, "--log-level", "info", "--log-file", logPath)
	require.NoError(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ignoring consecutive timestamp line")
	assert.Contains(t, string(data), "run=")
}
