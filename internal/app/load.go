// Package app wires the history parser, pattern matcher, picker and output
// sinks into the operations the CLI exposes.
package app

import (
	"fmt"

	"github.com/chazuruo/hgrep/internal/history"
	"github.com/chazuruo/hgrep/internal/logging"
)

// LoadOptions contains options for loading a history file.
type LoadOptions struct {
	Path       string // History file; empty means auto-detect
	Dedup      bool   // Collapse consecutive duplicate entries
	EmptyLines history.EmptyLinePolicy
	Logger     *logging.Logger
}

// LoadEntries reads and parses the history file. The returned slice is the
// master list: entry indices used by batch output and EntryAt refer to it.
func LoadEntries(opts LoadOptions) ([]history.Entry, error) {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	path := opts.Path
	if path == "" {
		detected, err := history.DetectPath()
		if err != nil {
			return nil, fmt.Errorf("failed to detect history file: %w", err)
		}
		path = detected
		log.Debug("detected history file", "path", path)
	}

	entries, err := history.ParseFile(path,
		history.WithLogger(log),
		history.WithEmptyLines(opts.EmptyLines),
	)
	if err != nil {
		return nil, err
	}

	parsed := len(entries)
	entries = history.FilterEntries(entries, history.FilterOptions{RemoveDuplicates: opts.Dedup})

	log.Info("loaded history",
		"path", path,
		"entries", parsed,
		"kept", len(entries),
		"dedup", opts.Dedup,
	)
	return entries, nil
}
