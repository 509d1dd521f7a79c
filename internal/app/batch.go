package app

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	hgreperrors "github.com/chazuruo/hgrep/internal/errors"
	"github.com/chazuruo/hgrep/internal/export"
	"github.com/chazuruo/hgrep/internal/history"
	"github.com/chazuruo/hgrep/internal/pattern"
)

// Query holds the raw include and exclude patterns of a search.
type Query struct {
	Includes []string
	Excludes []string
	CaseMode pattern.CaseMode
}

// Compile compiles the query's patterns, stopping at the first bad one.
func (q Query) Compile() (includes, excludes []*pattern.Pattern, err error) {
	includes, err = pattern.CompileAll(q.Includes, q.CaseMode)
	if err != nil {
		return nil, nil, err
	}
	excludes, err = pattern.CompileAll(q.Excludes, q.CaseMode)
	if err != nil {
		return nil, nil, err
	}
	return includes, excludes, nil
}

// Search returns the entries matching q, keeping their master-list indices.
// A positive limit keeps only the most recent matches.
func Search(entries []history.Entry, q Query, limit int) ([]history.Indexed, error) {
	includes, excludes, err := q.Compile()
	if err != nil {
		return nil, err
	}

	matches := history.Filter(entries, includes, excludes)
	return history.Last(matches, limit), nil
}

// Batch writes every entry matching q to w using exp and returns the number
// of entries written.
func Batch(w io.Writer, entries []history.Entry, q Query, limit int, exp *export.Exporter) (int, error) {
	matches, err := Search(entries, q, limit)
	if err != nil {
		return 0, err
	}
	if err := exp.Export(w, matches); err != nil {
		return 0, err
	}
	return len(matches), nil
}

// EntryAt returns the entry at index in the master list.
func EntryAt(entries []history.Entry, index int) (history.Indexed, error) {
	if index < 0 || index >= len(entries) {
		return history.Indexed{}, &hgreperrors.IndexError{Requested: index, Max: len(entries) - 1}
	}
	return history.Indexed{Index: index, Entry: entries[index]}, nil
}

// PrintEntry writes the entry at index to w using exp.
func PrintEntry(w io.Writer, entries []history.Entry, index int, exp *export.Exporter) error {
	m, err := EntryAt(entries, index)
	if err != nil {
		return err
	}
	return exp.Export(w, []history.Indexed{m})
}

// ParseIndex parses an entry index as printed by batch output (hex, with an
// optional 0x prefix).
func ParseIndex(s string) (int, error) {
	digits := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "0x")
	n, err := strconv.ParseUint(digits, 16, strconv.IntSize-1)
	if err != nil {
		return 0, fmt.Errorf("invalid entry index %q: %w", s, hgreperrors.ErrInvalid)
	}
	return int(n), nil
}
