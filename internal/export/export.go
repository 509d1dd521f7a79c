// Package export writes matched history entries in batch mode.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/rodaine/table"
	"gopkg.in/yaml.v3"

	"github.com/chazuruo/hgrep/internal/history"
)

// Format represents the export format.
type Format string

const (
	// FormatPlain prints one "<hex-index> <local-time> <command>" line per entry.
	FormatPlain Format = "plain"
	// FormatJSON prints a JSON array of records.
	FormatJSON Format = "json"
	// FormatYAML prints a YAML sequence of records.
	FormatYAML Format = "yaml"
	// FormatTable prints an aligned table.
	FormatTable Format = "table"
)

// Formats lists the supported formats in help order.
var Formats = []Format{FormatPlain, FormatJSON, FormatYAML, FormatTable}

// ParseFormat validates a format name. The empty string means plain.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatPlain, nil
	}
	for _, f := range Formats {
		if string(f) == strings.ToLower(s) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported format: %s (must be plain, json, yaml or table)", s)
}

// Record is the serialized form of one matched entry.
type Record struct {
	Index     int       `json:"index" yaml:"index"`
	ID        string    `json:"id" yaml:"id"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Local     string    `json:"local" yaml:"local"`
	Command   string    `json:"command" yaml:"command"`
	Lines     []string  `json:"lines" yaml:"lines"`
}

// NewRecord builds the Record for an indexed entry.
func NewRecord(m history.Indexed) Record {
	return Record{
		Index:     m.Index,
		ID:        FormatIndex(m.Index),
		Timestamp: m.Entry.Timestamp,
		Local:     m.Entry.LocalTime(),
		Command:   m.Entry.Text(),
		Lines:     m.Entry.Lines,
	}
}

// FormatIndex renders an entry index the way batch output and --entry expect it.
func FormatIndex(i int) string {
	return fmt.Sprintf("%x", i)
}

// PlainLine renders one entry in the plain batch format, without a newline.
func PlainLine(m history.Indexed) string {
	return fmt.Sprintf("%s %s %s", FormatIndex(m.Index), m.Entry.LocalTime(), m.Entry.Text())
}

// Options contains export options.
type Options struct {
	Format Format

	// CustomTemplate is a text/template file executed once per entry with a
	// Record as data. It overrides Format.
	CustomTemplate string
}

// Exporter writes matched entries in a fixed format.
type Exporter struct {
	format   Format
	template *template.Template
}

// NewExporter creates a new exporter.
func NewExporter(opts Options) (*Exporter, error) {
	e := &Exporter{format: opts.Format}
	if e.format == "" {
		e.format = FormatPlain
	}

	if opts.CustomTemplate != "" {
		tmpl, err := parseTemplateFile(opts.CustomTemplate)
		if err != nil {
			return nil, err
		}
		e.template = tmpl
		return e, nil
	}

	if _, err := ParseFormat(string(e.format)); err != nil {
		return nil, err
	}
	return e, nil
}

// Format returns the exporter's output format.
func (e *Exporter) Format() Format {
	return e.format
}

// Export writes matches to w.
func (e *Exporter) Export(w io.Writer, matches []history.Indexed) error {
	if e.template != nil {
		return e.exportTemplate(w, matches)
	}

	switch e.format {
	case FormatPlain:
		return exportPlain(w, matches)
	case FormatJSON:
		return exportJSON(w, matches)
	case FormatYAML:
		return exportYAML(w, matches)
	case FormatTable:
		exportTable(w, matches)
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", e.format)
	}
}

func records(matches []history.Indexed) []Record {
	out := make([]Record, 0, len(matches))
	for _, m := range matches {
		out = append(out, NewRecord(m))
	}
	return out
}

func exportPlain(w io.Writer, matches []history.Indexed) error {
	for _, m := range matches {
		if _, err := fmt.Fprintln(w, PlainLine(m)); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	return nil
}

func exportJSON(w io.Writer, matches []history.Indexed) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records(matches)); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

func exportYAML(w io.Writer, matches []history.Indexed) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records(matches)); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

// tableLineSep joins the lines of a multi-line command inside a table cell.
const tableLineSep = " ⏎ "

func exportTable(w io.Writer, matches []history.Indexed) {
	tbl := table.New("ID", "TIME", "COMMAND").
		WithWriter(w).
		WithWidthFunc(runewidth.StringWidth)

	for _, m := range matches {
		tbl.AddRow(FormatIndex(m.Index), m.Entry.LocalTime(), strings.Join(m.Entry.Lines, tableLineSep))
	}
	tbl.Print()
}

func (e *Exporter) exportTemplate(w io.Writer, matches []history.Indexed) error {
	for _, m := range matches {
		if err := e.template.Execute(w, NewRecord(m)); err != nil {
			return fmt.Errorf("executing template: %w", err)
		}
	}
	return nil
}

// parseTemplateFile parses a template file. Relative names that do not
// exist are looked up in ~/.config/hgrep/templates/.
func parseTemplateFile(path string) (*template.Template, error) {
	if !filepath.IsAbs(path) {
		if _, err := os.Stat(path); err != nil {
			homeDir, err := os.UserHomeDir()
			if err == nil {
				configPath := filepath.Join(homeDir, ".config", "hgrep", "templates", filepath.Base(path))
				if _, err := os.Stat(configPath); err == nil {
					path = configPath
				}
			}
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template file: %w", err)
	}

	tmpl, err := template.New(filepath.Base(path)).Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing template file: %w", err)
	}
	return tmpl, nil
}
