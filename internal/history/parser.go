// Package history reads shell history files and filters their entries.
package history

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	hgreperrors "github.com/chazuruo/hgrep/internal/errors"
	"github.com/chazuruo/hgrep/internal/logging"
)

// LineKind classifies one physical line of a history file.
type LineKind int

const (
	// KindCommand is command text.
	KindCommand LineKind = iota
	// KindTimestamp is a "#<unix seconds>" marker.
	KindTimestamp
	// KindEmpty is an empty or whitespace-only line.
	KindEmpty
)

func (k LineKind) String() string {
	switch k {
	case KindTimestamp:
		return "timestamp"
	case KindEmpty:
		return "empty"
	default:
		return "command"
	}
}

// ParsedLine is the classification of one physical line.
type ParsedLine struct {
	Kind LineKind
	// Timestamp is set for KindTimestamp.
	Timestamp time.Time
	// Text is the original line for KindCommand and KindEmpty.
	Text string
}

// ClassifyLine decides whether line is a timestamp marker, an empty line or
// command text. A marker is exactly '#' followed by one or more ASCII
// digits whose value is at least MinReasonableUnix. Everything else that
// is not blank is a command, kept verbatim.
func ClassifyLine(line string) ParsedLine {
	if strings.TrimSpace(line) == "" {
		return ParsedLine{Kind: KindEmpty, Text: line}
	}
	if ts, ok := parseMarker(line); ok {
		return ParsedLine{Kind: KindTimestamp, Timestamp: ts}
	}
	return ParsedLine{Kind: KindCommand, Text: line}
}

func parseMarker(line string) (time.Time, bool) {
	digits, ok := strings.CutPrefix(line, "#")
	if !ok || digits == "" {
		return time.Time{}, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return time.Time{}, false
		}
	}
	unix, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || unix < MinReasonableUnix {
		return time.Time{}, false
	}
	return time.Unix(unix, 0).UTC(), true
}

// EmptyLinePolicy decides what happens to blank lines.
type EmptyLinePolicy string

const (
	// DropEmptyLines ignores blank lines without changing parser state.
	DropEmptyLines EmptyLinePolicy = "drop"
	// KeepEmptyLines treats blank lines as command text.
	KeepEmptyLines EmptyLinePolicy = "keep"
)

// ParseEmptyLinePolicy parses "drop" or "keep".
func ParseEmptyLinePolicy(s string) (EmptyLinePolicy, error) {
	switch EmptyLinePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case DropEmptyLines, "":
		return DropEmptyLines, nil
	case KeepEmptyLines:
		return KeepEmptyLines, nil
	default:
		return DropEmptyLines, fmt.Errorf("empty line policy must be one of: drop, keep; got %q: %w", s, hgreperrors.ErrInvalid)
	}
}

// ParseOption configures Parse and ParseFile.
type ParseOption func(*parser)

// WithLogger sets the logger used for parser diagnostics.
func WithLogger(l *logging.Logger) ParseOption {
	return func(p *parser) {
		if l != nil {
			p.log = l
		}
	}
}

// WithEmptyLines sets the blank line policy. The default is DropEmptyLines.
func WithEmptyLines(policy EmptyLinePolicy) ParseOption {
	return func(p *parser) { p.emptyLines = policy }
}

type parserState int

const (
	// No timestamp seen yet: every line is its own entry.
	stateNoTimestamps parserState = iota
	stateLastWasTimestamp
	stateLastWasCommand
)

func (s parserState) String() string {
	switch s {
	case stateLastWasTimestamp:
		return "last-was-timestamp"
	case stateLastWasCommand:
		return "last-was-command"
	default:
		return "no-timestamps"
	}
}

type parser struct {
	log        *logging.Logger
	emptyLines EmptyLinePolicy

	state   parserState
	curTS   time.Time
	curCmd  []string
	entries []Entry
}

// ParseFile opens path and parses it with Parse.
func ParseFile(path string, opts ...ParseOption) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &hgreperrors.OpenError{Path: path, Err: fmt.Errorf("%w: %w", hgreperrors.ErrNotFound, err)}
		}
		return nil, &hgreperrors.OpenError{Path: path, Err: fmt.Errorf("%w: %w", hgreperrors.ErrIO, err)}
	}
	defer func() { _ = file.Close() }()

	return Parse(file, opts...)
}

// Parse reads a history file and rebuilds its entries in file order.
//
// Until the first timestamp marker every line is a separate command with
// DefaultTimestamp. After that, each entry starts at a marker and collects
// the command lines that follow it, so multi-line commands are supported:
//
//	#1616420000
//	for f in *; do
//	  echo "$f"
//	done
//
// A marker directly after another marker is dropped; the first one stays
// in effect. A trailing marker with no command is discarded. A failed read
// returns a *ReadError with the 1-based line number.
func Parse(r io.Reader, opts ...ParseOption) ([]Entry, error) {
	p := &parser{
		log:        logging.Discard(),
		emptyLines: DropEmptyLines,
		state:      stateNoTimestamps,
		curTS:      DefaultTimestamp(),
	}
	for _, opt := range opts {
		opt(p)
	}

	reader := bufio.NewReader(r)
	lineNo := 0
	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, &hgreperrors.ReadError{Line: lineNo + 1, Err: err}
		}
		if line == "" && err != nil {
			break
		}
		lineNo++
		p.feed(lineNo, trimEOL(line))
		if err != nil {
			break
		}
	}
	p.finish()

	return p.entries, nil
}

func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

func (p *parser) feed(lineNo int, line string) {
	parsed := ClassifyLine(line)
	p.log.Debug("parsed line", "line", lineNo, "state", p.state, "kind", parsed.Kind)

	if parsed.Kind == KindEmpty {
		if p.emptyLines != KeepEmptyLines {
			p.log.Info("skipping empty line", "line", lineNo)
			return
		}
		parsed.Kind = KindCommand
	}

	switch parsed.Kind {
	case KindCommand:
		switch p.state {
		case stateNoTimestamps:
			p.entries = append(p.entries, NewEntry(DefaultTimestamp(), parsed.Text))
		case stateLastWasTimestamp, stateLastWasCommand:
			p.curCmd = append(p.curCmd, parsed.Text)
			p.state = stateLastWasCommand
		}
	case KindTimestamp:
		switch p.state {
		case stateNoTimestamps:
			p.curTS = parsed.Timestamp
			p.state = stateLastWasTimestamp
		case stateLastWasTimestamp:
			// Most likely a command that looks like a marker, e.g. "#1700000000".
			p.log.Info("ignoring consecutive timestamp line", "line", lineNo, "text", line)
		case stateLastWasCommand:
			p.flush()
			p.curTS = parsed.Timestamp
			p.state = stateLastWasTimestamp
		}
	}
}

func (p *parser) flush() {
	p.entries = append(p.entries, NewEntry(p.curTS, p.curCmd...))
	p.curCmd = nil
}

func (p *parser) finish() {
	if p.state == stateLastWasCommand {
		p.flush()
	}
}
