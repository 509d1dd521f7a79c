package app

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chazuruo/hgrep/internal/clipboard"
	"github.com/chazuruo/hgrep/internal/history"
	"github.com/chazuruo/hgrep/internal/logging"
	"github.com/chazuruo/hgrep/internal/tui"
)

// Sink receives the text of the entry picked in interactive mode.
type Sink interface {
	Deliver(text string) error
}

// StdoutSink prints the picked command and copies it to the clipboard.
type StdoutSink struct {
	Out       io.Writer
	Clipboard *clipboard.Copier // nil disables copying
	Logger    *logging.Logger
}

// Deliver implements Sink. A clipboard failure is logged, not returned.
func (s *StdoutSink) Deliver(text string) error {
	if _, err := fmt.Fprintln(s.Out, text); err != nil {
		return fmt.Errorf("writing selection: %w", err)
	}

	if err := s.Clipboard.Copy(text); err != nil && s.Logger != nil {
		s.Logger.Warn("clipboard copy failed", "error", err)
	}
	return nil
}

// FileSink writes the picked command verbatim to a file, for shell
// key bindings that read it back into the line editor.
type FileSink struct {
	Path string
}

// Deliver implements Sink.
func (s *FileSink) Deliver(text string) error {
	if err := os.WriteFile(s.Path, []byte(text), 0600); err != nil {
		return fmt.Errorf("writing selection to %s: %w", s.Path, err)
	}
	return nil
}

// PickFunc runs an interactive picker. tui.Run is the default.
type PickFunc func(ctx context.Context, entries []history.Entry, opts tui.Options, progOpts ...tea.ProgramOption) (*history.Entry, error)

// SelectOptions contains options for interactive selection.
type SelectOptions struct {
	Picker         tui.Options
	ProgramOptions []tea.ProgramOption
	Pick           PickFunc
	Logger         *logging.Logger
}

// Select runs the picker and hands the chosen entry to sink. It returns the
// chosen entry, or nil when the user quit or picked nothing.
func Select(ctx context.Context, entries []history.Entry, opts SelectOptions, sink Sink) (*history.Entry, error) {
	pick := opts.Pick
	if pick == nil {
		pick = tui.Run
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	chosen, err := pick(ctx, entries, opts.Picker, opts.ProgramOptions...)
	if err != nil {
		return nil, err
	}
	if chosen == nil {
		log.Info("no entry selected")
		return nil, nil
	}

	log.Info("entry selected", "timestamp", chosen.Timestamp, "lines", len(chosen.Lines))
	if err := sink.Deliver(chosen.Text()); err != nil {
		return nil, err
	}
	return chosen, nil
}
