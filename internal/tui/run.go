package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	hgreperrors "github.com/chazuruo/hgrep/internal/errors"
	"github.com/chazuruo/hgrep/internal/history"
)

// Run shows the picker and blocks until the user picks an entry or quits.
// It returns nil without error when nothing was picked. The terminal is
// restored before Run returns, including when ctx is canceled.
func Run(ctx context.Context, entries []history.Entry, opts Options, progOpts ...tea.ProgramOption) (*history.Entry, error) {
	model := New(entries, opts)

	all := append([]tea.ProgramOption{tea.WithContext(ctx)}, progOpts...)
	p := tea.NewProgram(model, all...)

	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, tea.ErrProgramKilled) {
			return nil, fmt.Errorf("picker: %w: %w", hgreperrors.ErrCanceled, err)
		}
		return nil, fmt.Errorf("running picker: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return nil, fmt.Errorf("unexpected model type %T", final)
	}
	if m.DidQuit() {
		return nil, nil
	}
	return m.Choice(), nil
}

// TerminalOptions returns the program options for running against the
// process's terminal. The UI is drawn on stderr when stdout is redirected,
// and keyboard input comes from the controlling tty when stdin is not one.
func TerminalOptions(altScreen bool) []tea.ProgramOption {
	var opts []tea.ProgramOption
	if altScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		opts = append(opts, tea.WithOutput(os.Stderr))
	}
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		opts = append(opts, tea.WithInputTTY())
	}
	return opts
}

// TerminalSize returns the size of the first of stdout, stderr or stdin
// that is a terminal, or 0, 0 when none is.
func TerminalSize() (width, height int) {
	for _, f := range []*os.File{os.Stdout, os.Stderr, os.Stdin} {
		fd := int(f.Fd())
		if !term.IsTerminal(fd) {
			continue
		}
		if w, h, err := term.GetSize(fd); err == nil {
			return w, h
		}
	}
	return 0, 0
}
