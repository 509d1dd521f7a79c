// Package clipboard copies text to the system clipboard through the
// terminal using the OSC 52 escape sequence.
package clipboard

import (
	"fmt"
	"io"
	"os"

	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/mattn/go-isatty"
)

// Copier writes OSC 52 sequences to a terminal.
type Copier struct {
	out      io.Writer
	terminal bool
	wrap     func(osc52.Sequence) osc52.Sequence
}

// New returns a Copier that writes to f when f is a terminal. Sequences are
// wrapped for tmux or screen when those multiplexers are detected.
func New(f *os.File) *Copier {
	return &Copier{
		out:      f,
		terminal: IsTerminal(f),
		wrap:     multiplexerWrap(os.Getenv),
	}
}

// NewWithWriter returns a Copier that always writes to w. Used by tests.
func NewWithWriter(w io.Writer) *Copier {
	return &Copier{out: w, terminal: true}
}

// Enabled reports whether Copy will emit anything.
func (c *Copier) Enabled() bool {
	return c != nil && c.terminal
}

// Copy emits the clipboard sequence for text. It does nothing when the
// output is not a terminal.
func (c *Copier) Copy(text string) error {
	if !c.Enabled() {
		return nil
	}

	seq := osc52.New(text)
	if c.wrap != nil {
		seq = c.wrap(seq)
	}
	if _, err := seq.WriteTo(c.out); err != nil {
		return fmt.Errorf("writing clipboard sequence: %w", err)
	}
	return nil
}

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func multiplexerWrap(getenv func(string) string) func(osc52.Sequence) osc52.Sequence {
	switch {
	case getenv("TMUX") != "":
		return osc52.Sequence.Tmux
	case getenv("STY") != "":
		return osc52.Sequence.Screen
	default:
		return nil
	}
}
