// Package tui provides the Bubble Tea model for interactive history search.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/chazuruo/hgrep/internal/history"
	"github.com/chazuruo/hgrep/internal/pattern"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// header and footer rows around the entry list
	chromeHeight = 2

	markerSelected = "> "
	markerNormal   = "  "
	ellipsis       = "…"
)

// Options configures a picker.
type Options struct {
	// InitialSearch seeds the search text.
	InitialSearch string

	// Excludes are applied once when the picker is built.
	Excludes []*pattern.Pattern

	// CaseMode applies to the words typed into the search box.
	CaseMode pattern.CaseMode

	// Title is shown in the header bar.
	Title string

	// Styles overrides DefaultStyles when non-nil.
	Styles *Styles

	// Width and Height are the initial terminal size. Zero means 80x24
	// until the first resize message arrives.
	Width  int
	Height int
}

// Model is a Bubble Tea model that filters history entries as the user types.
type Model struct {
	// master is the exclude-filtered list, fixed for the session.
	master []history.Indexed
	texts  []string

	filtered []history.Indexed
	selected int // index into filtered, -1 when empty
	offset   int // first filtered entry shown

	search   textinput.Model
	caseMode pattern.CaseMode

	title         string
	width, height int
	styles        Styles

	quit      bool
	confirmed bool
	choice    *history.Entry
}

// New creates a picker over entries.
func New(entries []history.Entry, opts Options) Model {
	master := history.Filter(entries, nil, opts.Excludes)
	texts := make([]string, len(master))
	for i, it := range master {
		texts[i] = it.Entry.Text()
	}

	ti := textinput.New()
	ti.Prompt = markerSelected
	ti.Placeholder = "type to filter"
	ti.SetValue(opts.InitialSearch)
	ti.CursorEnd()
	ti.Focus()

	styles := DefaultStyles()
	if opts.Styles != nil {
		styles = *opts.Styles
	}

	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	m := Model{
		master:   master,
		texts:    texts,
		search:   ti,
		caseMode: opts.CaseMode,
		title:    opts.Title,
		styles:   styles,
	}
	m.resize(width, height)
	m.applyFilter()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.ensureVisible()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			m.quit = true
			return m, tea.Quit

		case "enter":
			m.confirmed = true
			if m.selected >= 0 {
				entry := m.filtered[m.selected].Entry
				m.choice = &entry
			}
			return m, tea.Quit

		case "up":
			m.moveBy(-1)
			return m, nil

		case "down":
			m.moveBy(1)
			return m, nil

		case "pgup":
			m.moveBy(-m.pageStep())
			return m, nil

		case "pgdown":
			m.moveBy(m.pageStep())
			return m, nil
		}
	}

	old := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != old {
		m.applyFilter()
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	rows := m.renderList()
	for _, row := range rows {
		b.WriteString(row)
		b.WriteString("\n")
	}

	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	title := m.title
	if title == "" {
		title = "hgrep"
	}
	line := runewidth.FillRight(runewidth.Truncate(" "+title, m.width, ellipsis), m.width)
	return m.styles.Header.Render(line)
}

func (m Model) renderFooter() string {
	counter := m.counter(len(m.filtered))
	return m.search.View() + m.styles.Counter.Render(counter)
}

func (m Model) counter(n int) string {
	return fmt.Sprintf(" %d/%d", n, len(m.master))
}

// renderList returns exactly listHeight rows.
func (m Model) renderList() []string {
	height := m.listHeight()
	rows := make([]string, 0, height)

	if len(m.filtered) == 0 {
		rows = append(rows, m.styles.Empty.Render(markerNormal+"no matching entries"))
	}

	for i := m.offset; i < len(m.filtered) && len(rows) < height; i++ {
		rows = append(rows, m.renderEntry(m.filtered[i].Entry, i == m.selected)...)
	}

	if len(rows) > height {
		rows = rows[:height]
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	return rows
}

// renderEntry renders one entry as "<time> <first line>" followed by its
// continuation lines indented under the first.
func (m Model) renderEntry(e history.Entry, selected bool) []string {
	prefix := e.LocalTime() + " "
	indent := strings.Repeat(" ", runewidth.StringWidth(prefix))
	avail := m.width - runewidth.StringWidth(markerNormal)
	if avail < 1 {
		avail = 1
	}

	out := make([]string, 0, len(e.Lines))
	for i, line := range e.Lines {
		lead := indent
		if i == 0 {
			lead = prefix
		}
		text := runewidth.Truncate(lead+displayText(line), avail, ellipsis)

		marker := markerNormal
		if selected && i == 0 {
			marker = m.styles.Marker.Render(markerSelected)
		}

		switch {
		case selected:
			text = m.styles.Selected.Render(runewidth.FillRight(text, avail))
		case i == 0:
			ts := runewidth.Truncate(prefix, avail, "")
			text = m.styles.Timestamp.Render(ts) + m.styles.Command.Render(strings.TrimPrefix(text, ts))
		default:
			text = m.styles.Command.Render(text)
		}
		out = append(out, marker+text)
	}
	return out
}

// displayText makes a command line safe to draw: tabs become spaces and
// other control characters are shown in caret notation, like ^[ for ESC.
func displayText(line string) string {
	var b strings.Builder
	for _, r := range line {
		switch {
		case r == '\t':
			b.WriteString("    ")
		case r < 0x20:
			b.WriteByte('^')
			b.WriteRune(r + '@')
		case r == 0x7f:
			b.WriteString("^?")
		case r >= 0x80 && r < 0xa0:
			fmt.Fprintf(&b, "\\x%02x", r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// applyFilter recomputes the filtered list from the search text and
// selects the most recent match.
func (m *Model) applyFilter() {
	includes := pattern.Words(m.search.Value(), m.caseMode)

	m.filtered = make([]history.Indexed, 0, len(m.master))
	for i, it := range m.master {
		if history.MatchText(m.texts[i], includes, nil) {
			m.filtered = append(m.filtered, it)
		}
	}

	m.selected = len(m.filtered) - 1
	m.anchorBottom()
}

func (m *Model) resize(width, height int) {
	m.width = max(1, width)
	m.height = max(chromeHeight+1, height)

	// The input draws Width columns plus one for the cursor, and the
	// counter is widest when every entry matches.
	promptWidth := runewidth.StringWidth(m.search.Prompt)
	counterWidth := runewidth.StringWidth(m.counter(len(m.master)))
	m.search.Width = max(1, m.width-promptWidth-counterWidth-1)
}

func (m Model) listHeight() int {
	return max(1, m.height-chromeHeight)
}

// pageStep is half the list height, at least one entry.
func (m Model) pageStep() int {
	return max(1, m.listHeight()/2)
}

func (m *Model) moveBy(delta int) {
	if len(m.filtered) == 0 {
		return
	}
	m.selected = clamp(m.selected+delta, 0, len(m.filtered)-1)
	m.ensureVisible()
}

// rows returns the number of terminal rows used by filtered[from..to].
func (m Model) rows(from, to int) int {
	n := 0
	for i := from; i <= to; i++ {
		n += len(m.filtered[i].Entry.Lines)
	}
	return n
}

// ensureVisible moves the offset the least amount needed to show the
// selected entry in full.
func (m *Model) ensureVisible() {
	if m.selected < 0 {
		m.offset = 0
		return
	}
	if m.selected < m.offset {
		m.offset = m.selected
	}
	height := m.listHeight()
	for m.offset < m.selected && m.rows(m.offset, m.selected) > height {
		m.offset++
	}
}

// anchorBottom places the selected entry at the bottom of the list and
// fills the space above it.
func (m *Model) anchorBottom() {
	if m.selected < 0 {
		m.offset = 0
		return
	}
	height := m.listHeight()
	m.offset = m.selected
	for m.offset > 0 && m.rows(m.offset-1, m.selected) <= height {
		m.offset--
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Filtered returns the entries currently shown.
func (m Model) Filtered() []history.Indexed {
	return m.filtered
}

// Master returns the exclude-filtered entries the picker searches.
func (m Model) Master() []history.Indexed {
	return m.master
}

// Selected returns the index of the highlighted entry in Filtered, or -1.
func (m Model) Selected() int {
	return m.selected
}

// Offset returns the index in Filtered of the first entry on screen.
func (m Model) Offset() int {
	return m.offset
}

// Search returns the current search text.
func (m Model) Search() string {
	return m.search.Value()
}

// Choice returns the entry picked with Enter, or nil.
func (m Model) Choice() *history.Entry {
	return m.choice
}

// DidQuit returns true if the user quit without selecting.
func (m Model) DidQuit() bool {
	return m.quit
}

// DidConfirm returns true if the user pressed Enter.
func (m Model) DidConfirm() bool {
	return m.confirmed
}
