package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by the picker.
type Styles struct {
	Header    lipgloss.Style
	Timestamp lipgloss.Style
	Command   lipgloss.Style
	Selected  lipgloss.Style
	Marker    lipgloss.Style
	Counter   lipgloss.Style
	Empty     lipgloss.Style
}

// DefaultStyles returns the default picker styles.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(true),
		Timestamp: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Command: lipgloss.NewStyle(),
		Selected: lipgloss.NewStyle().
			Reverse(true).
			Bold(true),
		Marker: lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true),
		Counter: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Empty: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true),
	}
}

// PlainStyles returns styles that render no escape sequences.
func PlainStyles() Styles {
	s := lipgloss.NewStyle()
	return Styles{
		Header:    s,
		Timestamp: s,
		Command:   s,
		Selected:  s,
		Marker:    s,
		Counter:   s,
		Empty:     s,
	}
}
