package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	tuiansi "github.com/interpretive-systems/jotfind/internal/tui/ansi"
)

// Match is one entry of the match list.
type Match struct {
	// Label locates the match, e.g. "Ln 3, Col 7".
	Label  string
	Before string
	Text   string
	After  string
}

// MatchList manages the right pane list of matches.
type MatchList struct {
	matches  []Match
	selected int
	offset   int
	style    lipgloss.Style
}

// NewMatchList creates a match list painting the matched text with style.
func NewMatchList(style lipgloss.Style) *MatchList {
	return &MatchList{style: style}
}

// SetMatches updates the list and the selected entry.
func (m *MatchList) SetMatches(matches []Match, selected int) {
	m.matches = matches
	m.selected = selected
	if m.selected >= len(matches) {
		m.selected = len(matches) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// Len returns the number of entries.
func (m *MatchList) Len() int {
	return len(m.matches)
}

// Selected returns the selected entry index.
func (m *MatchList) Selected() int {
	return m.selected
}

// EnsureVisible ensures the selected item is visible.
func (m *MatchList) EnsureVisible(visibleCount int) {
	if len(m.matches) == 0 || visibleCount <= 0 {
		m.offset = 0
		return
	}
	maxStart := max(len(m.matches)-visibleCount, 0)
	m.offset = min(max(m.offset, 0), maxStart)
	if m.selected < m.offset {
		m.offset = m.selected
	} else if m.selected >= m.offset+visibleCount {
		m.offset = m.selected - visibleCount + 1
	}
}

// Render renders the list to at most height lines of width columns.
func (m *MatchList) Render(height, width int) []string {
	lines := make([]string, 0, height)
	if len(m.matches) == 0 {
		return append(lines, lipgloss.NewStyle().Faint(true).Render("No matches"))
	}

	m.EnsureVisible(height)
	end := min(m.offset+height, len(m.matches))
	for i := m.offset; i < end; i++ {
		e := m.matches[i]
		marker := "  "
		if i == m.selected {
			marker = "> "
		}
		head := fmt.Sprintf("%s%s ", marker, e.Label)
		body := e.Before + m.style.Render(e.Text) + e.After
		lines = append(lines, tuiansi.PadExact(head+body, width))
	}
	return lines
}
