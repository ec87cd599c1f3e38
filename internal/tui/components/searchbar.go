package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	tuiansi "github.com/interpretive-systems/jotfind/internal/tui/ansi"
)

// Field names the input that has focus.
type Field int

const (
	FieldSearch Field = iota
	FieldReplace
)

// SearchBar holds the search and replace inputs.
type SearchBar struct {
	search      textinput.Model
	replace     textinput.Model
	showReplace bool
	focus       Field
}

// NewSearchBar creates a search bar with the search input focused.
func NewSearchBar() *SearchBar {
	si := textinput.New()
	si.Placeholder = "Search"
	si.Prompt = "/ "
	si.CharLimit = 0
	si.Focus()

	ri := textinput.New()
	ri.Placeholder = "Replace with"
	ri.Prompt = "→ "
	ri.CharLimit = 0

	return &SearchBar{search: si, replace: ri}
}

// SearchTerm returns the search input value.
func (s *SearchBar) SearchTerm() string {
	return s.search.Value()
}

// ReplaceTerm returns the replace input value.
func (s *SearchBar) ReplaceTerm() string {
	return s.replace.Value()
}

// SetSearchTerm sets the search input value.
func (s *SearchBar) SetSearchTerm(v string) {
	s.search.SetValue(v)
}

// SetReplaceTerm sets the replace input value.
func (s *SearchBar) SetReplaceTerm(v string) {
	s.replace.SetValue(v)
}

// ReplaceVisible reports whether the replace input is shown.
func (s *SearchBar) ReplaceVisible() bool {
	return s.showReplace
}

// Focused returns the input that has focus.
func (s *SearchBar) Focused() Field {
	return s.focus
}

// ToggleReplace shows or hides the replace input. Showing it moves focus
// there; hiding it returns focus to the search input.
func (s *SearchBar) ToggleReplace() {
	s.showReplace = !s.showReplace
	if s.showReplace {
		s.FocusField(FieldReplace)
	} else {
		s.FocusField(FieldSearch)
	}
}

// FocusField moves focus to f.
func (s *SearchBar) FocusField(f Field) {
	if f == FieldReplace && !s.showReplace {
		f = FieldSearch
	}
	s.focus = f
	if f == FieldSearch {
		s.search.Focus()
		s.replace.Blur()
	} else {
		s.replace.Focus()
		s.search.Blur()
	}
}

// Update forwards key input to the focused field.
func (s *SearchBar) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if s.focus == FieldReplace {
		s.replace, cmd = s.replace.Update(msg)
	} else {
		s.search, cmd = s.search.Update(msg)
	}
	return cmd
}

// Status describes the result line under the inputs.
type Status struct {
	Term    string
	Count   int
	Index   int
	Err     error
	Flags   string
	Divider string
}

// Text returns the status line: "i of n matches", "No results found" or the
// pattern error.
func (st Status) Text() string {
	switch {
	case st.Err != nil:
		return "invalid pattern: " + st.Err.Error()
	case st.Term == "":
		return "Type to search"
	case st.Count == 0:
		return "No results found"
	}
	noun := "matches"
	if st.Count == 1 {
		noun = "match"
	}
	return fmt.Sprintf("%d of %d %s", st.Index+1, st.Count, noun)
}

// RenderOverlay renders the search overlay lines.
func (s *SearchBar) RenderOverlay(width int, st Status) []string {
	if width <= 0 {
		return nil
	}
	lines := make([]string, 0, 4)
	divider := lipgloss.NewStyle().Foreground(lipgloss.Color(st.Divider)).Render(strings.Repeat("─", width))
	lines = append(lines, divider)
	lines = append(lines, tuiansi.PadExact(s.search.View(), width))
	if s.showReplace {
		lines = append(lines, tuiansi.PadExact(s.replace.View(), width))
	}

	text := st.Text()
	if st.Flags != "" {
		text += "   " + st.Flags
	}
	hint := "enter/↓: next  ↑: prev  ctrl+r: replace  esc: close"
	if s.showReplace {
		hint = "ctrl+o: replace  ctrl+a: replace all  tab: switch  esc: close"
	}
	status := tuiansi.SplitBar(lipgloss.NewStyle().Faint(true).Render(text), lipgloss.NewStyle().Faint(true).Render(hint), width)
	lines = append(lines, status)
	return lines
}
