package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	tuiansi "github.com/interpretive-systems/jotfind/internal/tui/ansi"
)

// StatusBar manages the bottom status bar.
type StatusBar struct {
	position string
	words    int
	chars    int
	message  string
	dirty    bool
	flags    []string
}

// NewStatusBar creates a new status bar.
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetPosition updates the cursor location text, e.g. "Ln 2, Col 5".
func (s *StatusBar) SetPosition(pos string) {
	s.position = pos
}

// SetStats updates the document counts.
func (s *StatusBar) SetStats(words, chars int) {
	s.words = words
	s.chars = chars
}

// SetMessage shows a transient message such as a save result.
func (s *StatusBar) SetMessage(msg string) {
	s.message = msg
}

// SetDirty marks the document as having unsaved changes.
func (s *StatusBar) SetDirty(v bool) {
	s.dirty = v
}

// SetFlags sets the short search mode indicators.
func (s *StatusBar) SetFlags(flags ...string) {
	s.flags = flags
}

// Render renders the status bar.
func (s *StatusBar) Render(width int) string {
	left := []string{"?: help"}
	if s.position != "" {
		left = append(left, s.position)
	}
	if len(s.flags) > 0 {
		left = append(left, strings.Join(s.flags, " "))
	}
	if s.message != "" {
		left = append(left, s.message)
	}
	leftText := strings.Join(left, "  |  ")

	right := fmt.Sprintf("%d words  %d characters", s.words, s.chars)
	if s.dirty {
		right = "modified  " + right
	}

	faint := lipgloss.NewStyle().Faint(true)
	return tuiansi.SplitBar(faint.Render(leftText), faint.Render(right), width)
}
