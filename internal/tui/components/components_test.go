package components

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	tuiansi "github.com/interpretive-systems/jotfind/internal/tui/ansi"
)

func TestStatus_Text(t *testing.T) {
	cases := []struct {
		st   Status
		want string
	}{
		{Status{}, "Type to search"},
		{Status{Term: "x"}, "No results found"},
		{Status{Term: "x", Count: 1}, "1 of 1 match"},
		{Status{Term: "x", Count: 3, Index: 2}, "3 of 3 matches"},
		{Status{Term: "(", Err: errors.New("bad")}, "invalid pattern: bad"},
	}
	for _, c := range cases {
		if got := c.st.Text(); got != c.want {
			t.Fatalf("%+v: got %q, want %q", c.st, got, c.want)
		}
	}
}

func TestSearchBar_ToggleReplaceMovesFocus(t *testing.T) {
	s := NewSearchBar()
	if s.Focused() != FieldSearch || s.ReplaceVisible() {
		t.Fatalf("unexpected initial state")
	}
	s.ToggleReplace()
	if s.Focused() != FieldReplace || !s.ReplaceVisible() {
		t.Fatalf("replace should be visible and focused")
	}
	if got := len(s.RenderOverlay(60, Status{})); got != 4 {
		t.Fatalf("overlay with replace has %d lines", got)
	}
	s.ToggleReplace()
	if s.Focused() != FieldSearch {
		t.Fatalf("focus should return to search")
	}
	s.FocusField(FieldReplace)
	if s.Focused() != FieldSearch {
		t.Fatalf("hidden replace field cannot take focus")
	}
}

func TestMatchList_RenderScrollsToSelection(t *testing.T) {
	ml := NewMatchList(lipgloss.NewStyle())
	var ms []Match
	for i := 0; i < 10; i++ {
		ms = append(ms, Match{Label: "Ln 1", Before: "a ", Text: "cat", After: " b"})
	}
	ml.SetMatches(ms, 7)
	lines := ml.Render(3, 30)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(tuiansi.Strip(lines[2]), "> Ln 1 a cat b") {
		t.Fatalf("selected entry should be last visible line: %q", lines)
	}
	ml.SetMatches(nil, 3)
	if got := tuiansi.Strip(ml.Render(3, 30)[0]); got != "No matches" {
		t.Fatalf("empty list = %q", got)
	}
}

func TestStatusBar_Render(t *testing.T) {
	sb := NewStatusBar()
	sb.SetPosition("Ln 2, Col 5")
	sb.SetStats(4, 18)
	sb.SetDirty(true)
	out := tuiansi.Strip(sb.Render(80))
	if !strings.Contains(out, "Ln 2, Col 5") || !strings.HasSuffix(out, "modified  4 words  18 characters") {
		t.Fatalf("status bar = %q", out)
	}
}
