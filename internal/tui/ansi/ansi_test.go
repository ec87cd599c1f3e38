package ansi

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestPadExact(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("abc")
	if got := Width(PadExact(styled, 6)); got != 6 {
		t.Fatalf("padded width = %d", got)
	}
	if got := Strip(PadExact("abcdef", 4)); got != "abc…" {
		t.Fatalf("truncated = %q", got)
	}
	if PadExact("x", 0) != "" {
		t.Fatalf("zero width should be empty")
	}
}

func TestWrap(t *testing.T) {
	lines := Wrap("the quick brown fox", 10)
	if len(lines) != 2 || strings.TrimSpace(Strip(lines[0])) != "the quick" {
		t.Fatalf("unexpected wrap %q", lines)
	}
	for _, l := range Wrap("abcdefghijklmnop", 5) {
		if Width(l) > 5 {
			t.Fatalf("line %q wider than 5", l)
		}
	}
}

func TestSplitBar(t *testing.T) {
	got := SplitBar("left", "right", 20)
	if Width(got) != 20 || Strip(got) != "left"+strings.Repeat(" ", 11)+"right" {
		t.Fatalf("bar = %q", got)
	}
	if got := SplitBar("left", "a very long right side", 8); Width(got) != 8 {
		t.Fatalf("narrow bar = %q", got)
	}
}
