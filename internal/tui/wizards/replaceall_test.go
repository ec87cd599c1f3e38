package wizards

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/interpretive-systems/jotfind/internal/theme"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestReplaceAllWizard_PreviewAndConfirm(t *testing.T) {
	w := NewReplaceAllWizard(theme.Default())
	w.Init("cat", "dog", 2, "the cat\nsat\nthe cat", "the dog\nsat\nthe dog")

	plain := ansi.Strip(strings.Join(w.RenderOverlay(60), "\n"))
	if !strings.Contains(plain, `2× "cat" → "dog"`) {
		t.Fatalf("missing title: %q", plain)
	}
	if !strings.Contains(plain, "2 changed, 0 added, 0 removed") {
		t.Fatalf("missing summary: %q", plain)
	}
	if !strings.Contains(plain, "+ the dog") {
		t.Fatalf("missing preview row: %q", plain)
	}

	if a, _ := w.HandleKey(key("enter")); a != ActionConfirm {
		t.Fatalf("enter should confirm, got %v", a)
	}
	w.SetResult(errors.New("boom"))
	if w.IsComplete() || w.Error() != "boom" {
		t.Fatalf("error not recorded")
	}
	w.SetResult(nil)
	if !w.IsComplete() {
		t.Fatalf("expected complete")
	}
	if a, _ := w.HandleKey(key("esc")); a != ActionClose {
		t.Fatalf("esc should close, got %v", a)
	}
}

func TestReplaceAllWizard_NothingToReplace(t *testing.T) {
	w := NewReplaceAllWizard(theme.Default())
	w.Init("zzz", "y", 0, "text", "text")
	if a, _ := w.HandleKey(key("y")); a != ActionContinue || w.Error() == "" {
		t.Fatalf("confirm with no matches should be refused")
	}
}
