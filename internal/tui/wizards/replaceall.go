package wizards

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/interpretive-systems/jotfind/internal/diffview"
	"github.com/interpretive-systems/jotfind/internal/theme"
	tuiansi "github.com/interpretive-systems/jotfind/internal/tui/ansi"
)

// previewRows bounds how many diff rows the dialog shows at once.
const previewRows = 8

// ReplaceAllWizard asks for confirmation before a replace all and previews
// the lines it will change.
type ReplaceAllWizard struct {
	theme       theme.Theme
	term        string
	replacement string
	count       int
	rows        []diffview.Row
	offset      int
	err         string
	done        bool
}

// NewReplaceAllWizard creates the dialog.
func NewReplaceAllWizard(th theme.Theme) *ReplaceAllWizard {
	return &ReplaceAllWizard{theme: th}
}

// Init loads the preview of replacing count matches of term, given the
// document text before and after the change.
func (w *ReplaceAllWizard) Init(term, replacement string, count int, before, after string) {
	w.term = term
	w.replacement = replacement
	w.count = count
	w.rows = diffview.BuildRows(before, after, 1)
	w.offset = 0
	w.err = ""
	w.done = false
}

// SetResult records the outcome of the confirmed replace all.
func (w *ReplaceAllWizard) SetResult(err error) {
	if err != nil {
		w.err = err.Error()
		w.done = false
		return
	}
	w.err = ""
	w.done = true
}

func (w *ReplaceAllWizard) HandleKey(msg tea.KeyMsg) (Action, tea.Cmd) {
	switch msg.String() {
	case "esc", "n":
		return ActionClose, nil
	case "y", "enter":
		if w.count == 0 {
			w.err = "nothing to replace"
			return ActionContinue, nil
		}
		return ActionConfirm, nil
	case "j", "down":
		if w.offset < len(w.rows)-previewRows {
			w.offset++
		}
	case "k", "up":
		if w.offset > 0 {
			w.offset--
		}
	}
	return ActionContinue, nil
}

// RenderOverlay renders the wizard UI.
func (w *ReplaceAllWizard) RenderOverlay(width int) []string {
	lines := make([]string, 0, previewRows+4)
	lines = append(lines, w.theme.DividerText(strings.Repeat("─", width)))

	title := lipgloss.NewStyle().Bold(true).
		Render(fmt.Sprintf("Replace all — %d× %q → %q (y/enter: replace, j/k: scroll, esc: cancel)", w.count, w.term, w.replacement))
	lines = append(lines, title)
	lines = append(lines, lipgloss.NewStyle().Faint(true).Render(diffview.Summarize(w.rows).String()))

	end := min(w.offset+previewRows, len(w.rows))
	for _, r := range w.rows[w.offset:end] {
		lines = append(lines, w.renderRow(r, width))
	}

	if w.err != "" {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(lipgloss.Color(w.theme.DelColor)).
			Render("Error: ")+w.err)
	}
	return lines
}

// renderRow draws a row side by side with the changed words emphasized.
func (w *ReplaceAllWizard) renderRow(r diffview.Row, width int) string {
	if r.Kind == diffview.RowHunk {
		return lipgloss.NewStyle().Faint(true).Render(strings.Repeat("·", width))
	}
	colW := max((width-1)/2, 4)
	var left, right string
	switch r.Kind {
	case diffview.RowReplace:
		ls, rs := diffview.Segments(r.Left, r.Right)
		left = w.theme.DelText("- ") + paint(ls, w.theme.DelText)
		right = w.theme.AddText("+ ") + paint(rs, w.theme.AddText)
	case diffview.RowDel:
		left = w.theme.DelText("- " + r.Left)
	case diffview.RowAdd:
		right = w.theme.AddText("+ " + r.Right)
	default:
		left, right = "  "+r.Left, "  "+r.Right
	}
	mid := w.theme.DividerText("│")
	return tuiansi.PadExact(left, colW) + mid + tuiansi.PadExact(right, colW)
}

func paint(segs []diffview.Segment, color func(string) string) string {
	var b strings.Builder
	for _, s := range segs {
		if s.Changed {
			b.WriteString(lipgloss.NewStyle().Bold(true).Underline(true).Render(color(s.Text)))
		} else {
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

func (w *ReplaceAllWizard) IsComplete() bool {
	return w.done
}

func (w *ReplaceAllWizard) Error() string {
	return w.err
}
