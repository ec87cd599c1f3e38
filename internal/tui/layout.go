package tui

import (
	"strings"

	"github.com/interpretive-systems/jotfind/internal/theme"
	tuiansi "github.com/interpretive-systems/jotfind/internal/tui/ansi"
)

// minPane is the narrowest either column may become.
const minPane = 20

// Layout manages screen layout calculations.
type Layout struct {
	width     int
	height    int
	listWidth int
}

// NewLayout creates a new layout manager.
func NewLayout() *Layout {
	return &Layout{}
}

// SetSize updates the layout dimensions.
func (l *Layout) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// ListWidth returns the match list width. It defaults to a third of the
// screen.
func (l *Layout) ListWidth() int {
	w := l.listWidth
	if w == 0 {
		w = l.width / 3
	}
	return clampPane(w, l.width)
}

// DocWidth returns the document pane width. The list column and its divider
// are only taken when split is set.
func (l *Layout) DocWidth(split bool) int {
	if !split {
		return max(l.width, 1)
	}
	return max(l.width-l.ListWidth()-1, 1)
}

// ContentHeight returns the height available for content.
func (l *Layout) ContentHeight(overlayHeight int) int {
	// top bar + top rule + bottom rule + bottom bar + overlays
	return max(l.height-4-overlayHeight, 1)
}

// AdjustListWidth grows the match list by delta columns.
func (l *Layout) AdjustListWidth(delta int) {
	l.listWidth = clampPane(l.ListWidth()+delta, l.width)
}

func clampPane(w, total int) int {
	maxW := max(total-minPane-1, minPane)
	return min(max(w, minPane), maxW)
}

// RenderFrame renders the main frame with top bar, rules, and columns. A nil
// listLines draws the document across the full width.
func (l *Layout) RenderFrame(
	topLeft, topRight string,
	docLines, listLines []string,
	overlayLines []string,
	bottomBar string,
	th theme.Theme,
) string {
	var b strings.Builder

	// Row 1: Top bar
	b.WriteString(tuiansi.SplitBar(topLeft, topRight, l.width))
	b.WriteByte('\n')

	// Row 2: Horizontal rule
	b.WriteString(th.DividerText(strings.Repeat("─", l.width)))
	b.WriteByte('\n')

	// Row 3: Content columns
	split := listLines != nil
	docW := l.DocWidth(split)
	listW := l.ListWidth()
	sep := th.DividerText("│")

	contentHeight := l.ContentHeight(len(overlayLines))
	for i := range contentHeight {
		var left string
		if i < len(docLines) {
			left = docLines[i]
		}
		b.WriteString(tuiansi.PadExact(left, docW))
		if split {
			var right string
			if i < len(listLines) {
				right = listLines[i]
			}
			b.WriteString(sep)
			b.WriteString(tuiansi.PadExact(right, listW))
		}
		if i < contentHeight-1 {
			b.WriteByte('\n')
		}
	}

	// Optional overlay
	for _, line := range overlayLines {
		b.WriteByte('\n')
		b.WriteString(tuiansi.PadExact(line, l.width))
	}

	// Bottom rule and bar
	b.WriteByte('\n')
	b.WriteString(th.DividerText(strings.Repeat("─", l.width)))
	b.WriteByte('\n')
	b.WriteString(bottomBar)

	return b.String()
}
