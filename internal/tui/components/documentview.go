package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
)

// DocumentView manages the left pane document viewer.
type DocumentView struct {
	viewport viewport.Model
	lines    []string
}

// NewDocumentView creates an empty document viewer.
func NewDocumentView() *DocumentView {
	return &DocumentView{viewport: viewport.New(0, 0)}
}

// SetSize updates the viewport dimensions.
func (d *DocumentView) SetSize(width, height int) {
	d.viewport.Width = width
	d.viewport.Height = height
}

// SetLines replaces the rendered document. When focus is a valid line the
// view scrolls just enough to show it with some context above.
func (d *DocumentView) SetLines(lines []string, focus int) {
	d.lines = lines
	d.viewport.SetContent(strings.Join(lines, "\n"))
	if focus < 0 || focus >= len(lines) {
		return
	}
	h := d.viewport.Height
	top := d.viewport.YOffset
	if focus < top || focus >= top+h {
		d.viewport.SetYOffset(max(focus-h/3, 0))
	}
}

// View returns the viewport view.
func (d *DocumentView) View() string {
	return d.viewport.View()
}

// Viewport returns the underlying viewport for direct manipulation.
func (d *DocumentView) Viewport() *viewport.Model {
	return &d.viewport
}
