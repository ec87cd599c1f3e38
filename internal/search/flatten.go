package search

import "strings"

// TextRun is a contiguous span of text starting at absolute position Pos.
type TextRun struct {
	Text string
	Pos  int
}

// Flatten walks t and returns its text runs in document order.
// Consecutive text leaves merge into one run, so formatting boundaries are
// invisible to matching. Any non-text node closes the current run.
func Flatten(t Tree) []TextRun {
	if t == nil {
		return nil
	}

	var (
		runs []TextRun
		b    strings.Builder
		pos  int
		open bool
	)
	flush := func() {
		if open && b.Len() > 0 {
			runs = append(runs, TextRun{Text: b.String(), Pos: pos})
		}
		b.Reset()
		open = false
	}

	for n, p := range t.Descendants() {
		if !n.IsText() {
			flush()
			continue
		}
		if !open {
			pos = p
			open = true
		}
		b.WriteString(n.TextContent())
	}
	flush()
	return runs
}
