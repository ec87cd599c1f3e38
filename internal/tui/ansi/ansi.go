// Package ansi holds width-aware helpers for styled terminal strings.
package ansi

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// Strip removes all ANSI escape sequences from s.
func Strip(s string) string {
	return xansi.Strip(s)
}

// Width returns the number of terminal cells s occupies.
func Width(s string) int {
	return xansi.StringWidth(s)
}

// PadExact pads or truncates s to exactly w cells.
func PadExact(s string, w int) string {
	if w <= 0 {
		return ""
	}
	vw := Width(s)
	switch {
	case vw == w:
		return s
	case vw < w:
		return s + strings.Repeat(" ", w-vw)
	}
	return xansi.Truncate(s, w, "…")
}

// Truncate shortens s to w cells, ending it with an ellipsis when cut.
func Truncate(s string, w int) string {
	return xansi.Truncate(s, w, "…")
}

// Wrap breaks s into lines of at most width cells, preferring spaces and
// hard-breaking longer words. Styles carry across the breaks.
func Wrap(s string, width int) []string {
	if width <= 0 {
		return []string{""}
	}
	return strings.Split(xansi.Wrap(s, width, ""), "\n")
}

// SplitBar lays out left and right on one line of width cells. The right
// part stays visible; left is truncated or padded to fill the gap.
func SplitBar(left, right string, width int) string {
	rightW := Width(right)
	if rightW >= width {
		return Truncate(right, width)
	}
	avail := width - rightW - 1
	return PadExact(left, avail) + " " + right
}
