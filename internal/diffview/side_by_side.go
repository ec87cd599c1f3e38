// Package diffview builds side-by-side rows comparing a document before and
// after a replacement.
package diffview

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// RowKind represents the semantic type of a side-by-side row.
type RowKind int

const (
	RowContext RowKind = iota
	RowAdd
	RowDel
	RowReplace
	RowHunk
)

// Row represents a single visual row for side-by-side rendering.
type Row struct {
	Left  string
	Right string
	Kind  RowKind
	Meta  string // for hunk header text
	// LeftLine and RightLine are 1-based line numbers, 0 when absent.
	LeftLine  int
	RightLine int
}

type lineOp struct {
	op   diffmatchpatch.Operation
	text string
}

// BuildRows compares before and after line by line. Unchanged lines further
// than context from a change collapse into a RowHunk header. Deletions are
// paired with the additions that follow them as replacements; any remaining
// lines are shown as left-only or right-only.
func BuildRows(before, after string, context int) []Row {
	if before == after {
		return nil
	}
	// A missing final newline would make the last line differ.
	before, after = withNewline(before), withNewline(after)
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var ops []lineOp
	for _, d := range diffs {
		for _, l := range splitLines(d.Text) {
			ops = append(ops, lineOp{op: d.Type, text: l})
		}
	}

	all := make([]Row, 0, len(ops))
	pendingDel := make([]string, 0)
	left, right := 0, 0
	flushPending := func() {
		for _, dl := range pendingDel {
			left++
			all = append(all, Row{Left: dl, Kind: RowDel, LeftLine: left})
		}
		pendingDel = pendingDel[:0]
	}
	for _, o := range ops {
		switch o.op {
		case diffmatchpatch.DiffEqual:
			flushPending()
			left++
			right++
			all = append(all, Row{Left: o.text, Right: o.text, Kind: RowContext, LeftLine: left, RightLine: right})
		case diffmatchpatch.DiffDelete:
			pendingDel = append(pendingDel, o.text)
		case diffmatchpatch.DiffInsert:
			right++
			if len(pendingDel) > 0 {
				dl := pendingDel[0]
				pendingDel = pendingDel[1:]
				left++
				all = append(all, Row{Left: dl, Right: o.text, Kind: RowReplace, LeftLine: left, RightLine: right})
			} else {
				all = append(all, Row{Right: o.text, Kind: RowAdd, RightLine: right})
			}
		}
	}
	flushPending()
	return collapse(all, context)
}

// collapse keeps context rows within n of a change and replaces each run of
// the others with a hunk header naming where the next kept row starts.
func collapse(rows []Row, n int) []Row {
	if n < 0 {
		return rows
	}
	keep := make([]bool, len(rows))
	for i, r := range rows {
		if r.Kind == RowContext {
			continue
		}
		for j := max(0, i-n); j <= min(len(rows)-1, i+n); j++ {
			keep[j] = true
		}
	}
	out := make([]Row, 0, len(rows))
	skipped := false
	for i, r := range rows {
		if !keep[i] {
			skipped = true
			continue
		}
		if skipped {
			out = append(out, Row{Kind: RowHunk, Meta: fmt.Sprintf("@@ -%d +%d @@", startLine(r.LeftLine, rows, i), startLine(r.RightLine, rows, i))})
			skipped = false
		}
		out = append(out, r)
	}
	return out
}

// startLine returns line, or the line number the row at i would have had on a
// side where it is absent.
func startLine(line int, rows []Row, i int) int {
	if line > 0 {
		return line
	}
	for j := i - 1; j >= 0; j-- {
		if rows[j].LeftLine > 0 && rows[j].RightLine > 0 {
			return max(rows[j].LeftLine, rows[j].RightLine) + 1
		}
	}
	return 1
}

func withNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

// Segment is a piece of a line, marked when it differs from the other side.
type Segment struct {
	Text    string
	Changed bool
}

// Segments splits the two sides of a replace row into equal and changed
// pieces so the changed words can be highlighted.
func Segments(left, right string) (l, r []Segment) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(left, right, false))
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			l = append(l, Segment{Text: d.Text})
			r = append(r, Segment{Text: d.Text})
		case diffmatchpatch.DiffDelete:
			l = append(l, Segment{Text: d.Text, Changed: true})
		case diffmatchpatch.DiffInsert:
			r = append(r, Segment{Text: d.Text, Changed: true})
		}
	}
	return l, r
}

// Summary counts changed rows.
type Summary struct {
	Added    int
	Deleted  int
	Replaced int
}

// Summarize counts the change rows in rows.
func Summarize(rows []Row) Summary {
	var s Summary
	for _, r := range rows {
		switch r.Kind {
		case RowAdd:
			s.Added++
		case RowDel:
			s.Deleted++
		case RowReplace:
			s.Replaced++
		}
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("%d changed, %d added, %d removed", s.Replaced, s.Added, s.Deleted)
}
