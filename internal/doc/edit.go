package doc

import "fmt"

// insertText replaces the positions [from, to) of root with text. The range
// must sit inside one text block. The new text takes the marks of the text
// it replaces, or of the text before the insertion point for an empty range.
func insertText(root *Node, text string, from, to int) error {
	size := root.ContentSize()
	if from < 0 || to < from || to > size {
		return fmt.Errorf("%w: [%d,%d) in document of size %d", ErrInvalidRange, from, to, size)
	}

	for b := range textblocks(root) {
		if from < b.contentStart() || to > b.contentEnd() {
			continue
		}
		b.node.Content = spliceInline(b.node.Content, text, from-b.contentStart(), to-b.contentStart())
		return nil
	}
	return ErrCrossBlock
}

// spliceInline returns children with the relative span [a, b) replaced.
func spliceInline(children []*Node, text string, a, b int) []*Node {
	marks := marksAt(children, a, b)
	out := make([]*Node, 0, len(children)+2)
	inserted := false
	insert := func() {
		if inserted {
			return
		}
		inserted = true
		if text != "" {
			out = append(out, &Node{Type: TypeText, Text: text, Marks: cloneMarks(marks)})
		}
	}

	off := 0
	for _, c := range children {
		cStart := off
		cEnd := off + c.Size()
		off = cEnd

		switch {
		case cEnd <= a:
			out = append(out, c)
		case cStart >= b:
			insert()
			out = append(out, c)
		case c.IsText():
			rs := []rune(c.Text)
			if head := clamp(a-cStart, 0, len(rs)); head > 0 {
				out = append(out, &Node{Type: TypeText, Text: string(rs[:head]), Marks: c.Marks})
			}
			if b <= cEnd {
				insert()
				if tail := clamp(b-cStart, 0, len(rs)); tail < len(rs) {
					out = append(out, &Node{Type: TypeText, Text: string(rs[tail:]), Marks: c.Marks})
				}
			}
		default:
			// a leaf inside the replaced span is removed
		}
	}
	insert()
	return normalizeInline(out)
}

// marksAt picks the marks for text replacing [a, b).
func marksAt(children []*Node, a, b int) []Mark {
	var before, at []Mark
	var haveBefore, haveAt bool
	off := 0
	for _, c := range children {
		cStart := off
		cEnd := off + c.Size()
		off = cEnd
		if !c.IsText() {
			continue
		}
		if !haveAt && cStart <= a && a < cEnd {
			at, haveAt = c.Marks, true
		}
		if !haveBefore && cStart < a && a <= cEnd {
			before, haveBefore = c.Marks, true
		}
		if !haveAt && a < b && cStart > a && cStart < b {
			at, haveAt = c.Marks, true
		}
	}
	if a == b && haveBefore {
		return before
	}
	if haveAt {
		return at
	}
	return before
}

// normalizeInline drops empty text nodes and merges neighbours with equal
// marks.
func normalizeInline(nodes []*Node) []*Node {
	out := nodes[:0]
	for _, n := range nodes {
		if n.IsText() && n.Text == "" {
			continue
		}
		if len(out) > 0 {
			last := out[len(out)-1]
			if last.IsText() && n.IsText() && sameMarks(last.Marks, n.Marks) {
				out[len(out)-1] = &Node{Type: TypeText, Text: last.Text + n.Text, Marks: last.Marks}
				continue
			}
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
