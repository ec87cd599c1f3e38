package doc

import (
	"strings"
	"unicode/utf8"
)

// TextBetween returns the text in [from, to). blockSep is written between
// text blocks and leafText stands in for each leaf inline node.
func (d *Doc) TextBetween(from, to int, blockSep, leafText string) string {
	var b strings.Builder
	first := true
	walkNodes(d.root.Content, 0, func(n *Node, pos int) bool {
		if pos >= to {
			return false
		}
		switch {
		case n.IsText():
			rs := []rune(n.Text)
			end := pos + len(rs)
			if end <= from {
				return true
			}
			lo := clamp(from-pos, 0, len(rs))
			hi := clamp(to-pos, 0, len(rs))
			b.WriteString(string(rs[lo:hi]))
			first = false
		case n.IsLeaf():
			if pos >= from {
				b.WriteString(leafText)
				first = false
			}
		case n.IsTextblock():
			if pos+n.Size() <= from {
				return true
			}
			if !first && blockSep != "" {
				b.WriteString(blockSep)
			}
			first = false
		}
		return true
	})
	return b.String()
}

// Text returns the document text with blocks separated by newlines.
func (d *Doc) Text() string {
	return d.TextBetween(0, d.Size(), "\n", "\n")
}

// Stats counts characters and words the way the editor's status bar did.
type Stats struct {
	Characters int
	Words      int
}

// Stats returns the character and word counts of the document.
func (d *Doc) Stats() Stats {
	size := d.Size()
	chars := d.TextBetween(0, size, "", " ")
	words := 0
	for _, w := range strings.Split(d.TextBetween(0, size, " ", " "), " ") {
		if w != "" {
			words++
		}
	}
	return Stats{Characters: utf8.RuneCountInString(chars), Words: words}
}
