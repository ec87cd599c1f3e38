package doc

import (
	"iter"
	"unicode/utf8"

	"github.com/interpretive-systems/jotfind/internal/search"
)

type frame struct {
	nodes []*Node
	i     int
	pos   int
}

// walkNodes visits nodes and their descendants depth-first, passing each
// node's absolute start position given that nodes[0] starts at base. It uses
// an explicit stack so nesting depth is bounded only by memory. It returns
// the position just past the last node, or -1 if yield stopped the walk.
func walkNodes(nodes []*Node, base int, yield func(n *Node, pos int) bool) int {
	stack := []frame{{nodes: nodes, pos: base}}
	for {
		top := &stack[len(stack)-1]
		if top.i >= len(top.nodes) {
			end := top.pos
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return end
			}
			// closing token of the parent
			stack[len(stack)-1].pos = end + 1
			continue
		}
		n := top.nodes[top.i]
		top.i++
		pos := top.pos
		if !yield(n, pos) {
			return -1
		}
		switch {
		case n.IsText():
			top.pos += utf8.RuneCountInString(n.Text)
		case n.IsLeaf():
			top.pos++
		default:
			stack = append(stack, frame{nodes: n.Content, pos: pos + 1})
		}
	}
}

// Walk yields every node below the root with its absolute position.
func (d *Doc) Walk() iter.Seq2[*Node, int] {
	root := d.root
	return func(yield func(*Node, int) bool) {
		walkNodes(root.Content, 0, yield)
	}
}

// Descendants implements search.Tree.
func (d *Doc) Descendants() iter.Seq2[search.Node, int] {
	return func(yield func(search.Node, int) bool) {
		for n, pos := range d.Walk() {
			if !yield(n, pos) {
				return
			}
		}
	}
}

// textblock is a block holding inline content, with its absolute position.
type textblock struct {
	node *Node
	pos  int
}

// contentStart returns the position of the block's first inline child.
func (b textblock) contentStart() int {
	return b.pos + 1
}

// contentEnd returns the position just past the block's last inline child.
func (b textblock) contentEnd() int {
	return b.pos + 1 + b.node.ContentSize()
}

// textblocks yields the text blocks below root in document order.
func textblocks(root *Node) iter.Seq[textblock] {
	return func(yield func(textblock) bool) {
		walkNodes(root.Content, 0, func(n *Node, pos int) bool {
			if !n.IsTextblock() {
				return true
			}
			return yield(textblock{node: n, pos: pos})
		})
	}
}
