// Package doc is a rich-text document tree addressed the way ProseMirror
// addresses it: entering or leaving a non-leaf node costs one position, a
// leaf inline node costs one, and text costs one position per rune.
package doc

import (
	"reflect"
	"unicode/utf8"
)

// Type names a node kind.
type Type string

// Node kinds written by the editor.
const (
	TypeDoc            Type = "doc"
	TypeParagraph      Type = "paragraph"
	TypeHeading        Type = "heading"
	TypeBlockquote     Type = "blockquote"
	TypeBulletList     Type = "bulletList"
	TypeOrderedList    Type = "orderedList"
	TypeListItem       Type = "listItem"
	TypeTaskList       Type = "taskList"
	TypeTaskItem       Type = "taskItem"
	TypeCodeBlock      Type = "codeBlock"
	TypeHorizontalRule Type = "horizontalRule"
	TypeHardBreak      Type = "hardBreak"
	TypeImage          Type = "image"
	TypeText           Type = "text"
)

// Mark kinds.
const (
	MarkBold      = "bold"
	MarkItalic    = "italic"
	MarkStrike    = "strike"
	MarkCode      = "code"
	MarkHighlight = "highlight"
)

// Mark is inline formatting attached to a text node.
type Mark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// Node is one element of the document tree. It uses the TipTap JSON shape.
type Node struct {
	Type    Type           `json:"type"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []*Node        `json:"content,omitempty"`
	Marks   []Mark         `json:"marks,omitempty"`
	Text    string         `json:"text,omitempty"`
}

// IsText reports whether n is a text leaf.
func (n *Node) IsText() bool {
	return n.Type == TypeText
}

// TextContent returns the text of a text leaf.
func (n *Node) TextContent() string {
	return n.Text
}

// IsLeaf reports whether n can have no content.
func (n *Node) IsLeaf() bool {
	switch n.Type {
	case TypeText, TypeHardBreak, TypeHorizontalRule, TypeImage:
		return true
	}
	return false
}

// IsTextblock reports whether n holds inline content directly.
func (n *Node) IsTextblock() bool {
	switch n.Type {
	case TypeParagraph, TypeHeading, TypeCodeBlock:
		return true
	}
	return false
}

// Size returns the number of positions n occupies.
func (n *Node) Size() int {
	switch {
	case n.IsText():
		return utf8.RuneCountInString(n.Text)
	case n.IsLeaf():
		return 1
	}
	return n.ContentSize() + 2
}

// ContentSize returns the number of positions inside n.
func (n *Node) ContentSize() int {
	if n.IsLeaf() {
		return 0
	}
	return walkNodes(n.Content, 0, func(*Node, int) bool { return true })
}

// Level returns the heading level, defaulting to 1.
func (n *Node) Level() int {
	switch v := n.Attrs["level"].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 1
}

// Checked reports whether a task item is ticked.
func (n *Node) Checked() bool {
	v, _ := n.Attrs["checked"].(bool)
	return v
}

// HasMark reports whether n carries a mark of type t.
func (n *Node) HasMark(t string) bool {
	for _, m := range n.Marks {
		if m.Type == t {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	type pair struct{ src, dst *Node }
	root := n.shallowClone()
	stack := []pair{{n, root}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p.src.Content == nil {
			continue
		}
		p.dst.Content = make([]*Node, len(p.src.Content))
		for i, child := range p.src.Content {
			if child == nil {
				continue
			}
			c := child.shallowClone()
			p.dst.Content[i] = c
			stack = append(stack, pair{child, c})
		}
	}
	return root
}

func (n *Node) shallowClone() *Node {
	return &Node{
		Type:  n.Type,
		Attrs: cloneAttrs(n.Attrs),
		Marks: cloneMarks(n.Marks),
		Text:  n.Text,
	}
}

func cloneAttrs(a map[string]any) map[string]any {
	if a == nil {
		return nil
	}
	out := make(map[string]any, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

func cloneMarks(ms []Mark) []Mark {
	if ms == nil {
		return nil
	}
	out := make([]Mark, len(ms))
	for i, m := range ms {
		out[i] = Mark{Type: m.Type, Attrs: cloneAttrs(m.Attrs)}
	}
	return out
}

func sameMarks(a, b []Mark) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Type != b[i].Type {
			return false
		}
		if len(a[i].Attrs) != 0 || len(b[i].Attrs) != 0 {
			if !reflect.DeepEqual(a[i].Attrs, b[i].Attrs) {
				return false
			}
		}
	}
	return true
}

// NewDoc returns a document root holding blocks.
func NewDoc(blocks ...*Node) *Node {
	return &Node{Type: TypeDoc, Content: blocks}
}

// NewParagraph returns a paragraph holding inline nodes.
func NewParagraph(inline ...*Node) *Node {
	return &Node{Type: TypeParagraph, Content: inline}
}

// NewHeading returns a heading of the given level.
func NewHeading(level int, inline ...*Node) *Node {
	return &Node{Type: TypeHeading, Attrs: map[string]any{"level": level}, Content: inline}
}

// NewText returns a text leaf with optional marks.
func NewText(s string, marks ...string) *Node {
	n := &Node{Type: TypeText, Text: s}
	for _, m := range marks {
		n.Marks = append(n.Marks, Mark{Type: m})
	}
	return n
}

// NewHardBreak returns a line break leaf.
func NewHardBreak() *Node {
	return &Node{Type: TypeHardBreak}
}

// NewList returns a bullet list whose items each hold one paragraph.
func NewList(items ...*Node) *Node {
	list := &Node{Type: TypeBulletList}
	for _, p := range items {
		list.Content = append(list.Content, &Node{Type: TypeListItem, Content: []*Node{p}})
	}
	return list
}
