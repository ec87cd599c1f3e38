package search

import (
	"fmt"
	"iter"
)

// Range is a half-open span [From, To) of absolute document positions.
type Range struct {
	From int
	To   int
}

// Len returns the number of positions covered by r.
func (r Range) Len() int {
	return r.To - r.From
}

// Empty reports whether r covers no positions.
func (r Range) Empty() bool {
	return r.To <= r.From
}

// Overlaps reports whether r and o share at least one position.
func (r Range) Overlaps(o Range) bool {
	return r.From < o.To && o.From < r.To
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.From, r.To)
}

// Node is a document node as the engine sees it.
type Node interface {
	// IsText reports whether the node is a text-bearing leaf.
	IsText() bool
	// TextContent returns the text of a text leaf.
	TextContent() string
}

// Tree is the host's read-only view of a document.
type Tree interface {
	// Descendants yields every node below the root in document order
	// together with its absolute start position.
	Descendants() iter.Seq2[Node, int]
}

// Edit replaces the positions in [From, To) with Text.
type Edit struct {
	Text string
	From int
	To   int
}

// Range returns the span the edit overwrites.
func (e Edit) Range() Range {
	return Range{From: e.From, To: e.To}
}

// Transaction is an ordered batch of edits the host applies atomically.
// Each edit's positions refer to the document as left by the edits before it.
type Transaction struct {
	Label string
	Edits []Edit
}

// Dispatcher applies transactions to the host document.
type Dispatcher interface {
	Dispatch(tx Transaction) error
}

// DispatcherFunc adapts a function to the Dispatcher interface.
type DispatcherFunc func(tx Transaction) error

// Dispatch calls f(tx).
func (f DispatcherFunc) Dispatch(tx Transaction) error {
	return f(tx)
}
