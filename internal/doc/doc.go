package doc

import (
	"errors"
	"fmt"

	"github.com/interpretive-systems/jotfind/internal/search"
)

var (
	// ErrInvalidRange is returned for positions outside the document.
	ErrInvalidRange = errors.New("doc: invalid range")
	// ErrCrossBlock is returned when an edit spans more than one text block.
	ErrCrossBlock = errors.New("doc: range does not lie within a single text block")
	// ErrNothingToUndo is returned by Undo on an empty history.
	ErrNothingToUndo = errors.New("doc: nothing to undo")
	// ErrNotDocument is returned when a root node is not of type doc.
	ErrNotDocument = errors.New("doc: root node is not a document")
)

// maxUndo bounds the undo history.
const maxUndo = 200

// Change describes one committed modification.
type Change struct {
	Label   string
	Version int
	Undo    bool
	Reload  bool
}

type undoStep struct {
	label string
	root  *Node
}

// Doc is an editable document. It is not safe for concurrent use.
type Doc struct {
	root      *Node
	history   []undoStep
	listeners map[int]func(Change)
	nextID    int
	version   int
}

// New wraps root in a Doc. A nil root yields an empty document.
func New(root *Node) (*Doc, error) {
	if root == nil {
		root = NewDoc()
	}
	if root.Type != TypeDoc {
		return nil, fmt.Errorf("%w: got %q", ErrNotDocument, root.Type)
	}
	return &Doc{root: root, listeners: map[int]func(Change){}}, nil
}

// Root returns the root node. Callers must not modify it.
func (d *Doc) Root() *Node {
	return d.root
}

// Size returns the content size of the document.
func (d *Doc) Size() int {
	return d.root.ContentSize()
}

// Version counts committed changes.
func (d *Doc) Version() int {
	return d.version
}

// OnChange registers fn to run after every committed change and returns a
// function that unregisters it.
func (d *Doc) OnChange(fn func(Change)) func() {
	id := d.nextID
	d.nextID++
	d.listeners[id] = fn
	return func() { delete(d.listeners, id) }
}

// Dispatch applies every edit of tx in order as one step. Either all edits
// commit, followed by a single change notification, or none do.
func (d *Doc) Dispatch(tx search.Transaction) error {
	if len(tx.Edits) == 0 {
		return nil
	}
	work := d.root.Clone()
	for i, e := range tx.Edits {
		if err := insertText(work, e.Text, e.From, e.To); err != nil {
			return fmt.Errorf("edit %d of %q %v: %w", i, tx.Label, e.Range(), err)
		}
	}
	d.pushUndo(tx.Label)
	d.root = work
	d.commit(Change{Label: tx.Label})
	return nil
}

// CanUndo reports whether Undo has a step to revert.
func (d *Doc) CanUndo() bool {
	return len(d.history) > 0
}

// Undo reverts the most recent transaction.
func (d *Doc) Undo() error {
	if len(d.history) == 0 {
		return ErrNothingToUndo
	}
	step := d.history[len(d.history)-1]
	d.history = d.history[:len(d.history)-1]
	d.root = step.root
	d.commit(Change{Label: step.label, Undo: true})
	return nil
}

// Reload swaps in new content, e.g. after the file changed on disk.
// History is discarded since its steps no longer apply.
func (d *Doc) Reload(root *Node) error {
	if root == nil || root.Type != TypeDoc {
		return ErrNotDocument
	}
	d.root = root
	d.history = nil
	d.commit(Change{Label: "reload", Reload: true})
	return nil
}

func (d *Doc) pushUndo(label string) {
	d.history = append(d.history, undoStep{label: label, root: d.root})
	if len(d.history) > maxUndo {
		d.history = d.history[len(d.history)-maxUndo:]
	}
}

func (d *Doc) commit(c Change) {
	d.version++
	c.Version = d.version
	for _, fn := range d.listeners {
		fn(c)
	}
}
