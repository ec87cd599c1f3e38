package doc

import "fmt"

// ResolvedPos locates an absolute position in the tree.
type ResolvedPos struct {
	Pos int
	// Indices holds, for each depth, the index of the child at or after Pos.
	Indices []int
	// Parent is the innermost node whose content contains Pos.
	Parent *Node
	// ParentOffset is Pos relative to the start of Parent's content.
	ParentOffset int
}

// Depth returns how many nodes below the root Parent is.
func (r ResolvedPos) Depth() int {
	return len(r.Indices) - 1
}

// Position is a 1-based line and column as shown in the status bar.
// The line is the top-level block index.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("Ln %d, Col %d", p.Line, p.Column)
}

// Position converts r to a line and column.
func (r ResolvedPos) Position() Position {
	line := 1
	if len(r.Indices) > 0 {
		line = r.Indices[0] + 1
	}
	return Position{Line: line, Column: r.ParentOffset + 1}
}

// Resolve returns the structural location of pos.
func (d *Doc) Resolve(pos int) (ResolvedPos, error) {
	size := d.Size()
	if pos < 0 || pos > size {
		return ResolvedPos{}, fmt.Errorf("%w: position %d in document of size %d", ErrInvalidRange, pos, size)
	}

	res := ResolvedPos{Pos: pos}
	parent := d.root
	start := 0
	for {
		idx := len(parent.Content)
		var descend *Node
		off := start
		for i, c := range parent.Content {
			cEnd := off + c.Size()
			if pos == off {
				idx = i
				break
			}
			if pos < cEnd {
				idx = i
				if !c.IsLeaf() {
					descend = c
				}
				break
			}
			off = cEnd
		}
		res.Indices = append(res.Indices, idx)
		if descend == nil {
			res.Parent = parent
			res.ParentOffset = pos - start
			return res, nil
		}
		parent = descend
		start = off + 1
	}
}

// PositionOf is a shorthand for Resolve(pos).Position().
func (d *Doc) PositionOf(pos int) (Position, error) {
	r, err := d.Resolve(pos)
	if err != nil {
		return Position{}, err
	}
	return r.Position(), nil
}
