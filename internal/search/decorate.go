package search

import (
	"iter"
	"sort"
)

// DefaultResultClass is the base class name given to match decorations.
const DefaultResultClass = "search-result"

// Decoration marks one match for highlighting.
type Decoration struct {
	Range   Range
	Current bool
}

// Class returns the style class for d given a base class name:
// "base" for ordinary matches, "base base-current" for the current one.
func (d Decoration) Class(base string) string {
	if base == "" {
		base = DefaultResultClass
	}
	if d.Current {
		return base + " " + base + "-current"
	}
	return base
}

// DecorationSet is an immutable, position-ordered set of decorations.
type DecorationSet struct {
	items   []Decoration
	current int
}

var emptySet = &DecorationSet{current: -1}

// EmptyDecorations returns the shared empty set.
func EmptyDecorations() *DecorationSet {
	return emptySet
}

// Decorate derives the decoration set for matches, marking index current.
func Decorate(matches []Range, current int) *DecorationSet {
	if len(matches) == 0 {
		return emptySet
	}
	set := &DecorationSet{items: make([]Decoration, len(matches)), current: -1}
	for i, r := range matches {
		set.items[i] = Decoration{Range: r, Current: i == current}
		if i == current {
			set.current = i
		}
	}
	return set
}

// Len returns the number of decorations.
func (s *DecorationSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// At returns the i-th decoration in position order.
func (s *DecorationSet) At(i int) Decoration {
	return s.items[i]
}

// All yields every decoration in position order.
func (s *DecorationSet) All() iter.Seq[Decoration] {
	return func(yield func(Decoration) bool) {
		if s == nil {
			return
		}
		for _, d := range s.items {
			if !yield(d) {
				return
			}
		}
	}
}

// Current returns the current decoration, if the set has one.
func (s *DecorationSet) Current() (Decoration, bool) {
	if s == nil || s.current < 0 {
		return Decoration{}, false
	}
	return s.items[s.current], true
}

// Between returns the decorations that intersect [from, to).
func (s *DecorationSet) Between(from, to int) []Decoration {
	if s.Len() == 0 || to <= from {
		return nil
	}
	span := Range{From: from, To: to}
	start := sort.Search(len(s.items), func(i int) bool {
		return s.items[i].Range.To > from
	})
	var out []Decoration
	for _, d := range s.items[start:] {
		if d.Range.From >= to {
			break
		}
		if d.Range.Overlaps(span) {
			out = append(out, d)
		}
	}
	return out
}

// Equal reports whether s and o hold the same decorations.
func (s *DecorationSet) Equal(o *DecorationSet) bool {
	if s.Len() != o.Len() {
		return false
	}
	for i := 0; i < s.Len(); i++ {
		if s.items[i] != o.items[i] {
			return false
		}
	}
	return true
}
