package search

// State is the complete search state of one editing session.
// Transitions are value methods; each returns the next State and leaves the
// receiver untouched. Matches is never modified in place.
type State struct {
	Term          string
	CaseSensitive bool
	Mode          Mode
	Replacement   string
	Matches       []Range
	Index         int

	memo memo
	err  error
}

// memo records the inputs that produced the cached decorations.
type memo struct {
	valid         bool
	term          string
	caseSensitive bool
	mode          Mode
	index         int
	decorations   *DecorationSet
}

// Query returns the search described by s.
func (s State) Query() Query {
	return Query{Term: s.Term, CaseSensitive: s.CaseSensitive, Mode: s.Mode}
}

// Idle reports whether no search is active.
func (s State) Idle() bool {
	return s.Term == ""
}

// Current returns the current match, if any.
func (s State) Current() (Range, bool) {
	if len(s.Matches) == 0 || s.Index < 0 || s.Index >= len(s.Matches) {
		return Range{}, false
	}
	return s.Matches[s.Index], true
}

// WithTerm sets the search term.
func (s State) WithTerm(term string) State {
	s.Term = term
	return s
}

// WithReplacement sets the replacement term.
func (s State) WithReplacement(r string) State {
	s.Replacement = r
	return s
}

// WithCaseSensitive sets the case mode.
func (s State) WithCaseSensitive(v bool) State {
	s.CaseSensitive = v
	return s
}

// WithMode sets the search mode.
func (s State) WithMode(m Mode) State {
	s.Mode = m
	return s
}

// ResetIndex moves the current index back to the first match.
func (s State) ResetIndex() State {
	s.Index = 0
	return s
}

// Next advances the current index, wrapping after the last match.
func (s State) Next() State {
	n := len(s.Matches)
	if n == 0 {
		return s
	}
	s.Index = (s.Index + 1) % n
	return s
}

// Previous moves the current index back, wrapping before the first match.
func (s State) Previous() State {
	n := len(s.Matches)
	if n == 0 {
		return s
	}
	s.Index = ((s.Index-1)%n + n) % n
	return s
}

// stale reports whether the matches must be recomputed.
func (s State) stale(docChanged bool) bool {
	return docChanged ||
		!s.memo.valid ||
		s.memo.term != s.Term ||
		s.memo.caseSensitive != s.CaseSensitive ||
		s.memo.mode != s.Mode
}

// Refresh brings the match list and decorations up to date with the
// document. It does no work when neither the document nor any memoized
// input changed, and only re-decorates when just the index moved.
func (s State) Refresh(t Tree, docChanged bool) State {
	if !s.stale(docChanged) {
		if s.memo.index == s.Index {
			return s
		}
		s.memo.index = s.Index
		s.memo.decorations = Decorate(s.Matches, s.Index)
		return s
	}

	s.err = nil
	s.Matches = nil
	if s.Term != "" {
		re, err := Compile(s.Query())
		if err != nil {
			s.err = err
		} else {
			s.Matches = MatchRegexp(Flatten(t), re)
		}
	}
	if s.Index < 0 || (len(s.Matches) > 0 && s.Index >= len(s.Matches)) {
		s.Index = 0
	}

	s.memo = memo{
		valid:         true,
		term:          s.Term,
		caseSensitive: s.CaseSensitive,
		mode:          s.Mode,
		index:         s.Index,
		decorations:   Decorate(s.Matches, s.Index),
	}
	return s
}

// Decorations returns the decorations computed by the last Refresh.
func (s State) Decorations() *DecorationSet {
	if s.memo.decorations == nil {
		return emptySet
	}
	return s.memo.decorations
}

// Err returns the pattern compile error from the last Refresh, if any.
func (s State) Err() error {
	return s.err
}
