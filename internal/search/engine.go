// Package search finds, highlights and replaces text in a structured
// rich-text document supplied by a host editor.
package search

import (
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for debug tracing.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithMode sets the initial search mode.
func WithMode(m Mode) Option {
	return func(e *Engine) {
		e.state.Mode = m
	}
}

// WithCaseSensitive sets the initial case mode.
func WithCaseSensitive(v bool) Option {
	return func(e *Engine) {
		e.state.CaseSensitive = v
	}
}

// Engine manages search state and operations for one document session.
// It is not safe for concurrent use.
type Engine struct {
	tree       Tree
	dispatcher Dispatcher
	state      State
	docChanged bool
	log        *zap.Logger
}

// New creates an idle engine over tree. Edits produced by the replace
// commands are sent to d.
func New(tree Tree, d Dispatcher, opts ...Option) *Engine {
	e := &Engine{
		tree:       tree,
		dispatcher: d,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetSearchTerm updates the term. An empty term makes the engine idle.
func (e *Engine) SetSearchTerm(term string) {
	e.state = e.state.WithTerm(term)
}

// SetReplaceTerm updates the replacement term.
func (e *Engine) SetReplaceTerm(term string) {
	e.state = e.state.WithReplacement(term)
}

// SetCaseSensitive updates the case mode.
func (e *Engine) SetCaseSensitive(v bool) {
	e.state = e.state.WithCaseSensitive(v)
}

// SetMode switches between literal and pattern matching.
func (e *Engine) SetMode(m Mode) {
	e.state = e.state.WithMode(m)
}

// ResetIndex makes the first match current.
func (e *Engine) ResetIndex() {
	e.state = e.state.ResetIndex()
}

// Next advances to the next match.
func (e *Engine) Next() {
	e.refresh()
	e.state = e.state.Next()
}

// Previous moves to the previous match.
func (e *Engine) Previous() {
	e.refresh()
	e.state = e.state.Previous()
}

// DocumentChanged tells the engine the document was edited.
// Hosts call it once per committed transaction.
func (e *Engine) DocumentChanged() {
	e.docChanged = true
	e.refresh()
}

// Replace overwrites the first match with the replacement term.
// It does nothing when there are no matches or the replacement is empty.
// The match list is refreshed by the host's change notification, not here.
func (e *Engine) Replace() error {
	e.refresh()
	tx, ok := PlanReplace(e.state.Matches, e.state.Replacement)
	if !ok {
		return nil
	}
	e.log.Debug("dispatch replace",
		zap.Int("from", tx.Edits[0].From),
		zap.Int("to", tx.Edits[0].To))
	if err := e.dispatcher.Dispatch(tx); err != nil {
		return fmt.Errorf("search: replace: %w", err)
	}
	return nil
}

// ReplaceAll overwrites every match with the replacement term in a single
// transaction and returns the number of edits dispatched.
func (e *Engine) ReplaceAll() (int, error) {
	e.refresh()
	tx, ok := PlanReplaceAll(e.state.Matches, e.state.Replacement)
	if !ok {
		return 0, nil
	}
	e.log.Debug("dispatch replace all", zap.Int("edits", len(tx.Edits)))
	if err := e.dispatcher.Dispatch(tx); err != nil {
		return 0, fmt.Errorf("search: replace all: %w", err)
	}
	return len(tx.Edits), nil
}

// Matches returns a copy of the current match list.
func (e *Engine) Matches() []Range {
	e.refresh()
	out := make([]Range, len(e.state.Matches))
	copy(out, e.state.Matches)
	return out
}

// MatchCount returns the number of matches.
func (e *Engine) MatchCount() int {
	e.refresh()
	return len(e.state.Matches)
}

// Index returns the current match index (0 when there are no matches).
func (e *Engine) Index() int {
	e.refresh()
	if len(e.state.Matches) == 0 {
		return 0
	}
	return e.state.Index
}

// Current returns the current match.
func (e *Engine) Current() (Range, bool) {
	e.refresh()
	return e.state.Current()
}

// Decorations returns the highlight overlay for the current state.
// The same set is returned until something it depends on changes.
func (e *Engine) Decorations() *DecorationSet {
	e.refresh()
	return e.state.Decorations()
}

// State returns a snapshot of the engine state. The snapshot owns its match
// slice; changing it leaves the engine alone.
func (e *Engine) State() State {
	e.refresh()
	st := e.state
	st.Matches = slices.Clone(st.Matches)
	return st
}

// PatternErr returns the compile error of the current term, if any.
// Commands never fail because of it; an invalid pattern simply has no matches.
func (e *Engine) PatternErr() error {
	e.refresh()
	return e.state.Err()
}

func (e *Engine) refresh() {
	changed := e.docChanged
	e.docChanged = false
	if ce := e.log.Check(zap.DebugLevel, "recompute matches"); ce != nil && e.state.stale(changed) {
		next := e.state.Refresh(e.tree, changed)
		ce.Write(
			zap.String("term", next.Term),
			zap.Bool("caseSensitive", next.CaseSensitive),
			zap.Stringer("mode", next.Mode),
			zap.Bool("docChanged", changed),
			zap.Int("matches", len(next.Matches)))
		e.state = next
		return
	}
	e.state = e.state.Refresh(e.tree, changed)
}
