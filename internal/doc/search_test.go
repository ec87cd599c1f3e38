package doc

import (
	"testing"

	"github.com/interpretive-systems/jotfind/internal/search"
)

// session wires an engine to d the way the editor does.
func session(t *testing.T, d *Doc, opts ...search.Option) *search.Engine {
	t.Helper()
	e := search.New(d, d, opts...)
	stop := d.OnChange(func(Change) { e.DocumentChanged() })
	t.Cleanup(stop)
	return e
}

func TestSearch_ScenarioCatSatMat(t *testing.T) {
	d := mustDoc(t, NewParagraph(NewText("The cat sat on the mat")))
	e := session(t, d)
	e.SetSearchTerm("at")
	ms := e.Matches()
	if len(ms) != 3 {
		t.Fatalf("expected 3 matches, got %v", ms)
	}
	for _, m := range ms {
		if got := d.TextBetween(m.From, m.To, "", ""); got != "at" {
			t.Fatalf("range %v holds %q", m, got)
		}
	}

	e.SetReplaceTerm("XX")
	n, err := e.ReplaceAll()
	if err != nil || n != 3 {
		t.Fatalf("replace all: %d %v", n, err)
	}
	if d.Text() != "The cXX sXX on the mXX" {
		t.Fatalf("text = %q", d.Text())
	}
	if e.MatchCount() != 0 {
		t.Fatalf("expected no matches after replace all, got %d", e.MatchCount())
	}
	if d.Version() != 1 {
		t.Fatalf("replace all should commit once, version %d", d.Version())
	}
}

func TestSearch_MatchesSpanFormatting(t *testing.T) {
	d := mustDoc(t, NewParagraph(NewText("hel"), NewText("lo", MarkBold), NewText(" world")))
	e := session(t, d)
	e.SetSearchTerm("hello")
	ms := e.Matches()
	if len(ms) != 1 || ms[0] != (search.Range{From: 1, To: 6}) {
		t.Fatalf("expected one match across marks, got %v", ms)
	}
}

func TestSearch_HardBreakAndBlocksSplitRuns(t *testing.T) {
	d := mustDoc(t,
		NewParagraph(NewText("ab"), NewHardBreak(), NewText("cd")),
		NewParagraph(NewText("ef")),
	)
	e := session(t, d)
	e.SetSearchTerm("bc")
	if e.MatchCount() != 0 {
		t.Fatalf("hard break should split runs")
	}
	e.SetSearchTerm("de")
	if e.MatchCount() != 0 {
		t.Fatalf("block boundary should split runs")
	}
}

func TestSearch_ReplaceRefreshesThroughNotification(t *testing.T) {
	d := mustDoc(t, NewParagraph(NewText("one one")), NewList(NewParagraph(NewText("one"))))
	e := session(t, d)
	e.SetSearchTerm("one")
	e.SetReplaceTerm("1")
	e.Next()
	if err := e.Replace(); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if d.Text() != "1 one\none" {
		t.Fatalf("text = %q", d.Text())
	}
	if e.MatchCount() != 2 {
		t.Fatalf("expected 2 matches left, got %d", e.MatchCount())
	}

	if _, err := e.ReplaceAll(); err != nil {
		t.Fatalf("replace all: %v", err)
	}
	if d.Text() != "1 1\n1" {
		t.Fatalf("text = %q", d.Text())
	}
	if err := d.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if e.MatchCount() != 2 {
		t.Fatalf("undo should bring matches back, got %d", e.MatchCount())
	}
}

func TestSearch_ReplaceAllKeepsMarks(t *testing.T) {
	d := mustDoc(t, NewParagraph(NewText("a "), NewText("cat", MarkBold), NewText(" cat")))
	e := session(t, d)
	e.SetSearchTerm("cat")
	e.SetReplaceTerm("dog")
	if _, err := e.ReplaceAll(); err != nil {
		t.Fatalf("replace all: %v", err)
	}
	p := d.Root().Content[0]
	if len(p.Content) != 3 || p.Content[1].Text != "dog" || !p.Content[1].HasMark(MarkBold) {
		t.Fatalf("unexpected inline content %+v", p.Content)
	}
	if d.Text() != "a dog dog" {
		t.Fatalf("text = %q", d.Text())
	}
}

func TestSearch_DecorationsStableUntilChange(t *testing.T) {
	d := mustDoc(t, NewParagraph(NewText("x y x")))
	e := session(t, d)
	e.SetSearchTerm("x")
	first := e.Decorations()
	e.SetCaseSensitive(false)
	if e.Decorations() != first {
		t.Fatalf("no-op command should keep the decoration set")
	}
	_ = edit(d, "z", 3, 4)
	if e.Decorations() == first {
		t.Fatalf("document change should rebuild decorations")
	}
	if e.Decorations().Len() != 2 {
		t.Fatalf("expected 2 decorations, got %d", e.Decorations().Len())
	}
}

func TestSearch_DeeplyNestedBlocks(t *testing.T) {
	const depth = 100_000
	block := NewParagraph(NewText("a cat"))
	for range depth {
		block = &Node{Type: TypeBlockquote, Content: []*Node{block}}
	}
	d := mustDoc(t, block)
	e := session(t, d)
	e.SetSearchTerm("cat")
	ms := e.Matches()
	if len(ms) != 1 || ms[0] != (search.Range{From: depth + 3, To: depth + 6}) {
		t.Fatalf("unexpected matches %v", ms)
	}

	e.SetReplaceTerm("dog")
	if n, err := e.ReplaceAll(); n != 1 || err != nil {
		t.Fatalf("replace all: %d %v", n, err)
	}
	if e.MatchCount() != 0 || d.Text() != "a dog" {
		t.Fatalf("after replace: %d matches, text %q", e.MatchCount(), d.Text())
	}
}

func TestSearch_IdenticalReplacementStillDispatches(t *testing.T) {
	d := mustDoc(t, NewParagraph(NewText("The cat sat on the mat")))
	e := session(t, d)
	var changes []Change
	stop := d.OnChange(func(c Change) { changes = append(changes, c) })
	defer stop()

	e.SetSearchTerm("at")
	e.SetReplaceTerm("at")
	n, err := e.ReplaceAll()
	if err != nil || n != 3 {
		t.Fatalf("replace all: %d %v", n, err)
	}
	if d.Version() != 1 || len(changes) != 1 || changes[0].Label != search.LabelReplaceAll {
		t.Fatalf("expected one committed transaction, version %d changes %+v", d.Version(), changes)
	}
	if d.Text() != "The cat sat on the mat" || e.MatchCount() != 3 {
		t.Fatalf("text %q, %d matches", d.Text(), e.MatchCount())
	}
}
