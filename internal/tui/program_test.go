package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/interpretive-systems/jotfind/internal/doc"
	"github.com/interpretive-systems/jotfind/internal/prefs"
	"github.com/interpretive-systems/jotfind/internal/search"
	"github.com/interpretive-systems/jotfind/internal/theme"
)

func newTestProgram(t *testing.T, text string, opts ...func(*Options)) *Program {
	t.Helper()
	d, err := doc.New(doc.ParseText(text))
	if err != nil {
		t.Fatalf("new doc: %v", err)
	}
	o := Options{Doc: d, Prefs: prefs.Prefs{Theme: prefs.ThemeDark}}
	for _, fn := range opts {
		fn(&o)
	}
	p := NewProgram(o)
	t.Cleanup(p.Close)
	p.Update(tea.WindowSizeMsg{Width: 100, Height: 24})
	return p
}

func typeText(p *Program, s string) tea.Cmd {
	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return cmd
}

func press(p *Program, k tea.KeyType) tea.Cmd {
	_, cmd := p.Update(tea.KeyMsg{Type: k})
	return cmd
}

func plainView(p *Program) string {
	return ansi.Strip(p.View())
}

func TestView_SearchShowsCountAndList(t *testing.T) {
	p := newTestProgram(t, "The cat sat on the mat")
	typeText(p, "/")
	typeText(p, "at")

	plain := plainView(p)
	if !strings.HasPrefix(plain, "jotfind | untitled") {
		t.Fatalf("unexpected header: %q", strings.SplitN(plain, "\n", 2)[0])
	}
	if !strings.Contains(plain, "1 of 3 matches") {
		t.Fatalf("expected match count, got: %q", plain)
	}
	if !strings.Contains(plain, "│") {
		t.Fatalf("expected match list divider in view")
	}
	if !strings.Contains(plain, "> 1:6") {
		t.Fatalf("expected selected list entry, got: %q", plain)
	}
	if !strings.Contains(plain, "Ln 1, Col 6") {
		t.Fatalf("expected current position in status bar, got: %q", plain)
	}

	press(p, tea.KeyEnter)
	if !strings.Contains(plainView(p), "2 of 3 matches") {
		t.Fatalf("enter should advance to the next match")
	}
	press(p, tea.KeyUp)
	press(p, tea.KeyUp)
	if !strings.Contains(plainView(p), "3 of 3 matches") {
		t.Fatalf("up should wrap to the last match")
	}
}

func TestView_NoResultsAndInvalidPattern(t *testing.T) {
	p := newTestProgram(t, "The cat sat")
	typeText(p, "/")
	typeText(p, "dog")
	if !strings.Contains(plainView(p), "No results found") {
		t.Fatalf("expected no results message")
	}

	p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r"), Alt: true})
	for range 3 {
		press(p, tea.KeyBackspace)
	}
	typeText(p, "(")
	if !strings.Contains(plainView(p), "invalid pattern") {
		t.Fatalf("expected pattern error, got: %q", plainView(p))
	}
	if p.state.Engine.MatchCount() != 0 {
		t.Fatalf("invalid pattern should have no matches")
	}
}

func TestEscape_ClearsTermAndCloses(t *testing.T) {
	p := newTestProgram(t, "The cat sat on the mat")
	typeText(p, "/")
	typeText(p, "at")
	press(p, tea.KeyEnter)
	press(p, tea.KeyEsc)

	if p.state.Searching {
		t.Fatalf("esc should close the search bar")
	}
	st := p.state.Engine.State()
	if st.Term != "" || st.Index != 0 || p.state.Engine.MatchCount() != 0 {
		t.Fatalf("esc should clear the search, got term %q index %d", st.Term, st.Index)
	}
	if strings.Contains(plainView(p), "matches") {
		t.Fatalf("search overlay still drawn")
	}
}

func TestReplace_FirstMatchAndUndo(t *testing.T) {
	p := newTestProgram(t, "The cat sat on the mat")
	typeText(p, "/")
	typeText(p, "at")
	press(p, tea.KeyCtrlR)
	typeText(p, "1")
	press(p, tea.KeyCtrlO)

	if got := p.state.Doc.Text(); got != "The c1 sat on the mat" {
		t.Fatalf("replace: got %q", got)
	}
	if p.state.Engine.MatchCount() != 2 {
		t.Fatalf("matches not refreshed after replace: %d", p.state.Engine.MatchCount())
	}
	if !strings.Contains(plainView(p), "jotfind | untitled [+]") {
		t.Fatalf("expected modified marker")
	}

	press(p, tea.KeyCtrlZ)
	if got := p.state.Doc.Text(); got != "The cat sat on the mat" {
		t.Fatalf("undo: got %q", got)
	}
	if p.state.Engine.MatchCount() != 3 {
		t.Fatalf("matches not refreshed after undo")
	}

	press(p, tea.KeyCtrlZ)
	if !strings.Contains(plainView(p), "nothing to undo") {
		t.Fatalf("expected empty history message")
	}
}

func TestReplace_EmptyReplacementIsNoop(t *testing.T) {
	p := newTestProgram(t, "The cat sat on the mat")
	typeText(p, "/")
	typeText(p, "at")
	press(p, tea.KeyCtrlO)
	press(p, tea.KeyCtrlA)

	if p.state.ReplaceAllOpen {
		t.Fatalf("replace all dialog should not open without a replacement")
	}
	if p.state.Doc.Version() != 0 {
		t.Fatalf("document changed without a replacement")
	}
}

func TestReplaceAll_ThroughDialog(t *testing.T) {
	p := newTestProgram(t, "The cat sat on the mat")
	typeText(p, "/")
	typeText(p, "at")
	press(p, tea.KeyCtrlR)
	typeText(p, "XX")
	press(p, tea.KeyCtrlA)

	if !p.state.ReplaceAllOpen {
		t.Fatalf("expected replace all dialog")
	}
	plain := plainView(p)
	if !strings.Contains(plain, "Replace all") || !strings.Contains(plain, "1 changed") {
		t.Fatalf("expected preview, got: %q", plain)
	}
	if p.state.Doc.Version() != 0 {
		t.Fatalf("preview must not touch the document")
	}

	typeText(p, "y")
	if p.state.ReplaceAllOpen {
		t.Fatalf("dialog should close after replacing")
	}
	if got := p.state.Doc.Text(); got != "The cXX sXX on the mXX" {
		t.Fatalf("replace all: got %q", got)
	}
	if p.state.Doc.Version() != 1 {
		t.Fatalf("replace all should be one transaction, version %d", p.state.Doc.Version())
	}
	plain = plainView(p)
	if !strings.Contains(plain, "replaced 3 matches") || !strings.Contains(plain, "No results found") {
		t.Fatalf("unexpected view after replace all: %q", plain)
	}
}

func TestReplaceAll_CancelLeavesDocument(t *testing.T) {
	p := newTestProgram(t, "a b a")
	typeText(p, "/")
	typeText(p, "a")
	press(p, tea.KeyCtrlR)
	typeText(p, "z")
	press(p, tea.KeyCtrlA)
	press(p, tea.KeyEsc)

	if p.state.ReplaceAllOpen || !p.state.Searching {
		t.Fatalf("esc should only close the dialog")
	}
	if p.state.Doc.Text() != "a b a" {
		t.Fatalf("cancel changed the document")
	}
}

func TestReplaceAll_ReloadClosesDialog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	p := newTestProgram(t, "a b a", func(o *Options) { o.Path = path })
	typeText(p, "/")
	typeText(p, "a")
	press(p, tea.KeyCtrlR)
	typeText(p, "z")
	press(p, tea.KeyCtrlA)
	if !p.state.ReplaceAllOpen {
		t.Fatalf("expected replace all dialog")
	}

	if err := os.WriteFile(path, []byte("a a a a\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	p.Update(reloadDoc(path)())
	if p.state.ReplaceAllOpen {
		t.Fatalf("reload should close the stale dialog")
	}
	if !strings.Contains(plainView(p), "replace all cancelled") {
		t.Fatalf("expected cancellation message")
	}

	// y now goes to the replacement field instead of confirming.
	typeText(p, "y")
	if got := p.state.Doc.Text(); got != "a a a a" {
		t.Fatalf("unexpected text %q", got)
	}
	if p.state.Doc.Version() != 1 {
		t.Fatalf("only the reload should have committed, version %d", p.state.Doc.Version())
	}
}

func TestToggleCase_Persists(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.toml")
	p := newTestProgram(t, "Cat cat", func(o *Options) { o.PrefsPath = cfg })
	typeText(p, "/")
	typeText(p, "cat")
	if p.state.Engine.MatchCount() != 2 {
		t.Fatalf("case-insensitive search should find 2")
	}

	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c"), Alt: true})
	if p.state.Engine.MatchCount() != 1 {
		t.Fatalf("case-sensitive search should find 1")
	}
	if cmd == nil {
		t.Fatalf("expected a command persisting the toggle")
	}
	p.Update(cmd())

	got, err := prefs.Load(cfg)
	if err != nil {
		t.Fatalf("load prefs: %v", err)
	}
	if !got.CaseSensitive {
		t.Fatalf("case toggle not persisted")
	}
	if !strings.Contains(plainView(p), "Aa") {
		t.Fatalf("expected case flag in view")
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	p := newTestProgram(t, "The cat sat", func(o *Options) { o.Path = path })
	typeText(p, "/")
	typeText(p, "cat")
	press(p, tea.KeyCtrlR)
	typeText(p, "dog")
	press(p, tea.KeyCtrlO)

	cmd := press(p, tea.KeyCtrlS)
	if cmd == nil {
		t.Fatalf("expected save command")
	}
	p.Update(cmd())
	if p.state.Dirty() {
		t.Fatalf("document still dirty after save")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(b) != "The dog sat\n" {
		t.Fatalf("saved %q", b)
	}

	// Our own save coming back through the watcher is ignored.
	version := p.state.Doc.Version()
	p.Update(reloadDoc(path)())
	if p.state.Doc.Version() != version {
		t.Fatalf("self save triggered a reload")
	}

	if err := os.WriteFile(path, []byte("The dog sat on the dog\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	p.Update(reloadDoc(path)())
	if got := p.state.Doc.Text(); got != "The dog sat on the dog" {
		t.Fatalf("reload: got %q", got)
	}
	if p.state.Engine.MatchCount() != 0 || p.state.Dirty() {
		t.Fatalf("unexpected state after reload")
	}
}

func TestReload_KeepsUnsavedEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("external\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	p := newTestProgram(t, "mine", func(o *Options) { o.Path = path })
	tx := search.Transaction{Label: "type", Edits: []search.Edit{{Text: "!", From: 5, To: 5}}}
	if err := p.state.Doc.Dispatch(tx); err != nil {
		t.Fatal(err)
	}
	p.Update(reloadDoc(path)())
	if p.state.Doc.Text() != "mine!" {
		t.Fatalf("reload replaced unsaved edits")
	}
	if !strings.Contains(plainView(p), "unsaved edits kept") {
		t.Fatalf("expected conflict message")
	}
}

func TestKeyHandler_Count(t *testing.T) {
	k := NewKeyHandler()
	for _, r := range "12" {
		if a, _ := k.Handle(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}); a != ActionNone {
			t.Fatalf("digit should only buffer")
		}
	}
	a, n := k.Handle(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	if a != ActionLineDown || n != 12 {
		t.Fatalf("got %v x%d", a, n)
	}
	if k.KeyBuffer() != "" {
		t.Fatalf("buffer not cleared")
	}
	if a := k.HandleSearch(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1")}); a != ActionInput {
		t.Fatalf("digits are input while searching")
	}
}

func TestLayout_Widths(t *testing.T) {
	l := NewLayout()
	l.SetSize(90, 30)
	if l.ListWidth() != 30 || l.DocWidth(true) != 59 || l.DocWidth(false) != 90 {
		t.Fatalf("unexpected widths %d %d", l.ListWidth(), l.DocWidth(true))
	}
	l.AdjustListWidth(100)
	if l.ListWidth() != 69 {
		t.Fatalf("list width not clamped: %d", l.ListWidth())
	}
	if l.ContentHeight(3) != 23 {
		t.Fatalf("content height %d", l.ContentHeight(3))
	}
}

func TestRenderDocument_Blocks(t *testing.T) {
	d, err := doc.New(doc.ParseText("# Title\n\n- one\n- two\n\nplain cat"))
	if err != nil {
		t.Fatal(err)
	}
	e := search.New(d, d)
	e.SetSearchTerm("cat")

	r := renderDocument(d, e.Decorations(), theme.Default(), 80)
	var got []string
	for _, l := range r.lines {
		got = append(got, ansi.Strip(l))
	}
	want := []string{"# Title", "", "• one", "• two", "", "plain cat"}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("render:\n%s", strings.Join(got, "\n"))
	}
	if r.current != 5 {
		t.Fatalf("current match line = %d", r.current)
	}
}
