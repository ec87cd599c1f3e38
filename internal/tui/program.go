// Package tui implements the interactive document viewer with its search and
// replace bar.
package tui

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"github.com/interpretive-systems/jotfind/internal/doc"
	"github.com/interpretive-systems/jotfind/internal/prefs"
	"github.com/interpretive-systems/jotfind/internal/search"
	"github.com/interpretive-systems/jotfind/internal/theme"
	"github.com/interpretive-systems/jotfind/internal/tui/components"
	"github.com/interpretive-systems/jotfind/internal/tui/wizards"
	"go.uber.org/zap"
)

// contextRunes is how much surrounding text each match list entry shows.
const contextRunes = 20

// Options configures a Program.
type Options struct {
	// Path is where the document is saved and, with Watch, reloaded from.
	Path      string
	Doc       *doc.Doc
	Prefs     prefs.Prefs
	PrefsPath string
	Watch     bool
	Logger    *zap.Logger
}

// Program is the Bubble Tea model of the viewer.
type Program struct {
	state      *State
	layout     *Layout
	keyHandler *KeyHandler
	log        *zap.Logger

	watcher     *fsnotify.Watcher
	watchDir    string
	watchedFile string
	watchChan   chan tea.Msg
	watchDone   chan struct{}

	// lastCurrent is the current match of the previous render; the document
	// only scrolls when it moves.
	lastCurrent search.Range
	hadCurrent  bool

	unsubscribe func()
}

// NewProgram wires a search engine to opts.Doc and returns the model.
func NewProgram(opts Options) *Program {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	th := theme.For(opts.Prefs)
	s := NewState(opts.Path, opts.Doc, opts.Prefs, th)
	s.PrefsPath = opts.PrefsPath
	s.Watch = opts.Watch

	mode := search.Literal
	if opts.Prefs.Regex {
		mode = search.Pattern
	}
	s.Engine = search.New(opts.Doc, opts.Doc,
		search.WithLogger(log.Named("search")),
		search.WithCaseSensitive(opts.Prefs.CaseSensitive),
		search.WithMode(mode))

	p := &Program{
		state:      s,
		layout:     NewLayout(),
		keyHandler: NewKeyHandler(),
		log:        log,
	}
	p.unsubscribe = opts.Doc.OnChange(func(c doc.Change) {
		log.Debug("document changed",
			zap.String("label", c.Label),
			zap.Int("version", c.Version),
			zap.Bool("undo", c.Undo),
			zap.Bool("reload", c.Reload))
		s.Engine.DocumentChanged()
	})
	return p
}

// Run instantiates and runs the Bubble Tea program.
func Run(opts Options) error {
	p := NewProgram(opts)
	defer p.Close()
	if _, err := tea.NewProgram(p, tea.WithAltScreen()).Run(); err != nil {
		return err
	}
	return nil
}

// Close detaches from the document and stops watching the file.
func (p *Program) Close() {
	if p.unsubscribe != nil {
		p.unsubscribe()
		p.unsubscribe = nil
	}
	if p.watchDone != nil {
		close(p.watchDone)
		p.watchDone = nil
	}
	if p.watcher != nil {
		_ = p.watcher.Close()
		p.watcher = nil
	}
}

func (p *Program) Init() tea.Cmd {
	if p.state.Watch {
		return p.startWatching(p.state.Path)
	}
	return nil
}

func (p *Program) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	s := p.state
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return p, p.handleKey(msg)
	case tea.WindowSizeMsg:
		s.Width = msg.Width
		s.Height = msg.Height
		p.layout.SetSize(msg.Width, msg.Height)
		p.recalc()
		return p, nil
	case fileEventMsg:
		return p, p.handleFileEvent(msg)
	case fileWatchErrMsg:
		p.log.Warn("watch error", zap.Error(msg.err))
		s.StatusBar.SetMessage("watch error: " + msg.err.Error())
		return p, p.waitForFileEvent()
	case reloadedMsg:
		p.applyReload(msg)
		p.recalc()
		return p, nil
	case savedMsg:
		if msg.err != nil {
			p.log.Error("save failed", zap.String("path", s.Path), zap.Error(msg.err))
			s.StatusBar.SetMessage("save failed: " + msg.err.Error())
		} else {
			s.SavedVersion = msg.version
			s.StatusBar.SetMessage("saved " + filepath.Base(s.Path))
		}
		p.recalc()
		return p, nil
	case prefsSavedMsg:
		if msg.err != nil {
			p.log.Warn("persist prefs", zap.Error(msg.err))
			s.StatusBar.SetMessage("config: " + msg.err.Error())
		}
		return p, nil
	}
	return p, nil
}

func (p *Program) applyReload(msg reloadedMsg) {
	s := p.state
	if msg.err != nil {
		s.StatusBar.SetMessage(msg.err.Error())
		return
	}
	if cur, err := encodeFor(s.Path, s.Doc.Root()); err == nil && bytes.Equal(cur, msg.raw) {
		// Our own save, or a touch that left the content alone.
		return
	}
	if s.Dirty() {
		s.StatusBar.SetMessage("file changed on disk; unsaved edits kept")
		return
	}
	if err := s.Doc.Reload(msg.root); err != nil {
		s.StatusBar.SetMessage("reload: " + err.Error())
		return
	}
	s.SavedVersion = s.Doc.Version()
	msgText := "reloaded " + filepath.Base(s.Path)
	if s.ReplaceAllOpen {
		// The preview was built from the old content.
		s.ReplaceAllOpen = false
		msgText += "; replace all cancelled"
	}
	s.StatusBar.SetMessage(msgText)
}

func (p *Program) handleKey(msg tea.KeyMsg) tea.Cmd {
	s := p.state
	if s.ShowHelp {
		switch msg.String() {
		case "q", "ctrl+c":
			return tea.Quit
		case "?", "esc":
			s.ShowHelp = false
			p.recalc()
		}
		return nil
	}
	if s.ReplaceAllOpen {
		return p.handleReplaceAllKey(msg)
	}
	if s.Searching {
		return p.handleSearchKey(msg)
	}

	action, count := p.keyHandler.Handle(msg)
	vp := s.DocView.Viewport()
	var cmd tea.Cmd
	switch action {
	case ActionQuit:
		return tea.Quit
	case ActionToggleHelp:
		s.ShowHelp = true
	case ActionOpenSearch:
		p.openSearch(false)
	case ActionOpenReplace:
		p.openSearch(true)
	case ActionSearchNext:
		for range count {
			s.Engine.Next()
		}
	case ActionSearchPrevious:
		for range count {
			s.Engine.Previous()
		}
	case ActionToggleCase:
		cmd = p.toggleCase()
	case ActionToggleMode:
		cmd = p.toggleMode()
	case ActionUndo:
		p.undo()
	case ActionSave:
		cmd = p.save()
	case ActionListWider:
		p.layout.AdjustListWidth(2)
	case ActionListNarrower:
		p.layout.AdjustListWidth(-2)
	case ActionLineDown:
		vp.LineDown(count)
		return nil
	case ActionLineUp:
		vp.LineUp(count)
		return nil
	case ActionPageDown:
		vp.PageDown()
		return nil
	case ActionPageUp:
		vp.PageUp()
		return nil
	case ActionHalfPageDown:
		vp.HalfPageDown()
		return nil
	case ActionHalfPageUp:
		vp.HalfPageUp()
		return nil
	case ActionGoToTop:
		vp.GotoTop()
		return nil
	case ActionGoToBottom:
		vp.GotoBottom()
		return nil
	default:
		return nil
	}
	p.recalc()
	return cmd
}

func (p *Program) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	s := p.state
	var cmd tea.Cmd
	switch p.keyHandler.HandleSearch(msg) {
	case ActionQuit:
		return tea.Quit
	case ActionCloseSearch:
		p.closeSearch()
	case ActionSearchNext:
		s.Engine.Next()
	case ActionSearchPrevious:
		s.Engine.Previous()
	case ActionToggleReplace:
		s.SearchBar.ToggleReplace()
	case ActionSwitchField:
		if s.SearchBar.Focused() == components.FieldSearch {
			s.SearchBar.FocusField(components.FieldReplace)
		} else {
			s.SearchBar.FocusField(components.FieldSearch)
		}
	case ActionReplace:
		p.replace()
	case ActionReplaceAll:
		p.openReplaceAll()
	case ActionToggleCase:
		cmd = p.toggleCase()
	case ActionToggleMode:
		cmd = p.toggleMode()
	case ActionUndo:
		p.undo()
	case ActionSave:
		cmd = p.save()
	case ActionPageDown:
		s.DocView.Viewport().PageDown()
		return nil
	case ActionPageUp:
		s.DocView.Viewport().PageUp()
		return nil
	case ActionListWider:
		p.layout.AdjustListWidth(2)
	case ActionListNarrower:
		p.layout.AdjustListWidth(-2)
	default:
		cmd = s.SearchBar.Update(msg)
		p.syncTerms()
	}
	p.recalc()
	return cmd
}

func (p *Program) handleReplaceAllKey(msg tea.KeyMsg) tea.Cmd {
	s := p.state
	action, cmd := s.ReplaceAll.HandleKey(msg)
	switch action {
	case wizards.ActionClose:
		s.ReplaceAllOpen = false
	case wizards.ActionConfirm:
		n, err := s.Engine.ReplaceAll()
		s.ReplaceAll.SetResult(err)
		if err != nil {
			p.log.Error("replace all", zap.Error(err))
		} else {
			s.ReplaceAllOpen = false
			s.StatusBar.SetMessage(fmt.Sprintf("replaced %d %s", n, plural(n, "match", "matches")))
		}
	}
	p.recalc()
	return cmd
}

// openSearch shows the search bar. A term left from an earlier search is
// searched again.
func (p *Program) openSearch(withReplace bool) {
	s := p.state
	s.Searching = true
	if withReplace && !s.SearchBar.ReplaceVisible() {
		s.SearchBar.ToggleReplace()
	} else {
		s.SearchBar.FocusField(components.FieldSearch)
	}
	p.syncTerms()
}

// closeSearch clears the term and hides the bar. The replacement text is
// kept for the next search.
func (p *Program) closeSearch() {
	s := p.state
	s.Searching = false
	s.SearchBar.SetSearchTerm("")
	s.Engine.SetSearchTerm("")
	s.Engine.ResetIndex()
}

// syncTerms pushes the input values into the engine. A new term starts again
// from the first match.
func (p *Program) syncTerms() {
	s := p.state
	term := s.SearchBar.SearchTerm()
	if term != s.Engine.State().Term {
		s.Engine.SetSearchTerm(term)
		s.Engine.ResetIndex()
	}
	s.Engine.SetReplaceTerm(s.SearchBar.ReplaceTerm())
}

// replace overwrites the first match. Nothing happens without a replacement.
func (p *Program) replace() {
	s := p.state
	if s.SearchBar.ReplaceTerm() == "" {
		return
	}
	if err := s.Engine.Replace(); err != nil {
		p.log.Error("replace", zap.Error(err))
		s.StatusBar.SetMessage(err.Error())
	}
}

// openReplaceAll previews the replacement in a confirmation dialog.
func (p *Program) openReplaceAll() {
	s := p.state
	repl := s.SearchBar.ReplaceTerm()
	if repl == "" {
		return
	}
	matches := s.Engine.Matches()
	before := s.Doc.Text()
	after, err := previewReplaceAll(s.Doc, matches, repl)
	if err != nil {
		s.StatusBar.SetMessage(err.Error())
		return
	}
	s.ReplaceAll.Init(s.Engine.State().Term, repl, len(matches), before, after)
	s.ReplaceAllOpen = true
}

// previewReplaceAll returns the text d would have after replacing matches,
// leaving d untouched.
func previewReplaceAll(d *doc.Doc, matches []search.Range, repl string) (string, error) {
	tx, ok := search.PlanReplaceAll(matches, repl)
	if !ok {
		return d.Text(), nil
	}
	scratch, err := doc.New(d.Root().Clone())
	if err != nil {
		return "", err
	}
	if err := scratch.Dispatch(tx); err != nil {
		return "", fmt.Errorf("preview: %w", err)
	}
	return scratch.Text(), nil
}

func (p *Program) toggleCase() tea.Cmd {
	s := p.state
	v := !s.Engine.State().CaseSensitive
	s.Engine.SetCaseSensitive(v)
	s.Prefs.CaseSensitive = v
	return persistCaseSensitive(s.PrefsPath, v)
}

func (p *Program) toggleMode() tea.Cmd {
	s := p.state
	m := search.Pattern
	if s.Engine.State().Mode == search.Pattern {
		m = search.Literal
	}
	s.Engine.SetMode(m)
	s.Prefs.Regex = m == search.Pattern
	return persistRegex(s.PrefsPath, s.Prefs.Regex)
}

func (p *Program) undo() {
	s := p.state
	if !s.Doc.CanUndo() {
		s.StatusBar.SetMessage("nothing to undo")
		return
	}
	if err := s.Doc.Undo(); err != nil {
		s.StatusBar.SetMessage(err.Error())
	}
}

func (p *Program) save() tea.Cmd {
	s := p.state
	if s.Path == "" {
		s.StatusBar.SetMessage("no file to save to")
		return nil
	}
	s.StatusBar.SetMessage("saving…")
	return saveDoc(s.Path, s.Doc.Root(), s.Doc.Version())
}

// recalc re-renders the document and refreshes every component from the
// engine and document state.
func (p *Program) recalc() {
	s := p.state
	if s.Width == 0 || s.Height == 0 {
		return
	}
	overlay := p.overlayLines(s.Width)
	h := p.layout.ContentHeight(len(overlay))
	docW := p.layout.DocWidth(s.Searching)

	r := renderDocument(s.Doc, s.Engine.Decorations(), s.Theme, docW)
	cur, hasCur := s.Engine.Current()
	focus := -1
	if hasCur && (!p.hadCurrent || cur != p.lastCurrent) {
		focus = r.current
	}
	p.lastCurrent, p.hadCurrent = cur, hasCur
	s.DocView.SetSize(docW, h)
	s.DocView.SetLines(r.lines, focus)

	s.MatchList.SetMatches(p.matchEntries(), s.Engine.Index())

	position := ""
	if hasCur {
		if pos, err := s.Doc.PositionOf(cur.From); err == nil {
			position = pos.String()
		}
	}
	s.StatusBar.SetPosition(position)
	stats := s.Doc.Stats()
	s.StatusBar.SetStats(stats.Words, stats.Characters)
	s.StatusBar.SetDirty(s.Dirty())
	s.StatusBar.SetFlags(p.flags()...)
}

// matchEntries describes every match for the list pane.
func (p *Program) matchEntries() []components.Match {
	d := p.state.Doc
	matches := p.state.Engine.Matches()
	out := make([]components.Match, 0, len(matches))
	for _, m := range matches {
		label := ""
		if pos, err := d.PositionOf(m.From); err == nil {
			label = fmt.Sprintf("%d:%d", pos.Line, pos.Column)
		}
		before := []rune(d.TextBetween(max(m.From-contextRunes, 0), m.From, " ", " "))
		if len(before) > contextRunes {
			before = before[len(before)-contextRunes:]
		}
		out = append(out, components.Match{
			Label:  label,
			Before: string(before),
			Text:   d.TextBetween(m.From, m.To, " ", " "),
			After:  d.TextBetween(m.To, min(m.To+contextRunes, d.Size()), " ", " "),
		})
	}
	return out
}

func (p *Program) flags() []string {
	st := p.state.Engine.State()
	var out []string
	if st.CaseSensitive {
		out = append(out, "Aa")
	}
	if st.Mode == search.Pattern {
		out = append(out, ".*")
	}
	return out
}

func (p *Program) overlayLines(width int) []string {
	s := p.state
	switch {
	case s.ShowHelp:
		return p.helpOverlayLines(width)
	case s.ReplaceAllOpen:
		return s.ReplaceAll.RenderOverlay(width)
	case s.Searching:
		st := s.Engine.State()
		return s.SearchBar.RenderOverlay(width, components.Status{
			Term:    st.Term,
			Count:   len(st.Matches),
			Index:   s.Engine.Index(),
			Err:     st.Err(),
			Flags:   strings.Join(p.flags(), " "),
			Divider: s.Theme.DividerColor,
		})
	}
	return nil
}

// helpOverlayLines returns the bottom overlay lines (without trailing newline).
func (p *Program) helpOverlayLines(width int) []string {
	title := lipgloss.NewStyle().Bold(true).Render("Help — press '?' or Esc to close")
	keys := []string{
		"/ or ctrl+f     Search            ctrl+r   Search and replace",
		"n / N           Next / previous   c / x    Toggle case / pattern",
		"j/k, PgDn/PgUp  Scroll            g / G    Top / Bottom",
		"u or ctrl+z     Undo              ctrl+s   Save",
		"In search: enter/↓ next, ↑ prev, tab switch field, ctrl+o replace,",
		"           ctrl+a replace all, alt+c case, alt+r pattern, esc close",
		"q               Quit",
	}
	lines := make([]string, 0, 2+len(keys))
	lines = append(lines, p.state.Theme.DividerText(strings.Repeat("─", width)))
	lines = append(lines, title)
	lines = append(lines, keys...)
	return lines
}

func (p *Program) View() string {
	s := p.state
	if s.Width == 0 || s.Height == 0 {
		return "Loading..."
	}
	overlay := p.overlayLines(s.Width)
	docLines := strings.Split(s.DocView.View(), "\n")
	var listLines []string
	if s.Searching {
		listLines = s.MatchList.Render(p.layout.ContentHeight(len(overlay)), p.layout.ListWidth())
	}
	return p.layout.RenderFrame(p.topLeft(), p.topRight(), docLines, listLines, overlay, s.StatusBar.Render(s.Width), s.Theme)
}

func (p *Program) topLeft() string {
	name := "untitled"
	if p.state.Path != "" {
		name = filepath.Base(p.state.Path)
	}
	if p.state.Dirty() {
		name += " [+]"
	}
	return "jotfind | " + name
}

func (p *Program) topRight() string {
	if !p.state.Searching {
		return ""
	}
	if n := p.state.Engine.MatchCount(); n > 0 {
		return fmt.Sprintf("%d %s", n, plural(n, "match", "matches"))
	}
	return ""
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
