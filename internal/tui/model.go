package tui

import (
	"github.com/interpretive-systems/jotfind/internal/doc"
	"github.com/interpretive-systems/jotfind/internal/prefs"
	"github.com/interpretive-systems/jotfind/internal/search"
	"github.com/interpretive-systems/jotfind/internal/theme"
	"github.com/interpretive-systems/jotfind/internal/tui/components"
	"github.com/interpretive-systems/jotfind/internal/tui/wizards"
)

// State holds all application state.
type State struct {
	// Document
	Path         string
	Doc          *doc.Doc
	Engine       *search.Engine
	SavedVersion int

	// Preferences
	Prefs     prefs.Prefs
	PrefsPath string
	Theme     theme.Theme

	// UI State
	Width     int
	Height    int
	Searching bool
	ShowHelp  bool
	Watch     bool

	// Active Wizard
	ReplaceAllOpen bool

	// Components
	DocView   *components.DocumentView
	MatchList *components.MatchList
	SearchBar *components.SearchBar
	StatusBar *components.StatusBar

	// Wizards
	ReplaceAll *wizards.ReplaceAllWizard
}

// NewState creates the state for editing d, which was loaded from path.
func NewState(path string, d *doc.Doc, p prefs.Prefs, th theme.Theme) *State {
	return &State{
		Path:         path,
		Doc:          d,
		SavedVersion: d.Version(),
		Prefs:        p,
		Theme:        th,
		DocView:      components.NewDocumentView(),
		MatchList:    components.NewMatchList(th.MatchStyle(false)),
		SearchBar:    components.NewSearchBar(),
		StatusBar:    components.NewStatusBar(),
		ReplaceAll:   wizards.NewReplaceAllWizard(th),
	}
}

// Dirty reports whether the document has edits that were not saved.
func (s *State) Dirty() bool {
	return s.Doc.Version() != s.SavedVersion
}
