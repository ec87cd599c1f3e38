package tui

import (
	"github.com/fsnotify/fsnotify"
	"github.com/interpretive-systems/jotfind/internal/doc"
)

// fileEventMsg reports a change to a file in the watched directory.
type fileEventMsg struct {
	path string
	op   fsnotify.Op
}

// fileWatchErrMsg reports a watcher failure.
type fileWatchErrMsg struct {
	err error
}

// reloadedMsg contains the document read back from disk.
type reloadedMsg struct {
	root *doc.Node
	// raw is the file content, compared against our own last save.
	raw []byte
	err error
}

// savedMsg reports the outcome of writing the document at version.
type savedMsg struct {
	version int
	err     error
}

// prefsSavedMsg reports the outcome of persisting a search toggle.
type prefsSavedMsg struct {
	err error
}
