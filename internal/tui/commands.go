package tui

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/interpretive-systems/jotfind/internal/doc"
	"github.com/interpretive-systems/jotfind/internal/prefs"
)

// saveDoc writes root to path. Committed roots are never mutated, so the
// write may run off the update loop.
func saveDoc(path string, root *doc.Node, version int) tea.Cmd {
	return func() tea.Msg {
		return savedMsg{version: version, err: doc.SaveRoot(path, root)}
	}
}

// reloadDoc reads path back from disk.
func reloadDoc(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := doc.DetectFormat(path)
		if err != nil {
			return reloadedMsg{err: err}
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return reloadedMsg{err: err}
		}
		root, err := doc.Decode(bytes.NewReader(raw), f)
		if err != nil {
			return reloadedMsg{err: fmt.Errorf("reload %s: %w", filepath.Base(path), err)}
		}
		return reloadedMsg{root: root, raw: raw}
	}
}

// encodeFor renders root the way it would be saved to path.
func encodeFor(path string, root *doc.Node) ([]byte, error) {
	f, err := doc.DetectFormat(path)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := doc.Encode(&buf, root, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// persistCaseSensitive stores the case toggle in the config file.
func persistCaseSensitive(path string, v bool) tea.Cmd {
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		return prefsSavedMsg{err: prefs.SaveCaseSensitive(path, v)}
	}
}

// persistRegex stores the pattern toggle in the config file.
func persistRegex(path string, v bool) tea.Cmd {
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		return prefsSavedMsg{err: prefs.SaveRegex(path, v)}
	}
}

// startWatching begins delivering change events for path. The parent
// directory is watched so editors that replace the file are still seen.
func (p *Program) startWatching(path string) tea.Cmd {
	if path == "" {
		return nil
	}
	path = filepath.Clean(path)
	if err := p.ensureWatcher(); err != nil {
		p.state.StatusBar.SetMessage("watch: " + err.Error())
		return nil
	}

	dir := filepath.Dir(path)
	if dir != p.watchDir {
		if p.watchDir != "" {
			_ = p.watcher.Remove(p.watchDir)
		}
		if err := p.watcher.Add(dir); err != nil {
			p.state.StatusBar.SetMessage("watch: " + err.Error())
			return nil
		}
		p.watchDir = dir
	}

	p.watchedFile = path
	return p.waitForFileEvent()
}

func (p *Program) ensureWatcher() error {
	if p.watcher != nil {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	p.watcher = watcher
	p.watchChan = make(chan tea.Msg, 10)
	p.watchDone = make(chan struct{})

	go p.watchLoop(watcher, p.watchChan, p.watchDone)
	return nil
}

// watchLoop forwards watcher events to out until done is closed. Sends give
// up once done is closed, so a program that stopped reading out never leaves
// the loop blocked.
func (p *Program) watchLoop(w *fsnotify.Watcher, out chan<- tea.Msg, done <-chan struct{}) {
	send := func(msg tea.Msg) bool {
		select {
		case out <- msg:
			return true
		case <-done:
			return false
		}
	}
	for {
		var msg tea.Msg
		select {
		case <-done:
			return
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			msg = fileEventMsg{path: event.Name, op: event.Op}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			msg = fileWatchErrMsg{err: err}
		}
		if !send(msg) {
			return
		}
	}
}

func (p *Program) waitForFileEvent() tea.Cmd {
	ch, done := p.watchChan, p.watchDone
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			return msg
		case <-done:
			return nil
		}
	}
}

func (p *Program) handleFileEvent(msg fileEventMsg) tea.Cmd {
	if p.watchedFile == "" || filepath.Clean(msg.path) != p.watchedFile {
		return p.waitForFileEvent()
	}
	return tea.Batch(reloadDoc(p.watchedFile), p.waitForFileEvent())
}
