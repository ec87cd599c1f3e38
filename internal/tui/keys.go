package tui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyAction represents an action triggered by a key press.
type KeyAction int

const (
	ActionNone KeyAction = iota
	ActionQuit
	ActionToggleHelp
	ActionOpenSearch
	ActionOpenReplace
	ActionCloseSearch
	ActionSearchNext
	ActionSearchPrevious
	ActionToggleReplace
	ActionSwitchField
	ActionReplace
	ActionReplaceAll
	ActionToggleCase
	ActionToggleMode
	ActionUndo
	ActionSave
	ActionLineDown
	ActionLineUp
	ActionPageDown
	ActionPageUp
	ActionHalfPageDown
	ActionHalfPageUp
	ActionGoToTop
	ActionGoToBottom
	ActionListWider
	ActionListNarrower
	// ActionInput forwards the key to the focused search bar field.
	ActionInput
)

// KeyHandler handles key input and maintains key buffer.
type KeyHandler struct {
	keyBuffer string
}

// NewKeyHandler creates a new key handler.
func NewKeyHandler() *KeyHandler {
	return &KeyHandler{}
}

// Handle processes a key pressed while browsing the document and returns the
// action with its repeat count.
func (k *KeyHandler) Handle(msg tea.KeyMsg) (KeyAction, int) {
	key := msg.String()

	// Numeric keys build up the buffer
	if isNumericKey(key) {
		k.keyBuffer += key
		return ActionNone, 0
	}

	count := 1
	if k.keyBuffer != "" {
		if n, err := strconv.Atoi(k.keyBuffer); err == nil && n > 0 {
			count = n
		}
	}
	k.keyBuffer = ""

	return browseAction(key), count
}

// HandleSearch maps a key pressed while the search bar is open. Keys that
// are not commands go to the input, so digits never reach the buffer.
func (k *KeyHandler) HandleSearch(msg tea.KeyMsg) KeyAction {
	k.keyBuffer = ""
	switch msg.String() {
	case "ctrl+c":
		return ActionQuit
	case "esc":
		return ActionCloseSearch
	case "enter", "down", "ctrl+n":
		return ActionSearchNext
	case "up", "ctrl+p":
		return ActionSearchPrevious
	case "ctrl+r":
		return ActionToggleReplace
	case "tab", "shift+tab":
		return ActionSwitchField
	case "ctrl+o":
		return ActionReplace
	case "ctrl+a":
		return ActionReplaceAll
	case "alt+c":
		return ActionToggleCase
	case "alt+r":
		return ActionToggleMode
	case "ctrl+z":
		return ActionUndo
	case "ctrl+s":
		return ActionSave
	case "pgdown":
		return ActionPageDown
	case "pgup":
		return ActionPageUp
	case "ctrl+left":
		return ActionListWider
	case "ctrl+right":
		return ActionListNarrower
	default:
		return ActionInput
	}
}

// KeyBuffer returns the current key buffer.
func (k *KeyHandler) KeyBuffer() string {
	return k.keyBuffer
}

func browseAction(key string) KeyAction {
	switch key {
	case "ctrl+c", "q":
		return ActionQuit
	case "?":
		return ActionToggleHelp
	case "/", "ctrl+f":
		return ActionOpenSearch
	case "ctrl+r":
		return ActionOpenReplace
	case "n":
		return ActionSearchNext
	case "N":
		return ActionSearchPrevious
	case "c":
		return ActionToggleCase
	case "x":
		return ActionToggleMode
	case "u", "ctrl+z":
		return ActionUndo
	case "ctrl+s":
		return ActionSave
	case "j", "down", "ctrl+e":
		return ActionLineDown
	case "k", "up", "ctrl+y":
		return ActionLineUp
	case "pgdown", " ":
		return ActionPageDown
	case "pgup":
		return ActionPageUp
	case "J", "ctrl+d":
		return ActionHalfPageDown
	case "K", "ctrl+u":
		return ActionHalfPageUp
	case "g", "home":
		return ActionGoToTop
	case "G", "end":
		return ActionGoToBottom
	case "<":
		return ActionListWider
	case ">":
		return ActionListNarrower
	default:
		return ActionNone
	}
}

func isNumericKey(key string) bool {
	return len(key) == 1 && key >= "0" && key <= "9"
}
