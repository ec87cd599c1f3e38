// Package wizards holds the modal dialogs drawn above the status bar.
package wizards

import tea "github.com/charmbracelet/bubbletea"

// Action represents what the wizard wants the parent to do.
type Action int

const (
	ActionContinue Action = iota // Continue processing in wizard
	ActionClose                  // Close the wizard
	ActionConfirm                // Run the confirmed operation, then close
)

// Wizard is the interface all wizards implement.
type Wizard interface {
	// HandleKey processes keyboard input.
	// Returns the action to take and any commands.
	HandleKey(msg tea.KeyMsg) (Action, tea.Cmd)

	// RenderOverlay returns the wizard UI lines.
	RenderOverlay(width int) []string

	// IsComplete returns true if wizard finished successfully.
	IsComplete() bool

	// Error returns any error message.
	Error() string
}
