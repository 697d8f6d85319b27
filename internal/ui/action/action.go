// Package action defines the interface for actions emitted by UI components.
package action

import tea "github.com/charmbracelet/bubbletea"

// Action represents an action from a UI component.
// The ActionType method returns a string identifier for logging.
type Action interface {
	ActionType() string
}

// Msg wraps an action with its source component name.
// Components report to their host exclusively through this message.
type Msg struct {
	Source string // Component name, e.g. "picker"
	Action Action
}

// Ensure Msg implements tea.Msg (compile-time check).
var _ tea.Msg = Msg{}

// Cmd returns a command delivering a as an action.Msg from source.
func Cmd(source string, a Action) tea.Cmd {
	return func() tea.Msg {
		return Msg{Source: source, Action: a}
	}
}
