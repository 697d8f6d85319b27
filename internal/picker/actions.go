package picker

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/picker/internal/option"
	"github.com/llehouerou/picker/internal/ui/action"
)

// Source is the action.Msg source of every picker action.
const Source = "picker"

// Result reports the selection to the host. It is emitted when a single
// select pick commits and whenever the popup closes.
type Result[T any] struct {
	Values    []option.Option[T]
	Committed bool // a single select pick closed the popup
}

// ActionType implements action.Action.
func (Result[T]) ActionType() string { return "picker.result" }

func resultCmd[T any](r Result[T]) tea.Cmd {
	return action.Cmd(Source, r)
}
