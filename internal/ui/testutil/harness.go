package testutil

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/picker/internal/ui/action"
)

// maxDrainSteps bounds Drain so a self-rescheduling command cannot hang a test.
const maxDrainSteps = 200

// Component is a UI component whose Update returns the updated component,
// the way bubbletea sub-models do.
type Component[C any] interface {
	Update(msg tea.Msg) (C, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// Harness wraps a component for testing, feeding it messages and running
// the commands it returns the way the bubbletea runtime would.
type Harness[C Component[C]] struct {
	comp    C
	skip    func(tea.Msg) bool
	actions []action.Msg
}

// NewHarness creates a harness. Messages for which skip returns true are
// dropped by Drain instead of being delivered (e.g. animation ticks).
func NewHarness[C Component[C]](c C, skip func(tea.Msg) bool) *Harness[C] {
	return &Harness[C]{comp: c, skip: skip}
}

// SetSize sets the component dimensions.
func (h *Harness[C]) SetSize(width, height int) {
	h.comp.SetSize(width, height)
}

// View returns the component's rendered content with styles stripped.
func (h *Harness[C]) View() string {
	return StripANSI(h.comp.View())
}

// Send delivers msg and drains the resulting commands.
func (h *Harness[C]) Send(msg tea.Msg) {
	h.Drain(h.update(msg))
}

// Key delivers a named key ("enter", "down", "ctrl+a", " ", ...) and drains.
func (h *Harness[C]) Key(key string) {
	h.Send(KeyMsg(key))
}

// Type delivers text one rune at a time, draining after each keystroke.
func (h *Harness[C]) Type(text string) {
	for _, r := range text {
		h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// Click delivers a left click at the given cell.
func (h *Harness[C]) Click(x, y int) {
	h.Send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

// Drain runs cmd and every command it leads to, feeding the resulting
// messages back into the component. action.Msg values are addressed to the
// host and are collected instead.
func (h *Harness[C]) Drain(cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0 && steps < maxDrainSteps; steps++ {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case action.Msg:
			h.actions = append(h.actions, msg)
		default:
			if h.skip != nil && h.skip(msg) {
				continue
			}
			queue = append(queue, h.update(msg))
		}
	}
}

func (h *Harness[C]) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.comp, cmd = h.comp.Update(msg)
	return cmd
}

// Actions returns the action messages emitted since creation or the last
// ClearActions.
func (h *Harness[C]) Actions() []action.Msg {
	return h.actions
}

// LastAction returns the most recent action message, or false if none.
func (h *Harness[C]) LastAction() (action.Msg, bool) {
	if len(h.actions) == 0 {
		return action.Msg{}, false
	}
	return h.actions[len(h.actions)-1], true
}

// ClearActions forgets collected action messages.
func (h *Harness[C]) ClearActions() {
	h.actions = nil
}

// Collect runs cmd, flattening batches, and returns the produced messages
// without delivering them. Used to reorder asynchronous results.
func Collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, Collect(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

// KeyMsg builds the tea.KeyMsg whose String() is key.
func KeyMsg(key string) tea.KeyMsg {
	if key == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	if t, ok := keyTypes[key]; ok {
		return tea.KeyMsg{Type: t}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

var keyTypes = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEscape,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"home":      tea.KeyHome,
	"end":       tea.KeyEnd,
	"pgup":      tea.KeyPgUp,
	"pgdown":    tea.KeyPgDown,
	"backspace": tea.KeyBackspace,
	"tab":       tea.KeyTab,
	"ctrl+a":    tea.KeyCtrlA,
	"ctrl+c":    tea.KeyCtrlC,
	"ctrl+n":    tea.KeyCtrlN,
	"ctrl+p":    tea.KeyCtrlP,
	"ctrl+x":    tea.KeyCtrlX,
}
