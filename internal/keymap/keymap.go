package keymap

// Binding maps keys to an action, with a description for help output.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "list", "menu", "selection"
}

// Bindings contains every picker key binding.
var Bindings = []Binding{
	// Global
	{ActionClose, []string{"esc"}, "Close picker", "global"},
	{ActionQuit, []string{"ctrl+c"}, "Quit", "global"},

	// List
	{ActionMoveUp, []string{"up", "ctrl+p"}, "Move up", "list"},
	{ActionMoveDown, []string{"down", "ctrl+n"}, "Move down", "list"},
	{ActionPageUp, []string{"pgup"}, "Page up", "list"},
	{ActionPageDown, []string{"pgdown"}, "Page down", "list"},
	{ActionJumpStart, []string{"home"}, "First option", "list"},
	{ActionJumpEnd, []string{"end"}, "Last option", "list"},
	{ActionSelect, []string{"enter"}, "Open menu / select", "list"},

	// Menu
	{ActionGoBack, []string{"left", "backspace"}, "Back to parent menu", "menu"},

	// Selection
	{ActionToggle, []string{" "}, "Toggle option", "selection"},
	{ActionSelectAll, []string{"ctrl+a"}, "Select all", "selection"},
	{ActionClearAll, []string{"ctrl+x"}, "Clear all", "selection"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
