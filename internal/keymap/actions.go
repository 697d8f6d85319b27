// Package keymap defines key bindings and action dispatch for the picker.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionClose Action = "close"
	ActionQuit  Action = "quit"

	// List movement
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionPageUp    Action = "page_up"
	ActionPageDown  Action = "page_down"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"

	// Activation
	ActionSelect Action = "select" // enter - drill into a menu or toggle
	ActionToggle Action = "toggle" // space - toggle without drilling

	// Menu navigation
	ActionGoBack Action = "go_back" // left/backspace on an empty query

	// Bulk selection (multi-select only)
	ActionSelectAll Action = "select_all"
	ActionClearAll  Action = "clear_all"
)
