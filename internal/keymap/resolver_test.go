//nolint:goconst // test cases intentionally repeat strings for readability
package keymap

import (
	"slices"
	"testing"
)

func TestResolver_Resolve(t *testing.T) {
	bindings := []Binding{
		{ActionClose, []string{"esc"}, "Close", "global"},
		{ActionToggle, []string{" "}, "Toggle", "selection"},
		{ActionMoveUp, []string{"up", "ctrl+p"}, "Move up", "list"},
		{ActionMoveDown, []string{"down", "ctrl+n"}, "Move down", "list"},
	}

	r := NewResolver(bindings)

	tests := []struct {
		key      string
		expected Action
	}{
		{"esc", ActionClose},
		{" ", ActionToggle},
		{"up", ActionMoveUp},
		{"ctrl+p", ActionMoveUp},
		{"down", ActionMoveDown},
		{"ctrl+n", ActionMoveDown},
		{"unknown", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			result := r.Resolve(tt.key)
			if result != tt.expected {
				t.Errorf("Resolve(%q) = %q, want %q", tt.key, result, tt.expected)
			}
		})
	}
}

func TestResolver_KeysFor(t *testing.T) {
	bindings := []Binding{
		{ActionClose, []string{"esc"}, "Close", "global"},
		{ActionGoBack, []string{"left", "backspace"}, "Back", "menu"},
	}

	r := NewResolver(bindings)

	tests := []struct {
		action   Action
		expected []string
	}{
		{ActionClose, []string{"esc"}},
		{ActionGoBack, []string{"left", "backspace"}},
		{Action("unknown"), nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			result := r.KeysFor(tt.action)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("KeysFor(%q) = %v, want nil", tt.action, result)
				}
				return
			}

			if len(result) != len(tt.expected) {
				t.Errorf("KeysFor(%q) = %v, want %v", tt.action, result, tt.expected)
				return
			}

			for _, key := range tt.expected {
				if !slices.Contains(result, key) {
					t.Errorf("KeysFor(%q) missing key %q, got %v", tt.action, key, result)
				}
			}
		})
	}
}

func TestResolver_DeduplicatesKeys(t *testing.T) {
	bindings := []Binding{
		{ActionSelect, []string{"enter", "right"}, "Select", "list"},
		{ActionSelect, []string{"enter"}, "Open menu", "menu"},
	}

	r := NewResolver(bindings)

	count := 0
	for _, k := range r.KeysFor(ActionSelect) {
		if k == "enter" {
			count++
		}
	}

	if count != 1 {
		t.Errorf("expected 'enter' to appear once after deduplication, got %d", count)
	}
}

func TestResolver_WithPickerBindings(t *testing.T) {
	r := NewResolver(Bindings)

	tests := []struct {
		key      string
		expected Action
	}{
		{"esc", ActionClose},
		{"enter", ActionSelect},
		{" ", ActionToggle},
		{"ctrl+a", ActionSelectAll},
		{"ctrl+x", ActionClearAll},
		{"backspace", ActionGoBack},
		{"pgdown", ActionPageDown},
	}

	for _, tt := range tests {
		if action := r.Resolve(tt.key); action != tt.expected {
			t.Errorf("Resolve(%q) = %q, want %q", tt.key, action, tt.expected)
		}
	}
}

func TestResolver_Hint(t *testing.T) {
	r := NewResolver(Bindings)

	tests := []struct {
		action   Action
		label    string
		expected string
	}{
		{ActionSelectAll, "all", "ctrl+a all"},
		{ActionToggle, "toggle", "space toggle"},
		{ActionGoBack, "back", "left back"},
		{Action("unbound"), "nothing", ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			if got := r.Hint(tt.action, tt.label); got != tt.expected {
				t.Errorf("Hint(%q) = %q, want %q", tt.action, got, tt.expected)
			}
		})
	}
}

func TestDedupe(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{"no duplicates", []string{"a", "b", "c"}, []string{"a", "b", "c"}},
		{"with duplicates", []string{"a", "b", "a", "c", "b"}, []string{"a", "b", "c"}},
		{"all duplicates", []string{"a", "a", "a"}, []string{"a"}},
		{"empty slice", []string{}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := dedupe(tt.input)
			if !slices.Equal(result, tt.expected) {
				t.Errorf("dedupe(%v) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestResolver_EmptyBindings(t *testing.T) {
	r := NewResolver([]Binding{})

	if action := r.Resolve("esc"); action != "" {
		t.Errorf("Resolve on empty resolver should return empty, got %q", action)
	}

	if keys := r.KeysFor(ActionClose); keys != nil {
		t.Errorf("KeysFor on empty resolver should return nil, got %v", keys)
	}
}
