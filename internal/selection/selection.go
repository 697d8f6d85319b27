// Package selection tracks which options are selected. Membership is by
// extracted key only, so structurally different values sharing a key are
// interchangeable.
package selection

import (
	"github.com/llehouerou/picker/internal/option"
)

// Model is the selection behaviour shared by single and multi select.
type Model[T any] interface {
	// Toggle applies a click on o. changed reports whether the selection
	// moved; closePopup asks the controller to close the popup.
	Toggle(o option.Option[T]) (changed, closePopup bool)
	IsSelected(o option.Option[T]) bool
	// Values returns the selection in insertion order.
	Values() []option.Option[T]
	Len() int
	Clear()
	Multiple() bool
}

// Scope is the option universe a bulk operation works on: the root list
// (Menu nil) or one menu's unfiltered children.
type Scope[T any] struct {
	Menu    *option.Option[T]
	Options []option.Option[T]
}

// RootScope returns the scope for the whole option tree.
func RootScope[T any](opts []option.Option[T]) Scope[T] {
	return Scope[T]{Options: opts}
}

// MenuScope returns the scope for menu's children.
func MenuScope[T any](menu option.Option[T]) Scope[T] {
	m := menu
	return Scope[T]{Menu: &m, Options: menu.SubMenu}
}

// AtRoot reports whether the scope covers the root list.
func (s Scope[T]) AtRoot() bool {
	return s.Menu == nil
}

// Leaves returns the selectable leaves of the scope. Leaves reached through
// a submenu are tagged with their parent.
func (s Scope[T]) Leaves() []option.Option[T] {
	var all []option.Option[T]
	if s.Menu == nil {
		all = option.Leaves(s.Options)
	} else {
		menu := *s.Menu
		menu.SubMenu = s.Options
		all = option.LeavesUnder(menu)
	}
	out := all[:0]
	for _, o := range all {
		if selectable(o) {
			out = append(out, o)
		}
	}
	return out
}

// selectable reports whether o can enter a selection. Menus are navigated,
// not selected; disabled options are inert.
func selectable[T any](o option.Option[T]) bool {
	return !o.Disabled && !o.IsMenu()
}

// Single holds at most one selected option.
type Single[T any] struct {
	key      option.KeyFunc[T]
	selected *option.Option[T]
}

var _ Model[int] = (*Single[int])(nil)

// NewSingle creates an empty single selection.
func NewSingle[T any](key option.KeyFunc[T]) *Single[T] {
	return &Single[T]{key: key}
}

// Toggle replaces the selection with o and asks for the popup to close.
// Disabled options and menus are ignored.
func (s *Single[T]) Toggle(o option.Option[T]) (changed, closePopup bool) {
	if !selectable(o) {
		return false, false
	}
	v := o
	s.selected = &v
	return true, true
}

// IsSelected implements Model.
func (s *Single[T]) IsSelected(o option.Option[T]) bool {
	return s.selected != nil && s.key.Key(*s.selected) == s.key.Key(o)
}

// Selected returns the current option, if any.
func (s *Single[T]) Selected() (option.Option[T], bool) {
	if s.selected == nil {
		var zero option.Option[T]
		return zero, false
	}
	return *s.selected, true
}

// Set replaces the selection without any side effect.
func (s *Single[T]) Set(o option.Option[T]) {
	v := o
	s.selected = &v
}

// Values implements Model.
func (s *Single[T]) Values() []option.Option[T] {
	if s.selected == nil {
		return nil
	}
	return []option.Option[T]{*s.selected}
}

// Len implements Model.
func (s *Single[T]) Len() int {
	if s.selected == nil {
		return 0
	}
	return 1
}

// Clear implements Model.
func (s *Single[T]) Clear() {
	s.selected = nil
}

// Multiple implements Model.
func (s *Single[T]) Multiple() bool { return false }
