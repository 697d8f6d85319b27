package selection

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/llehouerou/picker/internal/option"
)

// Multi is a set of options keyed by extracted key, remembering insertion
// order for display.
type Multi[T any] struct {
	key option.KeyFunc[T]
	set *orderedmap.OrderedMap[string, option.Option[T]]
}

var _ Model[int] = (*Multi[int])(nil)

// NewMulti creates an empty multi selection.
func NewMulti[T any](key option.KeyFunc[T]) *Multi[T] {
	return &Multi[T]{
		key: key,
		set: orderedmap.New[string, option.Option[T]](),
	}
}

// Toggle adds o if absent and removes it if present. The popup stays open.
func (m *Multi[T]) Toggle(o option.Option[T]) (changed, closePopup bool) {
	if !selectable(o) {
		return false, false
	}
	k := m.key.Key(o)
	if _, ok := m.set.Delete(k); !ok {
		m.set.Set(k, o)
	}
	return true, false
}

// IsSelected implements Model.
func (m *Multi[T]) IsSelected(o option.Option[T]) bool {
	_, ok := m.set.Get(m.key.Key(o))
	return ok
}

// Set replaces the selection with values, dropping key duplicates.
func (m *Multi[T]) Set(values []option.Option[T]) {
	m.set = orderedmap.New[string, option.Option[T]]()
	for _, v := range values {
		k := m.key.Key(v)
		if _, ok := m.set.Get(k); !ok {
			m.set.Set(k, v)
		}
	}
}

// Values implements Model.
func (m *Multi[T]) Values() []option.Option[T] {
	out := make([]option.Option[T], 0, m.set.Len())
	for pair := m.set.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Keys returns the selected keys in insertion order.
func (m *Multi[T]) Keys() []string {
	out := make([]string, 0, m.set.Len())
	for pair := m.set.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// Len implements Model.
func (m *Multi[T]) Len() int {
	return m.set.Len()
}

// Clear implements Model.
func (m *Multi[T]) Clear() {
	m.set = orderedmap.New[string, option.Option[T]]()
}

// Multiple implements Model.
func (m *Multi[T]) Multiple() bool { return true }

// SelectAll adds every selectable leaf of scope, tagged with its menu.
// Existing entries keep their position. Returns the number added.
func (m *Multi[T]) SelectAll(scope Scope[T]) int {
	added := 0
	for _, leaf := range scope.Leaves() {
		k := m.key.Key(leaf)
		if _, ok := m.set.Get(k); ok {
			continue
		}
		m.set.Set(k, leaf)
		added++
	}
	return added
}

// ClearAll empties the selection at root. Inside a menu only the keys of
// that menu's leaves are removed. Returns the number removed.
func (m *Multi[T]) ClearAll(scope Scope[T]) int {
	if scope.AtRoot() {
		n := m.set.Len()
		m.Clear()
		return n
	}
	removed := 0
	for _, leaf := range scope.Leaves() {
		if _, ok := m.set.Delete(m.key.Key(leaf)); ok {
			removed++
		}
	}
	return removed
}

// IsAllSelected reports whether every selectable leaf of scope is selected.
// A scope without selectable leaves is never all-selected.
func (m *Multi[T]) IsAllSelected(scope Scope[T]) bool {
	leaves := scope.Leaves()
	if len(leaves) == 0 {
		return false
	}
	return m.countSelected(leaves) == len(leaves)
}

// IsNoneSelected reports whether nothing in scope is selected. At root this
// is the whole selection.
func (m *Multi[T]) IsNoneSelected(scope Scope[T]) bool {
	if scope.AtRoot() {
		return m.set.Len() == 0
	}
	return m.countSelected(scope.Leaves()) == 0
}

// IsAllSubmenuSelected reports whether every selectable immediate child of
// menu is selected.
func (m *Multi[T]) IsAllSubmenuSelected(menu option.Option[T]) bool {
	selected, total := m.submenuCounts(menu)
	return total > 0 && selected == total
}

// IsPartiallySubmenuSelected reports whether some but not all selectable
// immediate children of menu are selected.
func (m *Multi[T]) IsPartiallySubmenuSelected(menu option.Option[T]) bool {
	selected, total := m.submenuCounts(menu)
	return selected > 0 && selected < total
}

func (m *Multi[T]) submenuCounts(menu option.Option[T]) (selected, total int) {
	for _, child := range menu.SubMenu {
		if !selectable(child) {
			continue
		}
		total++
		if m.IsSelected(child) {
			selected++
		}
	}
	return selected, total
}

func (m *Multi[T]) countSelected(opts []option.Option[T]) int {
	n := 0
	for _, o := range opts {
		if m.IsSelected(o) {
			n++
		}
	}
	return n
}
