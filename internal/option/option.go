// Package option defines the selectable records shown by the picker.
package option

// Option is a selectable or navigable entry. A non-nil SubMenu marks it as a
// menu node; Menu records the parent an option was reached through and is
// only ever set on derived copies.
type Option[T any] struct {
	Value    T
	SubMenu  []Option[T]
	Disabled bool
	Menu     *Option[T]
}

// KeyFunc extracts the identity of an option value. It must be total,
// deterministic and collision-free over the option universe.
type KeyFunc[T any] func(T) string

// New wraps a value in a leaf option.
func New[T any](v T) Option[T] {
	return Option[T]{Value: v}
}

// NewMenu wraps a value in a menu option holding children.
func NewMenu[T any](v T, children ...Option[T]) Option[T] {
	if children == nil {
		children = []Option[T]{}
	}
	return Option[T]{Value: v, SubMenu: children}
}

// IsMenu reports whether the option carries a submenu.
func (o Option[T]) IsMenu() bool {
	return o.SubMenu != nil
}

// CanDrill reports whether navigating into the option would show anything.
func (o Option[T]) CanDrill() bool {
	return len(o.SubMenu) > 0
}

// WithMenu returns a copy of o tagged with the menu it was reached through.
// The receiver is left untouched.
func (o Option[T]) WithMenu(menu *Option[T]) Option[T] {
	o.Menu = menu
	return o
}

// Key returns the identity of o under fn.
func (fn KeyFunc[T]) Key(o Option[T]) string {
	return fn(o.Value)
}

// Leaves returns every leaf reachable from opts, depth first, preserving
// order. Leaves found below a menu are tagged with that menu. Options with an
// empty submenu are neither leaves nor containers and are skipped.
func Leaves[T any](opts []Option[T]) []Option[T] {
	var out []Option[T]
	collectLeaves(opts, nil, &out)
	return out
}

// LeavesUnder returns the leaves reachable from menu's children, each tagged
// with its immediate parent.
func LeavesUnder[T any](menu Option[T]) []Option[T] {
	var out []Option[T]
	m := menu
	collectLeaves(menu.SubMenu, &m, &out)
	return out
}

func collectLeaves[T any](opts []Option[T], parent *Option[T], out *[]Option[T]) {
	for i := range opts {
		o := opts[i]
		if o.IsMenu() {
			p := o
			collectLeaves(o.SubMenu, &p, out)
			continue
		}
		if parent != nil {
			o = o.WithMenu(parent)
		}
		*out = append(*out, o)
	}
}

// Index maps keys to options for a list, later entries winning.
func Index[T any](opts []Option[T], key KeyFunc[T]) map[string]Option[T] {
	idx := make(map[string]Option[T], len(opts))
	for _, o := range opts {
		idx[key.Key(o)] = o
	}
	return idx
}

// Find searches opts and their submenus for the option with the given key.
func Find[T any](opts []Option[T], key KeyFunc[T], k string) (Option[T], bool) {
	for _, o := range opts {
		if key.Key(o) == k {
			return o, true
		}
		if o.IsMenu() {
			if found, ok := Find(o.SubMenu, key, k); ok {
				return found, true
			}
		}
	}
	var zero Option[T]
	return zero, false
}
