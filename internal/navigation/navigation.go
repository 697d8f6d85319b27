// Package navigation tracks which menu of an option tree is on screen.
//
// The stack always holds the root frame. Drilling into a menu pushes a
// frame holding that menu and its children; going back pops one. The
// depth limit defaults to one level below the root.
package navigation

import (
	"github.com/llehouerou/picker/internal/option"
	"github.com/llehouerou/picker/internal/selection"
)

// DefaultMaxDepth is the number of menu levels below the root.
const DefaultMaxDepth = 1

// Frame is one navigation context. Menu is nil for the root frame.
type Frame[T any] struct {
	Menu    *option.Option[T]
	Options []option.Option[T]
}

// Stack is the navigation state of one picker.
type Stack[T any] struct {
	frames   []Frame[T]
	maxDepth int
}

// New creates a stack positioned at root. maxDepth below 1 is raised to 1.
func New[T any](root []option.Option[T], maxDepth int) *Stack[T] {
	s := &Stack[T]{maxDepth: max(maxDepth, 1)}
	s.Reset(root)
	return s
}

// Reset discards every frame and shows root.
func (s *Stack[T]) Reset(root []option.Option[T]) {
	s.frames = append(s.frames[:0], Frame[T]{Options: root})
}

// DrillIn pushes parent when it has children and the depth limit allows it.
// It reports whether the stack moved.
func (s *Stack[T]) DrillIn(parent option.Option[T]) bool {
	if !parent.CanDrill() || s.Depth() >= s.maxDepth {
		return false
	}
	p := parent
	s.frames = append(s.frames, Frame[T]{Menu: &p, Options: parent.SubMenu})
	return true
}

// GoBack pops the current menu. It is a no-op at root.
func (s *Stack[T]) GoBack() bool {
	if s.AtRoot() {
		return false
	}
	s.frames[len(s.frames)-1] = Frame[T]{}
	s.frames = s.frames[:len(s.frames)-1]
	return true
}

// Current returns the frame on screen.
func (s *Stack[T]) Current() Frame[T] {
	return s.frames[len(s.frames)-1]
}

// Root returns the root option list.
func (s *Stack[T]) Root() []option.Option[T] {
	return s.frames[0].Options
}

// Menu returns the menu on screen, or nil at root.
func (s *Stack[T]) Menu() *option.Option[T] {
	return s.Current().Menu
}

// AtRoot reports whether the root list is on screen.
func (s *Stack[T]) AtRoot() bool {
	return len(s.frames) == 1
}

// Depth returns the number of menus entered.
func (s *Stack[T]) Depth() int {
	return len(s.frames) - 1
}

// MaxDepth returns the depth limit.
func (s *Stack[T]) MaxDepth() int {
	return s.maxDepth
}

// Path returns the entered menus from the outermost inwards.
func (s *Stack[T]) Path() []option.Option[T] {
	out := make([]option.Option[T], 0, s.Depth())
	for _, f := range s.frames[1:] {
		out = append(out, *f.Menu)
	}
	return out
}

// Scope returns the universe bulk selection operates on. At root it is the
// whole tree, inside a menu it is that menu's unfiltered children.
func (s *Stack[T]) Scope() selection.Scope[T] {
	f := s.Current()
	if f.Menu == nil {
		return selection.RootScope(f.Options)
	}
	return selection.Scope[T]{Menu: f.Menu, Options: f.Options}
}
