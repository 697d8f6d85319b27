package ui

// Base provides the size bookkeeping shared by picker components.
// Embed this in component models to get the standard methods.
//
// Example:
//
//	type Model struct {
//	    ui.Base
//	    window *virtual.Window
//	}
type Base struct {
	width, height int
}

// SetSize sets the component dimensions.
func (b *Base) SetSize(width, height int) {
	b.width = width
	b.height = height
}

// Size returns the component dimensions.
func (b Base) Size() (width, height int) {
	return b.width, b.height
}

// Width returns the component width.
func (b Base) Width() int {
	return b.width
}

// Height returns the component height.
func (b Base) Height() int {
	return b.height
}

// ListHeight returns available height for list content after subtracting
// overhead, never less than one line.
func (b Base) ListHeight(overhead int) int {
	return max(b.height-overhead, 1)
}

// ContentWidth returns the width left inside a bordered, padded box.
func (b Base) ContentWidth() int {
	return max(b.width-BoxOverheadX, 1)
}
