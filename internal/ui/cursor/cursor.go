// Package cursor provides the highlight cursor of a row list whose rows may
// not all be focusable (group headers are skipped).
package cursor

// Skip reports whether row i cannot hold the cursor. A nil Skip allows
// every row.
type Skip func(i int) bool

// Cursor tracks the highlighted row. The list length and skip predicate are
// passed to methods rather than stored, since the rows change with every
// search.
type Cursor struct {
	pos int // highlighted row, -1 when nothing is focusable
}

// New creates a cursor on the first row.
func New() Cursor {
	return Cursor{}
}

// Pos returns the highlighted row, or -1.
func (c Cursor) Pos() int {
	return c.pos
}

// Valid reports whether the cursor rests on a row of a list of length n.
func (c Cursor) Valid(n int) bool {
	return c.pos >= 0 && c.pos < n
}

// Move moves the cursor by delta focusable rows, stopping at the last
// focusable row in that direction. Returns true if the position changed.
func (c *Cursor) Move(delta, n int, skip Skip) bool {
	if n == 0 || delta == 0 {
		return false
	}
	if !c.Valid(n) || blocked(skip, c.pos) {
		return c.Clamp(n, skip)
	}
	step := 1
	if delta < 0 {
		step, delta = -1, -delta
	}
	pos := c.pos
	for ; delta > 0; delta-- {
		next := scan(pos+step, step, n, skip)
		if next < 0 {
			break
		}
		pos = next
	}
	moved := pos != c.pos
	c.pos = pos
	return moved
}

// Jump places the cursor on the first focusable row at or after pos, or
// failing that the last one before it.
func (c *Cursor) Jump(pos, n int, skip Skip) {
	if n == 0 {
		c.pos = -1
		return
	}
	pos = clamp(pos, n-1)
	if p := scan(pos, 1, n, skip); p >= 0 {
		c.pos = p
		return
	}
	c.pos = scan(pos, -1, n, skip)
}

// JumpStart moves the cursor to the first focusable row.
func (c *Cursor) JumpStart(n int, skip Skip) {
	c.Jump(0, n, skip)
}

// JumpEnd moves the cursor to the last focusable row.
func (c *Cursor) JumpEnd(n int, skip Skip) {
	if n == 0 {
		c.pos = -1
		return
	}
	c.pos = scan(n-1, -1, n, skip)
}

// Clamp brings the cursor back onto a focusable row after the list changed.
// Returns true if the cursor was adjusted.
func (c *Cursor) Clamp(n int, skip Skip) bool {
	old := c.pos
	c.Jump(max(c.pos, 0), n, skip)
	return c.pos != old
}

// Reset moves the cursor back to the top of a list not yet known.
func (c *Cursor) Reset() {
	c.pos = 0
}

// scan returns the first focusable row from i walking by step, or -1.
func scan(i, step, n int, skip Skip) int {
	for ; i >= 0 && i < n; i += step {
		if !blocked(skip, i) {
			return i
		}
	}
	return -1
}

func blocked(skip Skip, i int) bool {
	return skip != nil && skip(i)
}

func clamp(v, maxVal int) int {
	if v < 0 {
		return 0
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
