// Package virtual computes which rows of a long list intersect the viewport.
// Rows start with an estimated size and switch to their measured size once
// rendered; measurements are keyed by row identity so they never leak onto a
// different row that later occupies the same position.
package virtual

import "sort"

// DefaultEstimate is the size assumed for a row that has not been measured.
const DefaultEstimate = 1

// Item is one visible row with its absolute offset.
type Item struct {
	Index  int
	Key    string
	Offset int
	Size   int
}

// Frame is the result of a window computation.
type Frame struct {
	Start, End int // visible range [Start, End)
	Items      []Item
	TotalSize  int
	Scroll     int // scroll offset the frame was computed for, after clamping
}

// Empty reports whether no rows are visible.
func (f Frame) Empty() bool {
	return f.End <= f.Start
}

// Window holds the size model of one row sequence.
type Window struct {
	estimate int
	overscan int

	keys     []string
	measured map[string]int
	offsets  []int // offsets[i] = start of row i; offsets[len] = total
	dirty    bool
}

// New creates a window with the given estimate and overscan (rows rendered
// beyond each edge of the viewport).
func New(estimate, overscan int) *Window {
	if estimate < 1 {
		estimate = DefaultEstimate
	}
	return &Window{
		estimate: estimate,
		overscan: max(overscan, 0),
		measured: make(map[string]int),
		offsets:  []int{0},
	}
}

// SetRows installs a new sequence identified by one key per row. When the
// sequence differs from the current one the measurement cache is dropped.
func (w *Window) SetRows(keys []string) {
	if sameKeys(w.keys, keys) {
		return
	}
	w.keys = append(w.keys[:0:0], keys...)
	clear(w.measured)
	w.dirty = true
}

// Len returns the number of rows.
func (w *Window) Len() int {
	return len(w.keys)
}

// Measure records the real size of row index. The report is ignored when key
// no longer identifies the row at that index. Returns true if the size model
// changed.
func (w *Window) Measure(index int, key string, size int) bool {
	if index < 0 || index >= len(w.keys) || w.keys[index] != key {
		return false
	}
	size = max(size, 0)
	if cur, ok := w.measured[key]; ok && cur == size {
		return false
	}
	w.measured[key] = size
	w.dirty = true
	return true
}

// Measured reports whether row index has a measured size.
func (w *Window) Measured(index int) bool {
	if index < 0 || index >= len(w.keys) {
		return false
	}
	_, ok := w.measured[w.keys[index]]
	return ok
}

// SizeOf returns the current size of row index.
func (w *Window) SizeOf(index int) int {
	if s, ok := w.measured[w.keys[index]]; ok {
		return s
	}
	return w.estimate
}

// TotalSize returns the scrollable extent.
func (w *Window) TotalSize() int {
	w.layout()
	return w.offsets[len(w.keys)]
}

// OffsetOf returns the start offset of row index.
func (w *Window) OffsetOf(index int) int {
	w.layout()
	index = clamp(index, 0, len(w.keys))
	return w.offsets[index]
}

// IndexAt returns the row covering absolute offset pos, or -1 when pos is
// outside the list.
func (w *Window) IndexAt(pos int) int {
	w.layout()
	n := len(w.keys)
	if n == 0 || pos < 0 || pos >= w.offsets[n] {
		return -1
	}
	// First row whose end is past pos.
	return sort.Search(n, func(i int) bool {
		return w.offsets[i+1] > pos
	})
}

// ClampScroll limits scroll to [0, max(total-viewport, 0)].
func (w *Window) ClampScroll(scroll, viewport int) int {
	return clamp(scroll, 0, max(w.TotalSize()-viewport, 0))
}

// Compute returns the rows intersecting [scroll, scroll+viewport), extended
// by the overscan, together with their offsets.
func (w *Window) Compute(scroll, viewport int) Frame {
	w.layout()
	n := len(w.keys)
	viewport = max(viewport, 1)
	scroll = w.ClampScroll(scroll, viewport)
	frame := Frame{TotalSize: w.offsets[n], Scroll: scroll}
	if n == 0 {
		return frame
	}

	start := w.firstEndingAfter(scroll)
	end := start + 1
	for end < n && w.offsets[end] < scroll+viewport {
		end++
	}

	frame.Start = max(start-w.overscan, 0)
	frame.End = min(end+w.overscan, n)
	frame.Items = make([]Item, 0, frame.End-frame.Start)
	for i := frame.Start; i < frame.End; i++ {
		frame.Items = append(frame.Items, Item{
			Index:  i,
			Key:    w.keys[i],
			Offset: w.offsets[i],
			Size:   w.offsets[i+1] - w.offsets[i],
		})
	}
	return frame
}

// ScrollTo returns the scroll offset that brings row index fully into view
// while moving as little as possible from scroll.
func (w *Window) ScrollTo(index, scroll, viewport int) int {
	w.layout()
	if len(w.keys) == 0 {
		return 0
	}
	index = clamp(index, 0, len(w.keys)-1)
	top := w.offsets[index]
	bottom := w.offsets[index+1]

	if top < scroll {
		scroll = top
	} else if bottom > scroll+viewport {
		scroll = bottom - viewport
	}
	return w.ClampScroll(scroll, viewport)
}

// firstEndingAfter returns the first row whose end offset is greater than
// pos, clamped to the last row. Zero-sized rows at pos are skipped.
func (w *Window) firstEndingAfter(pos int) int {
	n := len(w.keys)
	i := sort.Search(n, func(i int) bool {
		return w.offsets[i+1] > pos
	})
	return min(i, n-1)
}

func (w *Window) layout() {
	if !w.dirty && len(w.offsets) == len(w.keys)+1 {
		return
	}
	n := len(w.keys)
	if cap(w.offsets) < n+1 {
		w.offsets = make([]int, n+1)
	}
	w.offsets = w.offsets[:n+1]
	w.offsets[0] = 0
	for i := range n {
		w.offsets[i+1] = w.offsets[i] + w.SizeOf(i)
	}
	w.dirty = false
}

func sameKeys(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
