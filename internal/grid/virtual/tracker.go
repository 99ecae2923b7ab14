package virtual

// Window keeps the last computed Range and recomputes it when the container
// size, scroll offset or item count changes.
type Window struct {
	params Params
	rng    Range
	valid  bool
}

// NewWindow creates a window with the fixed layout parameters of p.
func NewWindow(p Params) *Window {
	w := &Window{params: p}
	w.recompute()
	return w
}

// Range returns the current range.
func (w *Window) Range() Range {
	return w.rng
}

// Params returns the inputs of the current range.
func (w *Window) Params() Params {
	return w.params
}

// Resize updates the container size. It reports whether the range changed.
func (w *Window) Resize(width, height float64) bool {
	if w.params.ContainerWidth == width && w.params.ContainerHeight == height && w.valid {
		return false
	}
	w.params.ContainerWidth = width
	w.params.ContainerHeight = height
	return w.recompute()
}

// Scroll updates the scroll offset. It reports whether the range changed.
func (w *Window) Scroll(offset float64) bool {
	if w.params.ScrollOffset == offset && w.valid {
		return false
	}
	w.params.ScrollOffset = offset
	return w.recompute()
}

// SetCount updates the item count. It reports whether the range changed.
func (w *Window) SetCount(n int) bool {
	if w.params.ItemCount == n && w.valid {
		return false
	}
	w.params.ItemCount = n
	return w.recompute()
}

// ClampScroll pins the scroll offset to the scrollable extent and returns it.
func (w *Window) ClampScroll() float64 {
	m := MaxScroll(w.params.ItemCount, w.rng.Columns, w.params.RowHeight, w.params.ContainerHeight)
	off := w.params.ScrollOffset
	if off > m {
		off = m
	}
	if off < 0 {
		off = 0
	}
	w.Scroll(off)
	return off
}

func (w *Window) recompute() bool {
	next := Compute(w.params)
	changed := !w.valid || next != w.rng
	w.rng = next
	w.valid = true
	return changed
}
