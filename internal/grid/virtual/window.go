// Package virtual decides which slice of a large grid needs a render surface
// for the current scroll position.
package virtual

import "math"

// Params are the inputs of Compute. Sizes share the unit of the rendering
// surface (pixels, terminal cells, ...).
type Params struct {
	ItemCount       int
	ContainerWidth  float64
	ContainerHeight float64
	ScrollOffset    float64
	MinItemWidth    float64
	RowHeight       float64
	BufferRows      int
	// Scrollable is false when neither the container nor the window can
	// scroll; virtualization is then disabled.
	Scrollable bool
}

// Range is the contiguous, inclusive index range that must be rendered plus
// the padding that keeps the scroll height stable.
type Range struct {
	Start, End       int
	StartRow, EndRow int
	Columns          int
	RowHeight        float64
	TotalRows        int
	TopPadding       float64
	BottomPadding    float64
}

// Len returns the number of rendered items.
func (r Range) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start + 1
}

// Contains reports whether index i is rendered.
func (r Range) Contains(i int) bool {
	return i >= r.Start && i <= r.End
}

// RenderedHeight is the height of the rendered row band.
func (r Range) RenderedHeight() float64 {
	if r.TotalRows == 0 {
		return 0
	}
	return float64(r.EndRow-r.StartRow+1) * r.RowHeight
}

// Virtualized reports whether part of the content is left unrendered.
func (r Range) Virtualized() bool {
	return r.TopPadding > 0 || r.BottomPadding > 0
}

// Columns returns how many items of minItemWidth fit in width, at least one.
func Columns(width, minItemWidth float64) int {
	if width <= 0 || minItemWidth <= 0 {
		return 1
	}
	n := int(math.Floor(width / minItemWidth))
	if n < 1 {
		return 1
	}
	return n
}

// Compute returns the range of items to render. It is a pure function of p.
func Compute(p Params) Range {
	cols := Columns(p.ContainerWidth, p.MinItemWidth)
	rowH := p.RowHeight
	if rowH < 0 {
		rowH = 0
	}
	if p.ItemCount <= 0 {
		return Range{Start: 0, End: -1, StartRow: 0, EndRow: -1, Columns: cols, RowHeight: rowH}
	}

	totalRows := (p.ItemCount + cols - 1) / cols

	// Unknown size renders everything so the first frame is never blank.
	if p.ContainerWidth <= 0 || p.ContainerHeight <= 0 || rowH <= 0 || !p.Scrollable {
		return full(p.ItemCount, cols, rowH, totalRows)
	}
	if float64(totalRows)*rowH <= p.ContainerHeight {
		return full(p.ItemCount, cols, rowH, totalRows)
	}

	scroll := p.ScrollOffset
	if maxScroll := float64(totalRows)*rowH - p.ContainerHeight; scroll > maxScroll {
		scroll = maxScroll
	}
	if scroll < 0 {
		scroll = 0
	}
	buffer := p.BufferRows
	if buffer < 0 {
		buffer = 0
	}

	firstVisible := int(math.Floor(scroll / rowH))
	visibleRows := int(math.Ceil(p.ContainerHeight / rowH))

	startRow := clampInt(firstVisible-buffer, 0, totalRows-1)
	endRow := clampInt(firstVisible+visibleRows+buffer, 0, totalRows-1)

	start := startRow * cols
	end := (endRow+1)*cols - 1
	if end > p.ItemCount-1 {
		end = p.ItemCount - 1
	}

	return Range{
		Start:         start,
		End:           end,
		StartRow:      startRow,
		EndRow:        endRow,
		Columns:       cols,
		RowHeight:     rowH,
		TotalRows:     totalRows,
		TopPadding:    float64(startRow) * rowH,
		BottomPadding: float64(totalRows-1-endRow) * rowH,
	}
}

func full(count, cols int, rowH float64, totalRows int) Range {
	return Range{
		Start:     0,
		End:       count - 1,
		StartRow:  0,
		EndRow:    totalRows - 1,
		Columns:   cols,
		RowHeight: rowH,
		TotalRows: totalRows,
	}
}

// ScrollToIndex returns the scroll offset needed to make the row of idx
// visible. If the row is already visible, current is returned unchanged.
func ScrollToIndex(idx, columns int, rowHeight, current, viewportHeight float64) float64 {
	if idx < 0 || columns <= 0 || rowHeight <= 0 {
		return current
	}
	row := idx / columns
	top := float64(row) * rowHeight
	bottom := top + rowHeight

	if top < current {
		return top
	}
	if bottom > current+viewportHeight {
		next := bottom - viewportHeight
		if next < 0 {
			return 0
		}
		return next
	}
	return current
}

// MaxScroll returns the largest useful scroll offset.
func MaxScroll(itemCount, columns int, rowHeight, viewportHeight float64) float64 {
	if columns <= 0 {
		columns = 1
	}
	rows := (itemCount + columns - 1) / columns
	m := float64(rows)*rowHeight - viewportHeight
	if m < 0 {
		return 0
	}
	return m
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
