package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Paint is the style class of a canvas cell.
type Paint uint8

const (
	PaintBlank Paint = iota
	PaintTile
	PaintTileFocused
	PaintTileSelected
	PaintTileSelecting
	PaintTileDeselecting
	PaintTileDragging
	PaintTileFaded
	PaintFolder
	PaintBox
	PaintBoxFading
	PaintOverlay
	PaintBadge
	paintCount
)

var paintStyles = [paintCount]lipgloss.Style{
	PaintBlank:           lipgloss.NewStyle(),
	PaintTile:            lipgloss.NewStyle().Foreground(lipgloss.Color("#d7d9da")),
	PaintTileFocused:     lipgloss.NewStyle().Foreground(lipgloss.Color("#a7754e")).Bold(true),
	PaintTileSelected:    lipgloss.NewStyle().Foreground(lipgloss.Color("#16161d")).Background(lipgloss.Color("#7f57b4")),
	PaintTileSelecting:   lipgloss.NewStyle().Foreground(lipgloss.Color("#d7d9da")).Background(lipgloss.Color("#4b3a66")),
	PaintTileDeselecting: lipgloss.NewStyle().Foreground(lipgloss.Color("#9ba0bf")).Background(lipgloss.Color("#3a2a30")),
	PaintTileDragging:    lipgloss.NewStyle().Foreground(lipgloss.Color("#4a4f6a")),
	PaintTileFaded:       lipgloss.NewStyle().Foreground(lipgloss.Color("#6b6f88")),
	PaintFolder:          lipgloss.NewStyle().Foreground(lipgloss.Color("#436b77")).Bold(true),
	PaintBox:             lipgloss.NewStyle().Foreground(lipgloss.Color("#c78854")),
	PaintBoxFading:       lipgloss.NewStyle().Foreground(lipgloss.Color("#6b5a48")),
	PaintOverlay:         lipgloss.NewStyle().Foreground(lipgloss.Color("#16161d")).Background(lipgloss.Color("#a7754e")),
	PaintBadge:           lipgloss.NewStyle().Foreground(lipgloss.Color("#16161d")).Background(lipgloss.Color("#c78854")).Bold(true),
}

// Canvas is a fixed-size cell buffer that later draws overwrite.
type Canvas struct {
	w, h   int
	runes  []rune
	paints []Paint
}

// NewCanvas allocates a blank canvas.
func NewCanvas(w, h int) *Canvas {
	w, h = max(w, 0), max(h, 0)
	c := &Canvas{w: w, h: h, runes: make([]rune, w*h), paints: make([]Paint, w*h)}
	for i := range c.runes {
		c.runes[i] = ' '
	}
	return c
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (int, int) {
	return c.w, c.h
}

// Set writes one cell; out-of-bounds writes are dropped.
func (c *Canvas) Set(x, y int, r rune, p Paint) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.runes[y*c.w+x] = r
	c.paints[y*c.w+x] = p
}

// At returns the rune and paint of one cell.
func (c *Canvas) At(x, y int) (rune, Paint) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return 0, PaintBlank
	}
	return c.runes[y*c.w+x], c.paints[y*c.w+x]
}

// Text writes s starting at (x, y), clipped to maxW cells.
func (c *Canvas) Text(x, y int, s string, maxW int, p Paint) {
	n := 0
	for _, r := range s {
		if n >= maxW {
			return
		}
		c.Set(x+n, y, r, p)
		n++
	}
}

// Fill paints the rectangle with r.
func (c *Canvas) Fill(x, y, w, h int, r rune, p Paint) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			c.Set(xx, yy, r, p)
		}
	}
}

// Plain returns the canvas text without styling.
func (c *Canvas) Plain() string {
	lines := make([]string, c.h)
	for y := 0; y < c.h; y++ {
		lines[y] = string(c.runes[y*c.w : (y+1)*c.w])
	}
	return strings.Join(lines, "\n")
}

// Render returns the styled canvas, one lipgloss render per run of equal
// paint.
func (c *Canvas) Render() string {
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		row := y * c.w
		start := 0
		for x := 1; x <= c.w; x++ {
			if x < c.w && c.paints[row+x] == c.paints[row+start] {
				continue
			}
			run := string(c.runes[row+start : row+x])
			if p := c.paints[row+start]; p == PaintBlank {
				b.WriteString(run)
			} else {
				b.WriteString(paintStyles[p].Render(run))
			}
			start = x
		}
		if y < c.h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
