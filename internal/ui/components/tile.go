package components

import (
	"fmt"
	"strings"
)

type frame struct {
	tl, tr, bl, br, h, v rune
}

var (
	tileFrame    = frame{'╭', '╮', '╰', '╯', '─', '│'}
	focusedFrame = frame{'┏', '┓', '┗', '┛', '━', '┃'}
	boxFrame     = frame{'┌', '┐', '└', '┘', '┄', '┆'}
)

// TileView describes one grid tile.
type TileView struct {
	Title    string
	Subtitle string
	Folder   bool
	Focused  bool
	Paint    Paint
}

// DrawTile draws a framed tile with a centered title and subtitle. Tiles
// narrower than three cells or shorter than two rows are skipped.
func DrawTile(c *Canvas, x, y, w, h int, t TileView) {
	if w < 3 || h < 2 {
		return
	}
	f := tileFrame
	if t.Focused {
		f = focusedFrame
	}
	p := t.Paint
	c.Fill(x+1, y+1, w-2, h-2, ' ', p)
	drawFrame(c, x, y, w, h, f, p)

	inner := w - 2
	title := t.Title
	if t.Folder {
		title = "▸ " + title
	}
	lines := []string{ClampTextWidth(title, inner)}
	if t.Subtitle != "" {
		lines = append(lines, ClampTextWidth(t.Subtitle, inner))
	}
	top := y + 1 + max((h-2-len(lines))/2, 0)
	for i, line := range lines {
		if top+i >= y+h-1 {
			break
		}
		lp := p
		if i == 0 && t.Folder && p == PaintTile {
			lp = PaintFolder
		}
		n := len([]rune(line))
		c.Text(x+1+(inner-n)/2, top+i, line, inner, lp)
	}
}

// DrawSelectionBox draws the dashed rubber band outline.
func DrawSelectionBox(c *Canvas, x, y, w, h int, fading bool) {
	p := PaintBox
	if fading {
		p = PaintBoxFading
	}
	if w < 2 || h < 2 {
		c.Fill(x, y, max(w, 1), max(h, 1), '┄', p)
		return
	}
	drawFrame(c, x, y, w, h, boxFrame, p)
}

// DrawStack draws a drag preview: one small card per layer, each offset one
// cell down-right of the layer below, with an overflow badge.
func DrawStack(c *Canvas, x, y int, titles []string, overflow int) {
	const w, h = 16, 3
	for i := len(titles) - 1; i >= 0; i-- {
		ox := x + i
		oy := y + i
		c.Fill(ox, oy, w, h, ' ', PaintOverlay)
		drawFrame(c, ox, oy, w, h, tileFrame, PaintOverlay)
		c.Text(ox+1, oy+1, ClampTextWidth(titles[i], w-2), w-2, PaintOverlay)
	}
	if overflow > 0 {
		badge := fmt.Sprintf(" +%d ", overflow)
		c.Text(x+w-len(badge)+len(titles)-1, y, badge, len(badge), PaintBadge)
	}
}

func drawFrame(c *Canvas, x, y, w, h int, f frame, p Paint) {
	horiz := []rune(strings.Repeat(string(f.h), w-2))
	for i, r := range horiz {
		c.Set(x+1+i, y, r, p)
		c.Set(x+1+i, y+h-1, r, p)
	}
	for yy := y + 1; yy < y+h-1; yy++ {
		c.Set(x, yy, f.v, p)
		c.Set(x+w-1, yy, f.v, p)
	}
	c.Set(x, y, f.tl, p)
	c.Set(x+w-1, y, f.tr, p)
	c.Set(x, y+h-1, f.bl, p)
	c.Set(x+w-1, y+h-1, f.br, p)
}
