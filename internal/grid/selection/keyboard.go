package selection

import (
	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid"
)

// KeyDown applies the keyboard fallback and reports whether the key was
// consumed. Escape aborts an in-flight box gesture without committing; other
// keys are ignored while a gesture is active.
func (c *Controller) KeyDown(key grid.KeyCode, mods grid.Modifiers) bool {
	if c.state != StateIdle {
		if key == grid.KeyEscape {
			c.endGesture()
			return true
		}
		return false
	}

	n := len(c.items)
	switch key {
	case grid.KeyEscape:
		if c.host.Selection().Len() > 0 {
			c.commit(grid.NewSet())
		}
		return true
	case grid.KeySelectAll:
		if n == 0 {
			return false
		}
		committed := c.host.Selection()
		c.commitIfChanged(committed, c.span(0, n-1))
		return true
	}
	if n == 0 {
		return false
	}

	switch key {
	case grid.KeySpace:
		c.applyDiscrete(c.focusOrFirst(), grid.ModCtrl)
		return true
	case grid.KeyEnter:
		item := c.items[c.focusOrFirst()]
		grid.SafeCall(c.log, "OnItemActivate", func() error {
			if c.cb.OnItemActivate == nil {
				return nil
			}
			return c.cb.OnItemActivate(item)
		})
		return true
	}

	next, ok := c.step(key)
	if !ok {
		return false
	}
	switch {
	case mods.Shift():
		if c.Anchor() < 0 && c.focus >= 0 {
			c.anchor = c.items[c.focus].Key
		}
		c.applyDiscrete(next, mods&(grid.ModShift|grid.ModCtrl|grid.ModMeta))
	case mods.Toggle():
		c.focus = next
	default:
		c.applyDiscrete(next, 0)
	}
	return true
}

func (c *Controller) focusOrFirst() int {
	if c.focus >= 0 && c.focus < len(c.items) {
		return c.focus
	}
	return 0
}

// step returns the index a navigation key moves focus to.
func (c *Controller) step(key grid.KeyCode) (int, bool) {
	n := len(c.items)
	cur := c.focus
	if cur < 0 || cur >= n {
		// First navigation lands on the first item.
		switch key {
		case grid.KeyLeft, grid.KeyRight, grid.KeyUp, grid.KeyDown, grid.KeyHome:
			return 0, true
		case grid.KeyEnd:
			return n - 1, true
		}
		return 0, false
	}

	next := cur
	switch key {
	case grid.KeyLeft:
		next--
	case grid.KeyRight:
		next++
	case grid.KeyUp:
		next -= c.columns
	case grid.KeyDown:
		next += c.columns
	case grid.KeyHome:
		next = 0
	case grid.KeyEnd:
		next = n - 1
	default:
		return 0, false
	}
	if next < 0 {
		next = 0
	}
	if next >= n {
		next = n - 1
	}
	return next, true
}
