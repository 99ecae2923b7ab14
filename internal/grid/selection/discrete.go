package selection

import (
	"time"

	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid"
)

// --- Discrete Selection ---

// clickItem applies a click that never became a drag. Plain clicks replace,
// Ctrl/Cmd toggles and Shift extends from the anchor.
func (c *Controller) clickItem(item grid.Item, mods grid.Modifiers, at time.Time) {
	if at.IsZero() {
		at = c.sched.Now()
	}

	if mods == 0 && c.lastClickKey == item.Key && at.Sub(c.lastClickAt) <= c.cfg.DoubleClick {
		c.lastClickKey = ""
		grid.SafeCall(c.log, "OnItemActivate", func() error {
			if c.cb.OnItemActivate == nil {
				return nil
			}
			return c.cb.OnItemActivate(item)
		})
		return
	}
	c.lastClickKey = item.Key
	c.lastClickAt = at

	c.applyDiscrete(c.indexOf[item.Key], mods)
}

// applyDiscrete selects the item at index i the way a click with mods would.
func (c *Controller) applyDiscrete(i int, mods grid.Modifiers) {
	key := c.items[i].Key
	committed := c.host.Selection()
	c.focus = i

	switch {
	case mods.Shift():
		from := c.Anchor()
		if from < 0 {
			from = i
			c.anchor = key
		}
		next := c.span(from, i)
		if mods.Toggle() {
			next = committed.Clone().Union(next)
		}
		c.commitIfChanged(committed, next)
	case mods.Toggle():
		next := committed.Clone()
		if next.Has(key) {
			next.Remove(key)
		} else {
			next.Add(key)
		}
		c.anchor = key
		c.commit(next)
	default:
		c.anchor = key
		if committed.Len() == 1 && committed.Has(key) {
			return
		}
		c.commit(grid.NewSet(key))
	}
}

// span returns the keys between two indices inclusive, in either order.
func (c *Controller) span(a, b int) grid.Set {
	if a > b {
		a, b = b, a
	}
	out := make(grid.Set, b-a+1)
	for _, it := range c.items[a : b+1] {
		out.Add(it.Key)
	}
	return out
}

func (c *Controller) commitIfChanged(committed, next grid.Set) {
	if committed.Equal(next) {
		return
	}
	c.commit(next)
}

// --- Context Menu ---

func (c *Controller) contextMenu(ev grid.PointerEvent) {
	item, ok := c.item(ev.Target)
	if !ok {
		grid.SafeCall(c.log, "OnBlankContextMenu", func() error {
			if c.cb.OnBlankContextMenu == nil {
				return nil
			}
			return c.cb.OnBlankContextMenu()
		})
		return
	}

	committed := c.host.Selection()
	if !committed.Has(item.Key) {
		committed = grid.NewSet(item.Key)
		c.anchor = item.Key
		c.commit(committed)
	}
	c.focus = c.indexOf[item.Key]

	selected := committed.InOrder(c.items)
	grid.SafeCall(c.log, "OnItemContextMenu", func() error {
		if c.cb.OnItemContextMenu == nil {
			return nil
		}
		return c.cb.OnItemContextMenu(item, selected)
	})
}
