// Package dragsession bundles the committed selection into a drag session,
// shows a stacked preview while it moves and tells other windows about it
// through an injected Transport.
package dragsession

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid"
	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid/geom"
)

// DefaultTeardownDelay keeps a finished session alive long enough for a
// drop target in another window to accept it.
const DefaultTeardownDelay = 2 * time.Second

var (
	// ErrNoSession is returned by operations that need a live session.
	ErrNoSession = errors.New("dragsession: no active session")
	// ErrInvalidTarget is returned when a drop target cannot take the session.
	ErrInvalidTarget = errors.New("dragsession: invalid drop target")
	// ErrUnknownItem is returned when a drag starts on a key the host never listed.
	ErrUnknownItem = errors.New("dragsession: unknown item")
)

// Options wires a Coordinator to its host. Host, Render and Scheduler are
// required; the rest are optional.
type Options struct {
	Host      grid.SelectionHost
	Render    grid.RenderPort
	Input     grid.InputPort
	Scheduler grid.Scheduler
	Transport Transport
	Callbacks grid.Callbacks
	Source    Context
	Logger    *slog.Logger

	TeardownDelay time.Duration
	PreviewLayers int
	LayerOffset   geom.Point
	// ForceOverlay skips the native drag image even when the platform
	// offers one.
	ForceOverlay bool
}

// Coordinator owns at most one drag session per container.
type Coordinator struct {
	opts Options
	log  *slog.Logger

	items   []grid.Item
	byKey   map[string]grid.Item
	session *Session
	active  bool
	overlay bool
	sub     grid.Subscription
	stop    func()
}

// New creates a coordinator.
func New(opts Options) *Coordinator {
	if opts.TeardownDelay <= 0 {
		opts.TeardownDelay = DefaultTeardownDelay
	}
	if opts.PreviewLayers <= 0 {
		opts.PreviewLayers = DefaultPreviewLayers
	}
	if opts.LayerOffset == (geom.Point{}) {
		opts.LayerOffset = DefaultLayerOffset
	}
	return &Coordinator{
		opts:  opts,
		log:   grid.Logger(opts.Logger).With("component", "dragsession"),
		byKey: make(map[string]grid.Item),
	}
}

// SetItems replaces the host's ordered item list.
func (c *Coordinator) SetItems(items []grid.Item) {
	c.items = items
	c.byKey = make(map[string]grid.Item, len(items))
	for _, it := range items {
		c.byKey[it.Key] = it
	}
}

// Session returns the current session, including one that ended but is
// waiting for teardown.
func (c *Coordinator) Session() (Session, bool) {
	if c.session == nil {
		return Session{}, false
	}
	s := *c.session
	s.Items = slices.Clone(s.Items)
	return s, true
}

// Active reports whether a drag is in flight.
func (c *Coordinator) Active() bool {
	return c.active
}

// StartDrag begins a drag of item. When item is not part of the committed
// selection the selection collapses to it first.
func (c *Coordinator) StartDrag(ev grid.PointerEvent, item grid.Item) error {
	if _, ok := c.byKey[item.Key]; !ok {
		return fmt.Errorf("start drag %q: %w", item.Key, ErrUnknownItem)
	}
	if c.active {
		c.finish()
	}
	c.Flush()

	committed := c.opts.Host.Selection()
	if !committed.Has(item.Key) {
		committed = grid.NewSet(item.Key)
		c.opts.Host.CommitSelection(committed)
	}

	keys := committed.InOrder(c.items)
	c.session = &Session{
		ID:        uuid.NewString(),
		Items:     newSessionItems(keys, c.byKey),
		Source:    c.opts.Source,
		StartedAt: c.opts.Scheduler.Now(),
	}
	c.active = true
	for _, k := range keys {
		c.opts.Render.SetTransientClass(k, grid.ClassDragging, true)
	}

	c.attachPreview(BuildPreview(item.Key, keys, c.opts.PreviewLayers, c.opts.LayerOffset), ev.Pos)

	if c.opts.Input != nil {
		c.sub = c.opts.Input.Subscribe(grid.GestureHandlers{
			Move:   func(ev grid.PointerEvent) { c.Move(ev.Pos) },
			Up:     c.onUp,
			Cancel: c.Cancel,
			Blur:   c.EndDrag,
			Hidden: c.EndDrag,
		})
	}

	s := *c.session
	c.log.Info("drag started", "session", s.ID, "items", len(s.Items), "key", item.Key)
	if t := c.opts.Transport; t != nil {
		grid.SafeCall(c.log, "AnnounceSession", func() error {
			t.AnnounceSession(s)
			return nil
		})
	}
	grid.SafeCall(c.log, "OnDragStart", func() error {
		if c.opts.Callbacks.OnDragStart == nil {
			return nil
		}
		return c.opts.Callbacks.OnDragStart(item)
	})
	return nil
}

// attachPreview hands the stacked image to the platform, or hides the native
// ghost and draws the preview as an overlay when that fails.
func (c *Coordinator) attachPreview(img grid.DragImage, at geom.Point) {
	port, native := c.opts.Render.(grid.DragImagePort)
	if native && !c.opts.ForceOverlay {
		err := port.SetDragImage(img)
		if err == nil {
			return
		}
		c.log.Debug("native drag image rejected, using overlay", "err", err)
	}
	if native {
		transparent := img
		transparent.Transparent = true
		if err := port.SetDragImage(transparent); err != nil {
			c.log.Debug("transparent drag image rejected", "err", err)
		}
	}
	if ov, ok := c.opts.Render.(grid.DragOverlayPort); ok {
		ov.ShowDragOverlay(img, at)
		c.overlay = true
	}
}

// Move tracks the pointer during a drag.
func (c *Coordinator) Move(at geom.Point) {
	if !c.active || !c.overlay {
		return
	}
	if ov, ok := c.opts.Render.(grid.DragOverlayPort); ok {
		ov.MoveDragOverlay(at)
	}
}

func (c *Coordinator) onUp(ev grid.PointerEvent) {
	if c.session == nil {
		return
	}
	if target, ok := c.byKey[ev.Target]; ok && target.Kind == grid.KindContainer && !c.session.Has(target.Key) {
		if err := c.DropOnContainer(target.Key); err != nil {
			c.log.Warn("drop failed", "target", target.Key, "err", err)
		}
		return
	}
	c.EndDrag()
}

// EndDrag ends the gesture and schedules the session teardown. Drop handling
// is separate: a target in another window may still accept the session until
// the teardown runs.
func (c *Coordinator) EndDrag() {
	if !c.active {
		return
	}
	c.finish()
	c.stop = c.opts.Scheduler.AfterFunc(c.opts.TeardownDelay, c.teardown)
}

// Cancel ends the drag and tears the session down immediately.
func (c *Coordinator) Cancel() {
	if c.active {
		c.finish()
	}
	c.Flush()
}

// DropOnContainer drops the session onto the container item targetKey.
func (c *Coordinator) DropOnContainer(targetKey string) error {
	if c.session == nil {
		return ErrNoSession
	}
	target, ok := c.byKey[targetKey]
	if !ok || target.Kind != grid.KindContainer {
		return fmt.Errorf("drop on %q: %w", targetKey, ErrInvalidTarget)
	}
	if c.session.Has(targetKey) {
		return fmt.Errorf("drop on %q: container is part of the drag: %w", targetKey, ErrInvalidTarget)
	}

	c.log.Info("drop on container", "session", c.session.ID, "target", targetKey)
	err := grid.SafeCall(c.log, "OnDropOnContainer", func() error {
		if c.opts.Callbacks.OnDropOnContainer == nil {
			return nil
		}
		return c.opts.Callbacks.OnDropOnContainer(targetKey)
	})
	c.EndDrag()
	if err != nil {
		return fmt.Errorf("drop on %q: %w", targetKey, err)
	}
	return nil
}

// Flush runs a pending teardown now.
func (c *Coordinator) Flush() {
	if c.stop != nil {
		c.stop()
		c.stop = nil
	}
	if !c.active {
		c.teardown()
	}
}

// finish releases everything the gesture holds except the session itself.
func (c *Coordinator) finish() {
	c.active = false
	if c.sub != nil {
		c.sub.Dispose()
		c.sub = nil
	}
	if c.overlay {
		if ov, ok := c.opts.Render.(grid.DragOverlayPort); ok {
			ov.HideDragOverlay()
		}
		c.overlay = false
	}
	if c.session != nil {
		for _, it := range c.session.Items {
			c.opts.Render.SetTransientClass(it.Key, grid.ClassDragging, false)
		}
	}
	grid.SafeCall(c.log, "OnDragEnd", func() error {
		if c.opts.Callbacks.OnDragEnd == nil {
			return nil
		}
		return c.opts.Callbacks.OnDragEnd()
	})
}

func (c *Coordinator) teardown() {
	c.stop = nil
	if c.session == nil {
		return
	}
	id := c.session.ID
	c.session = nil
	c.log.Debug("drag session torn down", "session", id)
	if t := c.opts.Transport; t != nil {
		grid.SafeCall(c.log, "EndSession", func() error {
			t.EndSession(id)
			return nil
		})
	}
}
