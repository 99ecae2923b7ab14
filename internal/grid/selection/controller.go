// Package selection turns raw pointer and keyboard input over a grid into a
// committed selection. Box selection is presentation-only until the gesture
// ends; the host sees exactly one commit per completed gesture.
package selection

import (
	"log/slog"
	"math"
	"time"

	"golang.org/x/time/rate"

	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid"
	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid/geom"
	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid/spatial"
)

// State is the gesture state of a Controller.
type State int

const (
	StateIdle State = iota
	StatePendingClear
	StatePendingItem
	StateBoxSelecting
	StateFading
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePendingClear:
		return "pending-clear"
	case StatePendingItem:
		return "pending-item"
	case StateBoxSelecting:
		return "box-selecting"
	case StateFading:
		return "fading"
	}
	return "unknown"
}

// Defaults.
const (
	DefaultDragThreshold = 2
	DefaultRecomputeHz   = 60
	DefaultFadeOut       = 180 * time.Millisecond
	DefaultFadeSlack     = 120 * time.Millisecond
	DefaultDoubleClick   = 400 * time.Millisecond
)

// DragStarter receives item drags detected by the controller: a press on an
// item that moved past the threshold.
type DragStarter interface {
	StartDrag(ev grid.PointerEvent, item grid.Item) error
}

// Config tunes a Controller.
type Config struct {
	DragThreshold float64
	BucketSize    float64
	RecomputeHz   float64
	FadeOut       time.Duration
	FadeSlack     time.Duration
	DoubleClick   time.Duration
	// Strict panics on programming errors such as stale index queries
	// instead of logging them and ending the gesture.
	Strict bool
}

func (c Config) withDefaults() Config {
	if c.DragThreshold <= 0 {
		c.DragThreshold = DefaultDragThreshold
	}
	if c.BucketSize <= 0 {
		c.BucketSize = spatial.DefaultBucketSize
	}
	if c.RecomputeHz <= 0 {
		c.RecomputeHz = DefaultRecomputeHz
	}
	if c.FadeOut <= 0 {
		c.FadeOut = DefaultFadeOut
	}
	if c.FadeSlack <= 0 {
		c.FadeSlack = DefaultFadeSlack
	}
	if c.DoubleClick <= 0 {
		c.DoubleClick = DefaultDoubleClick
	}
	return c
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{}.withDefaults()
}

// Options wires a Controller to its host.
type Options struct {
	Host      grid.SelectionHost
	Render    grid.RenderPort
	Input     grid.InputPort
	Scheduler grid.Scheduler
	Callbacks grid.Callbacks
	Drag      DragStarter
	Logger    *slog.Logger
	Config    Config
}

// Controller is the box-selection state machine for one container.
type Controller struct {
	cfg    Config
	host   grid.SelectionHost
	render grid.RenderPort
	input  grid.InputPort
	sched  grid.Scheduler
	cb     grid.Callbacks
	drag   DragStarter
	log    *slog.Logger
	gate   *rate.Limiter

	items   []grid.Item
	indexOf map[string]int
	anchor  string
	focus   int
	columns int

	state        State
	sub          grid.Subscription
	origin       geom.Point
	originScroll geom.Point
	pointer      geom.Point
	press        grid.PointerEvent
	pendingClear bool
	base         grid.Set
	live         grid.Set
	classed      grid.Set
	suppressed   grid.Set
	box          geom.Rect
	idx          *spatial.Index
	tickCancel   func()
	fadeStops    []func()
	resumable    bool
	gen          uint64

	lastClickKey string
	lastClickAt  time.Time
}

// New creates a controller. Host, Render, Input and Scheduler are required.
func New(opts Options) *Controller {
	cfg := opts.Config.withDefaults()
	interval := time.Duration(float64(time.Second) / cfg.RecomputeHz)
	return &Controller{
		cfg:     cfg,
		host:    opts.Host,
		render:  opts.Render,
		input:   opts.Input,
		sched:   opts.Scheduler,
		cb:      opts.Callbacks,
		drag:    opts.Drag,
		log:     grid.Logger(opts.Logger).With("component", "selection"),
		gate:    rate.NewLimiter(rate.Every(interval), 1),
		indexOf: make(map[string]int),
		focus:   -1,
		columns: 1,
	}
}

// SetDragStarter sets the receiver of item drags.
func (c *Controller) SetDragStarter(d DragStarter) {
	c.drag = d
}

// SetItems replaces the host's ordered item list. The anchor and focus
// follow their keys; a vanished anchor is dropped. A box gesture in progress
// keeps querying the rectangles captured when it started; keys that no longer
// exist are dropped when it commits.
func (c *Controller) SetItems(items []grid.Item) {
	focusKey := ""
	if c.focus >= 0 && c.focus < len(c.items) {
		focusKey = c.items[c.focus].Key
	}
	c.items = items
	c.indexOf = make(map[string]int, len(items))
	for i, it := range items {
		c.indexOf[it.Key] = i
	}
	if _, ok := c.indexOf[c.anchor]; !ok {
		c.anchor = ""
	}
	c.focus = -1
	if i, ok := c.indexOf[focusKey]; ok {
		c.focus = i
	}
}

// SetColumns tells the keyboard fallback how many items share a row.
func (c *Controller) SetColumns(n int) {
	if n < 1 {
		n = 1
	}
	c.columns = n
}

// State returns the current gesture state.
func (c *Controller) State() State {
	return c.state
}

// Live returns a copy of the ephemeral in-gesture selection.
func (c *Controller) Live() grid.Set {
	return c.live.Clone()
}

// BoxRect returns the last drawn selection box in viewport coordinates.
func (c *Controller) BoxRect() geom.Rect {
	return c.box
}

// Anchor returns the index of the range anchor, or -1.
func (c *Controller) Anchor() int {
	if i, ok := c.indexOf[c.anchor]; ok {
		return i
	}
	return -1
}

// Focus returns the keyboard focus index, or -1.
func (c *Controller) Focus() int {
	return c.focus
}

// Active reports whether a gesture is in progress.
func (c *Controller) Active() bool {
	return c.state != StateIdle
}

// PointerDown starts a gesture over the container.
func (c *Controller) PointerDown(ev grid.PointerEvent) {
	if c.state == StateFading {
		c.finishFade(c.gen)
	}
	if c.state != StateIdle {
		return
	}

	switch ev.Button {
	case grid.ButtonSecondary:
		c.contextMenu(ev)
		return
	case grid.ButtonPrimary:
	default:
		return
	}

	c.press = ev
	c.origin = ev.Pos
	c.pointer = ev.Pos
	c.originScroll = c.scrollOffset()

	if item, ok := c.item(ev.Target); ok {
		c.state = StatePendingItem
		c.focus = c.indexOf[item.Key]
	} else {
		c.state = StatePendingClear
		c.pendingClear = !ev.Mods.Toggle()
	}
	c.beginGesture()
}

// Cancel aborts any gesture without committing.
func (c *Controller) Cancel() {
	if c.state != StateIdle {
		c.endGesture()
	}
}

func (c *Controller) beginGesture() {
	c.gen++
	c.sub = c.input.Subscribe(grid.GestureHandlers{
		Move:   c.onMove,
		Up:     c.onUp,
		Cancel: c.onInterrupt,
		Leave:  c.onLeave,
		Enter:  c.onEnter,
		Blur:   c.onInterrupt,
		Hidden: c.onInterrupt,
	})
}

func (c *Controller) onMove(ev grid.PointerEvent) {
	switch c.state {
	case StatePendingItem:
		if !c.exceeded(ev.Pos) {
			return
		}
		item, _ := c.item(c.press.Target)
		c.endGesture()
		if c.drag != nil {
			ev.Target = item.Key
			if err := c.drag.StartDrag(ev, item); err != nil {
				c.log.Warn("drag start failed", "key", item.Key, "err", err)
			}
		}
	case StatePendingClear:
		if !c.exceeded(ev.Pos) {
			return
		}
		c.startBox()
		c.pointer = ev.Pos
		c.schedule()
	case StateBoxSelecting:
		c.pointer = ev.Pos
		c.schedule()
	}
}

func (c *Controller) onUp(ev grid.PointerEvent) {
	switch c.state {
	case StatePendingItem:
		item, ok := c.item(c.press.Target)
		mods := c.press.Mods
		c.endGesture()
		if ok {
			c.clickItem(item, mods, ev.Time)
		}
	case StatePendingClear:
		clear := c.pendingClear
		c.endGesture()
		c.lastClickKey = ""
		if clear {
			c.commit(grid.NewSet())
		}
	case StateBoxSelecting:
		if c.tickCancel != nil {
			c.pointer = ev.Pos
			c.recompute()
			if c.state != StateBoxSelecting {
				return
			}
		}
		final := c.present(c.live)
		c.endGesture()
		c.commit(final)
	}
}

func (c *Controller) startBox() {
	c.state = StateBoxSelecting
	committed := c.host.Selection()
	if c.pendingClear {
		c.base = grid.NewSet()
	} else {
		c.base = committed
	}
	c.pendingClear = false
	c.suppressed = grid.NewSet()
	for k := range committed {
		if !c.base.Has(k) {
			c.render.SetTransientClass(k, grid.ClassDeselecting, true)
			c.suppressed.Add(k)
		}
	}
	c.live = c.base.Clone()
	c.classed = grid.NewSet()

	c.idx = spatial.Build(spatial.Collect(c.render), c.cfg.BucketSize)
	c.log.Debug("selection index built", "buckets", c.idx.Stats().Buckets, "entries", c.idx.Stats().Entries)
}

func (c *Controller) schedule() {
	if c.tickCancel != nil {
		return
	}
	c.tickCancel = c.sched.RequestTick(c.onTick)
}

func (c *Controller) onTick(now time.Time) {
	c.tickCancel = nil
	if c.state != StateBoxSelecting {
		return
	}
	if !c.gate.AllowN(now, 1) {
		c.schedule()
		return
	}
	c.recompute()
}

// recompute derives the box from the pointer and queries the gesture-start
// index. Scroll drift since gesture start is folded back so the index built
// from the start-time rectangles stays valid.
func (c *Controller) recompute() {
	vp := c.render.Viewport()
	drift := c.scrollOffset().Sub(c.originScroll)

	current := vp.ClampPoint(c.pointer)
	query := geom.FromPoints(c.origin, current.Add(drift))
	c.box = vp.Clamp(geom.FromPoints(c.origin.Sub(drift), current))

	hits, err := c.idx.Query(query)
	if err != nil {
		if c.cfg.Strict {
			panic(err)
		}
		c.log.Error("selection query failed, ending gesture", "err", err)
		c.endGesture()
		return
	}

	next := c.base.Clone().Union(hits)
	c.applyLive(next)
	if br, ok := c.render.(grid.BoxRenderer); ok {
		br.DrawSelectionBox(c.box)
	}
}

func (c *Controller) applyLive(next grid.Set) {
	for k := range c.classed {
		if !hitsOnly(next, c.base, k) {
			c.render.SetTransientClass(k, grid.ClassSelecting, false)
			delete(c.classed, k)
		}
	}
	for k := range next {
		if !c.classed.Has(k) && !c.base.Has(k) {
			c.render.SetTransientClass(k, grid.ClassSelecting, true)
			c.classed.Add(k)
		}
	}
	for k := range c.suppressed {
		c.render.SetTransientClass(k, grid.ClassDeselecting, !next.Has(k))
	}
	c.live = next
}

func hitsOnly(next, base grid.Set, k string) bool {
	return next.Has(k) && !base.Has(k)
}

// --- Interruptions ---

func (c *Controller) onLeave(geom.Point) {
	c.interrupt(true)
}

func (c *Controller) onInterrupt() {
	c.interrupt(false)
}

func (c *Controller) interrupt(resumable bool) {
	switch c.state {
	case StatePendingClear, StatePendingItem:
		c.endGesture()
	case StateBoxSelecting:
		c.freeze(resumable)
	case StateFading:
		c.resumable = c.resumable && resumable
	}
}

// freeze stops recomputation at the last computed set and fades the box out.
// The frozen set is committed when the fade ends.
func (c *Controller) freeze(resumable bool) {
	if c.tickCancel != nil {
		c.tickCancel()
		c.tickCancel = nil
	}
	c.state = StateFading
	c.resumable = resumable
	gen := c.gen

	done := func() { c.finishFade(gen) }
	deadline := c.cfg.FadeOut
	if br, ok := c.render.(grid.BoxRenderer); ok {
		br.FadeSelectionBox(c.box, done)
		deadline += c.cfg.FadeSlack
	}
	c.fadeStops = append(c.fadeStops, c.sched.AfterFunc(deadline, done))
}

func (c *Controller) onEnter(p geom.Point) {
	if c.state != StateFading || !c.resumable {
		return
	}
	c.stopFade()
	c.gen++
	c.state = StateBoxSelecting
	c.pointer = p
	if br, ok := c.render.(grid.BoxRenderer); ok {
		br.DrawSelectionBox(c.box)
	}
	c.schedule()
}

func (c *Controller) finishFade(gen uint64) {
	if c.state != StateFading || gen != c.gen {
		return
	}
	final := c.present(c.live)
	c.endGesture()
	c.commit(final)
}

func (c *Controller) stopFade() {
	for _, stop := range c.fadeStops {
		stop()
	}
	c.fadeStops = nil
}

// endGesture is the single exit path: listeners, timers, classes, box and
// index are all released here.
func (c *Controller) endGesture() {
	if c.sub != nil {
		c.sub.Dispose()
		c.sub = nil
	}
	if c.tickCancel != nil {
		c.tickCancel()
		c.tickCancel = nil
	}
	c.stopFade()
	for k := range c.classed {
		c.render.SetTransientClass(k, grid.ClassSelecting, false)
	}
	for k := range c.suppressed {
		c.render.SetTransientClass(k, grid.ClassDeselecting, false)
	}
	if c.state == StateBoxSelecting || c.state == StateFading {
		if br, ok := c.render.(grid.BoxRenderer); ok {
			br.ClearSelectionBox()
		}
	}
	if c.idx != nil {
		c.idx.Invalidate()
		c.idx = nil
	}
	c.classed = nil
	c.suppressed = nil
	c.base = nil
	c.live = nil
	c.box = geom.Rect{}
	c.pendingClear = false
	c.resumable = false
	c.state = StateIdle
	c.gen++
}

// present returns the keys of s that are still in the item list.
func (c *Controller) present(s grid.Set) grid.Set {
	out := make(grid.Set, len(s))
	for k := range s {
		if _, ok := c.indexOf[k]; ok {
			out.Add(k)
		}
	}
	return out
}

func (c *Controller) commit(s grid.Set) {
	c.host.CommitSelection(s)
}

func (c *Controller) exceeded(p geom.Point) bool {
	return math.Abs(p.X-c.origin.X) > c.cfg.DragThreshold ||
		math.Abs(p.Y-c.origin.Y) > c.cfg.DragThreshold
}

func (c *Controller) scrollOffset() geom.Point {
	if sp, ok := c.render.(grid.ScrollPort); ok {
		return sp.ScrollOffset()
	}
	return geom.Point{}
}

func (c *Controller) item(key string) (grid.Item, bool) {
	if key == "" {
		return grid.Item{}, false
	}
	i, ok := c.indexOf[key]
	if !ok {
		return grid.Item{}, false
	}
	return c.items[i], true
}
