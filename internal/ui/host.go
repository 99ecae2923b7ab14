package ui

import (
	"math"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid"
	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid/geom"
	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid/virtual"
)

const (
	frameInterval = 16 * time.Millisecond
	boxFadeOut    = 120 * time.Millisecond
)

// frameMsg drives engine frame callbacks and timers on the update goroutine.
type frameMsg time.Time

// --- Terminal Host ---

// host implements the engine ports over a cell grid. Every method runs on
// the bubbletea update goroutine.
type host struct {
	now func() time.Time

	// layout, in cells relative to the grid area
	width, height int
	scroll        float64
	order         []string
	rects         map[string]geom.Rect

	classes map[string]map[string]bool
	offsets map[string]geom.Point
	opacity map[string]float64

	box       *geom.Rect
	boxFading bool
	boxStop   func()

	overlay   *grid.DragImage
	overlayAt geom.Point

	subs    []*subscription
	inside  bool
	pointer geom.Point

	ticks      []*tick
	timers     []*timer
	seq        int
	frameArmed bool

	effects []tea.Msg

	// scrollTo hands scroll writes to the engine window and returns the
	// offset it settled on.
	scrollTo func(y float64) float64
}

func newHost(now func() time.Time) *host {
	if now == nil {
		now = time.Now
	}
	return &host{
		now:     now,
		rects:   make(map[string]geom.Rect),
		classes: make(map[string]map[string]bool),
		offsets: make(map[string]geom.Point),
		opacity: make(map[string]float64),
		inside:  true,
	}
}

// layout recomputes the tile rectangles of the rendered range.
func (h *host) layout(items []grid.Item, r virtual.Range, scroll float64, width, height int) {
	h.width, h.height = width, height
	h.scroll = scroll
	h.order = h.order[:0]
	clear(h.rects)
	if r.Len() == 0 || r.End >= len(items) {
		return
	}
	cols := max(r.Columns, 1)
	cellW := math.Floor(float64(width) / float64(cols))
	for i := r.Start; i <= r.End; i++ {
		key := items[i].Key
		h.order = append(h.order, key)
		h.rects[key] = geom.Rect{
			X: float64(i%cols) * cellW,
			Y: float64(i/cols)*r.RowHeight - scroll,
			W: max(cellW-1, 1),
			H: max(r.RowHeight-1, 1),
		}
	}
}

// hit returns the key of the tile under p, ignoring transforms.
func (h *host) hit(p geom.Point) string {
	for _, k := range h.order {
		if r := h.rects[k]; p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H {
			return k
		}
	}
	return ""
}

func (h *host) hasClass(key, class string) bool {
	return h.classes[key][class]
}

// --- RenderPort ---

func (h *host) Keys() []string {
	return slices.Clone(h.order)
}

func (h *host) Rect(key string) (geom.Rect, bool) {
	r, ok := h.rects[key]
	return r, ok
}

func (h *host) Viewport() geom.Rect {
	return geom.Rect{W: float64(h.width), H: float64(h.height)}
}

func (h *host) SetTransientClass(key, class string, on bool) {
	m, ok := h.classes[key]
	if !ok {
		if !on {
			return
		}
		m = make(map[string]bool)
		h.classes[key] = m
	}
	if on {
		m[class] = true
		return
	}
	delete(m, class)
	if len(m) == 0 {
		delete(h.classes, key)
	}
}

func (h *host) ApplyTransform(key string, x, y float64) {
	if x == 0 && y == 0 {
		delete(h.offsets, key)
		return
	}
	h.offsets[key] = geom.Point{X: x, Y: y}
}

func (h *host) SetOpacity(key string, v float64) {
	if v >= 1 {
		delete(h.opacity, key)
		return
	}
	h.opacity[key] = v
}

func (h *host) ScrollOffset() geom.Point {
	return geom.Point{Y: h.scroll}
}

func (h *host) SetScrollOffset(p geom.Point) {
	y := p.Y
	if h.scrollTo != nil {
		y = h.scrollTo(y)
	}
	h.scroll = y
}

// --- Box & Overlay ---

func (h *host) DrawSelectionBox(r geom.Rect) {
	h.stopBoxFade()
	h.box = &r
	h.boxFading = false
}

func (h *host) FadeSelectionBox(r geom.Rect, done func()) {
	h.stopBoxFade()
	h.box = &r
	h.boxFading = true
	h.boxStop = h.AfterFunc(boxFadeOut, func() {
		h.boxStop = nil
		h.box = nil
		h.boxFading = false
		done()
	})
}

func (h *host) ClearSelectionBox() {
	h.stopBoxFade()
	h.box = nil
	h.boxFading = false
}

func (h *host) stopBoxFade() {
	if h.boxStop != nil {
		h.boxStop()
		h.boxStop = nil
	}
}

func (h *host) ShowDragOverlay(img grid.DragImage, at geom.Point) {
	h.overlay = &img
	h.overlayAt = at
}

func (h *host) MoveDragOverlay(at geom.Point) {
	h.overlayAt = at
}

func (h *host) HideDragOverlay() {
	h.overlay = nil
}

// --- InputPort ---

type subscription struct {
	h        *host
	handlers grid.GestureHandlers
	disposed bool
}

func (s *subscription) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.h.subs = slices.DeleteFunc(s.h.subs, func(o *subscription) bool { return o == s })
}

func (h *host) Subscribe(handlers grid.GestureHandlers) grid.Subscription {
	s := &subscription{h: h, handlers: handlers}
	h.subs = append(h.subs, s)
	return s
}

func (h *host) listening() bool {
	return len(h.subs) > 0
}

func (h *host) each(fn func(grid.GestureHandlers)) {
	for _, s := range slices.Clone(h.subs) {
		if !s.disposed {
			fn(s.handlers)
		}
	}
}

func (h *host) move(ev grid.PointerEvent) {
	h.pointer = ev.Pos
	h.each(func(g grid.GestureHandlers) {
		if g.Move != nil {
			g.Move(ev)
		}
	})
}

func (h *host) up(ev grid.PointerEvent) {
	h.each(func(g grid.GestureHandlers) {
		if g.Up != nil {
			g.Up(ev)
		}
	})
}

// track reports pointer transitions across the grid boundary.
func (h *host) track(inside bool, at geom.Point) {
	if inside == h.inside {
		return
	}
	h.inside = inside
	h.each(func(g grid.GestureHandlers) {
		switch {
		case !inside && g.Leave != nil:
			g.Leave(at)
		case inside && g.Enter != nil:
			g.Enter(at)
		}
	})
}

func (h *host) blur() {
	h.each(func(g grid.GestureHandlers) {
		if g.Blur != nil {
			g.Blur()
		}
	})
}

func (h *host) cancel() {
	h.each(func(g grid.GestureHandlers) {
		if g.Cancel != nil {
			g.Cancel()
		}
	})
}

// --- Scheduler ---

type tick struct {
	fn       func(time.Time)
	canceled bool
}

type timer struct {
	seq      int
	at       time.Time
	fn       func()
	canceled bool
}

func (h *host) Now() time.Time {
	return h.now()
}

func (h *host) RequestTick(fn func(time.Time)) func() {
	t := &tick{fn: fn}
	h.ticks = append(h.ticks, t)
	return func() { t.canceled = true }
}

func (h *host) AfterFunc(d time.Duration, fn func()) func() {
	h.seq++
	t := &timer{seq: h.seq, at: h.now().Add(d), fn: fn}
	h.timers = append(h.timers, t)
	return func() { t.canceled = true }
}

// pump fires due timers in deadline order, then the frame callbacks that were
// requested before this frame.
func (h *host) pump(now time.Time) {
	for {
		h.timers = slices.DeleteFunc(h.timers, func(t *timer) bool { return t.canceled })
		slices.SortStableFunc(h.timers, func(a, b *timer) int {
			if c := a.at.Compare(b.at); c != 0 {
				return c
			}
			return a.seq - b.seq
		})
		if len(h.timers) == 0 || h.timers[0].at.After(now) {
			break
		}
		t := h.timers[0]
		t.canceled = true
		t.fn()
	}

	pending := h.ticks
	h.ticks = nil
	for _, t := range pending {
		if !t.canceled {
			t.fn(now)
		}
	}
}

func (h *host) pending() bool {
	for _, t := range h.ticks {
		if !t.canceled {
			return true
		}
	}
	for _, t := range h.timers {
		if !t.canceled {
			return true
		}
	}
	return false
}

// frameCmd arms one frame when callbacks or timers are waiting.
func (h *host) frameCmd() tea.Cmd {
	if h.frameArmed || !h.pending() {
		return nil
	}
	h.frameArmed = true
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// --- Effects ---

// emit queues a message produced by an engine callback. The app drains the
// queue after every engine call.
func (h *host) emit(msg tea.Msg) {
	h.effects = append(h.effects, msg)
}

func (h *host) drain() []tea.Msg {
	out := h.effects
	h.effects = nil
	return out
}
