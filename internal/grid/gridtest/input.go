package gridtest

import (
	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid"
	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid/geom"
)

type subscription struct {
	in       *Input
	h        grid.GestureHandlers
	disposed bool
}

func (s *subscription) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	live := s.in.subs[:0]
	for _, other := range s.in.subs {
		if other != s {
			live = append(live, other)
		}
	}
	s.in.subs = live
}

// Input is a grid.InputPort that dispatches synthetic window-level events to
// live subscriptions and counts them so tests can assert no listener leaks.
type Input struct {
	subs  []*subscription
	Total int
}

// NewInput creates an input port with no listeners.
func NewInput() *Input {
	return &Input{}
}

func (in *Input) Subscribe(h grid.GestureHandlers) grid.Subscription {
	s := &subscription{in: in, h: h}
	in.subs = append(in.subs, s)
	in.Total++
	return s
}

// Active returns the number of live subscriptions.
func (in *Input) Active() int {
	return len(in.subs)
}

func (in *Input) each(fn func(h grid.GestureHandlers)) {
	snapshot := append([]*subscription(nil), in.subs...)
	for _, s := range snapshot {
		if !s.disposed {
			fn(s.h)
		}
	}
}

// Move dispatches a pointer move.
func (in *Input) Move(ev grid.PointerEvent) {
	in.each(func(h grid.GestureHandlers) {
		if h.Move != nil {
			h.Move(ev)
		}
	})
}

// MoveTo dispatches a primary-button move to (x, y).
func (in *Input) MoveTo(x, y float64) {
	in.Move(grid.PointerEvent{Pos: geom.Point{X: x, Y: y}})
}

// Up dispatches a pointer release.
func (in *Input) Up(ev grid.PointerEvent) {
	in.each(func(h grid.GestureHandlers) {
		if h.Up != nil {
			h.Up(ev)
		}
	})
}

// UpAt dispatches a primary-button release at (x, y).
func (in *Input) UpAt(x, y float64) {
	in.Up(grid.PointerEvent{Pos: geom.Point{X: x, Y: y}})
}

// Cancel dispatches a pointer cancel.
func (in *Input) Cancel() {
	in.each(func(h grid.GestureHandlers) {
		if h.Cancel != nil {
			h.Cancel()
		}
	})
}

// Leave dispatches the pointer leaving the window at p.
func (in *Input) Leave(p geom.Point) {
	in.each(func(h grid.GestureHandlers) {
		if h.Leave != nil {
			h.Leave(p)
		}
	})
}

// Enter dispatches the pointer re-entering the window at p.
func (in *Input) Enter(p geom.Point) {
	in.each(func(h grid.GestureHandlers) {
		if h.Enter != nil {
			h.Enter(p)
		}
	})
}

// Blur dispatches a window focus loss.
func (in *Input) Blur() {
	in.each(func(h grid.GestureHandlers) {
		if h.Blur != nil {
			h.Blur()
		}
	})
}

// Hide dispatches a visibility change to hidden.
func (in *Input) Hide() {
	in.each(func(h grid.GestureHandlers) {
		if h.Hidden != nil {
			h.Hidden()
		}
	})
}
