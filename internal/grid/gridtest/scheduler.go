// Package gridtest provides deterministic doubles for the grid engine ports.
package gridtest

import (
	"sort"
	"time"
)

// FrameInterval is the simulated duration of one rendered frame.
const FrameInterval = 16 * time.Millisecond

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

// Scheduler is a synchronous grid.Scheduler. Frames and timers only run when
// the test advances the fake clock.
type Scheduler struct {
	now    time.Time
	ticks  []*tick
	timers []*timer
	seq    int
}

// NewScheduler creates a scheduler whose clock starts at a fixed instant.
func NewScheduler() *Scheduler {
	return &Scheduler{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (s *Scheduler) Now() time.Time {
	return s.now
}

func (s *Scheduler) RequestTick(fn func(time.Time)) func() {
	t := &tick{fn: fn}
	s.ticks = append(s.ticks, t)
	return func() { t.canceled = true }
}

func (s *Scheduler) AfterFunc(d time.Duration, fn func()) func() {
	s.seq++
	t := &timer{seq: s.seq, at: s.now.Add(d), fn: fn}
	s.timers = append(s.timers, t)
	return func() { t.canceled = true }
}

// Frame advances the clock by one frame, fires due timers and runs the
// ticks requested before the frame began.
func (s *Scheduler) Frame() {
	s.Advance(FrameInterval)
	pending := s.ticks
	s.ticks = nil
	for _, t := range pending {
		if !t.canceled {
			t.fn(s.now)
		}
	}
}

// Frames runs n frames.
func (s *Scheduler) Frames(n int) {
	for i := 0; i < n; i++ {
		s.Frame()
	}
}

// Advance moves the clock forward and fires every timer that comes due, in
// deadline order. Frame callbacks are not run.
func (s *Scheduler) Advance(d time.Duration) {
	target := s.now.Add(d)
	for {
		next := s.nextDue(target)
		if next == nil {
			break
		}
		s.now = next.at
		next.canceled = true
		next.fn()
	}
	s.now = target
}

// PendingTicks counts frame callbacks that have not run or been canceled.
func (s *Scheduler) PendingTicks() int {
	n := 0
	for _, t := range s.ticks {
		if !t.canceled {
			n++
		}
	}
	return n
}

// PendingTimers counts timers that have not fired or been stopped.
func (s *Scheduler) PendingTimers() int {
	n := 0
	for _, t := range s.timers {
		if !t.canceled {
			n++
		}
	}
	return n
}

func (s *Scheduler) nextDue(limit time.Time) *timer {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.canceled {
			live = append(live, t)
		}
	}
	s.timers = live
	sort.SliceStable(s.timers, func(i, j int) bool {
		if s.timers[i].at.Equal(s.timers[j].at) {
			return s.timers[i].seq < s.timers[j].seq
		}
		return s.timers[i].at.Before(s.timers[j].at)
	})
	if len(s.timers) == 0 || s.timers[0].at.After(limit) {
		return nil
	}
	return s.timers[0]
}
