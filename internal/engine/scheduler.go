package engine

import (
	"sort"
	"time"
)

// TimerID identifies a scheduled callback.
type TimerID uint64

type timer struct {
	id  TimerID
	due time.Duration
	fn  func()
}

// Scheduler runs callbacks on the simulation clock. Callbacks only fire from
// Advance, so nothing runs after CancelAll or once the engine stops advancing.
type Scheduler struct {
	now    time.Duration
	timers []timer
	nextID TimerID
}

// NewScheduler creates an empty scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// After schedules fn to run delay after the current scheduler time.
func (s *Scheduler) After(delay time.Duration, fn func()) TimerID {
	s.nextID++
	s.timers = append(s.timers, timer{id: s.nextID, due: s.now + delay, fn: fn})
	return s.nextID
}

// Schedule is After without the handle.
func (s *Scheduler) Schedule(delay time.Duration, fn func()) {
	s.After(delay, fn)
}

// Cancel removes a pending callback and reports whether it was pending.
func (s *Scheduler) Cancel(id TimerID) bool {
	for i, t := range s.timers {
		if t.id == id {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return true
		}
	}
	return false
}

// CancelAll drops every pending callback.
func (s *Scheduler) CancelAll() {
	s.timers = s.timers[:0]
}

// Advance moves the clock to now and runs every callback that became due, in
// due order. Callbacks scheduled while running wait for the next Advance.
// It returns how many callbacks ran.
func (s *Scheduler) Advance(now time.Duration) int {
	if now > s.now {
		s.now = now
	}

	var due []timer
	pending := s.timers[:0]
	for _, t := range s.timers {
		if t.due <= s.now {
			due = append(due, t)
		} else {
			pending = append(pending, t)
		}
	}
	s.timers = pending

	sort.SliceStable(due, func(i, j int) bool { return due[i].due < due[j].due })
	for _, t := range due {
		t.fn()
	}
	return len(due)
}

// Reset cancels everything and rewinds the clock to zero.
func (s *Scheduler) Reset() {
	s.CancelAll()
	s.now = 0
}

// Pending returns the number of scheduled callbacks.
func (s *Scheduler) Pending() int {
	return len(s.timers)
}
