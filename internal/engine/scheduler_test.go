package engine

import (
	"testing"
	"time"
)

func TestSchedulerRunsDueCallbacksInOrder(t *testing.T) {
	s := NewScheduler()
	var order []string
	s.After(300*time.Millisecond, func() { order = append(order, "late") })
	s.After(150*time.Millisecond, func() { order = append(order, "early") })

	if n := s.Advance(100 * time.Millisecond); n != 0 {
		t.Errorf("Advance(100ms) ran %d callbacks", n)
	}
	if n := s.Advance(400 * time.Millisecond); n != 2 {
		t.Errorf("Advance(400ms) ran %d callbacks", n)
	}
	if len(order) != 2 || order[0] != "early" || order[1] != "late" {
		t.Errorf("order = %v", order)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d", s.Pending())
	}
}

func TestSchedulerDelayIsRelativeToClock(t *testing.T) {
	s := NewScheduler()
	s.Advance(time.Second)

	fired := false
	s.After(100*time.Millisecond, func() { fired = true })
	s.Advance(1050 * time.Millisecond)
	if fired {
		t.Fatal("callback fired early")
	}
	s.Advance(1100 * time.Millisecond)
	if !fired {
		t.Fatal("callback did not fire when due")
	}
}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler()
	fired := 0
	id := s.After(10*time.Millisecond, func() { fired++ })
	s.After(10*time.Millisecond, func() { fired++ })

	if !s.Cancel(id) {
		t.Error("Cancel() of a pending timer returned false")
	}
	if s.Cancel(id) {
		t.Error("second Cancel() returned true")
	}
	s.Advance(time.Second)
	if fired != 1 {
		t.Errorf("fired = %d, expected 1", fired)
	}

	s.After(10*time.Millisecond, func() { fired++ })
	s.Reset()
	s.Advance(time.Hour)
	if fired != 1 {
		t.Error("callback survived Reset()")
	}
}

func TestSchedulerNestedScheduleWaits(t *testing.T) {
	s := NewScheduler()
	fired := 0
	s.After(0, func() {
		s.After(0, func() { fired++ })
	})
	s.Advance(time.Millisecond)
	if fired != 0 {
		t.Error("callback scheduled during Advance ran in the same pass")
	}
	s.Advance(2 * time.Millisecond)
	if fired != 1 {
		t.Error("nested callback never ran")
	}
}
