package core

import (
	"testing"
	"time"
)

func TestDebouncerCoalescesBursts(t *testing.T) {
	loop := NewLoop()
	clock := NewManualClock(time.Unix(0, 0))
	calls := 0
	d := NewDebouncer(loop, clock, 100*time.Millisecond, func() { calls++ })

	for i := 0; i < 5; i++ {
		d.Trigger()
		clock.Advance(50 * time.Millisecond)
		loop.Drain()
	}
	if calls != 0 {
		t.Fatalf("debounced fn ran %d times during burst", calls)
	}
	if !d.Pending() {
		t.Fatal("expected pending invocation after burst")
	}

	clock.Advance(100 * time.Millisecond)
	loop.Drain()
	if calls != 1 {
		t.Fatalf("debounced fn ran %d times after quiet period, want 1", calls)
	}
	if d.Pending() {
		t.Fatal("debouncer still pending after firing")
	}
}

func TestDebouncerCancel(t *testing.T) {
	loop := NewLoop()
	clock := NewManualClock(time.Unix(0, 0))
	calls := 0
	d := NewDebouncer(loop, clock, 10*time.Millisecond, func() { calls++ })

	d.Trigger()
	d.Cancel()
	clock.Advance(time.Second)
	loop.Drain()
	if calls != 0 {
		t.Fatalf("cancelled debouncer ran %d times", calls)
	}
}

func TestDebouncerIgnoresStaleFire(t *testing.T) {
	loop := NewLoop()
	clock := NewManualClock(time.Unix(0, 0))
	calls := 0
	d := NewDebouncer(loop, clock, 10*time.Millisecond, func() { calls++ })

	d.Trigger()
	clock.Advance(10 * time.Millisecond)
	// The timer has fired and posted, but a new trigger arrives before the
	// loop drains.
	d.Trigger()
	loop.Drain()
	if calls != 0 {
		t.Fatalf("stale fire ran fn %d times", calls)
	}
	clock.Advance(10 * time.Millisecond)
	loop.Drain()
	if calls != 1 {
		t.Fatalf("fn ran %d times, want 1", calls)
	}
}

func TestManualClockOrdersTimers(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	var order []string
	clock.AfterFunc(30*time.Millisecond, func() { order = append(order, "late") })
	clock.AfterFunc(10*time.Millisecond, func() { order = append(order, "early") })
	stopped := clock.AfterFunc(20*time.Millisecond, func() { order = append(order, "stopped") })
	if !stopped.Stop() {
		t.Fatal("Stop on pending timer returned false")
	}

	clock.Advance(time.Second)
	if len(order) != 2 || order[0] != "early" || order[1] != "late" {
		t.Fatalf("order = %v, want [early late]", order)
	}
	if clock.Pending() != 0 {
		t.Fatalf("pending timers = %d, want 0", clock.Pending())
	}
}
