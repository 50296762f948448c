package core

import (
	"context"
	"testing"
	"time"
)

func TestRunFrameDefersRequestsMadeDuringFrame(t *testing.T) {
	loop := NewLoop()
	ran := 0
	var again func()
	again = func() {
		ran++
		loop.RequestFrame(again)
	}
	loop.RequestFrame(again)

	if n := loop.RunFrame(); n != 1 {
		t.Fatalf("first frame ran %d callbacks, want 1", n)
	}
	if ran != 1 {
		t.Fatalf("callback ran %d times, want 1", ran)
	}
	if loop.PendingFrames() != 1 {
		t.Fatalf("expected re-request to wait for next frame, pending=%d", loop.PendingFrames())
	}
	loop.RunFrame()
	if ran != 2 {
		t.Fatalf("callback ran %d times after two frames, want 2", ran)
	}
}

func TestCancelFrame(t *testing.T) {
	loop := NewLoop()
	called := false
	id := loop.RequestFrame(func() { called = true })
	loop.CancelFrame(id)
	loop.CancelFrame(0)
	loop.CancelFrame(id + 100)

	if n := loop.RunFrame(); n != 0 {
		t.Fatalf("cancelled frame still ran (%d callbacks)", n)
	}
	if called {
		t.Fatal("cancelled callback was invoked")
	}
}

func TestDrainRunsNestedPosts(t *testing.T) {
	loop := NewLoop()
	var order []int
	loop.Post(func() {
		order = append(order, 1)
		loop.Post(func() { order = append(order, 3) })
	})
	loop.Post(func() { order = append(order, 2) })

	if n := loop.Drain(); n != 3 {
		t.Fatalf("drained %d tasks, want 3", n)
	}
	want := []int{1, 2, 3}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestCallWaitsForLoop(t *testing.T) {
	loop := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx, time.Millisecond) }()

	value := 0
	if err := loop.Call(ctx, func() { value = 42 }); err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if value != 42 {
		t.Fatalf("value = %d, want 42", value)
	}

	cancel()
	if err := <-done; err != context.Canceled {
		t.Fatalf("Run returned %v, want context.Canceled", err)
	}
}

func TestRunDeliversPendingFrames(t *testing.T) {
	loop := NewLoop()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	go loop.Run(ctx, time.Millisecond)

	ran := make(chan struct{})
	loop.Post(func() {
		loop.RequestFrame(func() { close(ran) })
	})
	select {
	case <-ran:
	case <-ctx.Done():
		t.Fatal("frame callback never ran")
	}
}
