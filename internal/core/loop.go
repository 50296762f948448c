package core

import (
	"context"
	"sync"
	"time"
)

// FrameID identifies a pending frame callback. Zero is never issued.
type FrameID uint64

type frameRequest struct {
	id FrameID
	fn func()
}

// Loop is a single-threaded cooperative event loop. All state owned by
// components attached to a Loop is touched only from the goroutine that runs
// Drain, RunFrame or Run; other goroutines hand work over with Post or Call.
type Loop struct {
	mu      sync.Mutex
	tasks   []func()
	wake    chan struct{}
	nextID  FrameID
	pending []frameRequest
	frames  uint64
}

// NewLoop returns an idle loop.
func NewLoop() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// RequestFrame queues fn to run on the next frame. Requests made while a
// frame is running are deferred to the following frame.
func (l *Loop) RequestFrame(fn func()) FrameID {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	l.pending = append(l.pending, frameRequest{id: l.nextID, fn: fn})
	return l.nextID
}

// CancelFrame drops a pending frame callback. Unknown ids are ignored.
func (l *Loop) CancelFrame(id FrameID) {
	if id == 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, req := range l.pending {
		if req.id == id {
			l.pending = append(l.pending[:i], l.pending[i+1:]...)
			return
		}
	}
}

// PendingFrames reports how many frame callbacks are queued.
func (l *Loop) PendingFrames() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Frames reports how many frames have been run.
func (l *Loop) Frames() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frames
}

// RunFrame runs every frame callback queued before the call and returns how
// many ran.
func (l *Loop) RunFrame() int {
	l.mu.Lock()
	batch := l.pending
	l.pending = nil
	l.frames++
	l.mu.Unlock()
	for _, req := range batch {
		req.fn()
	}
	return len(batch)
}

// Post queues fn to run on the loop goroutine. It never blocks.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Drain runs queued tasks, including tasks posted while draining, and
// returns how many ran.
func (l *Loop) Drain() int {
	n := 0
	for {
		l.mu.Lock()
		batch := l.tasks
		l.tasks = nil
		l.mu.Unlock()
		if len(batch) == 0 {
			return n
		}
		for _, fn := range batch {
			fn()
			n++
		}
	}
}

// Call posts fn and waits for it to finish. It must not be used from the loop
// goroutine itself.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	l.Post(func() {
		defer close(done)
		fn()
	})
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run drives the loop until ctx is cancelled, delivering frames at the given
// interval while any are pending.
func (l *Loop) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Second / 60
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			l.Drain()
			return ctx.Err()
		case <-l.wake:
			l.Drain()
		case <-ticker.C:
			l.Drain()
			if l.PendingFrames() > 0 {
				l.RunFrame()
			}
		}
	}
}
