// Package mainloop provides the single-goroutine scheduling primitives the
// navigation coordinator runs on.
package mainloop

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/atomic"
)

// ErrAlreadyRunning is returned when Run is called on a loop that is running.
var ErrAlreadyRunning = errors.New("mainloop: already running")

// ErrStopped is returned by Invoke once the loop has stopped.
var ErrStopped = errors.New("mainloop: stopped")

// Loop serializes tasks onto one goroutine. Post is safe from any goroutine;
// tasks run in FIFO order, so work posted while a task runs executes on a
// later turn.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	running atomic.Bool
	stopped atomic.Bool
}

// NewLoop creates an idle loop. Call Run to start processing.
func NewLoop() *Loop {
	return &Loop{
		wake: make(chan struct{}, 1),
	}
}

// Post queues fn for a later turn. Tasks posted after the loop stopped are dropped.
func (l *Loop) Post(fn func()) {
	if fn == nil || l.stopped.Load() {
		return
	}

	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// ScheduleFlush implements port.FlushScheduler.
func (l *Loop) ScheduleFlush(fn func()) {
	l.Post(fn)
}

// Invoke runs fn on the loop and waits for it to finish.
func (l *Loop) Invoke(ctx context.Context, fn func()) error {
	if l.stopped.Load() {
		return ErrStopped
	}

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

// Run processes tasks until ctx is canceled. Remaining tasks are dropped.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer l.running.Store(false)

	for {
		l.drain(ctx)

		select {
		case <-ctx.Done():
			l.stop()
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Running reports whether Run is active.
func (l *Loop) Running() bool {
	return l.running.Load()
}

func (l *Loop) drain(ctx context.Context) {
	for ctx.Err() == nil {
		l.mu.Lock()
		if len(l.queue) == 0 {
			l.mu.Unlock()
			return
		}
		fn := l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		l.mu.Unlock()

		fn()
	}
}

func (l *Loop) stop() {
	l.stopped.Store(true)
	l.mu.Lock()
	l.queue = nil
	l.mu.Unlock()
}
