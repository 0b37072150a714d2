// Package poll runs periodic refreshes that can be stopped cleanly.
package poll

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

// Task calls its function immediately on Start and then again interval after
// each run finishes. Runs never overlap.
type Task struct {
	name     string
	interval time.Duration
	fn       func(ctx context.Context)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func New(name string, interval time.Duration, fn func(ctx context.Context)) *Task {
	return &Task{name: name, interval: interval, fn: fn}
}

// Start begins the loop. It reports false if the task was already running.
func (t *Task) Start(parent context.Context) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		return false
	}
	ctx, cancel := context.WithCancel(parent)
	t.cancel = cancel
	t.done = make(chan struct{})
	go t.loop(ctx, t.done)
	log.Infof("poll %s: started (every %s)", t.name, t.interval)
	return true
}

// Stop cancels an in-flight run and waits for the loop to exit. It must not
// be called from inside the task function.
func (t *Task) Stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel, t.done = nil, nil
	t.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
	log.Infof("poll %s: stopped", t.name)
}

// Cancel ends the loop without waiting for it, so the task function may
// call it to retire its own task.
func (t *Task) Cancel() {
	t.mu.Lock()
	cancel := t.cancel
	t.cancel, t.done = nil, nil
	t.mu.Unlock()
	if cancel != nil {
		cancel()
		log.Infof("poll %s: cancelled", t.name)
	}
}

func (t *Task) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancel != nil
}

func (t *Task) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	for {
		t.fn(ctx)
		if ctx.Err() != nil {
			return
		}
		timer := time.NewTimer(t.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}
