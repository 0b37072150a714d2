// Package feedback serves testimonials and accepts visitor feedback.
package feedback

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/vegruit/storefront/internal/backend"
	"github.com/vegruit/storefront/internal/poll"
)

// Gateway is the part of the backend client feedback needs.
type Gateway interface {
	Testimonials(ctx context.Context) backend.Result[[]backend.Testimonial]
	SubmitFeedback(ctx context.Context, token string, fb backend.Feedback) backend.Result[struct{}]
}

// Testimonials keeps the latest testimonials, refreshed by one server-wide task.
type Testimonials struct {
	gateway Gateway
	task    *poll.Task

	mu        sync.RWMutex
	items     []backend.Testimonial
	loaded    bool
	updatedAt time.Time
}

func NewTestimonials(gw Gateway, interval time.Duration) *Testimonials {
	t := &Testimonials{gateway: gw}
	t.task = poll.New("testimonials", interval, t.refresh)
	return t
}

func (t *Testimonials) Start(ctx context.Context) {
	t.task.Start(ctx)
}

func (t *Testimonials) Stop() {
	t.task.Stop()
}

func (t *Testimonials) refresh(ctx context.Context) {
	res := t.gateway.Testimonials(ctx)
	if ctx.Err() != nil {
		return
	}
	if !res.OK() {
		log.Warnf("testimonials: refresh failed: %s", res.Err.Message)
		return
	}
	t.store(res.Data)
}

func (t *Testimonials) store(items []backend.Testimonial) {
	t.mu.Lock()
	t.items = items
	t.loaded = true
	t.updatedAt = time.Now()
	t.mu.Unlock()
}

// UpdatedAt is when the cache last changed; zero before the first load.
func (t *Testimonials) UpdatedAt() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.updatedAt
}

// List returns the cached testimonials. Before the first successful
// refresh it asks the backend directly.
func (t *Testimonials) List(ctx context.Context) backend.Result[[]backend.Testimonial] {
	t.mu.RLock()
	if t.loaded {
		out := make([]backend.Testimonial, len(t.items))
		copy(out, t.items)
		t.mu.RUnlock()
		return backend.Ok(out, "")
	}
	t.mu.RUnlock()

	res := t.gateway.Testimonials(ctx)
	if res.OK() {
		t.store(res.Data)
	}
	return res
}
