package dashboard

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/vegruit/storefront/internal/backend"
	"github.com/vegruit/storefront/internal/poll"
)

// A watch nobody has looked at for idleIntervals refresh intervals retires.
const idleIntervals = 4

// Snapshot is the latest stats a live dashboard has seen.
type Snapshot struct {
	Stats     backend.DashboardStats `json:"stats"`
	UpdatedAt time.Time              `json:"updatedAt"`
	LastError string                 `json:"lastError,omitempty"`
}

type watch struct {
	token    string
	dc       Context
	task     *poll.Task
	snapshot *Snapshot
	lastSeen time.Time
}

// Hub runs one stats refresher per session namespace. A watch belongs to
// the token it was started with.
type Hub struct {
	gateway  Gateway
	interval time.Duration
	idle     time.Duration
	base     context.Context
	now      func() time.Time

	mu      sync.Mutex
	watches map[string]*watch
}

func NewHub(base context.Context, gw Gateway, interval time.Duration) *Hub {
	return &Hub{
		gateway:  gw,
		interval: interval,
		idle:     idleIntervals * interval,
		base:     base,
		now:      time.Now,
		watches:  make(map[string]*watch),
	}
}

// Watch starts refreshing stats for namespace. An existing watch for the
// same token and role is kept and marked as seen; otherwise it is replaced.
func (h *Hub) Watch(namespace, token string, dc Context) {
	h.mu.Lock()
	w, ok := h.watches[namespace]
	if ok && w.token == token && w.dc.Role == dc.Role {
		w.lastSeen = h.now()
		h.mu.Unlock()
		return
	}
	delete(h.watches, namespace)
	h.mu.Unlock()
	if ok {
		w.task.Stop()
	}

	nw := &watch{token: token, dc: dc, lastSeen: h.now()}
	nw.task = poll.New("dashboard "+namespace, h.interval, func(ctx context.Context) {
		h.refresh(ctx, namespace, nw)
	})

	h.mu.Lock()
	if _, raced := h.watches[namespace]; raced {
		h.mu.Unlock()
		return
	}
	h.watches[namespace] = nw
	h.mu.Unlock()
	nw.task.Start(h.base)
}

func (h *Hub) refresh(ctx context.Context, namespace string, w *watch) {
	h.mu.Lock()
	idle := h.now().Sub(w.lastSeen) > h.idle
	h.mu.Unlock()
	if idle {
		h.retire(namespace, w, "idle")
		return
	}

	res := w.dc.Stats(ctx, h.gateway, w.token)
	if ctx.Err() != nil {
		return
	}
	if !res.OK() && res.Err.Status == http.StatusUnauthorized {
		h.retire(namespace, w, "token rejected")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if !res.OK() {
		log.Warnf("dashboard %s: refresh failed: %s", namespace, res.Err.Message)
		if w.snapshot != nil {
			w.snapshot.LastError = res.Err.Message
		}
		return
	}
	w.snapshot = &Snapshot{Stats: res.Data, UpdatedAt: h.now()}
}

// retire ends w from inside its own run.
func (h *Hub) retire(namespace string, w *watch, reason string) {
	h.mu.Lock()
	if h.watches[namespace] == w {
		delete(h.watches, namespace)
	}
	h.mu.Unlock()
	log.Infof("dashboard %s: refresher retired (%s)", namespace, reason)
	w.task.Cancel()
}

// Seed records stats fetched outside the refresher.
func (h *Hub) Seed(namespace, token string, stats backend.DashboardStats) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if w, ok := h.watches[namespace]; ok && w.token == token {
		w.snapshot = &Snapshot{Stats: stats, UpdatedAt: h.now()}
	}
}

// Snapshot returns the latest stats for namespace if the watch belongs to
// token and has data yet. A hit counts as the dashboard being looked at.
func (h *Hub) Snapshot(namespace, token string) (Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	w, ok := h.watches[namespace]
	if !ok || w.token != token || w.snapshot == nil {
		return Snapshot{}, false
	}
	w.lastSeen = h.now()
	return *w.snapshot, true
}

func (h *Hub) Watching(namespace string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.watches[namespace]
	return ok
}

// Stop ends the namespace's refresher, e.g. on logout.
func (h *Hub) Stop(namespace string) {
	h.mu.Lock()
	w, ok := h.watches[namespace]
	delete(h.watches, namespace)
	h.mu.Unlock()
	if ok {
		w.task.Stop()
	}
}

// Retain stops the namespace's refresher unless it belongs to token.
func (h *Hub) Retain(namespace, token string) {
	h.mu.Lock()
	w, ok := h.watches[namespace]
	if !ok || w.token == token {
		h.mu.Unlock()
		return
	}
	delete(h.watches, namespace)
	h.mu.Unlock()
	w.task.Stop()
}

// StopAll ends every refresher; used on shutdown.
func (h *Hub) StopAll() {
	h.mu.Lock()
	all := h.watches
	h.watches = make(map[string]*watch)
	h.mu.Unlock()
	for _, w := range all {
		w.task.Stop()
	}
}
