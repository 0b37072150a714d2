package order

import "sync"

// InFlight refuses a second request for the same key while the first is
// still outstanding.
type InFlight struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewInFlight() *InFlight {
	return &InFlight{held: make(map[string]struct{})}
}

// Acquire returns a release func, or ok=false when key is already held.
// release is safe to call more than once.
func (g *InFlight) Acquire(key string) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.held[key]; busy {
		return nil, false
	}
	g.held[key] = struct{}{}
	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.held, key)
			g.mu.Unlock()
		})
	}, true
}

func inFlightKey(visitor, orderID string, action Action) string {
	return visitor + "|" + orderID + "|" + string(action)
}
