package review

import "sync"

type owned struct {
	token string
	set   *Set
}

// Tracker keeps one reviewable set per session namespace. A set belongs to
// the token it was built for; any other token sees nothing cached.
type Tracker struct {
	mu   sync.Mutex
	sets map[string]owned
}

func NewTracker() *Tracker {
	return &Tracker{sets: make(map[string]owned)}
}

func (t *Tracker) Put(namespace, token string, s *Set) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sets[namespace] = owned{token: token, set: s}
}

func (t *Tracker) lookup(namespace, token string) (*Set, bool) {
	o, ok := t.sets[namespace]
	if !ok || o.token != token {
		return nil, false
	}
	return o.set, true
}

// Items returns the cached set, ok=false when none was built for token.
func (t *Tracker) Items(namespace, token string) ([]Item, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.lookup(namespace, token)
	if !ok {
		return nil, false
	}
	return s.Items(), true
}

// Has reports whether a set is cached for token and whether it contains k.
func (t *Tracker) Has(namespace, token string, k Key) (cached, contains bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.lookup(namespace, token)
	if !ok {
		return false, false
	}
	return true, s.Contains(k)
}

func (t *Tracker) Remove(namespace, token string, k Key) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.lookup(namespace, token)
	if !ok {
		return false
	}
	return s.Remove(k)
}

// Forget drops the namespace's set, e.g. on logout.
func (t *Tracker) Forget(namespace string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.sets, namespace)
}

// Retain drops the namespace's set unless it was built for token.
func (t *Tracker) Retain(namespace, token string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if o, ok := t.sets[namespace]; ok && o.token != token {
		delete(t.sets, namespace)
	}
}
