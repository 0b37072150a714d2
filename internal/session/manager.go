package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

const (
	keyToken    = "token"
	keyUser     = "user"
	keyUserType = "userType"
)

// Namespace is the persistence prefix for one visitor.
func Namespace(visitorID string) string {
	return "vegruit:" + visitorID
}

// Hooks are notified after the session changes. Either may be nil.
type Hooks struct {
	Established func(namespace string, s Session)
	Cleared     func(namespace string)
}

// Manager is the single source of truth for one visitor's session.
type Manager struct {
	store     Persistence
	namespace string
	hooks     Hooks
	now       func() time.Time

	mu    sync.RWMutex
	state Session
}

func NewManager(store Persistence, namespace string, hooks Hooks) *Manager {
	return &Manager{store: store, namespace: namespace, hooks: hooks, now: time.Now}
}

func (m *Manager) Namespace() string {
	return m.namespace
}

func (m *Manager) key(name string) string {
	return m.namespace + ":" + name
}

func (m *Manager) keys() []string {
	return []string{m.key(keyToken), m.key(keyUser), m.key(keyUserType)}
}

// Restore loads the persisted session. Any read or parse failure leaves the
// manager anonymous; it never returns an error.
func (m *Manager) Restore(ctx context.Context) {
	s, ok := m.load(ctx)
	if !ok {
		s = Session{}
	}
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

func (m *Manager) load(ctx context.Context) (Session, bool) {
	token, ok := m.read(ctx, keyToken)
	if !ok || token == "" {
		return Session{}, false
	}
	raw, ok := m.read(ctx, keyUser)
	if !ok || raw == "" {
		return Session{}, false
	}
	tag, _ := m.read(ctx, keyUserType)

	var p Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		log.Warnf("session %s: stored profile unreadable: %v", m.namespace, err)
		return Session{}, false
	}
	if p.UserType == "" {
		p.UserType = tag
	}
	if tokenExpired(token, m.now()) {
		log.Infof("session %s: stored token expired", m.namespace)
		return Session{}, false
	}
	return Session{Token: token, Profile: &p, UserType: ParseUserType(p.UserType)}, true
}

func (m *Manager) read(ctx context.Context, name string) (string, bool) {
	v, err := m.store.Get(ctx, m.key(name))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Warnf("session %s: read %s: %v", m.namespace, name, err)
		}
		return "", false
	}
	return v, true
}

// Establish records a successful login or registration. In-memory state is
// always updated; persistence is best-effort and failures are only logged.
// If any write fails, the values already written are removed again.
func (m *Manager) Establish(ctx context.Context, profile Profile, token string, userType UserType) {
	if token == "" {
		log.Warnf("session %s: establish without token ignored", m.namespace)
		return
	}
	if profile.UserType == "" {
		profile.UserType = string(userType)
	}
	if userType == "" {
		userType = ParseUserType(profile.UserType)
	}

	s := Session{Token: token, Profile: &profile, UserType: userType}
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()

	m.persist(ctx, s)

	if m.hooks.Established != nil {
		m.hooks.Established(m.namespace, s)
	}
}

func (m *Manager) persist(ctx context.Context, s Session) {
	profileJSON, err := json.Marshal(s.Profile)
	if err != nil {
		log.Warnf("session %s: encode profile: %v", m.namespace, err)
		return
	}

	writes := []struct{ name, value string }{
		{keyUserType, string(s.UserType)},
		{keyUser, string(profileJSON)},
		{keyToken, s.Token},
	}
	var written []string
	for _, w := range writes {
		if err := m.store.Set(ctx, m.key(w.name), w.value); err != nil {
			log.Warnf("session %s: persist %s: %v", m.namespace, w.name, err)
			if len(written) > 0 {
				if err := m.store.Delete(ctx, written...); err != nil {
					log.Warnf("session %s: rollback: %v", m.namespace, err)
				}
			}
			return
		}
		written = append(written, m.key(w.name))
	}
}

// Clear removes the persisted values and empties the in-memory session.
func (m *Manager) Clear(ctx context.Context) {
	if err := m.store.Delete(ctx, m.keys()...); err != nil {
		log.Warnf("session %s: clear: %v", m.namespace, err)
	}
	m.mu.Lock()
	m.state = Session{}
	m.mu.Unlock()

	if m.hooks.Cleared != nil {
		m.hooks.Cleared(m.namespace)
	}
}

// Current returns a copy of the session; the profile is copied too.
func (m *Manager) Current() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := m.state
	if s.Profile != nil {
		p := *s.Profile
		s.Profile = &p
	}
	return s
}

func (m *Manager) CurrentToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Token
}

func (m *Manager) CurrentUserType() UserType {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.UserType
}
