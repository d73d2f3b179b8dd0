// Package session holds server-side login sessions keyed by a cookie token.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// CookieName is the session cookie's name.
const CookieName = "storefront_session"

// Session is the typed identity attached to a logged-in request.
type Session struct {
	CustomerID  string
	DisplayName string
	ExpiresAt   time.Time
}

// Manager is an in-memory session store. Sessions die with the process,
// which matches the original system's behavior.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]Session
	ttl      time.Duration
	nowFunc  func() time.Time
}

func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		sessions: map[string]Session{},
		ttl:      ttl,
		nowFunc:  time.Now,
	}
}

// Create issues a fresh token for the customer.
func (m *Manager) Create(customerID, displayName string) string {
	token := uuid.NewString()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = Session{
		CustomerID:  customerID,
		DisplayName: displayName,
		ExpiresAt:   m.nowFunc().Add(m.ttl),
	}
	return token
}

// Get resolves a token. Expired sessions are dropped on access.
func (m *Manager) Get(token string) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok {
		return Session{}, false
	}
	if m.nowFunc().After(s.ExpiresAt) {
		delete(m.sessions, token)
		return Session{}, false
	}
	return s, true
}

// Destroy forgets a token. Unknown tokens are a no-op.
func (m *Manager) Destroy(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}
