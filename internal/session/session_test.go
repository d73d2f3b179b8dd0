package session

import (
	"testing"
	"time"
)

func TestCreateAndGet(t *testing.T) {
	m := NewManager(time.Hour)

	token := m.Create("a@b.com", "Jane")
	s, ok := m.Get(token)
	if !ok {
		t.Fatal("expected session")
	}
	if s.CustomerID != "a@b.com" || s.DisplayName != "Jane" {
		t.Fatalf("unexpected session: %+v", s)
	}
}

func TestGetUnknownToken(t *testing.T) {
	m := NewManager(time.Hour)
	if _, ok := m.Get("nope"); ok {
		t.Fatal("expected no session")
	}
}

func TestExpiry(t *testing.T) {
	m := NewManager(time.Minute)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m.nowFunc = func() time.Time { return now }

	token := m.Create("a@b.com", "Jane")
	now = now.Add(2 * time.Minute)

	if _, ok := m.Get(token); ok {
		t.Fatal("expected expired session to be gone")
	}
	// expired token is dropped, a second lookup still misses
	if _, ok := m.Get(token); ok {
		t.Fatal("expected expired session to stay gone")
	}
}

func TestDestroy(t *testing.T) {
	m := NewManager(time.Hour)
	token := m.Create("a@b.com", "Jane")
	m.Destroy(token)
	if _, ok := m.Get(token); ok {
		t.Fatal("expected destroyed session to be gone")
	}
	m.Destroy(token) // no-op
}
