// Package memory provides the in-process session store used when Redis is
// unreachable. Sessions pass through a JSON round-trip on save and load so
// the fallback keeps the exact serialization semantics of the Redis store.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/anuragkar/scambait/internal/domain"
)

type entry struct {
	data      []byte
	expiresAt time.Time
}

// SessionStore holds serialized sessions behind an RWMutex. Expiry is lazy:
// entries are evicted when a read finds them past their deadline.
type SessionStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]entry
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionStore{
		ttl:      ttl,
		sessions: make(map[string]entry),
	}
}

// Load returns the stored session, or domain.ErrSessionNotFound when the id
// is unknown or the entry has expired.
func (s *SessionStore) Load(_ context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if time.Now().After(e.expiresAt) {
		s.evictExpired(id)
		return nil, domain.ErrSessionNotFound
	}

	var session domain.Session
	if err := json.Unmarshal(e.data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// Save overwrites the session and resets its TTL.
func (s *SessionStore) Save(_ context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	s.mu.Lock()
	s.sessions[session.ID] = entry{data: data, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return nil
}

// Delete removes a session. Deleting an absent session is not an error.
func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

// List returns the ids of all live sessions.
func (s *SessionStore) List(_ context.Context) ([]string, error) {
	now := time.Now()

	s.mu.RLock()
	ids := make([]string, 0, len(s.sessions))
	for id, e := range s.sessions {
		if now.After(e.expiresAt) {
			continue
		}
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	return ids, nil
}

// Ping always succeeds; the in-memory store has no backend to lose.
func (s *SessionStore) Ping(_ context.Context) error {
	return nil
}

// evictExpired removes the entry unless a concurrent Save renewed it.
func (s *SessionStore) evictExpired(id string) {
	s.mu.Lock()
	if e, ok := s.sessions[id]; ok && time.Now().After(e.expiresAt) {
		delete(s.sessions, id)
	}
	s.mu.Unlock()
}
