// Package failover layers the Redis session store over the in-memory
// fallback. Every call tries the primary first, so a Redis outage degrades
// the honeypot instead of stopping it, and a recovered Redis is picked up
// without a restart.
package failover

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/anuragkar/scambait/internal/domain"
)

// Store implements domain.SessionStore over a primary and a fallback store.
type Store struct {
	primary  domain.SessionStore
	fallback domain.SessionStore

	mu       sync.RWMutex
	degraded bool
}

func New(primary, fallback domain.SessionStore) *Store {
	return &Store{primary: primary, fallback: fallback}
}

// Status reports which backend served the most recent call.
func (s *Store) Status() domain.StoreStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.degraded {
		return domain.StoreFallback
	}
	return domain.StoreConnected
}

// Load reads from the primary, degrading to the fallback only on store
// failure. ErrSessionNotFound means the primary answered and is healthy.
func (s *Store) Load(ctx context.Context, id string) (*domain.Session, error) {
	session, err := s.primary.Load(ctx, id)
	if err == nil || errors.Is(err, domain.ErrSessionNotFound) {
		s.setDegraded(false)
		return session, err
	}

	log.Warn().Err(err).Str("session_id", id).Msg("Primary session store load failed, using fallback")
	s.setDegraded(true)
	return s.fallback.Load(ctx, id)
}

func (s *Store) Save(ctx context.Context, session *domain.Session) error {
	if err := s.primary.Save(ctx, session); err != nil {
		log.Warn().Err(err).Str("session_id", session.ID).Msg("Primary session store save failed, using fallback")
		s.setDegraded(true)
		return s.fallback.Save(ctx, session)
	}
	s.setDegraded(false)
	return nil
}

// Delete clears both stores; the fallback may hold state from a degraded
// window.
func (s *Store) Delete(ctx context.Context, id string) error {
	fbErr := s.fallback.Delete(ctx, id)
	if err := s.primary.Delete(ctx, id); err != nil {
		log.Warn().Err(err).Str("session_id", id).Msg("Primary session store delete failed")
		s.setDegraded(true)
		return fbErr
	}
	s.setDegraded(false)
	return fbErr
}

func (s *Store) List(ctx context.Context) ([]string, error) {
	ids, err := s.primary.List(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Primary session store list failed, using fallback")
		s.setDegraded(true)
		return s.fallback.List(ctx)
	}
	s.setDegraded(false)
	return ids, nil
}

// Ping fails only when both backends are unreachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.primary.Ping(ctx); err != nil {
		s.setDegraded(true)
		return s.fallback.Ping(ctx)
	}
	s.setDegraded(false)
	return nil
}

func (s *Store) setDegraded(degraded bool) {
	s.mu.Lock()
	changed := s.degraded != degraded
	s.degraded = degraded
	s.mu.Unlock()

	if !changed {
		return
	}
	if degraded {
		log.Warn().Msg("Session store degraded to in-memory fallback")
	} else {
		log.Info().Msg("Session store restored to primary")
	}
}
