package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/anuragkar/scambait/internal/domain"
	"github.com/anuragkar/scambait/internal/security"
)

const sessionKeyPrefix = "session:"

// SessionStore persists sessions in Redis, one document per session key.
// With an encryptor configured the stored blob is AES-GCM sealed, since
// captured intelligence is sensitive at rest.
type SessionStore struct {
	client *Client
	ttl    time.Duration
	enc    *security.Encryptor
}

// NewSessionStore creates a session store with the given TTL. enc may be nil
// for plaintext storage.
func NewSessionStore(client *Client, ttl time.Duration, enc *security.Encryptor) *SessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionStore{client: client, ttl: ttl, enc: enc}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

// Load retrieves a session, returning domain.ErrSessionNotFound when the key
// is absent or has expired.
func (s *SessionStore) Load(ctx context.Context, id string) (*domain.Session, error) {
	data, err := s.client.rdb.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session domain.Session
	if s.enc != nil {
		if err := s.enc.DecryptJSON(data, &session); err != nil {
			return nil, fmt.Errorf("failed to decrypt session: %w", err)
		}
	} else if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// Save overwrites the session document and resets its TTL.
func (s *SessionStore) Save(ctx context.Context, session *domain.Session) error {
	var (
		data []byte
		err  error
	)
	if s.enc != nil {
		data, err = s.enc.EncryptJSON(session)
		if err != nil {
			return fmt.Errorf("failed to encrypt session: %w", err)
		}
	} else {
		data, err = json.Marshal(session)
		if err != nil {
			return fmt.Errorf("failed to marshal session: %w", err)
		}
	}

	if err := s.client.rdb.Set(ctx, sessionKey(session.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Delete removes a session. Deleting an absent session is not an error.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.rdb.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// List returns the ids of all live sessions.
func (s *SessionStore) List(ctx context.Context) ([]string, error) {
	pattern := sessionKeyPrefix + "*"
	ids := make([]string, 0)
	var cursor uint64

	for {
		keys, next, err := s.client.rdb.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan sessions: %w", err)
		}
		for _, key := range keys {
			ids = append(ids, strings.TrimPrefix(key, sessionKeyPrefix))
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return ids, nil
}

// Ping verifies Redis connectivity.
func (s *SessionStore) Ping(ctx context.Context) error {
	return s.client.rdb.Ping(ctx).Err()
}
