package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"idorlab/internal/cache"
)

const sessionKeyPrefix = "session:"

// ErrSessionNotFound is returned when a session id is unknown or expired.
var ErrSessionNotFound = errors.New("session not found")

// SessionStoreInterface defines the server-side session registry.
type SessionStoreInterface interface {
	StoreSession(ctx context.Context, sessionID string, userID uint, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) (userID uint, err error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// SessionStore keeps sessions in Redis with TTL.
type SessionStore struct {
	cache *cache.Client
}

// Ensure SessionStore implements SessionStoreInterface
var _ SessionStoreInterface = (*SessionStore)(nil)

type sessionRecord struct {
	UserID    uint      `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSessionStore creates a new session store.
func NewSessionStore(cache *cache.Client) *SessionStore {
	return &SessionStore{cache: cache}
}

// StoreSession binds sessionID to userID until ttl elapses.
func (s *SessionStore) StoreSession(ctx context.Context, sessionID string, userID uint, ttl time.Duration) error {
	payload, err := json.Marshal(sessionRecord{UserID: userID, CreatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.cache.Set(ctx, sessionKeyPrefix+sessionID, payload, ttl)
}

// GetSession returns the user bound to sessionID.
func (s *SessionStore) GetSession(ctx context.Context, sessionID string) (uint, error) {
	data, err := s.cache.Get(ctx, sessionKeyPrefix+sessionID)
	if err != nil {
		return 0, fmt.Errorf("load session: %w", err)
	}
	if data == nil {
		return 0, ErrSessionNotFound
	}

	var record sessionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return 0, fmt.Errorf("unmarshal session: %w", err)
	}
	if record.UserID == 0 {
		return 0, ErrSessionNotFound
	}
	return record.UserID, nil
}

// DeleteSession removes a session.
func (s *SessionStore) DeleteSession(ctx context.Context, sessionID string) error {
	return s.cache.Delete(ctx, sessionKeyPrefix+sessionID)
}
