package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"trimly/models"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "bookingSession:"

// SessionStore persists booking sessions between flow steps.
type SessionStore interface {
	Save(ctx context.Context, session *models.BookingSession, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (*models.BookingSession, error)
	Delete(ctx context.Context, sessionID string) error
}

// RedisSessionStore keeps sessions as JSON blobs with a TTL.
type RedisSessionStore struct {
	Client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{Client: client}
}

func (s *RedisSessionStore) Save(ctx context.Context, session *models.BookingSession, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session: %w", err)
	}
	if err := s.Client.Set(ctx, sessionKeyPrefix+session.SessionID, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store booking session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	data, err := s.Client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load booking session: %w", err)
	}
	var session models.BookingSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse booking session: %w", err)
	}
	return &session, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.Client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}

// MemorySessionStore is the in-process store used by tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]*models.BookingSession
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]*models.BookingSession)}
}

func (s *MemorySessionStore) Save(ctx context.Context, session *models.BookingSession, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *session
	s.sessions[session.SessionID] = &clone
	return nil
}

func (s *MemorySessionStore) Get(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	clone := *session
	return &clone, nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
