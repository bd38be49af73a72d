package redis

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"arcadia-quote-service/internal/app"
	"arcadia-quote-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

// SessionStore is a Redis-aware implementation of app.SessionRepository.
// Notes:
//   - Active sessions stay in a local in-memory map so the state machine
//     runs in process without a round-trip per interaction.
//   - Redis holds the versioned session snapshot, which is the handoff
//     record that lets a session resume on another connection or after a
//     restart.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*app.Session
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		sessions: make(map[string]*app.Session),
	}
}

func (s *SessionStore) Put(session *app.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID()] = session
}

func (s *SessionStore) Get(sessionID string) (*app.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	return session, ok
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	_ = s.client.Del(context.Background(), s.key(sessionID)).Err()
}

func (s *SessionStore) SaveSnapshot(ctx context.Context, snap domain.SessionSnapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(snap.SessionID), raw, s.ttl).Err()
}

func (s *SessionStore) LoadSnapshot(ctx context.Context, sessionID string) (domain.SessionSnapshot, bool, error) {
	raw, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if err == redis.Nil {
		return domain.SessionSnapshot{}, false, nil
	}
	if err != nil {
		return domain.SessionSnapshot{}, false, err
	}
	var snap domain.SessionSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return domain.SessionSnapshot{}, false, err
	}
	if snap.Version != domain.SnapshotVersion {
		return domain.SessionSnapshot{}, false, domain.ErrSnapshotVersion
	}
	return snap, true, nil
}

func (s *SessionStore) key(sessionID string) string {
	return "quote:session:" + sessionID
}
