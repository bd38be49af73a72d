package memory

import (
	"context"
	"sync"

	"arcadia-quote-service/internal/app"
	"arcadia-quote-service/internal/domain"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
// Snapshots are kept in a second map so resume behaves the same as with
// the Redis-backed store.
type SessionStore struct {
	mu        sync.RWMutex
	sessions  map[string]*app.Session
	snapshots map[string]domain.SessionSnapshot
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions:  make(map[string]*app.Session),
		snapshots: make(map[string]domain.SessionSnapshot),
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
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	delete(s.snapshots, sessionID)
}

func (s *SessionStore) SaveSnapshot(_ context.Context, snap domain.SessionSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[snap.SessionID] = snap
	return nil
}

func (s *SessionStore) LoadSnapshot(_ context.Context, sessionID string) (domain.SessionSnapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[sessionID]
	return snap, ok, nil
}
