package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the single-process fallback used for local runs and tests.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	nowFn    func() time.Time
}

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		nowFn:    time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, id string, sess Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = memoryEntry{session: sess, expiresAt: s.nowFn().Add(ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	if !s.nowFn().Before(entry.expiresAt) {
		delete(s.sessions, id)
		return Session{}, ErrNotFound
	}
	return entry.session, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
