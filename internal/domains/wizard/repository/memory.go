package repository

import (
	"context"
	"sync"
	"time"

	"lodge/config"
	"lodge/internal/domains/wizard/model"
	"lodge/shared/timezone"
)

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memorySession
	ttl      time.Duration
}

type memorySession struct {
	session   model.Session
	expiresAt time.Time
}

// NewMemory keeps sessions in process memory with the same TTL semantics as
// the redis store. Expired entries are dropped lazily on read.
func NewMemory(cfg *config.Config) SessionStore {
	return &memoryStore{
		sessions: make(map[string]memorySession),
		ttl:      time.Duration(cfg.Store.SessionTTL) * time.Second,
	}
}

func (s *memoryStore) Save(_ context.Context, session model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = memorySession{
		session:   session,
		expiresAt: timezone.Now().Add(s.ttl),
	}

	return nil
}

func (s *memoryStore) Get(_ context.Context, id string) (model.Session, bool, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return model.Session{}, false, nil
	}

	if timezone.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()

		return model.Session{}, false, nil
	}

	return entry.session, true, nil
}

func (s *memoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)

	return nil
}
