// Package session provides the in-memory session backing for single-process
// deployments. Multi-process deployments use the Redis store instead; both
// satisfy ports.SessionStore.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/flowcrm/customer-system/internal/core/domain"
)

type entry struct {
	userID    string
	expiresAt time.Time
}

// MemoryStore is a concurrency-safe token → user mapping with lazy expiry.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]entry
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]entry),
		now:      time.Now,
	}
}

func (s *MemoryStore) Save(_ context.Context, token, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = entry{userID: userID, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, token string) (string, error) {
	s.mu.RLock()
	e, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return "", domain.ErrSessionNotFound
	}
	if s.now().After(e.expiresAt) {
		// lazy expiry: drop the stale entry on access
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return "", domain.ErrSessionNotFound
	}
	return e.userID, nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
