package repository

import (
	"context"
	"sync"
	"time"
)

type memoryRevocationStore struct {
	mu      sync.RWMutex
	now     func() time.Time
	entries map[string]time.Time
}

func NewMemoryRevocationStore() RevocationStore {
	return &memoryRevocationStore{
		now:     time.Now,
		entries: make(map[string]time.Time),
	}
}

func (s *memoryRevocationStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.entries[tokenID] = now.Add(ttl)

	// Sweep on write so the map stays bounded by live tokens.
	for id, expiresAt := range s.entries {
		if now.After(expiresAt) {
			delete(s.entries, id)
		}
	}
	return nil
}

func (s *memoryRevocationStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.RLock()
	expiresAt, ok := s.entries[tokenID]
	s.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if s.now().After(expiresAt) {
		s.mu.Lock()
		delete(s.entries, tokenID)
		s.mu.Unlock()
		return false, nil
	}
	return true, nil
}
