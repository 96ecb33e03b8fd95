package tokens

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	userID    string
	expiresAt time.Time
}

// MemoryStore holds refresh tokens in a map with lazy expiry. Default
// backend for the self-contained demo server.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Save(_ context.Context, token, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = memoryEntry{userID: userID, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Lookup(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[token]
	if !ok {
		return "", ErrTokenNotFound
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.entries, token)
		return "", ErrTokenNotFound
	}
	return entry.userID, nil
}

func (s *MemoryStore) Revoke(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
	return nil
}
