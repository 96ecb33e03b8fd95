package credstore

import (
	"sync"

	"github.com/barberbook/admin-console/internal/core/domain"
	"github.com/barberbook/admin-console/internal/core/ports"
)

// MemoryStore is the ephemeral credential store: it lives and dies with the
// process, the closest console equivalent of browser session storage.
type MemoryStore struct {
	mu    sync.Mutex
	creds ports.Credentials
	user  *domain.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) SaveTokens(creds ports.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = creds
	return nil
}

func (s *MemoryStore) Tokens() (ports.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds, nil
}

func (s *MemoryStore) SaveUser(user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user == nil {
		s.user = nil
		return nil
	}
	clone := *user
	s.user = &clone
	return nil
}

func (s *MemoryStore) User() (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil, nil
	}
	clone := *s.user
	return &clone, nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = ports.Credentials{}
	s.user = nil
	return nil
}
