// Package credstore provides the two credential store implementations the
// session manager chooses between: a durable JSON file that survives
// restarts and an ephemeral in-memory store scoped to the process.
package credstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/barberbook/admin-console/internal/core/domain"
	"github.com/barberbook/admin-console/internal/core/ports"
)

const fileName = "credentials.json"

// fileEntry is the on-disk layout. Token and refresh token are opaque
// strings; the user record is cached alongside them.
type fileEntry struct {
	Token        string          `json:"token,omitempty"`
	RefreshToken string          `json:"refresh_token,omitempty"`
	User         json.RawMessage `json:"user,omitempty"`
}

// FileStore persists credentials as a single mode-0600 JSON file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a durable store writing to dir/credentials.json.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, fileName)}
}

func (s *FileStore) SaveTokens(creds ports.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, _ := s.read() // an unreadable file is overwritten, not propagated
	entry.Token = creds.Token
	entry.RefreshToken = creds.RefreshToken
	return s.write(entry)
}

func (s *FileStore) Tokens() (ports.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.read()
	if err != nil {
		return ports.Credentials{}, err
	}
	return ports.Credentials{Token: entry.Token, RefreshToken: entry.RefreshToken}, nil
}

func (s *FileStore) SaveUser(user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("credstore: marshal user: %w", err)
	}
	entry, _ := s.read()
	entry.User = raw
	return s.write(entry)
}

func (s *FileStore) User() (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.read()
	if err != nil {
		return nil, err
	}
	if len(entry.User) == 0 {
		return nil, nil
	}
	var user domain.User
	if err := json.Unmarshal(entry.User, &user); err != nil {
		return nil, fmt.Errorf("credstore: corrupted user record: %w", err)
	}
	return &user, nil
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("credstore: clear: %w", err)
	}
	return nil
}

func (s *FileStore) read() (fileEntry, error) {
	var entry fileEntry
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return entry, nil
	}
	if err != nil {
		return entry, fmt.Errorf("credstore: read: %w", err)
	}
	if err := json.Unmarshal(data, &entry); err != nil {
		return fileEntry{}, fmt.Errorf("credstore: corrupted credential file: %w", err)
	}
	return entry, nil
}

func (s *FileStore) write(entry fileEntry) error {
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("credstore: marshal: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("credstore: write: %w", err)
	}
	return nil
}
