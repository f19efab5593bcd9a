package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/superbmd/bmd-cli/internal/core/domain"
)

// Store persists the login session as a JSON file and serves it to the
// HTTP client. A missing or unreadable file simply means logged out;
// the store never fails a read.
type Store struct {
	mu      sync.RWMutex
	path    string
	current domain.Session
}

// NewStore creates a store backed by the given file and hydrates it.
func NewStore(path string) *Store {
	s := &Store{path: path}
	s.load()
	return s
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		// A corrupt file is treated as logged out and removed so the
		// next save starts clean.
		_ = os.Remove(s.path)
		return
	}
	sess.User.Role = domain.NormalizeRole(string(sess.User.Role))
	s.current = sess
}

// Current returns the session as last persisted.
func (s *Store) Current() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Save persists the session. The file holds a bearer token, so it is
// written owner-readable only.
func (s *Store) Save(sess domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	s.current = sess
	return nil
}

// Clear forgets the session and removes the file. Clearing an already
// absent session is not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = domain.Session{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
