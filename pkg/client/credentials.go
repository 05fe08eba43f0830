package client

import (
	"os"
	"strings"
	"sync"
)

// CredentialStore persists the bearer token across restarts. The SPA kept it
// in localStorage under "token"; here the file-backed store is the default
// and an in-memory one covers tests.
type CredentialStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileCredentialStore keeps the token in a single file, readable only by the
// owner.
type FileCredentialStore struct {
	Path string
}

func (s *FileCredentialStore) Load() (string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileCredentialStore) Save(token string) error {
	return os.WriteFile(s.Path, []byte(token), 0o600)
}

func (s *FileCredentialStore) Clear() error {
	err := os.Remove(s.Path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// MemoryCredentialStore holds the token in memory.
type MemoryCredentialStore struct {
	mu    sync.Mutex
	token string
}

func (s *MemoryCredentialStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryCredentialStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryCredentialStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
