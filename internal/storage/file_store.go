package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/olejniktut/dc-landscaping/internal/domain"
)

const (
	tokenFile       = "token"
	userFile        = "user.json"
	lastWorkersFile = "last_workers.json"
)

// FileStore keeps client state as files under a single directory
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates the state directory if needed
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name)
}

// SaveToken persists the bearer token
func (s *FileStore) SaveToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return os.WriteFile(s.path(tokenFile), []byte(token), 0o600)
}

// Token returns the persisted token, if any
func (s *FileStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path(tokenFile))
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(data))
	return token, token != ""
}

// SaveUser persists the validated profile
func (s *FileStore) SaveUser(user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(userFile), data, 0o600)
}

// User returns the persisted profile. Missing or corrupt data reads as nil.
func (s *FileStore) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path(userFile))
	if err != nil {
		return nil
	}
	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil
	}
	return &user
}

// ClearSession removes token and user together
func (s *FileStore) ClearSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var errs []error
	for _, name := range []string{tokenFile, userFile} {
		if err := os.Remove(s.path(name)); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SaveLastWorkers persists the worker set from the most recent start
func (s *FileStore) SaveLastWorkers(ids []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(lastWorkersFile), data, 0o600)
}

// LastWorkers returns the remembered worker set. Missing or corrupt data
// reads as empty.
func (s *FileStore) LastWorkers() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path(lastWorkersFile))
	if err != nil {
		return nil
	}
	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil
	}
	return ids
}
