package credential

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store is the durable username -> secret mapping consulted by the
// password-based authentication flow.
type Store interface {
	Upsert(username, secret string) error
	Get(username string) (string, bool, error)
}

// FileStore persists credentials as a JSON object in a single file. The
// mutex scopes the whole read-load-mutate-persist sequence, and the file is
// re-read under the lock on every operation so concurrent writers never act
// on stale state.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore opens (or prepares to create) the credential file. The file
// is loaded once eagerly so an unreadable store fails at startup rather than
// on first request.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) Upsert(username, secret string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return err
	}
	users[username] = secret
	return s.save(users)
}

func (s *FileStore) Get(username string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return "", false, err
	}
	secret, ok := users[username]
	return secret, ok, nil
}

// load reads the file fresh. A missing file is an empty store. Caller must
// hold the mutex.
func (s *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("credential store: read %s: %w", s.path, err)
	}

	users := map[string]string{}
	if len(data) == 0 {
		return users, nil
	}
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("credential store: parse %s: %w", s.path, err)
	}
	return users, nil
}

// save writes to a temp file and renames it into place so readers never see
// a half-written file. Caller must hold the mutex.
func (s *FileStore) save(users map[string]string) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".users-*.json")
	if err != nil {
		return fmt.Errorf("credential store: write %s: %w", s.path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("credential store: write %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("credential store: write %s: %w", s.path, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("credential store: write %s: %w", s.path, err)
	}
	return nil
}
