package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"vercelctl/pkg/logging"
)

// FileName is the name of the credentials file inside the storage directory.
const FileName = "credentials.json"

// fileContents is the on-disk shape of the credentials file.
type fileContents struct {
	Token  string `json:"token,omitempty"`
	TeamID string `json:"teamId,omitempty"`
}

// FileStore is a Store backed by a JSON file.
//
// SECURITY: the file is created with 0600 permissions and its directory with
// 0700. Token values are never logged.
type FileStore struct {
	mu      sync.RWMutex
	dir     string
	current fileContents
}

// NewFileStore opens (or prepares) the credentials file in dir.
// An unreadable or corrupt file is reported as an error; a missing file
// yields an empty store.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("credentials directory must not be empty")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create credentials directory: %w", err)
	}

	s := &FileStore{dir: dir}
	contents, err := s.readFile()
	if err != nil {
		return nil, err
	}
	s.current = contents
	return s, nil
}

// Path returns the credentials file location.
func (s *FileStore) Path() string {
	return filepath.Join(s.dir, FileName)
}

// Dir returns the directory holding the credentials file.
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) GetAuth() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Token
}

// SetAuth stores token, or removes it when token is empty.
func (s *FileStore) SetAuth(token string) error {
	action := "token_stored"
	if token == "" {
		action = "token_cleared"
	}
	return s.update(action, func(c *fileContents) { c.Token = token })
}

func (s *FileStore) GetTeam() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.TeamID
}

// SetTeam stores the selected team, or clears it when teamID is empty.
func (s *FileStore) SetTeam(teamID string) error {
	return s.update("team_selected", func(c *fileContents) { c.TeamID = teamID })
}

// Reload re-reads the file and reports whether its contents differ from the
// values this store last wrote or read.
func (s *FileStore) Reload() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contents, err := s.readFile()
	if err != nil {
		return false, err
	}
	if contents == s.current {
		return false, nil
	}
	s.current = contents
	return true, nil
}

func (s *FileStore) update(action string, mutate func(*fileContents)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current
	mutate(&next)
	if err := s.writeFile(next); err != nil {
		logging.Audit(logging.AuditEvent{Action: action, Outcome: "failure", Target: s.Path(), Err: err})
		return fmt.Errorf("failed to persist credentials: %w", err)
	}
	s.current = next
	logging.Audit(logging.AuditEvent{Action: action, Outcome: "success", Target: s.Path()})
	return nil
}

func (s *FileStore) readFile() (fileContents, error) {
	// #nosec G304 -- path is built from the configured credentials directory
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileContents{}, nil
		}
		return fileContents{}, fmt.Errorf("failed to read credentials file: %w", err)
	}
	if len(data) == 0 {
		return fileContents{}, nil
	}

	var contents fileContents
	if err := json.Unmarshal(data, &contents); err != nil {
		return fileContents{}, fmt.Errorf("failed to unmarshal credentials file: %w", err)
	}
	return contents, nil
}

// writeFile replaces the file atomically so a concurrent reader never sees a
// partial document.
func (s *FileStore) writeFile(contents fileContents) error {
	if contents == (fileContents{}) {
		err := os.Remove(s.Path())
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	data, err := json.MarshalIndent(contents, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".credentials-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, s.Path())
}
