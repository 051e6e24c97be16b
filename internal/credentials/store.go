package credentials

import "sync"

// Store persists an access token and a selected team identifier.
// An empty string means the value is unset.
type Store interface {
	GetAuth() string
	SetAuth(token string) error
	GetTeam() string
	SetTeam(teamID string) error
}

// MemoryStore is an in-process Store. It is safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
	team  string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) GetAuth() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemoryStore) SetAuth(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) GetTeam() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.team
}

func (s *MemoryStore) SetTeam(teamID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.team = teamID
	return nil
}
