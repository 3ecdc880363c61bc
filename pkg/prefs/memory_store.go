package prefs

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store implementation.
// Suitable for development and testing.
type MemoryStore struct {
	records map[string]UserPreference
	mu      sync.RWMutex
}

// NewMemoryStore creates an empty in-memory preference store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]UserPreference)}
}

func (s *MemoryStore) Get(ctx context.Context, userID string) (UserPreference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pref, ok := s.records[userID]
	if !ok {
		return UserPreference{}, ErrNotFound
	}
	return pref, nil
}

func (s *MemoryStore) Set(ctx context.Context, pref UserPreference) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[pref.UserID] = pref
	return nil
}
