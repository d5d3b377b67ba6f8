package gate

import (
	"context"
	"sync"
)

// SessionStore persists the single per-session fact the gate needs to
// survive a page reload: whether the mandatory inquiry was submitted.
// The pending action slot is deliberately not persisted.
type SessionStore interface {
	IsSubmitted(ctx context.Context, sessionID string) (bool, error)
	MarkSubmitted(ctx context.Context, sessionID string) error
}

// MemoryStore is the in-process store used in tests and single-node
// deployments.
type MemoryStore struct {
	mu        sync.RWMutex
	submitted map[string]bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{submitted: make(map[string]bool)}
}

func (s *MemoryStore) IsSubmitted(ctx context.Context, sessionID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.submitted[sessionID], nil
}

func (s *MemoryStore) MarkSubmitted(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitted[sessionID] = true
	return nil
}
