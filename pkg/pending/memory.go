package pending

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	reg       Registration
	expiresAt time.Time
}

// MemoryStore is the in-process implementation. Entries are lost on
// restart, which is acceptable for registrations awaiting verification.
// Expired entries are swept lazily on access; there is no background
// sweeper goroutine.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, tempID string, reg Registration, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[tempID] = memoryEntry{reg: reg, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, tempID string) (Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[tempID]
	if !ok {
		return Registration{}, ErrNotFound
	}
	if s.now().After(entry.expiresAt) {
		delete(s.entries, tempID)
		return Registration{}, ErrNotFound
	}
	return entry.reg, nil
}

func (s *MemoryStore) GetByToken(_ context.Context, token string) (string, Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for tempID, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, tempID)
			continue
		}
		if entry.reg.Token == token {
			return tempID, entry.reg, nil
		}
	}
	return "", Registration{}, ErrNotFound
}

func (s *MemoryStore) Delete(_ context.Context, tempID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, tempID)
	return nil
}
