package quota

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store for tests and single-node development.
type MemoryStore struct {
	mu     sync.Mutex
	counts map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{counts: make(map[string]int)}
}

func (s *MemoryStore) Get(ctx context.Context, day string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[day], nil
}

func (s *MemoryStore) Increment(ctx context.Context, day string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[day]++
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context, day string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.counts, day)
	return nil
}
