package store

import (
	"context"
	"sync"

	"github.com/frontside/embersite/kernel/model"
)

// MemoryStore keeps published resources in memory, in publish order.
type MemoryStore struct {
	mu        sync.RWMutex
	resources []model.Resource
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Publish(_ context.Context, resources []model.Resource) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resources = append(s.resources, resources...)
	return nil
}

func (s *MemoryStore) List() ([]model.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Return a copy to prevent concurrent modification
	result := make([]model.Resource, len(s.resources))
	copy(result, s.resources)
	return result, nil
}
