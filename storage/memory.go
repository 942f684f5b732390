package storage

import (
	"context"
	"sync"
)

// MemoryStore garde les valeurs en mémoire (tests, STORAGE_DRIVER=memory)
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore crée un stockage mémoire vide
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get récupère une valeur
func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok, nil
}

// SetMany écrit plusieurs clés sous le même verrou
func (s *MemoryStore) SetMany(_ context.Context, values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range values {
		s.values[k] = v
	}
	return nil
}

// Remove supprime plusieurs clés sous le même verrou
func (s *MemoryStore) Remove(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.values, k)
	}
	return nil
}

// Len retourne le nombre de clés présentes
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
