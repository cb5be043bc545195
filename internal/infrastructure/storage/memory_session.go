package storage

import (
	"context"
	"sync"

	"github.com/yourusername/biosmaris-storefront/internal/domain/repository"
)

type memorySessionStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemorySessionStore keeps the session in process memory only. It is lost
// on restart.
func NewMemorySessionStore() repository.SessionStore {
	return &memorySessionStore{values: make(map[string]string)}
}

func (m *memorySessionStore) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	return value, ok, nil
}

func (m *memorySessionStore) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}

func (m *memorySessionStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}

func (m *memorySessionStore) Keys(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.values))
	for key := range m.values {
		keys = append(keys, key)
	}
	return keys, nil
}

func (m *memorySessionStore) Close() error {
	return nil
}
