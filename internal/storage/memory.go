package storage

import (
	"context"
	"sync"
)

type memoryStore struct {
	values map[string]float32
	mu     sync.RWMutex
}

func NewMemory() Store {
	return &memoryStore{values: make(map[string]float32)}
}

func (m *memoryStore) Save(_ context.Context, id string, value float32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[id] = value
	return nil
}

func (m *memoryStore) Load(_ context.Context, id string) (float32, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[id]
	if !ok {
		return 0, ErrNotFound
	}
	return v, nil
}

func (m *memoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, id)
	return nil
}

func (m *memoryStore) Close() error { return nil }
