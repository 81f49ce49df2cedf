package cart

import (
	"context"
	"sync"
)

// MemoryStorage garde les paniers en mémoire (développement et tests).
type MemoryStorage struct {
	mu    sync.RWMutex
	carts map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{carts: make(map[string][]byte)}
}

func (m *MemoryStorage) Load(_ context.Context, owner string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.carts[owner]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), raw...), nil
}

func (m *MemoryStorage) Save(_ context.Context, owner string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[owner] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryStorage) Delete(_ context.Context, owner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, owner)
	return nil
}
