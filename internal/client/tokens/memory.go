package tokens

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/jobtracker/internal/common"
)

// MemoryStore is an in-process Store for tests and throwaway sessions.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	v, ok := m.data[key]
	m.mu.RUnlock()
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	m.data[key] = value
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) SetPair(_ context.Context, p Pair) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[common.AccessTokenKey] = p.AccessToken
	if p.RefreshToken != "" {
		m.data[common.RefreshTokenKey] = p.RefreshToken
	}
	return nil
}

func (m *MemoryStore) ClearPair(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, common.AccessTokenKey)
	delete(m.data, common.RefreshTokenKey)
	return nil
}
