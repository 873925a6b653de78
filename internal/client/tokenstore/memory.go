package tokenstore

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/practicum/internal/common"
)

// MemoryStore keeps credentials for the lifetime of the process only.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string]string)}
}

func (m *MemoryStore) get(key string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.slots[key]
}

func (m *MemoryStore) AccessToken(context.Context) (string, error) {
	return m.get(common.AccessTokenKey), nil
}

func (m *MemoryStore) RefreshToken(context.Context) (string, error) {
	return m.get(common.RefreshTokenKey), nil
}

func (m *MemoryStore) SetTokens(_ context.Context, access, refresh string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[common.AccessTokenKey] = access
	if refresh != "" {
		m.slots[common.RefreshTokenKey] = refresh
	}
	return nil
}

func (m *MemoryStore) User(context.Context) ([]byte, error) {
	u := m.get(common.UserKey)
	if u == "" {
		return nil, nil
	}
	return []byte(u), nil
}

func (m *MemoryStore) SetUser(_ context.Context, user []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[common.UserKey] = string(user)
	return nil
}

func (m *MemoryStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, common.AccessTokenKey)
	delete(m.slots, common.RefreshTokenKey)
	delete(m.slots, common.UserKey)
	return nil
}
