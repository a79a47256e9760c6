package session

import (
	"context"
	"maps"
	"sync"
)

// Storage is a string key/value backend for session data.
type Storage interface {
	// Get reports ok=false when key is not stored.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// BatchStorage is implemented by backends that can store several keys at once.
// Either every pair is stored or none is.
type BatchStorage interface {
	Storage
	SetMany(ctx context.Context, values map[string]string) error
}

// NopStorage is used where no persistence is available. Reads report absent
// and writes are dropped.
type NopStorage struct{}

func (NopStorage) Get(context.Context, string) (string, bool, error) { return "", false, nil }
func (NopStorage) Set(context.Context, string, string) error         { return nil }
func (NopStorage) Delete(context.Context, string) error              { return nil }

// MemoryStorage keeps values for the lifetime of the process.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ BatchStorage = (*MemoryStorage)(nil)

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStorage) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStorage) SetMany(_ context.Context, values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	maps.Copy(m.values, values)
	return nil
}

func (m *MemoryStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
