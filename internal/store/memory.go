package store

import (
	"context"
	"sync"
)

// MemoryKV is an in-memory KV backend for local runs and tests.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryKV creates an empty in-memory KV backend.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

// Get implements the KV interface.
func (m *MemoryKV) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.data[key]
	if !ok {
		return nil, nil
	}

	// copy so that callers can not mutate the stored value
	cp := make([]byte, len(value))
	copy(cp, value)
	return cp, nil
}

// Put implements the KV interface.
func (m *MemoryKV) Put(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make([]byte, len(value))
	copy(cp, value)
	m.data[key] = cp
	return nil
}

// Close implements the KV interface.
func (m *MemoryKV) Close() error {
	return nil
}
