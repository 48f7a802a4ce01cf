package storage

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore implements Store using an in-memory map.
// All data is lost when the process exits.
//
// MemoryStore is thread-safe using sync.RWMutex. Values are copied on
// both Save and Load so callers can never mutate stored state through
// a retained slice.
type MemoryStore struct {
	values map[string][]byte
	mu     sync.RWMutex
	closed bool
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string][]byte),
	}
}

// Load retrieves the value for a key.
func (m *MemoryStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, fmt.Errorf("key cannot be empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, false, fmt.Errorf("store is closed")
	}

	value, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}

	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

// Save stores a value under a key, replacing any prior value.
func (m *MemoryStore) Save(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return fmt.Errorf("store is closed")
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	m.values[key] = stored

	return nil
}

// Delete removes the value for a key.
func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return fmt.Errorf("store is closed")
	}

	delete(m.values, key)
	return nil
}

// Close marks the store as closed. Subsequent operations fail.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Size returns the current number of stored keys.
// This is useful for monitoring and testing.
func (m *MemoryStore) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}
