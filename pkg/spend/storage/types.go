package storage

import "context"

// Store is the persistence contract for cost-control state.
// Implementations must be thread-safe and support concurrent access.
type Store interface {
	// Load retrieves the value for a key. The second return value
	// reports whether the key was present; an absent key is not an
	// error.
	Load(ctx context.Context, key string) ([]byte, bool, error)

	// Save durably persists a value under a key, replacing any prior
	// value. Returns an error if the value could not be made durable
	// before the context deadline.
	Save(ctx context.Context, key string, value []byte) error

	// Delete removes the value for a key. No-op if the key is absent.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	// The store must not be used after Close.
	Close() error
}
