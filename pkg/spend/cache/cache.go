package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/voxlane/costguard/pkg/spend/storage"
)

// Result describes the outcome of a cache lookup. The miss variants
// are normal control-flow signals, not errors: each names the reason
// regeneration is required.
type Result string

const (
	// ResultHit means the cached artifact is usable as-is.
	ResultHit Result = "hit"

	// ResultMissNotFound means no entry exists for the key.
	ResultMissNotFound Result = "miss_not_found"

	// ResultMissExpired means the entry is older than the max age.
	ResultMissExpired Result = "miss_expired"

	// ResultMissFingerprintChanged means the inputs that produced the
	// entry have changed.
	ResultMissFingerprintChanged Result = "miss_fingerprint_changed"
)

// IsHit reports whether the lookup may serve the cached artifact.
func (r Result) IsHit() bool {
	return r == ResultHit
}

// Entry is one cached artifact with its freshness metadata.
// Entries are immutable once stored; Put replaces them wholesale.
type Entry struct {
	// Artifact is the cached AI-generated payload.
	Artifact []byte `json:"artifact"`

	// Fingerprint summarizes the inputs that produced the artifact.
	Fingerprint string `json:"fingerprint"`

	// CreatedAt is when the artifact was generated.
	CreatedAt time.Time `json:"created_at"`
}

// storageKeyPrefix namespaces cache entries inside the shared store.
const storageKeyPrefix = "cache/"

// DefaultSaveTimeout bounds write-through and hydration store calls.
const DefaultSaveTimeout = 3 * time.Second

// Cache stores the most recent artifact per key.
//
// The in-memory map is the fast path; every Put writes through to the
// store and misses hydrate lazily from it, so entries survive process
// restarts without an upfront scan.
type Cache struct {
	store       storage.Store
	saveTimeout time.Duration
	logger      *slog.Logger

	mu      sync.Mutex
	entries map[string]Entry
	// hydrated records keys already looked up in the store so absent
	// keys do not hit the store on every Get.
	hydrated map[string]bool
}

// Config contains configuration for a Cache.
type Config struct {
	// Store persists entries across restarts. Required.
	Store storage.Store

	// SaveTimeout bounds store calls. Default: DefaultSaveTimeout
	SaveTimeout time.Duration

	// Logger receives structured events. Defaults to slog.Default().
	Logger *slog.Logger
}

// New creates a Cache backed by the given store.
func New(cfg Config) (*Cache, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.SaveTimeout <= 0 {
		cfg.SaveTimeout = DefaultSaveTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default().With("component", "spend.cache")
	}

	return &Cache{
		store:       cfg.Store,
		saveTimeout: cfg.SaveTimeout,
		logger:      cfg.Logger,
		entries:     make(map[string]Entry),
		hydrated:    make(map[string]bool),
	}, nil
}

// Get reports whether the entry for key is usable against the current
// fingerprint and max age. On a hit the returned entry carries the
// artifact; on a miss the Result names the reason regeneration is
// required and the entry is the zero value.
func (c *Cache) Get(key, currentFingerprint string, maxAge time.Duration, now time.Time) (Entry, Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.lookupLocked(key)
	if !ok {
		return Entry{}, ResultMissNotFound
	}
	if now.Sub(entry.CreatedAt) > maxAge {
		return Entry{}, ResultMissExpired
	}
	if entry.Fingerprint != currentFingerprint {
		return Entry{}, ResultMissFingerprintChanged
	}

	return entry, ResultHit
}

// Put atomically replaces the entry for key and writes it through to
// the store. A write-through failure keeps the in-memory entry (the
// artifact was already paid for) and returns the error for the caller
// to log.
func (c *Cache) Put(ctx context.Context, key string, artifact []byte, fingerprint string, now time.Time) error {
	if key == "" {
		return fmt.Errorf("cache key cannot be empty")
	}

	entry := Entry{
		Artifact:    artifact,
		Fingerprint: fingerprint,
		CreatedAt:   now,
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry
	c.hydrated[key] = true

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry %q: %w", key, err)
	}

	saveCtx, cancel := context.WithTimeout(ctx, c.saveTimeout)
	defer cancel()

	if err := c.store.Save(saveCtx, storageKeyPrefix+key, data); err != nil {
		return fmt.Errorf("failed to persist cache entry %q: %w", key, err)
	}

	return nil
}

// Last returns the most recent entry for key regardless of freshness.
// Callers use this to keep serving the previous artifact when a
// regeneration attempt after a miss fails.
func (c *Cache) Last(key string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lookupLocked(key)
}

// Delete removes the entry for key from memory and the store.
func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	c.hydrated[key] = true

	delCtx, cancel := context.WithTimeout(ctx, c.saveTimeout)
	defer cancel()

	if err := c.store.Delete(delCtx, storageKeyPrefix+key); err != nil {
		return fmt.Errorf("failed to delete cache entry %q: %w", key, err)
	}
	return nil
}

// Prune removes in-memory and persisted entries older than retention.
// Maintenance jobs run this; it returns the number of entries removed.
func (c *Cache) Prune(ctx context.Context, retention time.Duration, now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	pruned := 0
	for key, entry := range c.entries {
		if now.Sub(entry.CreatedAt) <= retention {
			continue
		}
		delete(c.entries, key)

		delCtx, cancel := context.WithTimeout(ctx, c.saveTimeout)
		if err := c.store.Delete(delCtx, storageKeyPrefix+key); err != nil {
			c.logger.Warn("failed to prune cache entry", "key", key, "error", err)
		}
		cancel()
		pruned++
	}

	return pruned
}

// lookupLocked returns the entry for key, hydrating from the store on
// first access. Caller must hold c.mu.
func (c *Cache) lookupLocked(key string) (Entry, bool) {
	if entry, ok := c.entries[key]; ok {
		return entry, true
	}
	if c.hydrated[key] {
		return Entry{}, false
	}
	c.hydrated[key] = true

	loadCtx, cancel := context.WithTimeout(context.Background(), c.saveTimeout)
	defer cancel()

	data, ok, err := c.store.Load(loadCtx, storageKeyPrefix+key)
	if err != nil {
		c.logger.Warn("failed to hydrate cache entry", "key", key, "error", err)
		return Entry{}, false
	}
	if !ok {
		return Entry{}, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		c.logger.Warn("discarding corrupt cache entry", "key", key, "error", err)
		return Entry{}, false
	}

	c.entries[key] = entry
	return entry, true
}
