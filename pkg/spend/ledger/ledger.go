package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/voxlane/costguard/pkg/spend/storage"
	"github.com/voxlane/costguard/pkg/spend/window"
)

// DefaultSnapshotKey is the storage key for the ledger snapshot.
const DefaultSnapshotKey = "ledger/snapshot"

// DefaultSaveTimeout bounds how long a mutation waits for durability.
const DefaultSaveTimeout = 3 * time.Second

// Ledger accumulates realized cost per service inside calendar windows.
//
// A Ledger is owned by a single process-wide cost-control context. It
// is not a package-level singleton: construct independent instances in
// tests with their own resolver and store.
type Ledger struct {
	resolver    window.Resolver
	store       storage.Store
	snapshotKey string
	saveTimeout time.Duration
	logger      *slog.Logger

	mu         sync.Mutex
	state      Snapshot
	dailyLimit float64
	dirty      bool
}

// Config contains configuration for a Ledger.
type Config struct {
	// Resolver maps timestamps to accounting windows. Required.
	Resolver window.Resolver

	// Store persists the ledger snapshot. Required.
	Store storage.Store

	// DailyLimit is the user-configured daily budget in USD.
	// Must be positive.
	DailyLimit float64

	// SnapshotKey is the storage key for the snapshot.
	// Default: DefaultSnapshotKey
	SnapshotKey string

	// SaveTimeout bounds how long a mutation waits for the store.
	// Default: DefaultSaveTimeout
	SaveTimeout time.Duration

	// Logger receives structured events. Defaults to slog.Default().
	Logger *slog.Logger
}

// New creates a Ledger, loading any prior snapshot from the store.
// An absent snapshot starts the ledger at zero in the current windows.
func New(ctx context.Context, cfg Config) (*Ledger, error) {
	if cfg.Resolver == nil {
		return nil, fmt.Errorf("resolver is required")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.DailyLimit <= 0 {
		return nil, fmt.Errorf("daily limit %.2f: %w", cfg.DailyLimit, ErrInvalidLimit)
	}
	if cfg.SnapshotKey == "" {
		cfg.SnapshotKey = DefaultSnapshotKey
	}
	if cfg.SaveTimeout <= 0 {
		cfg.SaveTimeout = DefaultSaveTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default().With("component", "spend.ledger")
	}

	l := &Ledger{
		resolver:    cfg.Resolver,
		store:       cfg.Store,
		snapshotKey: cfg.SnapshotKey,
		saveTimeout: cfg.SaveTimeout,
		logger:      cfg.Logger,
		dailyLimit:  cfg.DailyLimit,
		state: Snapshot{
			DailyByService:   make(map[string]float64),
			MonthlyByService: make(map[string]float64),
		},
	}

	data, ok, err := cfg.Store.Load(ctx, cfg.SnapshotKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger snapshot: %w", err)
	}
	if ok {
		snap, err := decodeSnapshot(data)
		if err != nil {
			// A corrupt snapshot must not brick the ledger. Start
			// from zero and overwrite on the next mutation.
			l.logger.Warn("discarding corrupt ledger snapshot", "error", err)
		} else {
			l.state = snap
		}
	}

	return l, nil
}

// RecordCost applies a realized cost to both accounting windows and
// persists the new state. This is the only mutating operation besides
// ResetAll and must never be called speculatively: callers report cost
// only after the paid operation actually executed.
//
// A negative amount is rejected with ErrInvalidAmount without mutating
// state. A zero amount is a legal no-op that still performs rollover
// bookkeeping. If the snapshot cannot be saved before the timeout, the
// in-memory charge is kept, the snapshot is marked dirty, and the call
// returns an error wrapping ErrPersistence; the charge itself has
// still been applied.
func (l *Ledger) RecordCost(ctx context.Context, service string, amount float64, now time.Time) error {
	if amount < 0 {
		return fmt.Errorf("service %q amount %.4f: %w", service, amount, ErrInvalidAmount)
	}
	if service == "" {
		return fmt.Errorf("service name cannot be empty")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.rolloverLocked(now)

	l.state.DailyTotal += amount
	l.state.DailyByService[service] += amount
	l.state.MonthlyTotal += amount
	l.state.MonthlyByService[service] += amount

	return l.persistLocked(ctx)
}

// Usage returns a read snapshot for both windows.
//
// Usage performs the same rollover check as RecordCost so a read after
// a window boundary reports zero rather than stale totals, but it does
// not persist a rollover-only change; the next mutation does.
func (l *Ledger) Usage(now time.Time) Usage {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.rolloverLocked(now)

	remaining := l.dailyLimit - l.state.DailyTotal
	if remaining < 0 {
		remaining = 0
	}

	return Usage{
		Daily: DailyUsage{
			Total:      l.state.DailyTotal,
			ByService:  copyServiceMap(l.state.DailyByService),
			Window:     l.state.DailyWindow,
			Limit:      l.dailyLimit,
			Remaining:  remaining,
			Percentage: l.state.DailyTotal / l.dailyLimit,
		},
		Monthly: MonthlyUsage{
			Total:     l.state.MonthlyTotal,
			ByService: copyServiceMap(l.state.MonthlyByService),
			Window:    l.state.MonthlyWindow,
		},
	}
}

// ResetAll zeroes both windows immediately and persists. This backs an
// explicit "reset my quota" user action and is never called
// automatically.
func (l *Ledger) ResetAll(ctx context.Context, now time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.state = Snapshot{
		DailyByService:   make(map[string]float64),
		MonthlyByService: make(map[string]float64),
		DailyWindow:      l.resolver.Daily(now),
		MonthlyWindow:    l.resolver.Monthly(now),
	}

	return l.persistLocked(ctx)
}

// SetDailyLimit replaces the configured daily budget. Changing the
// limit does not rewrite history; it affects only future admission
// decisions and status reads.
func (l *Ledger) SetDailyLimit(limit float64) error {
	if limit <= 0 {
		return fmt.Errorf("daily limit %.2f: %w", limit, ErrInvalidLimit)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.dailyLimit = limit
	return nil
}

// DailyLimit returns the configured daily budget in USD.
func (l *Ledger) DailyLimit() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dailyLimit
}

// Dirty reports whether the in-memory state has mutations that are not
// yet durably saved.
func (l *Ledger) Dirty() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dirty
}

// Flush persists the snapshot if it is dirty. Maintenance jobs call
// this so a session with a failed save does not stay undurable until
// the next user action.
func (l *Ledger) Flush(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.dirty {
		return nil
	}
	return l.persistLocked(ctx)
}

// rolloverLocked resets any window whose stored identifier no longer
// matches the resolver's output for now. Daily and monthly windows are
// independent: a monthly rollover never resets daily state and vice
// versa. Caller must hold l.mu.
func (l *Ledger) rolloverLocked(now time.Time) {
	daily := l.resolver.Daily(now)
	if l.state.DailyWindow != daily {
		l.state.DailyTotal = 0
		l.state.DailyByService = make(map[string]float64)
		l.state.DailyWindow = daily
	}

	monthly := l.resolver.Monthly(now)
	if l.state.MonthlyWindow != monthly {
		l.state.MonthlyTotal = 0
		l.state.MonthlyByService = make(map[string]float64)
		l.state.MonthlyWindow = monthly
	}
}

// persistLocked saves the current snapshot with a bounded timeout.
// On failure the snapshot is marked dirty and the error wraps
// ErrPersistence; the in-memory state is never rolled back.
// Caller must hold l.mu.
func (l *Ledger) persistLocked(ctx context.Context) error {
	data, err := encodeSnapshot(l.state)
	if err != nil {
		l.dirty = true
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	saveCtx, cancel := context.WithTimeout(ctx, l.saveTimeout)
	defer cancel()

	if err := l.store.Save(saveCtx, l.snapshotKey, data); err != nil {
		l.dirty = true
		l.logger.Warn("ledger snapshot save failed, keeping in-memory state",
			"error", err,
			"daily_window", l.state.DailyWindow,
			"daily_total", l.state.DailyTotal,
		)
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	l.dirty = false
	return nil
}

// copyServiceMap returns a defensive copy for read snapshots.
func copyServiceMap(src map[string]float64) map[string]float64 {
	dst := make(map[string]float64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
