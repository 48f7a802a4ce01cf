package spend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/voxlane/costguard/pkg/spend/admission"
	"github.com/voxlane/costguard/pkg/spend/cache"
	"github.com/voxlane/costguard/pkg/spend/journal"
	"github.com/voxlane/costguard/pkg/spend/ledger"
	"github.com/voxlane/costguard/pkg/spend/storage"
	"github.com/voxlane/costguard/pkg/spend/tier"
	"github.com/voxlane/costguard/pkg/spend/window"
)

// DefaultMaintenanceSchedule is how often maintenance runs: flushing
// dirty snapshots, refreshing budget gauges, pruning stale cache
// entries.
const DefaultMaintenanceSchedule = "@every 1m"

// DefaultCacheRetention is how long unused cached artifacts are kept
// before maintenance prunes them.
const DefaultCacheRetention = 7 * 24 * time.Hour

// Manager is the process-wide cost-control context.
//
// Create one Manager at application start and close it at exit. UI
// layers hold no authoritative copies of its state, only transient
// read snapshots from Usage and Status. The Manager is explicitly
// constructed rather than a package-level singleton so tests build
// independent instances.
type Manager struct {
	ledger    *ledger.Ledger
	admission *admission.Controller
	cache     *cache.Cache
	journal   *journal.Journal
	store     storage.Store
	metrics   *Metrics
	resolver  window.Resolver
	logger    *slog.Logger

	cron           *cron.Cron
	schedule       string
	cacheRetention time.Duration

	mu     sync.Mutex
	closed bool
}

// Config contains configuration for a Manager.
type Config struct {
	// Store persists the ledger snapshot and cached artifacts. Required.
	// The Manager owns the store and closes it on Close.
	Store storage.Store

	// DailyLimit is the user-configured daily budget in USD. Required.
	DailyLimit float64

	// Resolver maps timestamps to accounting windows.
	// Default: window.NewSystemResolver(time.Local)
	Resolver window.Resolver

	// Journal records charged operations for history display. Optional;
	// when nil, history queries return nothing. The Manager owns the
	// journal and closes it on Close.
	Journal *journal.Journal

	// Metrics receives subsystem metrics. Optional.
	Metrics *Metrics

	// SaveTimeout bounds snapshot persistence. Default: ledger.DefaultSaveTimeout
	SaveTimeout time.Duration

	// CacheRetention is how long unused cached artifacts survive
	// maintenance pruning. Default: DefaultCacheRetention
	CacheRetention time.Duration

	// MaintenanceSchedule is a cron expression for maintenance runs.
	// Default: DefaultMaintenanceSchedule
	MaintenanceSchedule string

	// Logger receives structured events. Defaults to slog.Default().
	Logger *slog.Logger
}

// NewManager creates the cost-control context, loading persisted state
// from the store.
func NewManager(ctx context.Context, cfg Config) (*Manager, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.Resolver == nil {
		cfg.Resolver = window.NewSystemResolver(time.Local)
	}
	if cfg.CacheRetention <= 0 {
		cfg.CacheRetention = DefaultCacheRetention
	}
	if cfg.MaintenanceSchedule == "" {
		cfg.MaintenanceSchedule = DefaultMaintenanceSchedule
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default().With("component", "spend")
	}

	led, err := ledger.New(ctx, ledger.Config{
		Resolver:    cfg.Resolver,
		Store:       cfg.Store,
		DailyLimit:  cfg.DailyLimit,
		SaveTimeout: cfg.SaveTimeout,
		Logger:      cfg.Logger.With("component", "spend.ledger"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ledger: %w", err)
	}

	artifactCache, err := cache.New(cache.Config{
		Store:       cfg.Store,
		SaveTimeout: cfg.SaveTimeout,
		Logger:      cfg.Logger.With("component", "spend.cache"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	return &Manager{
		ledger:         led,
		admission:      admission.New(admission.Config{Budget: led}),
		cache:          artifactCache,
		journal:        cfg.Journal,
		store:          cfg.Store,
		metrics:        cfg.Metrics,
		resolver:       cfg.Resolver,
		logger:         cfg.Logger,
		cron:           cron.New(),
		schedule:       cfg.MaintenanceSchedule,
		cacheRetention: cfg.CacheRetention,
	}, nil
}

// CanAfford reports whether an operation with the given estimated cost
// fits in the remaining daily budget. The check is advisory and never
// mutates the ledger; a denial is a normal outcome the caller must
// surface to the user ("daily budget reached"), never a silent drop.
func (m *Manager) CanAfford(estimatedCost float64, now time.Time) admission.Decision {
	decision := m.admission.CanAfford(estimatedCost, now)

	if m.metrics != nil {
		m.metrics.RecordAdmission(decision.Allowed)
	}
	if !decision.Allowed {
		m.logger.Info("operation denied by admission control",
			"estimated_cost", estimatedCost,
			"remaining", decision.Remaining,
			"reason", decision.Reason,
		)
	}

	return decision
}

// Reserve is CanAfford with a short-lived hold on the estimated
// amount. Pass the reservation ID to CommitReservation after recording
// the realized cost, or ReleaseReservation if the operation never ran.
func (m *Manager) Reserve(estimatedCost float64, now time.Time) (admission.Reservation, admission.Decision) {
	res, decision := m.admission.Reserve(estimatedCost, now)
	if m.metrics != nil {
		m.metrics.RecordAdmission(decision.Allowed)
	}
	return res, decision
}

// CommitReservation consumes a reservation after its operation's cost
// was recorded.
func (m *Manager) CommitReservation(id string) {
	m.admission.Commit(id)
}

// ReleaseReservation drops a reservation whose operation was not
// performed.
func (m *Manager) ReleaseReservation(id string) {
	m.admission.Release(id)
}

// RecordUsage reports the realized cost of a completed paid operation.
//
// Call this only after the operation actually executed; admission
// checks never charge. A negative amount returns ErrInvalidAmount
// without mutating state. A persistence failure is not surfaced as an
// error: the in-memory charge succeeded, the operation the user asked
// for completed, and durability catches up on the next mutation or
// maintenance flush.
func (m *Manager) RecordUsage(ctx context.Context, service string, amount float64, now time.Time) error {
	if m.isClosed() {
		return ErrClosed
	}

	start := time.Now()
	err := m.ledger.RecordCost(ctx, service, amount, now)
	switch {
	case err == nil:
	case errors.Is(err, ErrPersistence):
		// Charge applied; only durability lagged.
		if m.metrics != nil {
			m.metrics.RecordPersistenceFailure()
		}
	default:
		return &CostError{Op: "record", Service: service, Amount: amount, Err: err}
	}

	if m.journal != nil {
		ev := journal.Event{
			Service:       service,
			Amount:        amount,
			DailyWindow:   m.resolver.Daily(now),
			MonthlyWindow: m.resolver.Monthly(now),
			RecordedAt:    now,
		}
		if jerr := m.journal.Append(ctx, ev); jerr != nil {
			// History degrades; accounting is unaffected.
			m.logger.Warn("failed to append journal event", "service", service, "error", jerr)
		}
	}

	if m.metrics != nil {
		m.metrics.RecordCost(service, amount)
		m.metrics.ObserveRecordDuration(time.Since(start).Seconds())
		m.refreshGauges(now)
	}

	m.logger.Debug("recorded cost",
		"service", service,
		"amount", amount,
		"daily_window", m.resolver.Daily(now),
	)

	return nil
}

// Usage returns a read snapshot of both accounting windows.
func (m *Manager) Usage(now time.Time) ledger.Usage {
	return m.ledger.Usage(now)
}

// Status classifies current daily consumption for alerting. The tier
// is recomputed on every call, never cached.
func (m *Manager) Status(now time.Time) tier.Tier {
	usage := m.ledger.Usage(now)
	return tier.Classify(usage.Daily.Total, usage.Daily.Limit)
}

// SetDailyLimit replaces the configured daily budget. History is not
// rewritten; only future admission decisions change.
func (m *Manager) SetDailyLimit(limit float64) error {
	if m.isClosed() {
		return ErrClosed
	}
	if err := m.ledger.SetDailyLimit(limit); err != nil {
		return &CostError{Op: "limit", Amount: limit, Err: err}
	}
	m.logger.Info("daily limit updated", "limit", limit)
	return nil
}

// DailyLimit returns the configured daily budget in USD.
func (m *Manager) DailyLimit() float64 {
	return m.ledger.DailyLimit()
}

// ResetAll zeroes both accounting windows. This backs an explicit
// user action only.
func (m *Manager) ResetAll(ctx context.Context, now time.Time) error {
	if m.isClosed() {
		return ErrClosed
	}
	if err := m.ledger.ResetAll(ctx, now); err != nil {
		if errors.Is(err, ErrPersistence) {
			if m.metrics != nil {
				m.metrics.RecordPersistenceFailure()
			}
			return nil
		}
		return &CostError{Op: "reset", Err: err}
	}
	if m.metrics != nil {
		m.refreshGauges(now)
	}
	m.logger.Info("usage reset by user")
	return nil
}

// CachedArtifact reports whether a cached artifact is usable against
// the current inputs. A hit avoids a paid regeneration entirely.
func (m *Manager) CachedArtifact(key, currentFingerprint string, maxAge time.Duration, now time.Time) (cache.Entry, cache.Result) {
	entry, result := m.cache.Get(key, currentFingerprint, maxAge, now)
	if m.metrics != nil {
		m.metrics.RecordCacheLookup(result)
	}
	return entry, result
}

// StoreArtifact caches a freshly generated artifact. A write-through
// failure is logged but not surfaced: the artifact is already paid for
// and stays usable in memory.
func (m *Manager) StoreArtifact(ctx context.Context, key string, artifact []byte, fingerprint string, now time.Time) error {
	if m.isClosed() {
		return ErrClosed
	}
	if err := m.cache.Put(ctx, key, artifact, fingerprint, now); err != nil {
		if m.metrics != nil {
			m.metrics.RecordPersistenceFailure()
		}
		m.logger.Warn("failed to persist cached artifact", "key", key, "error", err)
	}
	return nil
}

// LastArtifact returns the most recent artifact for key regardless of
// freshness, for callers falling back after a failed regeneration.
func (m *Manager) LastArtifact(key string) (cache.Entry, bool) {
	return m.cache.Last(key)
}

// History returns the journal events charged in the given daily
// window. Without a configured journal it returns nothing.
func (m *Manager) History(ctx context.Context, day window.Window) ([]journal.Event, error) {
	if m.journal == nil {
		return nil, nil
	}
	return m.journal.Day(ctx, day)
}

// Journal exposes the underlying journal for richer history queries.
// May be nil.
func (m *Manager) Journal() *journal.Journal {
	return m.journal
}

// StartMaintenance begins the periodic maintenance schedule: flushing
// dirty ledger snapshots, refreshing budget gauges, and pruning stale
// cache entries.
func (m *Manager) StartMaintenance() error {
	_, err := m.cron.AddFunc(m.schedule, m.runMaintenance)
	if err != nil {
		return fmt.Errorf("invalid maintenance schedule %q: %w", m.schedule, err)
	}
	m.cron.Start()
	m.logger.Info("maintenance started", "schedule", m.schedule)
	return nil
}

// runMaintenance executes one maintenance cycle.
func (m *Manager) runMaintenance() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()

	if err := m.ledger.Flush(ctx); err != nil {
		if m.metrics != nil {
			m.metrics.RecordPersistenceFailure()
		}
		m.logger.Warn("maintenance flush failed", "error", err)
	}

	if pruned := m.cache.Prune(ctx, m.cacheRetention, now); pruned > 0 {
		m.logger.Debug("pruned stale cache entries", "count", pruned)
	}

	if m.metrics != nil {
		m.refreshGauges(now)
	}
}

// Close stops maintenance, flushes pending state, and releases the
// store and journal.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	m.cron.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := m.ledger.Flush(ctx); err != nil {
		m.logger.Warn("final flush failed", "error", err)
	}

	var firstErr error
	if m.journal != nil {
		if err := m.journal.Close(); err != nil {
			firstErr = err
		}
	}
	if err := m.store.Close(); err != nil && firstErr == nil {
		firstErr = err
	}

	return firstErr
}

// refreshGauges updates budget gauges from a fresh usage snapshot.
func (m *Manager) refreshGauges(now time.Time) {
	usage := m.ledger.Usage(now)
	m.metrics.SetBudgetPosition(
		usage.Daily.Total,
		usage.Monthly.Total,
		usage.Daily.Remaining,
		tier.Classify(usage.Daily.Total, usage.Daily.Limit),
	)
}

// isClosed reports whether Close has been called.
func (m *Manager) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
