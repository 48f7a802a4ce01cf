package journal

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/voxlane/costguard/pkg/spend/window"
)

// Event is one charged operation.
type Event struct {
	// ID is a unique event identifier, assigned on append if empty.
	ID string

	// Service is the paid service that was charged.
	Service string

	// Amount is the realized cost in USD.
	Amount float64

	// DailyWindow is the calendar day the charge landed in.
	DailyWindow window.Window

	// MonthlyWindow is the calendar month the charge landed in.
	MonthlyWindow window.Window

	// RecordedAt is when the charge was recorded.
	RecordedAt time.Time
}

// Config contains configuration for a Journal.
type Config struct {
	// Path is the SQLite database file path. Required.
	Path string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration

	// Logger receives structured events. Defaults to slog.Default().
	Logger *slog.Logger
}

// Journal is an append-only store of cost events.
type Journal struct {
	db     *sql.DB
	logger *slog.Logger
	mu     sync.RWMutex

	appendStmt *sql.Stmt
	dayStmt    *sql.Stmt
	totalsStmt *sql.Stmt
}

// Open creates or opens a journal database at the configured path.
func Open(cfg Config) (*Journal, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("journal path cannot be empty")
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default().With("component", "spend.journal")
	}

	db, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	j := &Journal{db: db, logger: cfg.Logger}

	if err := j.initialize(cfg.BusyTimeout); err != nil {
		db.Close()
		return nil, err
	}
	if err := j.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}

	return j, nil
}

// initialize enables WAL mode, sets the busy timeout, and creates the
// schema.
func (j *Journal) initialize(busyTimeout time.Duration) error {
	if _, err := j.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return fmt.Errorf("failed to enable WAL: %w", err)
	}
	if _, err := j.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeout.Milliseconds())); err != nil {
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS cost_events (
		id TEXT PRIMARY KEY,
		service TEXT NOT NULL,
		amount REAL NOT NULL,
		daily_window TEXT NOT NULL,
		monthly_window TEXT NOT NULL,
		recorded_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_cost_events_daily ON cost_events(daily_window);
	CREATE INDEX IF NOT EXISTS idx_cost_events_recorded_at ON cost_events(recorded_at);
	`
	if _, err := j.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create journal schema: %w", err)
	}

	return nil
}

// prepareStatements prepares SQL statements for reuse.
func (j *Journal) prepareStatements() error {
	var err error

	j.appendStmt, err = j.db.Prepare(`
		INSERT INTO cost_events (id, service, amount, daily_window, monthly_window, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare append statement: %w", err)
	}

	j.dayStmt, err = j.db.Prepare(`
		SELECT id, service, amount, daily_window, monthly_window, recorded_at
		FROM cost_events
		WHERE daily_window = ?
		ORDER BY recorded_at ASC
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare day statement: %w", err)
	}

	j.totalsStmt, err = j.db.Prepare(`
		SELECT service, SUM(amount)
		FROM cost_events
		WHERE daily_window = ?
		GROUP BY service
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare totals statement: %w", err)
	}

	return nil
}

// Append records a charged operation. An empty ID gets a generated
// UUID. Events are immutable once appended.
func (j *Journal) Append(ctx context.Context, ev Event) error {
	if ev.Service == "" {
		return fmt.Errorf("event service cannot be empty")
	}
	if ev.Amount < 0 {
		return fmt.Errorf("event amount cannot be negative")
	}
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.RecordedAt.IsZero() {
		ev.RecordedAt = time.Now()
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	_, err := j.appendStmt.ExecContext(ctx,
		ev.ID,
		ev.Service,
		ev.Amount,
		ev.DailyWindow.String(),
		ev.MonthlyWindow.String(),
		ev.RecordedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to append cost event: %w", err)
	}

	return nil
}

// Day returns all events charged in the given daily window, oldest
// first.
func (j *Journal) Day(ctx context.Context, w window.Window) ([]Event, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	rows, err := j.dayStmt.QueryContext(ctx, w.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query day %q: %w", w, err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			ev         Event
			daily      string
			monthly    string
			recordedAt int64
		)
		if err := rows.Scan(&ev.ID, &ev.Service, &ev.Amount, &daily, &monthly, &recordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cost event: %w", err)
		}
		ev.DailyWindow = window.Window(daily)
		ev.MonthlyWindow = window.Window(monthly)
		ev.RecordedAt = time.Unix(recordedAt, 0).UTC()
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cost events: %w", err)
	}

	return events, nil
}

// ServiceTotals returns per-service cost sums for a daily window.
// These aggregates are for display; the ledger remains the source of
// truth for admission.
func (j *Journal) ServiceTotals(ctx context.Context, w window.Window) (map[string]float64, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	rows, err := j.totalsStmt.QueryContext(ctx, w.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query totals for %q: %w", w, err)
	}
	defer rows.Close()

	totals := make(map[string]float64)
	for rows.Next() {
		var (
			service string
			sum     float64
		)
		if err := rows.Scan(&service, &sum); err != nil {
			return nil, fmt.Errorf("failed to scan service total: %w", err)
		}
		totals[service] = sum
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate service totals: %w", err)
	}

	return totals, nil
}

// Close releases the prepared statements and the database.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.appendStmt != nil {
		j.appendStmt.Close()
	}
	if j.dayStmt != nil {
		j.dayStmt.Close()
	}
	if j.totalsStmt != nil {
		j.totalsStmt.Close()
	}

	return j.db.Close()
}
