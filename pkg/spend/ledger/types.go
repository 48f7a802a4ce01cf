package ledger

import (
	"errors"

	"github.com/voxlane/costguard/pkg/spend/window"
)

// Error types for ledger operations.
var (
	// ErrInvalidAmount is returned when a negative cost is recorded.
	// The ledger state is not mutated.
	ErrInvalidAmount = errors.New("cost amount must be non-negative")

	// ErrInvalidLimit is returned when a non-positive daily limit is set.
	ErrInvalidLimit = errors.New("daily limit must be positive")

	// ErrPersistence is returned when a durable save did not complete.
	// The in-memory mutation has still been applied and will be
	// persisted on the next mutating call.
	ErrPersistence = errors.New("failed to persist ledger snapshot")
)

// Usage is a read snapshot of the ledger for both windows.
type Usage struct {
	// Daily is the current calendar-day usage.
	Daily DailyUsage

	// Monthly is the current calendar-month usage.
	Monthly MonthlyUsage
}

// DailyUsage describes consumption within the current daily window,
// including its position relative to the configured limit.
type DailyUsage struct {
	// Total is the aggregate cost recorded in the window (USD).
	Total float64

	// ByService maps service names to their recorded cost (USD).
	ByService map[string]float64

	// Window is the calendar day the totals cover.
	Window window.Window

	// Limit is the configured daily budget (USD).
	Limit float64

	// Remaining is max(0, Limit-Total) (USD).
	Remaining float64

	// Percentage is the fraction of the limit consumed (0.0-1.0+).
	Percentage float64
}

// MonthlyUsage describes consumption within the current monthly window.
// Monthly usage carries no limit; it exists for display and history.
type MonthlyUsage struct {
	// Total is the aggregate cost recorded in the window (USD).
	Total float64

	// ByService maps service names to their recorded cost (USD).
	ByService map[string]float64

	// Window is the calendar month the totals cover.
	Window window.Window
}
