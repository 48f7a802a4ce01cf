package spend

import (
	"errors"
	"fmt"

	"github.com/voxlane/costguard/pkg/spend/ledger"
)

// Default service names for the paid operations the client runs.
// Callers may record any service name; these are the two the
// application ships with.
const (
	ServiceSpeechSynthesis = "speech-synthesis"
	ServiceTextGeneration  = "text-generation"
)

// Error types surfaced by the Manager. The ledger sentinels are
// re-exported so callers only import this package.
var (
	// ErrInvalidAmount is returned when a negative cost is recorded.
	ErrInvalidAmount = ledger.ErrInvalidAmount

	// ErrInvalidLimit is returned when a non-positive daily limit is set.
	ErrInvalidLimit = ledger.ErrInvalidLimit

	// ErrPersistence indicates a durable save did not complete; the
	// in-memory state was still updated.
	ErrPersistence = ledger.ErrPersistence

	// ErrClosed is returned by operations on a closed Manager.
	ErrClosed = errors.New("cost-control manager is closed")
)

// CostError provides detailed context about a rejected cost operation.
type CostError struct {
	// Op is the operation that failed ("record", "reset", "limit").
	Op string

	// Service is the paid service involved, if any.
	Service string

	// Amount is the cost amount involved (USD).
	Amount float64

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *CostError) Error() string {
	if e.Service != "" {
		return fmt.Sprintf("%s failed for service %s (%.4f USD): %v", e.Op, e.Service, e.Amount, e.Err)
	}
	return fmt.Sprintf("%s failed (%.4f USD): %v", e.Op, e.Amount, e.Err)
}

// Unwrap returns the underlying error for error wrapping.
func (e *CostError) Unwrap() error {
	return e.Err
}
