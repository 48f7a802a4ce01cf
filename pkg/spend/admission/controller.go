package admission

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/voxlane/costguard/pkg/spend/ledger"
)

// Reason explains why an operation was denied.
type Reason string

const (
	// ReasonBudgetExceeded means the estimated cost does not fit in
	// the remaining daily budget. The user-facing message for this is
	// "daily budget reached"; it must never be a silent drop.
	ReasonBudgetExceeded Reason = "budget_exceeded"

	// ReasonInvalidEstimate means the estimated cost was negative.
	ReasonInvalidEstimate Reason = "invalid_estimate"
)

// Decision is the outcome of an admission check. It never mutates the
// ledger: a denial is a normal return value the caller branches on,
// not an error.
type Decision struct {
	// Allowed indicates whether the operation may proceed.
	Allowed bool

	// Remaining is the daily budget left after active reservations (USD).
	Remaining float64

	// Reason explains a denial. Empty when Allowed.
	Reason Reason
}

// Reservation is a short-lived hold on budget returned by Reserve.
// Its amount counts against Remaining for later checks until it is
// committed, released, or expires.
type Reservation struct {
	// ID identifies the reservation for Commit and Release.
	ID string

	// Amount is the held estimated cost (USD).
	Amount float64

	// ExpiresAt is when the hold lapses if unused.
	ExpiresAt time.Time
}

// DefaultReservationTTL is how long an uncommitted reservation holds
// budget. Long enough for a speech-synthesis or text-generation call,
// short enough that an abandoned caller does not pin budget all day.
const DefaultReservationTTL = 2 * time.Minute

// BudgetReader is the slice of the ledger the controller needs.
type BudgetReader interface {
	Usage(now time.Time) ledger.Usage
}

// Controller decides whether a planned operation fits the budget.
type Controller struct {
	budget BudgetReader
	ttl    time.Duration

	mu           sync.Mutex
	reservations map[string]Reservation
}

// Config contains configuration for a Controller.
type Config struct {
	// Budget reads current usage. Required.
	Budget BudgetReader

	// ReservationTTL is how long reservations hold budget.
	// Default: DefaultReservationTTL
	ReservationTTL time.Duration
}

// New creates an admission controller.
func New(cfg Config) *Controller {
	ttl := cfg.ReservationTTL
	if ttl <= 0 {
		ttl = DefaultReservationTTL
	}
	return &Controller{
		budget:       cfg.Budget,
		ttl:          ttl,
		reservations: make(map[string]Reservation),
	}
}

// CanAfford reports whether an operation with the given estimated cost
// fits in the remaining daily budget. An estimate equal to the
// remaining budget is allowed; the first dollar past it is not.
func (c *Controller) CanAfford(estimatedCost float64, now time.Time) Decision {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.decideLocked(estimatedCost, now)
}

// Reserve performs the same check as CanAfford and, when allowed,
// holds the estimated amount against the budget until Commit, Release,
// or expiry. Callers that do not need the stricter guarantee keep
// using CanAfford and ignore reservations entirely.
func (c *Controller) Reserve(estimatedCost float64, now time.Time) (Reservation, Decision) {
	c.mu.Lock()
	defer c.mu.Unlock()

	decision := c.decideLocked(estimatedCost, now)
	if !decision.Allowed {
		return Reservation{}, decision
	}

	res := Reservation{
		ID:        uuid.NewString(),
		Amount:    estimatedCost,
		ExpiresAt: now.Add(c.ttl),
	}
	c.reservations[res.ID] = res
	decision.Remaining -= estimatedCost

	return res, decision
}

// Commit consumes a reservation after the caller has recorded the
// realized cost in the ledger. Unknown or expired IDs are a no-op.
func (c *Controller) Commit(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.reservations, id)
}

// Release drops a reservation whose operation was not performed.
func (c *Controller) Release(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.reservations, id)
}

// decideLocked computes the decision against current usage and active
// reservations. Caller must hold c.mu.
func (c *Controller) decideLocked(estimatedCost float64, now time.Time) Decision {
	c.sweepLocked(now)

	remaining := c.budget.Usage(now).Daily.Remaining
	for _, res := range c.reservations {
		remaining -= res.Amount
	}
	if remaining < 0 {
		remaining = 0
	}

	if estimatedCost < 0 {
		return Decision{Allowed: false, Remaining: remaining, Reason: ReasonInvalidEstimate}
	}
	if estimatedCost > remaining {
		return Decision{Allowed: false, Remaining: remaining, Reason: ReasonBudgetExceeded}
	}

	return Decision{Allowed: true, Remaining: remaining}
}

// sweepLocked drops expired reservations. Caller must hold c.mu.
func (c *Controller) sweepLocked(now time.Time) {
	for id, res := range c.reservations {
		if now.After(res.ExpiresAt) {
			delete(c.reservations, id)
		}
	}
}
