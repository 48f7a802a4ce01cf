// Package admission implements the pre-spend gate for paid operations.
//
// # Overview
//
// Before a caller performs a paid operation it asks the admission
// controller whether the estimated cost fits in the remaining daily
// budget. The check is advisory and never mutates the ledger; the
// ledger is charged only after the caller confirms the operation
// actually executed.
//
// # Check-then-act window
//
// Because CanAfford does not reserve budget, a caller that passes the
// check and then runs a long paid operation leaves a window, bounded
// by the operation's latency, in which a second caller can also pass
// and the two together exceed the limit. On a single-process client
// with one local ledger this is an accepted limitation, not a bug to
// solve with distributed locking.
//
// Callers that want a stricter guarantee can use Reserve instead: it
// returns a short-lived reservation whose amount counts against the
// remaining budget for subsequent checks until it is committed,
// released, or expires unused.
package admission
