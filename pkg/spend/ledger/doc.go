// Package ledger implements the budget ledger for paid AI operations.
//
// # Overview
//
// The ledger accumulates realized cost per service and in aggregate
// inside two independent calendar windows: the current day and the
// current month. Window boundaries come from an injected
// window.Resolver, never from the wall clock directly, so tests drive
// the ledger with synthetic timestamps.
//
// # Rollover
//
// Windows roll over lazily. Every operation first resolves the current
// windows; any stored window that no longer matches is reset to zero
// before new state is read or written. Daily rollover never touches
// monthly state and vice versa. A read immediately after a boundary
// therefore reports zero, even though nothing was persisted at the
// boundary itself.
//
// # Persistence
//
// Mutations persist a full snapshot through a storage.Store with a
// bounded timeout. If a save fails, the in-memory state stays
// authoritative for the session: the charge is never rolled back,
// the snapshot is marked dirty, and the next mutation (or an explicit
// Flush) retries. Under-reporting spend is worse than a transient
// durability gap.
//
// # Concurrency
//
// All operations serialize on a single mutex. Usage reads take the
// same mutex, which gives read-after-write consistency with the most
// recently completed mutation.
package ledger
