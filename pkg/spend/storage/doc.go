// Package storage provides durable key-value persistence for cost-control state.
//
// # Overview
//
// The ledger snapshot and cached artifacts are small opaque records
// that must survive process restarts. This package defines a minimal
// Store interface over byte values and two implementations:
//
//   - MemoryStore: in-process map, no durability. Used in tests and for
//     ephemeral sessions where losing state on exit is acceptable.
//   - SQLiteStore: durable single-file database using modernc.org/sqlite
//     (pure Go, no CGO), suitable for client devices.
//
// # Durability
//
// Store guarantees at-least-once durability of the last successful
// Save: after Save returns nil, a subsequent Load observes that value
// even across a process restart. Callers bound Save latency with a
// context deadline; a Save that misses its deadline reports an error
// and the caller keeps its in-memory state authoritative.
//
// # Thread Safety
//
// All implementations are safe for concurrent use.
package storage
