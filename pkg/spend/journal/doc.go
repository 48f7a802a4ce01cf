// Package journal keeps an append-only record of charged operations.
//
// # Overview
//
// Every cost the ledger accepts is also appended here as an immutable
// event: which service, how much, which accounting windows it landed
// in, and when. The journal backs history views and per-service
// insight displays.
//
// The journal is display-only. Admission decisions and budget status
// always come from the ledger's recorded totals, never from journal
// aggregates or event counts, so a journal write failure degrades
// history but can never corrupt accounting.
//
// # Storage
//
// Events live in their own SQLite database, separate from the ledger
// snapshot store, because their write pattern (append-only, queried by
// day range) differs from snapshot overwrites.
package journal
