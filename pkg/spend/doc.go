// Package spend coordinates budget accounting, admission control, and
// cost-avoidance caching for paid AI operations.
//
// # Overview
//
// A client application that runs metered operations (speech synthesis,
// text generation) uses one Manager as its process-wide cost-control
// context, created at startup and torn down at exit. The Manager owns:
//
//   - a ledger.Ledger accumulating realized cost in calendar windows
//   - an admission.Controller gating operations before they spend
//   - a cache.Cache substituting cached artifacts for paid regeneration
//   - an optional journal.Journal of charged operations for history
//
// # Control flow
//
// For a cost-incurring feature the caller:
//
//  1. Asks CachedArtifact for a usable cached result. A hit costs
//     nothing and the flow ends.
//  2. On a miss, asks CanAfford with the estimated cost. A denial is
//     surfaced to the user as "daily budget reached" and the flow
//     stops; nothing was charged.
//  3. If allowed, performs the paid operation itself (service clients
//     are outside this package).
//  4. On success, reports the realized cost with RecordUsage, which
//     charges the ledger, appends the journal, and updates metrics.
//  5. Stores the fresh artifact with StoreArtifact.
//
// If regeneration fails after a miss, the caller keeps serving the
// previous artifact via LastArtifact rather than leaving the user with
// nothing.
//
// # Scope
//
// This is a client-side, best-effort, locally enforced guardrail. It
// does no request-rate limiting, no multi-user accounting, and no
// reconciliation against server-side billing.
package spend
