// Package cache implements the cost-avoidance cache for AI-generated artifacts.
//
// # Overview
//
// Regenerating an artifact (synthesized speech, a generated insight)
// costs money. The cache keeps the most recent artifact per key
// together with a freshness fingerprint, a cheap summary of the inputs
// that produced it, and a generation timestamp. A lookup reports
// whether the cached artifact is still usable or whether the caller
// must regenerate and therefore incur a ledger-chargeable call.
//
// # Freshness
//
// A cached entry is usable only if it exists, its age is within the
// caller's max age, and its fingerprint matches the current inputs.
// The two freshness signals are independent: max age caps staleness
// even when inputs are unchanged, and a fingerprint mismatch forces
// regeneration the moment the underlying data meaningfully changes,
// even well within the age limit.
//
// # Fallback
//
// On a miss, callers that then fail to regenerate should keep serving
// the last known artifact rather than leaving the user with nothing.
// The cache exposes Last for exactly that; it does not implement the
// fallback policy itself.
//
// # Persistence
//
// Entries are written through to a storage.Store so cached artifacts
// survive process restarts. Replacement is atomic per key: an entry is
// fully overwritten, never merged.
package cache
