package cache

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/voxlane/costguard/pkg/spend/storage"
)

const maxAge = 24 * time.Hour // 86400s, the voice feature's cap

var t0 = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := New(Config{Store: storage.NewMemoryStore()})
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	return c
}

func TestCache_FreshnessScenario(t *testing.T) {
	// Entry created at t=0 with fingerprint "v1" and a 24h max age.
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Put(ctx, "daily-brief", []byte("audio-bytes"), "v1", t0); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	// t=1h, same fingerprint: hit.
	entry, result := c.Get("daily-brief", "v1", maxAge, t0.Add(time.Hour))
	if result != ResultHit {
		t.Fatalf("at t=1h with v1: %s, want %s", result, ResultHit)
	}
	if !bytes.Equal(entry.Artifact, []byte("audio-bytes")) {
		t.Errorf("hit returned wrong artifact: %q", entry.Artifact)
	}

	// t=1h, changed fingerprint: miss even though well within max age.
	if _, result := c.Get("daily-brief", "v2", maxAge, t0.Add(time.Hour)); result != ResultMissFingerprintChanged {
		t.Errorf("at t=1h with v2: %s, want %s", result, ResultMissFingerprintChanged)
	}

	// t=25h, original fingerprint: miss even though inputs unchanged.
	if _, result := c.Get("daily-brief", "v1", maxAge, t0.Add(25*time.Hour)); result != ResultMissExpired {
		t.Errorf("at t=25h with v1: %s, want %s", result, ResultMissExpired)
	}
}

func TestCache_MissNotFound(t *testing.T) {
	c := newTestCache(t)

	if _, result := c.Get("never-stored", "v1", maxAge, t0); result != ResultMissNotFound {
		t.Errorf("result = %s, want %s", result, ResultMissNotFound)
	}
}

func TestCache_AgeBoundaryIsInclusive(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	c.Put(ctx, "k", []byte("a"), "v1", t0)

	// Age exactly equal to maxAge is still usable.
	if _, result := c.Get("k", "v1", maxAge, t0.Add(maxAge)); result != ResultHit {
		t.Errorf("at exactly maxAge: %s, want %s", result, ResultHit)
	}
	if _, result := c.Get("k", "v1", maxAge, t0.Add(maxAge+time.Second)); result != ResultMissExpired {
		t.Errorf("just past maxAge: %s, want %s", result, ResultMissExpired)
	}
}

func TestCache_PutReplacesAtomically(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	c.Put(ctx, "k", []byte("old"), "v1", t0)
	c.Put(ctx, "k", []byte("new"), "v2", t0.Add(time.Hour))

	entry, result := c.Get("k", "v2", maxAge, t0.Add(2*time.Hour))
	if result != ResultHit {
		t.Fatalf("result = %s, want %s", result, ResultHit)
	}
	if string(entry.Artifact) != "new" {
		t.Errorf("artifact = %q, want new", entry.Artifact)
	}
	if !entry.CreatedAt.Equal(t0.Add(time.Hour)) {
		t.Errorf("created at = %v, want %v (old timestamp leaked)", entry.CreatedAt, t0.Add(time.Hour))
	}

	// The old fingerprint no longer matches anything.
	if _, result := c.Get("k", "v1", maxAge, t0.Add(2*time.Hour)); result != ResultMissFingerprintChanged {
		t.Errorf("old fingerprint result = %s, want %s", result, ResultMissFingerprintChanged)
	}
}

func TestCache_IndependentKeys(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	c.Put(ctx, "voice", []byte("audio"), "v1", t0)
	c.Put(ctx, "insight", []byte("text"), "i1", t0)

	if entry, result := c.Get("voice", "v1", maxAge, t0); !result.IsHit() || string(entry.Artifact) != "audio" {
		t.Errorf("voice lookup: result=%s artifact=%q", result, entry.Artifact)
	}
	if entry, result := c.Get("insight", "i1", maxAge, t0); !result.IsHit() || string(entry.Artifact) != "text" {
		t.Errorf("insight lookup: result=%s artifact=%q", result, entry.Artifact)
	}
}

func TestCache_LastIgnoresFreshness(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	c.Put(ctx, "k", []byte("stale-but-present"), "v1", t0)

	// Long expired, but Last still serves it for the caller's
	// regeneration-failure fallback.
	if _, result := c.Get("k", "v1", maxAge, t0.Add(48*time.Hour)); result != ResultMissExpired {
		t.Fatalf("expected expiry, got %s", result)
	}

	entry, ok := c.Last("k")
	if !ok {
		t.Fatal("Last returned no entry")
	}
	if string(entry.Artifact) != "stale-but-present" {
		t.Errorf("Last artifact = %q", entry.Artifact)
	}

	if _, ok := c.Last("missing"); ok {
		t.Error("Last returned an entry for a key never stored")
	}
}

func TestCache_SurvivesRestart(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	c1, err := New(Config{Store: store})
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	if err := c1.Put(ctx, "k", []byte("persisted"), "v1", t0); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	// A fresh cache over the same store hydrates the entry lazily.
	c2, err := New(Config{Store: store})
	if err != nil {
		t.Fatalf("failed to create second cache: %v", err)
	}

	entry, result := c2.Get("k", "v1", maxAge, t0.Add(time.Hour))
	if result != ResultHit {
		t.Fatalf("result after restart = %s, want %s", result, ResultHit)
	}
	if string(entry.Artifact) != "persisted" {
		t.Errorf("artifact after restart = %q", entry.Artifact)
	}
}

func TestCache_Delete(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	c.Put(ctx, "k", []byte("a"), "v1", t0)
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, result := c.Get("k", "v1", maxAge, t0); result != ResultMissNotFound {
		t.Errorf("result after delete = %s, want %s", result, ResultMissNotFound)
	}
}

func TestCache_Prune(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	c.Put(ctx, "old", []byte("a"), "v1", t0)
	c.Put(ctx, "fresh", []byte("b"), "v1", t0.Add(6*24*time.Hour))

	pruned := c.Prune(ctx, 7*24*time.Hour, t0.Add(8*24*time.Hour))
	if pruned != 1 {
		t.Errorf("pruned %d entries, want 1", pruned)
	}

	if _, result := c.Get("old", "v1", 30*24*time.Hour, t0.Add(8*24*time.Hour)); result != ResultMissNotFound {
		t.Errorf("old entry still present after prune: %s", result)
	}
	if _, result := c.Get("fresh", "v1", 30*24*time.Hour, t0.Add(8*24*time.Hour)); result != ResultHit {
		t.Errorf("fresh entry lost by prune: %s", result)
	}
}

func TestCache_EmptyKeyRejected(t *testing.T) {
	c := newTestCache(t)

	if err := c.Put(context.Background(), "", []byte("a"), "v1", t0); err == nil {
		t.Error("expected error for empty key")
	}
}
