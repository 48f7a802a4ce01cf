package admission

import (
	"context"
	"testing"
	"time"

	"github.com/voxlane/costguard/pkg/spend/ledger"
	"github.com/voxlane/costguard/pkg/spend/storage"
	"github.com/voxlane/costguard/pkg/spend/window"
)

var day1 = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func newTestController(t *testing.T, limit float64) (*Controller, *ledger.Ledger) {
	t.Helper()
	l, err := ledger.New(context.Background(), ledger.Config{
		Resolver:   window.NewSystemResolver(time.UTC),
		Store:      storage.NewMemoryStore(),
		DailyLimit: limit,
	})
	if err != nil {
		t.Fatalf("failed to create ledger: %v", err)
	}
	return New(Config{Budget: l}), l
}

func TestController_CanAfford(t *testing.T) {
	c, l := newTestController(t, 50.00)
	ctx := context.Background()

	if err := l.RecordCost(ctx, "speech-synthesis", 30.00, day1); err != nil {
		t.Fatalf("RecordCost failed: %v", err)
	}

	tests := []struct {
		name        string
		estimate    float64
		wantAllowed bool
		wantReason  Reason
	}{
		{"well within budget", 5.00, true, ""},
		{"zero estimate", 0.00, true, ""},
		{"exactly remaining", 20.00, true, ""},
		{"one cent over", 20.01, false, ReasonBudgetExceeded},
		{"far over", 100.00, false, ReasonBudgetExceeded},
		{"negative estimate", -1.00, false, ReasonInvalidEstimate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := c.CanAfford(tt.estimate, day1)
			if d.Allowed != tt.wantAllowed {
				t.Errorf("CanAfford(%.2f).Allowed = %v, want %v", tt.estimate, d.Allowed, tt.wantAllowed)
			}
			if d.Reason != tt.wantReason {
				t.Errorf("CanAfford(%.2f).Reason = %q, want %q", tt.estimate, d.Reason, tt.wantReason)
			}
			if d.Remaining != 20.00 {
				t.Errorf("CanAfford(%.2f).Remaining = %.2f, want 20.00", tt.estimate, d.Remaining)
			}
		})
	}
}

func TestController_DeniesAfterBudgetExceeded(t *testing.T) {
	c, l := newTestController(t, 50.00)
	ctx := context.Background()

	// Example scenario: [10, 15, 30] recorded against a 50.00 limit.
	for _, amount := range []float64{10.00, 15.00, 30.00} {
		if err := l.RecordCost(ctx, "text-generation", amount, day1); err != nil {
			t.Fatalf("RecordCost failed: %v", err)
		}
	}

	d := c.CanAfford(1.00, day1)
	if d.Allowed {
		t.Error("expected denial after exceeding the budget")
	}
	if d.Remaining != 0 {
		t.Errorf("remaining = %.2f, want 0", d.Remaining)
	}
	if d.Reason != ReasonBudgetExceeded {
		t.Errorf("reason = %q, want %q", d.Reason, ReasonBudgetExceeded)
	}
}

func TestController_NeverMutatesLedger(t *testing.T) {
	c, l := newTestController(t, 50.00)

	for i := 0; i < 10; i++ {
		c.CanAfford(5.00, day1)
	}

	if usage := l.Usage(day1); usage.Daily.Total != 0 {
		t.Errorf("admission checks mutated the ledger: total %.2f", usage.Daily.Total)
	}
}

func TestController_AllowsAgainAfterRollover(t *testing.T) {
	c, l := newTestController(t, 50.00)
	ctx := context.Background()

	l.RecordCost(ctx, "speech-synthesis", 50.00, day1)
	if d := c.CanAfford(10.00, day1); d.Allowed {
		t.Fatal("expected denial at the limit")
	}

	day2 := day1.Add(24 * time.Hour)
	if d := c.CanAfford(10.00, day2); !d.Allowed {
		t.Errorf("expected allowance after daily rollover, got %+v", d)
	}
}

func TestController_ReserveHoldsBudget(t *testing.T) {
	c, l := newTestController(t, 50.00)
	ctx := context.Background()

	l.RecordCost(ctx, "speech-synthesis", 20.00, day1)

	res, d := c.Reserve(25.00, day1)
	if !d.Allowed {
		t.Fatalf("Reserve denied: %+v", d)
	}
	if res.ID == "" {
		t.Fatal("reservation has no ID")
	}
	if d.Remaining != 5.00 {
		t.Errorf("remaining after reserve = %.2f, want 5.00", d.Remaining)
	}

	// The held amount counts against later checks.
	if d := c.CanAfford(10.00, day1); d.Allowed {
		t.Error("check ignored an active reservation")
	}
	if d := c.CanAfford(5.00, day1); !d.Allowed {
		t.Errorf("check denied within reserved headroom: %+v", d)
	}

	// Committing releases the hold; the realized charge now lives in
	// the ledger instead.
	l.RecordCost(ctx, "speech-synthesis", 25.00, day1)
	c.Commit(res.ID)

	if d := c.CanAfford(5.00, day1); !d.Allowed {
		t.Errorf("check after commit: %+v", d)
	}
}

func TestController_ReleaseDropsHold(t *testing.T) {
	c, _ := newTestController(t, 50.00)

	res, d := c.Reserve(40.00, day1)
	if !d.Allowed {
		t.Fatalf("Reserve denied: %+v", d)
	}
	if d := c.CanAfford(20.00, day1); d.Allowed {
		t.Fatal("expected denial while hold active")
	}

	c.Release(res.ID)

	if d := c.CanAfford(20.00, day1); !d.Allowed {
		t.Errorf("expected allowance after release: %+v", d)
	}
}

func TestController_ReservationExpires(t *testing.T) {
	c, _ := newTestController(t, 50.00)

	if _, d := c.Reserve(40.00, day1); !d.Allowed {
		t.Fatalf("Reserve denied: %+v", d)
	}

	// Before expiry the hold blocks; after expiry it lapses unused.
	if d := c.CanAfford(20.00, day1.Add(time.Minute)); d.Allowed {
		t.Error("expected denial before reservation expiry")
	}
	if d := c.CanAfford(20.00, day1.Add(DefaultReservationTTL+time.Second)); !d.Allowed {
		t.Errorf("expected allowance after reservation expiry: %+v", d)
	}
}
