package tier

import "testing"

func TestClassify_Boundaries(t *testing.T) {
	const limit = 50.00

	tests := []struct {
		name  string
		total float64
		want  Tier
	}{
		{"zero spend", 0.00, Normal},
		{"just under warning", 34.99, Normal},
		{"exactly 70 percent", 35.00, Warning},
		{"mid warning", 40.00, Warning},
		{"just under critical", 44.99, Warning},
		{"exactly 90 percent", 45.00, Critical},
		{"just under limit", 49.99, Critical},
		{"exactly at limit", 50.00, Exceeded},
		{"over limit", 55.00, Exceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.total, limit)
			if got != tt.want {
				t.Errorf("Classify(%.2f, %.2f) = %s, want %s", tt.total, limit, got, tt.want)
			}
		})
	}
}

func TestClassify_NonPositiveLimit(t *testing.T) {
	if got := Classify(0, 0); got != Exceeded {
		t.Errorf("Classify with zero limit = %s, want %s", got, Exceeded)
	}
	if got := Classify(10, -1); got != Exceeded {
		t.Errorf("Classify with negative limit = %s, want %s", got, Exceeded)
	}
}

// TestClassify_Monotone verifies that increasing spend never moves the
// tier backward for a fixed limit.
func TestClassify_Monotone(t *testing.T) {
	const limit = 50.00

	prev := Classify(0, limit)
	for total := 0.0; total <= limit*1.5; total += 0.01 {
		cur := Classify(total, limit)
		if Severity(cur) < Severity(prev) {
			t.Fatalf("tier regressed from %s to %s at total=%.2f", prev, cur, total)
		}
		prev = cur
	}
}

func TestClassify_ExampleScenario(t *testing.T) {
	// 40.00 of 50.00 is 80%: Warning. Recording 5.00 more reaches
	// 45.00, which is 90%: Critical.
	if got := Classify(40.00, 50.00); got != Warning {
		t.Errorf("at 80%% got %s, want %s", got, Warning)
	}
	if got := Classify(45.00, 50.00); got != Critical {
		t.Errorf("at 90%% got %s, want %s", got, Critical)
	}
}

func TestSeverity(t *testing.T) {
	order := []Tier{Normal, Warning, Critical, Exceeded}
	for i, tr := range order {
		if Severity(tr) != i {
			t.Errorf("Severity(%s) = %d, want %d", tr, Severity(tr), i)
		}
	}
}
