package window

import (
	"testing"
	"time"
)

func TestSystemResolver_Daily(t *testing.T) {
	r := NewSystemResolver(time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want Window
	}{
		{
			name: "midday",
			now:  time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC),
			want: "2024-05-01",
		},
		{
			name: "just before midnight",
			now:  time.Date(2024, 5, 1, 23, 59, 59, 0, time.UTC),
			want: "2024-05-01",
		},
		{
			name: "just after midnight",
			now:  time.Date(2024, 5, 2, 0, 0, 1, 0, time.UTC),
			want: "2024-05-02",
		},
		{
			name: "year boundary",
			now:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			want: "2025-01-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Daily(tt.now)
			if got != tt.want {
				t.Errorf("Daily(%v) = %q, want %q", tt.now, got, tt.want)
			}
		})
	}
}

func TestSystemResolver_Monthly(t *testing.T) {
	r := NewSystemResolver(time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want Window
	}{
		{
			name: "mid-month",
			now:  time.Date(2024, 5, 15, 8, 0, 0, 0, time.UTC),
			want: "2024-05",
		},
		{
			name: "last day of month",
			now:  time.Date(2024, 5, 31, 23, 0, 0, 0, time.UTC),
			want: "2024-05",
		},
		{
			name: "first day of next month",
			now:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			want: "2024-06",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Monthly(tt.now)
			if got != tt.want {
				t.Errorf("Monthly(%v) = %q, want %q", tt.now, got, tt.want)
			}
		})
	}
}

func TestSystemResolver_TimeZoneBoundaries(t *testing.T) {
	// 2024-05-01 23:30 in New York is already 2024-05-02 in UTC.
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tz database unavailable: %v", err)
	}

	now := time.Date(2024, 5, 2, 3, 30, 0, 0, time.UTC)

	utcResolver := NewSystemResolver(time.UTC)
	nyResolver := NewSystemResolver(ny)

	if got := utcResolver.Daily(now); got != "2024-05-02" {
		t.Errorf("UTC Daily = %q, want 2024-05-02", got)
	}
	if got := nyResolver.Daily(now); got != "2024-05-01" {
		t.Errorf("NY Daily = %q, want 2024-05-01", got)
	}
}

func TestSystemResolver_NilLocationDefaultsToLocal(t *testing.T) {
	r := NewSystemResolver(nil)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	want := Window(now.In(time.Local).Format("2006-01-02"))
	if got := r.Daily(now); got != want {
		t.Errorf("Daily with nil location = %q, want %q", got, want)
	}
}

func TestWindow_IsZero(t *testing.T) {
	if !Window("").IsZero() {
		t.Error("empty window should be zero")
	}
	if Window("2024-05-01").IsZero() {
		t.Error("resolved window should not be zero")
	}
}

func TestWindow_Equality(t *testing.T) {
	r := NewSystemResolver(time.UTC)

	a := r.Daily(time.Date(2024, 5, 1, 1, 0, 0, 0, time.UTC))
	b := r.Daily(time.Date(2024, 5, 1, 22, 0, 0, 0, time.UTC))
	if a != b {
		t.Errorf("same calendar day resolved to different windows: %q vs %q", a, b)
	}

	c := r.Daily(time.Date(2024, 5, 2, 1, 0, 0, 0, time.UTC))
	if a == c {
		t.Errorf("different calendar days resolved to the same window: %q", a)
	}
}
