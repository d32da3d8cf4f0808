package clock_test

import (
	"testing"
	"time"

	"github.com/sophialabs/harcleaner/internal/infrastructure/outbound/clock"
	"github.com/sophialabs/harcleaner/internal/testutil"
)

func TestRealClock_Now(t *testing.T) {
	clk := clock.New()
	before := time.Now()
	got := clk.Now()
	after := time.Now()

	if got.Before(before) || got.After(after) {
		t.Errorf("Now() = %v, want between %v and %v", got, before, after)
	}
	if got.Location() != time.UTC {
		t.Errorf("expected UTC, got %v", got.Location())
	}
}

func TestSince(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	clk := &testutil.FixedClock{T: start.Add(1500 * time.Millisecond)}

	if got := clock.Since(clk, start); got != 1500*time.Millisecond {
		t.Errorf("Since = %v, want 1.5s", got)
	}
}
