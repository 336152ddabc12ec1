package projection

import (
	"math"
	"testing"
)

func TestDefensiveRating(t *testing.T) {
	cases := []struct {
		rank int
		want string
	}{
		{0, RatingUnknown},
		{-3, RatingUnknown},
		{1, RatingElite},
		{50, RatingElite},
		{51, RatingAverage},
		{100, RatingAverage},
		{101, RatingWeak},
		{150, RatingWeak},
	}

	for _, tc := range cases {
		if got := DefensiveRating(tc.rank); got != tc.want {
			t.Errorf("DefensiveRating(%d) = %q, want %q", tc.rank, got, tc.want)
		}
	}
}

func TestDefensiveAdjustmentPct(t *testing.T) {
	// Elite end: roughly -11.86% for the league's best positional defense.
	if got := DefensiveAdjustmentPct(1); math.Abs(got-(-11.86)) > 0.01 {
		t.Errorf("DefensiveAdjustmentPct(1) = %v, want ~-11.86", got)
	}

	// Weakest end: strongly positive.
	if got := DefensiveAdjustmentPct(150); math.Abs(got-18.0) > 0.01 {
		t.Errorf("DefensiveAdjustmentPct(150) = %v, want ~18.0", got)
	}

	// No data yields no adjustment.
	if got := DefensiveAdjustmentPct(0); got != 0 {
		t.Errorf("DefensiveAdjustmentPct(0) = %v, want 0", got)
	}

	// Monotonic across the whole rank range.
	prev := DefensiveAdjustmentPct(1)
	for rank := 2; rank <= 150; rank++ {
		cur := DefensiveAdjustmentPct(rank)
		if cur < prev {
			t.Fatalf("adjustment not monotonic at rank %d: %v < %v", rank, cur, prev)
		}
		prev = cur
	}
}

func TestPaceTempo(t *testing.T) {
	cases := []struct {
		a, b float64
		want string
	}{
		{104, 103, TempoFast},
		{100, 100, TempoAverage},
		{96, 97, TempoSlow},
		{102, 102, TempoAverage}, // avg exactly at the fast threshold stays average
		{98, 98, TempoAverage},
	}

	for _, tc := range cases {
		if got := PaceTempo(tc.a, tc.b); got != tc.want {
			t.Errorf("PaceTempo(%v, %v) = %q, want %q", tc.a, tc.b, got, tc.want)
		}
	}
}
