package projection

import (
	"math"
	"math/rand"
	"testing"
)

func TestProjectBounds(t *testing.T) {
	m := NewModelWithSource(rand.New(rand.NewSource(1)))

	for i := 0; i < 500; i++ {
		res := m.Project(25.5, "Points")

		if res.ProbabilityOver < 0 || res.ProbabilityOver > 1 {
			t.Fatalf("probability out of range: %v", res.ProbabilityOver)
		}
		if res.Edge < -0.5 || res.Edge > 0.5 {
			t.Fatalf("edge out of range: %v", res.Edge)
		}
		if res.Confidence != ConfidenceMedium && res.Confidence != ConfidenceLow {
			t.Fatalf("unexpected confidence: %q", res.Confidence)
		}

		// Deviation is capped at 30% of the stat variance.
		variance := BaseVariance(25.5, "Points")
		maxDev := variance*0.3 + 0.05 // rounding slack
		if math.Abs(res.Projection-25.5) > maxDev {
			t.Fatalf("projection %v strayed more than %v from the line", res.Projection, maxDev)
		}
	}
}

func TestProjectZeroLine(t *testing.T) {
	m := NewModelWithSource(rand.New(rand.NewSource(7)))

	res := m.Project(0, "Points")
	if res.ProbabilityOver != 0.5 {
		t.Fatalf("zero line should degenerate to 0.5, got %v", res.ProbabilityOver)
	}
	if res.Edge != 0 {
		t.Fatalf("zero line should carry no edge, got %v", res.Edge)
	}
	if res.Confidence != ConfidenceLow {
		t.Fatalf("zero line should be low confidence, got %q", res.Confidence)
	}
}

func TestProjectDeterministicWithFixedSeed(t *testing.T) {
	a := NewModelWithSource(rand.New(rand.NewSource(42)))
	b := NewModelWithSource(rand.New(rand.NewSource(42)))

	for i := 0; i < 20; i++ {
		ra := a.Project(10.5, "Rebounds")
		rb := b.Project(10.5, "Rebounds")
		if ra != rb {
			t.Fatalf("same seed diverged: %+v vs %+v", ra, rb)
		}
	}
}

func TestProjectConfidenceFollowsEdge(t *testing.T) {
	m := NewModelWithSource(rand.New(rand.NewSource(3)))

	for i := 0; i < 200; i++ {
		res := m.Project(8.5, "Assists")
		wantMedium := math.Abs(res.Edge) > 0.10
		gotMedium := res.Confidence == ConfidenceMedium
		if wantMedium != gotMedium {
			t.Fatalf("edge %v produced confidence %q", res.Edge, res.Confidence)
		}
	}
}

func TestBaseVariance(t *testing.T) {
	cases := []struct {
		statType string
		line     float64
		want     float64
	}{
		{"Points", 20, 5.0},
		{"Rebounds", 10, 3.0},
		{"Assists", 10, 2.8},
		{"Threes", 2.5, 1.0},
		{"Pts+Rebs+Asts", 30, 6.0},
		{"Turnovers", 3, 0.75},
	}

	for _, tc := range cases {
		got := BaseVariance(tc.line, tc.statType)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("BaseVariance(%v, %q) = %v, want %v", tc.line, tc.statType, got, tc.want)
		}
	}
}

func TestBaseVarianceBranchOrder(t *testing.T) {
	// "3-Pointers Made" contains "point", so the points branch wins and the
	// fraction is 25%, not the 40% threes fraction.
	if got := BaseVariance(2.0, "3-Pointers Made"); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf(`BaseVariance(2.0, "3-Pointers Made") = %v, want 0.5`, got)
	}
	if got := BaseVariance(2.5, "3-Pointers Made"); math.Abs(got-0.625) > 1e-9 {
		t.Fatalf(`BaseVariance(2.5, "3-Pointers Made") = %v, want 0.625`, got)
	}

	// A label without "point" in it does reach the 40% branch.
	if got := BaseVariance(2.0, "Threes"); math.Abs(got-0.8) > 1e-9 {
		t.Fatalf(`BaseVariance(2.0, "Threes") = %v, want 0.8`, got)
	}
}

func TestNormalCDF(t *testing.T) {
	cases := []struct {
		z, want float64
	}{
		{0, 0.5},
		{1.96, 0.975},
		{-1.96, 0.025},
	}
	for _, tc := range cases {
		if got := normalCDF(tc.z); math.Abs(got-tc.want) > 1e-3 {
			t.Errorf("normalCDF(%v) = %v, want ~%v", tc.z, got, tc.want)
		}
	}
}
