package projection

import "testing"

var testExclusions = []string{
	"1st 3 minutes",
	"quarters with",
	"two pointers made",
	"offensive rebounds",
	"fantasy score",
}

func TestFilterIsExcluded(t *testing.T) {
	filter := NewFilter(testExclusions)

	cases := []struct {
		statType string
		want     bool
	}{
		{"Points", false},
		{"Rebounds", false},
		{"Fantasy Score", true},
		{"Points (1st 3 Minutes)", true},
		{"Quarters With 5+ Points", true},
		{"Two Pointers Made", true},
		{"Offensive Rebounds", true},
		{"3-Pointers Made", false},
		{"Pts+Rebs+Asts", false},
	}

	for _, tc := range cases {
		if got := filter.IsExcluded(tc.statType); got != tc.want {
			t.Errorf("IsExcluded(%q) = %v, want %v", tc.statType, got, tc.want)
		}
	}
}

func TestFilterEmptyListKeepsEverything(t *testing.T) {
	filter := NewFilter(nil)
	if filter.IsExcluded("Fantasy Score") {
		t.Fatal("empty filter should exclude nothing")
	}
}
