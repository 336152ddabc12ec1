package sportsbook

import (
	"path/filepath"
	"testing"
)

func TestKeyNormalization(t *testing.T) {
	a := Key("LeBron James", "Points")
	b := Key("  lebron james ", "POINTS")
	if a != b {
		t.Fatalf("keys differ: %q vs %q", a, b)
	}
}

func TestCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "odds_cache.json")

	c := NewCache(path)
	c.Replace(map[string]Entry{
		Key("LeBron James", "Points"): {
			DraftKings: &Quote{Line: 25.5, OverOdds: -110, UnderOdds: -110},
			FanDuel:    &Quote{Line: 26.5, OverOdds: -105, UnderOdds: -115},
		},
		Key("Jayson Tatum", "Rebounds"): {
			DraftKings: &Quote{Line: 8.5, OverOdds: -120, UnderOdds: 100},
		},
	})
	if err := c.Save(); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	reloaded := NewCache(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if reloaded.Len() != 2 {
		t.Fatalf("reloaded %d entries, want 2", reloaded.Len())
	}

	entry, ok := reloaded.Lookup("lebron james", "points")
	if !ok {
		t.Fatal("lookup missed after reload")
	}
	if entry.DraftKings == nil || entry.DraftKings.Line != 25.5 {
		t.Fatalf("draftkings quote wrong: %+v", entry.DraftKings)
	}
	if entry.FanDuel == nil || entry.FanDuel.Line != 26.5 {
		t.Fatalf("fanduel quote wrong: %+v", entry.FanDuel)
	}

	single, ok := reloaded.Lookup("Jayson Tatum", "Rebounds")
	if !ok {
		t.Fatal("single-book entry missing")
	}
	if single.FanDuel != nil {
		t.Fatal("fanduel quote should be absent")
	}
}

func TestLoadMissingFileStartsEmpty(t *testing.T) {
	c := NewCache(filepath.Join(t.TempDir(), "nope.json"))
	if err := c.Load(); err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("expected empty cache, got %d entries", c.Len())
	}
}

func TestReplaceStampsUpdatedAt(t *testing.T) {
	c := NewCache(filepath.Join(t.TempDir(), "odds.json"))
	if !c.UpdatedAt().IsZero() {
		t.Fatal("fresh cache should have zero timestamp")
	}
	c.Replace(map[string]Entry{})
	if c.UpdatedAt().IsZero() {
		t.Fatal("replace should stamp the cache")
	}
}
