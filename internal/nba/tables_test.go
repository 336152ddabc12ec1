package nba

import "testing"

func TestNormalizeTeamAliases(t *testing.T) {
	cases := map[string]string{
		"PHO": "PHX",
		"TRA": "POR",
		"GS":  "GSW",
		"NY":  "NYK",
		"SA":  "SAS",
		"NO":  "NOP",
		"LAK": "LAL",
		"bos": "BOS",
		"LAL": "LAL",
		"":    "",
	}

	for in, want := range cases {
		if got := NormalizeTeam(in); got != want {
			t.Errorf("NormalizeTeam(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTeamStatsCoversAllThirtyTeams(t *testing.T) {
	teams := []string{
		"ATL", "BOS", "BKN", "CHA", "CHI", "CLE", "DAL", "DEN", "DET", "GSW",
		"HOU", "IND", "LAC", "LAL", "MEM", "MIA", "MIL", "MIN", "NOP", "NYK",
		"OKC", "ORL", "PHI", "PHX", "POR", "SAC", "SAS", "TOR", "UTA", "WAS",
	}

	for _, abbr := range teams {
		ts, ok := TeamStats(abbr)
		if !ok {
			t.Errorf("no team stats for %s", abbr)
			continue
		}
		if ts.Pace < 90 || ts.Pace > 110 {
			t.Errorf("%s pace %v outside plausible range", abbr, ts.Pace)
		}
		if ts.DefRtg <= 0 {
			t.Errorf("%s has no defensive rating", abbr)
		}
	}
}

func TestTeamStatsResolvesAliases(t *testing.T) {
	direct, ok := TeamStats("PHX")
	if !ok {
		t.Fatal("missing PHX")
	}
	aliased, ok := TeamStats("PHO")
	if !ok {
		t.Fatal("alias PHO did not resolve")
	}
	if direct != aliased {
		t.Fatal("alias resolved to different stats")
	}
}

func TestTeamAbbreviation(t *testing.T) {
	cases := map[string]string{
		"Los Angeles Lakers":    "LAL",
		"Boston Celtics":        "BOS",
		"Golden State Warriors": "GSW",
		// Unknown names fall back to the first three letters.
		"Springfield Atoms": "SPR",
	}

	for in, want := range cases {
		if got := TeamAbbreviation(in); got != want {
			t.Errorf("TeamAbbreviation(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPlayerPositionDefault(t *testing.T) {
	if got := PlayerPosition("Unknown Rookie"); got != DefaultPosition {
		t.Fatalf("unknown player position = %q, want %q", got, DefaultPosition)
	}
}

func TestDefensiveRankRange(t *testing.T) {
	teams := []string{"BOS", "LAL", "DEN", "MIA"}
	for _, abbr := range teams {
		for _, pos := range []string{"LeBron James", "Stephen Curry", "Nikola Jokic"} {
			rank, ok := DefensiveRank(abbr, pos)
			if !ok {
				t.Errorf("no defensive rank for %s vs %s", pos, abbr)
				continue
			}
			if rank < 1 || rank > 150 {
				t.Errorf("rank %d for %s vs %s outside 1..150", rank, pos, abbr)
			}
		}
	}
}

func TestDefensiveRankUnknownOpponent(t *testing.T) {
	if _, ok := DefensiveRank("ZZZ", "LeBron James"); ok {
		t.Fatal("unknown opponent should report ok=false")
	}
}
