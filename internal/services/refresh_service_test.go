package services

import (
	"context"
	"encoding/json"
	"math"
	"math/rand"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/courtedge-project/backend/internal/models"
	"github.com/courtedge-project/backend/internal/oddsapi"
	"github.com/courtedge-project/backend/internal/prizepicks"
	"github.com/courtedge-project/backend/internal/projection"
	"github.com/courtedge-project/backend/internal/propcache"
	"github.com/courtedge-project/backend/internal/sportsbook"
)

func TestDemoBoardShape(t *testing.T) {
	games, groups := demoBoard()

	if len(games) != 4 {
		t.Fatalf("demo board has %d games, want 4", len(games))
	}
	if len(groups) != 80 {
		t.Fatalf("demo board has %d prop groups, want 80", len(groups))
	}

	gameKeys := make(map[string]bool)
	for _, g := range games {
		if g.ID == "" {
			t.Fatal("demo game missing id")
		}
		if g.ExternalID == nil {
			t.Fatal("demo game missing external id")
		}
		gameKeys[*g.ExternalID] = true
	}

	for _, grp := range groups {
		if !gameKeys[grp.gameKey] {
			t.Fatalf("group %s/%s references unknown game %q", grp.playerName, grp.statType, grp.gameKey)
		}
		if len(grp.lines) != 1 {
			t.Fatalf("demo group should carry one line, got %d", len(grp.lines))
		}
		// All demo lines land on half-point increments.
		if rem := math.Mod(grp.lines[0]*2, 1); rem != 0 {
			t.Fatalf("demo line %v not on a half-point step", grp.lines[0])
		}
	}
}

func TestDemoBoardDeterministicLines(t *testing.T) {
	_, first := demoBoard()
	_, second := demoBoard()

	for i := range first {
		if first[i].playerName != second[i].playerName || first[i].lines[0] != second[i].lines[0] {
			t.Fatalf("demo board not deterministic at index %d", i)
		}
	}
}

func TestCollectEventOdds(t *testing.T) {
	odds := &oddsapi.EventOdds{
		ID:       "evt-1",
		HomeTeam: "Los Angeles Lakers",
		AwayTeam: "Boston Celtics",
		Bookmakers: []oddsapi.Bookmaker{
			{
				Key: "draftkings",
				Markets: []oddsapi.Market{
					{
						Key: "player_points",
						Outcomes: []oddsapi.Outcome{
							{Name: "Over", Description: "LeBron James", Price: -110, Point: 25.5},
							{Name: "Under", Description: "LeBron James", Price: -110, Point: 25.5},
						},
					},
					{
						Key: "player_unknown_market",
						Outcomes: []oddsapi.Outcome{
							{Name: "Over", Description: "LeBron James", Price: -110, Point: 1.5},
						},
					},
				},
			},
			{
				Key: "fanduel",
				Markets: []oddsapi.Market{
					{
						Key: "player_points",
						Outcomes: []oddsapi.Outcome{
							{Name: "Over", Description: "LeBron James", Price: -105, Point: 26.5},
							{Name: "Under", Description: "LeBron James", Price: -115, Point: 26.5},
						},
					},
				},
			},
		},
	}

	table := make(map[string]sportsbook.Entry)
	collectEventOdds(odds, table)

	if len(table) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(table))
	}

	entry := table[sportsbook.Key("LeBron James", "Points")]
	if entry.DraftKings == nil {
		t.Fatal("draftkings quote missing")
	}
	if entry.DraftKings.Line != 25.5 || entry.DraftKings.OverOdds != -110 || entry.DraftKings.UnderOdds != -110 {
		t.Fatalf("draftkings quote wrong: %+v", entry.DraftKings)
	}
	if entry.FanDuel == nil {
		t.Fatal("fanduel quote missing")
	}
	if entry.FanDuel.Line != 26.5 || entry.FanDuel.OverOdds != -105 || entry.FanDuel.UnderOdds != -115 {
		t.Fatalf("fanduel quote wrong: %+v", entry.FanDuel)
	}
}

func TestCollectEventOddsIgnoresUnknownBooks(t *testing.T) {
	odds := &oddsapi.EventOdds{
		Bookmakers: []oddsapi.Bookmaker{
			{
				Key: "betmgm",
				Markets: []oddsapi.Market{
					{
						Key: "player_points",
						Outcomes: []oddsapi.Outcome{
							{Name: "Over", Description: "LeBron James", Price: -110, Point: 25.5},
						},
					},
				},
			},
		},
	}

	table := make(map[string]sportsbook.Entry)
	collectEventOdds(odds, table)

	if len(table) != 0 {
		t.Fatalf("unknown book should not produce entries: %+v", table)
	}
}

func TestSplitMatchupName(t *testing.T) {
	away, home := splitMatchupName("Boston Celtics @ Los Angeles Lakers")
	if away != "Boston Celtics" || home != "Los Angeles Lakers" {
		t.Fatalf("got away=%q home=%q", away, home)
	}

	away, home = splitMatchupName("TBD")
	if away != "TBD" || home != "TBD" {
		t.Fatalf("malformed name should duplicate: away=%q home=%q", away, home)
	}
}

const cannedFeed = `{
  "data": [
    {
      "id": "proj-pts-1",
      "type": "projection",
      "attributes": {"line_score": 24.5, "stat_type": "Points", "game_id": "game-1"},
      "relationships": {"new_player": {"data": {"id": "player-1"}}}
    },
    {
      "id": "proj-pts-2",
      "type": "projection",
      "attributes": {"line_score": 26.5, "stat_type": "Points", "game_id": "game-1"},
      "relationships": {"new_player": {"data": {"id": "player-1"}}}
    },
    {
      "id": "proj-pts-3",
      "type": "projection",
      "attributes": {"line_score": 25.5, "stat_type": "Points", "game_id": "game-1"},
      "relationships": {"new_player": {"data": {"id": "player-1"}}}
    },
    {
      "id": "proj-fs-1",
      "type": "projection",
      "attributes": {"line_score": 42.5, "stat_type": "Fantasy Score", "game_id": "game-1"},
      "relationships": {"new_player": {"data": {"id": "player-1"}}}
    },
    {
      "id": "proj-reb-1",
      "type": "projection",
      "attributes": {"line_score": 8.5, "stat_type": "Rebounds", "game_id": "game-2"},
      "relationships": {"new_player": {"data": {"id": "player-2"}}}
    }
  ],
  "included": [
    {
      "type": "new_player",
      "id": "player-1",
      "attributes": {"display_name": "LeBron James", "team": "LAL", "team_name": "Los Angeles Lakers", "position": "SF"}
    },
    {
      "type": "new_player",
      "id": "player-2",
      "attributes": {"display_name": "Jayson Tatum", "team": "BOS", "team_name": "Boston Celtics", "position": "SF"}
    },
    {
      "type": "game",
      "id": "game-1",
      "attributes": {"name": "Boston Celtics @ Los Angeles Lakers", "scheduled_at": "2026-01-15T03:00:00Z", "status": "scheduled"}
    }
  ]
}`

// Drives a decoded feed payload through grouping, base-line selection, the
// projection model, and the snapshot store, without touching Postgres.
func TestFeedThroughProjectionPipeline(t *testing.T) {
	var resp prizepicks.ProjectionsResponse
	if err := json.Unmarshal([]byte(cannedFeed), &resp); err != nil {
		t.Fatalf("decode canned feed: %v", err)
	}

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	s := &RefreshService{
		Filter:    projection.NewFilter([]string{"fantasy score"}),
		Model:     projection.NewModelWithSource(rand.New(rand.NewSource(11))),
		Snapshots: propcache.NewStore(rdb),
	}

	games, groups := s.buildFromFeed(&resp)

	// game-1 comes from the feed, game-2 is synthesized around player-2.
	if len(games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(games))
	}
	if games[0].HomeTeam != "Los Angeles Lakers" || games[0].AwayTeam != "Boston Celtics" {
		t.Fatalf("feed game parsed wrong: %+v", games[0])
	}
	if games[1].HomeTeam != "Boston Celtics" || games[1].AwayTeam != "Opponent" {
		t.Fatalf("synthesized game wrong: %+v", games[1])
	}

	// The fantasy line is filtered and the three Points lines collapse to one
	// group, so two groups remain.
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	pts := groups[0]
	if pts.playerName != "LeBron James" || pts.statType != "Points" {
		t.Fatalf("unexpected first group: %+v", pts)
	}
	if len(pts.lines) != 3 {
		t.Fatalf("points group has %d lines, want 3", len(pts.lines))
	}

	line := projection.SelectBaseLine(pts.lines)
	if line != 25.5 {
		t.Fatalf("base line = %v, want 25.5", line)
	}

	res := s.Model.Project(line, pts.statType)
	variance := projection.BaseVariance(line, pts.statType)
	if math.Abs(res.Projection-line) > variance*0.3+0.05 {
		t.Fatalf("projection %v strayed from line %v", res.Projection, line)
	}
	if res.ProbabilityOver < 0 || res.ProbabilityOver > 1 {
		t.Fatalf("probability out of range: %v", res.ProbabilityOver)
	}

	// Snapshot round trip under the external-id key.
	ctx := context.Background()
	ext := pts.externalID
	props := []models.Prop{{
		ExternalID:      &ext,
		PlayerName:      pts.playerName,
		StatType:        pts.statType,
		Line:            line,
		Projection:      &res.Projection,
		Edge:            &res.Edge,
		ProbabilityOver: &res.ProbabilityOver,
		Confidence:      &res.Confidence,
	}}
	s.Snapshots.UpdateFrom(ctx, props)

	merged := s.Snapshots.MergeWithCache(ctx, []models.Prop{{
		ExternalID: &ext,
		PlayerName: pts.playerName,
		StatType:   pts.statType,
		Line:       line,
	}})
	if merged[0].Projection == nil || *merged[0].Projection != res.Projection {
		t.Fatalf("snapshot did not survive the pipeline: %+v", merged[0].Projection)
	}
	if merged[0].Confidence == nil || *merged[0].Confidence != res.Confidence {
		t.Fatalf("confidence missing after merge: %+v", merged[0].Confidence)
	}
}
