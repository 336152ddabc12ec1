package prizepicks

import (
	"encoding/json"
	"testing"
)

const samplePayload = `{
  "data": [
    {
      "id": "proj-1",
      "type": "projection",
      "attributes": {
        "line_score": 25.5,
        "stat_type": "Points",
        "start_time": "2026-01-15T00:00:00Z",
        "status": "pre_game",
        "game_id": "game-1"
      },
      "relationships": {
        "new_player": {"data": {"id": "player-1"}}
      }
    }
  ],
  "included": [
    {
      "type": "new_player",
      "id": "player-1",
      "attributes": {
        "display_name": "LeBron James",
        "team": "LAL",
        "team_name": "Los Angeles Lakers",
        "position": "SF"
      }
    },
    {
      "type": "game",
      "id": "game-1",
      "attributes": {
        "name": "Boston Celtics @ Los Angeles Lakers",
        "scheduled_at": "2026-01-15T03:00:00Z",
        "status": "scheduled"
      }
    },
    {
      "type": "league",
      "id": "7",
      "attributes": {"name": "NBA"}
    }
  ]
}`

func TestProjectionsResponseDecoding(t *testing.T) {
	var resp ProjectionsResponse
	if err := json.Unmarshal([]byte(samplePayload), &resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if len(resp.Data) != 1 {
		t.Fatalf("expected 1 projection, got %d", len(resp.Data))
	}

	proj := resp.Data[0]
	if proj.Attributes.LineScore != 25.5 {
		t.Errorf("line_score = %v, want 25.5", proj.Attributes.LineScore)
	}
	if proj.Attributes.StatType != "Points" {
		t.Errorf("stat_type = %q, want Points", proj.Attributes.StatType)
	}
	if proj.Relationships.NewPlayer.Data.ID != "player-1" {
		t.Errorf("player relationship = %q", proj.Relationships.NewPlayer.Data.ID)
	}
}

func TestPlayersIndex(t *testing.T) {
	var resp ProjectionsResponse
	if err := json.Unmarshal([]byte(samplePayload), &resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	players := resp.Players()
	if len(players) != 1 {
		t.Fatalf("expected 1 player, got %d", len(players))
	}

	p, ok := players["player-1"]
	if !ok {
		t.Fatal("player-1 missing from index")
	}
	if p.Attributes.DisplayName != "LeBron James" || p.Attributes.Team != "LAL" {
		t.Fatalf("unexpected player attributes: %+v", p.Attributes)
	}
}

func TestGamesIndexSkipsOtherTypes(t *testing.T) {
	var resp ProjectionsResponse
	if err := json.Unmarshal([]byte(samplePayload), &resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	games := resp.Games()
	if len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}

	g := games["game-1"]
	if g.Attributes.Name != "Boston Celtics @ Los Angeles Lakers" {
		t.Fatalf("unexpected game name: %q", g.Attributes.Name)
	}
}
