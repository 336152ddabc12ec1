/**
 * @description
 * Types for the PrizePicks projections feed (JSON:API shaped payloads).
 * The feed delivers projections in `data` and the referenced players and
 * games in a polymorphic `included` array.
 */

package prizepicks

import "encoding/json"

// Projection is one prop line offered by PrizePicks.
type Projection struct {
	ID            string                  `json:"id"`
	Type          string                  `json:"type"`
	Attributes    ProjectionAttributes    `json:"attributes"`
	Relationships ProjectionRelationships `json:"relationships"`
}

// ProjectionAttributes carries the line itself.
type ProjectionAttributes struct {
	LineScore float64 `json:"line_score"`
	StatType  string  `json:"stat_type"`
	StartTime string  `json:"start_time"`
	Status    string  `json:"status"`
	GameID    string  `json:"game_id"`
}

// ProjectionRelationships links a projection to its player.
type ProjectionRelationships struct {
	NewPlayer Relationship `json:"new_player"`
}

// Relationship is a JSON:API relationship stub.
type Relationship struct {
	Data RelationshipData `json:"data"`
}

// RelationshipData identifies the related resource.
type RelationshipData struct {
	ID string `json:"id"`
}

// Player is a PrizePicks player resource from `included`.
type Player struct {
	ID         string           `json:"id"`
	Attributes PlayerAttributes `json:"attributes"`
}

// PlayerAttributes holds display fields for a player.
type PlayerAttributes struct {
	DisplayName string `json:"display_name"`
	Team        string `json:"team"`
	TeamName    string `json:"team_name"`
	Position    string `json:"position"`
}

// Game is a PrizePicks game resource from `included`.
type Game struct {
	ID         string         `json:"id"`
	Attributes GameAttributes `json:"attributes"`
}

// GameAttributes holds schedule fields for a game. Name is "Away @ Home".
type GameAttributes struct {
	Name        string `json:"name"`
	ScheduledAt string `json:"scheduled_at"`
	Status      string `json:"status"`
}

// includedItem defers attribute decoding until the type discriminator is known.
type includedItem struct {
	Type       string          `json:"type"`
	ID         string          `json:"id"`
	Attributes json.RawMessage `json:"attributes"`
}

// ProjectionsResponse is the full feed payload.
type ProjectionsResponse struct {
	Data     []Projection   `json:"data"`
	Included []includedItem `json:"included"`
}

// Players indexes the included player resources by id.
func (r *ProjectionsResponse) Players() map[string]Player {
	players := make(map[string]Player)
	for _, item := range r.Included {
		if item.Type != "new_player" {
			continue
		}
		var attrs PlayerAttributes
		if err := json.Unmarshal(item.Attributes, &attrs); err != nil {
			continue
		}
		players[item.ID] = Player{ID: item.ID, Attributes: attrs}
	}
	return players
}

// Games indexes the included game resources by id.
func (r *ProjectionsResponse) Games() map[string]Game {
	games := make(map[string]Game)
	for _, item := range r.Included {
		if item.Type != "game" {
			continue
		}
		var attrs GameAttributes
		if err := json.Unmarshal(item.Attributes, &attrs); err != nil {
			continue
		}
		games[item.ID] = Game{ID: item.ID, Attributes: attrs}
	}
	return games
}
