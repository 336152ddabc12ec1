/**
 * @description
 * Types for The Odds API v4 responses and the market-key to stat-type mapping
 * used to normalize sportsbook player-prop markets into the internal
 * stat-type vocabulary.
 */

package oddsapi

import (
	"sort"
	"time"
)

// Event is one scheduled game as listed by the odds feed.
type Event struct {
	ID           string    `json:"id"`
	SportKey     string    `json:"sport_key"`
	CommenceTime time.Time `json:"commence_time"`
	HomeTeam     string    `json:"home_team"`
	AwayTeam     string    `json:"away_team"`
}

// EventOdds is the per-event odds payload across bookmakers.
type EventOdds struct {
	ID         string      `json:"id"`
	HomeTeam   string      `json:"home_team"`
	AwayTeam   string      `json:"away_team"`
	Bookmakers []Bookmaker `json:"bookmakers"`
}

// Bookmaker groups the markets quoted by one book.
type Bookmaker struct {
	Key     string   `json:"key"`
	Title   string   `json:"title"`
	Markets []Market `json:"markets"`
}

// Market is one prop market (e.g. player_points) with its outcomes.
type Market struct {
	Key      string    `json:"key"`
	Outcomes []Outcome `json:"outcomes"`
}

// Outcome is one side of a quote. For player props, Description carries the
// player name, Name is "Over" or "Under", Point the line, Price the American
// odds.
type Outcome struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Point       float64 `json:"point"`
}

// statTypeByMarket maps odds-feed market keys to the internal stat vocabulary.
var statTypeByMarket = map[string]string{
	"player_points":                  "Points",
	"player_rebounds":                "Rebounds",
	"player_assists":                 "Assists",
	"player_threes":                  "3-Pointers Made",
	"player_blocks":                  "Blocks",
	"player_steals":                  "Steals",
	"player_turnovers":               "Turnovers",
	"player_points_rebounds_assists": "Pts+Rebs+Asts",
	"player_points_rebounds":         "Pts+Rebs",
	"player_points_assists":          "Pts+Asts",
	"player_rebounds_assists":        "Rebs+Asts",
	"player_blocks_steals":           "Blks+Stls",
}

// MarketKeys lists every player-prop market the sync requests.
func MarketKeys() []string {
	keys := make([]string, 0, len(statTypeByMarket))
	for k := range statTypeByMarket {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// StatTypeForMarket normalizes a market key into the internal stat type.
func StatTypeForMarket(marketKey string) (string, bool) {
	st, ok := statTypeByMarket[marketKey]
	return st, ok
}
