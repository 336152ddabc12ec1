/**
 * @description
 * Game database model.
 * Maps to the 'games' table in PostgreSQL. Rows are owned by the refresh
 * pipeline and bulk-replaced on every refresh cycle.
 *
 * @dependencies
 * - gorm.io/gorm
 */

package models

import "time"

// Game represents a scheduled NBA game
// Maps to the 'games' table
type Game struct {
	ID           string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	ExternalID   *string   `gorm:"column:external_id;index" json:"external_id"`
	HomeTeam     string    `gorm:"column:home_team" json:"home_team"`
	AwayTeam     string    `gorm:"column:away_team" json:"away_team"`
	HomeTeamAbbr *string   `gorm:"column:home_team_abbr" json:"home_team_abbr"`
	AwayTeamAbbr *string   `gorm:"column:away_team_abbr" json:"away_team_abbr"`
	GameTime     time.Time `gorm:"column:game_time" json:"game_time"`
	Status       *string   `gorm:"column:status" json:"status"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName overrides the table name used by Game to `games`
func (Game) TableName() string {
	return "games"
}

// GameWithProps is the API shape for a game joined with its props.
// TopProps holds the subset with a positive edge.
type GameWithProps struct {
	Game
	Props    []Prop `gorm:"-" json:"props"`
	TopProps []Prop `gorm:"-" json:"topProps"`
}
