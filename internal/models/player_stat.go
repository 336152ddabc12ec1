/**
 * @description
 * PlayerStat database model.
 * Maps to the 'player_stats' table: one row per player per historical game.
 * Rows are immutable once recorded and read-only inputs to projections.
 *
 * @dependencies
 * - gorm.io/gorm
 */

package models

import "time"

// PlayerStat represents one historical box-score line for a player
// Maps to the 'player_stats' table
type PlayerStat struct {
	ID                  string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	PlayerName          string    `gorm:"column:player_name;index" json:"player_name"`
	PlayerID            *string   `gorm:"column:player_id" json:"player_id"`
	GameDate            time.Time `gorm:"column:game_date" json:"game_date"`
	Opponent            *string   `gorm:"column:opponent" json:"opponent"`
	Minutes             *float64  `gorm:"column:minutes" json:"minutes"`
	Points              *float64  `gorm:"column:points" json:"points"`
	Rebounds            *float64  `gorm:"column:rebounds" json:"rebounds"`
	Assists             *float64  `gorm:"column:assists" json:"assists"`
	Steals              *float64  `gorm:"column:steals" json:"steals"`
	Blocks              *float64  `gorm:"column:blocks" json:"blocks"`
	Turnovers           *float64  `gorm:"column:turnovers" json:"turnovers"`
	ThreePointersMade   *float64  `gorm:"column:three_pointers_made" json:"three_pointers_made"`
	FieldGoalsMade      *float64  `gorm:"column:field_goals_made" json:"field_goals_made"`
	FieldGoalsAttempted *float64  `gorm:"column:field_goals_attempted" json:"field_goals_attempted"`
	FreeThrowsMade      *float64  `gorm:"column:free_throws_made" json:"free_throws_made"`
	FreeThrowsAttempted *float64  `gorm:"column:free_throws_attempted" json:"free_throws_attempted"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName overrides the table name used by PlayerStat to `player_stats`
func (PlayerStat) TableName() string {
	return "player_stats"
}
