/**
 * @description
 * Prop database model.
 * Maps to the 'props' table in PostgreSQL. A row is one player-stat-line
 * betting proposition. The line is always present; projection, edge,
 * probability_over and confidence stay NULL until the projection model runs.
 *
 * @dependencies
 * - gorm.io/gorm
 */

package models

import (
	"fmt"
	"time"
)

// Confidence labels accepted on props. The projection model only ever emits
// medium and low; high is a valid display value written by external tooling.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Prop represents a single player prop
// Maps to the 'props' table
type Prop struct {
	ID         string  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	GameID     *string `gorm:"column:game_id;index" json:"game_id"`
	ExternalID *string `gorm:"column:external_id;index" json:"external_id"`
	PlayerName string  `gorm:"column:player_name" json:"player_name"`
	PlayerID   *string `gorm:"column:player_id" json:"player_id"`
	Team       *string `gorm:"column:team" json:"team"`
	StatType   string  `gorm:"column:stat_type" json:"stat_type"`
	Line       float64 `gorm:"column:line" json:"line"`

	// Populated by the projection model, NULL until then.
	// Edge is a signed fraction (probability_over - 0.5), never a percentage.
	Projection      *float64 `gorm:"column:projection" json:"projection"`
	Edge            *float64 `gorm:"column:edge" json:"edge"`
	ProbabilityOver *float64 `gorm:"column:probability_over" json:"probability_over"`
	Confidence      *string  `gorm:"column:confidence" json:"confidence"`

	// Per-sportsbook quotes, filled by the odds sync.
	PrizePicksOdds      *float64 `gorm:"column:prizepicks_odds" json:"prizepicks_odds"`
	DraftKingsLine      *float64 `gorm:"column:draftkings_line" json:"draftkings_line"`
	DraftKingsOverOdds  *float64 `gorm:"column:draftkings_over_odds" json:"draftkings_over_odds"`
	DraftKingsUnderOdds *float64 `gorm:"column:draftkings_under_odds" json:"draftkings_under_odds"`
	FanDuelLine         *float64 `gorm:"column:fanduel_line" json:"fanduel_line"`
	FanDuelOverOdds     *float64 `gorm:"column:fanduel_over_odds" json:"fanduel_over_odds"`
	FanDuelUnderOdds    *float64 `gorm:"column:fanduel_under_odds" json:"fanduel_under_odds"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName overrides the table name used by Prop to `props`
func (Prop) TableName() string {
	return "props"
}

// CacheKey derives the stable identity used by the projection snapshot store:
// external_id when present, else player|stat|line with the line at 1 decimal.
// The fallback key survives the delete/insert refresh cycle, which regenerates
// row ids.
func (p *Prop) CacheKey() string {
	if p.ExternalID != nil && *p.ExternalID != "" {
		return *p.ExternalID
	}
	return fmt.Sprintf("%s|%s|%.1f", p.PlayerName, p.StatType, p.Line)
}
