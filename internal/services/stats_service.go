/**
 * @description
 * Service layer for historical player stats and matchup research.
 * Reads the player_stats game log, computes per-stat averages and hit rates
 * against a line, and builds matchup reports from the defensive rank and
 * pace tables.
 *
 * @dependencies
 * - backend/internal/models
 * - backend/internal/projection
 * - backend/internal/nba
 * - gorm.io/gorm
 */

package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/courtedge-project/backend/internal/models"
	"github.com/courtedge-project/backend/internal/nba"
	"github.com/courtedge-project/backend/internal/projection"
)

const defaultStatsLimit = 15

type StatsService struct {
	DB *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db}
}

// GetRecentStats returns a player's latest game logs, newest first.
// Name matching is case-insensitive because feed casing drifts.
func (s *StatsService) GetRecentStats(ctx context.Context, playerName string, limit int) ([]models.PlayerStat, error) {
	if limit <= 0 {
		limit = defaultStatsLimit
	}

	var stats []models.PlayerStat
	if err := s.DB.WithContext(ctx).
		Where("player_name ILIKE ?", playerName).
		Order("game_date DESC").
		Limit(limit).
		Find(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// GetStatsAgainstOpponent returns a player's game logs against one team.
// The opponent column holds free-form markers ("vs BOS", "@BOS", "BOS"), so
// the match is a substring test in both directions on the uppercased values.
func (s *StatsService) GetStatsAgainstOpponent(ctx context.Context, playerName, opponentAbbr string) ([]models.PlayerStat, error) {
	abbr := nba.NormalizeTeam(opponentAbbr)

	var stats []models.PlayerStat
	if err := s.DB.WithContext(ctx).
		Where("player_name ILIKE ?", playerName).
		Where("UPPER(opponent) LIKE ? OR ? LIKE '%' || UPPER(opponent) || '%'", "%"+abbr+"%", abbr).
		Order("game_date DESC").
		Find(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// StatSummary aggregates a game log slice for one stat type.
type StatSummary struct {
	StatType string  `json:"stat_type"`
	Games    int     `json:"games"`
	Average  float64 `json:"average"`
	Hits     int     `json:"hits"`
	HitRate  float64 `json:"hit_rate"`
}

// Summarize computes the average and over-the-line hit rate for a stat type
// across a game log. Games where the stat is not recorded are skipped.
func Summarize(stats []models.PlayerStat, statType string, line float64) StatSummary {
	summary := StatSummary{StatType: statType}

	var total float64
	for i := range stats {
		v, ok := projection.StatValue(&stats[i], statType)
		if !ok {
			continue
		}
		summary.Games++
		total += v
		if v > line {
			summary.Hits++
		}
	}

	if summary.Games > 0 {
		summary.Average = total / float64(summary.Games)
		summary.HitRate = float64(summary.Hits) / float64(summary.Games)
	}
	return summary
}

// MatchupReport describes how an opposing defense and game pace bear on a
// player's props.
type MatchupReport struct {
	PlayerName      string  `json:"player_name"`
	Position        string  `json:"position"`
	PlayerTeam      string  `json:"player_team,omitempty"`
	Opponent        string  `json:"opponent"`
	DefensiveRank   int     `json:"defensive_rank"`
	DefensiveRating string  `json:"defensive_rating"`
	AdjustmentPct   float64 `json:"adjustment_pct"`
	PlayerTeamPace  float64 `json:"player_team_pace"`
	OpponentPace    float64 `json:"opponent_pace"`
	PaceTempo       string  `json:"pace_tempo"`
}

// GetMatchup builds the matchup report for a player against an opponent.
// The player's own team is resolved from the current prop board when not
// supplied; pace falls back to the league average for unknown teams.
func (s *StatsService) GetMatchup(ctx context.Context, playerName, opponentAbbr, teamAbbr string) (*MatchupReport, error) {
	opponent := nba.NormalizeTeam(opponentAbbr)

	if teamAbbr == "" {
		var prop models.Prop
		err := s.DB.WithContext(ctx).
			Where("player_name ILIKE ? AND team IS NOT NULL", playerName).
			Order("updated_at DESC").
			First(&prop).Error
		if err == nil && prop.Team != nil {
			teamAbbr = *prop.Team
		} else if err != nil && err != gorm.ErrRecordNotFound {
			return nil, err
		}
	}
	team := nba.NormalizeTeam(teamAbbr)

	rank, _ := nba.DefensiveRank(opponent, playerName)

	playerPace := nba.LeagueAveragePace
	if ts, ok := nba.TeamStats(team); ok {
		playerPace = ts.Pace
	}
	oppPace := nba.LeagueAveragePace
	if ts, ok := nba.TeamStats(opponent); ok {
		oppPace = ts.Pace
	}

	return &MatchupReport{
		PlayerName:      playerName,
		Position:        nba.PlayerPosition(playerName),
		PlayerTeam:      team,
		Opponent:        opponent,
		DefensiveRank:   rank,
		DefensiveRating: projection.DefensiveRating(rank),
		AdjustmentPct:   projection.DefensiveAdjustmentPct(rank),
		PlayerTeamPace:  playerPace,
		OpponentPace:    oppPace,
		PaceTempo:       projection.PaceTempo(playerPace, oppPace),
	}, nil
}
