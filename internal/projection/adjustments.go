/**
 * @description
 * Matchup-derived metrics: defensive rating bands, the piecewise-linear
 * defensive adjustment curve, and pace tempo classification. These feed the
 * informational matchup report; the projection model does not consume them.
 *
 * @dependencies
 * - backend/internal/nba: league-average pace baseline
 */

package projection

import "github.com/courtedge-project/backend/internal/nba"

// Defensive rating bands over the 1..150 matchup ranks.
const (
	RatingUnknown = "Unknown"
	RatingElite   = "Elite"
	RatingAverage = "Average"
	RatingWeak    = "Weak"
)

// Pace tempo labels.
const (
	TempoFast    = "Fast"
	TempoAverage = "Average"
	TempoSlow    = "Slow"
)

// DefensiveRating buckets a matchup rank. rank<=0 means no data.
func DefensiveRating(rank int) string {
	if rank <= 0 {
		return RatingUnknown
	}
	if rank <= 50 {
		return RatingElite
	}
	if rank <= 100 {
		return RatingAverage
	}
	return RatingWeak
}

// DefensiveAdjustmentPct converts a matchup rank into a percentage swing on a
// player's expected output: negative against elite defenses, near zero
// against average ones, positive against weak ones. Linear inside each band,
// with the same thresholds as DefensiveRating. rank<=0 yields 0.
func DefensiveAdjustmentPct(rank int) float64 {
	if rank <= 0 {
		return 0
	}
	if rank <= 50 {
		adj := 0.88 + (float64(rank)/50)*0.07
		return (1 - adj) * -100
	}
	if rank <= 100 {
		adj := 0.95 + (float64(rank-50)/50)*0.10
		return (adj - 1) * 100
	}
	adj := 1.05 + (float64(rank-100)/50)*0.13
	return (adj - 1) * 100
}

// PaceTempo classifies the expected game tempo from the two teams' paces.
func PaceTempo(teamPaceA, teamPaceB float64) string {
	avgPace := (teamPaceA + teamPaceB) / 2
	if avgPace > nba.LeagueAveragePace+2 {
		return TempoFast
	}
	if avgPace < nba.LeagueAveragePace-2 {
		return TempoSlow
	}
	return TempoAverage
}
