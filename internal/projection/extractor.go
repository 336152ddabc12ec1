/**
 * @description
 * Stat value extractor.
 * Maps a raw box-score row and a stat-type label to a numeric value.
 * Composite stats (e.g. Pts+Rebs+Asts) sum their constituents treating a
 * missing constituent as zero, so a composite always yields a value; simple
 * stats report absence when the underlying field is missing.
 *
 * @dependencies
 * - backend/internal/models
 */

package projection

import (
	"strings"

	"github.com/courtedge-project/backend/internal/models"
)

// StatValue extracts the value of statType from one box-score row.
// Matching is case-insensitive against the fixed vocabulary; unrecognized
// stat types report ok=false. Pure function, never panics.
func StatValue(stat *models.PlayerStat, statType string) (float64, bool) {
	switch strings.ToLower(statType) {
	case "points":
		return deref(stat.Points)
	case "rebounds":
		return deref(stat.Rebounds)
	case "assists":
		return deref(stat.Assists)
	case "steals":
		return deref(stat.Steals)
	case "blocks":
		return deref(stat.Blocks)
	case "turnovers":
		return deref(stat.Turnovers)
	case "3-pointers made", "threes":
		return deref(stat.ThreePointersMade)
	case "pts+rebs+asts":
		return zeroed(stat.Points) + zeroed(stat.Rebounds) + zeroed(stat.Assists), true
	case "pts+rebs":
		return zeroed(stat.Points) + zeroed(stat.Rebounds), true
	case "pts+asts":
		return zeroed(stat.Points) + zeroed(stat.Assists), true
	case "rebs+asts":
		return zeroed(stat.Rebounds) + zeroed(stat.Assists), true
	case "blks+stls":
		return zeroed(stat.Blocks) + zeroed(stat.Steals), true
	default:
		return 0, false
	}
}

func deref(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}

func zeroed(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
