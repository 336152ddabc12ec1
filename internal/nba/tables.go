/**
 * @description
 * Static NBA lookup tables: per-team pace/defense stats, position-vs-defense
 * matchup ranks, player positions, and team name/abbreviation normalization.
 * The tables ship as embedded YAML so they can be refreshed independently of
 * the logic that reads them.
 *
 * @dependencies
 * - embed: data files compiled into the binary
 * - gopkg.in/yaml.v3: table parsing
 */

package nba

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/team_stats.yaml
var teamStatsYAML []byte

//go:embed data/defensive_matchups.yaml
var matchupsYAML []byte

//go:embed data/player_positions.yaml
var positionsYAML []byte

//go:embed data/team_names.yaml
var teamNamesYAML []byte

// LeagueAveragePace is the normalization baseline for tempo classification.
const LeagueAveragePace = 100.0

// DefaultPosition is assigned to players missing from the positions table.
const DefaultPosition = "SF"

// Positions recognized by the matchup table.
var Positions = []string{"PG", "SG", "SF", "PF", "C"}

// abbrAliases maps alternate franchise codes seen in upstream feeds to the
// canonical abbreviation used as the table key.
var abbrAliases = map[string]string{
	"PHO": "PHX",
	"TRA": "POR",
	"GS":  "GSW",
	"NY":  "NYK",
	"SA":  "SAS",
	"NO":  "NOP",
	"LAK": "LAL",
}

// TeamStat holds one team's tempo and defensive profile.
type TeamStat struct {
	Pace    float64 `yaml:"pace"`
	DefRtg  float64 `yaml:"def_rtg"`
	DRebPct float64 `yaml:"dreb_pct"`
	AstPct  float64 `yaml:"ast_pct"`
}

var (
	loadOnce  sync.Once
	loadErr   error
	teamStats map[string]TeamStat
	matchups  map[string]map[string]int
	positions map[string]string
	teamNames map[string]string
)

func load() {
	loadOnce.Do(func() {
		if err := yaml.Unmarshal(teamStatsYAML, &teamStats); err != nil {
			loadErr = fmt.Errorf("parse team_stats.yaml: %w", err)
			return
		}
		if err := yaml.Unmarshal(matchupsYAML, &matchups); err != nil {
			loadErr = fmt.Errorf("parse defensive_matchups.yaml: %w", err)
			return
		}
		if err := yaml.Unmarshal(positionsYAML, &positions); err != nil {
			loadErr = fmt.Errorf("parse player_positions.yaml: %w", err)
			return
		}
		if err := yaml.Unmarshal(teamNamesYAML, &teamNames); err != nil {
			loadErr = fmt.Errorf("parse team_names.yaml: %w", err)
			return
		}
	})
	if loadErr != nil {
		// Embedded data is part of the build; a parse failure is a packaging bug.
		panic(loadErr)
	}
}

// NormalizeTeam resolves abbreviation aliases to the canonical team code.
// Unknown codes pass through uppercased.
func NormalizeTeam(abbr string) string {
	if abbr == "" {
		return ""
	}
	upper := strings.ToUpper(strings.TrimSpace(abbr))
	if canonical, ok := abbrAliases[upper]; ok {
		return canonical
	}
	return upper
}

// TeamAbbreviation maps a full franchise name to its abbreviation. Unknown
// names fall back to the first three letters uppercased.
func TeamAbbreviation(teamName string) string {
	load()
	if abbr, ok := teamNames[teamName]; ok {
		return abbr
	}
	trimmed := strings.TrimSpace(teamName)
	if len(trimmed) > 3 {
		trimmed = trimmed[:3]
	}
	return strings.ToUpper(trimmed)
}

// TeamStats returns the tempo/defense profile for a team, normalizing the
// abbreviation first.
func TeamStats(abbr string) (TeamStat, bool) {
	load()
	stat, ok := teamStats[NormalizeTeam(abbr)]
	return stat, ok
}

// PlayerPosition resolves a player name to PG/SG/SF/PF/C, defaulting to SF.
func PlayerPosition(playerName string) string {
	load()
	if pos, ok := positions[playerName]; ok {
		return pos
	}
	return DefaultPosition
}

// DefensiveRank returns the opponent's 1..150 rank defending the given
// player's position. ok is false when the opponent or position is unknown.
func DefensiveRank(opponentAbbr, playerName string) (int, bool) {
	load()
	byPosition, ok := matchups[NormalizeTeam(opponentAbbr)]
	if !ok {
		return 0, false
	}
	rank, ok := byPosition[PlayerPosition(playerName)]
	return rank, ok
}
