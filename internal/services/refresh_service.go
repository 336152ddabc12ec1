/**
 * @description
 * Refresh pipeline for the prop board.
 * Pulls the PrizePicks projection feed, filters unwanted stat categories,
 * de-duplicates lines per player+stat, runs the projection model, attaches
 * sportsbook odds from the side cache, and bulk-replaces the games and props
 * tables in one transaction. Falls back to a deterministic demo board when
 * the upstream feed is unreachable or empty.
 *
 * @dependencies
 * - backend/internal/prizepicks
 * - backend/internal/oddsapi
 * - backend/internal/sportsbook
 * - backend/internal/projection
 * - backend/internal/propcache
 * - gorm.io/gorm
 * - github.com/redis/go-redis/v9
 *
 * @notes
 * - The replace runs under a Postgres advisory lock so overlapping refreshes
 *   (scheduler + manual job endpoint) serialize instead of interleaving.
 * - Serialization failures and deadlocks (40001 / 40P01) are retried with
 *   jittered backoff.
 */

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/courtedge-project/backend/internal/models"
	"github.com/courtedge-project/backend/internal/nba"
	"github.com/courtedge-project/backend/internal/oddsapi"
	"github.com/courtedge-project/backend/internal/prizepicks"
	"github.com/courtedge-project/backend/internal/projection"
	"github.com/courtedge-project/backend/internal/propcache"
	"github.com/courtedge-project/backend/internal/sportsbook"
)

const refreshLockKey = 7301

type RefreshService struct {
	DB         *gorm.DB
	Redis      *redis.Client
	PrizePicks *prizepicks.Client
	Odds       *oddsapi.Client
	OddsCache  *sportsbook.Cache
	Snapshots  *propcache.Store
	Filter     *projection.Filter
	Model      *projection.Model
}

func NewRefreshService(
	db *gorm.DB,
	rdb *redis.Client,
	ppClient *prizepicks.Client,
	oddsClient *oddsapi.Client,
	oddsCache *sportsbook.Cache,
	filter *projection.Filter,
) *RefreshService {
	return &RefreshService{
		DB:         db,
		Redis:      rdb,
		PrizePicks: ppClient,
		Odds:       oddsClient,
		OddsCache:  oddsCache,
		Snapshots:  propcache.NewStore(rdb),
		Filter:     filter,
		Model:      projection.NewModel(),
	}
}

// RefreshResult summarizes one refresh run.
type RefreshResult struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	GamesCount int    `json:"gamesCount"`
	PropsCount int    `json:"propsCount"`
}

// propGroup collects every quoted line for one player + stat type before
// base-line selection collapses them to a single prop.
type propGroup struct {
	externalID string
	playerName string
	playerID   string
	team       string
	statType   string
	gameKey    string
	lines      []float64
}

// Refresh rebuilds the prop board end to end.
func (s *RefreshService) Refresh(ctx context.Context) (*RefreshResult, error) {
	games, groups, source := s.loadBoard(ctx)

	if len(groups) == 0 {
		return &RefreshResult{Success: false, Message: "no projections available"}, nil
	}

	gamesByKey := make(map[string]*models.Game, len(games))
	for i := range games {
		if games[i].ExternalID != nil {
			gamesByKey[*games[i].ExternalID] = &games[i]
		}
	}

	props := make([]models.Prop, 0, len(groups))
	for _, g := range groups {
		line := projection.SelectBaseLine(g.lines)
		res := s.Model.Project(line, g.statType)

		prop := models.Prop{
			PlayerName:      g.playerName,
			StatType:        g.statType,
			Line:            line,
			Projection:      &res.Projection,
			Edge:            &res.Edge,
			ProbabilityOver: &res.ProbabilityOver,
			Confidence:      &res.Confidence,
		}
		if g.externalID != "" {
			id := g.externalID
			prop.ExternalID = &id
		}
		if g.playerID != "" {
			pid := g.playerID
			prop.PlayerID = &pid
		}
		if g.team != "" {
			team := nba.NormalizeTeam(g.team)
			prop.Team = &team
		}
		if game, ok := gamesByKey[g.gameKey]; ok {
			prop.GameID = &game.ID
		}

		s.attachSportsbookOdds(&prop)
		props = append(props, prop)
	}

	if err := s.replaceBoard(ctx, games, props); err != nil {
		return nil, err
	}

	s.Snapshots.UpdateFrom(ctx, props)
	s.invalidateListCaches(ctx)
	s.publishRefresh(ctx, len(games), len(props))

	return &RefreshResult{
		Success:    true,
		Message:    fmt.Sprintf("refreshed board from %s", source),
		GamesCount: len(games),
		PropsCount: len(props),
	}, nil
}

// loadBoard pulls the live feed, falling back to the demo board when the
// feed errors out or comes back empty.
func (s *RefreshService) loadBoard(ctx context.Context) ([]models.Game, []propGroup, string) {
	resp, err := s.PrizePicks.GetProjections(ctx)
	if err != nil {
		log.Printf("⚠️ PrizePicks fetch failed, using demo board: %v", err)
		games, groups := demoBoard()
		return games, groups, "demo"
	}
	if resp == nil || len(resp.Data) == 0 {
		log.Println("⚠️ PrizePicks board empty, using demo board")
		games, groups := demoBoard()
		return games, groups, "demo"
	}

	games, groups := s.buildFromFeed(resp)
	if len(groups) == 0 {
		games, groups = demoBoard()
		return games, groups, "demo"
	}
	return games, groups, "prizepicks"
}

// buildFromFeed converts the JSON:API payload into game rows and grouped
// lines. Game ids are assigned here so props can reference their game inside
// the same insert transaction.
func (s *RefreshService) buildFromFeed(resp *prizepicks.ProjectionsResponse) ([]models.Game, []propGroup) {
	players := resp.Players()
	feedGames := resp.Games()

	var games []models.Game
	gameIdx := make(map[string]int)
	groupIdx := make(map[string]int)
	var groups []propGroup

	ensureGame := func(gameID string, player prizepicks.Player) string {
		if gameID == "" {
			return ""
		}
		if _, ok := gameIdx[gameID]; ok {
			return gameID
		}

		game := models.Game{ID: uuid.NewString()}
		ext := gameID
		game.ExternalID = &ext

		if fg, ok := feedGames[gameID]; ok {
			away, home := splitMatchupName(fg.Attributes.Name)
			game.HomeTeam = home
			game.AwayTeam = away
			homeAbbr := nba.TeamAbbreviation(home)
			awayAbbr := nba.TeamAbbreviation(away)
			game.HomeTeamAbbr = &homeAbbr
			game.AwayTeamAbbr = &awayAbbr
			if t, err := time.Parse(time.RFC3339, fg.Attributes.ScheduledAt); err == nil {
				game.GameTime = t
			} else {
				game.GameTime = time.Now().UTC()
			}
			if fg.Attributes.Status != "" {
				status := fg.Attributes.Status
				game.Status = &status
			}
		} else {
			// The board references games the feed did not include. Pin the
			// player's own team as home and mark the opponent unknown.
			home := player.Attributes.TeamName
			if home == "" {
				home = player.Attributes.Team
			}
			game.HomeTeam = home
			game.AwayTeam = "Opponent"
			homeAbbr := nba.NormalizeTeam(player.Attributes.Team)
			awayAbbr := "OPP"
			game.HomeTeamAbbr = &homeAbbr
			game.AwayTeamAbbr = &awayAbbr
			game.GameTime = time.Now().UTC()
		}

		gameIdx[gameID] = len(games)
		games = append(games, game)
		return gameID
	}

	for _, proj := range resp.Data {
		if s.Filter.IsExcluded(proj.Attributes.StatType) {
			continue
		}

		player, ok := players[proj.Relationships.NewPlayer.Data.ID]
		if !ok || player.Attributes.DisplayName == "" {
			continue
		}

		gameKey := ensureGame(proj.Attributes.GameID, player)

		key := player.ID + "|" + proj.Attributes.StatType
		if idx, ok := groupIdx[key]; ok {
			groups[idx].lines = append(groups[idx].lines, proj.Attributes.LineScore)
			continue
		}

		groupIdx[key] = len(groups)
		groups = append(groups, propGroup{
			externalID: proj.ID,
			playerName: player.Attributes.DisplayName,
			playerID:   player.ID,
			team:       player.Attributes.Team,
			statType:   proj.Attributes.StatType,
			gameKey:    gameKey,
			lines:      []float64{proj.Attributes.LineScore},
		})
	}

	return games, groups
}

// attachSportsbookOdds backfills per-book columns from the odds side cache.
func (s *RefreshService) attachSportsbookOdds(prop *models.Prop) {
	if s.OddsCache == nil {
		return
	}
	entry, ok := s.OddsCache.Lookup(prop.PlayerName, prop.StatType)
	if !ok {
		return
	}
	if q := entry.DraftKings; q != nil {
		prop.DraftKingsLine = &q.Line
		prop.DraftKingsOverOdds = &q.OverOdds
		prop.DraftKingsUnderOdds = &q.UnderOdds
	}
	if q := entry.FanDuel; q != nil {
		prop.FanDuelLine = &q.Line
		prop.FanDuelOverOdds = &q.OverOdds
		prop.FanDuelUnderOdds = &q.UnderOdds
	}
}

// replaceBoard swaps the games and props tables atomically. Readers see the
// old board or the new board, never a mix.
func (s *RefreshService) replaceBoard(ctx context.Context, games []models.Game, props []models.Prop) error {
	unlock, lockErr := s.acquireRefreshLock(ctx)
	if lockErr != nil {
		return fmt.Errorf("failed to acquire refresh lock: %w", lockErr)
	}
	defer unlock()

	const maxRetries = 5
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			// Props first, they reference games.
			if err := tx.Where("1 = 1").Delete(&models.Prop{}).Error; err != nil {
				return err
			}
			if err := tx.Where("1 = 1").Delete(&models.Game{}).Error; err != nil {
				return err
			}
			if len(games) > 0 {
				if err := tx.CreateInBatches(games, 100).Error; err != nil {
					return err
				}
			}
			if len(props) > 0 {
				if err := tx.CreateInBatches(props, 100).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err == nil {
			break
		}

		if pgErr, ok := err.(*pgconn.PgError); ok && (pgErr.Code == "40P01" || pgErr.Code == "40001") {
			backoff := time.Duration(attempt*100+rand.Intn(100)) * time.Millisecond
			time.Sleep(backoff)
			continue
		}
		break
	}
	if err != nil {
		return fmt.Errorf("failed to replace prop board: %w", err)
	}
	return nil
}

func (s *RefreshService) acquireRefreshLock(ctx context.Context) (func(), error) {
	const maxAttempts = 30

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		var locked bool
		err := s.DB.WithContext(ctx).Raw("SELECT pg_try_advisory_lock(?)", refreshLockKey).Scan(&locked).Error
		if err != nil {
			return nil, err
		}
		if locked {
			return func() {
				if err := s.DB.WithContext(ctx).Exec("SELECT pg_advisory_unlock(?)", refreshLockKey).Error; err != nil {
					log.Printf("failed to release refresh lock: %v", err)
				}
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		backoff := time.Duration(100+rand.Intn(150)) * time.Millisecond
		time.Sleep(backoff)
	}

	return nil, fmt.Errorf("timeout acquiring refresh lock")
}

func (s *RefreshService) invalidateListCaches(ctx context.Context) {
	if err := s.Redis.Del(ctx, CacheKeyAllProps, CacheKeyGames, CacheKeyGamesWithProps).Err(); err != nil {
		log.Printf("Failed to invalidate list caches: %v", err)
	}
}

func (s *RefreshService) publishRefresh(ctx context.Context, gamesCount, propsCount int) {
	payload, err := json.Marshal(map[string]interface{}{
		"type":        "board_refresh",
		"games_count": gamesCount,
		"props_count": propsCount,
		"at":          time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	if err := s.Redis.Publish(ctx, PropUpdateChannel, payload).Err(); err != nil {
		log.Printf("Failed to publish refresh event: %v", err)
	}
}

// SyncSportsbookOdds pulls player prop quotes from the odds feed, rewrites
// the side cache, and backfills the per-book columns on stored props.
func (s *RefreshService) SyncSportsbookOdds(ctx context.Context) (int, error) {
	events, err := s.Odds.GetEvents(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch odds events: %w", err)
	}

	markets := oddsapi.MarketKeys()
	table := make(map[string]sportsbook.Entry)

	for _, ev := range events {
		odds, err := s.Odds.GetEventOdds(ctx, ev.ID, markets)
		if err != nil {
			// Quota exhaustion or a missing event should not sink the run.
			log.Printf("⚠️ Odds fetch failed for event %s: %v", ev.ID, err)
			continue
		}
		collectEventOdds(odds, table)
	}

	if len(table) == 0 {
		return 0, fmt.Errorf("odds feed returned no player prop quotes")
	}

	s.OddsCache.Replace(table)
	if err := s.OddsCache.Save(); err != nil {
		log.Printf("Failed to persist odds cache: %v", err)
	}

	updated := s.backfillPropOdds(ctx)
	s.invalidateListCaches(ctx)

	return updated, nil
}

// collectEventOdds folds one event's bookmaker quotes into the odds table.
func collectEventOdds(odds *oddsapi.EventOdds, table map[string]sportsbook.Entry) {
	for _, bm := range odds.Bookmakers {
		if bm.Key != "draftkings" && bm.Key != "fanduel" {
			continue
		}
		for _, market := range bm.Markets {
			statType, ok := oddsapi.StatTypeForMarket(market.Key)
			if !ok {
				continue
			}

			quotes := make(map[string]*sportsbook.Quote)
			for _, outcome := range market.Outcomes {
				if outcome.Description == "" {
					continue
				}
				q, ok := quotes[outcome.Description]
				if !ok {
					q = &sportsbook.Quote{Line: outcome.Point}
					quotes[outcome.Description] = q
				}
				switch outcome.Name {
				case "Over":
					q.OverOdds = outcome.Price
					q.Line = outcome.Point
				case "Under":
					q.UnderOdds = outcome.Price
				}
			}

			for player, q := range quotes {
				key := sportsbook.Key(player, statType)
				entry := table[key]
				switch bm.Key {
				case "draftkings":
					entry.DraftKings = q
				case "fanduel":
					entry.FanDuel = q
				}
				table[key] = entry
			}
		}
	}
}

// backfillPropOdds writes the cached book quotes onto matching prop rows.
func (s *RefreshService) backfillPropOdds(ctx context.Context) int {
	var props []models.Prop
	if err := s.DB.WithContext(ctx).Find(&props).Error; err != nil {
		log.Printf("Failed to load props for odds backfill: %v", err)
		return 0
	}

	updated := 0
	for i := range props {
		entry, ok := s.OddsCache.Lookup(props[i].PlayerName, props[i].StatType)
		if !ok {
			continue
		}

		updates := make(map[string]interface{})
		if q := entry.DraftKings; q != nil {
			updates["draftkings_line"] = q.Line
			updates["draftkings_over_odds"] = q.OverOdds
			updates["draftkings_under_odds"] = q.UnderOdds
		}
		if q := entry.FanDuel; q != nil {
			updates["fanduel_line"] = q.Line
			updates["fanduel_over_odds"] = q.OverOdds
			updates["fanduel_under_odds"] = q.UnderOdds
		}
		if len(updates) == 0 {
			continue
		}

		if err := s.DB.WithContext(ctx).Model(&models.Prop{}).Where("id = ?", props[i].ID).Updates(updates).Error; err != nil {
			log.Printf("Failed to backfill odds for prop %s: %v", props[i].ID, err)
			continue
		}
		updated++
	}
	return updated
}

// splitMatchupName parses the feed's "Away @ Home" game name.
func splitMatchupName(name string) (away, home string) {
	parts := strings.SplitN(name, " @ ", 2)
	if len(parts) == 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return name, name
}

// demoPlayer seeds one player's demo props.
type demoPlayer struct {
	name   string
	team   string
	game   int
	points float64
	rebs   float64
	asts   float64
	threes float64
}

// demoBoard builds a small deterministic slate so the product works without
// any upstream feed. Lines are the base value rounded to the nearest half.
func demoBoard() ([]models.Game, []propGroup) {
	type demoGame struct {
		home, away         string
		homeAbbr, awayAbbr string
	}
	demoGames := []demoGame{
		{"Los Angeles Lakers", "Boston Celtics", "LAL", "BOS"},
		{"Golden State Warriors", "Phoenix Suns", "GSW", "PHX"},
		{"Miami Heat", "New York Knicks", "MIA", "NYK"},
		{"Denver Nuggets", "Dallas Mavericks", "DEN", "DAL"},
	}

	demoPlayers := []demoPlayer{
		{"LeBron James", "LAL", 0, 25.4, 7.8, 8.1, 2.1},
		{"Austin Reaves", "LAL", 0, 18.2, 4.3, 5.6, 2.4},
		{"Jayson Tatum", "BOS", 0, 27.1, 8.4, 4.9, 3.2},
		{"Jaylen Brown", "BOS", 0, 23.5, 5.6, 3.7, 2.3},
		{"Stephen Curry", "GSW", 1, 26.8, 4.4, 5.1, 4.8},
		{"Draymond Green", "GSW", 1, 8.9, 6.8, 6.0, 1.1},
		{"Devin Booker", "PHX", 1, 26.1, 4.1, 6.9, 2.7},
		{"Kevin Durant", "PHX", 1, 27.3, 6.3, 4.4, 2.2},
		{"Bam Adebayo", "MIA", 2, 19.2, 10.1, 4.3, 0.4},
		{"Tyler Herro", "MIA", 2, 23.8, 5.2, 5.5, 3.4},
		{"Jalen Brunson", "NYK", 2, 28.1, 3.6, 6.6, 2.6},
		{"Karl-Anthony Towns", "NYK", 2, 24.4, 12.8, 3.1, 2.0},
		{"Nikola Jokic", "DEN", 3, 28.7, 12.7, 10.2, 1.3},
		{"Jamal Murray", "DEN", 3, 21.4, 3.9, 6.5, 2.5},
		{"Anthony Davis", "DAL", 3, 24.7, 11.6, 3.5, 0.6},
		{"Kyrie Irving", "DAL", 3, 24.1, 4.8, 5.2, 2.9},
	}

	games := make([]models.Game, len(demoGames))
	for i, dg := range demoGames {
		ext := fmt.Sprintf("demo-game-%d", i+1)
		homeAbbr := dg.homeAbbr
		awayAbbr := dg.awayAbbr
		status := "scheduled"
		games[i] = models.Game{
			ID:           uuid.NewString(),
			ExternalID:   &ext,
			HomeTeam:     dg.home,
			AwayTeam:     dg.away,
			HomeTeamAbbr: &homeAbbr,
			AwayTeamAbbr: &awayAbbr,
			GameTime:     time.Now().UTC().Add(time.Duration(i+4) * time.Hour).Truncate(time.Minute),
			Status:       &status,
		}
	}

	var groups []propGroup
	for _, p := range demoPlayers {
		stats := []struct {
			statType string
			base     float64
		}{
			{"Points", p.points},
			{"Rebounds", p.rebs},
			{"Assists", p.asts},
			{"3-Pointers Made", p.threes},
			{"Pts+Rebs+Asts", p.points + p.rebs + p.asts},
		}
		for _, st := range stats {
			groups = append(groups, propGroup{
				playerName: p.name,
				team:       p.team,
				statType:   st.statType,
				gameKey:    fmt.Sprintf("demo-game-%d", p.game+1),
				lines:      []float64{math.Round(st.base*2) / 2},
			})
		}
	}

	return games, groups
}
