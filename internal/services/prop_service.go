/**
 * @description
 * Read-side service for props and games.
 * Serves board reads Redis-first with a Postgres fallback, merges projection
 * snapshots from the cache layer so fields survive upstream dropouts, and
 * re-applies the stat-type exclusion filter in case the configuration
 * tightened after the last refresh.
 *
 * @dependencies
 * - backend/internal/models
 * - backend/internal/propcache
 * - backend/internal/projection
 * - gorm.io/gorm
 * - github.com/redis/go-redis/v9
 */

package services

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/courtedge-project/backend/internal/models"
	"github.com/courtedge-project/backend/internal/projection"
	"github.com/courtedge-project/backend/internal/propcache"
)

const (
	CacheKeyAllProps       = "props:all"
	CacheKeyGames          = "games:all"
	CacheKeyGamesWithProps = "games:with_props"
	CacheTTL               = 5 * time.Minute

	PropUpdateChannel = "props:updates"
)

type PropService struct {
	DB        *gorm.DB
	Redis     *redis.Client
	Snapshots *propcache.Store
	Filter    *projection.Filter
}

func NewPropService(db *gorm.DB, rdb *redis.Client, filter *projection.Filter) *PropService {
	return &PropService{
		DB:        db,
		Redis:     rdb,
		Snapshots: propcache.NewStore(rdb),
		Filter:    filter,
	}
}

// GetProps returns every stored prop, best edge first, preferring Cache -> DB
func (s *PropService) GetProps(ctx context.Context) ([]models.Prop, error) {
	// 1. Try Redis
	val, err := s.Redis.Get(ctx, CacheKeyAllProps).Result()
	if err == nil {
		var props []models.Prop
		if err := json.Unmarshal([]byte(val), &props); err == nil {
			return props, nil
		}
		// If unmarshal fails, fall through to DB
	}

	// 2. Fallback to DB
	var props []models.Prop
	if err := s.DB.WithContext(ctx).Order("edge DESC NULLS LAST").Find(&props).Error; err != nil {
		return nil, err
	}

	props = s.prepare(ctx, props)

	data, err := json.Marshal(props)
	if err != nil {
		log.Printf("Failed to marshal props for cache: %v", err)
	} else {
		if err := s.Redis.Set(ctx, CacheKeyAllProps, data, CacheTTL).Err(); err != nil {
			log.Printf("Failed to set props cache: %v", err)
		}
	}

	return props, nil
}

// GetGames returns the current slate ordered by tip-off time.
func (s *PropService) GetGames(ctx context.Context) ([]models.Game, error) {
	val, err := s.Redis.Get(ctx, CacheKeyGames).Result()
	if err == nil {
		var games []models.Game
		if err := json.Unmarshal([]byte(val), &games); err == nil {
			return games, nil
		}
	}

	var games []models.Game
	if err := s.DB.WithContext(ctx).Order("game_time ASC").Find(&games).Error; err != nil {
		return nil, err
	}

	data, err := json.Marshal(games)
	if err != nil {
		log.Printf("Failed to marshal games for cache: %v", err)
	} else {
		if err := s.Redis.Set(ctx, CacheKeyGames, data, CacheTTL).Err(); err != nil {
			log.Printf("Failed to set games cache: %v", err)
		}
	}

	return games, nil
}

// GetGame returns one game by id. Missing rows surface as
// gorm.ErrRecordNotFound for the handler to map to a 404.
func (s *PropService) GetGame(ctx context.Context, id string) (*models.Game, error) {
	var game models.Game
	if err := s.DB.WithContext(ctx).First(&game, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

// GetGameProps returns the props attached to one game, best edge first.
func (s *PropService) GetGameProps(ctx context.Context, gameID string) ([]models.Prop, error) {
	var props []models.Prop
	if err := s.DB.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("edge DESC NULLS LAST").
		Find(&props).Error; err != nil {
		return nil, err
	}
	return s.prepare(ctx, props), nil
}

// GetGamesWithProps returns the slate with props nested per game, plus a
// topProps subset holding only positive-edge plays.
func (s *PropService) GetGamesWithProps(ctx context.Context) ([]models.GameWithProps, error) {
	val, err := s.Redis.Get(ctx, CacheKeyGamesWithProps).Result()
	if err == nil {
		var out []models.GameWithProps
		if err := json.Unmarshal([]byte(val), &out); err == nil {
			return out, nil
		}
	}

	var games []models.Game
	if err := s.DB.WithContext(ctx).Order("game_time ASC").Find(&games).Error; err != nil {
		return nil, err
	}

	var props []models.Prop
	if err := s.DB.WithContext(ctx).Order("edge DESC NULLS LAST").Find(&props).Error; err != nil {
		return nil, err
	}
	props = s.prepare(ctx, props)

	byGame := make(map[string][]models.Prop)
	for _, p := range props {
		if p.GameID == nil {
			continue
		}
		byGame[*p.GameID] = append(byGame[*p.GameID], p)
	}

	out := make([]models.GameWithProps, 0, len(games))
	for _, g := range games {
		gp := models.GameWithProps{Game: g, Props: byGame[g.ID]}
		for _, p := range gp.Props {
			if p.Edge != nil && *p.Edge > 0 {
				gp.TopProps = append(gp.TopProps, p)
			}
		}
		out = append(out, gp)
	}

	data, err := json.Marshal(out)
	if err != nil {
		log.Printf("Failed to marshal games with props for cache: %v", err)
	} else {
		if err := s.Redis.Set(ctx, CacheKeyGamesWithProps, data, CacheTTL).Err(); err != nil {
			log.Printf("Failed to set games with props cache: %v", err)
		}
	}

	return out, nil
}

// prepare applies the exclusion filter, merges cached projection snapshots,
// and restores the edge ordering the merge may have changed.
func (s *PropService) prepare(ctx context.Context, props []models.Prop) []models.Prop {
	kept := props[:0]
	for _, p := range props {
		if s.Filter.IsExcluded(p.StatType) {
			continue
		}
		kept = append(kept, p)
	}

	merged := s.Snapshots.MergeWithCache(ctx, kept)
	s.Snapshots.UpdateFrom(ctx, merged)

	sort.SliceStable(merged, func(i, j int) bool {
		ei, ej := merged[i].Edge, merged[j].Edge
		if ei == nil {
			return false
		}
		if ej == nil {
			return true
		}
		return *ei > *ej
	})

	return merged
}
