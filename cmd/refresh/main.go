package main

import (
	"context"
	"log"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/courtedge-project/backend/internal/config"
	"github.com/courtedge-project/backend/internal/db"
	"github.com/courtedge-project/backend/internal/models"
	"github.com/courtedge-project/backend/internal/oddsapi"
	"github.com/courtedge-project/backend/internal/prizepicks"
	"github.com/courtedge-project/backend/internal/projection"
	"github.com/courtedge-project/backend/internal/services"
	"github.com/courtedge-project/backend/internal/sportsbook"
)

// One-shot board refresh for cron or manual runs. Uses an in-memory redis so
// it needs nothing but Postgres; the API's caches are invalidated next read
// through their TTL.
func main() {
	log.Println("🚀 Starting manual prop board refresh...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pgDB, err := db.ConnectPostgres(cfg)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}

	mr, err := miniredis.Run()
	if err != nil {
		log.Fatalf("failed to start in-memory redis: %v", err)
	}
	defer mr.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	oddsCache := sportsbook.NewCache(cfg.Feeds.OddsCachePath)
	if err := oddsCache.Load(); err != nil {
		log.Printf("⚠️ failed to load sportsbook odds cache: %v", err)
	}

	service := services.NewRefreshService(
		pgDB,
		redisClient,
		prizepicks.NewClient(cfg),
		oddsapi.NewClient(cfg),
		oddsCache,
		projection.NewFilter(cfg.Projection.ExcludedStatTypes),
	)

	ctx := context.Background()

	result, err := service.Refresh(ctx)
	if err != nil {
		log.Fatalf("board refresh failed: %v", err)
	}
	log.Printf("✅ %s: %d games, %d props", result.Message, result.GamesCount, result.PropsCount)

	if cfg.Feeds.OddsAPIKey != "" {
		updated, err := service.SyncSportsbookOdds(ctx)
		if err != nil {
			log.Printf("⚠️ sportsbook odds sync failed: %v", err)
		} else {
			log.Printf("✅ Sportsbook odds attached to %d props", updated)
		}
	}

	var propCount int64
	if err := pgDB.Model(&models.Prop{}).Count(&propCount).Error; err == nil {
		log.Printf("✅ Props stored in Postgres: %d", propCount)
	} else {
		log.Printf("⚠️ Failed to count props: %v", err)
	}

	log.Println("✅ Manual refresh completed successfully.")
}
