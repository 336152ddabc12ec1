/**
 * @description
 * Worker Service Entry Point.
 * Responsible for background tasks:
 * 1. Refreshing the prop board from the projections feed on a schedule.
 * 2. Syncing sportsbook odds on a slower cadence.
 *
 * @dependencies
 * - backend/internal/config
 * - backend/internal/db
 * - backend/internal/services
 */

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/courtedge-project/backend/internal/config"
	"github.com/courtedge-project/backend/internal/db"
	"github.com/courtedge-project/backend/internal/logger"
	"github.com/courtedge-project/backend/internal/oddsapi"
	"github.com/courtedge-project/backend/internal/prizepicks"
	"github.com/courtedge-project/backend/internal/projection"
	"github.com/courtedge-project/backend/internal/services"
	"github.com/courtedge-project/backend/internal/sportsbook"
)

const (
	refreshInterval  = 10 * time.Minute
	oddsSyncInterval = time.Hour
)

func main() {
	logger.Info("🔥 Starting CourtEdge Worker...")

	// 1. Load Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config: %v", err)
	}

	// 2. Connect DBs
	pgDB, err := db.ConnectPostgres(cfg)
	if err != nil {
		logger.Fatal("Postgres connection failed: %v", err)
	}

	redisClient, err := db.ConnectRedis(cfg)
	if err != nil {
		logger.Fatal("Redis connection failed: %v", err)
	}

	// 3. Initialize Services
	oddsCache := sportsbook.NewCache(cfg.Feeds.OddsCachePath)
	if err := oddsCache.Load(); err != nil {
		logger.Error("Failed to load sportsbook odds cache: %v", err)
	}

	refreshService := services.NewRefreshService(
		pgDB,
		redisClient,
		prizepicks.NewClient(cfg),
		oddsapi.NewClient(cfg),
		oddsCache,
		projection.NewFilter(cfg.Projection.ExcludedStatTypes),
	)

	// 4. Context with Cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 5. Board Refresh Loop
	go func() {
		ticker := time.NewTicker(refreshInterval)
		defer ticker.Stop()

		refreshBoard(ctx, refreshService)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				refreshBoard(ctx, refreshService)
			}
		}
	}()

	// 6. Sportsbook Odds Loop
	// Runs on a slower cadence, each market request costs feed quota.
	if cfg.Feeds.OddsAPIKey != "" {
		go func() {
			ticker := time.NewTicker(oddsSyncInterval)
			defer ticker.Stop()

			syncOdds(ctx, refreshService)

			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					syncOdds(ctx, refreshService)
				}
			}
		}()
	} else {
		logger.Info("ODDS_API_KEY not set, sportsbook odds sync disabled")
	}

	// 7. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down worker...")
	cancel()

	time.Sleep(1 * time.Second) // Give in-flight requests time to settle
	logger.Info("Worker exited.")
}

func refreshBoard(ctx context.Context, rs *services.RefreshService) {
	logger.Info("🔄 Refreshing prop board...")

	result, err := rs.Refresh(ctx)
	if err != nil {
		logger.Error("Board refresh failed: %v", err)
		return
	}
	logger.Info("✅ %s: %d games, %d props", result.Message, result.GamesCount, result.PropsCount)
}

func syncOdds(ctx context.Context, rs *services.RefreshService) {
	logger.Info("🔄 Syncing sportsbook odds...")

	updated, err := rs.SyncSportsbookOdds(ctx)
	if err != nil {
		logger.Error("Sportsbook odds sync failed: %v", err)
		return
	}
	logger.Info("✅ Sportsbook odds attached to %d props", updated)
}
