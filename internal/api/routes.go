/**
 * @description
 * API Route definitions.
 * Sets up the router groups, wires services to handlers, and guards the job
 * trigger endpoints with the shared-secret middleware.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - backend/internal/api/handlers
 * - backend/internal/api/middleware
 * - backend/internal/services
 */

package api

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/courtedge-project/backend/internal/api/handlers"
	"github.com/courtedge-project/backend/internal/api/middleware"
	"github.com/courtedge-project/backend/internal/config"
	"github.com/courtedge-project/backend/internal/oddsapi"
	"github.com/courtedge-project/backend/internal/prizepicks"
	"github.com/courtedge-project/backend/internal/projection"
	"github.com/courtedge-project/backend/internal/services"
	"github.com/courtedge-project/backend/internal/sportsbook"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {
	// 1. Initialize shared components
	filter := projection.NewFilter(cfg.Projection.ExcludedStatTypes)

	oddsCache := sportsbook.NewCache(cfg.Feeds.OddsCachePath)
	if err := oddsCache.Load(); err != nil {
		log.Printf("⚠️ Failed to load sportsbook odds cache: %v", err)
	}

	// 2. Initialize Services
	propService := services.NewPropService(db, rdb, filter)
	statsService := services.NewStatsService(db)
	refreshService := services.NewRefreshService(
		db,
		rdb,
		prizepicks.NewClient(cfg),
		oddsapi.NewClient(cfg),
		oddsCache,
		filter,
	)

	// 3. Initialize Handlers
	propHandler := handlers.NewPropHandler(propService)
	gameHandler := handlers.NewGameHandler(propService)
	playerHandler := handlers.NewPlayerHandler(statsService)
	jobHandler := handlers.NewJobHandler(refreshService)

	// 4. Define Routes
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Public Routes
	v1.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Game Routes (Public)
	games := v1.Group("/games")
	games.Get("/with-props", gameHandler.GetGamesWithProps)
	games.Get("/:id/props", gameHandler.GetGameProps)
	games.Get("/:id", gameHandler.GetGame)
	games.Get("/", gameHandler.GetGames)

	// Prop Routes (Public)
	props := v1.Group("/props")
	props.Get("/stream", propHandler.StreamUpdates)
	props.Get("/", propHandler.GetProps)

	// Player Routes (Public)
	players := v1.Group("/players")
	players.Get("/:name/stats", playerHandler.GetStats)
	players.Get("/:name/matchup", playerHandler.GetMatchup)

	// Job Routes (Protected by shared secret)
	jobs := v1.Group("/jobs", middleware.JobSecret(cfg.Feeds.JobSecret))
	jobs.Post("/refresh", jobHandler.TriggerRefresh)
	jobs.Post("/odds", jobHandler.TriggerOddsSync)
}
