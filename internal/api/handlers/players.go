/**
 * @description
 * Player API Handlers.
 * Exposes historical game logs, per-stat summaries against a line, and the
 * defense/pace matchup report.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - backend/internal/services
 */

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/courtedge-project/backend/internal/services"
)

type PlayerHandler struct {
	Service *services.StatsService
}

func NewPlayerHandler(service *services.StatsService) *PlayerHandler {
	return &PlayerHandler{Service: service}
}

// GetStats returns a player's recent game logs, optionally filtered to one
// opponent and optionally summarized against a line
// GET /api/v1/players/:name/stats?opponent=BOS&stat_type=Points&line=25.5&limit=15
func (h *PlayerHandler) GetStats(c *fiber.Ctx) error {
	name := c.Params("name")
	opponent := c.Query("opponent")
	statType := c.Query("stat_type")
	line := c.QueryFloat("line", 0)
	limit := c.QueryInt("limit", 0)

	if opponent != "" {
		gameLogs, err := h.Service.GetStatsAgainstOpponent(c.Context(), name, opponent)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to fetch player stats",
			})
		}
		if statType != "" {
			return c.JSON(fiber.Map{
				"stats":   gameLogs,
				"summary": services.Summarize(gameLogs, statType, line),
			})
		}
		return c.JSON(gameLogs)
	}

	gameLogs, err := h.Service.GetRecentStats(c.Context(), name, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch player stats",
		})
	}
	if statType != "" {
		return c.JSON(fiber.Map{
			"stats":   gameLogs,
			"summary": services.Summarize(gameLogs, statType, line),
		})
	}
	return c.JSON(gameLogs)
}

// GetMatchup returns the defense/pace matchup report for a player
// GET /api/v1/players/:name/matchup?opponent=BOS&team=LAL
func (h *PlayerHandler) GetMatchup(c *fiber.Ctx) error {
	name := c.Params("name")
	opponent := c.Query("opponent")
	team := c.Query("team")

	if opponent == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "opponent query parameter is required",
		})
	}

	report, err := h.Service.GetMatchup(c.Context(), name, opponent, team)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build matchup report",
		})
	}
	return c.JSON(report)
}
