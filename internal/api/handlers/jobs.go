/**
 * @description
 * Job API Handlers.
 * Trigger endpoints for the refresh pipeline and the sportsbook odds sync.
 * Both sit behind the shared-secret middleware; schedulers and operators
 * call them, browsers never do.
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

type JobHandler struct {
	Service *services.RefreshService
}

func NewJobHandler(service *services.RefreshService) *JobHandler {
	return &JobHandler{Service: service}
}

// TriggerRefresh rebuilds the prop board
// POST /api/v1/jobs/refresh
func (h *JobHandler) TriggerRefresh(c *fiber.Ctx) error {
	result, err := h.Service.Refresh(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Refresh failed",
		})
	}
	return c.JSON(result)
}

// TriggerOddsSync pulls sportsbook odds and backfills prop rows
// POST /api/v1/jobs/odds
func (h *JobHandler) TriggerOddsSync(c *fiber.Ctx) error {
	updated, err := h.Service.SyncSportsbookOdds(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Odds sync failed",
		})
	}
	return c.JSON(fiber.Map{
		"success":      true,
		"propsUpdated": updated,
	})
}
