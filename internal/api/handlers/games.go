/**
 * @description
 * Game API Handlers.
 * Exposes the game slate, single-game lookups, per-game props, and the
 * combined games-with-props view the board UI renders.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - backend/internal/services
 * - gorm.io/gorm
 */

package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/courtedge-project/backend/internal/services"
)

type GameHandler struct {
	Service *services.PropService
}

func NewGameHandler(service *services.PropService) *GameHandler {
	return &GameHandler{Service: service}
}

// GetGames returns the current slate ordered by tip-off
// GET /api/v1/games
func (h *GameHandler) GetGames(c *fiber.Ctx) error {
	games, err := h.Service.GetGames(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch games",
		})
	}
	return c.JSON(games)
}

// GetGame returns one game by id
// GET /api/v1/games/:id
func (h *GameHandler) GetGame(c *fiber.Ctx) error {
	id := c.Params("id")

	game, err := h.Service.GetGame(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Game not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch game",
		})
	}
	return c.JSON(game)
}

// GetGameProps returns the props for one game, best edge first
// GET /api/v1/games/:id/props
func (h *GameHandler) GetGameProps(c *fiber.Ctx) error {
	id := c.Params("id")

	props, err := h.Service.GetGameProps(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch game props",
		})
	}
	return c.JSON(props)
}

// GetGamesWithProps returns the slate with nested props and top plays
// GET /api/v1/games/with-props
func (h *GameHandler) GetGamesWithProps(c *fiber.Ctx) error {
	out, err := h.Service.GetGamesWithProps(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch games with props",
		})
	}
	return c.JSON(out)
}
