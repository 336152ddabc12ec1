/**
 * @description
 * Prop API Handlers.
 * Exposes the flat prop board and a live update stream.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - backend/internal/services
 */

package handlers

import (
	"bufio"
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/courtedge-project/backend/internal/services"
)

type PropHandler struct {
	Service *services.PropService
}

func NewPropHandler(service *services.PropService) *PropHandler {
	return &PropHandler{Service: service}
}

// GetProps returns every prop on the current board, best edge first
// GET /api/v1/props
func (h *PropHandler) GetProps(c *fiber.Ctx) error {
	props, err := h.Service.GetProps(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch props",
		})
	}
	return c.JSON(props)
}

// StreamUpdates streams board refresh events over SSE
// GET /api/v1/props/stream
func (h *PropHandler) StreamUpdates(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	requestCtx := c.Context()

	ctx, cancel := context.WithCancel(context.Background())

	pubsub := h.Service.Redis.Subscribe(ctx, services.PropUpdateChannel)
	ch := pubsub.Channel()

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer func() {
			cancel()
			_ = pubsub.Close()
		}()

		requestDone := requestCtx.Done()

		for {
			select {
			case <-requestDone:
				return
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				fmt.Fprintf(w, "data: %s\n\n", msg.Payload)
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	})

	return nil
}
