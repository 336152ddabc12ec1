/**
 * @description
 * Shared-secret middleware for job trigger endpoints.
 * Compares the X-Job-Secret header against the configured secret in constant
 * time. When no secret is configured the job endpoints are disabled rather
 * than left open.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - crypto/subtle
 */

package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// JobSecret guards job routes with a pre-shared header secret.
func JobSecret(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if secret == "" {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Job endpoints are not configured",
			})
		}

		provided := c.Get("X-Job-Secret")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid job secret",
			})
		}

		return c.Next()
	}
}
