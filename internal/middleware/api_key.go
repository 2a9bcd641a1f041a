package middleware

import (
	"crypto/subtle"
	"log/slog"

	"vocabulary/internal/dto"

	"github.com/gofiber/fiber/v2"
)

// APIKeyHeader carries the shared secret.
const APIKeyHeader = "X-API-KEY"

// APIKeyRequired rejects requests whose X-API-KEY header does not match key.
func APIKeyRequired(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		provided := c.Get(APIKeyHeader)
		if provided == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Error("Missing X-API-KEY header."))
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
			slog.Warn("rejected request with invalid api key", "path", c.Path(), "ip", c.IP())
			return c.Status(fiber.StatusForbidden).JSON(dto.Error("Invalid API key."))
		}

		return c.Next()
	}
}
