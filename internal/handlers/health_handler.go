package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler reports whether the store is reachable.
type HealthHandler struct {
	// ping is nil for the in-memory store.
	ping func(ctx context.Context) error
}

func NewHealthHandler(ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.HandleHealth)
}

func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	store := "up"
	status := fiber.StatusOK
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			slog.Warn("health check failed", "error", err)
			store = "down"
			status = fiber.StatusServiceUnavailable
		}
	}
	healthy := "healthy"
	if status != fiber.StatusOK {
		healthy = "unhealthy"
	}
	return c.Status(status).JSON(fiber.Map{
		"status": healthy,
		"time":   time.Now().Format(time.RFC3339),
		"store":  store,
	})
}
