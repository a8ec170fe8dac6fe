package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger is satisfied by *sql.DB and anything else Health should probe.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthCheck godoc
// @Summary Service status
// @Tags health
// @Produce json
// @Security AccessToken
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} errorPayload
// @Router /health [get]
func HealthCheck(db Pinger, startedAt time.Time) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// db is nil unless a database backs the listing store.
		if db != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
			}
		}
		return c.JSON(fiber.Map{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
			"uptime":    time.Since(startedAt).Seconds(),
		})
	}
}

// LivenessProbe answers 200 without touching dependencies.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
