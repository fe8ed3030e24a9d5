package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Version is stamped at build time with -ldflags "-X ...http.Version=...".
var Version = "dev"

// HealthHandler reports liveness and how much of the map is loaded.
func HealthHandler(deps *Dependencies) fiber.Handler {
	startedAt := time.Now()

	return func(c *fiber.Ctx) error {
		buildings := 0
		if deps.Buildings != nil {
			buildings = len(deps.Buildings.List())
		}
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"uptime":    time.Since(startedAt).String(),
			"version":   Version,
			"buildings": buildings,
		})
	}
}

// ReadyHandler pings each backing service. The database is required;
// NATS and the cache only fail readiness when configured and down.
func ReadyHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		checks := make(map[string]string, 3)
		ready := true
		check := func(name string, p Pinger, required bool) {
			switch {
			case p == nil && required:
				checks[name], ready = "not configured", false
			case p == nil:
				checks[name] = "not configured"
			default:
				if err := p.Ping(ctx); err != nil {
					checks[name], ready = "error: "+err.Error(), false
				} else {
					checks[name] = "ok"
				}
			}
		}

		check("database", deps.DB, true)
		check("cache", deps.Cache, false)
		if deps.NATS != nil {
			checks["nats"] = deps.NATS.Status().String()
			if !deps.NATS.IsConnected() {
				ready = false
			}
		} else {
			checks["nats"] = "not configured"
		}

		if !ready {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "not ready", "checks": checks})
		}
		return c.JSON(fiber.Map{"status": "ready", "checks": checks})
	}
}
