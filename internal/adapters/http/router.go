package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"

	"github.com/samirrijal/schoolnav/internal/pkg/metrics"
)

const requestTimeout = 15 * time.Second

// legacyStepsSunset is when /v1/navigation/steps goes away.
var legacyStepsSunset = time.Date(2027, time.June, 30, 0, 0, 0, 0, time.UTC)

// SetupRoutes registers all REST, GraphQL, and WebSocket routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	app.Use(requestid.New())
	app.Use(RequestIDLogMiddleware())
	app.Use(AccessLogMiddleware())

	// 120 requests per minute per IP
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":   "rate limit exceeded",
				"message": "too many requests, please try again later",
			})
		},
	}))

	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	app.Use(ETagMiddleware())
	app.Use(CachingMiddleware())
	app.Use(DeprecationMiddleware([]DeprecatedRoute{
		{Path: "/v1/navigation/steps", SunsetDate: legacyStepsSunset, Alternative: "/v1/directions"},
	}))

	// no timeout, these are fast internal checks
	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	v1 := app.Group("/v1")
	v1.Get("/locations", timeout.NewWithContext(ListLocationsHandler(deps), requestTimeout))
	v1.Get("/locations/search", timeout.NewWithContext(SearchLocationsHandler(deps), requestTimeout))
	v1.Get("/locations/nearby", timeout.NewWithContext(NearbyLocationsHandler(deps), requestTimeout))
	v1.Get("/locations/:id", timeout.NewWithContext(GetLocationHandler(deps), requestTimeout))
	v1.Get("/buildings", ListBuildingsHandler(deps))

	v1.Post("/directions", timeout.NewWithContext(DirectionsHandler(deps), requestTimeout))
	v1.Post("/navigation/steps", timeout.NewWithContext(DirectionsHandler(deps), requestTimeout))
	v1.Post("/voice-queue", timeout.NewWithContext(VoiceQueueHandler(deps), requestTimeout))
	v1.Post("/speak", timeout.NewWithContext(SpeakHandler(deps), requestTimeout))

	if deps.Auth != nil {
		v1.Post("/admin/login", AdminLoginHandler(deps))
		v1.Post("/locations", RequireAdmin(deps), timeout.NewWithContext(SaveLocationHandler(deps), requestTimeout))
	}

	app.Post("/graphql", GraphQLHandler(deps))

	SetupDocs(app)

	if deps.NATS != nil {
		app.Use("/ws", func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return fiber.ErrUpgradeRequired
		})
		app.Get("/ws", websocket.New(WebSocketHandler(deps.NATS)))
	}
}
