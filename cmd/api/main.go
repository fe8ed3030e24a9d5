package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/samirrijal/schoolnav/internal/adapters/http"
	natsadapter "github.com/samirrijal/schoolnav/internal/adapters/nats"
	"github.com/samirrijal/schoolnav/internal/adapters/postgres"
	"github.com/samirrijal/schoolnav/internal/adapters/sheets"
	"github.com/samirrijal/schoolnav/internal/adapters/valkey"
	"github.com/samirrijal/schoolnav/internal/core/domain"
	"github.com/samirrijal/schoolnav/internal/core/ports"
	"github.com/samirrijal/schoolnav/internal/core/usecases"
	"github.com/samirrijal/schoolnav/internal/pkg/config"
	"github.com/samirrijal/schoolnav/internal/pkg/logging"
	"github.com/samirrijal/schoolnav/internal/pkg/metrics"
	"github.com/samirrijal/schoolnav/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("schoolnav-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logging.Setup(cfg.Log, "schoolnav-api")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.Telemetry)
	if err != nil {
		slog.Warn("telemetry init failed", "error", err)
	} else {
		defer telemetry.ShutdownWithTimeout(shutdownTracer)
	}

	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	deps := &http.Dependencies{DB: db}

	// Optional services stay nil interfaces when unavailable.
	var cache ports.CacheService
	if vc, err := valkey.New(cfg.Valkey.Addr, cfg.Valkey.KeyPrefix); err != nil {
		slog.Warn("valkey unavailable, caching disabled", "error", err)
	} else {
		defer vc.Close()
		cache = vc
		deps.Cache = vc
	}

	var publisher ports.EventPublisher
	if pub, err := natsadapter.NewPublisher(cfg.NATS.URL); err != nil {
		slog.Warn("nats unavailable, narration disabled", "error", err)
	} else {
		defer pub.Close()
		publisher = pub
	}

	if nc, err := natsadapter.RawConn(cfg.NATS.URL); err != nil {
		slog.Warn("nats ws conn unavailable", "error", err)
	} else {
		defer nc.Close()
		deps.NATS = nc
	}

	locationRepo := postgres.NewLocationRepo(db)
	buildingRepo := postgres.NewBuildingRepo(db)

	buildings := usecases.NewBuildingDirectory(buildingRepo)
	if err := buildings.Refresh(ctx); err != nil {
		slog.Warn("building directory load failed", "error", err)
	}

	deps.Buildings = buildings
	deps.Locations = usecases.NewLocationService(locationRepo, cache, publisher)
	deps.Navigation = usecases.NewNavigationService(
		deps.Locations, buildings, publisher, domain.ParseLanguage(cfg.Navigation.DefaultLanguage),
	)
	if cfg.Admin.PasswordHash != "" {
		deps.Auth = http.NewAdminAuth(cfg.Admin.Username, cfg.Admin.PasswordHash, cfg.Admin.JWTSecret, cfg.Admin.TokenDuration())
	}

	if cfg.Sheets.URL != "" {
		deps.Sheet = sheets.NewClient(cfg.Sheets.URL, time.Duration(cfg.Sheets.Timeout)*time.Second)
	}

	go refreshLoop(ctx, buildings, db)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB, drawn paths included
		AppName:      "SchoolNav API",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		MaxAge:       3600,
	}))

	http.SetupRoutes(app, deps)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections", "signal", sig.String())
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}

// refreshLoop reloads building names and samples pool gauges until ctx ends.
func refreshLoop(ctx context.Context, buildings *usecases.BuildingDirectory, db *postgres.DB) {
	poolTicker := time.NewTicker(15 * time.Second)
	defer poolTicker.Stop()
	buildingTicker := time.NewTicker(5 * time.Minute)
	defer buildingTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-poolTicker.C:
			metrics.UpdateDBPoolMetrics(db.Stat())
		case <-buildingTicker.C:
			if err := buildings.Refresh(ctx); err != nil {
				slog.Warn("building directory refresh failed", "error", err)
			}
		}
	}
}
