package main

import (
	"context"
	"log"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"go.temporal.io/sdk/worker"

	natsadapter "github.com/samirrijal/schoolnav/internal/adapters/nats"
	temporaladapter "github.com/samirrijal/schoolnav/internal/adapters/temporal"
	"github.com/samirrijal/schoolnav/internal/core/ports"
	"github.com/samirrijal/schoolnav/internal/pkg/config"
	"github.com/samirrijal/schoolnav/internal/pkg/logging"
	"github.com/samirrijal/schoolnav/internal/pkg/telemetry"
	"github.com/samirrijal/schoolnav/internal/workflows"
)

// announceGap paces announcements so a device finishes one before the next.
const announceGap = 1500 * time.Millisecond

func main() {
	cfg, err := config.Load("schoolnav-narrator")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.Setup(cfg.Log, "schoolnav-narrator")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.Telemetry)
	if err != nil {
		slog.Warn("telemetry init failed", "error", err)
	} else {
		defer telemetry.ShutdownWithTimeout(shutdownTracer)
	}

	pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("nats publisher: %v", err)
	}
	defer pub.Close()

	sub, err := natsadapter.NewSubscriber(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("nats subscriber: %v", err)
	}
	defer sub.Close()

	activities := &workflows.NarrationActivities{Publisher: pub}

	var starter ports.NarrationStarter
	if cfg.Temporal.Enabled {
		c, err := temporaladapter.Dial(cfg.Temporal)
		if err != nil {
			log.Fatalf("temporal client: %v", err)
		}
		defer c.Close()

		w := worker.New(c, cfg.Temporal.TaskQueue, worker.Options{})
		w.RegisterWorkflow(workflows.NarrationWorkflow)
		w.RegisterActivity(activities)
		if err := w.Start(); err != nil {
			log.Fatalf("worker: %v", err)
		}
		defer w.Stop()

		starter = temporaladapter.NewStarter(c, cfg.Temporal.TaskQueue, announceGap)
		slog.Info("narration worker started", "task_queue", cfg.Temporal.TaskQueue)
	} else {
		starter = &workflows.InlineNarrator{Activities: activities, Gap: announceGap}
		slog.Info("temporal disabled, narrating inline")
	}

	if err := sub.SubscribeVoiceQueues(ctx, starter.StartNarration); err != nil {
		log.Fatalf("subscribe voice queues: %v", err)
	}

	<-ctx.Done()
	slog.Info("narrator stopping")
}
