package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	natsadapter "github.com/samirrijal/schoolnav/internal/adapters/nats"
	"github.com/samirrijal/schoolnav/internal/adapters/postgres"
	"github.com/samirrijal/schoolnav/internal/adapters/sheets"
	"github.com/samirrijal/schoolnav/internal/core/ports"
	"github.com/samirrijal/schoolnav/internal/core/usecases"
	"github.com/samirrijal/schoolnav/internal/pkg/config"
	"github.com/samirrijal/schoolnav/internal/pkg/logging"
	"github.com/samirrijal/schoolnav/internal/pkg/metrics"
)

func main() {
	watch := flag.Duration("watch", 0, "re-sync on this interval instead of exiting (e.g. 10m)")
	seedFile := flag.String("seed", "", "TOML seed file (overrides sheets.seed_file)")
	flag.Parse()

	cfg, err := config.Load("schoolnav-importer")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.Setup(cfg.Log, "schoolnav-importer")

	if *seedFile != "" {
		cfg.Sheets.SeedFile = *seedFile
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	var publisher ports.EventPublisher
	if pub, err := natsadapter.NewPublisher(cfg.NATS.URL); err != nil {
		slog.Warn("nats unavailable, sync events disabled", "error", err)
	} else {
		defer pub.Close()
		publisher = pub
	}

	imp := &importer{
		source:    sheets.NewClient(cfg.Sheets.URL, time.Duration(cfg.Sheets.Timeout)*time.Second),
		seedFile:  cfg.Sheets.SeedFile,
		buildings: postgres.NewBuildingRepo(db),
		locations: usecases.NewLocationService(postgres.NewLocationRepo(db), nil, publisher),
	}

	if err := imp.sync(ctx); err != nil {
		log.Fatalf("import: %v", err)
	}
	if *watch <= 0 {
		return
	}

	slog.Info("watching sheet", "interval", watch.String())
	ticker := time.NewTicker(*watch)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.Info("importer stopping")
			return
		case <-ticker.C:
			if err := imp.sync(ctx); err != nil {
				slog.Error("sync failed", "error", err)
			}
		}
	}
}

type importer struct {
	source    ports.LocationSource
	seedFile  string
	buildings ports.BuildingRepository
	locations *usecases.LocationService
}

// sync loads one snapshot and writes it. Buildings go first so locations
// can reference them. Import announces the sync on the bus.
func (i *importer) sync(ctx context.Context) error {
	snap := sheets.Load(ctx, i.source, i.seedFile)

	for idx := range snap.Buildings {
		if err := i.buildings.Upsert(ctx, &snap.Buildings[idx]); err != nil {
			return err
		}
	}

	n, err := i.locations.Import(ctx, snap.Locations)
	if err != nil {
		return err
	}
	metrics.LocationsImported.WithLabelValues(snap.Source).Add(float64(n))
	slog.Info("import complete", "source", snap.Source, "locations", n, "buildings", len(snap.Buildings))
	return nil
}
