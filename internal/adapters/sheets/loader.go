package sheets

import (
	"context"
	"log/slog"

	"github.com/samirrijal/schoolnav/internal/core/domain"
	"github.com/samirrijal/schoolnav/internal/core/ports"
)

// Sources reported by Load.
const (
	SourceSheet  = "sheet"
	SourceSeed   = "seed"
	SourceSample = "sample"
)

// Snapshot is one complete load of the map.
type Snapshot struct {
	Source    string
	Buildings []domain.Building
	Locations []domain.Location
}

// Load tries the live sheet, then the seed file, then the samples.
// It always returns a snapshot. Buildings come only from the seed file,
// which is also consulted when the sheet succeeds.
func Load(ctx context.Context, src ports.LocationSource, seedPath string) Snapshot {
	var seed *Seed
	if seedPath != "" {
		s, err := LoadSeed(seedPath)
		if err != nil {
			slog.Warn("seed file unavailable", "path", seedPath, "error", err)
		} else {
			seed = s
		}
	}

	var snap Snapshot
	if seed != nil {
		snap.Buildings, snap.Locations = seed.Domain()
		snap.Source = SourceSeed
	}

	if src != nil {
		locs, err := src.FetchLocations(ctx)
		switch {
		case err != nil:
			slog.Warn("could not load from sheet, falling back", "error", err)
		case len(locs) == 0:
			slog.Warn("sheet returned no locations, falling back")
		default:
			snap.Locations = locs
			snap.Source = SourceSheet
			return snap
		}
	}

	if seed != nil && len(snap.Locations) > 0 {
		return snap
	}

	snap.Locations = SampleLocations()
	snap.Source = SourceSample
	return snap
}
