package sheets_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/samirrijal/schoolnav/internal/adapters/sheets"
	"github.com/samirrijal/schoolnav/internal/core/domain"
)

const seedTOML = `
[[buildings]]
id = "A"
name = "Main Building"
name_th = "อาคารหลัก"

[[locations]]
name = "Science Lab"
type = "classroom"
building = "A"
floor = 3
lat = 13.75
lng = 100.50
x = 320
y = 180
`

type fakeSource struct {
	locs []domain.Location
	err  error
}

func (f *fakeSource) FetchLocations(ctx context.Context) ([]domain.Location, error) {
	return f.locs, f.err
}
func (f *fakeSource) SaveLocation(ctx context.Context, loc *domain.Location) error { return nil }

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "locations.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return path
}

func TestLoadSeed(t *testing.T) {
	seed, err := sheets.LoadSeed(writeSeed(t, seedTOML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	buildings, locs := seed.Domain()
	if len(buildings) != 1 || buildings[0].NameTH != "อาคารหลัก" {
		t.Errorf("unexpected buildings %+v", buildings)
	}
	if len(locs) != 1 {
		t.Fatalf("expected 1 location, got %d", len(locs))
	}
	l := locs[0]
	if l.BuildingID != "A" || l.Floor != 3 || l.Position.Lon != 100.50 || l.MapX != 320 {
		t.Errorf("unexpected location %+v", l)
	}
}

func TestLoadSeed_Invalid(t *testing.T) {
	tests := map[string]string{
		"syntax":       "[[locations]\nname=",
		"missing name": "[[locations]]\ntype = \"room\"\n",
		"missing id":   "[[buildings]]\nname = \"Annex\"\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := sheets.LoadSeed(writeSeed(t, content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoad_Fallbacks(t *testing.T) {
	seedPath := writeSeed(t, seedTOML)
	live := []domain.Location{{Name: "Room 7"}, {Name: "Room 8"}}

	tests := []struct {
		name       string
		src        *fakeSource
		seed       string
		wantSource string
		wantCount  int
		wantBldgs  int
	}{
		{"sheet wins", &fakeSource{locs: live}, seedPath, sheets.SourceSheet, 2, 1},
		{"sheet fails, seed used", &fakeSource{err: errors.New("timeout")}, seedPath, sheets.SourceSeed, 1, 1},
		{"empty sheet, seed used", &fakeSource{}, seedPath, sheets.SourceSeed, 1, 1},
		{"nothing works", &fakeSource{err: errors.New("timeout")}, filepath.Join(t.TempDir(), "missing.toml"), sheets.SourceSample, 6, 0},
		{"no source, no seed", nil, "", sheets.SourceSample, 6, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var snap sheets.Snapshot
			if tt.src == nil {
				snap = sheets.Load(context.Background(), nil, tt.seed)
			} else {
				snap = sheets.Load(context.Background(), tt.src, tt.seed)
			}
			if snap.Source != tt.wantSource {
				t.Errorf("expected source %s, got %s", tt.wantSource, snap.Source)
			}
			if len(snap.Locations) != tt.wantCount {
				t.Errorf("expected %d locations, got %d", tt.wantCount, len(snap.Locations))
			}
			if len(snap.Buildings) != tt.wantBldgs {
				t.Errorf("expected %d buildings, got %d", tt.wantBldgs, len(snap.Buildings))
			}
		})
	}
}

func TestSampleLocations_ReturnsCopy(t *testing.T) {
	a := sheets.SampleLocations()
	a[0].Name = "changed"
	if b := sheets.SampleLocations(); b[0].Name != "Room 101" {
		t.Errorf("samples were mutated: %q", b[0].Name)
	}
}
