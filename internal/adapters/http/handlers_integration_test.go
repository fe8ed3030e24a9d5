//go:build integration
// +build integration

package http_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	handler "github.com/samirrijal/schoolnav/internal/adapters/http"
	"github.com/samirrijal/schoolnav/internal/adapters/postgres"
	"github.com/samirrijal/schoolnav/internal/core/domain"
	"github.com/samirrijal/schoolnav/internal/core/usecases"
	"github.com/samirrijal/schoolnav/internal/pkg/config"
)

// setupTestDB connects to a migrated test database.
func setupTestDB(t *testing.T) *postgres.DB {
	cfg, err := config.Load("schoolnav-test")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}

// setupTestDeps wires real repos with no cache or broker.
func setupTestDeps(t *testing.T, db *postgres.DB) *handler.Dependencies {
	locations := usecases.NewLocationService(postgres.NewLocationRepo(db), nil, nil)
	buildings := usecases.NewBuildingDirectory(postgres.NewBuildingRepo(db))
	if err := buildings.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh buildings: %v", err)
	}
	return &handler.Dependencies{
		Locations:  locations,
		Buildings:  buildings,
		Navigation: usecases.NewNavigationService(locations, buildings, nil, domain.LangEnglish),
		DB:         db,
	}
}

func seedTestLocation(t *testing.T, db *postgres.DB, name string) *domain.Location {
	ctx := context.Background()
	if err := postgres.NewBuildingRepo(db).Upsert(ctx, &domain.Building{ID: "T", Name: "Test Building", NameTH: "อาคารทดสอบ"}); err != nil {
		t.Fatalf("seed building: %v", err)
	}
	loc := &domain.Location{
		Name:       name,
		Type:       "classroom",
		BuildingID: "T",
		Floor:      2,
		Position:   domain.GeoPoint{Lat: 37.7749, Lon: -122.4194},
		MapX:       150,
		MapY:       145,
	}
	if err := postgres.NewLocationRepo(db).Upsert(ctx, loc); err != nil {
		t.Fatalf("seed location: %v", err)
	}
	return loc
}

func TestGetLocation_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Close()

	name := "Integration Room " + time.Now().Format("20060102150405")
	loc := seedTestLocation(t, db, name)

	app := setupApp(setupTestDeps(t, db))
	resp, err := app.Test(httptest.NewRequest("GET", "/v1/locations/"+loc.ID, nil), -1)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var got domain.Location
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Name != name || got.BuildingID != "T" {
		t.Errorf("unexpected location %+v", got)
	}
}

func TestNearbyLocations_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Close()

	seedTestLocation(t, db, "Integration Nearby")

	app := setupApp(setupTestDeps(t, db))
	resp, err := app.Test(httptest.NewRequest("GET", "/v1/locations/nearby?lat=37.7749&lng=-122.4194&radius=50", nil), -1)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var locs []domain.Location
	if err := json.NewDecoder(resp.Body).Decode(&locs); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(locs) == 0 {
		t.Error("expected at least 1 nearby location, got 0")
	}
}

func TestDirections_Integration_ByDestinationID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Close()

	loc := seedTestLocation(t, db, "Integration Target")

	app := setupApp(setupTestDeps(t, db))
	resp := postJSON(t, app, "/v1/directions", map[string]interface{}{
		"path":           lShapedPath,
		"destination_id": loc.ID,
		"language":       "th",
	})
	if resp.Status != 200 {
		t.Fatalf("expected 200, got %d: %s", resp.Status, resp.Body)
	}

	var res handler.DirectionsResponse
	if err := json.Unmarshal(resp.Body, &res); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var sawBuilding bool
	for _, s := range res.Steps {
		if s.Type == domain.StepBuilding {
			sawBuilding = true
		}
	}
	if !sawBuilding {
		t.Errorf("expected a building step for %s, got %+v", loc.BuildingID, res.Steps)
	}
}
