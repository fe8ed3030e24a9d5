package sheets_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/samirrijal/schoolnav/internal/adapters/sheets"
	"github.com/samirrijal/schoolnav/internal/core/domain"
)

func TestClient_FetchLocations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[
			{"name":"Room 101","type":"classroom","building":"A","floor":"2","lat":37.7749,"lng":"-122.4194","x":150,"y":"145"},
			{"name":"  ","type":"blank row"},
			{"name":"Gym","type":"facility","floor":"","lat":37.7747,"lng":-122.4192,"x":200,"y":295}
		]`)
	}))
	defer srv.Close()

	c := sheets.NewClient(srv.URL, 5*time.Second)
	locs, err := c.FetchLocations(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(locs) != 2 {
		t.Fatalf("expected 2 locations, got %d", len(locs))
	}

	room := locs[0]
	if room.Name != "Room 101" || room.BuildingID != "A" || room.Floor != 2 {
		t.Errorf("unexpected room %+v", room)
	}
	if room.Position.Lon != -122.4194 || room.MapY != 145 {
		t.Errorf("string cells not decoded: %+v", room)
	}
	if locs[1].Floor != 0 {
		t.Errorf("expected empty floor cell to decode as 0, got %d", locs[1].Floor)
	}
}

func TestClient_FetchLocations_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := sheets.NewClient(srv.URL, 5*time.Second)
	if _, err := c.FetchLocations(context.Background()); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestClient_FetchLocations_BadNumber(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"name":"Lab","floor":"second"}]`)
	}))
	defer srv.Close()

	c := sheets.NewClient(srv.URL, 5*time.Second)
	if _, err := c.FetchLocations(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestClient_NotConfigured(t *testing.T) {
	c := sheets.NewClient("", time.Second)
	if _, err := c.FetchLocations(context.Background()); !errors.Is(err, sheets.ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
	if err := c.SaveLocation(context.Background(), &domain.Location{Name: "x"}); !errors.Is(err, sheets.ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestClient_SaveLocation(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON body, got %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	c := sheets.NewClient(srv.URL, 5*time.Second)
	loc := &domain.Location{
		Name:       "Art Room",
		Type:       "classroom",
		BuildingID: "B",
		Floor:      3,
		Position:   domain.GeoPoint{Lat: 1.5, Lon: 2.5},
		MapX:       10,
		MapY:       20,
	}
	if err := c.SaveLocation(context.Background(), loc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["name"] != "Art Room" || got["building"] != "B" || got["floor"] != float64(3) || got["lng"] != 2.5 {
		t.Errorf("unexpected row %v", got)
	}
}
