package domain

import (
	"errors"
	"time"
)

// Building is a named structure on the school map.
type Building struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	NameTH string `json:"name_th,omitempty"`
}

// DisplayName returns the building name in the requested language,
// falling back to the English name.
func (b Building) DisplayName(lang Language) string {
	if lang == LangThai && b.NameTH != "" {
		return b.NameTH
	}
	return b.Name
}

// Location is a room or facility on the school map.
type Location struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Type        string    `json:"type"`
	BuildingID  string    `json:"building_id,omitempty"`
	Floor       int       `json:"floor,omitempty"`
	Position    GeoPoint  `json:"position"`
	MapX        float64   `json:"x"`
	MapY        float64   `json:"y"`
	Distance    *float64  `json:"distance,omitempty"` // computed field
	CreatedAt   time.Time `json:"created_at"`
}

// Destination converts the location into the navigation target it describes.
func (l Location) Destination() Destination {
	return Destination{Name: l.Name, Building: l.BuildingID, Floor: l.Floor}
}

// ErrNotFound is returned by repositories when a lookup matches nothing.
var ErrNotFound = errors.New("not found")
