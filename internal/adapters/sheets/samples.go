package sheets

import "github.com/samirrijal/schoolnav/internal/core/domain"

var samples = []domain.Location{
	{
		Name:        "Room 101",
		Description: "Grade 7 Mathematics classroom with interactive whiteboard",
		Type:        "classroom",
		Position:    domain.GeoPoint{Lat: 37.7749, Lon: -122.4194},
		MapX:        150, MapY: 145,
	},
	{
		Name:        "Library",
		Description: "Quiet study space with computers and thousands of books",
		Type:        "facility",
		Position:    domain.GeoPoint{Lat: 37.7750, Lon: -122.4195},
		MapX:        475, MapY: 145,
	},
	{
		Name:        "Cafeteria",
		Description: "Lunch room with healthy meal options",
		Type:        "facility",
		Position:    domain.GeoPoint{Lat: 37.7748, Lon: -122.4193},
		MapX:        650, MapY: 145,
	},
	{
		Name:        "Main Office",
		Description: "Principal's office and administration",
		Type:        "office",
		Position:    domain.GeoPoint{Lat: 37.7751, Lon: -122.4196},
		MapX:        450, MapY: 295,
	},
	{
		Name:        "Gym",
		Description: "Physical education and sports activities",
		Type:        "facility",
		Position:    domain.GeoPoint{Lat: 37.7747, Lon: -122.4192},
		MapX:        200, MapY: 295,
	},
	{
		Name:        "Playground",
		Description: "Outdoor play area with swings and slides",
		Type:        "outdoor",
		Position:    domain.GeoPoint{Lat: 37.7746, Lon: -122.4191},
		MapX:        650, MapY: 290,
	},
}

// SampleLocations returns a copy of the built-in demo map.
func SampleLocations() []domain.Location {
	out := make([]domain.Location, len(samples))
	copy(out, samples)
	return out
}
