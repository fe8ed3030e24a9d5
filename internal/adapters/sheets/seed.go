package sheets

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/samirrijal/schoolnav/internal/core/domain"
)

// Seed is the offline copy of the map, kept in a TOML file.
type Seed struct {
	Buildings []SeedBuilding `toml:"buildings"`
	Locations []SeedLocation `toml:"locations"`
}

type SeedBuilding struct {
	ID     string `toml:"id"`
	Name   string `toml:"name"`
	NameTH string `toml:"name_th"`
}

type SeedLocation struct {
	Name        string  `toml:"name"`
	Description string  `toml:"description"`
	Type        string  `toml:"type"`
	Building    string  `toml:"building"`
	Floor       int     `toml:"floor"`
	Lat         float64 `toml:"lat"`
	Lng         float64 `toml:"lng"`
	X           float64 `toml:"x"`
	Y           float64 `toml:"y"`
}

// LoadSeed decodes a seed file. Every location must have a name and every
// building an id.
func LoadSeed(path string) (*Seed, error) {
	var seed Seed
	if _, err := toml.DecodeFile(path, &seed); err != nil {
		return nil, fmt.Errorf("error decoding seed file: %w", err)
	}
	for i, b := range seed.Buildings {
		if b.ID == "" {
			return nil, fmt.Errorf("seed building %d: id is required", i)
		}
	}
	for i, l := range seed.Locations {
		if l.Name == "" {
			return nil, fmt.Errorf("seed location %d: name is required", i)
		}
	}
	return &seed, nil
}

// Domain converts the seed into domain values.
func (s *Seed) Domain() ([]domain.Building, []domain.Location) {
	buildings := make([]domain.Building, len(s.Buildings))
	for i, b := range s.Buildings {
		buildings[i] = domain.Building{ID: b.ID, Name: b.Name, NameTH: b.NameTH}
	}
	locs := make([]domain.Location, len(s.Locations))
	for i, l := range s.Locations {
		locs[i] = domain.Location{
			Name:        l.Name,
			Description: l.Description,
			Type:        l.Type,
			BuildingID:  l.Building,
			Floor:       l.Floor,
			Position:    domain.GeoPoint{Lat: l.Lat, Lon: l.Lng},
			MapX:        l.X,
			MapY:        l.Y,
		}
	}
	return buildings, locs
}
