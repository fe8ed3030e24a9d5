package usecases

import (
	"context"
	"fmt"
	"sync"

	"github.com/samirrijal/schoolnav/internal/core/domain"
	"github.com/samirrijal/schoolnav/internal/core/ports"
)

// BuildingDirectory is an in-memory snapshot of building names. It
// implements ports.BuildingNamer so step synthesis never touches storage.
type BuildingDirectory struct {
	repo ports.BuildingRepository

	mu        sync.RWMutex
	buildings map[string]domain.Building
}

// NewBuildingDirectory creates an empty directory backed by repo.
func NewBuildingDirectory(repo ports.BuildingRepository) *BuildingDirectory {
	return &BuildingDirectory{repo: repo, buildings: map[string]domain.Building{}}
}

// Refresh replaces the snapshot with the repository's current contents.
func (d *BuildingDirectory) Refresh(ctx context.Context) error {
	list, err := d.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list buildings: %w", err)
	}
	next := make(map[string]domain.Building, len(list))
	for _, b := range list {
		next[b.ID] = b
	}

	d.mu.Lock()
	d.buildings = next
	d.mu.Unlock()
	return nil
}

// List returns the snapshot's buildings in no particular order.
func (d *BuildingDirectory) List() []domain.Building {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]domain.Building, 0, len(d.buildings))
	for _, b := range d.buildings {
		out = append(out, b)
	}
	return out
}

// BuildingName returns the localized name, or generic text for unknown ids.
func (d *BuildingDirectory) BuildingName(id string, lang domain.Language) string {
	d.mu.RLock()
	b, ok := d.buildings[id]
	d.mu.RUnlock()
	if ok {
		if name := b.DisplayName(lang); name != "" {
			return name
		}
	}
	ph := phrasesFor(lang)
	if id == "" {
		return ph.unknownBldg
	}
	return ph.namedBldg(id)
}
