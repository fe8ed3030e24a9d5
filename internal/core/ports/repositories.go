package ports

import (
	"context"

	"github.com/samirrijal/schoolnav/internal/core/domain"
)

// LocationRepository persists map locations.
type LocationRepository interface {
	Upsert(ctx context.Context, loc *domain.Location) error
	UpsertBatch(ctx context.Context, locs []domain.Location) error
	GetByID(ctx context.Context, id string) (*domain.Location, error)
	List(ctx context.Context, limit, offset int) ([]domain.Location, error)
	Count(ctx context.Context) (int, error)
	Search(ctx context.Context, query string, limit int) ([]domain.Location, error)
	FindWithin(ctx context.Context, box domain.Bounds) ([]domain.Location, error)
}

// BuildingRepository persists buildings.
type BuildingRepository interface {
	Upsert(ctx context.Context, b *domain.Building) error
	List(ctx context.Context) ([]domain.Building, error)
}
