package postgres

import (
	"context"

	"github.com/samirrijal/schoolnav/internal/core/domain"
)

// BuildingRepo implements ports.BuildingRepository.
type BuildingRepo struct {
	db *DB
}

func NewBuildingRepo(db *DB) *BuildingRepo {
	return &BuildingRepo{db: db}
}

func (r *BuildingRepo) Upsert(ctx context.Context, b *domain.Building) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO buildings (id, name, name_th)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, name_th = EXCLUDED.name_th
	`, b.ID, b.Name, b.NameTH)
	return err
}

func (r *BuildingRepo) List(ctx context.Context) ([]domain.Building, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, name, COALESCE(name_th, '')
		FROM buildings ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buildings []domain.Building
	for rows.Next() {
		var b domain.Building
		if err := rows.Scan(&b.ID, &b.Name, &b.NameTH); err != nil {
			return nil, err
		}
		buildings = append(buildings, b)
	}
	return buildings, rows.Err()
}
