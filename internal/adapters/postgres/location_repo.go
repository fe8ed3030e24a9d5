package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/samirrijal/schoolnav/internal/core/domain"
)

const locationColumns = `id, name, COALESCE(description, ''), type, building_id,
	floor, lat, lng, map_x, map_y, created_at`

const upsertLocation = `
	INSERT INTO locations (name, description, type, building_id, floor, lat, lng, map_x, map_y)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (name, building_id) DO UPDATE
	SET description = EXCLUDED.description, type = EXCLUDED.type, floor = EXCLUDED.floor,
	    lat = EXCLUDED.lat, lng = EXCLUDED.lng, map_x = EXCLUDED.map_x, map_y = EXCLUDED.map_y
	RETURNING id, created_at`

// LocationRepo implements ports.LocationRepository with pgx.
type LocationRepo struct {
	db *DB
}

// NewLocationRepo creates a new LocationRepo.
func NewLocationRepo(db *DB) *LocationRepo {
	return &LocationRepo{db: db}
}

// Upsert inserts or updates a location keyed by name and building, and
// fills in the stored id.
func (r *LocationRepo) Upsert(ctx context.Context, l *domain.Location) error {
	return r.db.Pool.QueryRow(ctx, upsertLocation, locationArgs(l)...).Scan(&l.ID, &l.CreatedAt)
}

// UpsertBatch writes many locations using pgx.Batch.
func (r *LocationRepo) UpsertBatch(ctx context.Context, locs []domain.Location) error {
	batch := &pgx.Batch{}
	for i := range locs {
		batch.Queue(upsertLocation, locationArgs(&locs[i])...)
	}
	br := r.db.Pool.SendBatch(ctx, batch)
	defer br.Close()
	for i := range locs {
		if err := br.QueryRow().Scan(&locs[i].ID, &locs[i].CreatedAt); err != nil {
			return fmt.Errorf("batch upsert %q: %w", locs[i].Name, err)
		}
	}
	return nil
}

// GetByID returns a location by UUID.
func (r *LocationRepo) GetByID(ctx context.Context, id string) (*domain.Location, error) {
	row := r.db.Pool.QueryRow(ctx, `SELECT `+locationColumns+` FROM locations WHERE id::text = $1`, id)
	l, err := scanLocation(row)
	if err != nil {
		return nil, notFound(err)
	}
	return l, nil
}

// List returns locations ordered by name.
func (r *LocationRepo) List(ctx context.Context, limit, offset int) ([]domain.Location, error) {
	return r.query(ctx, `SELECT `+locationColumns+` FROM locations ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
}

// Count returns the number of stored locations.
func (r *LocationRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.Pool.QueryRow(ctx, `SELECT count(*) FROM locations`).Scan(&n)
	return n, err
}

// Search matches names by case-insensitive substring.
func (r *LocationRepo) Search(ctx context.Context, query string, limit int) ([]domain.Location, error) {
	pattern := "%" + likeEscaper.Replace(query) + "%"
	return r.query(ctx, `
		SELECT `+locationColumns+`
		FROM locations
		WHERE name ILIKE $1
		ORDER BY name
		LIMIT $2
	`, pattern, limit)
}

// FindWithin returns locations inside box.
func (r *LocationRepo) FindWithin(ctx context.Context, box domain.Bounds) ([]domain.Location, error) {
	return r.query(ctx, `
		SELECT `+locationColumns+`
		FROM locations
		WHERE lat BETWEEN $1 AND $2 AND lng BETWEEN $3 AND $4
	`, box.MinLat, box.MaxLat, box.MinLon, box.MaxLon)
}

func (r *LocationRepo) query(ctx context.Context, sql string, args ...any) ([]domain.Location, error) {
	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locs []domain.Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		locs = append(locs, *l)
	}
	return locs, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func locationArgs(l *domain.Location) []any {
	return []any{
		l.Name, l.Description, l.Type, l.BuildingID, l.Floor,
		l.Position.Lat, l.Position.Lon, l.MapX, l.MapY,
	}
}

func scanLocation(row pgx.Row) (*domain.Location, error) {
	var l domain.Location
	err := row.Scan(
		&l.ID, &l.Name, &l.Description, &l.Type, &l.BuildingID,
		&l.Floor, &l.Position.Lat, &l.Position.Lon, &l.MapX, &l.MapY, &l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
