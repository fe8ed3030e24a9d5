package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/samirrijal/schoolnav/internal/core/domain"
	"github.com/samirrijal/schoolnav/internal/core/ports"
	"github.com/samirrijal/schoolnav/internal/pkg/geospatial"
	"github.com/samirrijal/schoolnav/internal/pkg/metrics"
)

var (
	// ErrEmptyQuery is returned when a search is attempted without text.
	ErrEmptyQuery = errors.New("search query must not be empty")
	// ErrInvalidLocation is returned when a location fails validation on save.
	ErrInvalidLocation = errors.New("invalid location")
)

// LocationService handles the map's location directory.
type LocationService struct {
	locations ports.LocationRepository
	cache     ports.CacheService
	publisher ports.EventPublisher
}

// NewLocationService creates a new LocationService. cache and publisher may be nil.
func NewLocationService(locations ports.LocationRepository, cache ports.CacheService, publisher ports.EventPublisher) *LocationService {
	return &LocationService{locations: locations, cache: cache, publisher: publisher}
}

// List returns one page of locations ordered by name.
func (s *LocationService) List(ctx context.Context, limit, offset int) ([]domain.Location, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.locations.List(ctx, limit, offset)
}

// Count returns the total number of locations.
func (s *LocationService) Count(ctx context.Context) (int, error) {
	return s.locations.Count(ctx)
}

// GetByID returns a single location.
func (s *LocationService) GetByID(ctx context.Context, id string) (*domain.Location, error) {
	cacheKey := "locations:id:" + id
	var cached domain.Location
	if s.cacheGet(ctx, "location_by_id", cacheKey, &cached) {
		return &cached, nil
	}

	loc, err := s.locations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, cacheKey, loc, 600)
	return loc, nil
}

// Search matches names case-insensitively by substring.
func (s *LocationService) Search(ctx context.Context, query string, limit int) ([]domain.Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	cacheKey := fmt.Sprintf("locations:search:%s:%s:%d", s.searchGeneration(ctx), strings.ToLower(query), limit)
	var cached []domain.Location
	if s.cacheGet(ctx, "location_search", cacheKey, &cached) {
		return cached, nil
	}

	locs, err := s.locations.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, cacheKey, locs, 300)
	return locs, nil
}

// Suggestions returns up to n location names, used when a search misses.
func (s *LocationService) Suggestions(ctx context.Context, n int) ([]string, error) {
	locs, err := s.locations.List(ctx, n, 0)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(locs))
	for _, l := range locs {
		names = append(names, l.Name)
	}
	return names, nil
}

// FindNearby returns locations within radiusMeters of center, closest first.
func (s *LocationService) FindNearby(ctx context.Context, center domain.GeoPoint, radiusMeters float64, limit int) ([]domain.Location, error) {
	if limit <= 0 || limit > 50 {
		limit = 50
	}
	if radiusMeters <= 0 {
		radiusMeters = 200
	}

	candidates, err := s.locations.FindWithin(ctx, geospatial.BoundingBox(center, radiusMeters))
	if err != nil {
		return nil, err
	}

	out := make([]domain.Location, 0, len(candidates))
	for _, l := range candidates {
		d := geospatial.Haversine(center, l.Position)
		if d > radiusMeters {
			continue
		}
		l.Distance = &d
		out = append(out, l)
	}
	sort.SliceStable(out, func(i, j int) bool { return *out[i].Distance < *out[j].Distance })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Save validates and stores a location, then announces the change.
func (s *LocationService) Save(ctx context.Context, loc *domain.Location) error {
	if err := validateLocation(loc); err != nil {
		return err
	}
	if err := s.locations.Upsert(ctx, loc); err != nil {
		return fmt.Errorf("upsert location: %w", err)
	}
	if s.cache != nil && loc.ID != "" {
		_ = s.cache.Delete(ctx, "locations:id:"+loc.ID)
	}
	s.invalidateSearches(ctx)
	if s.publisher != nil {
		if err := s.publisher.PublishLocationUpdated(ctx, loc); err != nil {
			slog.WarnContext(ctx, "publish location update failed", "location", loc.Name, "error", err)
		}
	}
	return nil
}

// Import stores a full set of locations and reports how many were written.
func (s *LocationService) Import(ctx context.Context, locs []domain.Location) (int, error) {
	valid := make([]domain.Location, 0, len(locs))
	for i := range locs {
		if err := validateLocation(&locs[i]); err != nil {
			slog.WarnContext(ctx, "skipping location", "name", locs[i].Name, "error", err)
			continue
		}
		valid = append(valid, locs[i])
	}
	if len(valid) == 0 {
		return 0, nil
	}
	if err := s.locations.UpsertBatch(ctx, valid); err != nil {
		return 0, fmt.Errorf("upsert locations: %w", err)
	}
	s.invalidateSearches(ctx)
	if s.publisher != nil {
		_ = s.publisher.PublishLocationsSynced(ctx, len(valid))
	}
	return len(valid), nil
}

func validateLocation(loc *domain.Location) error {
	loc.Name = strings.TrimSpace(loc.Name)
	switch {
	case loc.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidLocation)
	case loc.Position.Lat < -90 || loc.Position.Lat > 90:
		return fmt.Errorf("%w: lat out of range", ErrInvalidLocation)
	case loc.Position.Lon < -180 || loc.Position.Lon > 180:
		return fmt.Errorf("%w: lng out of range", ErrInvalidLocation)
	case loc.Floor < 0:
		return fmt.Errorf("%w: floor must not be negative", ErrInvalidLocation)
	}
	if loc.Type == "" {
		loc.Type = "room"
	}
	return nil
}

// searchGenKey holds the generation stamped into every search cache key.
// Moving it orphans all cached searches at once; they expire on their own TTL.
const searchGenKey = "locations:search:gen"

func (s *LocationService) searchGeneration(ctx context.Context) string {
	if s.cache == nil {
		return ""
	}
	if g, err := s.cache.Get(ctx, searchGenKey); err == nil && len(g) > 0 {
		return string(g)
	}
	return "0"
}

func (s *LocationService) invalidateSearches(ctx context.Context) {
	if s.cache == nil {
		return
	}
	gen := strconv.FormatInt(time.Now().UnixNano(), 36)
	if err := s.cache.Set(ctx, searchGenKey, []byte(gen), 86400); err != nil {
		slog.WarnContext(ctx, "search cache invalidation failed", "error", err)
	}
}

func (s *LocationService) cacheGet(ctx context.Context, op, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil || json.Unmarshal(data, dst) != nil {
		metrics.CacheMisses.WithLabelValues(op).Inc()
		return false
	}
	metrics.CacheHits.WithLabelValues(op).Inc()
	return true
}

func (s *LocationService) cacheSet(ctx context.Context, key string, v any, ttlSeconds int) {
	if s.cache == nil {
		return
	}
	if data, err := json.Marshal(v); err == nil {
		_ = s.cache.Set(ctx, key, data, ttlSeconds)
	}
}
