package usecases_test

import (
	"context"

	"github.com/samirrijal/schoolnav/internal/core/domain"
)

// --- Mock LocationRepository ---

type mockLocationRepo struct {
	upsertFn      func(ctx context.Context, loc *domain.Location) error
	upsertBatchFn func(ctx context.Context, locs []domain.Location) error
	getByIDFn     func(ctx context.Context, id string) (*domain.Location, error)
	listFn        func(ctx context.Context, limit, offset int) ([]domain.Location, error)
	searchFn      func(ctx context.Context, query string, limit int) ([]domain.Location, error)
	findWithinFn  func(ctx context.Context, box domain.Bounds) ([]domain.Location, error)
}

func (m *mockLocationRepo) Upsert(ctx context.Context, loc *domain.Location) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, loc)
	}
	return nil
}

func (m *mockLocationRepo) UpsertBatch(ctx context.Context, locs []domain.Location) error {
	if m.upsertBatchFn != nil {
		return m.upsertBatchFn(ctx, locs)
	}
	return nil
}

func (m *mockLocationRepo) GetByID(ctx context.Context, id string) (*domain.Location, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockLocationRepo) List(ctx context.Context, limit, offset int) ([]domain.Location, error) {
	if m.listFn != nil {
		return m.listFn(ctx, limit, offset)
	}
	return nil, nil
}

func (m *mockLocationRepo) Count(ctx context.Context) (int, error) { return 0, nil }

func (m *mockLocationRepo) Search(ctx context.Context, query string, limit int) ([]domain.Location, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query, limit)
	}
	return nil, nil
}

func (m *mockLocationRepo) FindWithin(ctx context.Context, box domain.Bounds) ([]domain.Location, error) {
	if m.findWithinFn != nil {
		return m.findWithinFn(ctx, box)
	}
	return nil, nil
}

// --- Mock BuildingRepository ---

type mockBuildingRepo struct {
	listFn func(ctx context.Context) ([]domain.Building, error)
}

func (m *mockBuildingRepo) Upsert(ctx context.Context, b *domain.Building) error { return nil }

func (m *mockBuildingRepo) List(ctx context.Context) ([]domain.Building, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

// --- Mock EventPublisher ---

type mockPublisher struct {
	queues        []*domain.VoiceQueue
	announcements []*domain.Announcement
	updated       []*domain.Location
	synced        []int
	err           error
}

func (m *mockPublisher) PublishVoiceQueue(ctx context.Context, q *domain.VoiceQueue) error {
	m.queues = append(m.queues, q)
	return m.err
}

func (m *mockPublisher) PublishAnnouncement(ctx context.Context, a *domain.Announcement) error {
	m.announcements = append(m.announcements, a)
	return m.err
}

func (m *mockPublisher) PublishLocationUpdated(ctx context.Context, loc *domain.Location) error {
	m.updated = append(m.updated, loc)
	return m.err
}

func (m *mockPublisher) PublishLocationsSynced(ctx context.Context, count int) error {
	m.synced = append(m.synced, count)
	return m.err
}

// --- Mock CacheService ---

type mockCache struct {
	data    map[string][]byte
	deleted []string
}

func newMockCache() *mockCache { return &mockCache{data: map[string][]byte{}} }

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	m.data[key] = value
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	delete(m.data, key)
	return nil
}

// --- Static BuildingNamer ---

type staticNamer map[string]string

func (s staticNamer) BuildingName(id string, lang domain.Language) string {
	return s[id]
}
