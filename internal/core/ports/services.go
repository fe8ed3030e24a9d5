package ports

import (
	"context"

	"github.com/samirrijal/schoolnav/internal/core/domain"
)

// NavigationStepProvider turns a parsed route into ordered instructions.
type NavigationStepProvider interface {
	Name() string
	Steps(points domain.PathPoints, dest domain.Destination, start *domain.StartPoint, lang domain.Language) ([]domain.NavigationStep, error)
}

// BuildingNamer resolves a building id to display text. It never fails;
// unknown ids produce a generic name.
type BuildingNamer interface {
	BuildingName(buildingID string, lang domain.Language) string
}

// EventPublisher publishes navigation and map events to a message broker.
type EventPublisher interface {
	PublishVoiceQueue(ctx context.Context, q *domain.VoiceQueue) error
	PublishAnnouncement(ctx context.Context, a *domain.Announcement) error
	PublishLocationUpdated(ctx context.Context, loc *domain.Location) error
	PublishLocationsSynced(ctx context.Context, count int) error
}

// EventSubscriber consumes voice queues awaiting narration.
type EventSubscriber interface {
	SubscribeVoiceQueues(ctx context.Context, handler func(ctx context.Context, q *domain.VoiceQueue) error) error
}

// NarrationStarter hands a voice queue to the durable speech pipeline.
type NarrationStarter interface {
	StartNarration(ctx context.Context, q *domain.VoiceQueue) error
}

// LocationSource is an external feed of locations, such as a shared sheet.
type LocationSource interface {
	FetchLocations(ctx context.Context) ([]domain.Location, error)
	SaveLocation(ctx context.Context, loc *domain.Location) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}
