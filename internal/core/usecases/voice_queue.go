package usecases

import (
	"strings"

	"github.com/google/uuid"

	"github.com/samirrijal/schoolnav/internal/core/domain"
	"github.com/samirrijal/schoolnav/internal/core/ports"
	"github.com/samirrijal/schoolnav/internal/pkg/geospatial"
)

// voiceQueueNamespace seeds deterministic queue ids.
var voiceQueueNamespace = uuid.MustParse("5b0f6c36-3c1e-4f57-9a4e-2f9b7d0e8c11")

// VoiceQueueBuilder produces the announcement sequence for a route.
type VoiceQueueBuilder struct {
	detailed ports.NavigationStepProvider
	fallback ports.NavigationStepProvider
}

// NewVoiceQueueBuilder creates a VoiceQueueBuilder.
func NewVoiceQueueBuilder(detailed, fallback ports.NavigationStepProvider) *VoiceQueueBuilder {
	return &VoiceQueueBuilder{detailed: detailed, fallback: fallback}
}

// Build regenerates the full queue for route. It tries the geometric
// provider first and uses the fallback sequence when the path is unusable.
func (b *VoiceQueueBuilder) Build(route domain.RouteContext) domain.VoiceQueue {
	points := geospatial.ExtractPathPoints(route.Path)

	provider := b.detailed
	steps, err := provider.Steps(points, route.Destination, route.Start, route.Language)
	if err != nil {
		provider = b.fallback
		steps, _ = provider.Steps(points, route.Destination, route.Start, route.Language)
	}
	return NewVoiceQueue(provider.Name(), steps, route.Language)
}

// NewVoiceQueue flattens step texts in order and appends the closing
// announcement. The id is derived from the content, so equal inputs give
// equal queues.
func NewVoiceQueue(provider string, steps []domain.NavigationStep, lang domain.Language) domain.VoiceQueue {
	items := make([]string, 0, len(steps)+1)
	for _, s := range steps {
		items = append(items, s.Text)
	}
	items = append(items, ClosingAnnouncement(lang))

	seed := string(lang) + "\x00" + strings.Join(items, "\x00")
	return domain.VoiceQueue{
		ID:            uuid.NewSHA1(voiceQueueNamespace, []byte(seed)).String(),
		Language:      lang,
		Provider:      provider,
		Announcements: items,
	}
}

// Announcements splits a queue into individually deliverable items,
// numbered from zero in speaking order.
func Announcements(q *domain.VoiceQueue) []domain.Announcement {
	out := make([]domain.Announcement, len(q.Announcements))
	for i, text := range q.Announcements {
		out[i] = domain.Announcement{QueueID: q.ID, Sequence: i, Text: text, Language: q.Language}
	}
	return out
}
