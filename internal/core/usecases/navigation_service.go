package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samirrijal/schoolnav/internal/core/domain"
	"github.com/samirrijal/schoolnav/internal/core/ports"
	"github.com/samirrijal/schoolnav/internal/pkg/geospatial"
	"github.com/samirrijal/schoolnav/internal/pkg/metrics"
)

// ErrNoDestination is returned when a request names no destination.
var ErrNoDestination = errors.New("destination is required")

// LocationLookup resolves a destination id.
type LocationLookup interface {
	GetByID(ctx context.Context, id string) (*domain.Location, error)
}

// DirectionsRequest describes one navigation request. DestinationID takes
// precedence over an inline Destination.
type DirectionsRequest struct {
	Path          string
	DestinationID string
	Destination   *domain.Destination
	Start         *domain.StartPoint
	Language      domain.Language
	Narrate       bool // hand the voice queue to the narrator
}

// NavigationService turns routes into directions and feeds the speech pipeline.
type NavigationService struct {
	locations   LocationLookup
	detailed    ports.NavigationStepProvider
	fallback    ports.NavigationStepProvider
	voice       *VoiceQueueBuilder
	publisher   ports.EventPublisher
	defaultLang domain.Language
	tracer      trace.Tracer
}

// NewNavigationService creates a NavigationService. publisher may be nil.
func NewNavigationService(
	locations LocationLookup,
	buildings ports.BuildingNamer,
	publisher ports.EventPublisher,
	defaultLang domain.Language,
) *NavigationService {
	detailed := NewDetailedProvider(buildings)
	fallback := NewFallbackProvider(buildings)
	return &NavigationService{
		locations:   locations,
		detailed:    detailed,
		fallback:    fallback,
		voice:       NewVoiceQueueBuilder(detailed, fallback),
		publisher:   publisher,
		defaultLang: defaultLang,
		tracer:      otel.Tracer("schoolnav/navigation"),
	}
}

// Language returns lang, or the service default when lang is empty.
func (s *NavigationService) Language(lang string) domain.Language {
	if strings.TrimSpace(lang) == "" {
		return s.defaultLang
	}
	return domain.ParseLanguage(lang)
}

// Directions synthesizes steps and the matching voice queue for req.
func (s *NavigationService) Directions(ctx context.Context, req DirectionsRequest) (*domain.Directions, error) {
	ctx, span := s.tracer.Start(ctx, "navigation.directions")
	defer span.End()

	if req.Language == "" {
		req.Language = s.defaultLang
	}
	dest, err := s.resolveDestination(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	points := geospatial.ExtractPathPoints(req.Path)
	provider := SelectProvider(points, s.detailed, s.fallback)
	steps, err := provider.Steps(points, dest, req.Start, req.Language)
	if err != nil {
		provider = s.fallback
		steps, _ = provider.Steps(points, dest, req.Start, req.Language)
	}
	queue := NewVoiceQueue(provider.Name(), steps, req.Language)

	span.SetAttributes(
		attribute.String("navigation.provider", provider.Name()),
		attribute.String("navigation.language", string(req.Language)),
		attribute.Int("navigation.points", len(points)),
		attribute.Int("navigation.steps", len(steps)),
	)
	recordDirections(provider.Name(), req.Language, steps, len(queue.Announcements))

	// Publishing the queue is what requests narration; failure only loses the audio.
	if req.Narrate && s.publisher != nil {
		if err := s.publisher.PublishVoiceQueue(ctx, &queue); err != nil {
			slog.WarnContext(ctx, "publish voice queue failed", "queue_id", queue.ID, "error", err)
		}
	}

	return &domain.Directions{
		Steps:       steps,
		Voice:       queue,
		Provider:    provider.Name(),
		Destination: dest,
		Language:    req.Language,
	}, nil
}

// VoiceQueue rebuilds only the announcement list for route.
func (s *NavigationService) VoiceQueue(ctx context.Context, route domain.RouteContext) domain.VoiceQueue {
	_, span := s.tracer.Start(ctx, "navigation.voice_queue")
	defer span.End()

	if route.Language == "" {
		route.Language = s.defaultLang
	}
	q := s.voice.Build(route)
	metrics.VoiceQueueLength.Observe(float64(len(q.Announcements)))
	return q
}

// VoiceQueueFor resolves the request's destination like Directions does,
// by stored id or inline, and returns only the voice queue.
func (s *NavigationService) VoiceQueueFor(ctx context.Context, req DirectionsRequest) (domain.VoiceQueue, error) {
	dest, err := s.resolveDestination(ctx, req)
	if err != nil {
		return domain.VoiceQueue{}, err
	}
	return s.VoiceQueue(ctx, domain.RouteContext{
		Path:        req.Path,
		Destination: dest,
		Start:       req.Start,
		Language:    req.Language,
	}), nil
}

// Speak publishes a single ad-hoc announcement, as when a user taps one step.
func (s *NavigationService) Speak(ctx context.Context, text string, lang domain.Language) (*domain.Announcement, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("text must not be empty")
	}
	if lang == "" {
		lang = s.defaultLang
	}
	a := &domain.Announcement{QueueID: uuid.NewString(), Text: text, Language: lang}
	if s.publisher == nil {
		return a, nil
	}
	if err := s.publisher.PublishAnnouncement(ctx, a); err != nil {
		return nil, fmt.Errorf("publish announcement: %w", err)
	}
	metrics.AnnouncementsPublished.WithLabelValues(string(lang)).Inc()
	return a, nil
}

func (s *NavigationService) resolveDestination(ctx context.Context, req DirectionsRequest) (domain.Destination, error) {
	if req.DestinationID != "" {
		loc, err := s.locations.GetByID(ctx, req.DestinationID)
		if err != nil {
			return domain.Destination{}, fmt.Errorf("resolve destination %s: %w", req.DestinationID, err)
		}
		return loc.Destination(), nil
	}
	if req.Destination != nil && strings.TrimSpace(req.Destination.Name) != "" {
		return *req.Destination, nil
	}
	return domain.Destination{}, ErrNoDestination
}

func recordDirections(provider string, lang domain.Language, steps []domain.NavigationStep, queueLen int) {
	metrics.DirectionsTotal.WithLabelValues(provider, string(lang)).Inc()
	metrics.StepsPerRoute.Observe(float64(len(steps)))
	metrics.VoiceQueueLength.Observe(float64(queueLen))
	for _, st := range steps {
		if st.Type == domain.StepTurn {
			metrics.TurnsDetected.WithLabelValues(string(st.TurnType)).Inc()
		}
	}
}
