package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/samirrijal/schoolnav/internal/core/domain"
	"github.com/samirrijal/schoolnav/internal/core/usecases"
)

func newNavigation(repo *mockLocationRepo, pub *mockPublisher) *usecases.NavigationService {
	locs := usecases.NewLocationService(repo, nil, nil)
	if pub == nil {
		// a typed nil would defeat the service's nil check
		return usecases.NewNavigationService(locs, staticNamer{}, nil, domain.LangThai)
	}
	return usecases.NewNavigationService(locs, staticNamer{}, pub, domain.LangThai)
}

func TestNavigationService_DirectionsByID(t *testing.T) {
	repo := &mockLocationRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Location, error) {
			return &domain.Location{ID: id, Name: "Room 101", BuildingID: "A", Floor: 5}, nil
		},
	}
	pub := &mockPublisher{}
	svc := newNavigation(repo, pub)

	dir, err := svc.Directions(context.Background(), usecases.DirectionsRequest{
		Path:          "M0 0 L30 0",
		DestinationID: "loc-1",
		Start:         &domain.StartPoint{Floor: 1},
		Language:      domain.LangEnglish,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir.Provider != usecases.ProviderDetailed {
		t.Errorf("expected detailed provider, got %s", dir.Provider)
	}
	if dir.Destination.Name != "Room 101" {
		t.Errorf("expected destination resolved from repository, got %+v", dir.Destination)
	}
	if len(dir.Voice.Announcements) != len(dir.Steps)+1 {
		t.Errorf("voice queue length %d does not match %d steps", len(dir.Voice.Announcements), len(dir.Steps))
	}
	found := false
	for _, s := range dir.Steps {
		if s.Text == "Take elevator or stairs to floor 5 (4 floors up)" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected elevator advice in %+v", dir.Steps)
	}
	if len(pub.queues) != 0 {
		t.Errorf("expected no narration without Narrate, got %d queues", len(pub.queues))
	}
}

func TestNavigationService_DirectionsFallbackAndDefaults(t *testing.T) {
	pub := &mockPublisher{}
	svc := newNavigation(&mockLocationRepo{}, pub)

	dir, err := svc.Directions(context.Background(), usecases.DirectionsRequest{
		Destination: &domain.Destination{Name: "ห้องสมุด"},
		Narrate:     true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir.Provider != usecases.ProviderFallback {
		t.Errorf("expected fallback provider, got %s", dir.Provider)
	}
	if dir.Language != domain.LangThai {
		t.Errorf("expected default language th, got %s", dir.Language)
	}
	if len(pub.queues) != 1 || pub.queues[0].ID != dir.Voice.ID {
		t.Errorf("expected the voice queue to be published once")
	}
}

func TestNavigationService_PublishFailureIsNotFatal(t *testing.T) {
	pub := &mockPublisher{err: errors.New("nats down")}
	svc := newNavigation(&mockLocationRepo{}, pub)
	_, err := svc.Directions(context.Background(), usecases.DirectionsRequest{
		Destination: &domain.Destination{Name: "Gym"},
		Narrate:     true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNavigationService_DestinationErrors(t *testing.T) {
	svc := newNavigation(&mockLocationRepo{}, nil)

	_, err := svc.Directions(context.Background(), usecases.DirectionsRequest{Path: "M0 0 L1 1"})
	if !errors.Is(err, usecases.ErrNoDestination) {
		t.Errorf("expected ErrNoDestination, got %v", err)
	}

	_, err = svc.Directions(context.Background(), usecases.DirectionsRequest{DestinationID: "nope"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected wrapped ErrNotFound, got %v", err)
	}
}

func TestNavigationService_VoiceQueue(t *testing.T) {
	svc := newNavigation(&mockLocationRepo{}, nil)
	q := svc.VoiceQueue(context.Background(), domain.RouteContext{
		Path:        "M0 0 L10 0 L10 10",
		Destination: domain.Destination{Name: "Lab"},
	})
	if q.Language != domain.LangThai {
		t.Errorf("expected default language, got %s", q.Language)
	}
	if q.Announcements[len(q.Announcements)-1] != "ถึงจุดหมายแล้ว การนำทางเสร็จสิ้น" {
		t.Errorf("unexpected closing announcement %q", q.Announcements[len(q.Announcements)-1])
	}
}

func TestNavigationService_Speak(t *testing.T) {
	pub := &mockPublisher{}
	svc := newNavigation(&mockLocationRepo{}, pub)

	if _, err := svc.Speak(context.Background(), "  ", domain.LangEnglish); err == nil {
		t.Error("expected error for empty text")
	}
	a, err := svc.Speak(context.Background(), "Turn left", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Language != domain.LangThai || a.QueueID == "" {
		t.Errorf("unexpected announcement %+v", a)
	}
	if len(pub.announcements) != 1 {
		t.Errorf("expected one published announcement, got %d", len(pub.announcements))
	}
}

func TestNavigationService_Language(t *testing.T) {
	svc := newNavigation(&mockLocationRepo{}, nil)
	if svc.Language("") != domain.LangThai {
		t.Error("expected default for empty")
	}
	if svc.Language("en") != domain.LangEnglish || svc.Language("fr") != domain.LangEnglish {
		t.Error("expected non-th values to select English")
	}
}
