package workflows_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.temporal.io/sdk/testsuite"

	"github.com/samirrijal/schoolnav/internal/core/domain"
	"github.com/samirrijal/schoolnav/internal/workflows"
)

type recordingPublisher struct {
	mu        sync.Mutex
	announced []domain.Announcement
	failOn    string // text whose announcement fails
}

func (p *recordingPublisher) PublishVoiceQueue(ctx context.Context, q *domain.VoiceQueue) error {
	return nil
}
func (p *recordingPublisher) PublishAnnouncement(ctx context.Context, a *domain.Announcement) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failOn != "" && a.Text == p.failOn {
		return errors.New("speaker offline")
	}
	p.announced = append(p.announced, *a)
	return nil
}
func (p *recordingPublisher) PublishLocationUpdated(ctx context.Context, loc *domain.Location) error {
	return nil
}
func (p *recordingPublisher) PublishLocationsSynced(ctx context.Context, count int) error {
	return nil
}

func newEnv(pub *recordingPublisher) *testsuite.TestWorkflowEnvironment {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(workflows.NarrationWorkflow)
	env.RegisterActivity(&workflows.NarrationActivities{Publisher: pub})
	return env
}

func sampleQueue() domain.VoiceQueue {
	return domain.VoiceQueue{
		ID:       "q-1",
		Language: domain.LangEnglish,
		Announcements: []string{
			"Start from starting point",
			"Turn right",
			"Destination reached. Navigation complete",
		},
	}
}

func TestNarrationWorkflow_AnnouncesInOrder(t *testing.T) {
	pub := &recordingPublisher{}
	env := newEnv(pub)

	env.ExecuteWorkflow(workflows.NarrationWorkflow, workflows.NarrationInput{Queue: sampleQueue(), Gap: 2 * time.Second})

	if !env.IsWorkflowCompleted() {
		t.Fatal("workflow did not complete")
	}
	if err := env.GetWorkflowError(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var res workflows.NarrationResult
	if err := env.GetWorkflowResult(&res); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Announced != 3 || res.QueueID != "q-1" {
		t.Errorf("unexpected result %+v", res)
	}

	if len(pub.announced) != 3 {
		t.Fatalf("expected 3 announcements, got %d", len(pub.announced))
	}
	for i, a := range pub.announced {
		if a.Sequence != i {
			t.Errorf("announcement %d has sequence %d", i, a.Sequence)
		}
		if a.Text != sampleQueue().Announcements[i] {
			t.Errorf("announcement %d: got %q", i, a.Text)
		}
		if a.QueueID != "q-1" || a.Language != domain.LangEnglish {
			t.Errorf("announcement %d lost queue metadata: %+v", i, a)
		}
	}
}

func TestNarrationWorkflow_StopsOnFailure(t *testing.T) {
	pub := &recordingPublisher{failOn: "Turn right"}
	env := newEnv(pub)

	env.ExecuteWorkflow(workflows.NarrationWorkflow, workflows.NarrationInput{Queue: sampleQueue()})

	if !env.IsWorkflowCompleted() {
		t.Fatal("workflow did not complete")
	}
	if env.GetWorkflowError() == nil {
		t.Fatal("expected workflow error")
	}
	if len(pub.announced) != 1 {
		t.Errorf("expected only the first announcement, got %d", len(pub.announced))
	}
}

func TestNarrationWorkflow_EmptyQueue(t *testing.T) {
	pub := &recordingPublisher{}
	env := newEnv(pub)

	env.ExecuteWorkflow(workflows.NarrationWorkflow, workflows.NarrationInput{Queue: domain.VoiceQueue{ID: "empty"}})

	if err := env.GetWorkflowError(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pub.announced) != 0 {
		t.Errorf("expected no announcements, got %d", len(pub.announced))
	}
}

func TestWorkflowID(t *testing.T) {
	if got := workflows.WorkflowID("abc"); got != "narration-abc" {
		t.Errorf("unexpected workflow id %q", got)
	}
}
