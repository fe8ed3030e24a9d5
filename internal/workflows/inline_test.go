package workflows_test

import (
	"context"
	"testing"
	"time"

	"github.com/samirrijal/schoolnav/internal/workflows"
)

func TestInlineNarrator_AnnouncesEachOnceInOrder(t *testing.T) {
	pub := &recordingPublisher{}
	n := &workflows.InlineNarrator{Activities: &workflows.NarrationActivities{Publisher: pub}, Gap: time.Millisecond}

	q := sampleQueue()
	if err := n.StartNarration(context.Background(), &q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pub.announced) != len(q.Announcements) {
		t.Fatalf("expected %d announcements, got %d", len(q.Announcements), len(pub.announced))
	}
	for i, a := range pub.announced {
		if a.Sequence != i || a.Text != q.Announcements[i] {
			t.Errorf("announcement %d out of order: %+v", i, a)
		}
	}
}

func TestInlineNarrator_FailureAfterSpeakingIsNotRetried(t *testing.T) {
	pub := &recordingPublisher{failOn: "Turn right"}
	n := &workflows.InlineNarrator{Activities: &workflows.NarrationActivities{Publisher: pub}}

	q := sampleQueue()
	if err := n.StartNarration(context.Background(), &q); err != nil {
		t.Fatalf("expected no error once narration began, got %v", err)
	}
	if len(pub.announced) != 1 || pub.announced[0].Sequence != 0 {
		t.Errorf("expected only the first announcement, got %+v", pub.announced)
	}
}

func TestInlineNarrator_FailureBeforeSpeakingIsRetried(t *testing.T) {
	pub := &recordingPublisher{failOn: "Start from starting point"}
	n := &workflows.InlineNarrator{Activities: &workflows.NarrationActivities{Publisher: pub}}

	q := sampleQueue()
	if err := n.StartNarration(context.Background(), &q); err == nil {
		t.Fatal("expected an error when nothing was announced")
	}
	if len(pub.announced) != 0 {
		t.Errorf("expected no announcements, got %d", len(pub.announced))
	}
}
