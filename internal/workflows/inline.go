package workflows

import (
	"context"
	"log/slog"
	"time"

	"github.com/samirrijal/schoolnav/internal/core/domain"
	"github.com/samirrijal/schoolnav/internal/core/usecases"
)

// InlineNarrator speaks a queue in-process when no Temporal cluster is
// configured. It runs the same activities as NarrationWorkflow.
//
// Like a started workflow, a narration that has spoken anything owns its
// outcome: later failures end it without an error, so the queue is not
// redelivered and earlier items are never spoken twice.
type InlineNarrator struct {
	Activities *NarrationActivities
	Gap        time.Duration
}

// StartNarration implements ports.NarrationStarter. It returns an error
// only when nothing was announced, which is safe to retry.
func (n *InlineNarrator) StartNarration(ctx context.Context, q *domain.VoiceQueue) error {
	announced := 0
	for i, a := range usecases.Announcements(q) {
		if i > 0 && n.Gap > 0 {
			select {
			case <-ctx.Done():
				slog.WarnContext(ctx, "narration interrupted", "queue_id", q.ID, "announced", announced)
				return nil
			case <-time.After(n.Gap):
			}
		}
		if err := n.Activities.Announce(ctx, a); err != nil {
			if announced == 0 {
				return err
			}
			slog.WarnContext(ctx, "announcement failed, stopping narration", "queue_id", q.ID, "sequence", a.Sequence, "error", err)
			return nil
		}
		announced++
	}
	return n.Activities.Complete(ctx, q.ID, announced)
}
