package workflows

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samirrijal/schoolnav/internal/core/domain"
	"github.com/samirrijal/schoolnav/internal/core/ports"
	"github.com/samirrijal/schoolnav/internal/pkg/metrics"
)

// NarrationActivities holds the activity implementations for the narration
// workflow. They also run outside Temporal, so they log through slog.
type NarrationActivities struct {
	Publisher ports.EventPublisher
}

// Announce hands one announcement to the speech devices.
func (a *NarrationActivities) Announce(ctx context.Context, ann domain.Announcement) error {
	if a.Publisher == nil {
		slog.InfoContext(ctx, "announce (no publisher)", "sequence", ann.Sequence, "text", ann.Text)
		return nil
	}
	if err := a.Publisher.PublishAnnouncement(ctx, &ann); err != nil {
		return fmt.Errorf("publish announcement %d of %s: %w", ann.Sequence, ann.QueueID, err)
	}
	metrics.AnnouncementsPublished.WithLabelValues(string(ann.Language)).Inc()
	return nil
}

// Complete records that a queue was fully spoken.
func (a *NarrationActivities) Complete(ctx context.Context, queueID string, announced int) error {
	slog.InfoContext(ctx, "narration complete", "queueID", queueID, "announced", announced)
	return nil
}
