package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/samirrijal/schoolnav/internal/core/domain"
	"github.com/samirrijal/schoolnav/internal/core/usecases"
)

// NarrationInput is the input for the narration workflow.
type NarrationInput struct {
	Queue domain.VoiceQueue
	// Gap is the pause between announcements, giving the device time to speak.
	Gap time.Duration
}

// NarrationResult reports how far a narration got.
type NarrationResult struct {
	QueueID   string
	Announced int
}

// WorkflowID names the narration run for a queue. Queue ids are content
// derived, so the same route never narrates twice concurrently.
func WorkflowID(queueID string) string {
	return "narration-" + queueID
}

// NarrationWorkflow announces a voice queue strictly in order, one activity
// at a time, then marks the queue complete. A failed announcement stops the
// run; later items are never spoken out of order.
func NarrationWorkflow(ctx workflow.Context, input NarrationInput) (NarrationResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting narration", "queueID", input.Queue.ID, "items", len(input.Queue.Announcements))

	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 10 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 3,
		},
	})

	result := NarrationResult{QueueID: input.Queue.ID}
	for i, a := range usecases.Announcements(&input.Queue) {
		if i > 0 && input.Gap > 0 {
			if err := workflow.Sleep(ctx, input.Gap); err != nil {
				return result, err
			}
		}
		if err := workflow.ExecuteActivity(ctx, "Announce", a).Get(ctx, nil); err != nil {
			logger.Warn("announcement failed, stopping narration", "sequence", a.Sequence, "error", err)
			return result, err
		}
		result.Announced++
	}

	if err := workflow.ExecuteActivity(ctx, "Complete", input.Queue.ID, result.Announced).Get(ctx, nil); err != nil {
		return result, err
	}

	logger.Info("Narration finished", "queueID", input.Queue.ID, "announced", result.Announced)
	return result, nil
}
