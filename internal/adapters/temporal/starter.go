// Package temporaladapter starts narration workflows on a Temporal cluster.
package temporaladapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/samirrijal/schoolnav/internal/core/domain"
	"github.com/samirrijal/schoolnav/internal/pkg/config"
	"github.com/samirrijal/schoolnav/internal/workflows"
)

// WorkflowStarter is the subset of client.Client the Starter uses.
type WorkflowStarter interface {
	ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error)
}

// Starter implements ports.NarrationStarter.
type Starter struct {
	client    WorkflowStarter
	taskQueue string
	gap       time.Duration
}

// Dial connects to Temporal using cfg.
func Dial(cfg config.TemporalConfig) (client.Client, error) {
	c, err := client.Dial(client.Options{
		HostPort:  cfg.HostPort,
		Namespace: cfg.Namespace,
	})
	if err != nil {
		return nil, fmt.Errorf("temporal dial %s: %w", cfg.HostPort, err)
	}
	return c, nil
}

// NewStarter creates a Starter that pauses gap between announcements.
func NewStarter(c WorkflowStarter, taskQueue string, gap time.Duration) *Starter {
	return &Starter{client: c, taskQueue: taskQueue, gap: gap}
}

// StartNarration starts one workflow per queue. A queue that is already
// being narrated is not started again.
func (s *Starter) StartNarration(ctx context.Context, q *domain.VoiceQueue) error {
	opts := client.StartWorkflowOptions{
		ID:                    workflows.WorkflowID(q.ID),
		TaskQueue:             s.taskQueue,
		WorkflowRunTimeout:    10 * time.Minute,
		WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
	}
	run, err := s.client.ExecuteWorkflow(ctx, opts, workflows.NarrationWorkflow, workflows.NarrationInput{Queue: *q, Gap: s.gap})
	if err != nil {
		var started *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &started) {
			slog.DebugContext(ctx, "narration already running", "queue_id", q.ID)
			return nil
		}
		return fmt.Errorf("start narration %s: %w", q.ID, err)
	}
	slog.InfoContext(ctx, "narration started", "queue_id", q.ID, "workflow_id", run.GetID(), "run_id", run.GetRunID())
	return nil
}
