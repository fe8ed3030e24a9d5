package temporaladapter_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	temporaladapter "github.com/samirrijal/schoolnav/internal/adapters/temporal"
	"github.com/samirrijal/schoolnav/internal/core/domain"
	"github.com/samirrijal/schoolnav/internal/workflows"
)

type fakeRun struct {
	client.WorkflowRun
	id string
}

func (r fakeRun) GetID() string    { return r.id }
func (r fakeRun) GetRunID() string { return "run-1" }

type fakeClient struct {
	opts  client.StartWorkflowOptions
	input workflows.NarrationInput
	err   error
}

func (c *fakeClient) ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error) {
	c.opts = options
	if len(args) == 1 {
		c.input, _ = args[0].(workflows.NarrationInput)
	}
	if c.err != nil {
		return nil, c.err
	}
	return fakeRun{id: options.ID}, nil
}

func TestStarter_StartNarration(t *testing.T) {
	fc := &fakeClient{}
	s := temporaladapter.NewStarter(fc, "narration", time.Second)
	q := &domain.VoiceQueue{ID: "abc", Announcements: []string{"Turn left"}}

	if err := s.StartNarration(context.Background(), q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fc.opts.ID != "narration-abc" || fc.opts.TaskQueue != "narration" {
		t.Errorf("unexpected options %+v", fc.opts)
	}
	if fc.input.Queue.ID != "abc" || fc.input.Gap != time.Second {
		t.Errorf("unexpected input %+v", fc.input)
	}
}

func TestStarter_AlreadyRunningIsNotAnError(t *testing.T) {
	fc := &fakeClient{err: serviceerror.NewWorkflowExecutionAlreadyStarted("running", "", "")}
	s := temporaladapter.NewStarter(fc, "narration", 0)

	if err := s.StartNarration(context.Background(), &domain.VoiceQueue{ID: "abc"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStarter_OtherErrors(t *testing.T) {
	fc := &fakeClient{err: errors.New("unavailable")}
	s := temporaladapter.NewStarter(fc, "narration", 0)

	if err := s.StartNarration(context.Background(), &domain.VoiceQueue{ID: "abc"}); err == nil {
		t.Fatal("expected error")
	}
}
