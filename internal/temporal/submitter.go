package temporal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"legalize-docs/internal/domain"
)

// Submitter starts a ServiceRequestWorkflow per submitted request and returns
// without waiting for it.
type Submitter struct {
	Client           client.Client
	TaskQueue        string
	WorkflowIDPrefix string
	Now              func() time.Time
}

func (s *Submitter) WorkflowID(requestID string) string {
	return fmt.Sprintf("%s-%s", s.WorkflowIDPrefix, requestID)
}

func (s *Submitter) Submit(ctx context.Context, req domain.ServiceRequest) (domain.Receipt, error) {
	execCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	_, err := s.Client.ExecuteWorkflow(execCtx, client.StartWorkflowOptions{
		ID:        s.WorkflowID(req.ID),
		TaskQueue: s.TaskQueue,
	}, ServiceRequestWorkflowName, WorkflowInput{Request: req})
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if !errors.As(err, &alreadyStarted) {
			return domain.Receipt{}, fmt.Errorf("start workflow for request %s: %w", req.ID, err)
		}
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return domain.Receipt{
		RequestID:  req.ID,
		Reference:  domain.RequestReference(req.ID),
		Status:     domain.StatusSubmitted,
		ReceivedAt: now().UTC(),
	}, nil
}
