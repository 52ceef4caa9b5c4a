package temporal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/mocks"

	"legalize-docs/internal/domain"
)

func TestSubmitter_StartsWorkflow(t *testing.T) {
	c := &mocks.Client{}
	c.On("ExecuteWorkflow", mock.Anything, mock.MatchedBy(func(opts client.StartWorkflowOptions) bool {
		return opts.ID == "legalize-req-1" && opts.TaskQueue == "requests"
	}), ServiceRequestWorkflowName, mock.Anything).Return(&mocks.WorkflowRun{}, nil).Once()

	fixed := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	s := &Submitter{Client: c, TaskQueue: "requests", WorkflowIDPrefix: "legalize", Now: func() time.Time { return fixed }}

	receipt, err := s.Submit(context.Background(), sampleRequest("req-1"))
	require.NoError(t, err)
	require.Equal(t, "req-1", receipt.RequestID)
	require.Equal(t, domain.StatusSubmitted, receipt.Status)
	require.Equal(t, domain.RequestReference("req-1"), receipt.Reference)
	require.Equal(t, fixed, receipt.ReceivedAt)
	c.AssertExpectations(t)
}

func TestSubmitter_AlreadyStartedIsSuccess(t *testing.T) {
	c := &mocks.Client{}
	c.On("ExecuteWorkflow", mock.Anything, mock.Anything, ServiceRequestWorkflowName, mock.Anything).
		Return(nil, serviceerror.NewWorkflowExecutionAlreadyStarted("already started", "", "run-1")).Once()

	s := &Submitter{Client: c, TaskQueue: "requests", WorkflowIDPrefix: "legalize"}
	receipt, err := s.Submit(context.Background(), sampleRequest("req-2"))
	require.NoError(t, err)
	require.Equal(t, domain.StatusSubmitted, receipt.Status)
}

func TestSubmitter_StartFailure(t *testing.T) {
	c := &mocks.Client{}
	c.On("ExecuteWorkflow", mock.Anything, mock.Anything, ServiceRequestWorkflowName, mock.Anything).
		Return(nil, errors.New("frontend unavailable")).Once()

	s := &Submitter{Client: c, TaskQueue: "requests", WorkflowIDPrefix: "legalize"}
	_, err := s.Submit(context.Background(), sampleRequest("req-3"))
	require.ErrorContains(t, err, "frontend unavailable")
}
