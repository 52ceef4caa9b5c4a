package temporal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/testsuite"

	"legalize-docs/internal/domain"
	"legalize-docs/internal/storage"
)

func TestServiceRequestWorkflow_UploadMismatchMarksFailed(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()

	store := storage.NewMemoryStore()
	req := sampleRequest("req-mismatch")
	acts := &Activities{
		Store: store,
		Blob:  &fakeBlob{objects: map[string][]byte{req.File.ObjectKey: []byte("truncated-and-longer")}},
	}

	env.RegisterWorkflow(ServiceRequestWorkflow)
	env.RegisterActivity(acts)

	env.ExecuteWorkflow(ServiceRequestWorkflow, WorkflowInput{Request: req})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var result WorkflowResult
	require.NoError(t, env.GetWorkflowResult(&result))
	require.Equal(t, domain.StatusFailed, result.Status)

	rec, err := store.GetRequest(context.Background(), req.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusFailed, rec.Status)
	require.Equal(t, []domain.AuditState{domain.AuditRecorded, domain.AuditFailed}, store.AuditTrail(req.ID))
}

func TestServiceRequestWorkflow_WithoutStoredObject(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()

	store := storage.NewMemoryStore()
	req := sampleRequest("req-simulated")
	req.File.ObjectKey = ""
	acts := &Activities{Store: store}

	env.RegisterWorkflow(ServiceRequestWorkflow)
	env.RegisterActivity(acts)

	env.ExecuteWorkflow(ServiceRequestWorkflow, WorkflowInput{Request: req})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var result WorkflowResult
	require.NoError(t, env.GetWorkflowResult(&result))
	require.Equal(t, req.ID, result.RequestID)
	require.Equal(t, domain.StatusAcknowledged, result.Status)
}
