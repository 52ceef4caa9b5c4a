package temporal

import (
	"go.temporal.io/sdk/workflow"

	"legalize-docs/internal/domain"
)

const ServiceRequestWorkflowName = "ServiceRequestWorkflow"

type WorkflowInput struct {
	Request domain.ServiceRequest
}

type WorkflowResult struct {
	RequestID string
	Status    domain.RequestStatus
}

// ServiceRequestWorkflow records a submitted request, checks its upload and
// acknowledges it. A request whose upload does not check out is marked
// failed rather than failing the workflow.
func ServiceRequestWorkflow(ctx workflow.Context, input WorkflowInput) (WorkflowResult, error) {
	req := input.Request
	logger := workflow.GetLogger(ctx)

	if err := workflow.ExecuteActivity(mustActivityContext(ctx, ActivityPolicyRecordRequest), (*Activities).RecordRequestActivity, RecordRequestInput{
		Request: req,
	}).Get(ctx, nil); err != nil {
		return WorkflowResult{}, err
	}

	if err := workflow.ExecuteActivity(mustActivityContext(ctx, ActivityPolicyVerifyUpload), (*Activities).VerifyUploadActivity, VerifyUploadInput{
		RequestID: req.ID,
		File:      req.File,
	}).Get(ctx, nil); err != nil {
		logger.Warn("upload verification failed", "request_id", req.ID, "error", err)
		if markErr := workflow.ExecuteActivity(mustActivityContext(ctx, ActivityPolicyMarkRequestFailed), (*Activities).MarkRequestFailedActivity, MarkRequestFailedInput{
			RequestID: req.ID,
			Reason:    err.Error(),
		}).Get(ctx, nil); markErr != nil {
			return WorkflowResult{}, markErr
		}
		return WorkflowResult{RequestID: req.ID, Status: domain.StatusFailed}, nil
	}

	if err := workflow.ExecuteActivity(mustActivityContext(ctx, ActivityPolicyAcknowledgeRequest), (*Activities).AcknowledgeRequestActivity, AcknowledgeRequestInput{
		RequestID: req.ID,
	}).Get(ctx, nil); err != nil {
		return WorkflowResult{}, err
	}

	return WorkflowResult{RequestID: req.ID, Status: domain.StatusAcknowledged}, nil
}
