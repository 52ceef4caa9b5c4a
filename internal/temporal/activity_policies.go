package temporal

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

const (
	ActivityPolicyRecordRequest      = "record_request"
	ActivityPolicyVerifyUpload       = "verify_upload"
	ActivityPolicyAcknowledgeRequest = "acknowledge_request"
	ActivityPolicyMarkRequestFailed  = "mark_request_failed"
)

type activityPolicy struct {
	StartToCloseTimeout time.Duration
	RetryPolicy         temporal.RetryPolicy
}

var defaultRetry = temporal.RetryPolicy{
	InitialInterval:    1 * time.Second,
	BackoffCoefficient: 2,
	MaximumInterval:    10 * time.Second,
	MaximumAttempts:    3,
}

var activityPolicies = map[string]activityPolicy{
	ActivityPolicyRecordRequest: {
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy:         defaultRetry,
	},
	ActivityPolicyVerifyUpload: {
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: temporal.RetryPolicy{
			InitialInterval:        2 * time.Second,
			BackoffCoefficient:     2,
			MaximumInterval:        30 * time.Second,
			MaximumAttempts:        5,
			NonRetryableErrorTypes: []string{errTypeUploadMismatch},
		},
	},
	ActivityPolicyAcknowledgeRequest: {
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy:         defaultRetry,
	},
	ActivityPolicyMarkRequestFailed: {
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy:         defaultRetry,
	},
}

func ActivityOptionsFor(policyName string) (workflow.ActivityOptions, error) {
	policy, ok := activityPolicies[policyName]
	if !ok {
		return workflow.ActivityOptions{}, fmt.Errorf("unknown activity policy: %s", policyName)
	}

	retry := policy.RetryPolicy
	return workflow.ActivityOptions{
		StartToCloseTimeout: policy.StartToCloseTimeout,
		RetryPolicy:         &retry,
	}, nil
}

func mustActivityContext(ctx workflow.Context, policyName string) workflow.Context {
	ao, err := ActivityOptionsFor(policyName)
	if err != nil {
		panic(err)
	}
	return workflow.WithActivityOptions(ctx, ao)
}
