package temporal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/testsuite"

	"legalize-docs/internal/domain"
	"legalize-docs/internal/storage"
)

type fakeBlob struct {
	objects map[string][]byte
	err     error
}

func (f *fakeBlob) GetDocument(_ context.Context, objectKey string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	content, ok := f.objects[objectKey]
	if !ok {
		return nil, errors.New("no such key")
	}
	return content, nil
}

func sampleRequest(id string) domain.ServiceRequest {
	return domain.ServiceRequest{
		ID:        id,
		ServiceID: "apostille",
		Form:      domain.DefaultRequestForm(),
		File: domain.SelectedFile{
			Name:      "diploma.pdf",
			SizeBytes: 4,
			MIMEType:  "application/pdf",
			ObjectKey: id + "/diploma.pdf",
		},
		Summary:     domain.StandardOrderSummary(),
		SubmittedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRecordRequestActivity_Idempotent(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestActivityEnvironment()

	store := storage.NewMemoryStore()
	acts := &Activities{Store: store}
	env.RegisterActivity(acts)

	req := sampleRequest("req-record")
	_, err := env.ExecuteActivity(acts.RecordRequestActivity, RecordRequestInput{Request: req})
	require.NoError(t, err)
	_, err = env.ExecuteActivity(acts.RecordRequestActivity, RecordRequestInput{Request: req})
	require.NoError(t, err)

	rec, err := store.GetRequest(context.Background(), req.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusSubmitted, rec.Status)
	require.Equal(t, []domain.AuditState{domain.AuditRecorded}, store.AuditTrail(req.ID))
}

func TestVerifyUploadActivity(t *testing.T) {
	req := sampleRequest("req-verify")

	tests := []struct {
		name    string
		blob    BlobStore
		file    domain.SelectedFile
		wantErr bool
	}{
		{
			name: "matching object",
			blob: &fakeBlob{objects: map[string][]byte{req.File.ObjectKey: []byte("%PDF")}},
			file: req.File,
		},
		{
			name: "no object key skips check",
			blob: &fakeBlob{err: errors.New("unreachable")},
			file: domain.SelectedFile{Name: "diploma.pdf", SizeBytes: 4, MIMEType: "application/pdf"},
		},
		{
			name:    "size mismatch",
			blob:    &fakeBlob{objects: map[string][]byte{req.File.ObjectKey: []byte("%P")}},
			file:    req.File,
			wantErr: true,
		},
		{
			name:    "missing object",
			blob:    &fakeBlob{objects: map[string][]byte{}},
			file:    req.File,
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var suite testsuite.WorkflowTestSuite
			env := suite.NewTestActivityEnvironment()
			acts := &Activities{Store: storage.NewMemoryStore(), Blob: tc.blob}
			env.RegisterActivity(acts)

			_, err := env.ExecuteActivity(acts.VerifyUploadActivity, VerifyUploadInput{RequestID: req.ID, File: tc.file})
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestAcknowledgeRequestActivity(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestActivityEnvironment()

	store := storage.NewMemoryStore()
	req := sampleRequest("req-ack")
	require.NoError(t, store.CreateRequest(context.Background(), req))

	acts := &Activities{Store: store}
	env.RegisterActivity(acts)

	_, err := env.ExecuteActivity(acts.AcknowledgeRequestActivity, AcknowledgeRequestInput{RequestID: req.ID})
	require.NoError(t, err)
	_, err = env.ExecuteActivity(acts.AcknowledgeRequestActivity, AcknowledgeRequestInput{RequestID: req.ID})
	require.NoError(t, err)

	rec, err := store.GetRequest(context.Background(), req.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusAcknowledged, rec.Status)
	require.Equal(t, []domain.AuditState{domain.AuditAcknowledged}, store.AuditTrail(req.ID))
}

func TestAcknowledgeRequestActivity_UnknownRequest(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestActivityEnvironment()

	acts := &Activities{Store: storage.NewMemoryStore()}
	env.RegisterActivity(acts)

	_, err := env.ExecuteActivity(acts.AcknowledgeRequestActivity, AcknowledgeRequestInput{RequestID: "missing"})
	require.Error(t, err)
}

func TestActivityOptionsFor(t *testing.T) {
	for _, name := range []string{
		ActivityPolicyRecordRequest,
		ActivityPolicyVerifyUpload,
		ActivityPolicyAcknowledgeRequest,
		ActivityPolicyMarkRequestFailed,
	} {
		ao, err := ActivityOptionsFor(name)
		require.NoError(t, err, name)
		require.Greater(t, ao.StartToCloseTimeout, time.Duration(0), name)
		require.NotNil(t, ao.RetryPolicy, name)
	}

	_, err := ActivityOptionsFor("nope")
	require.Error(t, err)
}
