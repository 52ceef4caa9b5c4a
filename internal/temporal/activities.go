package temporal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.temporal.io/sdk/temporal"

	"legalize-docs/internal/domain"
)

const errTypeUploadMismatch = "UploadMismatch"

type ActivityStore interface {
	CreateRequest(ctx context.Context, req domain.ServiceRequest) error
	GetRequest(ctx context.Context, requestID string) (domain.RequestRecord, error)
	UpdateRequestStatus(ctx context.Context, requestID string, status domain.RequestStatus) error
	InsertAudit(ctx context.Context, requestID string, state domain.AuditState, detail any) error
}

type BlobStore interface {
	GetDocument(ctx context.Context, objectKey string) ([]byte, error)
}

type Activities struct {
	Store ActivityStore
	Blob  BlobStore
}

type RecordRequestInput struct {
	Request domain.ServiceRequest
}

type VerifyUploadInput struct {
	RequestID string
	File      domain.SelectedFile
}

type AcknowledgeRequestInput struct {
	RequestID string
}

type MarkRequestFailedInput struct {
	RequestID string
	Reason    string
}

func (a *Activities) RecordRequestActivity(ctx context.Context, input RecordRequestInput) error {
	_, err := a.Store.GetRequest(ctx, input.Request.ID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	if err := a.Store.CreateRequest(ctx, input.Request); err != nil {
		return err
	}
	return a.Store.InsertAudit(ctx, input.Request.ID, domain.AuditRecorded, map[string]any{
		"service_id":    input.Request.ServiceID,
		"document_type": input.Request.Form.DocumentType,
		"object_key":    input.Request.File.ObjectKey,
	})
}

// VerifyUploadActivity checks the stored object matches what the wizard
// accepted. Requests whose file was never stored durably pass through.
func (a *Activities) VerifyUploadActivity(ctx context.Context, input VerifyUploadInput) error {
	if input.File.ObjectKey == "" || a.Blob == nil {
		return nil
	}
	content, err := a.Blob.GetDocument(ctx, input.File.ObjectKey)
	if err != nil {
		return fmt.Errorf("read %s: %w", input.File.ObjectKey, err)
	}
	if int64(len(content)) != input.File.SizeBytes {
		return temporal.NewNonRetryableApplicationError(
			fmt.Sprintf("stored object %s has %d bytes, expected %d", input.File.ObjectKey, len(content), input.File.SizeBytes),
			errTypeUploadMismatch,
			nil,
		)
	}
	return nil
}

func (a *Activities) AcknowledgeRequestActivity(ctx context.Context, input AcknowledgeRequestInput) error {
	rec, err := a.Store.GetRequest(ctx, input.RequestID)
	if err != nil {
		return err
	}
	if rec.Status == domain.StatusAcknowledged {
		return nil
	}
	if err := a.Store.UpdateRequestStatus(ctx, input.RequestID, domain.StatusAcknowledged); err != nil {
		return err
	}
	return a.Store.InsertAudit(ctx, input.RequestID, domain.AuditAcknowledged, nil)
}

func (a *Activities) MarkRequestFailedActivity(ctx context.Context, input MarkRequestFailedInput) error {
	if err := a.Store.UpdateRequestStatus(ctx, input.RequestID, domain.StatusFailed); err != nil {
		return err
	}
	return a.Store.InsertAudit(ctx, input.RequestID, domain.AuditFailed, map[string]any{"reason": input.Reason})
}
