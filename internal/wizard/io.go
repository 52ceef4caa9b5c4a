package wizard

import (
	"context"
	"time"

	"legalize-docs/internal/domain"
)

const (
	DefaultUploadDelay = time.Second
	DefaultSubmitDelay = time.Second
)

type UploadRequest struct {
	WizardID string
	File     domain.FileCandidate
}

type StoredFile struct {
	ObjectKey string
}

// Uploader moves an accepted file somewhere durable. Implementations must not
// rely on the caller's request context staying alive.
type Uploader interface {
	Upload(ctx context.Context, req UploadRequest) (StoredFile, error)
}

// Submitter hands a completed request to whatever processes it.
type Submitter interface {
	Submit(ctx context.Context, req domain.ServiceRequest) (domain.Receipt, error)
}

// DelayedUploader waits a fixed time and always succeeds.
type DelayedUploader struct {
	Delay time.Duration
}

func (u DelayedUploader) Upload(ctx context.Context, req UploadRequest) (StoredFile, error) {
	if err := sleep(ctx, u.Delay); err != nil {
		return StoredFile{}, err
	}
	return StoredFile{}, nil
}

// DelayedSubmitter waits a fixed time and acknowledges every request.
type DelayedSubmitter struct {
	Delay time.Duration
	Now   func() time.Time
}

func (s DelayedSubmitter) Submit(ctx context.Context, req domain.ServiceRequest) (domain.Receipt, error) {
	if err := sleep(ctx, s.Delay); err != nil {
		return domain.Receipt{}, err
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

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
