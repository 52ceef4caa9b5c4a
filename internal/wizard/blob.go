package wizard

import (
	"context"
	"fmt"
)

type BlobStore interface {
	PutDocument(ctx context.Context, documentID, filename, contentType string, content []byte) (string, error)
}

// BlobUploader stores accepted files under the wizard ID.
type BlobUploader struct {
	Blob BlobStore
}

func (u BlobUploader) Upload(ctx context.Context, req UploadRequest) (StoredFile, error) {
	key, err := u.Blob.PutDocument(ctx, req.WizardID, req.File.Name, req.File.MIMEType, req.File.Content)
	if err != nil {
		return StoredFile{}, fmt.Errorf("store %s: %w", req.File.Name, err)
	}
	return StoredFile{ObjectKey: key}, nil
}
