package wizard

import "errors"

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

type Kind string

const (
	KindInvalidFileType  Kind = "invalid_file_type"
	KindFileTooLarge     Kind = "file_too_large"
	KindMissingUpload    Kind = "missing_required_upload"
	KindUploadSucceeded  Kind = "upload_succeeded"
	KindUploadFailed     Kind = "upload_failed"
	KindFileRemoved      Kind = "file_removed"
	KindRequestSubmitted Kind = "request_submitted"
	KindSubmitFailed     Kind = "submit_failed"
)

// Notification is a transient toast for the view layer.
type Notification struct {
	Kind    Kind   `json:"kind"`
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

var notifications = map[Kind]Notification{
	KindInvalidFileType:  {Kind: KindInvalidFileType, Level: LevelError, Message: "Please upload a PDF or Image (JPEG/PNG) file."},
	KindFileTooLarge:     {Kind: KindFileTooLarge, Level: LevelError, Message: "File size should be less than 5MB."},
	KindMissingUpload:    {Kind: KindMissingUpload, Level: LevelError, Message: "Please upload a document before proceeding."},
	KindUploadSucceeded:  {Kind: KindUploadSucceeded, Level: LevelSuccess, Message: "Document uploaded successfully!"},
	KindUploadFailed:     {Kind: KindUploadFailed, Level: LevelError, Message: "Upload failed. Please try again."},
	KindFileRemoved:      {Kind: KindFileRemoved, Level: LevelSuccess, Message: "File removed."},
	KindRequestSubmitted: {Kind: KindRequestSubmitted, Level: LevelSuccess, Message: "Request submitted for authentication."},
	KindSubmitFailed:     {Kind: KindSubmitFailed, Level: LevelError, Message: "We could not submit your request. Please try again."},
}

func notificationFor(kind Kind) Notification {
	return notifications[kind]
}

// rejectionKind maps the rejections that surface as a toast.
func rejectionKind(err error) (Kind, bool) {
	switch {
	case errors.Is(err, ErrInvalidFileType):
		return KindInvalidFileType, true
	case errors.Is(err, ErrFileTooLarge):
		return KindFileTooLarge, true
	case errors.Is(err, ErrMissingRequiredUpload):
		return KindMissingUpload, true
	}
	return "", false
}
