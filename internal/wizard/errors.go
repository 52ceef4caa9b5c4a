package wizard

import (
	"errors"

	"legalize-docs/internal/domain"
)

var (
	ErrInvalidFileType       = domain.ErrInvalidFileType
	ErrFileTooLarge          = domain.ErrFileTooLarge
	ErrMissingRequiredUpload = errors.New("missing required upload")

	ErrUploadInProgress     = errors.New("upload in progress")
	ErrSubmissionInProgress = errors.New("submission in progress")
	ErrStepNotJumpable      = errors.New("step cannot be reached directly")
	ErrSubmitNotReady       = errors.New("request can only be submitted from the review step")
	ErrAlreadySubmitted     = errors.New("request already submitted")
	ErrUnknownField         = errors.New("unknown form field")
	ErrWizardClosed         = errors.New("wizard closed")
	ErrNotFound             = errors.New("wizard not found")
)

// IsValidation reports whether err is a user-correctable rejection rather
// than an infrastructure failure.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrInvalidFileType,
		ErrFileTooLarge,
		ErrMissingRequiredUpload,
		ErrUploadInProgress,
		ErrSubmissionInProgress,
		ErrStepNotJumpable,
		ErrSubmitNotReady,
		ErrAlreadySubmitted,
		ErrUnknownField,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
