package domain

import (
	"errors"
	"strings"
)

const MaxUploadBytes int64 = 5 * 1024 * 1024

var (
	ErrInvalidFileType = errors.New("invalid file type")
	ErrFileTooLarge    = errors.New("file too large")
)

var acceptedMIMETypes = map[string]struct{}{
	"application/pdf": {},
	"image/jpeg":      {},
	"image/png":       {},
}

// AcceptedMIMEType reports whether the upload step takes files of this type.
func AcceptedMIMEType(mimeType string) bool {
	_, ok := acceptedMIMETypes[strings.ToLower(strings.TrimSpace(mimeType))]
	return ok
}

// ValidateFileCandidate applies the type check before the size check.
func ValidateFileCandidate(c FileCandidate) error {
	if !AcceptedMIMEType(c.MIMEType) {
		return ErrInvalidFileType
	}
	if c.SizeBytes > MaxUploadBytes {
		return ErrFileTooLarge
	}
	return nil
}

func ValidDocumentType(v DocumentType) bool {
	switch v {
	case DocTypeBirthCertificate, DocTypeDiploma, DocTypePowerOfAttorney:
		return true
	}
	return false
}

func ValidIssuingState(v IssuingState) bool {
	switch v {
	case StateNewYork, StateCalifornia, StateTexas:
		return true
	}
	return false
}
