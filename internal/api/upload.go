package api

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"legalize-docs/internal/domain"
)

var (
	errMissingFile    = errors.New("file form field is required")
	errBadMultipart   = errors.New("invalid multipart payload")
	errUploadTooBig   = errors.New("file exceeds size limit")
	errUnreadableFile = errors.New("failed to read file")
)

// readFileCandidate pulls the "file" part out of a multipart request. The
// MIME type comes from the part header and falls back to content sniffing.
func (h *Handler) readFileCandidate(w http.ResponseWriter, r *http.Request) (domain.FileCandidate, error) {
	limit := h.cfg.MaxUploadBytes
	r.Body = http.MaxBytesReader(w, r.Body, limit+1<<20)
	if err := r.ParseMultipartForm(limit); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return domain.FileCandidate{}, errUploadTooBig
		}
		return domain.FileCandidate{}, errBadMultipart
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return domain.FileCandidate{}, errMissingFile
	}
	defer file.Close()

	body, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return domain.FileCandidate{}, errUnreadableFile
	}
	if int64(len(body)) > limit {
		return domain.FileCandidate{}, errUploadTooBig
	}

	return domain.FileCandidate{
		Name:      header.Filename,
		SizeBytes: int64(len(body)),
		MIMEType:  contentType(header.Header.Get("Content-Type"), body),
		Content:   body,
	}, nil
}

func contentType(declared string, body []byte) string {
	if declared != "" {
		if mt, _, err := mime.ParseMediaType(declared); err == nil && mt != "application/octet-stream" {
			return strings.ToLower(mt)
		}
	}
	mt, _, _ := mime.ParseMediaType(http.DetectContentType(body))
	return mt
}
