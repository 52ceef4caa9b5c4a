package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"legalize-docs/internal/domain"
	"legalize-docs/internal/wizard"
)

type createWizardRequest struct {
	ServiceID string `json:"service_id"`
}

type jumpRequest struct {
	Step int `json:"step"`
}

type wizardResponse struct {
	wizard.Snapshot
	Summary       domain.OrderSummary   `json:"summary"`
	Notifications []wizard.Notification `json:"notifications"`
}

func snapshotResponse(wz *wizard.Wizard) wizardResponse {
	notes := wz.Notifications()
	if notes == nil {
		notes = []wizard.Notification{}
	}
	return wizardResponse{
		Snapshot:      wz.Snapshot(),
		Summary:       domain.StandardOrderSummary(),
		Notifications: notes,
	}
}

func (h *Handler) CreateWizard(w http.ResponseWriter, r *http.Request) {
	var req createWizardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json"})
		return
	}
	if _, ok := domain.LookupService(req.ServiceID); !ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "unknown service"})
		return
	}
	wz := h.registry.Create(req.ServiceID)
	writeJSON(w, http.StatusCreated, snapshotResponse(wz))
}

func (h *Handler) GetWizard(w http.ResponseWriter, r *http.Request) {
	h.apiAction(w, r, http.StatusOK, nil)
}

func (h *Handler) DeleteWizard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "wizardID")
	if _, err := h.registry.Get(id); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "wizard not found"})
		return
	}
	h.registry.Remove(id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AdvanceWizard(w http.ResponseWriter, r *http.Request) {
	h.apiAction(w, r, http.StatusOK, func(wz *wizard.Wizard) error { return wz.Advance() })
}

func (h *Handler) BackWizard(w http.ResponseWriter, r *http.Request) {
	h.apiAction(w, r, http.StatusOK, func(wz *wizard.Wizard) error { return wz.GoBack() })
}

func (h *Handler) JumpWizard(w http.ResponseWriter, r *http.Request) {
	var req jumpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json"})
		return
	}
	h.apiAction(w, r, http.StatusOK, func(wz *wizard.Wizard) error { return wz.JumpTo(domain.Step(req.Step)) })
}

func (h *Handler) SetWizardFields(w http.ResponseWriter, r *http.Request) {
	var values map[string]string
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json"})
		return
	}
	h.apiAction(w, r, http.StatusOK, func(wz *wizard.Wizard) error { return applyFields(wz, values) })
}

func (h *Handler) UploadWizardFile(w http.ResponseWriter, r *http.Request) {
	h.apiAction(w, r, http.StatusAccepted, func(wz *wizard.Wizard) error {
		candidate, err := h.readFileCandidate(w, r)
		if err != nil {
			return err
		}
		return wz.SubmitFile(r.Context(), candidate)
	})
}

func (h *Handler) RemoveWizardFile(w http.ResponseWriter, r *http.Request) {
	h.apiAction(w, r, http.StatusOK, func(wz *wizard.Wizard) error { return wz.RemoveFile() })
}

func (h *Handler) SubmitWizard(w http.ResponseWriter, r *http.Request) {
	h.apiAction(w, r, http.StatusOK, func(wz *wizard.Wizard) error {
		ctx, cancel := context.WithTimeout(r.Context(), submitTimeout)
		defer cancel()
		_, err := wz.Submit(ctx)
		return err
	})
}

// apiAction runs op against the wizard named in the URL and replies with the
// resulting snapshot, or with an error body when op was rejected.
func (h *Handler) apiAction(w http.ResponseWriter, r *http.Request, okStatus int, op func(*wizard.Wizard) error) {
	wz, err := h.registry.Get(chi.URLParam(r, "wizardID"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "wizard not found"})
		return
	}
	if op != nil {
		if err := op(wz); err != nil {
			status := apiErrorStatus(err)
			if status >= http.StatusInternalServerError {
				h.logger.Error("wizard api action failed", "wizard_id", wz.ID(), "error", err)
			}
			writeJSON(w, status, map[string]any{
				"error":         err.Error(),
				"notifications": wz.Notifications(),
			})
			return
		}
	}
	writeJSON(w, okStatus, snapshotResponse(wz))
}

func apiErrorStatus(err error) int {
	switch {
	case errors.Is(err, wizard.ErrInvalidFileType),
		errors.Is(err, wizard.ErrFileTooLarge),
		errors.Is(err, wizard.ErrMissingRequiredUpload):
		return http.StatusUnprocessableEntity
	case errors.Is(err, wizard.ErrUploadInProgress),
		errors.Is(err, wizard.ErrSubmissionInProgress),
		errors.Is(err, wizard.ErrAlreadySubmitted),
		errors.Is(err, wizard.ErrSubmitNotReady),
		errors.Is(err, wizard.ErrWizardClosed):
		return http.StatusConflict
	case errors.Is(err, wizard.ErrStepNotJumpable),
		errors.Is(err, wizard.ErrUnknownField),
		errors.Is(err, errMissingFile),
		errors.Is(err, errBadMultipart),
		errors.Is(err, errUnreadableFile):
		return http.StatusBadRequest
	case errors.Is(err, errUploadTooBig):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusBadGateway
	}
}
