package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/flosch/pongo2/v6"
	"github.com/go-chi/chi/v5"

	"legalize-docs/internal/domain"
	"legalize-docs/internal/forms"
	"legalize-docs/internal/wizard"
)

const submitTimeout = 30 * time.Second

// StartRequest opens a fresh wizard for the service. Revisiting the service
// URL always starts over.
func (h *Handler) StartRequest(w http.ResponseWriter, r *http.Request) {
	serviceID := chi.URLParam(r, "serviceID")
	if _, ok := domain.LookupService(serviceID); !ok {
		h.notFound(w, r)
		return
	}
	wz := h.registry.Create(serviceID)
	http.Redirect(w, r, wizardPath(serviceID, wz.ID()), http.StatusSeeOther)
}

func (h *Handler) RequestPage(w http.ResponseWriter, r *http.Request) {
	wz, svc, ok := h.lookupWizard(w, r)
	if !ok {
		return
	}
	view := newWizardView(wz.Snapshot(), svc)
	h.render(w, r, http.StatusOK, "wizard.html", pongo2.Context{
		"title":   svc.Title,
		"wizard":  view,
		"notices": toastsFrom(wz.Notifications()),
	})
}

func (h *Handler) RequestAdvance(w http.ResponseWriter, r *http.Request) {
	h.wizardAction(w, r, func(wz *wizard.Wizard) error { return wz.Advance() })
}

func (h *Handler) RequestBack(w http.ResponseWriter, r *http.Request) {
	h.wizardAction(w, r, func(wz *wizard.Wizard) error { return wz.GoBack() })
}

func (h *Handler) RequestJump(w http.ResponseWriter, r *http.Request) {
	h.wizardAction(w, r, func(wz *wizard.Wizard) error {
		step, err := strconv.Atoi(chi.URLParam(r, "step"))
		if err != nil {
			return wizard.ErrStepNotJumpable
		}
		return wz.JumpTo(domain.Step(step))
	})
}

// RequestFields saves the first-step form. A "continue" submit also advances.
func (h *Handler) RequestFields(w http.ResponseWriter, r *http.Request) {
	h.wizardAction(w, r, func(wz *wizard.Wizard) error {
		if err := r.ParseForm(); err != nil {
			return err
		}
		values := make(map[string]string)
		for _, field := range formFields {
			if _, ok := r.PostForm[string(field)]; ok {
				values[string(field)] = r.PostForm.Get(string(field))
			}
		}
		if err := applyFields(wz, values); err != nil {
			return err
		}
		if r.PostForm.Get("action") == "continue" {
			return wz.Advance()
		}
		return nil
	})
}

func (h *Handler) RequestUpload(w http.ResponseWriter, r *http.Request) {
	h.wizardAction(w, r, func(wz *wizard.Wizard) error {
		candidate, err := h.readFileCandidate(w, r)
		if err != nil {
			return err
		}
		return wz.SubmitFile(r.Context(), candidate)
	})
}

func (h *Handler) RequestRemoveFile(w http.ResponseWriter, r *http.Request) {
	h.wizardAction(w, r, func(wz *wizard.Wizard) error { return wz.RemoveFile() })
}

func (h *Handler) RequestSubmit(w http.ResponseWriter, r *http.Request) {
	h.wizardAction(w, r, func(wz *wizard.Wizard) error {
		ctx, cancel := context.WithTimeout(r.Context(), submitTimeout)
		defer cancel()
		_, err := wz.Submit(ctx)
		return err
	})
}

// wizardAction runs op and redirects back to the wizard page. Rejections that
// the wizard already queued as a notification are not repeated as a flash.
func (h *Handler) wizardAction(w http.ResponseWriter, r *http.Request, op func(*wizard.Wizard) error) {
	wz, _, ok := h.lookupWizard(w, r)
	if !ok {
		return
	}
	target := wizardPath(wz.ServiceID(), wz.ID())

	err := op(wz)
	switch {
	case err == nil, errors.Is(err, wizard.ErrInvalidFileType), errors.Is(err, wizard.ErrFileTooLarge), errors.Is(err, wizard.ErrMissingRequiredUpload):
		redirect(w, r, target)
	case errors.Is(err, wizard.ErrWizardClosed):
		redirect(w, r, "/services/"+wz.ServiceID())
	case wizard.IsValidation(err), errors.Is(err, errMissingFile), errors.Is(err, errUploadTooBig), errors.Is(err, errBadMultipart):
		redirect(w, r, target, errorToast(rejectionMessage(err)))
	default:
		// Submit failures are already queued by the wizard.
		h.logger.Warn("wizard action failed", "wizard_id", wz.ID(), "error", err)
		redirect(w, r, target)
	}
}

func (h *Handler) lookupWizard(w http.ResponseWriter, r *http.Request) (*wizard.Wizard, domain.Service, bool) {
	serviceID := chi.URLParam(r, "serviceID")
	svc, ok := domain.LookupService(serviceID)
	if !ok {
		h.notFound(w, r)
		return nil, domain.Service{}, false
	}
	wz, err := h.registry.Get(chi.URLParam(r, "wizardID"))
	if err != nil || wz.ServiceID() != serviceID {
		// Evicted or unknown: start over like a page reload would.
		redirect(w, r, "/services/"+serviceID)
		return nil, domain.Service{}, false
	}
	return wz, svc, true
}

var formFields = []wizard.Field{wizard.FieldDocumentType, wizard.FieldIssuingAuthority, wizard.FieldStateOfIssuance}

// applyFields sets each given value in a fixed order so that an unknown key
// fails before anything is written.
func applyFields(wz *wizard.Wizard, values map[string]string) error {
	for key := range values {
		if !knownField(key) {
			return fmt.Errorf("set %q: %w", key, wizard.ErrUnknownField)
		}
	}
	for _, field := range formFields {
		value, ok := values[string(field)]
		if !ok {
			continue
		}
		if err := wz.SetField(field, forms.Clean(value)); err != nil {
			return err
		}
	}
	return nil
}

func knownField(key string) bool {
	for _, f := range formFields {
		if string(f) == key {
			return true
		}
	}
	return false
}

var rejectionMessages = map[error]string{
	wizard.ErrUploadInProgress:     "Please wait for the current upload to finish.",
	wizard.ErrSubmissionInProgress: "Your request is being submitted.",
	wizard.ErrStepNotJumpable:      "Please use Continue to reach the review step.",
	wizard.ErrSubmitNotReady:       "Please review your request before submitting.",
	wizard.ErrAlreadySubmitted:     "This request has already been submitted.",
	wizard.ErrUnknownField:         "Unknown form field.",
	errMissingFile:                 "Please choose a file to upload.",
	errUploadTooBig:                "File size should be less than 5MB.",
	errBadMultipart:                "Upload failed. Please try again.",
}

func rejectionMessage(err error) string {
	for target, msg := range rejectionMessages {
		if errors.Is(err, target) {
			return msg
		}
	}
	return err.Error()
}
