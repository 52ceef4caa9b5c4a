package api

import (
	"context"
	"net/http"
	"time"

	"github.com/flosch/pongo2/v6"
	"github.com/google/uuid"

	"legalize-docs/internal/domain"
	"legalize-docs/internal/forms"
)

const (
	msgContactSent   = "Message sent successfully!"
	msgContactFailed = "We could not send your message. Please try again."
)

func (h *Handler) ContactPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "contact.html", pongo2.Context{"title": "Contact Us"})
}

func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, "contact.html", pongo2.Context{"title": "Contact Us"})
		return
	}
	f := forms.Contact{
		FullName: forms.Clean(r.PostForm.Get("fullName")),
		Email:    forms.Clean(r.PostForm.Get("email")),
		Subject:  forms.Clean(r.PostForm.Get("subject")),
		Message:  forms.Clean(r.PostForm.Get("message")),
	}
	page := pongo2.Context{
		"title": "Contact Us",
		"values": map[string]string{
			"fullName": f.FullName,
			"email":    f.Email,
			"subject":  f.Subject,
			"message":  f.Message,
		},
	}
	if errs := f.Validate(); !errs.Empty() {
		page["errors"] = errs
		h.render(w, r, http.StatusUnprocessableEntity, "contact.html", page)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	if err := h.sendContact(ctx, f); err != nil {
		h.logger.Error("save contact message", "error", err)
		page["notices"] = []toast{errorToast(msgContactFailed)}
		h.render(w, r, http.StatusBadGateway, "contact.html", page)
		return
	}
	redirect(w, r, "/contact-us", successToast(msgContactSent))
}

func (h *Handler) sendContact(ctx context.Context, f forms.Contact) error {
	if err := wait(ctx, h.cfg.ContactDelay); err != nil {
		return err
	}
	msg := domain.ContactMessage{
		ID:       uuid.NewString(),
		FullName: f.FullName,
		Email:    f.Email,
		Subject:  f.Subject,
		Message:  f.Message,
		SentAt:   h.now().UTC(),
	}
	if err := h.contacts.SaveContactMessage(ctx, msg); err != nil {
		return err
	}
	h.metrics.IncrementContactMessages()
	h.logger.Info("contact message received", "message_id", msg.ID)
	return nil
}
