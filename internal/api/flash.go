package api

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"legalize-docs/internal/wizard"
)

const flashCookie = "flash"

// toast is a one-shot message shown on the next rendered page.
type toast struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

func successToast(msg string) toast { return toast{Level: string(wizard.LevelSuccess), Message: msg} }
func errorToast(msg string) toast   { return toast{Level: string(wizard.LevelError), Message: msg} }

func toastsFrom(notes []wizard.Notification) []toast {
	out := make([]toast, 0, len(notes))
	for _, n := range notes {
		out = append(out, toast{Level: string(n.Level), Message: n.Message})
	}
	return out
}

func setFlash(w http.ResponseWriter, toasts ...toast) {
	if len(toasts) == 0 {
		return
	}
	raw, err := json.Marshal(toasts)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// takeFlash returns and clears the pending toasts.
func takeFlash(w http.ResponseWriter, r *http.Request) []toast {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: "", Path: "/", MaxAge: -1})

	raw, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var toasts []toast
	if err := json.Unmarshal(raw, &toasts); err != nil {
		return nil
	}
	return toasts
}

func redirect(w http.ResponseWriter, r *http.Request, url string, toasts ...toast) {
	setFlash(w, toasts...)
	http.Redirect(w, r, url, http.StatusSeeOther)
}
