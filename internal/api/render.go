package api

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/flosch/pongo2/v6"

	"legalize-docs/internal/auth"
	"legalize-docs/internal/domain"
)

//go:embed templates/*.html
var templateFiles embed.FS

const sessionCookie = "session"

var pageTemplates = []string{
	"home.html",
	"about.html",
	"services.html",
	"contact.html",
	"login.html",
	"signup.html",
	"forgot_password.html",
	"reset_password.html",
	"verify_email.html",
	"dashboard.html",
	"provider.html",
	"wizard.html",
	"not_found.html",
}

type renderer struct {
	templates map[string]*pongo2.Template
}

func newRenderer() (*renderer, error) {
	sub, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}
	set := pongo2.NewSet("pages", pongo2.NewFSLoader(sub))
	set.Globals = pongo2.Context{
		"support":  domain.Support,
		"services": domain.Services,
		"tagline":  domain.Tagline,
	}

	r := &renderer{templates: make(map[string]*pongo2.Template, len(pageTemplates))}
	for _, name := range pageTemplates {
		tpl, err := set.FromFile(name)
		if err != nil {
			return nil, fmt.Errorf("load template %q: %w", name, err)
		}
		r.templates[name] = tpl
	}
	return r, nil
}

// render writes a full page. Pending flash toasts and the signed-in principal
// are added to every page context.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data pongo2.Context) {
	tpl, ok := h.pages.templates[name]
	if !ok {
		h.logger.Error("unknown template", "template", name)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	ctx := pongo2.Context{
		"path":   r.URL.Path,
		"year":   h.now().Year(),
		"toasts": takeFlash(w, r),
	}
	if p, ok := h.principal(r); ok {
		ctx["principal"] = p
	}
	ctx = ctx.Update(data)
	if extra, ok := data["notices"].([]toast); ok {
		ctx["toasts"] = append(ctx["toasts"].([]toast), extra...)
	}

	body, err := tpl.ExecuteBytes(ctx)
	if err != nil {
		h.logger.Error("render page", "template", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "not_found.html", pongo2.Context{"title": "Page not found"})
}

func (h *Handler) principal(r *http.Request) (auth.Principal, bool) {
	if h.sessions == nil {
		return auth.Principal{}, false
	}
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return auth.Principal{}, false
	}
	p, err := h.sessions.Parse(c.Value)
	if err != nil {
		return auth.Principal{}, false
	}
	return p, true
}
