package api

import (
	"net/http"

	"github.com/flosch/pongo2/v6"

	"legalize-docs/internal/domain"
)

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "home.html", pongo2.Context{
		"title":    "Apostille & Document Legalization",
		"why":      domain.WhyChooseUs,
		"steps":    domain.HowItWorks,
		"faqs":     domain.FAQs,
		"services": domain.Services,
	})
}

func (h *Handler) About(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "about.html", pongo2.Context{
		"title":   "About Us",
		"mission": domain.Mission,
		"values":  domain.CoreValues,
		"faqs":    domain.FAQs,
	})
}

func (h *Handler) Services(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "services.html", pongo2.Context{
		"title": "Our Services",
	})
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "dashboard.html", pongo2.Context{
		"title":     "My Dashboard",
		"applicant": domain.DemoApplicant,
	})
}

func (h *Handler) ProviderDashboard(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "provider.html", pongo2.Context{
		"title": "Provider Dashboard",
	})
}
