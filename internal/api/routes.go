package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(h *Handler, limiter *RateLimiter) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.NotFound(h.notFound)

	r.Get("/healthz", h.Healthz)
	r.Get("/readyz", h.Readyz)
	r.Method(http.MethodGet, "/metrics", h.metrics.Handler())

	r.Get("/", h.Home)
	r.Get("/about-us", h.About)
	r.Get("/my-dashboard", h.Dashboard)
	r.Get("/provider", h.ProviderDashboard)

	r.Get("/contact-us", h.ContactPage)
	r.Get("/login", h.LoginPage)
	r.Get("/signup", h.SignupPage)
	r.Get("/forgot-password", h.ForgotPasswordPage)
	r.Get("/reset-password", h.ResetPasswordPage)
	r.Get("/verify-email", h.VerifyEmailPage)
	r.Post("/logout", h.Logout)

	r.Group(func(r chi.Router) {
		r.Use(h.limit(limiter, "forms"))
		r.Post("/contact-us", h.Contact)
		r.Post("/login", h.Login)
		r.Post("/signup", h.Signup)
		r.Post("/forgot-password", h.ForgotPassword)
		r.Post("/reset-password", h.ResetPassword)
		r.Post("/verify-email", h.VerifyEmail)
		r.Post("/verify-email/resend", h.ResendVerification)
	})

	r.Get("/services", h.Services)
	r.Route("/services/{serviceID}", func(r chi.Router) {
		r.Get("/", h.StartRequest)
		r.Route("/requests/{wizardID}", func(r chi.Router) {
			r.Get("/", h.RequestPage)
			r.Post("/advance", h.RequestAdvance)
			r.Post("/back", h.RequestBack)
			r.Post("/steps/{step}", h.RequestJump)
			r.Post("/fields", h.RequestFields)
			r.Post("/file", h.RequestUpload)
			r.Post("/file/remove", h.RequestRemoveFile)
			r.Post("/submit", h.RequestSubmit)
		})
	})

	r.Route("/v1/wizards", func(r chi.Router) {
		r.Post("/", h.CreateWizard)
		r.Route("/{wizardID}", func(r chi.Router) {
			r.Get("/", h.GetWizard)
			r.Delete("/", h.DeleteWizard)
			r.Post("/advance", h.AdvanceWizard)
			r.Post("/back", h.BackWizard)
			r.Post("/jump", h.JumpWizard)
			r.Patch("/fields", h.SetWizardFields)
			r.Post("/file", h.UploadWizardFile)
			r.Delete("/file", h.RemoveWizardFile)
			r.Post("/submit", h.SubmitWizard)
		})
	})

	return r
}
