package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/flosch/pongo2/v6"

	"legalize-docs/internal/auth"
	"legalize-docs/internal/forms"
)

const (
	msgLoginOK        = "Login successful!"
	msgLoginFailed    = "Invalid email or password!"
	msgSignupOK       = "Account created successfully!"
	msgSignupFailed   = "An error occurred during sign up."
	msgResetLinkSent  = "Reset link sent to your email!"
	msgPasswordReset  = "Password reset successful!"
	msgGenericFailure = "An error occurred. Please try again."
	msgEmailVerified  = "Email verified successfully!"
	msgVerifyFailed   = "Invalid verification code."
	msgCodeResent     = "New code sent to your email!"
	msgResendTooSoon  = "Please wait before requesting a new code."
	msgLoggedOut      = "You have been signed out."
)

const authTimeout = 10 * time.Second

func (h *Handler) authContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), authTimeout)
}

func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login.html", pongo2.Context{"title": "Log In"})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, "login.html", pongo2.Context{"title": "Log In"})
		return
	}
	f := forms.Login{
		Email:    forms.Clean(r.PostForm.Get("email")),
		Password: r.PostForm.Get("password"),
	}
	page := pongo2.Context{"title": "Log In", "values": map[string]string{"email": f.Email}}
	if errs := f.Validate(); !errs.Empty() {
		page["errors"] = errs
		h.render(w, r, http.StatusUnprocessableEntity, "login.html", page)
		return
	}

	ctx, cancel := h.authContext(r)
	defer cancel()
	p, err := h.auth.Login(ctx, f.Email, f.Password)
	h.metrics.AuthAttempt("login", err == nil)
	if err != nil {
		status := http.StatusUnauthorized
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			h.logger.Error("login failed", "error", err)
			status = http.StatusBadGateway
		}
		page["notices"] = []toast{errorToast(msgLoginFailed)}
		h.render(w, r, status, "login.html", page)
		return
	}

	if h.sessions != nil {
		token, err := h.sessions.Issue(p)
		if err != nil {
			h.logger.Error("issue session", "error", err)
		} else {
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    token,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
	}
	redirect(w, r, p.RedirectURL, successToast(msgLoginOK))
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1})
	redirect(w, r, "/", successToast(msgLoggedOut))
}

func (h *Handler) SignupPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "signup.html", pongo2.Context{"title": "Create Account"})
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, "signup.html", pongo2.Context{"title": "Create Account"})
		return
	}
	f := forms.Signup{
		FullName:        forms.Clean(r.PostForm.Get("fullName")),
		Email:           forms.Clean(r.PostForm.Get("email")),
		Password:        r.PostForm.Get("password"),
		ConfirmPassword: r.PostForm.Get("confirmPassword"),
	}
	page := pongo2.Context{
		"title":  "Create Account",
		"values": map[string]string{"fullName": f.FullName, "email": f.Email},
	}
	if errs := f.Validate(); !errs.Empty() {
		page["errors"] = errs
		h.render(w, r, http.StatusUnprocessableEntity, "signup.html", page)
		return
	}

	ctx, cancel := h.authContext(r)
	defer cancel()
	err := h.auth.Signup(ctx, f.FullName, f.Email, f.Password)
	h.metrics.AuthAttempt("signup", err == nil)
	if err != nil {
		h.logger.Error("signup failed", "error", err)
		page["notices"] = []toast{errorToast(msgSignupFailed)}
		h.render(w, r, http.StatusBadGateway, "signup.html", page)
		return
	}
	redirect(w, r, "/login", successToast(msgSignupOK))
}

func (h *Handler) ForgotPasswordPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "forgot_password.html", pongo2.Context{
		"title": "Forgot Password",
		"sent":  r.URL.Query().Get("sent") == "1",
	})
}

func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, "forgot_password.html", pongo2.Context{"title": "Forgot Password"})
		return
	}
	f := forms.ForgotPassword{Email: forms.Clean(r.PostForm.Get("email"))}
	page := pongo2.Context{"title": "Forgot Password", "values": map[string]string{"email": f.Email}}
	if errs := f.Validate(); !errs.Empty() {
		page["errors"] = errs
		h.render(w, r, http.StatusUnprocessableEntity, "forgot_password.html", page)
		return
	}

	ctx, cancel := h.authContext(r)
	defer cancel()
	err := h.auth.RequestPasswordReset(ctx, f.Email)
	h.metrics.AuthAttempt("forgot_password", err == nil)
	if err != nil {
		h.logger.Error("password reset request failed", "error", err)
		page["notices"] = []toast{errorToast(msgGenericFailure)}
		h.render(w, r, http.StatusBadGateway, "forgot_password.html", page)
		return
	}
	redirect(w, r, "/forgot-password?sent=1", successToast(msgResetLinkSent))
}

func (h *Handler) ResetPasswordPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "reset_password.html", pongo2.Context{"title": "Reset Password"})
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, "reset_password.html", pongo2.Context{"title": "Reset Password"})
		return
	}
	f := forms.ResetPassword{
		Password:        r.PostForm.Get("password"),
		ConfirmPassword: r.PostForm.Get("confirmPassword"),
	}
	page := pongo2.Context{"title": "Reset Password"}
	if errs := f.Validate(); !errs.Empty() {
		page["errors"] = errs
		h.render(w, r, http.StatusUnprocessableEntity, "reset_password.html", page)
		return
	}

	ctx, cancel := h.authContext(r)
	defer cancel()
	err := h.auth.ResetPassword(ctx, f.Password)
	h.metrics.AuthAttempt("reset_password", err == nil)
	if err != nil {
		h.logger.Error("password reset failed", "error", err)
		page["notices"] = []toast{errorToast(msgGenericFailure)}
		h.render(w, r, http.StatusBadGateway, "reset_password.html", page)
		return
	}
	redirect(w, r, "/login", successToast(msgPasswordReset))
}

func (h *Handler) VerifyEmailPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "verify_email.html", pongo2.Context{
		"title":    "Verify Email",
		"email":    r.URL.Query().Get("email"),
		"cooldown": int(auth.DefaultResendCooldown.Seconds()),
	})
}

func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, "verify_email.html", pongo2.Context{"title": "Verify Email"})
		return
	}
	f := forms.VerifyEmail{Code: forms.Clean(r.PostForm.Get("code"))}
	page := pongo2.Context{
		"title":    "Verify Email",
		"email":    forms.Clean(r.PostForm.Get("email")),
		"cooldown": int(auth.DefaultResendCooldown.Seconds()),
	}
	if errs := f.Validate(); !errs.Empty() {
		page["errors"] = errs
		h.render(w, r, http.StatusUnprocessableEntity, "verify_email.html", page)
		return
	}

	ctx, cancel := h.authContext(r)
	defer cancel()
	err := h.auth.VerifyEmail(ctx, f.Code)
	h.metrics.AuthAttempt("verify_email", err == nil)
	if err != nil {
		h.logger.Warn("email verification failed", "error", err)
		page["notices"] = []toast{errorToast(msgVerifyFailed)}
		h.render(w, r, http.StatusUnprocessableEntity, "verify_email.html", page)
		return
	}
	redirect(w, r, "/login", successToast(msgEmailVerified))
}

// ResendVerification throttles per email, or per client when no email is
// known.
func (h *Handler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirect(w, r, "/verify-email", errorToast(msgGenericFailure))
		return
	}
	email := forms.Clean(r.PostForm.Get("email"))
	key := email
	if key == "" {
		key = "ip:" + clientIP(r)
	}

	ctx, cancel := h.authContext(r)
	defer cancel()
	err := h.auth.ResendVerification(ctx, key)
	h.metrics.AuthAttempt("resend_verification", err == nil)
	target := "/verify-email"
	if email != "" {
		target += "?email=" + url.QueryEscape(email)
	}
	switch {
	case err == nil:
		redirect(w, r, target, successToast(msgCodeResent))
	case errors.Is(err, auth.ErrResendTooSoon):
		redirect(w, r, target, errorToast(msgResendTooSoon))
	default:
		h.logger.Error("resend verification failed", "error", err)
		redirect(w, r, target, errorToast(msgGenericFailure))
	}
}
