package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"legalize-docs/internal/auth"
	"legalize-docs/internal/config"
	"legalize-docs/internal/domain"
	"legalize-docs/internal/metrics"
	"legalize-docs/internal/wizard"
)

// ContactSink receives validated contact form messages.
type ContactSink interface {
	SaveContactMessage(ctx context.Context, msg domain.ContactMessage) error
}

// Pinger is a dependency checked by /readyz.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Registry *wizard.Registry
	Auth     auth.Gateway
	Sessions *auth.Sessions
	Contacts ContactSink
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
	Checks   map[string]Pinger
}

type Handler struct {
	cfg      config.Config
	registry *wizard.Registry
	auth     auth.Gateway
	sessions *auth.Sessions
	contacts ContactSink
	metrics  *metrics.Metrics
	logger   *slog.Logger
	checks   map[string]Pinger
	pages    *renderer
	now      func() time.Time
}

func NewHandler(cfg config.Config, deps Deps) (*Handler, error) {
	pages, err := newRenderer()
	if err != nil {
		return nil, err
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}
	return &Handler{
		cfg:      cfg,
		registry: deps.Registry,
		auth:     deps.Auth,
		sessions: deps.Sessions,
		contacts: deps.Contacts,
		metrics:  deps.Metrics,
		logger:   deps.Logger,
		checks:   deps.Checks,
		pages:    pages,
		now:      time.Now,
	}, nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			h.logger.Warn("readiness check failed", "dependency", name, "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not_ready", "dependency": name})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// wait blocks for a simulated backend delay.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
