package wizard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

const DefaultIdleTTL = 30 * time.Minute

// RegistryMetrics is the part of the metrics collector the registry reports to.
type RegistryMetrics interface {
	IncrementWizardsCreated()
	SetActiveWizards(count int)
}

type nopRegistryMetrics struct{}

func (nopRegistryMetrics) IncrementWizardsCreated() {}
func (nopRegistryMetrics) SetActiveWizards(int)     {}

type RegistryConfig struct {
	IdleTTL time.Duration
	Logger  *slog.Logger
	Now     func() time.Time
	Metrics RegistryMetrics
	Options []Option
}

// Registry owns the live wizards of all sessions.
type Registry struct {
	idleTTL time.Duration
	logger  *slog.Logger
	now     func() time.Time
	metrics RegistryMetrics
	opts    []Option

	mu      sync.Mutex
	wizards map[string]*Wizard
}

func NewRegistry(cfg RegistryConfig) *Registry {
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = DefaultIdleTTL
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Metrics == nil {
		cfg.Metrics = nopRegistryMetrics{}
	}
	return &Registry{
		idleTTL: cfg.IdleTTL,
		logger:  cfg.Logger,
		now:     cfg.Now,
		metrics: cfg.Metrics,
		opts:    cfg.Options,
		wizards: make(map[string]*Wizard),
	}
}

// Create starts a fresh wizard for the service.
func (r *Registry) Create(serviceID string) *Wizard {
	id := uuid.NewString()
	opts := append([]Option{WithLogger(r.logger), WithClock(r.now)}, r.opts...)
	w := New(id, serviceID, opts...)

	r.mu.Lock()
	r.wizards[id] = w
	active := len(r.wizards)
	r.mu.Unlock()

	r.metrics.IncrementWizardsCreated()
	r.metrics.SetActiveWizards(active)
	r.logger.Info("wizard created", "wizard_id", id, "service_id", serviceID)
	return w
}

func (r *Registry) Get(id string) (*Wizard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wizards[id]
	if !ok {
		return nil, ErrNotFound
	}
	return w, nil
}

// Remove closes and forgets a wizard.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	w, ok := r.wizards[id]
	delete(r.wizards, id)
	active := len(r.wizards)
	r.mu.Unlock()
	if ok {
		w.Close()
		r.metrics.SetActiveWizards(active)
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.wizards)
}

// Sweep evicts wizards idle for longer than the TTL and returns how many
// were removed.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.idleTTL)

	r.mu.Lock()
	var stale []*Wizard
	for id, w := range r.wizards {
		if w.LastActive().Before(cutoff) {
			stale = append(stale, w)
			delete(r.wizards, id)
		}
	}
	active := len(r.wizards)
	r.mu.Unlock()

	for _, w := range stale {
		w.Close()
	}
	if len(stale) > 0 {
		r.metrics.SetActiveWizards(active)
		r.logger.Info("evicted idle wizards", "count", len(stale))
	}
	return len(stale)
}

// Run sweeps on every tick until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
