package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"legalize-docs/internal/domain"
)

// Metrics holds the service collectors on a private registry served by Handler.
type Metrics struct {
	registry *prometheus.Registry

	WizardsCreated    prometheus.Counter
	WizardsActive     prometheus.Gauge
	StepTransitions   *prometheus.CounterVec
	WizardRejections  *prometheus.CounterVec
	UploadsTotal      *prometheus.CounterVec
	SubmissionsTotal  *prometheus.CounterVec
	AuthAttemptsTotal *prometheus.CounterVec
	ContactMessages   prometheus.Counter
	RateLimitedTotal  *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		WizardsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "legalize_wizards_created_total",
			Help: "Total number of request wizards started",
		}),
		WizardsActive: f.NewGauge(prometheus.GaugeOpts{
			Name: "legalize_wizards_active",
			Help: "Current number of live request wizards",
		}),
		StepTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "legalize_wizard_step_transitions_total",
			Help: "Wizard step changes by source and target step",
		}, []string{"from", "to"}),
		WizardRejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "legalize_wizard_rejections_total",
			Help: "Wizard operations rejected by reason",
		}, []string{"reason"}),
		UploadsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "legalize_uploads_total",
			Help: "Completed document uploads by outcome",
		}, []string{"outcome"}),
		SubmissionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "legalize_submissions_total",
			Help: "Service request submissions by outcome",
		}, []string{"outcome"}),
		AuthAttemptsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "legalize_auth_attempts_total",
			Help: "Auth form submissions by action and outcome",
		}, []string{"action", "outcome"}),
		ContactMessages: f.NewCounter(prometheus.CounterOpts{
			Name: "legalize_contact_messages_total",
			Help: "Contact messages accepted",
		}),
		RateLimitedTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "legalize_rate_limited_requests_total",
			Help: "Requests rejected by the per-client rate limiter",
		}, []string{"route"}),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// StepChanged, Rejected, UploadFinished and RequestSubmitted satisfy
// wizard.Observer.
func (m *Metrics) StepChanged(from, to domain.Step) {
	m.StepTransitions.WithLabelValues(strconv.Itoa(int(from)), strconv.Itoa(int(to))).Inc()
}

func (m *Metrics) Rejected(reason string) {
	m.WizardRejections.WithLabelValues(reason).Inc()
}

func (m *Metrics) UploadFinished(ok bool) {
	m.UploadsTotal.WithLabelValues(outcome(ok)).Inc()
}

func (m *Metrics) RequestSubmitted(ok bool) {
	m.SubmissionsTotal.WithLabelValues(outcome(ok)).Inc()
}

func (m *Metrics) AuthAttempt(action string, ok bool) {
	m.AuthAttemptsTotal.WithLabelValues(action, outcome(ok)).Inc()
}

func (m *Metrics) IncrementContactMessages() {
	m.ContactMessages.Inc()
}

func (m *Metrics) IncrementRateLimited(route string) {
	m.RateLimitedTotal.WithLabelValues(route).Inc()
}

func (m *Metrics) SetActiveWizards(count int) {
	m.WizardsActive.Set(float64(count))
}

func (m *Metrics) IncrementWizardsCreated() {
	m.WizardsCreated.Inc()
}

func outcome(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
