package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Reconcile outcomes for a consent submission's grant.
const (
	GrantLoaded    = "loaded"
	GrantDiscarded = "discarded"
	GrantCreated   = "created"
)

// Metrics holds the Prometheus metrics for the consent flow.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Submissions        *prometheus.CounterVec
	SubmissionDuration *prometheus.HistogramVec
	GrantReconciles    *prometheus.CounterVec
	GrantsPersisted    prometheus.Counter
	AuditFailures      prometheus.Counter
}

// New creates and registers the consent metrics with reg. A nil reg uses the
// default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "credo_consent_submissions_total",
			Help: "Consent and login submissions by prompt, decision and outcome",
		}, []string{"prompt", "decision", "outcome"}),
		SubmissionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "credo_consent_submission_duration_seconds",
			Help:    "Time to resolve a submission into a redirect instruction",
			Buckets: prometheus.DefBuckets,
		}, []string{"prompt"}),
		GrantReconciles: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "credo_consent_grant_reconciles_total",
			Help: "Grant reconciliation outcomes (loaded, discarded, created)",
		}, []string{"outcome"}),
		GrantsPersisted: factory.NewCounter(prometheus.CounterOpts{
			Name: "credo_consent_grants_persisted_total",
			Help: "Total number of grant writes",
		}),
		AuditFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "credo_consent_audit_failures_total",
			Help: "Audit events that could not be recorded on the submission path",
		}),
	}
}

// ObserveSubmission records one resolved submission.
func (m *Metrics) ObserveSubmission(prompt, decision, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	if prompt == "" {
		prompt = "unknown"
	}
	m.Submissions.WithLabelValues(prompt, decision, outcome).Inc()
	m.SubmissionDuration.WithLabelValues(prompt).Observe(elapsed.Seconds())
}

func (m *Metrics) IncGrantReconcile(outcome string) {
	if m == nil {
		return
	}
	m.GrantReconciles.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncGrantsPersisted() {
	if m == nil {
		return
	}
	m.GrantsPersisted.Inc()
}

func (m *Metrics) IncAuditFailures() {
	if m == nil {
		return
	}
	m.AuditFailures.Inc()
}
