package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveSubmission("consent", "accept", "redirect", 20*time.Millisecond)
	m.ObserveSubmission("", "accept", "invalid_request", time.Millisecond)
	m.IncGrantReconcile(GrantDiscarded)
	m.IncGrantsPersisted()

	assert.InDelta(t, 1, testutil.ToFloat64(m.Submissions.WithLabelValues("consent", "accept", "redirect")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Submissions.WithLabelValues("unknown", "accept", "invalid_request")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.GrantReconciles.WithLabelValues(GrantDiscarded)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.GrantsPersisted), 0)
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveSubmission("login", "deny", "redirect", time.Second)
		m.IncGrantReconcile(GrantCreated)
		m.IncGrantsPersisted()
		m.IncAuditFailures()
	})
}
