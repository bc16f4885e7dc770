// Package metrics exposes Prometheus instrumentation for the protection
// layer: decision outcomes, audit write results, unmask transitions and
// render latency.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	accessDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "officer_registry",
		Name:      "access_decisions_total",
		Help:      "Field access decisions by field and outcome.",
	}, []string{"field", "outcome"})

	auditWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "officer_registry",
		Name:      "audit_writes_total",
		Help:      "Access-log append attempts by result.",
	}, []string{"result"})

	unmaskTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "officer_registry",
		Name:      "unmask_transitions_total",
		Help:      "Unmask request state transitions.",
	}, []string{"to"})

	renderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "officer_registry",
		Name:      "render_duration_seconds",
		Help:      "Time spent evaluating and rendering one officer record.",
		Buckets:   prometheus.DefBuckets,
	})
)

func ObserveDecision(field, outcome string) {
	accessDecisions.WithLabelValues(field, outcome).Inc()
}

func AuditWriteOK() {
	auditWrites.WithLabelValues("ok").Inc()
}

func AuditWriteFailed() {
	auditWrites.WithLabelValues("failed").Inc()
}

func ObserveUnmaskTransition(to string) {
	unmaskTransitions.WithLabelValues(to).Inc()
}

func ObserveRenderSeconds(seconds float64) {
	renderDuration.Observe(seconds)
}

// Handler serves the default Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
