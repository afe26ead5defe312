// Package metrics exposes Prometheus counters for form validation and submission.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is safe for concurrent use. A nil *Metrics records nothing.
type Metrics struct {
	pages       *prometheus.CounterVec
	validations *prometheus.CounterVec
	submissions *prometheus.CounterVec
	inflight    *prometheus.GaugeVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		pages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "signalist",
			Name:      "form_pages_total",
			Help:      "Form pages served, by form.",
		}, []string{"form"}),
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "signalist",
			Name:      "field_validation_failures_total",
			Help:      "Field validation failures, by form, field and rule.",
		}, []string{"form", "field", "rule"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "signalist",
			Name:      "form_submissions_total",
			Help:      "Form submissions, by form and result (ok, invalid, busy, error).",
		}, []string{"form", "result"}),
		inflight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "signalist",
			Name:      "form_submissions_inflight",
			Help:      "Submissions currently running, by form.",
		}, []string{"form"}),
	}
	reg.MustRegister(m.pages, m.validations, m.submissions, m.inflight)
	return m
}

func (m *Metrics) PageServed(form string) {
	if m == nil {
		return
	}
	m.pages.WithLabelValues(form).Inc()
}

func (m *Metrics) ValidationFailed(form, field, rule string) {
	if m == nil {
		return
	}
	m.validations.WithLabelValues(form, field, rule).Inc()
}

func (m *Metrics) Submitted(form, result string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(form, result).Inc()
}

// Begin marks a submission as running and returns the func that ends it.
func (m *Metrics) Begin(form string) func() {
	if m == nil {
		return func() {}
	}
	g := m.inflight.WithLabelValues(form)
	g.Inc()
	return g.Dec
}
