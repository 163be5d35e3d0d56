package rdf

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts serialized documents. A nil *Metrics records nothing.
type Metrics struct {
	documents  *prometheus.CounterVec
	statements *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewMetrics creates the serializer collectors and registers them with reg
// when reg is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rdfserialize_documents_total",
			Help: "Documents serialized, by format and outcome.",
		}, []string{"format", "outcome"}),
		statements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rdfserialize_statements_total",
			Help: "Statements handed to the serializer, by format.",
		}, []string{"format"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rdfserialize_duration_seconds",
			Help:    "Time spent serializing one document.",
			Buckets: prometheus.DefBuckets,
		}, []string{"format"}),
	}
	if reg != nil {
		reg.MustRegister(m.documents, m.statements, m.duration)
	}
	return m
}

func (m *Metrics) observe(format Format, statements int, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.documents.WithLabelValues(string(format), outcome).Inc()
	m.statements.WithLabelValues(string(format)).Add(float64(statements))
	m.duration.WithLabelValues(string(format)).Observe(elapsed.Seconds())
}
