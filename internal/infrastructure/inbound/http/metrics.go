package http

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the service counters exposed on /metrics.
type Metrics struct {
	runs      *prometheus.CounterVec
	processed prometheus.Counter
	removed   prometheus.Counter
	rejected  *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "harcleaner",
			Name:      "runs_total",
			Help:      "Cleaning runs by outcome.",
		}, []string{"outcome"}),
		processed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "harcleaner",
			Name:      "entries_processed_total",
			Help:      "Entries fed into the filter chain.",
		}),
		removed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "harcleaner",
			Name:      "entries_removed_total",
			Help:      "Entries excluded by the filter chain.",
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "harcleaner",
			Name:      "requests_rejected_total",
			Help:      "Requests rejected before cleaning, by reason.",
		}, []string{"reason"}),
	}
	reg.MustRegister(m.runs, m.processed, m.removed, m.rejected)
	return m
}

func (m *Metrics) observeRun(original, removed int) {
	m.runs.WithLabelValues("success").Inc()
	m.processed.Add(float64(original))
	m.removed.Add(float64(removed))
}

func (m *Metrics) observeFailure() {
	m.runs.WithLabelValues("error").Inc()
}

func (m *Metrics) observeRejected(reason string) {
	m.rejected.WithLabelValues(reason).Inc()
}
