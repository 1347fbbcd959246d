// Package metrics instruments the engine with Prometheus. All instruments
// live on a private registry so tests and embedded uses get isolated state
// instead of fighting over the global default. A nil *Metrics is a silent
// no-op, which keeps instrumentation optional in tests.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cipher_search"

// Metrics holds the engine's instruments.
type Metrics struct {
	registry *prometheus.Registry

	trialsTotal     *prometheus.CounterVec
	runsTotal       *prometheus.CounterVec
	runDuration     *prometheus.HistogramVec
	bestBaseMatches *prometheus.GaugeVec
	activeJobs      prometheus.Gauge
}

// New builds the instrument set on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		trialsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trials_total",
			Help:      "Formula trials evaluated, by case and formula family.",
		}, []string{"case", "family"}),
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Completed search runs, by case and run status.",
		}, []string{"case", "status"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of search runs.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"case"}),
		bestBaseMatches: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "best_base_matches",
			Help:      "Uncorrected constraint matches of the leader of the latest run, by case.",
		}, []string{"case"}),
		activeJobs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_jobs",
			Help:      "Jobs currently pending or running.",
		}),
	}
	m.registry.MustRegister(m.trialsTotal, m.runsTotal, m.runDuration, m.bestBaseMatches, m.activeJobs)
	return m
}

// Handler serves the registry for the /metrics route. A nil receiver serves
// an empty registry rather than nothing, so the route stays wireable.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordTrials adds evaluated trials for one case and formula family.
func (m *Metrics) RecordTrials(caseName, family string, n int64) {
	if m == nil {
		return
	}
	m.trialsTotal.WithLabelValues(caseName, family).Add(float64(n))
}

// RecordRun records one completed search run.
func (m *Metrics) RecordRun(caseName, status string, elapsed time.Duration, bestBaseMatches int) {
	if m == nil {
		return
	}
	m.runsTotal.WithLabelValues(caseName, status).Inc()
	m.runDuration.WithLabelValues(caseName).Observe(elapsed.Seconds())
	m.bestBaseMatches.WithLabelValues(caseName).Set(float64(bestBaseMatches))
}

// JobStarted marks one job active.
func (m *Metrics) JobStarted() {
	if m == nil {
		return
	}
	m.activeJobs.Inc()
}

// JobFinished marks one job done, whatever its terminal status.
func (m *Metrics) JobFinished() {
	if m == nil {
		return
	}
	m.activeJobs.Dec()
}
