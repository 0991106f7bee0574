// Package metrics exposes the bot's prometheus counters.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "deletewatch"

// Probe results.
const (
	ProbeExisting   = "existing"
	ProbeDeleted    = "deleted"
	ProbeUnverified = "unverified"
)

// Metrics owns a private registry so tests can create as many as they like.
type Metrics struct {
	registry       *prometheus.Registry
	records        *prometheus.CounterVec
	probes         *prometheus.CounterVec
	reports        *prometheus.CounterVec
	purges         *prometheus.CounterVec
	reportDuration prometheus.Histogram
}

// New registers all collectors, plus the go and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_total",
			Help:      "Incoming group events by kind and recording outcome.",
		}, []string{"kind", "outcome"}),
		probes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "probes_total",
			Help:      "Existence probes by result.",
		}, []string{"result"}),
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_total",
			Help:      "Deleted-message reports by result.",
		}, []string{"result"}),
		purges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "purges_total",
			Help:      "Retention purges by result.",
		}, []string{"result"}),
		reportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_duration_seconds",
			Help:      "Time spent building one report, probes included.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
	}

	m.registry.MustRegister(
		m.records,
		m.probes,
		m.reports,
		m.purges,
		m.reportDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRecord counts one incoming event. kind is "reply" or "media".
func (m *Metrics) ObserveRecord(kind, outcome string) {
	m.records.WithLabelValues(kind, outcome).Inc()
}

// ObserveProbes adds n probes with result.
func (m *Metrics) ObserveProbes(result string, n int) {
	if n <= 0 {
		return
	}
	m.probes.WithLabelValues(result).Add(float64(n))
}

// ObserveReport counts one report attempt and, when it ran, its duration.
func (m *Metrics) ObserveReport(result string, d time.Duration) {
	m.reports.WithLabelValues(result).Inc()
	if d > 0 {
		m.reportDuration.Observe(d.Seconds())
	}
}

// ObservePurge counts one purge run.
func (m *Metrics) ObservePurge(result string) {
	m.purges.WithLabelValues(result).Inc()
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
