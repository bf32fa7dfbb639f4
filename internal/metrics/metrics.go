// Package metrics exposes Prometheus collectors for upstream calls made by
// the gateway. A nil *Collector is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "analytics_gateway"

// Upstream names.
const (
	UpstreamGA4       = "ga4"
	UpstreamMailchimp = "mailchimp"
)

// Outcome labels.
const (
	OutcomeSuccess    = "success"
	OutcomeTokenError = "token_error"
	OutcomeError      = "error"
)

// Collector owns a private registry so tests and multiple servers never
// collide on the global one.
type Collector struct {
	registry       *prometheus.Registry
	upstreamCalls  *prometheus.CounterVec
	reportRows     prometheus.Histogram
	reportPages    prometheus.Histogram
	reportDuration *prometheus.HistogramVec
}

// New creates and registers the gateway collectors.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		upstreamCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_calls_total",
			Help:      "Gateway operations against third-party APIs by upstream and outcome.",
		}, []string{"upstream", "outcome"}),
		reportRows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_rows",
			Help:      "Rows returned per GA4 report.",
			Buckets:   prometheus.ExponentialBuckets(1, 10, 7),
		}),
		reportPages: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_pages",
			Help:      "Pages requested per GA4 report.",
			Buckets:   []float64{1, 2, 3, 5, 10, 20, 50},
		}),
		reportDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_duration_seconds",
			Help:      "Wall time of a full GA4 report fetch, all pages included.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
	}

	c.registry.MustRegister(
		c.upstreamCalls,
		c.reportRows,
		c.reportPages,
		c.reportDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// ObserveUpstream counts one call against upstream.
func (c *Collector) ObserveUpstream(upstream, outcome string) {
	if c == nil {
		return
	}
	c.upstreamCalls.WithLabelValues(upstream, outcome).Inc()
}

// ObserveReport records a finished GA4 report fetch.
func (c *Collector) ObserveReport(outcome string, rows, pages int, took time.Duration) {
	if c == nil {
		return
	}
	c.upstreamCalls.WithLabelValues(UpstreamGA4, outcome).Inc()
	c.reportDuration.WithLabelValues(outcome).Observe(took.Seconds())
	if outcome == OutcomeSuccess {
		c.reportRows.Observe(float64(rows))
		c.reportPages.Observe(float64(pages))
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
