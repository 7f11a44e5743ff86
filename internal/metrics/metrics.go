// Package metrics holds the prometheus collectors of the quote server.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const subsystem = "bridge_fees"

// Quote outcomes.
const (
	OutcomeOK          = "ok"
	OutcomeInvalid     = "invalid_input"
	OutcomeNotFound    = "not_whitelisted"
	OutcomeUpstream    = "upstream_error"
	OutcomeAmountLow   = "amount_too_low"
	OutcomeNoLiquidity = "insufficient_liquidity"
)

type MetricManager struct {
	registry *prometheus.Registry

	Quotes        *prometheus.CounterVec
	QuoteDuration *prometheus.HistogramVec
	Requests      *prometheus.CounterVec
	GasPrice      prometheus.Gauge
}

// NewMetricManager registers every collector on its own registry, along with
// the go and process collectors.
func NewMetricManager() *MetricManager {
	m := &MetricManager{
		registry: prometheus.NewRegistry(),
		Quotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "quotes_total",
			Help:      "Fee quotes served, by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		QuoteDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Subsystem: subsystem,
			Name:      "quote_duration_seconds",
			Help:      "Time spent resolving and pricing a quote.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}, []string{"endpoint"}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		GasPrice: prometheus.NewGauge(prometheus.GaugeOpts{
			Subsystem: subsystem,
			Name:      "last_gas_price_wei",
			Help:      "Gas price used by the most recent quote.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.Quotes,
		m.QuoteDuration,
		m.Requests,
		m.GasPrice,
	)
	return m
}

func (m *MetricManager) ObserveQuote(endpoint, outcome string, took time.Duration) {
	m.Quotes.WithLabelValues(endpoint, outcome).Inc()
	m.QuoteDuration.WithLabelValues(endpoint).Observe(took.Seconds())
}

func (m *MetricManager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *MetricManager) Registry() *prometheus.Registry {
	return m.registry
}
