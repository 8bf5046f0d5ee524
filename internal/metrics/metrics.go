// Package metrics defines the Prometheus collectors for the inventory and
// exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Operation labels for QueryDuration.
const (
	OpGetByID             = "get_by_id"
	OpGetByIDFast         = "get_by_id_fast"
	OpHasPromotion        = "has_promotion_price"
	OpHasPromotionFast    = "has_promotion_price_fast"
	OpBestWithinBudget    = "best_within_budget"
	OpWithinBudgetRange   = "within_budget_range"
	OpFindBySpecification = "find_by_specifications"
)

// Metrics holds the Prometheus collectors.
type Metrics struct {
	InventoryRecords  prometheus.Gauge
	QueryDuration     *prometheus.HistogramVec
	HTTPRequestsTotal *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them with reg. Tests pass a
// fresh prometheus.NewRegistry(); the programs pass prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		InventoryRecords: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "inventory_records",
				Help: "Number of laptops loaded into the inventory.",
			},
		),
		QueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "inventory_query_duration_seconds",
				Help:    "Inventory query latency in seconds by operation.",
				Buckets: []float64{1e-7, 5e-7, 1e-6, 5e-6, 1e-5, 5e-5, 1e-4, 5e-4, 1e-3, 1e-2, 0.1},
			},
			[]string{"operation"},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, path, and status.",
			},
			[]string{"method", "path", "status"},
		),
	}

	reg.MustRegister(m.InventoryRecords, m.QueryDuration, m.HTTPRequestsTotal)

	if g, ok := reg.(prometheus.Gatherer); ok {
		m.gatherer = g
	} else {
		m.gatherer = prometheus.DefaultGatherer
	}
	return m
}

// ObserveQuery records how long one call of op took.
func (m *Metrics) ObserveQuery(op string, d time.Duration) {
	m.QueryDuration.WithLabelValues(op).Observe(d.Seconds())
}

// Handler returns the scrape handler for the registry the metrics live in.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
