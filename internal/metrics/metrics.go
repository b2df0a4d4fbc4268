// Package metrics exposes Prometheus instruments for ordering activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors registered on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	CartItemsAdded  prometheus.Counter
	OrdersFinalized prometheus.Counter
	OrderValue      prometheus.Histogram
	RPCDuration     *prometheus.HistogramVec
	ActiveSessions  prometheus.Gauge
}

// New creates and registers all collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		CartItemsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "idine",
			Name:      "cart_items_added_total",
			Help:      "Menu items added to carts.",
		}),
		OrdersFinalized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "idine",
			Name:      "orders_finalized_total",
			Help:      "Orders finalized at checkout.",
		}),
		OrderValue: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "idine",
			Name:      "order_value",
			Help:      "Finalized order totals in whole currency units, before tip.",
			Buckets:   []float64{5, 10, 20, 40, 80, 160},
		}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "idine",
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure and result code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure", "code"}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "idine",
			Name:      "active_sessions",
			Help:      "Order sessions held in memory.",
		}),
	}

	reg.MustRegister(
		m.CartItemsAdded,
		m.OrdersFinalized,
		m.OrderValue,
		m.RPCDuration,
		m.ActiveSessions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry backing m.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
