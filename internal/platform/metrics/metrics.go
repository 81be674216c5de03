// Package metrics registers the Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the storefront server.
type Metrics struct {
	UsersRegistered prometheus.Counter
	OrdersCreated   prometheus.Counter
	OrdersFailed    prometheus.Counter
	RequestDuration *prometheus.HistogramVec
	CacheHits       prometheus.Counter
	CacheMisses     prometheus.Counter
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		UsersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "solestore_users_registered_total",
			Help: "Total number of users registered",
		}),
		OrdersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "solestore_orders_created_total",
			Help: "Total number of orders committed",
		}),
		OrdersFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "solestore_orders_failed_total",
			Help: "Total number of order transactions rolled back",
		}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "solestore_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "solestore_catalog_cache_hits_total",
			Help: "Catalog cache hits",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "solestore_catalog_cache_misses_total",
			Help: "Catalog cache misses",
		}),
	}
}

// NewForTest creates metrics on a private registry so parallel tests do not
// collide on duplicate registration.
func NewForTest() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		UsersRegistered: factory.NewCounter(prometheus.CounterOpts{Name: "solestore_users_registered_total"}),
		OrdersCreated:   factory.NewCounter(prometheus.CounterOpts{Name: "solestore_orders_created_total"}),
		OrdersFailed:    factory.NewCounter(prometheus.CounterOpts{Name: "solestore_orders_failed_total"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name: "solestore_http_request_duration_seconds",
		}, []string{"route", "method", "status"}),
		CacheHits:   factory.NewCounter(prometheus.CounterOpts{Name: "solestore_catalog_cache_hits_total"}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{Name: "solestore_catalog_cache_misses_total"}),
	}
}
