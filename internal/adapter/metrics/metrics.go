package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// StoreMetrics holds all Prometheus metrics for the storefront API.
type StoreMetrics struct {
	OrdersTotal       *prometheus.CounterVec
	StockConflicts    prometheus.Counter
	AuthFailures      *prometheus.CounterVec
	TenantCacheHits   prometheus.Counter
	TenantCacheMisses prometheus.Counter
	RateLimited       prometheus.Counter
}

// NewStoreMetrics initializes and registers the Prometheus metrics.
func NewStoreMetrics() *StoreMetrics {
	return &StoreMetrics{
		OrdersTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tiendita",
			Subsystem: "orders",
			Name:      "created_total",
			Help:      "Total order creation attempts by outcome.",
		}, []string{"outcome"}), // outcome: created, validation_error, product_unavailable, insufficient_stock, error
		StockConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "tiendita",
			Subsystem: "orders",
			Name:      "stock_conflicts_total",
			Help:      "Total orders rejected because locked stock could not cover the request.",
		}),
		AuthFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tiendita",
			Subsystem: "auth",
			Name:      "failures_total",
			Help:      "Total rejected requests by reason.",
		}, []string{"reason"}), // reason: missing_token, invalid_token, tenant_mismatch, role
		TenantCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "tiendita",
			Subsystem: "tenant",
			Name:      "cache_hits_total",
			Help:      "Total tenant directory cache hits.",
		}),
		TenantCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "tiendita",
			Subsystem: "tenant",
			Name:      "cache_misses_total",
			Help:      "Total tenant directory cache misses.",
		}),
		RateLimited: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "tiendita",
			Subsystem: "orders",
			Name:      "rate_limited_total",
			Help:      "Total order requests rejected by the per-tenant rate limiter.",
		}),
	}
}
