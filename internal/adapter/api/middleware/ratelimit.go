package middleware

import (
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/tiendita-app/tiendita/internal/adapter/metrics"
)

// RateLimitPerTenant is a middleware factory that applies an independent
// token bucket to each tenant, so one noisy storefront cannot starve the
// others. It must run after ResolveTenant.
func RateLimitPerTenant(rps float64, burst int, m *metrics.StoreMetrics) func(http.Handler) http.Handler {
	var (
		mu       sync.Mutex
		limiters = make(map[int64]*rate.Limiter)
	)

	limiterFor := func(tenantID int64) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		l, ok := limiters[tenantID]
		if !ok {
			l = rate.NewLimiter(rate.Limit(rps), burst)
			limiters[tenantID] = l
		}
		return l
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tenant, ok := TenantFromContext(r.Context())
			if !ok {
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			if !limiterFor(tenant.ID).Allow() {
				if m != nil {
					m.RateLimited.Inc()
				}
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
