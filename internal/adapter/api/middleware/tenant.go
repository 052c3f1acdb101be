package middleware

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/tiendita-app/tiendita/internal/domain"
)

// TenantHeader is the fallback tenant identifier for deployments without
// per-tenant subdomains.
const TenantHeader = "X-Tenant"

// ResolveTenant is a middleware factory that resolves the tenant for every
// request. The slug comes from the request host's subdomain
// (<slug>.<baseDomain>) or, failing that, from the X-Tenant header, never
// from the request body or path, which are client-controlled.
func ResolveTenant(dir domain.TenantDirectory, baseDomain string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			slug := slugFromHost(r.Host, baseDomain)
			if slug == "" {
				slug = r.Header.Get(TenantHeader)
			}
			if slug == "" {
				http.Error(w, "Not Found: unknown tenant", http.StatusNotFound)
				return
			}

			tenant, err := dir.ResolveSlug(r.Context(), slug)
			if err != nil {
				if errors.Is(err, domain.ErrTenantNotFound) {
					http.Error(w, "Not Found: unknown tenant", http.StatusNotFound)
					return
				}
				logger.Error("tenant resolution failed", "slug", slug, "error", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithTenant(r.Context(), tenant)))
		})
	}
}

// slugFromHost extracts the subdomain label from host when host is of the
// form <slug>.<baseDomain>. It returns "" when baseDomain is unset, when the
// host is the bare base domain, or when the remainder is not a single label.
func slugFromHost(host, baseDomain string) string {
	if baseDomain == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.ToLower(host)

	sub, found := strings.CutSuffix(host, "."+strings.ToLower(baseDomain))
	if !found || sub == "" || strings.Contains(sub, ".") {
		return ""
	}
	return sub
}
