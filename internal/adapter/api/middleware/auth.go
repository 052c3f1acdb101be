package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/tiendita-app/tiendita/internal/adapter/metrics"
	"github.com/tiendita-app/tiendita/internal/domain"
	"github.com/tiendita-app/tiendita/internal/pkg/token"
)

// Authenticate is a middleware factory that verifies the bearer token and
// enforces cross-tenant isolation: the principal's tenant slug must equal
// the slug resolved for this request. A credential issued for tenant A is
// never honored against tenant B's data, regardless of anything in the
// request body or path. It must run after ResolveTenant.
func Authenticate(secret string, logger *slog.Logger, m *metrics.StoreMetrics) func(http.Handler) http.Handler {
	countFailure := func(reason string) {
		if m != nil {
			m.AuthFailures.WithLabelValues(reason).Inc()
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || raw == "" {
				countFailure("missing_token")
				http.Error(w, "Unauthorized: bearer token required", http.StatusUnauthorized)
				return
			}

			principal, err := token.Verify(raw, secret)
			if err != nil {
				countFailure("invalid_token")
				logger.Warn("invalid bearer token", "remote_addr", r.RemoteAddr)
				http.Error(w, "Unauthorized: invalid token", http.StatusUnauthorized)
				return
			}

			tenant, ok := TenantFromContext(r.Context())
			if !ok {
				logger.Error("authentication reached without a resolved tenant")
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			if principal.TenantSlug != tenant.Slug {
				countFailure("tenant_mismatch")
				logger.Warn("cross-tenant access rejected",
					"token_tenant", principal.TenantSlug,
					"request_tenant", tenant.Slug,
					"subject_id", principal.SubjectID,
				)
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

// RequireRole gates a route to the given roles. It must run after
// Authenticate.
func RequireRole(logger *slog.Logger, m *metrics.StoreMetrics, roles ...domain.Role) func(http.Handler) http.Handler {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			if _, ok := allowed[principal.Role]; !ok {
				if m != nil {
					m.AuthFailures.WithLabelValues("role").Inc()
				}
				logger.Warn("role not permitted for route",
					"role", principal.Role,
					"path", r.URL.Path,
					"subject_id", principal.SubjectID,
				)
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
