package middleware

import (
	"context"

	"github.com/tiendita-app/tiendita/internal/domain"
)

type contextKey string

const (
	tenantContextKey    contextKey = "tenant"
	principalContextKey contextKey = "principal"
)

// WithTenant attaches the resolved tenant to the context.
func WithTenant(ctx context.Context, t *domain.Tenant) context.Context {
	return context.WithValue(ctx, tenantContextKey, t)
}

// TenantFromContext returns the tenant resolved for this request.
func TenantFromContext(ctx context.Context) (*domain.Tenant, bool) {
	t, ok := ctx.Value(tenantContextKey).(*domain.Tenant)
	return t, ok
}

// WithPrincipal attaches the authenticated principal to the context.
func WithPrincipal(ctx context.Context, p *domain.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

// PrincipalFromContext returns the authenticated principal for this request.
func PrincipalFromContext(ctx context.Context) (*domain.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(*domain.Principal)
	return p, ok
}
