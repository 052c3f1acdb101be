package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tiendita-app/tiendita/internal/adapter/api/handler"
	"github.com/tiendita-app/tiendita/internal/adapter/api/middleware"
	"github.com/tiendita-app/tiendita/internal/adapter/metrics"
	"github.com/tiendita-app/tiendita/internal/domain"
	"github.com/tiendita-app/tiendita/internal/pkg/config"
)

// Deps bundles everything the router needs.
type Deps struct {
	Config   *config.Config
	Logger   *slog.Logger
	Metrics  *metrics.StoreMetrics
	Tenants  domain.TenantDirectory
	Products domain.ProductRepository
	Auth     handler.AuthUseCase
	Orders   handler.OrderUseCase
}

// NewRouter assembles the HTTP surface. Every /api route runs behind tenant
// resolution; order routes additionally require an authenticated client.
func NewRouter(d Deps) http.Handler {
	authHandler := handler.NewAuthHandler(d.Auth, d.Logger)
	productHandler := handler.NewProductHandler(d.Products, d.Logger)
	orderHandler := handler.NewOrderHandler(d.Orders, d.Logger)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(d.Logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(15 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.ResolveTenant(d.Tenants, d.Config.BaseDomain, d.Logger))

		r.Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(d.Config.TokenSecret, d.Logger, d.Metrics))

			r.Get("/products", productHandler.List)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(d.Logger, d.Metrics, domain.RoleClient))
				r.Use(middleware.RateLimitPerTenant(d.Config.OrderRatePerSec, d.Config.OrderRateBurst, d.Metrics))

				r.Post("/orders", orderHandler.Create)
				r.Get("/orders/my-orders", orderHandler.ListMine)
			})
		})
	})

	return r
}
