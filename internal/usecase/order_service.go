package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/tiendita-app/tiendita/internal/adapter/metrics"
	"github.com/tiendita-app/tiendita/internal/domain"
)

// Pickup must be strictly later than today and at most this many days out.
const maxPickupLeadDays = 10

// OrderService validates order requests and drives the transactional order
// engine. All tenant and client identity comes from the access guard, never
// from the request body.
type OrderService struct {
	orders  domain.OrderRepository
	cache   domain.OrderCache
	logger  *slog.Logger
	metrics *metrics.StoreMetrics
}

// NewOrderService creates a new OrderService. cache and m may be nil.
func NewOrderService(orders domain.OrderRepository, cache domain.OrderCache, logger *slog.Logger, m *metrics.StoreMetrics) *OrderService {
	return &OrderService{
		orders:  orders,
		cache:   cache,
		logger:  logger,
		metrics: m,
	}
}

// CreateOrder validates the request and executes the locked order
// transaction. clientID is always the authenticated principal's subject id.
func (s *OrderService) CreateOrder(ctx context.Context, tenantID, clientID int64, items []domain.OrderLine, pickup domain.Date) (*domain.OrderReceipt, error) {
	if err := validateOrderInput(items, pickup); err != nil {
		s.countOrder("validation_error")
		return nil, err
	}

	receipt, err := s.orders.CreateOrder(ctx, &domain.NewOrder{
		TenantID:   tenantID,
		ClientID:   clientID,
		Items:      items,
		PickupDate: pickup,
	})
	if err != nil {
		s.recordOrderFailure(err)
		return nil, err
	}

	s.countOrder("created")
	s.logger.Info("order created",
		"tenant_id", tenantID,
		"client_id", clientID,
		"order_id", receipt.OrderID,
		"total", receipt.Total.String(),
		"items", len(items),
	)

	if s.cache != nil {
		if err := s.cache.InvalidateClientOrders(ctx, tenantID, clientID); err != nil {
			// Stale listings expire with the TTL anyway.
			s.logger.Warn("failed to invalidate order cache", "tenant_id", tenantID, "client_id", clientID, "error", err)
		}
	}

	return receipt, nil
}

// ListClientOrders returns a client's orders, served from the cache when a
// fresh entry exists.
func (s *OrderService) ListClientOrders(ctx context.Context, tenantID, clientID int64) ([]domain.Order, error) {
	if s.cache != nil {
		orders, ok, err := s.cache.GetClientOrders(ctx, tenantID, clientID)
		if err != nil {
			s.logger.Warn("order cache read failed, falling back to database", "error", err)
		} else if ok {
			return orders, nil
		}
	}

	orders, err := s.orders.ListByClient(ctx, tenantID, clientID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetClientOrders(ctx, tenantID, clientID, orders); err != nil {
			s.logger.Warn("order cache write failed", "error", err)
		}
	}

	return orders, nil
}

func validateOrderInput(items []domain.OrderLine, pickup domain.Date) error {
	if len(items) == 0 {
		return domain.NewValidationError("order must contain at least one item")
	}

	seen := make(map[int64]struct{}, len(items))
	for _, it := range items {
		if it.ProductID <= 0 {
			return domain.NewValidationError("invalid product id %d", it.ProductID)
		}
		if it.Quantity <= 0 {
			return domain.NewValidationError("quantity for product %d must be positive", it.ProductID)
		}
		if _, dup := seen[it.ProductID]; dup {
			return domain.NewValidationError("product %d appears more than once", it.ProductID)
		}
		seen[it.ProductID] = struct{}{}
	}

	today := domain.DateOf(time.Now())
	if !pickup.After(today.Time) {
		return domain.NewValidationError("pickup date must be later than today")
	}
	if pickup.After(today.AddDays(maxPickupLeadDays).Time) {
		return domain.NewValidationError("pickup date must be within %d days", maxPickupLeadDays)
	}

	return nil
}

func (s *OrderService) countOrder(outcome string) {
	if s.metrics != nil {
		s.metrics.OrdersTotal.WithLabelValues(outcome).Inc()
	}
}

func (s *OrderService) recordOrderFailure(err error) {
	var unavailable *domain.ProductUnavailableError
	var insufficient *domain.InsufficientStockError
	switch {
	case errors.As(err, &unavailable):
		s.countOrder("product_unavailable")
	case errors.As(err, &insufficient):
		s.countOrder("insufficient_stock")
		if s.metrics != nil {
			s.metrics.StockConflicts.Inc()
		}
	default:
		s.countOrder("error")
		s.logger.Error("order transaction failed", "error", err)
	}
}
