package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/tiendita-app/tiendita/internal/adapter/api/middleware"
	"github.com/tiendita-app/tiendita/internal/domain"
)

// OrderUseCase is the slice of the order service the handler needs.
type OrderUseCase interface {
	CreateOrder(ctx context.Context, tenantID, clientID int64, items []domain.OrderLine, pickup domain.Date) (*domain.OrderReceipt, error)
	ListClientOrders(ctx context.Context, tenantID, clientID int64) ([]domain.Order, error)
}

// OrderHandler handles HTTP requests for order creation and listing.
type OrderHandler struct {
	useCase OrderUseCase
	logger  *slog.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(uc OrderUseCase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{useCase: uc, logger: logger}
}

type createOrderRequest struct {
	Items []struct {
		ProductID int64 `json:"productId"`
		Quantity  int   `json:"quantity"`
	} `json:"items"`
	PickupDate domain.Date `json:"pickupDate"`
}

type createOrderResponse struct {
	Message string      `json:"message"`
	OrderID int64       `json:"orderId"`
	Total   json.Number `json:"total"`
}

// Create handles POST /api/orders. The client id is always the
// authenticated subject; any client identifier in the body is ignored.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	tenant, principal, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}

	items := make([]domain.OrderLine, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, domain.OrderLine{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	receipt, err := h.useCase.CreateOrder(r.Context(), tenant.ID, principal.SubjectID, items, req.PickupDate)
	if err != nil {
		h.writeOrderError(w, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusCreated, createOrderResponse{
		Message: "order created",
		OrderID: receipt.OrderID,
		Total:   json.Number(receipt.Total.String()),
	})
}

type orderItemResponse struct {
	ProductID    int64       `json:"product_id"`
	Quantity     int         `json:"quantity"`
	UnitPrice    json.Number `json:"unit_price"`
	ProductName  string      `json:"product_name"`
	ProductImage string      `json:"product_image"`
}

type orderResponse struct {
	ID          int64               `json:"id"`
	TotalAmount json.Number         `json:"total_amount"`
	Status      domain.OrderStatus  `json:"status"`
	PickupDate  domain.Date         `json:"pickup_date"`
	CreatedAt   time.Time           `json:"created_at"`
	Items       []orderItemResponse `json:"items"`
}

// ListMine handles GET /api/orders/my-orders.
func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	tenant, principal, ok := h.identity(w, r)
	if !ok {
		return
	}

	orders, err := h.useCase.ListClientOrders(r.Context(), tenant.ID, principal.SubjectID)
	if err != nil {
		h.logger.Error("failed to list client orders", "error", err)
		respondWithError(w, h.logger, http.StatusInternalServerError, "internal server error")
		return
	}

	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		items := make([]orderItemResponse, 0, len(o.Items))
		for _, it := range o.Items {
			items = append(items, orderItemResponse{
				ProductID:    it.ProductID,
				Quantity:     it.Quantity,
				UnitPrice:    json.Number(it.UnitPrice.String()),
				ProductName:  it.ProductName,
				ProductImage: it.ProductImage,
			})
		}
		out = append(out, orderResponse{
			ID:          o.ID,
			TotalAmount: json.Number(o.TotalAmount.String()),
			Status:      o.Status,
			PickupDate:  o.PickupDate,
			CreatedAt:   o.CreatedAt,
			Items:       items,
		})
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]any{"orders": out})
}

// identity pulls the guard-attached tenant and principal off the context.
// Both are always present behind the middleware chain; their absence is a
// wiring bug, not a client error.
func (h *OrderHandler) identity(w http.ResponseWriter, r *http.Request) (*domain.Tenant, *domain.Principal, bool) {
	tenant, ok := middleware.TenantFromContext(r.Context())
	if !ok {
		h.logger.Error("order handler reached without a resolved tenant")
		respondWithError(w, h.logger, http.StatusInternalServerError, "internal server error")
		return nil, nil, false
	}
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		h.logger.Error("order handler reached without a principal")
		respondWithError(w, h.logger, http.StatusInternalServerError, "internal server error")
		return nil, nil, false
	}
	return tenant, principal, true
}

func (h *OrderHandler) writeOrderError(w http.ResponseWriter, err error) {
	var validation *domain.ValidationError
	var unavailable *domain.ProductUnavailableError
	var insufficient *domain.InsufficientStockError

	switch {
	case errors.As(err, &validation):
		respondWithError(w, h.logger, http.StatusBadRequest, validation.Error())
	case errors.As(err, &unavailable):
		respondWithError(w, h.logger, http.StatusNotFound, unavailable.Error())
	case errors.As(err, &insufficient):
		respondWithError(w, h.logger, http.StatusConflict, insufficient.Error())
	default:
		h.logger.Error("order creation failed", "error", err)
		respondWithError(w, h.logger, http.StatusInternalServerError, "internal server error")
	}
}
