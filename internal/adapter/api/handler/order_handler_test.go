package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tiendita-app/tiendita/internal/adapter/api/middleware"
	"github.com/tiendita-app/tiendita/internal/domain"
)

// MockOrderUseCase is a mock implementation of OrderUseCase.
type MockOrderUseCase struct {
	CreateFunc func(ctx context.Context, tenantID, clientID int64, items []domain.OrderLine, pickup domain.Date) (*domain.OrderReceipt, error)
	ListFunc   func(ctx context.Context, tenantID, clientID int64) ([]domain.Order, error)
}

func (m *MockOrderUseCase) CreateOrder(ctx context.Context, tenantID, clientID int64, items []domain.OrderLine, pickup domain.Date) (*domain.OrderReceipt, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tenantID, clientID, items, pickup)
	}
	return &domain.OrderReceipt{OrderID: 1}, nil
}

func (m *MockOrderUseCase) ListClientOrders(ctx context.Context, tenantID, clientID int64) ([]domain.Order, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, tenantID, clientID)
	}
	return nil, nil
}

func guardedRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	ctx := middleware.WithTenant(req.Context(), &domain.Tenant{ID: 1, Slug: "acme"})
	ctx = middleware.WithPrincipal(ctx, &domain.Principal{SubjectID: 5, TenantSlug: "acme", Role: domain.RoleClient})
	return req.WithContext(ctx)
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	dec := json.NewDecoder(rr.Body)
	dec.UseNumber()
	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return out
}

func TestOrderHandler_Create(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	pickup := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	validBody := `{"items": [{"productId": 7, "quantity": 2}], "pickupDate": "` + pickup + `"}`

	t.Run("Created", func(t *testing.T) {
		var gotTenant, gotClient int64
		var gotItems []domain.OrderLine
		mock := &MockOrderUseCase{
			CreateFunc: func(ctx context.Context, tenantID, clientID int64, items []domain.OrderLine, p domain.Date) (*domain.OrderReceipt, error) {
				gotTenant, gotClient, gotItems = tenantID, clientID, items
				return &domain.OrderReceipt{OrderID: 99, Total: decimal.RequireFromString("20.00")}, nil
			},
		}
		h := NewOrderHandler(mock, logger)

		rr := httptest.NewRecorder()
		h.Create(rr, guardedRequest(http.MethodPost, "/api/orders", validBody))

		if rr.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
		}

		body := decodeBody(t, rr)
		if body["orderId"] != json.Number("99") {
			t.Errorf("expected orderId 99, got %v", body["orderId"])
		}
		if body["total"] != json.Number("20.00") {
			t.Errorf("expected total 20.00, got %v", body["total"])
		}
		if body["message"] == "" {
			t.Error("expected a message field")
		}

		if gotTenant != 1 {
			t.Errorf("expected tenant id 1, got %d", gotTenant)
		}
		if gotClient != 5 {
			t.Errorf("expected client id from principal (5), got %d", gotClient)
		}
		if len(gotItems) != 1 || gotItems[0].ProductID != 7 || gotItems[0].Quantity != 2 {
			t.Errorf("unexpected items: %+v", gotItems)
		}
	})

	t.Run("Client Identity Comes From Token Not Body", func(t *testing.T) {
		var gotClient int64
		mock := &MockOrderUseCase{
			CreateFunc: func(ctx context.Context, tenantID, clientID int64, items []domain.OrderLine, p domain.Date) (*domain.OrderReceipt, error) {
				gotClient = clientID
				return &domain.OrderReceipt{OrderID: 1, Total: decimal.Zero}, nil
			},
		}
		h := NewOrderHandler(mock, logger)

		spoofed := `{"clientId": 666, "items": [{"productId": 7, "quantity": 2}], "pickupDate": "` + pickup + `"}`
		rr := httptest.NewRecorder()
		h.Create(rr, guardedRequest(http.MethodPost, "/api/orders", spoofed))

		if rr.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rr.Code)
		}
		if gotClient != 5 {
			t.Errorf("expected client id 5 from the principal, got %d", gotClient)
		}
	})

	t.Run("Error Mapping", func(t *testing.T) {
		tests := []struct {
			name       string
			err        error
			wantStatus int
		}{
			{"Validation Error", domain.NewValidationError("bad input"), http.StatusBadRequest},
			{"Product Unavailable", &domain.ProductUnavailableError{ProductID: 7}, http.StatusNotFound},
			{"Insufficient Stock", &domain.InsufficientStockError{ProductID: 7, Requested: 2, Available: 1}, http.StatusConflict},
			{"Unknown Error", errors.New("boom"), http.StatusInternalServerError},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				mock := &MockOrderUseCase{
					CreateFunc: func(ctx context.Context, tenantID, clientID int64, items []domain.OrderLine, p domain.Date) (*domain.OrderReceipt, error) {
						return nil, tt.err
					},
				}
				h := NewOrderHandler(mock, logger)

				rr := httptest.NewRecorder()
				h.Create(rr, guardedRequest(http.MethodPost, "/api/orders", validBody))

				if rr.Code != tt.wantStatus {
					t.Errorf("expected %d, got %d", tt.wantStatus, rr.Code)
				}
			})
		}
	})

	t.Run("Malformed Body Is 400", func(t *testing.T) {
		h := NewOrderHandler(&MockOrderUseCase{}, logger)

		rr := httptest.NewRecorder()
		h.Create(rr, guardedRequest(http.MethodPost, "/api/orders", `{"items": [`))

		if rr.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rr.Code)
		}
	})

	t.Run("Missing Identity Is 500", func(t *testing.T) {
		h := NewOrderHandler(&MockOrderUseCase{}, logger)

		req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString(validBody))
		rr := httptest.NewRecorder()
		h.Create(rr, req)

		if rr.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", rr.Code)
		}
	})
}

func TestOrderHandler_ListMine(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Lists Orders With Snake Case Fields", func(t *testing.T) {
		created := time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC)
		mock := &MockOrderUseCase{
			ListFunc: func(ctx context.Context, tenantID, clientID int64) ([]domain.Order, error) {
				return []domain.Order{{
					ID:          3,
					TotalAmount: decimal.RequireFromString("20.00"),
					Status:      domain.OrderPendingPickup,
					PickupDate:  domain.NewDate(2026, time.August, 26),
					CreatedAt:   created,
					Items: []domain.OrderItem{{
						ProductID:    7,
						Quantity:     2,
						UnitPrice:    decimal.RequireFromString("10.00"),
						ProductName:  "Sourdough Loaf",
						ProductImage: "https://cdn.acme.test/sourdough.jpg",
					}},
				}}, nil
			},
		}
		h := NewOrderHandler(mock, logger)

		rr := httptest.NewRecorder()
		h.ListMine(rr, guardedRequest(http.MethodGet, "/api/orders/my-orders", ""))

		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}

		body := decodeBody(t, rr)
		orders, ok := body["orders"].([]any)
		if !ok || len(orders) != 1 {
			t.Fatalf("expected one order in envelope, got %v", body["orders"])
		}
		order := orders[0].(map[string]any)

		if order["id"] != json.Number("3") {
			t.Errorf("expected id 3, got %v", order["id"])
		}
		if order["total_amount"] != json.Number("20.00") {
			t.Errorf("expected total_amount 20.00, got %v", order["total_amount"])
		}
		if order["status"] != "pending_pickup" {
			t.Errorf("expected status pending_pickup, got %v", order["status"])
		}
		if order["pickup_date"] != "2026-08-26" {
			t.Errorf("expected pickup_date 2026-08-26, got %v", order["pickup_date"])
		}

		items, ok := order["items"].([]any)
		if !ok || len(items) != 1 {
			t.Fatalf("expected one item, got %v", order["items"])
		}
		item := items[0].(map[string]any)
		if item["product_id"] != json.Number("7") {
			t.Errorf("expected product_id 7, got %v", item["product_id"])
		}
		if item["unit_price"] != json.Number("10.00") {
			t.Errorf("expected unit_price 10.00, got %v", item["unit_price"])
		}
		if item["product_name"] != "Sourdough Loaf" {
			t.Errorf("expected product_name, got %v", item["product_name"])
		}
		if item["product_image"] != "https://cdn.acme.test/sourdough.jpg" {
			t.Errorf("expected product_image, got %v", item["product_image"])
		}
	})

	t.Run("Empty History Is An Empty Array", func(t *testing.T) {
		h := NewOrderHandler(&MockOrderUseCase{}, logger)

		rr := httptest.NewRecorder()
		h.ListMine(rr, guardedRequest(http.MethodGet, "/api/orders/my-orders", ""))

		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		if got := rr.Body.String(); got != `{"orders":[]}` {
			t.Errorf("expected empty orders array, got %s", got)
		}
	})

	t.Run("Use Case Error Is 500", func(t *testing.T) {
		mock := &MockOrderUseCase{
			ListFunc: func(ctx context.Context, tenantID, clientID int64) ([]domain.Order, error) {
				return nil, errors.New("db down")
			},
		}
		h := NewOrderHandler(mock, logger)

		rr := httptest.NewRecorder()
		h.ListMine(rr, guardedRequest(http.MethodGet, "/api/orders/my-orders", ""))

		if rr.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", rr.Code)
		}
	})
}
