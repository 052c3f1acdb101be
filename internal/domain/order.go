package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order. Transitions past
// pending_pickup belong to the fulfillment workflow, not this core.
type OrderStatus string

const (
	OrderPendingPickup OrderStatus = "pending_pickup"
	OrderFulfilled     OrderStatus = "fulfilled"
	OrderExpired       OrderStatus = "expired"
	OrderCancelled     OrderStatus = "cancelled"
)

// Order is a committed purchase. TotalAmount equals the sum of
// unit_price * quantity over its items, fixed at creation and never
// recomputed.
type Order struct {
	ID             int64           `json:"id"`
	TenantID       int64           `json:"-"`
	ClientID       int64           `json:"-"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	Status         OrderStatus     `json:"status"`
	PickupDate     Date            `json:"pickup_date"`
	ExpirationDate Date            `json:"-"`
	CreatedAt      time.Time       `json:"created_at"`
	Items          []OrderItem     `json:"items"`
}

// OrderItem is a line item. UnitPrice is a snapshot of Product.Price at
// order-creation time; it must never be re-derived from the live product
// row, which keeps historical orders immune to price changes.
type OrderItem struct {
	OrderID      int64           `json:"-"`
	ProductID    int64           `json:"product_id"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	ProductName  string          `json:"product_name"`
	ProductImage string          `json:"product_image"`
}

// OrderLine is a requested line item before pricing.
type OrderLine struct {
	ProductID int64
	Quantity  int
}

// NewOrder is the validated input to the order engine.
type NewOrder struct {
	TenantID   int64
	ClientID   int64
	Items      []OrderLine
	PickupDate Date
}

// OrderReceipt is the result of a committed order.
type OrderReceipt struct {
	OrderID int64
	Total   decimal.Decimal
}
