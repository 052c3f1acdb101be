package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable item owned by a tenant. Stock is never negative and
// is decremented only inside a committed order transaction.
type Product struct {
	ID          int64           `json:"id"`
	TenantID    int64           `json:"tenant_id"`
	Name        string          `json:"name"`
	ImageURL    string          `json:"image_url"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	IsAvailable bool            `json:"is_available"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
