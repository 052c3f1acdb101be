package domain

import "context"

// TenantDirectory maps a tenant slug to its stable record. It sits on every
// request's hot path; implementations should cache with a short TTL.
type TenantDirectory interface {
	// ResolveSlug returns the tenant for a public slug, or ErrTenantNotFound.
	ResolveSlug(ctx context.Context, slug string) (*Tenant, error)
}

// UserRepository defines tenant-scoped account lookups.
type UserRepository interface {
	// FindByEmail returns the user with the given email within a tenant,
	// or ErrNotFound.
	FindByEmail(ctx context.Context, tenantID int64, email string) (*User, error)
}

// ProductRepository defines the catalog reads the order flow depends on.
type ProductRepository interface {
	// ListAvailable returns the tenant's orderable products.
	ListAvailable(ctx context.Context, tenantID int64) ([]Product, error)
}

// OrderRepository persists orders. CreateOrder is the transactional core:
// it must lock every requested product row, verify stock, snapshot prices
// and commit the order, its items and the stock decrement atomically.
type OrderRepository interface {
	CreateOrder(ctx context.Context, in *NewOrder) (*OrderReceipt, error)

	// ListByClient returns a client's orders with product-enriched items,
	// newest first.
	ListByClient(ctx context.Context, tenantID, clientID int64) ([]Order, error)
}

// OrderCache is a short-TTL read cache for a client's order listing. Keys
// embed both the tenant id and the client id so tenant isolation survives
// the cache layer.
type OrderCache interface {
	GetClientOrders(ctx context.Context, tenantID, clientID int64) ([]Order, bool, error)
	SetClientOrders(ctx context.Context, tenantID, clientID int64, orders []Order) error
	InvalidateClientOrders(ctx context.Context, tenantID, clientID int64) error
}
