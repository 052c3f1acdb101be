package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/tiendita-app/tiendita/internal/domain"
)

// MockTenantDirectory is a mock implementation of domain.TenantDirectory for testing.
type MockTenantDirectory struct {
	mu         sync.Mutex
	Tenants    map[string]*domain.Tenant
	ResolveErr error
	Resolved   []string
}

func (m *MockTenantDirectory) ResolveSlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Resolved = append(m.Resolved, slug)
	if m.ResolveErr != nil {
		return nil, m.ResolveErr
	}
	t, ok := m.Tenants[slug]
	if !ok {
		return nil, domain.ErrTenantNotFound
	}
	return t, nil
}

// MockUserRepository is a mock implementation of domain.UserRepository for testing.
type MockUserRepository struct {
	mu      sync.Mutex
	Users   []*domain.User
	FindErr error
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, tenantID int64, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	for _, u := range m.Users {
		if u.TenantID == tenantID && u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

// MockProductRepository is a mock implementation of domain.ProductRepository for testing.
type MockProductRepository struct {
	mu       sync.Mutex
	Products []domain.Product
	ListErr  error
}

func (m *MockProductRepository) ListAvailable(ctx context.Context, tenantID int64) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	var out []domain.Product
	for _, p := range m.Products {
		if p.TenantID == tenantID && p.IsAvailable {
			out = append(out, p)
		}
	}
	return out, nil
}

// MockOrderRepository is a mock implementation of domain.OrderRepository for testing.
type MockOrderRepository struct {
	mu            sync.Mutex
	CreatedOrders []*domain.NewOrder
	CreateReceipt *domain.OrderReceipt
	CreateErr     error
	ListResult    []domain.Order
	ListErr       error
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, in *domain.NewOrder) (*domain.OrderReceipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	m.CreatedOrders = append(m.CreatedOrders, in)
	if m.CreateReceipt != nil {
		return m.CreateReceipt, nil
	}
	return &domain.OrderReceipt{OrderID: int64(len(m.CreatedOrders))}, nil
}

func (m *MockOrderRepository) ListByClient(ctx context.Context, tenantID, clientID int64) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.ListResult, nil
}

// MockOrderCache is a mock implementation of domain.OrderCache for testing.
type MockOrderCache struct {
	mu            sync.Mutex
	Entries       map[string][]domain.Order
	GetErr        error
	SetErr        error
	InvalidateErr error
	Invalidated   []string
}

func cacheKey(tenantID, clientID int64) string {
	return fmt.Sprintf("%d:%d", tenantID, clientID)
}

func (m *MockOrderCache) GetClientOrders(ctx context.Context, tenantID, clientID int64) ([]domain.Order, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, false, m.GetErr
	}
	orders, ok := m.Entries[cacheKey(tenantID, clientID)]
	return orders, ok, nil
}

func (m *MockOrderCache) SetClientOrders(ctx context.Context, tenantID, clientID int64, orders []domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	if m.Entries == nil {
		m.Entries = make(map[string][]domain.Order)
	}
	m.Entries[cacheKey(tenantID, clientID)] = orders
	return nil
}

func (m *MockOrderCache) InvalidateClientOrders(ctx context.Context, tenantID, clientID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InvalidateErr != nil {
		return m.InvalidateErr
	}
	m.Invalidated = append(m.Invalidated, cacheKey(tenantID, clientID))
	delete(m.Entries, cacheKey(tenantID, clientID))
	return nil
}
