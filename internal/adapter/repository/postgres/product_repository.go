package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/tiendita-app/tiendita/internal/domain"
)

// ProductRepository implements domain.ProductRepository for PostgreSQL.
type ProductRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewProductRepository creates a new PostgreSQL product repository.
func NewProductRepository(db *sql.DB, logger *slog.Logger) *ProductRepository {
	return &ProductRepository{db: db, logger: logger}
}

// ListAvailable returns the tenant's orderable products.
func (r *ProductRepository) ListAvailable(ctx context.Context, tenantID int64) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tenant_id, name, image_url, price, stock, is_available, created_at, updated_at
		FROM products
		WHERE tenant_id = $1 AND is_available
		ORDER BY name`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.TenantID, &p.Name, &p.ImageURL, &p.Price, &p.Stock, &p.IsAvailable, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
