package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/tiendita-app/tiendita/internal/domain"
)

const orderExpirationDays = 2

// OrderRepository implements domain.OrderRepository for PostgreSQL.
type OrderRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewOrderRepository creates a new PostgreSQL order repository.
func NewOrderRepository(db *sql.DB, logger *slog.Logger) *OrderRepository {
	return &OrderRepository{db: db, logger: logger}
}

// CreateOrder executes the order transaction: it locks each requested
// product row, verifies availability and stock against the locked values,
// computes the total from the locked prices, and atomically inserts the
// order, its items and the stock decrements. Any failure rolls back the
// whole transaction; a failed call leaves no visible effect.
//
// Rows are locked in ascending product id order regardless of the order the
// client listed them, so two orders touching the same products can never
// deadlock on each other.
func (r *OrderRepository) CreateOrder(ctx context.Context, in *domain.NewOrder) (*domain.OrderReceipt, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin order tx: %w", err)
	}
	defer tx.Rollback() // Rollback is a no-op once Commit() succeeds

	items := make([]domain.OrderLine, len(in.Items))
	copy(items, in.Items)
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })

	lockQuery := `
		SELECT price, stock
		FROM products
		WHERE id = $1 AND tenant_id = $2 AND is_available
		FOR UPDATE`

	total := decimal.Zero
	prices := make(map[int64]decimal.Decimal, len(items))
	for _, it := range items {
		var price decimal.Decimal
		var stock int
		err := tx.QueryRowContext(ctx, lockQuery, it.ProductID, in.TenantID).Scan(&price, &stock)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.ProductUnavailableError{ProductID: it.ProductID}
		}
		if err != nil {
			return nil, fmt.Errorf("lock product %d: %w", it.ProductID, err)
		}
		if stock < it.Quantity {
			return nil, &domain.InsufficientStockError{
				ProductID: it.ProductID,
				Requested: it.Quantity,
				Available: stock,
			}
		}

		prices[it.ProductID] = price
		total = total.Add(price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	expiration := in.PickupDate.AddDays(orderExpirationDays)

	var orderID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (tenant_id, client_id, total_amount, status, pickup_date, expiration_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		in.TenantID, in.ClientID, total, domain.OrderPendingPickup, in.PickupDate, expiration,
	).Scan(&orderID)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	for _, it := range items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4)`,
			orderID, it.ProductID, it.Quantity, prices[it.ProductID],
		)
		if err != nil {
			return nil, fmt.Errorf("insert order item %d: %w", it.ProductID, err)
		}

		// Same row locked above, so the decrement is serialized with any
		// concurrent order touching this product.
		res, err := tx.ExecContext(ctx,
			`UPDATE products SET stock = stock - $2, updated_at = NOW() WHERE id = $1`,
			it.ProductID, it.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("decrement stock for product %d: %w", it.ProductID, err)
		}
		if n, _ := res.RowsAffected(); n != 1 {
			return nil, fmt.Errorf("decrement stock for product %d: %d rows affected", it.ProductID, n)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit order tx: %w", err)
	}

	return &domain.OrderReceipt{OrderID: orderID, Total: total}, nil
}

// ListByClient returns a client's orders, newest first, with items enriched
// with the product name and image for display.
func (r *OrderRepository) ListByClient(ctx context.Context, tenantID, clientID int64) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, total_amount, status, pickup_date, expiration_date, created_at
		FROM orders
		WHERE tenant_id = $1 AND client_id = $2
		ORDER BY created_at DESC`,
		tenantID, clientID,
	)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	var orderIDs []int64
	index := make(map[int64]int)
	for rows.Next() {
		o := domain.Order{TenantID: tenantID, ClientID: clientID}
		if err := rows.Scan(&o.ID, &o.TotalAmount, &o.Status, &o.PickupDate, &o.ExpirationDate, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		index[o.ID] = len(orders)
		orders = append(orders, o)
		orderIDs = append(orderIDs, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}

	itemRows, err := r.db.QueryContext(ctx, `
		SELECT oi.order_id, oi.product_id, oi.quantity, oi.unit_price, p.name, p.image_url
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.order_id, oi.product_id`,
		pq.Array(orderIDs),
	)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var it domain.OrderItem
		if err := itemRows.Scan(&it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.ProductName, &it.ProductImage); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		i, ok := index[it.OrderID]
		if !ok {
			r.logger.Warn("order item without parent order in result set", "order_id", it.OrderID)
			continue
		}
		orders[i].Items = append(orders[i].Items, it)
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
