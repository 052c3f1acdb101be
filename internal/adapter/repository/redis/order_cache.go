package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tiendita-app/tiendita/internal/domain"
)

// Key: orders:client:{tenant_id}:{client_id} -> JSON-encoded []domain.Order.
// The tenant id is part of the key so the cache can never serve one tenant's
// orders to another.
const keyClientOrders = "orders:client:%d:%d"

// OrderCache implements domain.OrderCache using Redis with a short TTL.
type OrderCache struct {
	client *redis.Client
	logger *slog.Logger
	ttl    time.Duration
}

// NewOrderCache creates a new Redis-backed order listing cache.
func NewOrderCache(client *redis.Client, logger *slog.Logger, ttl time.Duration) *OrderCache {
	return &OrderCache{
		client: client,
		logger: logger.With("component", "order_cache"),
		ttl:    ttl,
	}
}

func (c *OrderCache) GetClientOrders(ctx context.Context, tenantID, clientID int64) ([]domain.Order, bool, error) {
	key := fmt.Sprintf(keyClientOrders, tenantID, clientID)
	raw, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get cached orders: %w", err)
	}

	var orders []domain.Order
	if err := json.Unmarshal([]byte(raw), &orders); err != nil {
		c.logger.Warn("dropping undecodable cache entry", "key", key, "error", err)
		_ = c.client.Del(ctx, key).Err()
		return nil, false, nil
	}
	return orders, true, nil
}

func (c *OrderCache) SetClientOrders(ctx context.Context, tenantID, clientID int64, orders []domain.Order) error {
	payload, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("marshal orders for cache: %w", err)
	}
	key := fmt.Sprintf(keyClientOrders, tenantID, clientID)
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("set cached orders: %w", err)
	}
	return nil
}

func (c *OrderCache) InvalidateClientOrders(ctx context.Context, tenantID, clientID int64) error {
	key := fmt.Sprintf(keyClientOrders, tenantID, clientID)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("invalidate cached orders: %w", err)
	}
	return nil
}
