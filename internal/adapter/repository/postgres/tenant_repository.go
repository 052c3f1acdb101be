package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tiendita-app/tiendita/internal/adapter/metrics"
	"github.com/tiendita-app/tiendita/internal/domain"
)

type tenantCacheEntry struct {
	tenant    *domain.Tenant
	expiresAt time.Time
}

// TenantRepository implements domain.TenantDirectory using PostgreSQL as the
// source of truth and an in-memory, time-based cache. Slug resolution runs
// on every request, so the cache keeps the hot path off the database.
type TenantRepository struct {
	db       *sql.DB
	logger   *slog.Logger
	cache    map[string]tenantCacheEntry
	mu       sync.RWMutex
	cacheTTL time.Duration
	metrics  *metrics.StoreMetrics
}

// NewTenantRepository creates a new instance of the PostgreSQL tenant directory.
func NewTenantRepository(db *sql.DB, logger *slog.Logger, cacheTTL time.Duration, m *metrics.StoreMetrics) *TenantRepository {
	return &TenantRepository{
		db:       db,
		logger:   logger,
		cache:    make(map[string]tenantCacheEntry),
		cacheTTL: cacheTTL,
		metrics:  m,
	}
}

// ResolveSlug returns the tenant for a public slug. It first checks a local
// cache and falls back to the database if the slug is not cached or the
// cache entry has expired.
func (r *TenantRepository) ResolveSlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	// 1. Check cache with a read lock
	r.mu.RLock()
	entry, found := r.cache[slug]
	r.mu.RUnlock()

	if found && time.Now().Before(entry.expiresAt) {
		if r.metrics != nil {
			r.metrics.TenantCacheHits.Inc()
		}
		return entry.tenant, nil
	}

	if r.metrics != nil {
		r.metrics.TenantCacheMisses.Inc()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check cache in case another goroutine populated it while waiting for the lock
	entry, found = r.cache[slug]
	if found && time.Now().Before(entry.expiresAt) {
		return entry.tenant, nil
	}

	// 2. Query the database
	query := `SELECT id, slug, name, created_at, updated_at FROM tenants WHERE slug = $1`

	var t domain.Tenant
	err := r.db.QueryRowContext(ctx, query, slug).Scan(&t.ID, &t.Slug, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Don't cache misses, an out-of-band registration may land any moment
			return nil, domain.ErrTenantNotFound
		}
		r.logger.Error("failed to resolve tenant slug", "slug", slug, "error", err)
		return nil, fmt.Errorf("resolve slug: %w", err)
	}

	// 3. Update cache
	r.cache[slug] = tenantCacheEntry{
		tenant:    &t,
		expiresAt: time.Now().Add(r.cacheTTL),
	}

	return &t, nil
}
