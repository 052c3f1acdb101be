package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tiendita-app/tiendita/internal/domain"
)

// UserRepository implements domain.UserRepository for PostgreSQL.
type UserRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewUserRepository creates a new PostgreSQL user repository.
func NewUserRepository(db *sql.DB, logger *slog.Logger) *UserRepository {
	return &UserRepository{db: db, logger: logger}
}

// FindByEmail returns the user with the given email inside a tenant. The
// tenant id filter is part of the query so a lookup can never cross tenants.
func (r *UserRepository) FindByEmail(ctx context.Context, tenantID int64, email string) (*domain.User, error) {
	query := `
		SELECT id, tenant_id, email, password_hash, role, created_at
		FROM users
		WHERE tenant_id = $1 AND email = $2`

	var u domain.User
	err := r.db.QueryRowContext(ctx, query, tenantID, email).Scan(
		&u.ID, &u.TenantID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	return &u, nil
}
