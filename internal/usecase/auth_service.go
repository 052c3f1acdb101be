package usecase

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tiendita-app/tiendita/internal/domain"
	"github.com/tiendita-app/tiendita/internal/pkg/token"
)

// ErrInvalidCredentials is returned when the email or password does not
// match; the two cases are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService issues access tokens for tenant-scoped accounts.
type AuthService struct {
	users       domain.UserRepository
	tokenSecret string
	tokenExpiry time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, tokenSecret string, tokenExpiry time.Duration) *AuthService {
	return &AuthService{
		users:       users,
		tokenSecret: tokenSecret,
		tokenExpiry: tokenExpiry,
	}
}

// Login verifies the password of the account with the given email inside the
// resolved tenant and returns a signed token bound to that tenant's slug.
func (s *AuthService) Login(ctx context.Context, tenant *domain.Tenant, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, tenant.ID, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	return token.Generate(user.ID, tenant.Slug, user.Role, s.tokenSecret, s.tokenExpiry)
}
