package token

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tiendita-app/tiendita/internal/domain"
)

// Claims defines the custom claims carried by an access token. The subject
// id lives in the registered "sub" claim; tenant affiliation and role are
// custom claims.
type Claims struct {
	TenantSlug string      `json:"tenant_slug"`
	Role       domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Generate creates a signed HS256 token for a principal.
func Generate(subjectID int64, tenantSlug string, role domain.Role, secretKey string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		TenantSlug: tenantSlug,
		Role:       role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(subjectID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secretKey))
}

// Verify parses and validates a token string and returns the Principal it
// carries. Any structural, signature or expiry failure is reported as
// domain.ErrUnauthenticated.
func Verify(raw, secretKey string) (*domain.Principal, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if err != nil || !t.Valid {
		return nil, domain.ErrUnauthenticated
	}

	if claims.TenantSlug == "" || !claims.Role.Valid() {
		return nil, domain.ErrUnauthenticated
	}

	subjectID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	return &domain.Principal{
		SubjectID:  subjectID,
		TenantSlug: claims.TenantSlug,
		Role:       claims.Role,
	}, nil
}
