package token

import (
	"errors"
	"testing"
	"time"

	"github.com/tiendita-app/tiendita/internal/domain"
)

func TestGenerateVerifyRoundTrip(t *testing.T) {
	raw, err := Generate(42, "acme", domain.RoleClient, "secret", time.Hour)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	principal, err := Verify(raw, "secret")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if principal.SubjectID != 42 {
		t.Errorf("expected subject id 42, got %d", principal.SubjectID)
	}
	if principal.TenantSlug != "acme" {
		t.Errorf("expected tenant slug acme, got %q", principal.TenantSlug)
	}
	if principal.Role != domain.RoleClient {
		t.Errorf("expected role client, got %q", principal.Role)
	}
}

func TestVerifyRejections(t *testing.T) {
	valid, err := Generate(1, "acme", domain.RoleClient, "secret", time.Hour)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	expired, err := Generate(1, "acme", domain.RoleClient, "secret", -time.Minute)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	badRole, err := Generate(1, "acme", domain.Role("superuser"), "secret", time.Hour)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	noSlug, err := Generate(1, "", domain.RoleClient, "secret", time.Hour)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	tests := []struct {
		name   string
		raw    string
		secret string
	}{
		{"Wrong Secret", valid, "other-secret"},
		{"Expired", expired, "secret"},
		{"Unknown Role", badRole, "secret"},
		{"Missing Tenant Slug", noSlug, "secret"},
		{"Garbage", "not-a-token", "secret"},
		{"Empty", "", "secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Verify(tt.raw, tt.secret)
			if !errors.Is(err, domain.ErrUnauthenticated) {
				t.Errorf("expected ErrUnauthenticated, got %v", err)
			}
		})
	}
}

func TestVerifyRejectsUnsignedToken(t *testing.T) {
	// Header {"alg":"none","typ":"JWT"} with a client payload and no signature.
	raw := "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0." +
		"eyJzdWIiOiIxIiwidGVuYW50X3NsdWciOiJhY21lIiwicm9sZSI6ImNsaWVudCJ9."
	if _, err := Verify(raw, "secret"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated for alg=none token, got %v", err)
	}
}
