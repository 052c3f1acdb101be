package domain

import "time"

// User is an account within a tenant. Clients place orders; staff and
// admins manage the business side.
type User struct {
	ID           int64     `json:"id"`
	TenantID     int64     `json:"tenant_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Not exposed in API responses
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
