package domain

import "time"

// Tenant represents an isolated business account. Every domain row is scoped
// to exactly one tenant via its numeric id; the slug is the public
// identifier used in subdomains.
type Tenant struct {
	ID        int64     `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
