package domain

// Role defines the permission level of an authenticated actor.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleStaff  Role = "staff"
	RoleClient Role = "client"
)

// Valid reports whether r is one of the recognized roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleClient:
		return true
	}
	return false
}

// Principal is the authenticated actor making a request. It is derived from
// the bearer credential per request and never persisted.
type Principal struct {
	SubjectID  int64
	TenantSlug string
	Role       Role
}
