package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrTenantNotFound is returned when no tenant matches the requested slug.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrUnauthenticated is returned when a credential is missing or malformed.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden is returned on a cross-tenant or role violation.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is returned when a tenant-scoped row does not exist.
	ErrNotFound = errors.New("not found")
)

// ValidationError reports malformed input. It is always raised before any
// transaction is opened.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ProductUnavailableError is returned when a requested product does not exist
// for the tenant or is flagged unavailable. The encompassing order
// transaction is rolled back.
type ProductUnavailableError struct {
	ProductID int64
}

func (e *ProductUnavailableError) Error() string {
	return fmt.Sprintf("product %d is not available", e.ProductID)
}

// InsufficientStockError names the product whose locked stock could not cover
// the requested quantity. The encompassing order transaction is rolled back.
type InsufficientStockError struct {
	ProductID int64
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}
