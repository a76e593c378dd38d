package services

import (
	"errors"

	"storefront/internal/repositories"
)

// Validation failures.
var (
	ErrLoginTaken        = errors.New("Login already exists")
	ErrEmailTaken        = errors.New("Email already exists")
	ErrEmptyOrder        = errors.New("order must contain at least one item")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInvalidPrice      = errors.New("price must not be negative")
	ErrIncorrectPassword = errors.New("Current password is incorrect")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrCategoryTaken     = errors.New("Category already exists")
)

// Authentication and authorization failures.
var (
	ErrInvalidCredentials = errors.New("Incorrect login or password")
	ErrUnauthenticated    = errors.New("Not authenticated")
	ErrForbidden          = errors.New("forbidden")
)

var (
	// ErrNotFound aliases the repository sentinel so callers need one import.
	ErrNotFound = repositories.ErrNotFound
	// ErrConflict aliases the repository sentinel for blocked deletes.
	ErrConflict = repositories.ErrConflict
	// ErrOrderNumberExhausted means no free order number was found.
	ErrOrderNumberExhausted = errors.New("could not allocate a unique order number")
)
