package users

import (
	"context"
)

type Repository interface {
	// Create inserts a new user. A duplicate email yields
	// shared.ErrorAlreadyExists.
	Create(ctx context.Context, user *User) error

	// GetByEmail returns the user with the given email, shared.ErrorNotFound
	// if absent, or shared.ErrorInconsistentState if more than one row
	// matches (the uniqueness invariant was violated).
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByID returns the user with the given id or shared.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*User, error)
}
