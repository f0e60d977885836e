// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"servease/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateIdentity is returned when the email is already registered.
// Email is unique across the whole user collection, regardless of role.
var ErrDuplicateIdentity = errors.New("email already registered")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves the user registered under the given email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByEmailAndRole retrieves the user only when both the email and
	// the role match. Login authenticates against this triple.
	FindByEmailAndRole(ctx context.Context, email string, role entity.Role) (*entity.User, error)

	// ListByRole returns all users holding the given role.
	ListByRole(ctx context.Context, role entity.Role) ([]*entity.User, error)

	// ListAll returns every registered user.
	ListAll(ctx context.Context) ([]*entity.User, error)

	// Create persists a new user entity to the storage. It returns
	// ErrDuplicateIdentity when the email is already taken.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity in the storage.
	Update(ctx context.Context, user *entity.User) error

	// Delete removes the user with the given ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
