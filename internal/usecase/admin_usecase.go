package usecase

import (
	"context"

	"servease/internal/domain/entity"

	"github.com/google/uuid"
)

// AdminUsecase defines the interface for administrative user management.
type AdminUsecase interface {
	ListUsers(ctx context.Context) ([]*entity.User, error)
	ListUsersByRole(ctx context.Context, role entity.Role) ([]*entity.User, error)

	// DeleteUser hard-deletes a user account. Their historical requests are
	// retained.
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}
