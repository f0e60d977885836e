// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"servease/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// SignupInput defines the data required to register a new account.
// An email may register once across the whole platform, regardless of role.
type SignupInput struct {
	FullName string
	Email    string
	Password string
	Phone    string
	City     string
	Role     entity.Role
}

// LoginInput defines the data required to log in. The role is part of the
// credential triple; a valid password under the wrong role is rejected.
type LoginInput struct {
	Email    string
	Password string
	Role     entity.Role
}

// RegisterDeviceTokenInput binds an FCM device token to a user for push
// notifications.
type RegisterDeviceTokenInput struct {
	UserID   uuid.UUID
	FCMToken string
}

// --- Output DTOs ---

// AuthOutput returns the authenticated user and their access token.
type AuthOutput struct {
	AccessToken string
	User        *entity.User
}

// IdentityUsecase defines the interface for identity-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type IdentityUsecase interface {
	Signup(ctx context.Context, input *SignupInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
	RegisterDeviceToken(ctx context.Context, input *RegisterDeviceTokenInput) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}
