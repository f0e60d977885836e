// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core identity in the system, representing a single account.
// The role tag is assigned at signup and never changes afterwards.
type User struct {
	ID           uuid.UUID `json:"id"`        // The Global Unique Identifier (GUID) for the user.
	FullName     string    `json:"full_name"` // The user's display name.
	Email        string    `json:"email"`     // Primary contact email, unique across the platform and used as the login identifier.
	PasswordHash string    `json:"-"`         // Bcrypt hash of the user's password. Never serialized.
	Phone        string    `json:"phone"`     // Contact phone number.
	City         string    `json:"city"`      // City the user operates in.
	Role         Role      `json:"role"`      // Role tag, immutable after creation.
	FCMToken     string    `json:"-"`         // Optional Firebase device token for push notifications.
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
