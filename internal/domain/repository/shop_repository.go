package repository

import (
	"context"
	"errors"

	"servease/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrShopNotFound is returned when a repair shop does not exist.
var ErrShopNotFound = errors.New("repair shop not found")

// ShopRepository defines the standard operations for repair shop persistence.
type ShopRepository interface {
	// FindByID retrieves a single repair shop by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.RepairShop, error)

	// ListAll returns every registered repair shop.
	ListAll(ctx context.Context) ([]*entity.RepairShop, error)

	// Count returns the number of registered shops. Used by seeding to
	// decide whether defaults are needed.
	Count(ctx context.Context) (int64, error)

	// Create persists a new repair shop.
	Create(ctx context.Context, shop *entity.RepairShop) error

	// Update modifies an existing repair shop.
	Update(ctx context.Context, shop *entity.RepairShop) error
}
