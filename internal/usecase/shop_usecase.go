package usecase

import (
	"context"

	"servease/internal/domain/entity"

	"github.com/google/uuid"
)

// ShopUsecase defines the interface for repair shop operations.
type ShopUsecase interface {
	GetShop(ctx context.Context, shopID uuid.UUID) (*entity.RepairShop, error)
	ListShops(ctx context.Context) ([]*entity.RepairShop, error)

	// ListShopsNear returns all shops sorted by great-circle distance from
	// the given coordinates.
	ListShopsNear(ctx context.Context, lat, lng float64) ([]*entity.RepairShop, error)

	// EnsureDefaultShops seeds the default shop catalog when the collection
	// is empty. Invoked once at startup.
	EnsureDefaultShops(ctx context.Context) error
}
