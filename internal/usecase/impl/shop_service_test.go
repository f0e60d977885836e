package impl

import (
	"context"
	"testing"

	"servease/internal/domain/entity"
	domainerrors "servease/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShopService_GetShop_NotFound(t *testing.T) {
	fx := newFixtures(t)

	_, err := fx.shops.GetShop(context.Background(), uuid.New())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrShopNotFound))
}

func TestShopService_EnsureDefaultShops_Idempotent(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()

	require.NoError(t, fx.shops.EnsureDefaultShops(ctx))

	seeded, err := fx.shops.ListShops(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, seeded)

	// A second run must not duplicate the catalog.
	require.NoError(t, fx.shops.EnsureDefaultShops(ctx))

	again, err := fx.shops.ListShops(ctx)
	require.NoError(t, err)
	assert.Len(t, again, len(seeded))
}

func TestShopService_EnsureDefaultShops_SkipsNonEmptyCatalog(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()
	existing := fx.createShop(t)

	require.NoError(t, fx.shops.EnsureDefaultShops(ctx))

	shops, err := fx.shops.ListShops(ctx)
	require.NoError(t, err)
	require.Len(t, shops, 1)
	assert.Equal(t, existing.ID, shops[0].ID)
}

func TestShopService_ListShopsNear_SortsByDistance(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()

	far := &entity.RepairShop{
		ID:        uuid.New(),
		Name:      "Far Shop",
		Latitude:  24.1477, // Taichung
		Longitude: 120.6736,
	}
	near := &entity.RepairShop{
		ID:        uuid.New(),
		Name:      "Near Shop",
		Latitude:  25.0478, // Taipei Main Station
		Longitude: 121.5170,
	}
	require.NoError(t, fx.shopRepo.Create(ctx, far))
	require.NoError(t, fx.shopRepo.Create(ctx, near))

	// Query from Taipei 101.
	sorted, err := fx.shops.ListShopsNear(ctx, 25.0330, 121.5654)

	require.NoError(t, err)
	require.Len(t, sorted, 2)
	assert.Equal(t, near.ID, sorted[0].ID)
	assert.Equal(t, far.ID, sorted[1].ID)
}
