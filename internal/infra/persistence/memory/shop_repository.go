package memory

import (
	"context"
	"sort"

	"servease/internal/domain/entity"
	"servease/internal/domain/repository"

	"github.com/google/uuid"
)

type shopRepository struct {
	store *Store
}

// NewShopRepository creates a repair shop repository backed by the shared store.
func NewShopRepository(store *Store) repository.ShopRepository {
	return &shopRepository{store: store}
}

func (r *shopRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.RepairShop, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	shop, ok := r.store.shops[id]
	if !ok {
		return nil, repository.ErrShopNotFound
	}

	return cloneShop(shop), nil
}

func (r *shopRepository) ListAll(_ context.Context) ([]*entity.RepairShop, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	shops := make([]*entity.RepairShop, 0, len(r.store.shops))
	for _, shop := range r.store.shops {
		shops = append(shops, cloneShop(shop))
	}
	sort.Slice(shops, func(i, j int) bool {
		return shops[i].Name < shops[j].Name
	})

	return shops, nil
}

func (r *shopRepository) Count(_ context.Context) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return int64(len(r.store.shops)), nil
}

func (r *shopRepository) Create(_ context.Context, shop *entity.RepairShop) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.shops[shop.ID] = cloneShop(shop)
	r.store.persistLocked()

	return nil
}

func (r *shopRepository) Update(_ context.Context, shop *entity.RepairShop) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.shops[shop.ID]; !ok {
		return repository.ErrShopNotFound
	}

	r.store.shops[shop.ID] = cloneShop(shop)
	r.store.persistLocked()

	return nil
}
