package memory

import (
	"context"
	"sync"

	"servease/internal/domain/repository"
)

// transactionManager serializes multi-step flows against a single store.
// Individual repository operations are already atomic under the store mutex;
// the manager adds a coarser mutex so a flow like duplicate-check-then-insert
// or assign-then-spawn-delivery observes no interleaving writers. There is no
// rollback: callers order their writes so a failed step leaves prior state
// valid, matching the store's best-effort durability.
type transactionManager struct {
	txMu    sync.Mutex
	factory *repositoryFactory
}

// NewTransactionManager creates a TransactionManager for the memory driver.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return &transactionManager{
		factory: newRepositoryFactory(store),
	}
}

func (m *transactionManager) Execute(_ context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	return fn(m.factory)
}

// repositoryFactory hands out repositories bound to the shared store.
type repositoryFactory struct {
	store *Store
}

func newRepositoryFactory(store *Store) *repositoryFactory {
	return &repositoryFactory{store: store}
}

func (f *repositoryFactory) NewUserRepository() repository.UserRepository {
	return NewUserRepository(f.store)
}

func (f *repositoryFactory) NewRequestRepository() repository.RequestRepository {
	return NewRequestRepository(f.store)
}

func (f *repositoryFactory) NewShopRepository() repository.ShopRepository {
	return NewShopRepository(f.store)
}

func (f *repositoryFactory) NewDeliveryRepository() repository.DeliveryRepository {
	return NewDeliveryRepository(f.store)
}

func (f *repositoryFactory) NewPaymentRepository() repository.PaymentRepository {
	return NewPaymentRepository(f.store)
}
