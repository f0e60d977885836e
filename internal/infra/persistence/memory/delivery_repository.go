package memory

import (
	"context"
	"sort"
	"time"

	"servease/internal/domain/entity"
	"servease/internal/domain/repository"

	"github.com/google/uuid"
)

type deliveryRepository struct {
	store *Store
}

// NewDeliveryRepository creates a delivery repository backed by the shared store.
func NewDeliveryRepository(store *Store) repository.DeliveryRepository {
	return &deliveryRepository{store: store}
}

func (r *deliveryRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Delivery, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	delivery, ok := r.store.deliveries[id]
	if !ok {
		return nil, repository.ErrDeliveryNotFound
	}

	return cloneDelivery(delivery), nil
}

func (r *deliveryRepository) FindByRequestID(_ context.Context, requestID uuid.UUID) (*entity.Delivery, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, delivery := range r.store.deliveries {
		if delivery.RequestID == requestID {
			return cloneDelivery(delivery), nil
		}
	}

	return nil, repository.ErrDeliveryNotFound
}

func (r *deliveryRepository) ListAll(_ context.Context) ([]*entity.Delivery, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.collectLocked(func(*entity.Delivery) bool { return true }), nil
}

func (r *deliveryRepository) ListByPartner(_ context.Context, partnerID uuid.UUID) ([]*entity.Delivery, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.collectLocked(func(delivery *entity.Delivery) bool {
		return delivery.AssignedPartnerID != nil && *delivery.AssignedPartnerID == partnerID
	}), nil
}

func (r *deliveryRepository) ListUnassigned(_ context.Context) ([]*entity.Delivery, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.collectLocked(func(delivery *entity.Delivery) bool {
		return delivery.AssignedPartnerID == nil
	}), nil
}

func (r *deliveryRepository) Create(_ context.Context, delivery *entity.Delivery) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.deliveries[delivery.ID] = cloneDelivery(delivery)
	r.store.persistLocked()

	return nil
}

// Accept claims an unassigned pending delivery for the partner and schedules
// the pickup, all in one critical section so two partners can never both
// claim it.
func (r *deliveryRepository) Accept(_ context.Context, id uuid.UUID, partnerID uuid.UUID, partnerName string) (*entity.Delivery, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delivery, ok := r.store.deliveries[id]
	if !ok {
		return nil, repository.ErrDeliveryNotFound
	}
	if delivery.AssignedPartnerID != nil || delivery.Status != entity.DeliveryPending {
		return nil, repository.ErrDeliveryAlreadyAccepted
	}

	delivery.AssignedPartnerID = &partnerID
	delivery.AssignedPartnerName = &partnerName
	delivery.Status = entity.DeliveryPickupScheduled
	delivery.UpdatedAt = time.Now()
	r.store.persistLocked()

	return cloneDelivery(delivery), nil
}

// Transition applies one edge of the delivery lifecycle atomically. Reaching
// picked_up stamps the pickup time exactly once.
func (r *deliveryRepository) Transition(_ context.Context, id uuid.UUID, next entity.DeliveryStatus) (*entity.Delivery, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delivery, ok := r.store.deliveries[id]
	if !ok {
		return nil, repository.ErrDeliveryNotFound
	}
	if !delivery.Status.CanTransition(next) {
		return nil, repository.ErrIllegalTransition
	}

	delivery.Status = next
	now := time.Now()
	if next == entity.DeliveryPickedUp {
		delivery.PickupTime = &now
	}
	delivery.UpdatedAt = now
	r.store.persistLocked()

	return cloneDelivery(delivery), nil
}

func (r *deliveryRepository) collectLocked(match func(*entity.Delivery) bool) []*entity.Delivery {
	deliveries := make([]*entity.Delivery, 0)
	for _, delivery := range r.store.deliveries {
		if match(delivery) {
			deliveries = append(deliveries, cloneDelivery(delivery))
		}
	}
	sort.Slice(deliveries, func(i, j int) bool {
		if !deliveries[i].CreatedAt.Equal(deliveries[j].CreatedAt) {
			return deliveries[i].CreatedAt.After(deliveries[j].CreatedAt)
		}

		return deliveries[i].ID.String() < deliveries[j].ID.String()
	})

	return deliveries
}
