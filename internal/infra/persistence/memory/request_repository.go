package memory

import (
	"context"
	"sort"
	"time"

	"servease/internal/domain/entity"
	"servease/internal/domain/repository"

	"github.com/google/uuid"
)

type requestRepository struct {
	store *Store
}

// NewRequestRepository creates a repair request repository backed by the
// shared store.
func NewRequestRepository(store *Store) repository.RequestRepository {
	return &requestRepository{store: store}
}

func (r *requestRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.RepairRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	request, ok := r.store.requests[id]
	if !ok {
		return nil, repository.ErrRequestNotFound
	}

	return cloneRequest(request), nil
}

func (r *requestRepository) ListAll(_ context.Context) ([]*entity.RepairRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.collectLocked(func(*entity.RepairRequest) bool { return true }), nil
}

func (r *requestRepository) ListByCustomer(_ context.Context, customerID uuid.UUID) ([]*entity.RepairRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.collectLocked(func(request *entity.RepairRequest) bool {
		return request.CustomerID == customerID
	}), nil
}

func (r *requestRepository) ListByShop(_ context.Context, shopID uuid.UUID) ([]*entity.RepairRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.collectLocked(func(request *entity.RepairRequest) bool {
		return request.AssignedShopID != nil && *request.AssignedShopID == shopID
	}), nil
}

func (r *requestRepository) ListPending(_ context.Context) ([]*entity.RepairRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.collectLocked(func(request *entity.RepairRequest) bool {
		return request.Status == entity.RequestPending
	}), nil
}

func (r *requestRepository) Create(_ context.Context, request *entity.RepairRequest) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.requests[request.ID] = cloneRequest(request)
	r.store.persistLocked()

	return nil
}

// Assign moves a pending request to accepted and records the shop, all in
// one critical section so two shops can never both claim it.
func (r *requestRepository) Assign(_ context.Context, id uuid.UUID, shopID uuid.UUID, shopName string) (*entity.RepairRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	request, ok := r.store.requests[id]
	if !ok {
		return nil, repository.ErrRequestNotFound
	}
	if request.Status != entity.RequestPending {
		return nil, repository.ErrRequestAlreadyAssigned
	}

	request.AssignedShopID = &shopID
	request.AssignedShopName = &shopName
	request.Status = entity.RequestAccepted
	request.UpdatedAt = time.Now()
	r.store.persistLocked()

	return cloneRequest(request), nil
}

// Transition applies one edge of the lifecycle table atomically. Illegal
// edges leave the record untouched.
func (r *requestRepository) Transition(_ context.Context, id uuid.UUID, next entity.RequestStatus) (*entity.RepairRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	request, ok := r.store.requests[id]
	if !ok {
		return nil, repository.ErrRequestNotFound
	}
	if !request.Status.CanTransition(next) {
		return nil, repository.ErrIllegalTransition
	}

	request.Status = next
	request.UpdatedAt = time.Now()
	r.store.persistLocked()

	return cloneRequest(request), nil
}

// TransitionFrom applies the edge only when the request currently sits in
// the expected status; otherwise it reports false without error.
func (r *requestRepository) TransitionFrom(_ context.Context, id uuid.UUID, expected, next entity.RequestStatus) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	request, ok := r.store.requests[id]
	if !ok {
		return false, repository.ErrRequestNotFound
	}
	if request.Status != expected {
		return false, nil
	}
	if !request.Status.CanTransition(next) {
		return false, repository.ErrIllegalTransition
	}

	request.Status = next
	request.UpdatedAt = time.Now()
	r.store.persistLocked()

	return true, nil
}

// collectLocked gathers matching requests newest first. Callers must hold at
// least the read lock.
func (r *requestRepository) collectLocked(match func(*entity.RepairRequest) bool) []*entity.RepairRequest {
	requests := make([]*entity.RepairRequest, 0)
	for _, request := range r.store.requests {
		if match(request) {
			requests = append(requests, cloneRequest(request))
		}
	}
	sort.Slice(requests, func(i, j int) bool {
		if !requests[i].CreatedAt.Equal(requests[j].CreatedAt) {
			return requests[i].CreatedAt.After(requests[j].CreatedAt)
		}

		return requests[i].ID.String() < requests[j].ID.String()
	})

	return requests
}
