package memory

import (
	"context"
	"sort"
	"time"

	"servease/internal/domain/entity"
	"servease/internal/domain/repository"

	"github.com/google/uuid"
)

type complaintRepository struct {
	store *Store
}

// NewComplaintRepository creates a complaint repository backed by the shared store.
func NewComplaintRepository(store *Store) repository.ComplaintRepository {
	return &complaintRepository{store: store}
}

func (r *complaintRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Complaint, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	complaint, ok := r.store.complaints[id]
	if !ok {
		return nil, repository.ErrComplaintNotFound
	}

	return cloneComplaint(complaint), nil
}

func (r *complaintRepository) ListAll(_ context.Context) ([]*entity.Complaint, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.collectLocked(func(*entity.Complaint) bool { return true }), nil
}

func (r *complaintRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]*entity.Complaint, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.collectLocked(func(complaint *entity.Complaint) bool {
		return complaint.UserID == userID
	}), nil
}

func (r *complaintRepository) Create(_ context.Context, complaint *entity.Complaint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.complaints[complaint.ID] = cloneComplaint(complaint)
	r.store.persistLocked()

	return nil
}

// Respond resolves the complaint with its single allowed response. The
// terminal check and the write share one critical section, so two
// responders can never both pass it.
func (r *complaintRepository) Respond(_ context.Context, id uuid.UUID, response string, respondedAt time.Time) (*entity.Complaint, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	complaint, ok := r.store.complaints[id]
	if !ok {
		return nil, repository.ErrComplaintNotFound
	}
	if complaint.Status.IsTerminal() {
		return nil, repository.ErrIllegalTransition
	}

	complaint.Response = &response
	complaint.RespondedAt = &respondedAt
	complaint.Status = entity.ComplaintResolved
	r.store.persistLocked()

	return cloneComplaint(complaint), nil
}

func (r *complaintRepository) collectLocked(match func(*entity.Complaint) bool) []*entity.Complaint {
	complaints := make([]*entity.Complaint, 0)
	for _, complaint := range r.store.complaints {
		if match(complaint) {
			complaints = append(complaints, cloneComplaint(complaint))
		}
	}
	sort.Slice(complaints, func(i, j int) bool {
		if !complaints[i].CreatedAt.Equal(complaints[j].CreatedAt) {
			return complaints[i].CreatedAt.After(complaints[j].CreatedAt)
		}

		return complaints[i].ID.String() < complaints[j].ID.String()
	})

	return complaints
}
