package memory

import (
	"context"
	"sort"
	"time"

	"servease/internal/domain/entity"
	"servease/internal/domain/repository"

	"github.com/google/uuid"
)

type paymentRepository struct {
	store *Store
}

// NewPaymentRepository creates a payment repository backed by the shared store.
func NewPaymentRepository(store *Store) repository.PaymentRepository {
	return &paymentRepository{store: store}
}

func (r *paymentRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Payment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	payment, ok := r.store.payments[id]
	if !ok {
		return nil, repository.ErrPaymentNotFound
	}

	return clonePayment(payment), nil
}

func (r *paymentRepository) FindByRequestID(_ context.Context, requestID uuid.UUID) (*entity.Payment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, payment := range r.store.payments {
		if payment.RequestID == requestID {
			return clonePayment(payment), nil
		}
	}

	return nil, repository.ErrPaymentNotFound
}

func (r *paymentRepository) ListAll(_ context.Context) ([]*entity.Payment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	payments := make([]*entity.Payment, 0, len(r.store.payments))
	for _, payment := range r.store.payments {
		payments = append(payments, clonePayment(payment))
	}
	sort.Slice(payments, func(i, j int) bool {
		if !payments[i].CreatedAt.Equal(payments[j].CreatedAt) {
			return payments[i].CreatedAt.After(payments[j].CreatedAt)
		}

		return payments[i].ID.String() < payments[j].ID.String()
	})

	return payments, nil
}

func (r *paymentRepository) Create(_ context.Context, payment *entity.Payment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.payments[payment.ID] = clonePayment(payment)
	r.store.persistLocked()

	return nil
}

// Transition applies one edge of the payment table atomically. Reaching paid
// stamps the payment date.
func (r *paymentRepository) Transition(_ context.Context, id uuid.UUID, next entity.PaymentStatus) (*entity.Payment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	payment, ok := r.store.payments[id]
	if !ok {
		return nil, repository.ErrPaymentNotFound
	}
	if !payment.Status.CanTransition(next) {
		return nil, repository.ErrIllegalTransition
	}

	payment.Status = next
	now := time.Now()
	if next == entity.PaymentPaid {
		payment.PaymentDate = &now
	}
	payment.UpdatedAt = now
	r.store.persistLocked()

	return clonePayment(payment), nil
}
