package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"servease/internal/domain/entity"
	"servease/internal/domain/repository"
	"servease/internal/infra/persistence/model"
)

// paymentRepository implements the domain's PaymentRepository interface using GORM.
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository is the constructor for paymentRepository.
func NewPaymentRepository(db *gorm.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

// FindByID retrieves a single payment by ID.
func (repo *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	var paymentM model.PaymentModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&paymentM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPaymentNotFound
		}

		return nil, errors.Wrap(err, "failed to find payment by id")
	}

	return toPaymentDomain(&paymentM), nil
}

// FindByRequestID retrieves the payment tied to the given repair request.
func (repo *paymentRepository) FindByRequestID(ctx context.Context, requestID uuid.UUID) (*entity.Payment, error) {
	var paymentM model.PaymentModel
	if err := repo.db.WithContext(ctx).Where("request_id = ?", requestID).First(&paymentM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPaymentNotFound
		}

		return nil, errors.Wrap(err, "failed to find payment by request id")
	}

	return toPaymentDomain(&paymentM), nil
}

// ListAll returns every payment, newest first.
func (repo *paymentRepository) ListAll(ctx context.Context) ([]*entity.Payment, error) {
	var models []model.PaymentModel
	if err := repo.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list payments")
	}

	payments := make([]*entity.Payment, 0, len(models))
	for i := range models {
		payments = append(payments, toPaymentDomain(&models[i]))
	}

	return payments, nil
}

// Create persists a new payment record.
func (repo *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	paymentM := fromPaymentDomain(payment)

	if err := repo.db.WithContext(ctx).Create(paymentM).Error; err != nil {
		return errors.Wrap(err, "failed to create payment")
	}

	payment.ID = paymentM.ID
	payment.CreatedAt = paymentM.CreatedAt
	payment.UpdatedAt = paymentM.UpdatedAt

	return nil
}

// Transition moves the payment along one legal edge, stamping the payment
// date when it settles.
func (repo *paymentRepository) Transition(ctx context.Context, id uuid.UUID, next entity.PaymentStatus) (*entity.Payment, error) {
	current, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !current.Status.CanTransition(next) {
		return nil, repository.ErrIllegalTransition
	}

	updates := map[string]any{"status": next.String()}
	if next == entity.PaymentPaid {
		updates["payment_date"] = time.Now()
	}

	result := repo.db.WithContext(ctx).
		Model(&model.PaymentModel{}).
		Where("id = ? AND status = ?", id, current.Status.String()).
		Updates(updates)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to transition payment")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrIllegalTransition
	}

	return repo.FindByID(ctx, id)
}

// --- Mapper Functions ---

func toPaymentDomain(data *model.PaymentModel) *entity.Payment {
	if data == nil {
		return nil
	}

	return &entity.Payment{
		ID:            data.ID,
		RequestID:     data.RequestID,
		Amount:        data.Amount,
		Status:        entity.PaymentStatus(data.Status),
		Method:        entity.PaymentMethod(data.Method),
		PaymentDate:   data.PaymentDate,
		TransactionID: data.TransactionID,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

func fromPaymentDomain(data *entity.Payment) *model.PaymentModel {
	if data == nil {
		return nil
	}

	return &model.PaymentModel{
		ID:            data.ID,
		RequestID:     data.RequestID,
		Amount:        data.Amount,
		Status:        data.Status.String(),
		Method:        string(data.Method),
		PaymentDate:   data.PaymentDate,
		TransactionID: data.TransactionID,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}
