package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"servease/internal/domain/entity"
	"servease/internal/domain/repository"
	"servease/internal/infra/persistence/model"
)

// requestRepository implements the domain's RequestRepository interface using GORM.
//
// Lifecycle edges are enforced with conditional UPDATEs: the WHERE clause
// restates the expected current status so a concurrent writer that got there
// first makes RowsAffected report zero instead of silently overwriting.
type requestRepository struct {
	db *gorm.DB
}

// NewRequestRepository is the constructor for requestRepository.
func NewRequestRepository(db *gorm.DB) repository.RequestRepository {
	return &requestRepository{db: db}
}

// FindByID retrieves a single repair request by ID.
func (repo *requestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.RepairRequest, error) {
	var requestM model.RequestModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&requestM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRequestNotFound
		}

		return nil, errors.Wrap(err, "failed to find repair request by id")
	}

	return toRequestDomain(&requestM), nil
}

// ListAll returns every repair request, newest first.
func (repo *requestRepository) ListAll(ctx context.Context) ([]*entity.RepairRequest, error) {
	return repo.list(ctx, repo.db)
}

// ListByCustomer returns the requests submitted by the given customer, newest first.
func (repo *requestRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.RepairRequest, error) {
	return repo.list(ctx, repo.db.Where("customer_id = ?", customerID))
}

// ListByShop returns the requests assigned to the given shop, newest first.
func (repo *requestRepository) ListByShop(ctx context.Context, shopID uuid.UUID) ([]*entity.RepairRequest, error) {
	return repo.list(ctx, repo.db.Where("assigned_shop_id = ?", shopID))
}

// ListPending returns the unassigned requests awaiting a shop, newest first.
func (repo *requestRepository) ListPending(ctx context.Context) ([]*entity.RepairRequest, error) {
	return repo.list(ctx, repo.db.Where("status = ?", entity.RequestPending.String()))
}

func (repo *requestRepository) list(ctx context.Context, tx *gorm.DB) ([]*entity.RepairRequest, error) {
	var models []model.RequestModel
	if err := tx.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list repair requests")
	}

	requests := make([]*entity.RepairRequest, 0, len(models))
	for i := range models {
		requests = append(requests, toRequestDomain(&models[i]))
	}

	return requests, nil
}

// Create persists a new repair request.
func (repo *requestRepository) Create(ctx context.Context, request *entity.RepairRequest) error {
	requestM := fromRequestDomain(request)

	if err := repo.db.WithContext(ctx).Create(requestM).Error; err != nil {
		return errors.Wrap(err, "failed to create repair request")
	}

	request.ID = requestM.ID
	request.CreatedAt = requestM.CreatedAt
	request.UpdatedAt = requestM.UpdatedAt

	return nil
}

// Assign moves a pending request to accepted and records the winning shop.
// The status predicate makes the accept race first-wins: the loser's UPDATE
// matches zero rows.
func (repo *requestRepository) Assign(ctx context.Context, id uuid.UUID, shopID uuid.UUID, shopName string) (*entity.RepairRequest, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.RequestModel{}).
		Where("id = ? AND status = ?", id, entity.RequestPending.String()).
		Updates(map[string]any{
			"status":             entity.RequestAccepted.String(),
			"assigned_shop_id":   shopID,
			"assigned_shop_name": shopName,
		})
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to assign repair request")
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing request from a lost race.
		if _, err := repo.FindByID(ctx, id); err != nil {
			return nil, err
		}

		return nil, repository.ErrRequestAlreadyAssigned
	}

	return repo.FindByID(ctx, id)
}

// Transition moves the request along one lifecycle edge.
func (repo *requestRepository) Transition(ctx context.Context, id uuid.UUID, next entity.RequestStatus) (*entity.RepairRequest, error) {
	current, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !current.Status.CanTransition(next) {
		return nil, repository.ErrIllegalTransition
	}

	result := repo.db.WithContext(ctx).
		Model(&model.RequestModel{}).
		Where("id = ? AND status = ?", id, current.Status.String()).
		Update("status", next.String())
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to transition repair request")
	}
	if result.RowsAffected == 0 {
		// A concurrent writer moved the request first.
		return nil, repository.ErrIllegalTransition
	}

	return repo.FindByID(ctx, id)
}

// TransitionFrom applies the edge only when the request currently sits in the
// expected state. It reports false without error when the precondition does
// not hold, so reconciliation callers can skip instead of fail.
func (repo *requestRepository) TransitionFrom(ctx context.Context, id uuid.UUID, expected, next entity.RequestStatus) (bool, error) {
	if !expected.CanTransition(next) {
		return false, repository.ErrIllegalTransition
	}

	result := repo.db.WithContext(ctx).
		Model(&model.RequestModel{}).
		Where("id = ? AND status = ?", id, expected.String()).
		Update("status", next.String())
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "failed to transition repair request")
	}
	if result.RowsAffected == 0 {
		// Verify the request exists at all before reporting a clean skip.
		if _, err := repo.FindByID(ctx, id); err != nil {
			return false, err
		}

		return false, nil
	}

	return true, nil
}

// --- Mapper Functions ---

func toRequestDomain(data *model.RequestModel) *entity.RepairRequest {
	if data == nil {
		return nil
	}

	return &entity.RepairRequest{
		ID:                data.ID,
		CustomerID:        data.CustomerID,
		CustomerName:      data.CustomerName,
		CustomerPhone:     data.CustomerPhone,
		ApplianceType:     entity.ApplianceType(data.ApplianceType),
		Brand:             data.Brand,
		IssueDescription:  data.IssueDescription,
		Address:           data.Address,
		PreferredDateTime: data.PreferredDateTime,
		AssignedShopID:    data.AssignedShopID,
		AssignedShopName:  data.AssignedShopName,
		Status:            entity.RequestStatus(data.Status),
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}

func fromRequestDomain(data *entity.RepairRequest) *model.RequestModel {
	if data == nil {
		return nil
	}

	return &model.RequestModel{
		ID:                data.ID,
		CustomerID:        data.CustomerID,
		CustomerName:      data.CustomerName,
		CustomerPhone:     data.CustomerPhone,
		ApplianceType:     data.ApplianceType.String(),
		Brand:             data.Brand,
		IssueDescription:  data.IssueDescription,
		Address:           data.Address,
		PreferredDateTime: data.PreferredDateTime,
		AssignedShopID:    data.AssignedShopID,
		AssignedShopName:  data.AssignedShopName,
		Status:            data.Status.String(),
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}
