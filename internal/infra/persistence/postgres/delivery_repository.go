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

// deliveryRepository implements the domain's DeliveryRepository interface using GORM.
// Like requestRepository it relies on conditional UPDATEs for race-safe edges.
type deliveryRepository struct {
	db *gorm.DB
}

// NewDeliveryRepository is the constructor for deliveryRepository.
func NewDeliveryRepository(db *gorm.DB) repository.DeliveryRepository {
	return &deliveryRepository{db: db}
}

// FindByID retrieves a single delivery by ID.
func (repo *deliveryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Delivery, error) {
	var deliveryM model.DeliveryModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&deliveryM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDeliveryNotFound
		}

		return nil, errors.Wrap(err, "failed to find delivery by id")
	}

	return toDeliveryDomain(&deliveryM), nil
}

// FindByRequestID retrieves the delivery spawned for the given repair request.
func (repo *deliveryRepository) FindByRequestID(ctx context.Context, requestID uuid.UUID) (*entity.Delivery, error) {
	var deliveryM model.DeliveryModel
	if err := repo.db.WithContext(ctx).Where("request_id = ?", requestID).First(&deliveryM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDeliveryNotFound
		}

		return nil, errors.Wrap(err, "failed to find delivery by request id")
	}

	return toDeliveryDomain(&deliveryM), nil
}

// ListAll returns every delivery, newest first.
func (repo *deliveryRepository) ListAll(ctx context.Context) ([]*entity.Delivery, error) {
	return repo.list(ctx, repo.db)
}

// ListByPartner returns the deliveries accepted by the given partner, newest first.
func (repo *deliveryRepository) ListByPartner(ctx context.Context, partnerID uuid.UUID) ([]*entity.Delivery, error) {
	return repo.list(ctx, repo.db.Where("assigned_partner_id = ?", partnerID))
}

// ListUnassigned returns the deliveries no partner has accepted yet, newest first.
func (repo *deliveryRepository) ListUnassigned(ctx context.Context) ([]*entity.Delivery, error) {
	return repo.list(ctx, repo.db.Where("assigned_partner_id IS NULL"))
}

func (repo *deliveryRepository) list(ctx context.Context, tx *gorm.DB) ([]*entity.Delivery, error) {
	var models []model.DeliveryModel
	if err := tx.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list deliveries")
	}

	deliveries := make([]*entity.Delivery, 0, len(models))
	for i := range models {
		deliveries = append(deliveries, toDeliveryDomain(&models[i]))
	}

	return deliveries, nil
}

// Create persists a new delivery.
func (repo *deliveryRepository) Create(ctx context.Context, delivery *entity.Delivery) error {
	deliveryM := fromDeliveryDomain(delivery)

	if err := repo.db.WithContext(ctx).Create(deliveryM).Error; err != nil {
		return errors.Wrap(err, "failed to create delivery")
	}

	delivery.ID = deliveryM.ID
	delivery.CreatedAt = deliveryM.CreatedAt
	delivery.UpdatedAt = deliveryM.UpdatedAt

	return nil
}

// Accept claims an unassigned pending delivery for the partner and schedules
// the pickup. First partner wins; the loser's UPDATE matches zero rows.
func (repo *deliveryRepository) Accept(ctx context.Context, id uuid.UUID, partnerID uuid.UUID, partnerName string) (*entity.Delivery, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.DeliveryModel{}).
		Where("id = ? AND status = ? AND assigned_partner_id IS NULL", id, entity.DeliveryPending.String()).
		Updates(map[string]any{
			"status":                entity.DeliveryPickupScheduled.String(),
			"assigned_partner_id":   partnerID,
			"assigned_partner_name": partnerName,
		})
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to accept delivery")
	}
	if result.RowsAffected == 0 {
		if _, err := repo.FindByID(ctx, id); err != nil {
			return nil, err
		}

		return nil, repository.ErrDeliveryAlreadyAccepted
	}

	return repo.FindByID(ctx, id)
}

// Transition moves the delivery along one lifecycle edge, stamping the pickup
// time when the parcel is picked up.
func (repo *deliveryRepository) Transition(ctx context.Context, id uuid.UUID, next entity.DeliveryStatus) (*entity.Delivery, error) {
	current, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !current.Status.CanTransition(next) {
		return nil, repository.ErrIllegalTransition
	}

	updates := map[string]any{"status": next.String()}
	if next == entity.DeliveryPickedUp {
		updates["pickup_time"] = time.Now()
	}

	result := repo.db.WithContext(ctx).
		Model(&model.DeliveryModel{}).
		Where("id = ? AND status = ?", id, current.Status.String()).
		Updates(updates)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to transition delivery")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrIllegalTransition
	}

	return repo.FindByID(ctx, id)
}

// --- Mapper Functions ---

func toDeliveryDomain(data *model.DeliveryModel) *entity.Delivery {
	if data == nil {
		return nil
	}

	return &entity.Delivery{
		ID:                  data.ID,
		RequestID:           data.RequestID,
		AssignedPartnerID:   data.AssignedPartnerID,
		AssignedPartnerName: data.AssignedPartnerName,
		PickupTime:          data.PickupTime,
		Status:              entity.DeliveryStatus(data.Status),
		TrackingDetails:     data.TrackingDetails,
		DeliveryFee:         data.DeliveryFee,
		CreatedAt:           data.CreatedAt,
		UpdatedAt:           data.UpdatedAt,
	}
}

func fromDeliveryDomain(data *entity.Delivery) *model.DeliveryModel {
	if data == nil {
		return nil
	}

	return &model.DeliveryModel{
		ID:                  data.ID,
		RequestID:           data.RequestID,
		AssignedPartnerID:   data.AssignedPartnerID,
		AssignedPartnerName: data.AssignedPartnerName,
		PickupTime:          data.PickupTime,
		Status:              data.Status.String(),
		TrackingDetails:     data.TrackingDetails,
		DeliveryFee:         data.DeliveryFee,
		CreatedAt:           data.CreatedAt,
		UpdatedAt:           data.UpdatedAt,
	}
}
