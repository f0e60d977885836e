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

// complaintRepository implements the domain's ComplaintRepository interface using GORM.
type complaintRepository struct {
	db *gorm.DB
}

// NewComplaintRepository is the constructor for complaintRepository.
func NewComplaintRepository(db *gorm.DB) repository.ComplaintRepository {
	return &complaintRepository{db: db}
}

// FindByID retrieves a single complaint by ID.
func (repo *complaintRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Complaint, error) {
	var complaintM model.ComplaintModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&complaintM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrComplaintNotFound
		}

		return nil, errors.Wrap(err, "failed to find complaint by id")
	}

	return toComplaintDomain(&complaintM), nil
}

// ListAll returns every complaint, newest first.
func (repo *complaintRepository) ListAll(ctx context.Context) ([]*entity.Complaint, error) {
	return repo.list(ctx, repo.db)
}

// ListByUser returns the complaints submitted by the given user, newest first.
func (repo *complaintRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Complaint, error) {
	return repo.list(ctx, repo.db.Where("user_id = ?", userID))
}

func (repo *complaintRepository) list(ctx context.Context, tx *gorm.DB) ([]*entity.Complaint, error) {
	var models []model.ComplaintModel
	if err := tx.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list complaints")
	}

	complaints := make([]*entity.Complaint, 0, len(models))
	for i := range models {
		complaints = append(complaints, toComplaintDomain(&models[i]))
	}

	return complaints, nil
}

// Create persists a new complaint.
func (repo *complaintRepository) Create(ctx context.Context, complaint *entity.Complaint) error {
	complaintM := fromComplaintDomain(complaint)

	if err := repo.db.WithContext(ctx).Create(complaintM).Error; err != nil {
		return errors.Wrap(err, "failed to create complaint")
	}

	complaint.ID = complaintM.ID
	complaint.CreatedAt = complaintM.CreatedAt

	return nil
}

// Respond resolves the complaint with its single allowed response. The
// status predicate makes the terminal check part of the UPDATE itself;
// a concurrent responder that lost the race affects zero rows.
func (repo *complaintRepository) Respond(ctx context.Context, id uuid.UUID, response string, respondedAt time.Time) (*entity.Complaint, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.ComplaintModel{}).
		Where("id = ? AND status NOT IN ?", id,
			[]string{string(entity.ComplaintResolved), string(entity.ComplaintClosed)}).
		Updates(map[string]any{
			"status":       string(entity.ComplaintResolved),
			"response":     response,
			"responded_at": respondedAt,
		})
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to respond to complaint")
	}
	if result.RowsAffected == 0 {
		// Zero rows means either no such complaint or an already
		// terminal one.
		if _, err := repo.FindByID(ctx, id); err != nil {
			return nil, err
		}

		return nil, repository.ErrIllegalTransition
	}

	return repo.FindByID(ctx, id)
}

// --- Mapper Functions ---

func toComplaintDomain(data *model.ComplaintModel) *entity.Complaint {
	if data == nil {
		return nil
	}

	return &entity.Complaint{
		ID:          data.ID,
		UserID:      data.UserID,
		Type:        entity.ComplaintType(data.Type),
		Message:     data.Message,
		Status:      entity.ComplaintStatus(data.Status),
		Response:    data.Response,
		RespondedAt: data.RespondedAt,
		CreatedAt:   data.CreatedAt,
	}
}

func fromComplaintDomain(data *entity.Complaint) *model.ComplaintModel {
	if data == nil {
		return nil
	}

	return &model.ComplaintModel{
		ID:          data.ID,
		UserID:      data.UserID,
		Type:        string(data.Type),
		Message:     data.Message,
		Status:      string(data.Status),
		Response:    data.Response,
		RespondedAt: data.RespondedAt,
		CreatedAt:   data.CreatedAt,
	}
}
