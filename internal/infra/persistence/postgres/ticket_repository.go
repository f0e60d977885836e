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

// ticketRepository implements the domain's TicketRepository interface using GORM.
type ticketRepository struct {
	db *gorm.DB
}

// NewTicketRepository is the constructor for ticketRepository.
func NewTicketRepository(db *gorm.DB) repository.TicketRepository {
	return &ticketRepository{db: db}
}

// FindByID retrieves a single support ticket by ID.
func (repo *ticketRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SupportTicket, error) {
	var ticketM model.TicketModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&ticketM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTicketNotFound
		}

		return nil, errors.Wrap(err, "failed to find support ticket by id")
	}

	return toTicketDomain(&ticketM), nil
}

// ListAll returns every support ticket, newest first.
func (repo *ticketRepository) ListAll(ctx context.Context) ([]*entity.SupportTicket, error) {
	return repo.list(ctx, repo.db)
}

// ListByUser returns the tickets submitted by the given user, newest first.
func (repo *ticketRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.SupportTicket, error) {
	return repo.list(ctx, repo.db.Where("user_id = ?", userID))
}

func (repo *ticketRepository) list(ctx context.Context, tx *gorm.DB) ([]*entity.SupportTicket, error) {
	var models []model.TicketModel
	if err := tx.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list support tickets")
	}

	tickets := make([]*entity.SupportTicket, 0, len(models))
	for i := range models {
		tickets = append(tickets, toTicketDomain(&models[i]))
	}

	return tickets, nil
}

// Create persists a new support ticket.
func (repo *ticketRepository) Create(ctx context.Context, ticket *entity.SupportTicket) error {
	ticketM := fromTicketDomain(ticket)

	if err := repo.db.WithContext(ctx).Create(ticketM).Error; err != nil {
		return errors.Wrap(err, "failed to create support ticket")
	}

	ticket.ID = ticketM.ID
	ticket.CreatedAt = ticketM.CreatedAt

	return nil
}

// Respond resolves the ticket with its single allowed response. The status
// predicate makes the terminal check part of the UPDATE itself; a concurrent
// responder that lost the race affects zero rows.
func (repo *ticketRepository) Respond(ctx context.Context, id uuid.UUID, response string, respondedAt time.Time) (*entity.SupportTicket, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.TicketModel{}).
		Where("id = ? AND status <> ?", id, string(entity.TicketResolved)).
		Updates(map[string]any{
			"status":       string(entity.TicketResolved),
			"response":     response,
			"responded_at": respondedAt,
		})
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to respond to support ticket")
	}
	if result.RowsAffected == 0 {
		// Zero rows means either no such ticket or an already resolved
		// one.
		if _, err := repo.FindByID(ctx, id); err != nil {
			return nil, err
		}

		return nil, repository.ErrIllegalTransition
	}

	return repo.FindByID(ctx, id)
}

// --- Mapper Functions ---

func toTicketDomain(data *model.TicketModel) *entity.SupportTicket {
	if data == nil {
		return nil
	}

	return &entity.SupportTicket{
		ID:          data.ID,
		UserID:      data.UserID,
		UserName:    data.UserName,
		UserEmail:   data.UserEmail,
		Subject:     data.Subject,
		Message:     data.Message,
		Status:      entity.SupportTicketStatus(data.Status),
		Response:    data.Response,
		RespondedAt: data.RespondedAt,
		CreatedAt:   data.CreatedAt,
	}
}

func fromTicketDomain(data *entity.SupportTicket) *model.TicketModel {
	if data == nil {
		return nil
	}

	return &model.TicketModel{
		ID:          data.ID,
		UserID:      data.UserID,
		UserName:    data.UserName,
		UserEmail:   data.UserEmail,
		Subject:     data.Subject,
		Message:     data.Message,
		Status:      string(data.Status),
		Response:    data.Response,
		RespondedAt: data.RespondedAt,
		CreatedAt:   data.CreatedAt,
	}
}
