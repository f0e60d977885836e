package memory

import (
	"context"
	"sort"
	"time"

	"servease/internal/domain/entity"
	"servease/internal/domain/repository"

	"github.com/google/uuid"
)

type ticketRepository struct {
	store *Store
}

// NewTicketRepository creates a support ticket repository backed by the shared store.
func NewTicketRepository(store *Store) repository.TicketRepository {
	return &ticketRepository{store: store}
}

func (r *ticketRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.SupportTicket, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ticket, ok := r.store.tickets[id]
	if !ok {
		return nil, repository.ErrTicketNotFound
	}

	return cloneTicket(ticket), nil
}

func (r *ticketRepository) ListAll(_ context.Context) ([]*entity.SupportTicket, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.collectLocked(func(*entity.SupportTicket) bool { return true }), nil
}

func (r *ticketRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]*entity.SupportTicket, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.collectLocked(func(ticket *entity.SupportTicket) bool {
		return ticket.UserID == userID
	}), nil
}

func (r *ticketRepository) Create(_ context.Context, ticket *entity.SupportTicket) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.tickets[ticket.ID] = cloneTicket(ticket)
	r.store.persistLocked()

	return nil
}

// Respond resolves the ticket with its single allowed response. The terminal
// check and the write share one critical section, so two responders can
// never both pass it.
func (r *ticketRepository) Respond(_ context.Context, id uuid.UUID, response string, respondedAt time.Time) (*entity.SupportTicket, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	ticket, ok := r.store.tickets[id]
	if !ok {
		return nil, repository.ErrTicketNotFound
	}
	if ticket.Status.IsTerminal() {
		return nil, repository.ErrIllegalTransition
	}

	ticket.Response = &response
	ticket.RespondedAt = &respondedAt
	ticket.Status = entity.TicketResolved
	r.store.persistLocked()

	return cloneTicket(ticket), nil
}

func (r *ticketRepository) collectLocked(match func(*entity.SupportTicket) bool) []*entity.SupportTicket {
	tickets := make([]*entity.SupportTicket, 0)
	for _, ticket := range r.store.tickets {
		if match(ticket) {
			tickets = append(tickets, cloneTicket(ticket))
		}
	}
	sort.Slice(tickets, func(i, j int) bool {
		if !tickets[i].CreatedAt.Equal(tickets[j].CreatedAt) {
			return tickets[i].CreatedAt.After(tickets[j].CreatedAt)
		}

		return tickets[i].ID.String() < tickets[j].ID.String()
	})

	return tickets
}
