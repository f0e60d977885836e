// Package memory implements the repository contracts with an in-process
// entity store. It is the primary driver: every collection lives behind one
// RWMutex, reads hand out deep copies, and check-then-set mutations run in a
// single critical section. An optional JSON snapshot file carries the
// collections across restarts.
package memory

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"servease/config"
	"servease/internal/domain/entity"
	"servease/internal/errors"

	"github.com/google/uuid"
)

// Store owns every entity collection. Repositories share one Store so a
// transaction over multiple collections still sees a consistent world.
type Store struct {
	mu sync.RWMutex

	users      map[uuid.UUID]*entity.User
	requests   map[uuid.UUID]*entity.RepairRequest
	shops      map[uuid.UUID]*entity.RepairShop
	deliveries map[uuid.UUID]*entity.Delivery
	payments   map[uuid.UUID]*entity.Payment
	complaints map[uuid.UUID]*entity.Complaint
	tickets    map[uuid.UUID]*entity.SupportTicket

	snapshotPath string
	logger       *slog.Logger
}

// NewStore creates the store and loads the snapshot file when one is
// configured and present.
func NewStore(cfg *config.Config, logger *slog.Logger) (*Store, error) {
	store := &Store{
		users:        make(map[uuid.UUID]*entity.User),
		requests:     make(map[uuid.UUID]*entity.RepairRequest),
		shops:        make(map[uuid.UUID]*entity.RepairShop),
		deliveries:   make(map[uuid.UUID]*entity.Delivery),
		payments:     make(map[uuid.UUID]*entity.Payment),
		complaints:   make(map[uuid.UUID]*entity.Complaint),
		tickets:      make(map[uuid.UUID]*entity.SupportTicket),
		logger:       logger,
	}

	if cfg != nil && cfg.Store != nil {
		store.snapshotPath = cfg.Store.SnapshotPath
	}

	if err := store.load(); err != nil {
		return nil, errors.Wrap(err, "failed to load store snapshot")
	}

	return store, nil
}

// snapshotUser restores the fields the entity hides from API serialization.
type snapshotUser struct {
	entity.User
	PasswordHash string `json:"password_hash"`
	FCMToken     string `json:"fcm_token,omitempty"`
}

// snapshot is the on-disk layout: one record array per collection. IDs are
// strings and timestamps RFC3339 through the entities' JSON encoding.
type snapshot struct {
	Users      []*snapshotUser          `json:"users"`
	Requests   []*entity.RepairRequest  `json:"requests"`
	Shops      []*entity.RepairShop     `json:"shops"`
	Deliveries []*entity.Delivery       `json:"deliveries"`
	Payments   []*entity.Payment        `json:"payments"`
	Complaints []*entity.Complaint      `json:"complaints"`
	Tickets    []*entity.SupportTicket  `json:"tickets"`
}

func (s *Store) load() error {
	if s.snapshotPath == "" {
		return nil
	}

	raw, err := os.ReadFile(s.snapshotPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return errors.Wrap(err, "read snapshot file")
	}

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return errors.Wrap(err, "decode snapshot file")
	}

	for _, su := range snap.Users {
		user := su.User
		user.PasswordHash = su.PasswordHash
		user.FCMToken = su.FCMToken
		s.users[user.ID] = &user
	}
	for _, request := range snap.Requests {
		s.requests[request.ID] = request
	}
	for _, shop := range snap.Shops {
		s.shops[shop.ID] = shop
	}
	for _, delivery := range snap.Deliveries {
		s.deliveries[delivery.ID] = delivery
	}
	for _, payment := range snap.Payments {
		s.payments[payment.ID] = payment
	}
	for _, complaint := range snap.Complaints {
		s.complaints[complaint.ID] = complaint
	}
	for _, ticket := range snap.Tickets {
		s.tickets[ticket.ID] = ticket
	}

	return nil
}

// persistLocked writes the snapshot file. Callers must hold the write lock.
// Persistence is best-effort; failures are logged and never fail the command.
func (s *Store) persistLocked() {
	if s.snapshotPath == "" {
		return
	}

	snap := snapshot{}
	for _, user := range s.users {
		snap.Users = append(snap.Users, &snapshotUser{
			User:         *user,
			PasswordHash: user.PasswordHash,
			FCMToken:     user.FCMToken,
		})
	}
	for _, request := range s.requests {
		snap.Requests = append(snap.Requests, request)
	}
	for _, shop := range s.shops {
		snap.Shops = append(snap.Shops, shop)
	}
	for _, delivery := range s.deliveries {
		snap.Deliveries = append(snap.Deliveries, delivery)
	}
	for _, payment := range s.payments {
		snap.Payments = append(snap.Payments, payment)
	}
	for _, complaint := range s.complaints {
		snap.Complaints = append(snap.Complaints, complaint)
	}
	for _, ticket := range s.tickets {
		snap.Tickets = append(snap.Tickets, ticket)
	}

	raw, err := json.MarshalIndent(&snap, "", "  ")
	if err != nil {
		s.logger.Error("Failed to encode store snapshot", slog.Any("error", err))

		return
	}

	tmp := s.snapshotPath + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.snapshotPath), 0o755); err != nil {
		s.logger.Error("Failed to create snapshot directory", slog.Any("error", err))

		return
	}
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		s.logger.Error("Failed to write store snapshot", slog.Any("error", err))

		return
	}
	if err := os.Rename(tmp, s.snapshotPath); err != nil {
		s.logger.Error("Failed to swap store snapshot", slog.Any("error", err))
	}
}

// --- clone helpers: reads never leak shared pointers ---

func cloneUser(user *entity.User) *entity.User {
	clone := *user

	return &clone
}

func cloneRequest(request *entity.RepairRequest) *entity.RepairRequest {
	clone := *request
	if request.AssignedShopID != nil {
		id := *request.AssignedShopID
		clone.AssignedShopID = &id
	}
	if request.AssignedShopName != nil {
		name := *request.AssignedShopName
		clone.AssignedShopName = &name
	}

	return &clone
}

func cloneShop(shop *entity.RepairShop) *entity.RepairShop {
	clone := *shop
	clone.ServicesOffered = append([]entity.ApplianceType(nil), shop.ServicesOffered...)
	clone.AvailableSlots = append([]string(nil), shop.AvailableSlots...)

	return &clone
}

func cloneDelivery(delivery *entity.Delivery) *entity.Delivery {
	clone := *delivery
	if delivery.AssignedPartnerID != nil {
		id := *delivery.AssignedPartnerID
		clone.AssignedPartnerID = &id
	}
	if delivery.AssignedPartnerName != nil {
		name := *delivery.AssignedPartnerName
		clone.AssignedPartnerName = &name
	}
	if delivery.PickupTime != nil {
		pickup := *delivery.PickupTime
		clone.PickupTime = &pickup
	}

	return &clone
}

func clonePayment(payment *entity.Payment) *entity.Payment {
	clone := *payment
	if payment.PaymentDate != nil {
		date := *payment.PaymentDate
		clone.PaymentDate = &date
	}

	return &clone
}

func cloneComplaint(complaint *entity.Complaint) *entity.Complaint {
	clone := *complaint
	if complaint.Response != nil {
		response := *complaint.Response
		clone.Response = &response
	}
	if complaint.RespondedAt != nil {
		at := *complaint.RespondedAt
		clone.RespondedAt = &at
	}

	return &clone
}

func cloneTicket(ticket *entity.SupportTicket) *entity.SupportTicket {
	clone := *ticket
	if ticket.Response != nil {
		response := *ticket.Response
		clone.Response = &response
	}
	if ticket.RespondedAt != nil {
		at := *ticket.RespondedAt
		clone.RespondedAt = &at
	}

	return &clone
}
