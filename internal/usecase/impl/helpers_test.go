package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"servease/internal/domain/entity"
	"servease/internal/domain/repository"
	"servease/internal/domain/service"
	"servease/internal/infra/persistence/memory"
	"servease/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recordingPublisher captures every published status event for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []*service.RequestStatusEvent
}

func (p *recordingPublisher) PublishStatusEvent(_ context.Context, event *service.RequestStatusEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)

	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) Events() []*service.RequestStatusEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]*service.RequestStatusEvent(nil), p.events...)
}

// stubNotifier counts single-device pushes.
type stubNotifier struct {
	mu     sync.Mutex
	tokens []string
}

func (n *stubNotifier) SendSingleNotification(_ context.Context, token, _, _ string, _ map[string]string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.tokens = append(n.tokens, token)

	return nil
}

func (n *stubNotifier) SendBatchNotification(_ context.Context, tokens []string, _, _ string, _ map[string]string) (int, int, []string, error) {
	return len(tokens), 0, nil, nil
}

func (n *stubNotifier) Tokens() []string {
	n.mu.Lock()
	defer n.mu.Unlock()

	return append([]string(nil), n.tokens...)
}

// stubQRCodeService returns a fixed payload instead of a real PNG.
type stubQRCodeService struct{}

func (s *stubQRCodeService) GeneratePickupQR(deliveryID uuid.UUID) ([]byte, error) {
	return []byte("qr:" + deliveryID.String()), nil
}

func (s *stubQRCodeService) ParsePickupQR(qrData string) (uuid.UUID, error) {
	return uuid.Parse(qrData[len("qr:"):])
}

// plainHasher avoids bcrypt's cost in tests while keeping Check semantics.
type plainHasher struct{}

func (h *plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (h *plainHasher) Check(password, hash string) bool { return hash == "hashed:"+password }

// staticTokenService issues deterministic tokens.
type staticTokenService struct{}

func (s *staticTokenService) GenerateToken(userID uuid.UUID, role string) (string, error) {
	return "token:" + userID.String() + ":" + role, nil
}

func (s *staticTokenService) ValidateToken(string) (*service.Claims, error) {
	return nil, nil
}

func (s *staticTokenService) GetAccessTokenDuration() time.Duration { return time.Hour }

// fixtures wires every usecase against one shared memory store so tests
// exercise the real repository semantics instead of mocks.
type fixtures struct {
	userRepo     repository.UserRepository
	requestRepo  repository.RequestRepository
	shopRepo     repository.ShopRepository
	deliveryRepo repository.DeliveryRepository
	paymentRepo  repository.PaymentRepository

	publisher *recordingPublisher
	notifier  *stubNotifier

	identity usecase.IdentityUsecase
	requests usecase.RequestUsecase
	shops    usecase.ShopUsecase
	delivery usecase.DeliveryUsecase
	payments usecase.PaymentUsecase
	support  usecase.SupportUsecase
	stats    usecase.StatsUsecase
	admin    usecase.AdminUsecase
}

func newFixtures(t *testing.T) *fixtures {
	t.Helper()

	logger := newDiscardLogger()
	store, err := memory.NewStore(nil, logger)
	require.NoError(t, err)

	userRepo := memory.NewUserRepository(store)
	requestRepo := memory.NewRequestRepository(store)
	shopRepo := memory.NewShopRepository(store)
	deliveryRepo := memory.NewDeliveryRepository(store)
	paymentRepo := memory.NewPaymentRepository(store)
	complaintRepo := memory.NewComplaintRepository(store)
	ticketRepo := memory.NewTicketRepository(store)
	txManager := memory.NewTransactionManager(store)

	publisher := &recordingPublisher{}
	notifier := &stubNotifier{}

	return &fixtures{
		userRepo:     userRepo,
		requestRepo:  requestRepo,
		shopRepo:     shopRepo,
		deliveryRepo: deliveryRepo,
		paymentRepo:  paymentRepo,
		publisher:    publisher,
		notifier:     notifier,
		identity: NewIdentityService(IdentityServiceParams{
			TxManager:    txManager,
			UserRepo:     userRepo,
			Hasher:       &plainHasher{},
			TokenService: &staticTokenService{},
			Logger:       logger,
		}),
		requests: NewRequestService(RequestServiceParams{
			TxManager:    txManager,
			RequestRepo:  requestRepo,
			ShopRepo:     shopRepo,
			DeliveryRepo: deliveryRepo,
			UserRepo:     userRepo,
			Publisher:    publisher,
			Notifier:     notifier,
			Logger:       logger,
		}),
		shops: NewShopService(ShopServiceParams{
			ShopRepo: shopRepo,
			Logger:   logger,
		}),
		delivery: NewDeliveryService(DeliveryServiceParams{
			DeliveryRepo:  deliveryRepo,
			RequestRepo:   requestRepo,
			UserRepo:      userRepo,
			QRCodeService: &stubQRCodeService{},
			Publisher:     publisher,
			Logger:        logger,
		}),
		payments: NewPaymentService(PaymentServiceParams{
			PaymentRepo: paymentRepo,
			RequestRepo: requestRepo,
			Logger:      logger,
		}),
		support: NewSupportService(SupportServiceParams{
			ComplaintRepo: complaintRepo,
			TicketRepo:    ticketRepo,
			UserRepo:      userRepo,
			Logger:        logger,
		}),
		stats: NewStatsService(StatsServiceParams{
			UserRepo:    userRepo,
			RequestRepo: requestRepo,
			PaymentRepo: paymentRepo,
			Logger:      logger,
		}),
		admin: NewAdminService(AdminServiceParams{
			UserRepo: userRepo,
			Logger:   logger,
		}),
	}
}

func (fx *fixtures) createUser(t *testing.T, role entity.Role) *entity.User {
	t.Helper()

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New(),
		FullName:     "Test " + role.String(),
		Email:        uuid.New().String() + "@example.com",
		PasswordHash: "hashed:password",
		Phone:        "0912-345-678",
		City:         "Taipei",
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, fx.userRepo.Create(context.Background(), user))

	return user
}

func (fx *fixtures) createShop(t *testing.T) *entity.RepairShop {
	t.Helper()

	shop := &entity.RepairShop{
		ID:              uuid.New(),
		Name:            "Fixture Repairs",
		Location:        "Downtown",
		Contact:         "123-456-7890",
		ServicesOffered: []entity.ApplianceType{entity.ApplianceRefrigerator},
		AvailableSlots:  []string{"9:00 AM"},
		Rating:          4.5,
		ReviewCount:     10,
		Latitude:        25.0330,
		Longitude:       121.5654,
	}
	require.NoError(t, fx.shopRepo.Create(context.Background(), shop))

	return shop
}

func (fx *fixtures) createPendingRequest(t *testing.T, customer *entity.User) *entity.RepairRequest {
	t.Helper()

	request, err := fx.requests.CreateRequest(context.Background(), &usecase.CreateRequestInput{
		CustomerID:        customer.ID,
		ApplianceType:     entity.ApplianceRefrigerator,
		Brand:             "CoolCo",
		IssueDescription:  "not cooling",
		Address:           "1 Main St",
		PreferredDateTime: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	return request
}

// createAssignedRequest accepts the request for a fresh shop, which also
// spawns the delivery task.
func (fx *fixtures) createAssignedRequest(t *testing.T, customer *entity.User) (*entity.RepairRequest, *entity.Delivery) {
	t.Helper()

	request := fx.createPendingRequest(t, customer)
	shop := fx.createShop(t)

	assigned, err := fx.requests.AssignShop(context.Background(), request.ID, shop.ID)
	require.NoError(t, err)

	delivery, err := fx.delivery.GetDeliveryForRequest(context.Background(), request.ID)
	require.NoError(t, err)

	return assigned, delivery
}
