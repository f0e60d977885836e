package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"go.uber.org/fx"

	"servease/config"
	"servease/internal/delivery"
	"servease/internal/delivery/http"
	"servease/internal/delivery/http/middleware"
	"servease/internal/delivery/http/router/handler"
	"servease/internal/domain/repository"
	"servease/internal/domain/service"
	"servease/internal/errors"
	"servease/internal/infra/auth"
	logs "servease/internal/infra/log"
	"servease/internal/infra/notification"
	"servease/internal/infra/persistence/memory"
	"servease/internal/infra/persistence/postgres"
	"servease/internal/infra/pubsub"
	"servease/internal/infra/qrcode"
	"servease/internal/usecase"
	"servease/internal/usecase/impl"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			seedShops,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
		),
		pubsub.Module,
	)
}

// repositories carries the full repository set for whichever store driver
// the configuration selects.
type repositories struct {
	fx.Out

	Users      repository.UserRepository
	Requests   repository.RequestRepository
	Shops      repository.ShopRepository
	Deliveries repository.DeliveryRepository
	Payments   repository.PaymentRepository
	Complaints repository.ComplaintRepository
	Tickets    repository.TicketRepository
	TxManager  repository.TransactionManager
}

func injectRepo() fx.Option {
	return fx.Provide(newRepositories)
}

type repoParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// newRepositories builds the repository set backed by the configured store
// driver. The memory driver serves local development and tests, the postgres
// driver serves real deployments.
func newRepositories(params repoParams) (repositories, error) {
	switch params.Config.Store.Driver {
	case "memory":
		store, err := memory.NewStore(params.Config, params.Logger)
		if err != nil {
			return repositories{}, errors.Wrap(err, "failed to open memory store")
		}

		return repositories{
			Users:      memory.NewUserRepository(store),
			Requests:   memory.NewRequestRepository(store),
			Shops:      memory.NewShopRepository(store),
			Deliveries: memory.NewDeliveryRepository(store),
			Payments:   memory.NewPaymentRepository(store),
			Complaints: memory.NewComplaintRepository(store),
			Tickets:    memory.NewTicketRepository(store),
			TxManager:  memory.NewTransactionManager(store),
		}, nil
	case "postgres":
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return repositories{}, err
		}

		return repositories{
			Users:      postgres.NewUserRepository(db),
			Requests:   postgres.NewRequestRepository(db),
			Shops:      postgres.NewShopRepository(db),
			Deliveries: postgres.NewDeliveryRepository(db),
			Payments:   postgres.NewPaymentRepository(db),
			Complaints: postgres.NewComplaintRepository(db),
			Tickets:    postgres.NewTicketRepository(db),
			TxManager:  postgres.NewTransactionManager(db),
		}, nil
	default:
		return repositories{}, errors.Errorf("unknown store driver: %s", params.Config.Store.Driver)
	}
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			newFirebaseService,
			newQRCodeService,
		),
	)
}

// newFirebaseService creates a Firebase service with dependency injection
func newFirebaseService(ctx context.Context, cfg *config.Config) (service.NotificationService, error) {
	if cfg.Firebase == nil {
		return nil, nil // Firebase is optional
	}

	svc, err := notification.NewFirebaseService(ctx, cfg.Firebase.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firebase service: %w", err)
	}

	return svc, nil
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M", "")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel, cfg.QRCode.BaseURL)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewIdentityService,
			impl.NewRequestService,
			impl.NewShopService,
			impl.NewDeliveryService,
			impl.NewPaymentService,
			impl.NewSupportService,
			impl.NewStatsService,
			impl.NewAdminService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewRequestIDMiddleware,
			middleware.NewLoggerMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewIdentityHandler,
			handler.NewRequestHandler,
			handler.NewDeliveryHandler,
			handler.NewShopHandler,
			handler.NewPaymentHandler,
			handler.NewSupportHandler,
			handler.NewAdminHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func seedShops(ctx context.Context, cfg *config.Config, shopUC usecase.ShopUsecase) error {
	if cfg.Seed == nil || !cfg.Seed.Shops {
		return nil
	}

	return shopUC.EnsureDefaultShops(ctx)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
