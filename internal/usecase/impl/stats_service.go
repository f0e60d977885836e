package impl

import (
	"context"
	"log/slog"

	"servease/internal/domain/entity"
	"servease/internal/domain/repository"
	"servease/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// statsService implements the StatsUsecase interface.
type statsService struct {
	userRepo    repository.UserRepository
	requestRepo repository.RequestRepository
	paymentRepo repository.PaymentRepository
	logger      *slog.Logger
}

// StatsServiceParams holds dependencies for StatsService, injected by Fx.
type StatsServiceParams struct {
	fx.In

	UserRepo    repository.UserRepository
	RequestRepo repository.RequestRepository
	PaymentRepo repository.PaymentRepository
	Logger      *slog.Logger
}

// NewStatsService is the constructor for statsService.
func NewStatsService(params StatsServiceParams) usecase.StatsUsecase {
	return &statsService{
		userRepo:    params.UserRepo,
		requestRepo: params.RequestRepo,
		paymentRepo: params.PaymentRepo,
		logger:      params.Logger,
	}
}

// PlatformStats recomputes the platform counters from full collection
// snapshots. The derivation is idempotent and independent of record order.
func (srv *statsService) PlatformStats(ctx context.Context) (*entity.PlatformStats, error) {
	users, err := srv.userRepo.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	requests, err := srv.requestRepo.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list requests")
	}

	payments, err := srv.paymentRepo.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list payments")
	}

	stats := entity.ComputePlatformStats(users, requests, payments)

	return &stats, nil
}
