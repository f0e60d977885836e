// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "servease/internal/delivery/context"
	"servease/internal/domain/entity"
	domainerrors "servease/internal/domain/errors"
	"servease/internal/domain/repository"
	"servease/internal/domain/service"
	"servease/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// identityService implements the IdentityUsecase interface.
type identityService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// IdentityServiceParams holds dependencies for IdentityService, injected by Fx.
type IdentityServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewIdentityService is the constructor for identityService. It receives all dependencies as interfaces.
func NewIdentityService(params IdentityServiceParams) usecase.IdentityUsecase {
	return &identityService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *identityService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup registers a new account under the (email, role) identity pair.
func (srv *identityService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Starting signup", slog.String("email", input.Email), slog.Any("role", input.Role))

	if !input.Role.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown role")
	}

	// Hash outside the transaction (bcrypt is CPU-bound).
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during signup", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password during signup")
	}

	now := time.Now()
	newUser := &entity.User{
		ID:           uuid.New(),
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Phone:        input.Phone,
		City:         input.City,
		Role:         input.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Duplicate check and insert share one transaction so concurrent signups
	// with the same email cannot both succeed.
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		_, findErr := userRepo.FindByEmail(ctx, input.Email)
		if findErr == nil {
			return errors.Wrap(domainerrors.ErrDuplicateIdentity, "email already registered")
		}
		if !errors.Is(findErr, repository.ErrUserNotFound) {
			return errors.Wrap(findErr, "failed to check existing email")
		}

		if createErr := userRepo.Create(ctx, newUser); createErr != nil {
			if errors.Is(createErr, repository.ErrDuplicateIdentity) {
				return errors.Wrap(domainerrors.ErrDuplicateIdentity, "email already registered")
			}

			return errors.Wrap(createErr, "failed to create user during signup")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Signup failed", slog.String("email", input.Email), slog.Any("role", input.Role), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute signup transaction")
	}

	accessToken, err := srv.tokenService.GenerateToken(newUser.ID, newUser.Role.String())
	if err != nil {
		srv.log(ctx).Error("Failed to generate token after signup", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate access token")
	}

	srv.log(ctx).Debug("Signup completed", slog.Any("userID", newUser.ID), slog.Any("role", newUser.Role))

	return &usecase.AuthOutput{AccessToken: accessToken, User: newUser}, nil
}

// Login authenticates the (email, password, role) triple. A valid password
// under a different role is still rejected.
func (srv *identityService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email), slog.Any("role", input.Role))

	user, err := srv.userRepo.FindByEmailAndRole(ctx, input.Email, input.Role)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("role", input.Role))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to find user by email and role")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("role", input.Role))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	accessToken, err := srv.tokenService.GenerateToken(user.ID, user.Role.String())
	if err != nil {
		srv.log(ctx).Error("Failed to generate token during login", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate access token")
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", user.ID))

	return &usecase.AuthOutput{AccessToken: accessToken, User: user}, nil
}

// RegisterDeviceToken binds an FCM device token to the user for push notifications.
func (srv *identityService) RegisterDeviceToken(ctx context.Context, input *usecase.RegisterDeviceTokenInput) error {
	user, err := srv.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "failed to register device token")
		}

		return errors.Wrap(err, "failed to find user by id")
	}

	user.FCMToken = input.FCMToken
	user.UpdatedAt = time.Now()

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to update user device token")
	}

	srv.log(ctx).Debug("Registered device token", slog.Any("userID", user.ID))

	return nil
}

// GetProfile returns the user behind an authenticated session.
func (srv *identityService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "failed to load profile")
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return user, nil
}
