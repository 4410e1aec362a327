// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"

	"medcare/config"
	deliverycontext "medcare/internal/delivery/context"
	"medcare/internal/domain/entity"
	domainerrors "medcare/internal/domain/errors"
	"medcare/internal/domain/repository"
	"medcare/internal/domain/service"
	"medcare/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// defaultPasswordMinLength applies when no minimum is configured.
const defaultPasswordMinLength = 6

// authService implements the AuthUsecase interface.
type authService struct {
	txManager         repository.TransactionManager
	userRepo          repository.UserRepository
	hasher            service.PasswordHasher
	tokenService      service.TokenService
	passwordMinLength int
	logger            *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	passwordMinLength := defaultPasswordMinLength
	if params.Config != nil && params.Config.Auth != nil && params.Config.Auth.PasswordMinLength > 0 {
		passwordMinLength = params.Config.Auth.PasswordMinLength
	}

	return &authService{
		txManager:         params.TxManager,
		userRepo:          params.UserRepo,
		hasher:            params.Hasher,
		tokenService:      params.TokenService,
		passwordMinLength: passwordMinLength,
		logger:            params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new account with the requested role and an empty
// profile matching that role, then issues its first token pair. The email
// must not be registered yet.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	role := entity.Role(input.Role)
	if !role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("role must be patient or doctor")
	}

	if len(input.Password) < srv.passwordMinLength {
		return nil, domainerrors.ErrValidationFailed.WrapMessage(
			fmt.Sprintf("password must be at least %d characters", srv.passwordMinLength))
	}

	srv.log(ctx).Info("Starting registration", slog.Any("role", role), slog.String("email", input.Email))

	// Hashing is CPU-bound, keep it outside the transaction.
	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password")
	}

	var registeredUser *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		_, err := userRepo.FindByEmail(ctx, input.Email)
		if err == nil {
			return domainerrors.ErrDuplicateIdentity.WrapMessage("email already registered")
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check email uniqueness")
		}

		user := buildNewUser(input.Name, input.Email, passwordHash, role)
		if err := userRepo.Create(ctx, user); err != nil {
			return errors.Wrap(err, "failed to create user")
		}

		registeredUser = user

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute registration transaction",
			slog.Any("role", role), slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	accessToken, err := srv.tokenService.IssueAccess(registeredUser.ID, registeredUser.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	refreshToken, err := srv.tokenService.IssueRefresh(registeredUser.ID, registeredUser.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue refresh token")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("role", role), slog.Any("userID", registeredUser.ID))

	return &usecase.RegisterOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         registeredUser,
	}, nil
}

// Login verifies the email/password pair and issues a fresh token pair.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Info("Starting login", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredential.WrapMessage("invalid email or password")
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredential.WrapMessage("invalid email or password")
	}

	accessToken, err := srv.tokenService.IssueAccess(user.ID, user.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	refreshToken, err := srv.tokenService.IssueRefresh(user.ID, user.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue refresh token")
	}

	srv.log(ctx).Debug("Login completed", slog.Any("userID", user.ID), slog.Any("role", user.Role))

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// Refresh mints a new access token from a valid refresh token. The refresh
// token itself stays valid until its own expiry.
func (srv *authService) Refresh(ctx context.Context, input *usecase.RefreshInput) (*usecase.RefreshOutput, error) {
	accessToken, err := srv.tokenService.Refresh(input.RefreshToken)
	if err != nil {
		return nil, errors.Wrap(err, "failed to refresh access token")
	}

	srv.log(ctx).Debug("Access token refreshed")

	return &usecase.RefreshOutput{AccessToken: accessToken}, nil
}

// GetMe returns the authenticated user's account with their profile loaded.
func (srv *authService) GetMe(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("user not found")
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return user, nil
}

// --- Helper Functions ---

// buildNewUser assembles a user entity with an empty profile matching the role.
func buildNewUser(name, email, passwordHash string, role entity.Role) *entity.User {
	user := &entity.User{
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         role,
	}

	switch role {
	case entity.RolePatient:
		user.PatientProfile = &entity.PatientProfile{}
	case entity.RoleDoctor:
		user.DoctorProfile = &entity.DoctorProfile{}
	}

	return user
}
