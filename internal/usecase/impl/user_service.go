// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	"piquant/internal/domain/entity"
	domainerrors "piquant/internal/domain/errors"
	"piquant/internal/domain/repository"
	"piquant/internal/domain/service"
	"piquant/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// Signup registers a new account with a salted password hash.
func (srv *userService) Signup(ctx context.Context, input *usecase.SignupInput) error {
	srv.logger.Info("Starting signup", slog.String("email", input.Email))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.logger.Error("Failed to hash password during signup", slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	newUser := &entity.User{
		Email:        input.Email,
		PasswordHash: hashedPassword,
	}

	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return errors.WithStack(domainerrors.ErrUserAlreadyExists)
		}

		return errors.Wrap(err, "failed to create user during signup")
	}

	srv.logger.Debug("Signup completed", slog.Any("userID", newUser.ID))

	return nil
}

// Login verifies the credentials and issues a bearer token. Both an unknown
// email and a wrong password collapse into the same invalid-credentials
// error so nothing about the account's existence leaks out.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
		}

		return nil, errors.Wrap(err, "failed to find user during login")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.logger.Warn("Password mismatch during login", slog.String("email", input.Email))

		return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
	}

	token, err := srv.tokenService.Issue(user.ID)
	if err != nil {
		srv.logger.Error("Failed to issue token during login", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue token during login")
	}

	srv.logger.Debug("Login completed", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{
		UserID: user.ID,
		Token:  token,
	}, nil
}
