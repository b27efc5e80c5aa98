// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"time"

	"freshfarm/internal/domain/entity"
	domainerrors "freshfarm/internal/domain/errors"
	"freshfarm/internal/domain/repository"
	"freshfarm/internal/domain/service"
	"freshfarm/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	tokens    service.TokenService
	logger    *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	tokens service.TokenService,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		txManager: txManager,
		hasher:    hasher,
		tokens:    tokens,
		logger:    logger,
	}
}

// RegisterBuyer creates a buyer account together with its empty cart.
func (srv *authService) RegisterBuyer(ctx context.Context, input usecase.RegisterBuyerInput) (*usecase.RegisterOutput, error) {
	srv.logger.Info("Registering buyer", "username", input.Username)

	user := &entity.User{
		ID:       uuid.New(),
		Username: input.Username,
		Email:    input.Email,
		Phone:    input.Phone,
		Address:  input.Address,
		Role:     entity.RoleBuyer,
		BuyerProfile: &entity.BuyerProfile{
			DeliveryAddress:  input.DeliveryAddress,
			PreferredPayment: input.PreferredPayment,
		},
	}

	out, err := srv.register(ctx, user, input.Password, func(repoFactory repository.RepositoryFactory) error {
		// Buyers get their cart at registration so cart access never races
		// with cart creation.
		cart := &entity.Cart{
			ID:        uuid.New(),
			BuyerID:   user.ID,
			CreatedAt: time.Now(),
		}
		if err := repoFactory.CartRepo().Create(ctx, cart); err != nil {
			return errors.Wrap(err, "failed to create cart")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to register buyer")
	}

	return out, nil
}

// RegisterFarmer creates a farmer account.
func (srv *authService) RegisterFarmer(ctx context.Context, input usecase.RegisterFarmerInput) (*usecase.RegisterOutput, error) {
	srv.logger.Info("Registering farmer", "username", input.Username)

	user := &entity.User{
		ID:       uuid.New(),
		Username: input.Username,
		Email:    input.Email,
		Phone:    input.Phone,
		Address:  input.Address,
		Role:     entity.RoleFarmer,
		FarmerProfile: &entity.FarmerProfile{
			FarmName:    input.FarmName,
			Location:    input.Location,
			Description: input.Description,
		},
	}

	out, err := srv.register(ctx, user, input.Password, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to register farmer")
	}

	return out, nil
}

// RegisterAdmin creates an admin account.
func (srv *authService) RegisterAdmin(ctx context.Context, input usecase.RegisterAdminInput) (*usecase.RegisterOutput, error) {
	srv.logger.Info("Registering admin", "username", input.Username)

	user := &entity.User{
		ID:       uuid.New(),
		Username: input.Username,
		Email:    input.Email,
		Phone:    input.Phone,
		Role:     entity.RoleAdmin,
		AdminProfile: &entity.AdminProfile{
			AdminRole: input.AdminRole,
		},
	}

	out, err := srv.register(ctx, user, input.Password, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to register admin")
	}

	return out, nil
}

// register performs the role-independent part of registration: uniqueness
// checks, password hashing, persisting the user, then the optional
// role-specific extra step, all in one transaction.
func (srv *authService) register(
	ctx context.Context,
	user *entity.User,
	password string,
	extra func(repository.RepositoryFactory) error,
) (*usecase.RegisterOutput, error) {
	hash, err := srv.hasher.Hash(password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password")
	}
	user.PasswordHash = hash
	user.Active = true
	user.RegisteredAt = time.Now()

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		taken, err := userRepo.ExistsByUsername(ctx, user.Username)
		if err != nil {
			return errors.Wrap(err, "failed to check username")
		}
		if taken {
			return errors.Wrap(domainerrors.ErrUsernameTaken, "username already taken")
		}

		registered, err := userRepo.ExistsByEmail(ctx, user.Email)
		if err != nil {
			return errors.Wrap(err, "failed to check email")
		}
		if registered {
			return errors.Wrap(domainerrors.ErrEmailRegistered, "email already registered")
		}

		if err := userRepo.Create(ctx, user); err != nil {
			return errors.Wrap(err, "failed to create user")
		}

		if extra != nil {
			return extra(repoFactory)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := srv.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token")
	}

	return &usecase.RegisterOutput{User: user, Token: token}, nil
}

// Login verifies credentials and issues a token.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.logger.Debug("Logging in", "username", input.Username)

	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.UserRepo().FindByUsername(ctx, input.Username)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrInvalidCredentials, "unknown username")
			}

			return errors.Wrap(err, "failed to find user")
		}
		user = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to log in")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "password mismatch")
	}

	if !user.Active {
		return nil, errors.Wrap(domainerrors.ErrAccountDisabled, "account deactivated")
	}

	token, err := srv.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token")
	}

	return &usecase.LoginOutput{Token: token, User: user}, nil
}
