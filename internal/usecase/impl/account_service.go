package impl

import (
	"context"
	"log/slog"

	"freshfarm/internal/domain/entity"
	domainerrors "freshfarm/internal/domain/errors"
	"freshfarm/internal/domain/repository"
	"freshfarm/internal/domain/service"
	"freshfarm/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	logger    *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	logger *slog.Logger,
) usecase.AccountUsecase {
	return &accountService{
		txManager: txManager,
		hasher:    hasher,
		logger:    logger,
	}
}

// GetProfile retrieves the complete user profile including role-specific data.
func (srv *accountService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	srv.logger.Debug("Getting user profile", "userID", userID)

	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.UserRepo().FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "user not found")
			}

			return errors.Wrap(err, "failed to find user")
		}
		user = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user profile")
	}

	return user, nil
}

// UpdateProfile updates the account fields present in the input.
func (srv *accountService) UpdateProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.User, error) {
	srv.logger.Info("Updating profile", "userID", userID)

	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		found, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "user not found")
			}

			return errors.Wrap(err, "failed to find user")
		}

		if input.Username != nil && *input.Username != found.Username {
			taken, err := userRepo.ExistsByUsername(ctx, *input.Username)
			if err != nil {
				return errors.Wrap(err, "failed to check username")
			}
			if taken {
				return errors.Wrap(domainerrors.ErrUsernameTaken, "username already taken")
			}
			found.Username = *input.Username
		}
		if input.Phone != nil {
			found.Phone = *input.Phone
		}
		if input.Address != nil {
			found.Address = *input.Address
		}

		if found.BuyerProfile != nil {
			if input.DeliveryAddress != nil {
				found.BuyerProfile.DeliveryAddress = *input.DeliveryAddress
			}
			if input.PreferredPayment != nil {
				found.BuyerProfile.PreferredPayment = *input.PreferredPayment
			}
		}
		if found.FarmerProfile != nil {
			if input.FarmName != nil {
				found.FarmerProfile.FarmName = *input.FarmName
			}
			if input.Location != nil {
				found.FarmerProfile.Location = *input.Location
			}
			if input.Description != nil {
				found.FarmerProfile.Description = *input.Description
			}
		}

		if err := userRepo.Update(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update user")
		}
		user = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update profile")
	}

	return user, nil
}

// ChangePassword replaces the account password. The current password must
// match and the new one must differ from it.
func (srv *accountService) ChangePassword(ctx context.Context, userID uuid.UUID, input usecase.ChangePasswordInput) error {
	srv.logger.Info("Changing password", "userID", userID)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "user not found")
			}

			return errors.Wrap(err, "failed to find user")
		}

		if !srv.hasher.Check(input.CurrentPassword, user.PasswordHash) {
			return errors.Wrap(domainerrors.ErrPasswordIncorrect, "current password mismatch")
		}
		if input.NewPassword == input.CurrentPassword {
			return errors.Wrap(domainerrors.ErrPasswordUnchanged, "new password equals current")
		}

		hash, err := srv.hasher.Hash(input.NewPassword)
		if err != nil {
			return domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password")
		}
		user.PasswordHash = hash

		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to update user")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to change password")
	}

	return nil
}

// DeleteAccount removes the caller's own account and everything that
// references it.
func (srv *accountService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	srv.logger.Info("Deleting account", "userID", userID)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return srv.cascadeDelete(ctx, repoFactory, userID)
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete account")
	}

	return nil
}

// AdminDeleteUser removes another user's account. Self-deletion through
// the admin path is rejected.
func (srv *accountService) AdminDeleteUser(ctx context.Context, adminID, targetID uuid.UUID) error {
	srv.logger.Info("Admin deleting user", "adminID", adminID, "targetID", targetID)

	if adminID == targetID {
		return errors.Wrap(domainerrors.ErrSelfDeletion, "admin cannot delete own account")
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		admin, err := repoFactory.UserRepo().FindByID(ctx, adminID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "admin not found")
			}

			return errors.Wrap(err, "failed to find admin")
		}
		if admin.Role != entity.RoleAdmin {
			return errors.Wrap(domainerrors.ErrOnlyAdmins, "actor is not an admin")
		}

		return srv.cascadeDelete(ctx, repoFactory, targetID)
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete user")
	}

	return nil
}

// cascadeDelete removes a user and every record referencing it inside the
// caller's transaction. Children go before parents so foreign keys never
// dangle mid-cascade.
func (srv *accountService) cascadeDelete(ctx context.Context, repoFactory repository.RepositoryFactory, userID uuid.UUID) error {
	userRepo := repoFactory.UserRepo()

	user, err := userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "user not found")
		}

		return errors.Wrap(err, "failed to find user")
	}

	switch user.Role {
	case entity.RoleBuyer:
		if err := srv.deleteBuyerRecords(ctx, repoFactory, userID); err != nil {
			return err
		}
	case entity.RoleFarmer:
		if err := srv.deleteFarmerRecords(ctx, repoFactory, userID); err != nil {
			return err
		}
	case entity.RoleAdmin:
		// Admins own no commerce records beyond messages.
	}

	if err := repoFactory.MessageRepo().DeleteByUserID(ctx, userID); err != nil {
		return errors.Wrap(err, "failed to delete messages")
	}

	if err := userRepo.Delete(ctx, userID); err != nil {
		return errors.Wrap(err, "failed to delete user")
	}

	return nil
}

// deleteBuyerRecords removes the buyer's cart, orders with their ledger
// records and items, and authored reviews.
func (srv *accountService) deleteBuyerRecords(ctx context.Context, repoFactory repository.RepositoryFactory, buyerID uuid.UUID) error {
	cartRepo := repoFactory.CartRepo()

	cart, err := cartRepo.FindByBuyerID(ctx, buyerID)
	if err != nil && !errors.Is(err, repository.ErrCartNotFound) {
		return errors.Wrap(err, "failed to find cart")
	}
	if cart != nil {
		if err := cartRepo.ClearItems(ctx, cart.ID); err != nil {
			return errors.Wrap(err, "failed to clear cart items")
		}
		if err := cartRepo.Delete(ctx, cart.ID); err != nil {
			return errors.Wrap(err, "failed to delete cart")
		}
	}

	orderRepo := repoFactory.OrderRepo()
	txnRepo := repoFactory.TransactionRepo()

	orders, err := orderRepo.ListByBuyerID(ctx, buyerID)
	if err != nil {
		return errors.Wrap(err, "failed to list orders")
	}
	for _, order := range orders {
		if err := txnRepo.DeleteByOrderID(ctx, order.ID); err != nil {
			return errors.Wrap(err, "failed to delete transaction")
		}
		if err := orderRepo.DeleteItems(ctx, order.ID); err != nil {
			return errors.Wrap(err, "failed to delete order items")
		}
		if err := orderRepo.Delete(ctx, order.ID); err != nil {
			return errors.Wrap(err, "failed to delete order")
		}
	}

	if err := repoFactory.ReviewRepo().DeleteByBuyerID(ctx, buyerID); err != nil {
		return errors.Wrap(err, "failed to delete reviews")
	}

	return nil
}

// deleteFarmerRecords removes the farmer's products together with the
// reviews and cart lines pointing at them. Carts that lose a line get
// their totals recomputed in the same transaction.
func (srv *accountService) deleteFarmerRecords(ctx context.Context, repoFactory repository.RepositoryFactory, farmerID uuid.UUID) error {
	productRepo := repoFactory.ProductRepo()
	cartRepo := repoFactory.CartRepo()
	reviewRepo := repoFactory.ReviewRepo()

	products, err := productRepo.FindByFarmerID(ctx, farmerID)
	if err != nil {
		return errors.Wrap(err, "failed to list products")
	}

	touched := make(map[uuid.UUID]struct{})
	for _, product := range products {
		if err := reviewRepo.DeleteByProductID(ctx, product.ID); err != nil {
			return errors.Wrap(err, "failed to delete product reviews")
		}

		cartIDs, err := cartRepo.RemoveItemsByProductID(ctx, product.ID)
		if err != nil {
			return errors.Wrap(err, "failed to remove cart items")
		}
		for _, cartID := range cartIDs {
			touched[cartID] = struct{}{}
		}

		if err := productRepo.Delete(ctx, product.ID); err != nil {
			return errors.Wrap(err, "failed to delete product")
		}
	}

	for cartID := range touched {
		cart, err := cartRepo.FindByID(ctx, cartID)
		if err != nil {
			return errors.Wrap(err, "failed to reload cart")
		}
		cart.RecalculateTotal()
		if err := cartRepo.UpdateTotal(ctx, cartID, cart.TotalAmount); err != nil {
			return errors.Wrap(err, "failed to update cart total")
		}
	}

	return nil
}
