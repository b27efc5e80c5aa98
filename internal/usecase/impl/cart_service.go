package impl

import (
	"context"
	"log/slog"
	"time"

	"freshfarm/internal/domain/entity"
	domainerrors "freshfarm/internal/domain/errors"
	"freshfarm/internal/domain/repository"
	"freshfarm/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// cartService implements the CartUsecase interface.
type cartService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.CartUsecase {
	return &cartService{
		txManager: txManager,
		logger:    logger,
	}
}

// GetCart returns the buyer's cart, creating an empty one on first access.
func (srv *cartService) GetCart(ctx context.Context, buyerID uuid.UUID) (*entity.Cart, error) {
	srv.logger.Debug("Getting cart", "buyerID", buyerID)

	var cart *entity.Cart

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := requireBuyer(ctx, repoFactory, buyerID); err != nil {
			return err
		}

		found, err := srv.getOrCreateCart(ctx, repoFactory, buyerID)
		if err != nil {
			return err
		}
		cart = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get cart")
	}

	return cart, nil
}

// AddItem adds a product to the cart or increments the existing line.
// Subtotals use the product's current price; nothing is snapshotted here.
func (srv *cartService) AddItem(ctx context.Context, buyerID, productID uuid.UUID, quantity int) (*entity.Cart, error) {
	srv.logger.Info("Adding cart item", "buyerID", buyerID, "productID", productID, "quantity", quantity)

	if quantity < 1 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "quantity must be positive")
	}

	var cart *entity.Cart

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := requireBuyer(ctx, repoFactory, buyerID); err != nil {
			return err
		}

		product, err := repoFactory.ProductRepo().FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
			}

			return errors.Wrap(err, "failed to find product")
		}
		if !product.Available {
			return errors.Wrap(domainerrors.ErrProductUnavailable, "product not available")
		}

		found, err := srv.getOrCreateCart(ctx, repoFactory, buyerID)
		if err != nil {
			return err
		}

		cartRepo := repoFactory.CartRepo()

		if line := found.FindItemByProduct(productID); line != nil {
			line.Quantity += quantity
			line.Subtotal = float64(line.Quantity) * product.Price
			if err := cartRepo.UpdateItem(ctx, line); err != nil {
				return errors.Wrap(err, "failed to update cart item")
			}
		} else {
			item := &entity.CartItem{
				ID:        uuid.New(),
				CartID:    found.ID,
				ProductID: productID,
				Quantity:  quantity,
				Subtotal:  float64(quantity) * product.Price,
			}
			if err := cartRepo.AddItem(ctx, item); err != nil {
				return errors.Wrap(err, "failed to add cart item")
			}
			found.Items = append(found.Items, item)
		}

		if err := srv.persistTotal(ctx, cartRepo, found); err != nil {
			return err
		}
		cart = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to add cart item")
	}

	return cart, nil
}

// SetItemQuantity replaces a line's quantity. Zero or negative removes the line.
func (srv *cartService) SetItemQuantity(ctx context.Context, buyerID, itemID uuid.UUID, quantity int) (*entity.Cart, error) {
	srv.logger.Info("Setting cart item quantity", "buyerID", buyerID, "itemID", itemID, "quantity", quantity)

	var cart *entity.Cart

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := requireBuyer(ctx, repoFactory, buyerID); err != nil {
			return err
		}

		found, err := srv.getOrCreateCart(ctx, repoFactory, buyerID)
		if err != nil {
			return err
		}

		line := found.FindItem(itemID)
		if line == nil {
			return errors.Wrap(domainerrors.ErrCartItemNotFound, "cart item not found")
		}

		cartRepo := repoFactory.CartRepo()

		if quantity <= 0 {
			if err := cartRepo.RemoveItem(ctx, line.ID); err != nil {
				return errors.Wrap(err, "failed to remove cart item")
			}
			found.RemoveItem(line.ID)
		} else {
			product, err := repoFactory.ProductRepo().FindByID(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, repository.ErrProductNotFound) {
					return errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
				}

				return errors.Wrap(err, "failed to find product")
			}

			line.Quantity = quantity
			line.Subtotal = float64(quantity) * product.Price
			if err := cartRepo.UpdateItem(ctx, line); err != nil {
				return errors.Wrap(err, "failed to update cart item")
			}
		}

		if err := srv.persistTotal(ctx, cartRepo, found); err != nil {
			return err
		}
		cart = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to set cart item quantity")
	}

	return cart, nil
}

// RemoveItem deletes a line from the cart.
func (srv *cartService) RemoveItem(ctx context.Context, buyerID, itemID uuid.UUID) (*entity.Cart, error) {
	return srv.SetItemQuantity(ctx, buyerID, itemID, 0)
}

// ClearCart removes every line.
func (srv *cartService) ClearCart(ctx context.Context, buyerID uuid.UUID) (*entity.Cart, error) {
	srv.logger.Info("Clearing cart", "buyerID", buyerID)

	var cart *entity.Cart

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := requireBuyer(ctx, repoFactory, buyerID); err != nil {
			return err
		}

		found, err := srv.getOrCreateCart(ctx, repoFactory, buyerID)
		if err != nil {
			return err
		}

		cartRepo := repoFactory.CartRepo()

		if err := cartRepo.ClearItems(ctx, found.ID); err != nil {
			return errors.Wrap(err, "failed to clear cart items")
		}
		found.Items = nil

		if err := srv.persistTotal(ctx, cartRepo, found); err != nil {
			return err
		}
		cart = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to clear cart")
	}

	return cart, nil
}

// getOrCreateCart loads the buyer's cart, creating an empty one if the
// buyer has none yet.
func (srv *cartService) getOrCreateCart(ctx context.Context, repoFactory repository.RepositoryFactory, buyerID uuid.UUID) (*entity.Cart, error) {
	cartRepo := repoFactory.CartRepo()

	cart, err := cartRepo.FindByBuyerID(ctx, buyerID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, repository.ErrCartNotFound) {
		return nil, errors.Wrap(err, "failed to find cart")
	}

	cart = &entity.Cart{
		ID:        uuid.New(),
		BuyerID:   buyerID,
		CreatedAt: time.Now(),
	}
	if err := cartRepo.Create(ctx, cart); err != nil {
		return nil, errors.Wrap(err, "failed to create cart")
	}

	return cart, nil
}

// persistTotal recomputes the cart total from its lines and stores it.
func (srv *cartService) persistTotal(ctx context.Context, cartRepo repository.CartRepository, cart *entity.Cart) error {
	cart.RecalculateTotal()
	if err := cartRepo.UpdateTotal(ctx, cart.ID, cart.TotalAmount); err != nil {
		return errors.Wrap(err, "failed to update cart total")
	}

	return nil
}

// requireBuyer verifies the actor exists and holds the BUYER role. Role
// violations are business-rule errors, not not-found.
func requireBuyer(ctx context.Context, repoFactory repository.RepositoryFactory, userID uuid.UUID) error {
	user, err := repoFactory.UserRepo().FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "user not found")
		}

		return errors.Wrap(err, "failed to find user")
	}
	if user.Role != entity.RoleBuyer {
		return errors.Wrap(domainerrors.ErrOnlyBuyers, "actor is not a buyer")
	}

	return nil
}
