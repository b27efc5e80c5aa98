package postgres

import (
	"context"

	"freshfarm/internal/domain/entity"
	domainerrors "freshfarm/internal/domain/errors"
	"freshfarm/internal/domain/repository"
	"freshfarm/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// cartRepository implements the domain's CartRepository interface using GORM.
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{db: db}
}

// Create persists a new, empty cart.
func (repo *cartRepository) Create(ctx context.Context, cart *entity.Cart) error {
	cartM := fromCartDomain(cart)

	if err := repo.db.WithContext(ctx).Create(cartM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("buyer already has a cart")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create cart")
	}

	cart.ID = cartM.ID
	cart.CreatedAt = cartM.CreatedAt

	return nil
}

// FindByBuyerID retrieves the buyer's cart with its items.
func (repo *cartRepository) FindByBuyerID(ctx context.Context, buyerID uuid.UUID) (*entity.Cart, error) {
	return repo.findOne(ctx, "buyer_id = ?", buyerID)
}

// FindByID retrieves a cart by its own ID with its items.
func (repo *cartRepository) FindByID(ctx context.Context, cartID uuid.UUID) (*entity.Cart, error) {
	return repo.findOne(ctx, "id = ?", cartID)
}

func (repo *cartRepository) findOne(ctx context.Context, query string, arg any) (*entity.Cart, error) {
	var cartM model.CartModel
	err := repo.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.created_at")
		}).
		Where(query, arg).
		First(&cartM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCartNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart")
	}

	return toCartDomain(&cartM), nil
}

// AddItem persists a new cart line.
func (repo *cartRepository) AddItem(ctx context.Context, item *entity.CartItem) error {
	itemM := fromCartItemDomain(item)

	if err := repo.db.WithContext(ctx).Create(itemM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to add cart item")
	}

	item.ID = itemM.ID

	return nil
}

// UpdateItem persists changes to a cart line.
func (repo *cartRepository) UpdateItem(ctx context.Context, item *entity.CartItem) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CartItemModel{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"quantity": item.Quantity,
			"subtotal": item.Subtotal,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update cart item")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCartItemNotFound
	}

	return nil
}

// RemoveItem deletes a cart line.
func (repo *cartRepository) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", itemID).Delete(&model.CartItemModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to remove cart item")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCartItemNotFound
	}

	return nil
}

// RemoveItemsByProductID deletes every cart line referencing the product
// and returns the IDs of the carts that were touched.
func (repo *cartRepository) RemoveItemsByProductID(ctx context.Context, productID uuid.UUID) ([]uuid.UUID, error) {
	var cartIDs []uuid.UUID
	err := repo.db.WithContext(ctx).
		Model(&model.CartItemModel{}).
		Where("product_id = ?", productID).
		Distinct().
		Pluck("cart_id", &cartIDs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find carts referencing product")
	}

	if len(cartIDs) == 0 {
		return nil, nil
	}

	err = repo.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&model.CartItemModel{}).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to remove cart items by product")
	}

	return cartIDs, nil
}

// ClearItems deletes all lines of a cart.
func (repo *cartRepository) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&model.CartItemModel{}).Error
	if err != nil {
		return errors.Wrap(err, "failed to clear cart items")
	}

	return nil
}

// UpdateTotal persists a recomputed cart total.
func (repo *cartRepository) UpdateTotal(ctx context.Context, cartID uuid.UUID, total float64) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CartModel{}).
		Where("id = ?", cartID).
		Update("total_amount", total)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update cart total")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCartNotFound
	}

	return nil
}

// Delete removes the cart row. Items must be cleared first.
func (repo *cartRepository) Delete(ctx context.Context, cartID uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", cartID).Delete(&model.CartModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete cart")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCartNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toCartDomain(data *model.CartModel) *entity.Cart {
	if data == nil {
		return nil
	}

	items := make([]*entity.CartItem, 0, len(data.Items))
	for _, itemM := range data.Items {
		items = append(items, toCartItemDomain(itemM))
	}

	return &entity.Cart{
		ID:          data.ID,
		BuyerID:     data.BuyerID,
		TotalAmount: data.TotalAmount,
		CreatedAt:   data.CreatedAt,
		Items:       items,
	}
}

func fromCartDomain(data *entity.Cart) *model.CartModel {
	if data == nil {
		return nil
	}

	return &model.CartModel{
		ID:          data.ID,
		BuyerID:     data.BuyerID,
		TotalAmount: data.TotalAmount,
	}
}

func toCartItemDomain(data *model.CartItemModel) *entity.CartItem {
	if data == nil {
		return nil
	}

	return &entity.CartItem{
		ID:        data.ID,
		CartID:    data.CartID,
		ProductID: data.ProductID,
		Quantity:  data.Quantity,
		Subtotal:  data.Subtotal,
	}
}

func fromCartItemDomain(data *entity.CartItem) *model.CartItemModel {
	if data == nil {
		return nil
	}

	return &model.CartItemModel{
		ID:        data.ID,
		CartID:    data.CartID,
		ProductID: data.ProductID,
		Quantity:  data.Quantity,
		Subtotal:  data.Subtotal,
	}
}
