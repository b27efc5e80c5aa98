package postgres

import (
	"context"
	"time"

	"freshfarm/internal/domain/entity"
	domainerrors "freshfarm/internal/domain/errors"
	"freshfarm/internal/domain/repository"
	"freshfarm/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderRepository implements the domain's OrderRepository interface using GORM.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// Create persists a new order together with its items.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("unknown buyer or product reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	for i, itemM := range orderM.Items {
		order.Items[i].ID = itemM.ID
		order.Items[i].OrderID = orderM.ID
	}

	return nil
}

// FindByID retrieves an order with its items.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&orderM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM), nil
}

// ListByBuyerID returns the buyer's orders, newest first, with items.
func (repo *orderRepository) ListByBuyerID(ctx context.Context, buyerID uuid.UUID) ([]*entity.Order, error) {
	var models []*model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("buyer_id = ?", buyerID).
		Order("order_date DESC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list buyer orders")
	}

	return toOrderDomainList(models), nil
}

// ListByFarmerID returns orders containing at least one item for a
// product posted by the given farmer, with items.
func (repo *orderRepository) ListByFarmerID(ctx context.Context, farmerID uuid.UUID) ([]*entity.Order, error) {
	var models []*model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("id IN (?)", repo.db.
			Model(&model.OrderItemModel{}).
			Select("order_items.order_id").
			Joins("JOIN products ON products.id = order_items.product_id").
			Where("products.farmer_id = ?", farmerID),
		).
		Order("order_date DESC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list farmer orders")
	}

	return toOrderDomainList(models), nil
}

// List returns all orders, newest first, with items.
func (repo *orderRepository) List(ctx context.Context) ([]*entity.Order, error) {
	var models []*model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("Items").
		Order("order_date DESC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return toOrderDomainList(models), nil
}

// UpdateStatus persists a status change and, when deliveryDate is
// non-nil, the delivery timestamp.
func (repo *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus, deliveryDate *time.Time) error {
	updates := map[string]any{"status": string(status)}
	if deliveryDate != nil {
		updates["delivery_date"] = *deliveryDate
	}

	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update order status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// Update persists changes to the order row.
func (repo *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)
	orderM.Items = nil // item lines are frozen; only the order row is written

	if err := repo.db.WithContext(ctx).Save(orderM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update order")
	}

	return nil
}

// DeleteItems removes all line items of an order.
func (repo *orderRepository) DeleteItems(ctx context.Context, orderID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&model.OrderItemModel{}).Error
	if err != nil {
		return errors.Wrap(err, "failed to delete order items")
	}

	return nil
}

// Delete removes the order row. Items must be deleted first.
func (repo *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.OrderModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete order")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	items := make([]*entity.OrderItem, 0, len(data.Items))
	for _, itemM := range data.Items {
		items = append(items, &entity.OrderItem{
			ID:           itemM.ID,
			OrderID:      itemM.OrderID,
			ProductID:    itemM.ProductID,
			Quantity:     itemM.Quantity,
			PriceAtOrder: itemM.PriceAtOrder,
			Subtotal:     itemM.Subtotal,
		})
	}

	return &entity.Order{
		ID:              data.ID,
		BuyerID:         data.BuyerID,
		OrderDate:       data.OrderDate,
		DeliveryMethod:  data.DeliveryMethod,
		DeliveryAddress: data.DeliveryAddress,
		DeliveryNotes:   data.DeliveryNotes,
		TotalAmount:     data.TotalAmount,
		Status:          entity.OrderStatus(data.Status),
		DeliveryDate:    data.DeliveryDate,
		Items:           items,
	}
}

func toOrderDomainList(models []*model.OrderModel) []*entity.Order {
	orders := make([]*entity.Order, 0, len(models))
	for _, orderM := range models {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders
}

func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	items := make([]*model.OrderItemModel, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, &model.OrderItemModel{
			ID:           item.ID,
			OrderID:      item.OrderID,
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			PriceAtOrder: item.PriceAtOrder,
			Subtotal:     item.Subtotal,
		})
	}

	return &model.OrderModel{
		ID:              data.ID,
		BuyerID:         data.BuyerID,
		OrderDate:       data.OrderDate,
		DeliveryMethod:  data.DeliveryMethod,
		DeliveryAddress: data.DeliveryAddress,
		DeliveryNotes:   data.DeliveryNotes,
		TotalAmount:     data.TotalAmount,
		Status:          string(data.Status),
		DeliveryDate:    data.DeliveryDate,
		Items:           items,
	}
}
