package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "freshfarm/internal/delivery/context"
	"freshfarm/internal/domain/entity"
	domainerrors "freshfarm/internal/domain/errors"
	"freshfarm/internal/domain/repository"
	"freshfarm/internal/domain/service"
	"freshfarm/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// DeliveryMethodPickup marks orders collected in person; only these get
// pickup QR codes.
const DeliveryMethodPickup = "PICKUP"

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager repository.TransactionManager
	events    service.EventPublisher
	qrcodes   service.QRCodeService
	logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(
	txManager repository.TransactionManager,
	events service.EventPublisher,
	qrcodes service.QRCodeService,
	logger *slog.Logger,
) usecase.OrderUsecase {
	return &orderService{
		txManager: txManager,
		events:    events,
		qrcodes:   qrcodes,
		logger:    logger,
	}
}

// PlaceOrder reserves stock for every line, freezes current prices into
// order items, and creates the order with its ledger record in a single
// transaction. Any failure rolls the whole placement back.
func (srv *orderService) PlaceOrder(ctx context.Context, buyerID uuid.UUID, input usecase.PlaceOrderInput) (*entity.Order, error) {
	srv.logger.Info("Placing order", "buyerID", buyerID, "lines", len(input.Items))

	if len(input.Items) == 0 {
		return nil, errors.Wrap(domainerrors.ErrEmptyOrder, "no order lines")
	}
	for _, line := range input.Items {
		if line.Quantity < 1 {
			return nil, errors.Wrap(domainerrors.ErrValidationFailed, "line quantity must be positive")
		}
	}

	var order *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		user, err := repoFactory.UserRepo().FindByID(ctx, buyerID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "buyer not found")
			}

			return errors.Wrap(err, "failed to find buyer")
		}
		if user.Role != entity.RoleBuyer {
			return errors.Wrap(domainerrors.ErrOnlyBuyers, "actor is not a buyer")
		}

		deliveryAddress := input.DeliveryAddress
		if deliveryAddress == "" && user.BuyerProfile != nil {
			deliveryAddress = user.BuyerProfile.DeliveryAddress
		}

		productRepo := repoFactory.ProductRepo()
		orderID := uuid.New()

		var (
			items []*entity.OrderItem
			total float64
		)
		for _, line := range input.Items {
			product, err := productRepo.FindByID(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, repository.ErrProductNotFound) {
					return errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
				}

				return errors.Wrap(err, "failed to find product")
			}

			// The decrement is conditional at the storage layer, so two
			// concurrent placements cannot both take the last units.
			applied, err := productRepo.DecrementStock(ctx, product.ID, line.Quantity)
			if err != nil {
				return errors.Wrap(err, "failed to decrement stock")
			}
			if !applied {
				return domainerrors.ErrInsufficientStock.
					WithDetails("insufficient stock for product: " + product.Name).
					WrapMessage("stock reservation failed")
			}

			subtotal := float64(line.Quantity) * product.Price
			items = append(items, &entity.OrderItem{
				ID:           uuid.New(),
				OrderID:      orderID,
				ProductID:    product.ID,
				Quantity:     line.Quantity,
				PriceAtOrder: product.Price,
				Subtotal:     subtotal,
			})
			total += subtotal
		}

		order = &entity.Order{
			ID:              orderID,
			BuyerID:         buyerID,
			OrderDate:       time.Now(),
			DeliveryMethod:  input.DeliveryMethod,
			DeliveryAddress: deliveryAddress,
			DeliveryNotes:   input.DeliveryNotes,
			TotalAmount:     total,
			Status:          entity.OrderPending,
			Items:           items,
		}
		if err := repoFactory.OrderRepo().Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create order")
		}

		txn := &entity.Transaction{
			ID:            uuid.New(),
			OrderID:       orderID,
			Amount:        total,
			PaymentMethod: input.PaymentMethod,
			Status:        entity.TransactionProcessing,
			CreatedAt:     time.Now(),
		}
		if err := repoFactory.TransactionRepo().Create(ctx, txn); err != nil {
			return errors.Wrap(err, "failed to create transaction")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to place order")
	}

	srv.publishEvent(ctx, order, "OrderPlaced")

	return order, nil
}

// CancelOrder cancels a pending order owned by the buyer and restores the
// reserved stock.
func (srv *orderService) CancelOrder(ctx context.Context, buyerID, orderID uuid.UUID) (*entity.Order, error) {
	srv.logger.Info("Cancelling order", "buyerID", buyerID, "orderID", orderID)

	var order *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		found, err := orderRepo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return errors.Wrap(domainerrors.ErrOrderNotFound, "order not found")
			}

			return errors.Wrap(err, "failed to find order")
		}
		if found.BuyerID != buyerID {
			return errors.Wrap(domainerrors.ErrOrderAccessDenied, "order owned by another buyer")
		}
		if found.Status != entity.OrderPending {
			return errors.Wrap(domainerrors.ErrOrderNotCancellable, "order is not pending")
		}

		productRepo := repoFactory.ProductRepo()
		for _, item := range found.Items {
			if err := productRepo.IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				return errors.Wrap(err, "failed to restore stock")
			}
		}

		if err := orderRepo.UpdateStatus(ctx, orderID, entity.OrderCancelled, nil); err != nil {
			return errors.Wrap(err, "failed to update status")
		}
		found.Status = entity.OrderCancelled
		order = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to cancel order")
	}

	srv.publishEvent(ctx, order, "OrderCancelled")

	return order, nil
}

// UpdateStatus moves an order to a new status. Admins may update any
// order; farmers only orders containing at least one of their products.
// Status transitions are not restricted to forward order: support staff
// routinely walk an order back after a mis-click.
func (srv *orderService) UpdateStatus(ctx context.Context, actorID, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error) {
	srv.logger.Info("Updating order status", "actorID", actorID, "orderID", orderID, "status", status)

	if !status.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown order status")
	}

	var order *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return errors.Wrap(domainerrors.ErrOrderNotFound, "order not found")
			}

			return errors.Wrap(err, "failed to find order")
		}

		actor, err := repoFactory.UserRepo().FindByID(ctx, actorID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "actor not found")
			}

			return errors.Wrap(err, "failed to find actor")
		}

		switch actor.Role {
		case entity.RoleAdmin:
		case entity.RoleFarmer:
			owns, err := srv.farmerOwnsLine(ctx, repoFactory, actorID, found)
			if err != nil {
				return err
			}
			if !owns {
				return errors.Wrap(domainerrors.ErrOrderAccessDenied, "no products of this farmer in order")
			}
		default:
			return errors.Wrap(domainerrors.ErrOrderAccessDenied, "buyers cannot update order status")
		}

		var deliveryDate *time.Time
		if status == entity.OrderDelivered {
			now := time.Now()
			deliveryDate = &now
		}

		if err := repoFactory.OrderRepo().UpdateStatus(ctx, orderID, status, deliveryDate); err != nil {
			return errors.Wrap(err, "failed to update status")
		}
		found.Status = status
		found.DeliveryDate = deliveryDate
		order = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update order status")
	}

	srv.publishEvent(ctx, order, "OrderStatusChanged")

	return order, nil
}

// GetOrder returns an order visible to the actor: its buyer, an admin, or
// a farmer with a product in it.
func (srv *orderService) GetOrder(ctx context.Context, actorID, orderID uuid.UUID) (*entity.Order, error) {
	var order *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return errors.Wrap(domainerrors.ErrOrderNotFound, "order not found")
			}

			return errors.Wrap(err, "failed to find order")
		}

		if found.BuyerID != actorID {
			actor, err := repoFactory.UserRepo().FindByID(ctx, actorID)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					return errors.Wrap(domainerrors.ErrUserNotFound, "actor not found")
				}

				return errors.Wrap(err, "failed to find actor")
			}

			switch actor.Role {
			case entity.RoleAdmin:
			case entity.RoleFarmer:
				owns, err := srv.farmerOwnsLine(ctx, repoFactory, actorID, found)
				if err != nil {
					return err
				}
				if !owns {
					return errors.Wrap(domainerrors.ErrOrderAccessDenied, "no products of this farmer in order")
				}
			default:
				return errors.Wrap(domainerrors.ErrOrderAccessDenied, "order owned by another buyer")
			}
		}
		order = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get order")
	}

	return order, nil
}

// ListMyOrders returns the buyer's orders, newest first.
func (srv *orderService) ListMyOrders(ctx context.Context, buyerID uuid.UUID) ([]*entity.Order, error) {
	var orders []*entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.OrderRepo().ListByBuyerID(ctx, buyerID)
		if err != nil {
			return errors.Wrap(err, "failed to list orders")
		}
		orders = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// ListFarmerOrders returns orders containing at least one product posted
// by the farmer.
func (srv *orderService) ListFarmerOrders(ctx context.Context, farmerID uuid.UUID) ([]*entity.Order, error) {
	var orders []*entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.OrderRepo().ListByFarmerID(ctx, farmerID)
		if err != nil {
			return errors.Wrap(err, "failed to list farmer orders")
		}
		orders = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list farmer orders")
	}

	return orders, nil
}

// PickupQR renders the PNG QR code the buyer presents when collecting a
// pickup order.
func (srv *orderService) PickupQR(ctx context.Context, buyerID, orderID uuid.UUID) ([]byte, error) {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return errors.Wrap(domainerrors.ErrOrderNotFound, "order not found")
			}

			return errors.Wrap(err, "failed to find order")
		}
		if found.BuyerID != buyerID {
			return errors.Wrap(domainerrors.ErrOrderAccessDenied, "order owned by another buyer")
		}
		if found.DeliveryMethod != DeliveryMethodPickup {
			return errors.Wrap(domainerrors.ErrValidationFailed, "order is not a pickup order")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load order for QR")
	}

	png, err := srv.qrcodes.GeneratePickupQR(orderID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate QR code")
	}

	return png, nil
}

// farmerOwnsLine reports whether at least one order line references a
// product posted by the farmer.
func (srv *orderService) farmerOwnsLine(ctx context.Context, repoFactory repository.RepositoryFactory, farmerID uuid.UUID, order *entity.Order) (bool, error) {
	products, err := repoFactory.ProductRepo().FindByFarmerID(ctx, farmerID)
	if err != nil {
		return false, errors.Wrap(err, "failed to list farmer products")
	}

	owned := make(map[uuid.UUID]struct{}, len(products))
	for _, product := range products {
		owned[product.ID] = struct{}{}
	}

	return order.ContainsProductOf(owned), nil
}

// publishEvent emits an order lifecycle event. Publishing is best-effort
// and runs after commit; a failed publish never fails the operation.
func (srv *orderService) publishEvent(ctx context.Context, order *entity.Order, eventType string) {
	if srv.events == nil || order == nil {
		return
	}

	event := &service.OrderEvent{
		RequestID:   deliverycontext.GetRequestIDFromContext(ctx),
		Type:        eventType,
		OrderID:     order.ID.String(),
		BuyerID:     order.BuyerID.String(),
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount,
		OccurredAt:  time.Now(),
	}
	if err := srv.events.PublishOrderEvent(ctx, event); err != nil {
		srv.logger.Warn("failed to publish order event", "orderID", order.ID, "error", err)
	}
}
