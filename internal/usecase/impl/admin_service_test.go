package impl

import (
	"context"
	"testing"
	"time"

	"freshfarm/internal/domain/entity"
	domainerrors "freshfarm/internal/domain/errors"
	"freshfarm/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// adminServiceFixtures holds all test dependencies for admin service tests.
type adminServiceFixtures struct {
	service usecase.AdminUsecase
	store   *memStore
}

func createTestAdminService(t *testing.T) adminServiceFixtures {
	t.Helper()

	store := newMemStore()
	service := NewAdminService(newMemTxManager(store), testLogger())

	return adminServiceFixtures{service: service, store: store}
}

func TestAdminService_ListUsers_FilterByRole(t *testing.T) {
	fx := createTestAdminService(t)
	ctx := context.Background()

	admin := seedAdmin(fx.store)
	seedBuyer(fx.store)
	seedBuyer(fx.store)
	seedFarmer(fx.store)

	all, err := fx.service.ListUsers(ctx, admin.ID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	buyers := entity.RoleBuyer
	onlyBuyers, err := fx.service.ListUsers(ctx, admin.ID, &buyers)
	require.NoError(t, err)
	assert.Len(t, onlyBuyers, 2)
}

func TestAdminService_ListUsers_RequiresAdmin(t *testing.T) {
	fx := createTestAdminService(t)
	ctx := context.Background()

	buyer := seedBuyer(fx.store)

	_, err := fx.service.ListUsers(ctx, buyer.ID, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrOnlyAdmins)
}

func TestAdminService_DeactivateUser_Persisted(t *testing.T) {
	fx := createTestAdminService(t)
	ctx := context.Background()

	admin := seedAdmin(fx.store)
	buyer := seedBuyer(fx.store)
	require.True(t, fx.store.users[buyer.ID].Active)

	err := fx.service.DeactivateUser(ctx, admin.ID, buyer.ID)

	require.NoError(t, err)
	assert.False(t, fx.store.users[buyer.ID].Active)

	require.NoError(t, fx.service.ReactivateUser(ctx, admin.ID, buyer.ID))
	assert.True(t, fx.store.users[buyer.ID].Active)
}

func TestAdminService_DeactivateUser_UnknownTarget(t *testing.T) {
	fx := createTestAdminService(t)
	ctx := context.Background()

	admin := seedAdmin(fx.store)

	err := fx.service.DeactivateUser(ctx, admin.ID, uuid.New())

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestAdminService_ListAllTransactions(t *testing.T) {
	fx := createTestAdminService(t)
	ctx := context.Background()

	admin := seedAdmin(fx.store)
	for i := 0; i < 3; i++ {
		txn := &entity.Transaction{
			ID:        uuid.New(),
			OrderID:   uuid.New(),
			Amount:    float64(i + 1),
			Status:    entity.TransactionProcessing,
			CreatedAt: time.Now().Add(time.Duration(i) * time.Minute),
		}
		fx.store.txns[txn.ID] = txn
	}

	txns, err := fx.service.ListAllTransactions(ctx, admin.ID)

	require.NoError(t, err)
	require.Len(t, txns, 3)
	// Newest first.
	assert.InDelta(t, 3.0, txns[0].Amount, 1e-9)
}

func TestAdminService_GenerateReport(t *testing.T) {
	fx := createTestAdminService(t)
	ctx := context.Background()

	admin := seedAdmin(fx.store)
	buyer := seedBuyer(fx.store)
	farmer := seedFarmer(fx.store)
	tomatoes := seedProduct(fx.store, farmer.ID, 2.50, 10)
	eggs := seedProduct(fx.store, farmer.ID, 4.00, 30)
	eggs.Category = "Dairy"

	place := func(product *entity.Product, qty int, status entity.OrderStatus, age time.Duration) {
		orderID := uuid.New()
		subtotal := float64(qty) * product.Price
		fx.store.orders[orderID] = &entity.Order{
			ID:          orderID,
			BuyerID:     buyer.ID,
			OrderDate:   time.Now().Add(-age),
			TotalAmount: subtotal,
			Status:      status,
			Items: []*entity.OrderItem{{
				ID: uuid.New(), OrderID: orderID, ProductID: product.ID,
				Quantity: qty, PriceAtOrder: product.Price, Subtotal: subtotal,
			}},
		}
	}

	place(tomatoes, 4, entity.OrderDelivered, time.Hour)
	place(eggs, 2, entity.OrderPending, 2*time.Hour)
	place(tomatoes, 1, entity.OrderCancelled, time.Hour)
	// Outside the daily window.
	place(eggs, 10, entity.OrderDelivered, 72*time.Hour)

	report, err := fx.service.GenerateReport(ctx, admin.ID, usecase.ReportDaily)

	require.NoError(t, err)
	assert.Equal(t, 3, report.OrderCount)
	// Cancelled orders contribute to counts but not revenue.
	assert.InDelta(t, 18.00, report.TotalRevenue, 1e-9)
	assert.Equal(t, 1, report.OrdersByStatus[entity.OrderCancelled])
	assert.InDelta(t, 10.00, report.RevenueByCategory["Vegetables"], 1e-9)
	assert.InDelta(t, 8.00, report.RevenueByCategory["Dairy"], 1e-9)
	assert.Equal(t, 4, report.UserCount)
	assert.Equal(t, 2, report.ProductCount)

	require.NotEmpty(t, report.TopProducts)
	assert.Equal(t, tomatoes.ID, report.TopProducts[0].ProductID)

	require.NotEmpty(t, report.TopFarmers)
	assert.Equal(t, farmer.ID, report.TopFarmers[0].FarmerID)
	assert.Equal(t, "Green Acres", report.TopFarmers[0].FarmName)
	assert.InDelta(t, 18.00, report.TopFarmers[0].Revenue, 1e-9)
}

func TestAdminService_GenerateReport_UnknownPeriod(t *testing.T) {
	fx := createTestAdminService(t)
	ctx := context.Background()

	admin := seedAdmin(fx.store)

	_, err := fx.service.GenerateReport(ctx, admin.ID, usecase.ReportPeriod("YEARLY"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}
