package impl

import (
	"context"
	"testing"

	domainerrors "freshfarm/internal/domain/errors"
	"freshfarm/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cartServiceFixtures holds all test dependencies for cart service tests.
type cartServiceFixtures struct {
	service usecase.CartUsecase
	store   *memStore
}

func createTestCartService(t *testing.T) cartServiceFixtures {
	t.Helper()

	store := newMemStore()
	service := NewCartService(newMemTxManager(store), testLogger())

	return cartServiceFixtures{service: service, store: store}
}

func TestCartService_GetCart_LazilyCreated(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()

	buyer := seedBuyer(fx.store)
	require.Empty(t, fx.store.carts)

	cart, err := fx.service.GetCart(ctx, buyer.ID)

	require.NoError(t, err)
	assert.Equal(t, buyer.ID, cart.BuyerID)
	assert.Zero(t, cart.TotalAmount)
	assert.Len(t, fx.store.carts, 1)

	// A second access returns the same cart instead of creating another.
	again, err := fx.service.GetCart(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)
	assert.Len(t, fx.store.carts, 1)
}

func TestCartService_GetCart_FarmerRejected(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()

	farmer := seedFarmer(fx.store)

	_, err := fx.service.GetCart(ctx, farmer.ID)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrOnlyBuyers)
	assert.NotErrorIs(t, err, domainerrors.ErrCartItemNotFound)
	assert.Empty(t, fx.store.carts)
}

func TestCartService_AddItem_TotalMatchesSubtotals(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()

	buyer := seedBuyer(fx.store)
	farmer := seedFarmer(fx.store)
	apples := seedProduct(fx.store, farmer.ID, 2.50, 10)
	eggs := seedProduct(fx.store, farmer.ID, 4.00, 30)

	cart, err := fx.service.AddItem(ctx, buyer.ID, apples.ID, 4)
	require.NoError(t, err)
	assert.InDelta(t, 10.00, cart.TotalAmount, 1e-9)

	cart, err = fx.service.AddItem(ctx, buyer.ID, eggs.ID, 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	assert.InDelta(t, 18.00, cart.TotalAmount, 1e-9)

	var sum float64
	for _, item := range cart.Items {
		sum += item.Subtotal
	}
	assert.InDelta(t, cart.TotalAmount, sum, 1e-9)
}

func TestCartService_AddItem_IncrementsExistingLine(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()

	buyer := seedBuyer(fx.store)
	farmer := seedFarmer(fx.store)
	apples := seedProduct(fx.store, farmer.ID, 2.50, 10)

	_, err := fx.service.AddItem(ctx, buyer.ID, apples.ID, 1)
	require.NoError(t, err)

	cart, err := fx.service.AddItem(ctx, buyer.ID, apples.ID, 3)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 4, cart.Items[0].Quantity)
	assert.InDelta(t, 10.00, cart.Items[0].Subtotal, 1e-9)
}

func TestCartService_AddItem_UnavailableProduct(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()

	buyer := seedBuyer(fx.store)
	farmer := seedFarmer(fx.store)
	apples := seedProduct(fx.store, farmer.ID, 2.50, 10)
	fx.store.products[apples.ID].Available = false

	_, err := fx.service.AddItem(ctx, buyer.ID, apples.ID, 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrProductUnavailable)
	assert.Empty(t, fx.store.cartItems)
}

func TestCartService_AddItem_UnknownProduct(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()

	buyer := seedBuyer(fx.store)

	_, err := fx.service.AddItem(ctx, buyer.ID, uuid.New(), 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestCartService_AddItem_TracksLivePrice(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()

	buyer := seedBuyer(fx.store)
	farmer := seedFarmer(fx.store)
	apples := seedProduct(fx.store, farmer.ID, 2.50, 10)

	_, err := fx.service.AddItem(ctx, buyer.ID, apples.ID, 2)
	require.NoError(t, err)

	// Cart subtotals follow the product's current price, so a price
	// change shows up at the next mutation.
	fx.store.products[apples.ID].Price = 3.00

	cart, err := fx.service.AddItem(ctx, buyer.ID, apples.ID, 1)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.InDelta(t, 9.00, cart.Items[0].Subtotal, 1e-9)
	assert.InDelta(t, 9.00, cart.TotalAmount, 1e-9)
}

func TestCartService_SetItemQuantity_ZeroRemovesLine(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()

	buyer := seedBuyer(fx.store)
	farmer := seedFarmer(fx.store)
	apples := seedProduct(fx.store, farmer.ID, 2.50, 10)

	cart, err := fx.service.AddItem(ctx, buyer.ID, apples.ID, 4)
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	cart, err = fx.service.SetItemQuantity(ctx, buyer.ID, itemID, 0)
	require.NoError(t, err)

	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalAmount)
	assert.Empty(t, fx.store.cartItems)
}

func TestCartService_SetItemQuantity_UnknownItem(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()

	buyer := seedBuyer(fx.store)

	_, err := fx.service.SetItemQuantity(ctx, buyer.ID, uuid.New(), 2)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrCartItemNotFound)
}

func TestCartService_ClearCart(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()

	buyer := seedBuyer(fx.store)
	farmer := seedFarmer(fx.store)
	apples := seedProduct(fx.store, farmer.ID, 2.50, 10)
	eggs := seedProduct(fx.store, farmer.ID, 4.00, 30)

	_, err := fx.service.AddItem(ctx, buyer.ID, apples.ID, 4)
	require.NoError(t, err)
	_, err = fx.service.AddItem(ctx, buyer.ID, eggs.ID, 1)
	require.NoError(t, err)

	cart, err := fx.service.ClearCart(ctx, buyer.ID)
	require.NoError(t, err)

	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalAmount)
	assert.Empty(t, fx.store.cartItems)
}
