package impl

import (
	"context"
	"testing"

	"freshfarm/internal/domain/entity"
	domainerrors "freshfarm/internal/domain/errors"
	"freshfarm/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service usecase.AuthUsecase
	store   *memStore
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	t.Helper()

	store := newMemStore()
	service := NewAuthService(newMemTxManager(store), fakeHasher{}, fakeTokens{}, testLogger())

	return authServiceFixtures{service: service, store: store}
}

func TestAuthService_RegisterBuyer_CreatesCart(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	out, err := fx.service.RegisterBuyer(ctx, usecase.RegisterBuyerInput{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "secret",
		DeliveryAddress: "12 Orchard Lane",
	})

	require.NoError(t, err)
	require.NotNil(t, out.User)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, entity.RoleBuyer, out.User.Role)
	assert.True(t, out.User.Active)
	assert.Equal(t, "hashed:secret", out.User.PasswordHash)

	// Registration provisions the cart in the same transaction.
	var found bool
	for _, cart := range fx.store.carts {
		if cart.BuyerID == out.User.ID {
			found = true
			assert.Zero(t, cart.TotalAmount)
		}
	}
	assert.True(t, found, "buyer should have a cart after registration")
}

func TestAuthService_RegisterFarmer_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	out, err := fx.service.RegisterFarmer(ctx, usecase.RegisterFarmerInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "secret",
		FarmName: "Green Acres",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.RoleFarmer, out.User.Role)
	require.NotNil(t, out.User.FarmerProfile)
	assert.Equal(t, "Green Acres", out.User.FarmerProfile.FarmName)
	assert.Nil(t, out.User.BuyerProfile)

	// Farmers get no cart.
	assert.Empty(t, fx.store.carts)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	existing := seedBuyer(fx.store)

	out, err := fx.service.RegisterBuyer(ctx, usecase.RegisterBuyerInput{
		Username: existing.Username,
		Email:    "other@example.com",
		Password: "secret",
	})

	require.Error(t, err)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domainerrors.ErrUsernameTaken)
	// The rejected registration leaves no partial state behind.
	assert.Len(t, fx.store.users, 1)
	assert.Empty(t, fx.store.carts)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	existing := seedBuyer(fx.store)

	_, err := fx.service.RegisterFarmer(ctx, usecase.RegisterFarmerInput{
		Username: "someone-else",
		Email:    existing.Email,
		Password: "secret",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrEmailRegistered)
	assert.Len(t, fx.store.users, 1)
}

func TestAuthService_Login_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	buyer := seedBuyer(fx.store)

	out, err := fx.service.Login(ctx, usecase.LoginInput{
		Username: buyer.Username,
		Password: "secret",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, buyer.ID, out.User.ID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	buyer := seedBuyer(fx.store)

	_, err := fx.service.Login(ctx, usecase.LoginInput{
		Username: buyer.Username,
		Password: "wrong",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownUsername(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	_, err := fx.service.Login(ctx, usecase.LoginInput{
		Username: "ghost",
		Password: "secret",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_DeactivatedAccount(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	buyer := seedBuyer(fx.store)
	fx.store.users[buyer.ID].Active = false

	_, err := fx.service.Login(ctx, usecase.LoginInput{
		Username: buyer.Username,
		Password: "secret",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrAccountDisabled)
}
