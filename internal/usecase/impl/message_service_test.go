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

// messageServiceFixtures holds all test dependencies for message service tests.
type messageServiceFixtures struct {
	service usecase.MessageUsecase
	store   *memStore
}

func createTestMessageService(t *testing.T) messageServiceFixtures {
	t.Helper()

	store := newMemStore()
	service := NewMessageService(newMemTxManager(store), testLogger())

	return messageServiceFixtures{service: service, store: store}
}

func TestMessageService_SendMessage_Success(t *testing.T) {
	fx := createTestMessageService(t)
	ctx := context.Background()

	buyer := seedBuyer(fx.store)
	farmer := seedFarmer(fx.store)

	message, err := fx.service.SendMessage(ctx, buyer.ID, usecase.SendMessageInput{
		RecipientID: farmer.ID,
		Content:     "Do you deliver on Saturdays?",
	})

	require.NoError(t, err)
	assert.False(t, message.Read)
	assert.Contains(t, fx.store.messages, message.ID)
}

func TestMessageService_SendMessage_UnknownRecipient(t *testing.T) {
	fx := createTestMessageService(t)
	ctx := context.Background()

	buyer := seedBuyer(fx.store)

	_, err := fx.service.SendMessage(ctx, buyer.ID, usecase.SendMessageInput{
		RecipientID: uuid.New(),
		Content:     "hello?",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
	assert.Empty(t, fx.store.messages)
}

func TestMessageService_SendMessage_EmptyContent(t *testing.T) {
	fx := createTestMessageService(t)
	ctx := context.Background()

	buyer := seedBuyer(fx.store)
	farmer := seedFarmer(fx.store)

	_, err := fx.service.SendMessage(ctx, buyer.ID, usecase.SendMessageInput{
		RecipientID: farmer.ID,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestMessageService_ListConversation_BothDirections(t *testing.T) {
	fx := createTestMessageService(t)
	ctx := context.Background()

	buyer := seedBuyer(fx.store)
	farmer := seedFarmer(fx.store)
	outsider := seedBuyer(fx.store)

	_, err := fx.service.SendMessage(ctx, buyer.ID, usecase.SendMessageInput{RecipientID: farmer.ID, Content: "hi"})
	require.NoError(t, err)
	_, err = fx.service.SendMessage(ctx, farmer.ID, usecase.SendMessageInput{RecipientID: buyer.ID, Content: "hello"})
	require.NoError(t, err)
	_, err = fx.service.SendMessage(ctx, outsider.ID, usecase.SendMessageInput{RecipientID: farmer.ID, Content: "me too"})
	require.NoError(t, err)

	conversation, err := fx.service.ListConversation(ctx, buyer.ID, farmer.ID)

	require.NoError(t, err)
	require.Len(t, conversation, 2)
	assert.Equal(t, "hi", conversation[0].Content)
	assert.Equal(t, "hello", conversation[1].Content)
}

func TestMessageService_MarkRead_RecipientOnly(t *testing.T) {
	fx := createTestMessageService(t)
	ctx := context.Background()

	buyer := seedBuyer(fx.store)
	farmer := seedFarmer(fx.store)

	message, err := fx.service.SendMessage(ctx, buyer.ID, usecase.SendMessageInput{
		RecipientID: farmer.ID,
		Content:     "ping",
	})
	require.NoError(t, err)

	// The sender is not the recipient; existence is not revealed.
	err = fx.service.MarkRead(ctx, buyer.ID, message.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrMessageNotFound)
	assert.False(t, fx.store.messages[message.ID].Read)

	require.NoError(t, fx.service.MarkRead(ctx, farmer.ID, message.ID))
	assert.True(t, fx.store.messages[message.ID].Read)
}
