package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/biosmaris-storefront/internal/domain/entity"
)

func inboxMessages() []entity.ContactMessage {
	return []entity.ContactMessage{
		{ID: "m1", Name: "Awa", Subject: "Prix"},
		{ID: "m2", Name: "Ben", Subject: "Livraison", Read: true},
		{ID: "m3", Name: "Chloé", Subject: "Posologie"},
	}
}

func TestInboxRefreshAndUnreadCount(t *testing.T) {
	repo := &fakeContactRepo{messages: inboxMessages()}
	u := NewInboxUseCase(repo)

	assert.Zero(t, u.UnreadCount())
	require.True(t, u.Refresh(context.Background()))
	assert.Len(t, u.Messages(), 3)
	assert.Equal(t, 2, u.UnreadCount())
}

func TestInboxRefreshFailureKeepsState(t *testing.T) {
	repo := &fakeContactRepo{messages: inboxMessages()}
	u := NewInboxUseCase(repo)
	require.True(t, u.Refresh(context.Background()))

	repo.listErr = errNetwork
	assert.False(t, u.Refresh(context.Background()))
	assert.Len(t, u.Messages(), 3)
}

func TestInboxMarkRead(t *testing.T) {
	ctx := context.Background()
	repo := &fakeContactRepo{messages: inboxMessages()}
	u := NewInboxUseCase(repo)
	u.Refresh(ctx)

	require.NoError(t, u.MarkRead(ctx, "m1"))
	msg, ok := u.Message("m1")
	require.True(t, ok)
	assert.True(t, msg.Read)
	assert.Equal(t, 1, u.UnreadCount())

	// already read: no backend call
	require.NoError(t, u.MarkRead(ctx, "m2"))
	assert.Equal(t, 1, repo.setCalls)

	assert.ErrorIs(t, u.MarkRead(ctx, "nope"), ErrMessageNotFound)
}

func TestInboxMarkReadRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	repo := &fakeContactRepo{messages: inboxMessages(), setErr: errNetwork}
	u := NewInboxUseCase(repo)
	u.Refresh(ctx)

	err := u.MarkRead(ctx, "m1")
	require.Error(t, err)
	assert.ErrorIs(t, err, errNetwork)

	msg, _ := u.Message("m1")
	assert.False(t, msg.Read)
	assert.Equal(t, 2, u.UnreadCount())
}

func TestInboxDeleteAsksConfirmation(t *testing.T) {
	ctx := context.Background()
	repo := &fakeContactRepo{messages: inboxMessages()}
	u := NewInboxUseCase(repo)
	u.Refresh(ctx)

	var asked entity.ContactMessage
	deleted, err := u.Delete(ctx, "m3", func(ctx context.Context, m entity.ContactMessage) bool {
		asked = m
		return false
	})
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, "Chloé", asked.Name)
	assert.Empty(t, repo.deletes)
	assert.Len(t, u.Messages(), 3)

	deleted, err = u.Delete(ctx, "m3", nil)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Empty(t, repo.deletes)

	deleted, err = u.Delete(ctx, "m3", func(context.Context, entity.ContactMessage) bool { return true })
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, []string{"m3"}, repo.deletes)
	assert.Len(t, u.Messages(), 2)
	assert.Equal(t, 1, u.UnreadCount())
}

func TestInboxDeleteFailureKeepsMessage(t *testing.T) {
	ctx := context.Background()
	repo := &fakeContactRepo{messages: inboxMessages(), deleteErr: errNetwork}
	u := NewInboxUseCase(repo)
	u.Refresh(ctx)

	deleted, err := u.Delete(ctx, "m1", func(context.Context, entity.ContactMessage) bool { return true })
	assert.Error(t, err)
	assert.False(t, deleted)
	assert.Len(t, u.Messages(), 3)

	_, err = u.Delete(ctx, "missing", func(context.Context, entity.ContactMessage) bool { return true })
	assert.ErrorIs(t, err, ErrMessageNotFound)
}

func TestInboxMessagesIsACopy(t *testing.T) {
	ctx := context.Background()
	u := NewInboxUseCase(&fakeContactRepo{messages: inboxMessages()})
	u.Refresh(ctx)

	msgs := u.Messages()
	msgs[0].Read = true
	assert.Equal(t, 2, u.UnreadCount())
}
