package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/procure/backend/internal/domain/directory"
	"github.com/procure/backend/internal/domain/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormNotificationRepository_FindForRecipient(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormNotificationRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	otherID := uuid.New()

	direct, err := notification.NewUserNotification(userID, "Request decided", "Your purchase request was approved")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, direct))

	time.Sleep(2 * time.Millisecond)

	roleWide, err := notification.NewRoleNotification(directory.RolePurchasing, "Goods receipt recorded", "A receipt was recorded")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, roleWide))

	someoneElses, err := notification.NewUserNotification(otherID, "Other", "Not for this user")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, someoneElses))

	t.Run("returns direct and role notifications newest first", func(t *testing.T) {
		found, err := repo.FindForRecipient(ctx, userID, directory.RolePurchasing)
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, roleWide.ID, found[0].ID)
		assert.Equal(t, direct.ID, found[1].ID)
	})

	t.Run("excludes notifications for other recipients", func(t *testing.T) {
		found, err := repo.FindForRecipient(ctx, userID, directory.RoleEmployee)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, direct.ID, found[0].ID)
	})
}

func TestGormNotificationRepository_Update(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormNotificationRepository(db)
	ctx := context.Background()

	n, err := notification.NewUserNotification(uuid.New(), "Request awaiting approval", "A request needs your decision")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, n))

	n.MarkRead()
	require.NoError(t, repo.Update(ctx, n))

	found, err := repo.FindByID(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, found.Read)
}
