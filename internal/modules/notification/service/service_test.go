package service

import (
	"context"
	"testing"

	"mindhaven-backend/internal/entity"
	"mindhaven-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memNotificationRepo struct {
	rows []entity.Notification
}

func (r *memNotificationRepo) Create(ctx context.Context, notification *entity.Notification) error {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	r.rows = append(r.rows, *notification)
	return nil
}

func (r *memNotificationRepo) GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.Notification, error) {
	var rows []entity.Notification
	for _, n := range r.rows {
		if n.UserID == userID {
			rows = append(rows, n)
		}
	}
	return rows, nil
}

func (r *memNotificationRepo) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	for i := range r.rows {
		if r.rows[i].ID == id && r.rows[i].UserID == userID {
			r.rows[i].IsRead = true
			return nil
		}
	}
	return apperror.ErrNotFound
}

func (r *memNotificationRepo) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	for i := range r.rows {
		if r.rows[i].UserID == userID {
			r.rows[i].IsRead = true
		}
	}
	return nil
}

func (r *memNotificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, n := range r.rows {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func seedNotification(t *testing.T, repo *memNotificationRepo, userID uuid.UUID) uuid.UUID {
	t.Helper()
	n := &entity.Notification{
		UserID:  userID,
		Type:    entity.NotificationRewardGranted,
		Message: "You earned 20 bounty points: 3 Day Update",
	}
	require.NoError(t, repo.Create(context.Background(), n))
	return n.ID
}

func TestMarkAsReadOwnNotification(t *testing.T) {
	repo := &memNotificationRepo{}
	svc := NewNotificationService(repo, nil)
	userID := uuid.New()
	id := seedNotification(t, repo, userID)

	require.NoError(t, svc.MarkAsRead(context.Background(), userID, id))

	count, err := svc.UnreadCount(context.Background(), userID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMarkAsReadScopedToOwner(t *testing.T) {
	repo := &memNotificationRepo{}
	svc := NewNotificationService(repo, nil)
	owner := uuid.New()
	id := seedNotification(t, repo, owner)

	// A different authenticated user cannot touch the owner's notification.
	err := svc.MarkAsRead(context.Background(), uuid.New(), id)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	count, err := svc.UnreadCount(context.Background(), owner)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestMarkAllAsReadOnlyTouchesOwnRows(t *testing.T) {
	repo := &memNotificationRepo{}
	svc := NewNotificationService(repo, nil)
	userID := uuid.New()
	other := uuid.New()
	seedNotification(t, repo, userID)
	seedNotification(t, repo, userID)
	seedNotification(t, repo, other)

	require.NoError(t, svc.MarkAllAsRead(context.Background(), userID))

	count, err := svc.UnreadCount(context.Background(), userID)
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = svc.UnreadCount(context.Background(), other)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestCreateNotificationWithoutRedis(t *testing.T) {
	repo := &memNotificationRepo{}
	svc := NewNotificationService(repo, nil)
	userID := uuid.New()

	err := svc.CreateNotification(context.Background(), &entity.Notification{
		UserID:  userID,
		Type:    entity.NotificationRewardGranted,
		Message: "You earned 50 bounty points: Signup Reward",
	})
	require.NoError(t, err)

	rows, err := svc.GetNotifications(context.Background(), userID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
