package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

func seedNotification(t *testing.T, repo ports.NotificationRepository, userID uint) *domain.Notification {
	t.Helper()
	n := &domain.Notification{
		UserID:           userID,
		NotificationType: domain.NotifySystem,
		Title:            "Welcome",
		Message:          "hello",
		Priority:         domain.PriorityMedium,
	}
	require.NoError(t, repo.Create(context.Background(), n))
	return n
}

func TestNotificationRepository_MarkReadKeepsFirstTimestamp(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewNotificationRepository(db)
	u := seedUser(t, db, "alice")
	n := seedNotification(t, repo, u.ID)

	first := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	marked, err := repo.MarkRead(ctx, n.ID, u.ID, first)
	require.NoError(t, err)
	assert.True(t, marked.IsRead)

	again, err := repo.MarkRead(ctx, n.ID, u.ID, first.Add(time.Hour))
	require.NoError(t, err)
	require.NotNil(t, again.ReadAt)
	assert.True(t, again.ReadAt.Equal(first), "second call returns the stored read_at")

	got, err := repo.FindOwned(ctx, n.ID, u.ID)
	require.NoError(t, err)
	assert.True(t, got.IsRead)
	require.NotNil(t, got.ReadAt)
	assert.True(t, got.ReadAt.Equal(first))
}

func TestNotificationRepository_MarkRead_OtherUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewNotificationRepository(db)
	owner := seedUser(t, db, "owner")
	other := seedUser(t, db, "other")
	n := seedNotification(t, repo, owner.ID)

	_, err := repo.MarkRead(ctx, n.ID, other.ID, time.Now())
	assert.ErrorIs(t, err, domain.ErrNotificationNotFound)
	_, err = repo.MarkRead(ctx, n.ID+100, owner.ID, time.Now())
	assert.ErrorIs(t, err, domain.ErrNotificationNotFound)

	got, err := repo.FindOwned(ctx, n.ID, owner.ID)
	require.NoError(t, err)
	assert.False(t, got.IsRead, "a stranger cannot mark it read")
}

func TestNotificationRepository_FindOwned_OtherUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewNotificationRepository(db)
	owner := seedUser(t, db, "owner")
	other := seedUser(t, db, "other")
	n := seedNotification(t, repo, owner.ID)

	_, err := repo.FindOwned(context.Background(), n.ID, other.ID)
	assert.ErrorIs(t, err, domain.ErrNotificationNotFound)
}

func TestNotificationRepository_MarkAllReadAndStats(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewNotificationRepository(db)
	u := seedUser(t, db, "alice")
	other := seedUser(t, db, "bob")
	for range 3 {
		seedNotification(t, repo, u.ID)
	}
	seedNotification(t, repo, other.ID)
	first := seedNotification(t, repo, u.ID)
	_, err := repo.MarkRead(ctx, first.ID, u.ID, time.Now())
	require.NoError(t, err)

	n, err := repo.MarkAllRead(ctx, u.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	stats, err := repo.Stats(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.NotificationStats{Total: 4, Unread: 0, Read: 4}, *stats)

	unread, total, err := repo.List(ctx, other.ID, ports.ListNotificationsFilter{UnreadOnly: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, unread, 1)
}

func TestNotificationRepository_Preferences(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewNotificationRepository(db)
	u := seedUser(t, db, "alice")

	p, err := repo.FindPreferences(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, p.PushPostInteractions)

	p.PushPostInteractions = false
	p.DigestFrequency = domain.DigestWeekly
	require.NoError(t, repo.SavePreferences(ctx, p))

	// second save goes through the upsert path
	p2 := domain.DefaultPreferences(u.ID)
	p2.PushPostInteractions = false
	p2.PushClubActivities = false
	require.NoError(t, repo.SavePreferences(ctx, p2))

	got, err := repo.FindPreferences(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, got.PushPostInteractions)
	assert.False(t, got.PushClubActivities)
	assert.Equal(t, domain.DigestImmediate, got.DigestFrequency)
}
