package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lifted "github.com/benjamonnguyen/lifted-go"
)

func TestNotificationRepo(t *testing.T) {
	ctx := context.Background()
	_, dbGetter := openTestDB(t)
	repo := NewNotificationRepo(dbGetter, clockwork.NewRealClock(), nopLogger)

	fireAt := time.Now().Add(time.Minute).Truncate(time.Millisecond)
	inserted, err := repo.InsertNotification(ctx, lifted.NotificationRecord{
		SessionID: "s1",
		Handle:    7,
		FireAt:    fireAt,
		Strategy:  "full",
		Status:    lifted.NotificationScheduled,
	})
	require.NoError(t, err)
	require.NotEmpty(t, inserted.ID)

	got, err := repo.GetNotification(ctx, inserted.ID)
	require.NoError(t, err)
	assert.Equal(t, lifted.SessionID("s1"), got.SessionID)
	assert.Equal(t, lifted.NotificationHandle(7), got.Handle)
	assert.True(t, fireAt.Equal(got.FireAt))
	assert.Equal(t, "full", got.Strategy)
	assert.Equal(t, lifted.NotificationScheduled, got.Status)

	updated, err := repo.UpdateNotificationStatus(ctx, inserted.ID, lifted.NotificationCancelled)
	require.NoError(t, err)
	assert.Equal(t, lifted.NotificationCancelled, updated.Status)

	got, err = repo.GetNotification(ctx, inserted.ID)
	require.NoError(t, err)
	assert.Equal(t, lifted.NotificationCancelled, got.Status)
}

func TestNotificationRepo_Timestamps(t *testing.T) {
	ctx := context.Background()
	_, dbGetter := openTestDB(t)
	t0 := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(t0)
	repo := NewNotificationRepo(dbGetter, clock, nopLogger)

	inserted, err := repo.InsertNotification(ctx, lifted.NotificationRecord{
		SessionID: "s1",
		Handle:    3,
		FireAt:    t0.Add(time.Minute),
		Status:    lifted.NotificationScheduled,
	})
	require.NoError(t, err)

	clock.Advance(90 * time.Second)
	_, err = repo.UpdateNotificationStatus(ctx, inserted.ID, lifted.NotificationReleased)
	require.NoError(t, err)

	got, err := repo.GetNotification(ctx, inserted.ID)
	require.NoError(t, err)
	assert.Equal(t, t0.Unix(), got.CreatedAt.Unix())
	assert.Equal(t, t0.Add(90*time.Second).Unix(), got.UpdatedAt.Unix())
}

func TestNotificationRepo_Validation(t *testing.T) {
	ctx := context.Background()
	_, dbGetter := openTestDB(t)
	repo := NewNotificationRepo(dbGetter, clockwork.NewRealClock(), nopLogger)

	_, err := repo.InsertNotification(ctx, lifted.NotificationRecord{Handle: 1})
	assert.Error(t, err)

	_, err = repo.GetNotification(ctx, "")
	assert.Error(t, err)

	_, err = repo.GetNotification(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.UpdateNotificationStatus(ctx, "missing", lifted.NotificationReleased)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNotificationRepo_GetNotificationsByStatus(t *testing.T) {
	ctx := context.Background()
	_, dbGetter := openTestDB(t)
	repo := NewNotificationRepo(dbGetter, clockwork.NewRealClock(), nopLogger)

	insert := func(handle lifted.NotificationHandle, status lifted.NotificationStatus) lifted.ExistingNotificationRecord {
		t.Helper()
		r, err := repo.InsertNotification(ctx, lifted.NotificationRecord{
			SessionID: "s1",
			Handle:    handle,
			FireAt:    time.Now(),
			Strategy:  "minimal",
			Status:    status,
		})
		require.NoError(t, err)
		return r
	}
	scheduled := insert(1, lifted.NotificationScheduled)
	insert(2, lifted.NotificationCancelled)
	released := insert(3, lifted.NotificationReleased)

	records, err := repo.GetNotificationsByStatus(ctx, lifted.NotificationScheduled)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, scheduled.ID, records[0].ID)

	records, err = repo.GetNotificationsByStatus(ctx, lifted.NotificationScheduled, lifted.NotificationReleased)
	require.NoError(t, err)
	var ids []lifted.NotificationRecordID
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	assert.ElementsMatch(t, []lifted.NotificationRecordID{scheduled.ID, released.ID}, ids)

	records, err = repo.GetNotificationsByStatus(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestNotificationRepo_DeleteNotificationsBefore(t *testing.T) {
	ctx := context.Background()
	_, dbGetter := openTestDB(t)
	repo := NewNotificationRepo(dbGetter, clockwork.NewRealClock(), nopLogger)

	for _, status := range []lifted.NotificationStatus{lifted.NotificationScheduled, lifted.NotificationCancelled, lifted.NotificationReleased} {
		_, err := repo.InsertNotification(ctx, lifted.NotificationRecord{
			SessionID: "s1",
			Handle:    1,
			FireAt:    time.Now(),
			Status:    status,
		})
		require.NoError(t, err)
	}

	n, err := repo.DeleteNotificationsBefore(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	records, err := repo.GetNotificationsByStatus(ctx, lifted.NotificationScheduled)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
