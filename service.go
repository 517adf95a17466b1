package lifted

import (
	"context"
	"errors"
)

var ErrUnsupportedPlatform = errors.New("notifications are not supported on this platform")

// NotificationService is the host platform's local notification API.
type NotificationService interface {
	Platform() Platform
	CheckPermission(context.Context) (Permission, error)
	// RequestPermission may prompt the user and block until they answer.
	RequestPermission(context.Context) (Permission, error)
	ScheduleAt(context.Context, Notification) error
	// Cancel must tolerate handles that already fired or were cancelled.
	Cancel(context.Context, NotificationHandle) error
	// EnsureChannel is idempotent.
	EnsureChannel(context.Context, Channel) error
}

// IdAllocator hands out notification handles. Implementations wrap below a
// bound so the values stay portable to native notification layers.
type IdAllocator interface {
	Next(context.Context) (NotificationHandle, error)
}

// BackgroundExecutionGuard keeps the host process alive while a long rest
// countdown is active. Every Acquire is paired with exactly one Release.
type BackgroundExecutionGuard interface {
	Acquire()
	Release()
}

type NotificationLedger interface {
	InsertNotification(context.Context, NotificationRecord) (ExistingNotificationRecord, error)
	UpdateNotificationStatus(context.Context, NotificationRecordID, NotificationStatus) (ExistingNotificationRecord, error)
	GetNotificationsByStatus(context.Context, ...NotificationStatus) ([]ExistingNotificationRecord, error)
}

// WrapHandle maps the n-th value of a monotonic counter (n >= 1) into
// [1, bound-1]. Handle 0 is never produced.
func WrapHandle(n int64, bound int) NotificationHandle {
	if n < 1 {
		n = 1
	}
	return NotificationHandle((n-1)%int64(bound-1) + 1)
}
