package notify

import (
	"context"

	lifted "github.com/benjamonnguyen/lifted-go"
)

// Unsupported is the NotificationService of hosts with no way to deliver
// notifications. Countdowns still run and alert in-app.
type Unsupported struct{}

var _ lifted.NotificationService = Unsupported{}

func (Unsupported) Platform() lifted.Platform {
	return lifted.Platform{Name: "unsupported"}
}

func (Unsupported) CheckPermission(context.Context) (lifted.Permission, error) {
	return lifted.PermissionDenied, nil
}

func (Unsupported) RequestPermission(context.Context) (lifted.Permission, error) {
	return lifted.PermissionDenied, nil
}

func (Unsupported) ScheduleAt(context.Context, lifted.Notification) error {
	return lifted.ErrUnsupportedPlatform
}

func (Unsupported) Cancel(context.Context, lifted.NotificationHandle) error {
	return lifted.ErrUnsupportedPlatform
}

func (Unsupported) EnsureChannel(context.Context, lifted.Channel) error {
	return lifted.ErrUnsupportedPlatform
}
