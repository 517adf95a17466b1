package lifted

import (
	"fmt"
	"time"
)

// NotificationHandle identifies a scheduled platform notification. Native
// mobile notification layers only accept 32-bit signed ids.
type NotificationHandle int32

type Lifecycle uint8

const (
	_ Lifecycle = iota
	Foreground
	Background
)

func (l Lifecycle) String() string {
	switch l {
	case Foreground:
		return "foreground"
	case Background:
		return "background"
	default:
		return fmt.Sprintf("Lifecycle(%d)", uint8(l))
	}
}

type Permission uint8

const (
	PermissionUnknown Permission = iota
	PermissionGranted
	PermissionDenied
)

func (p Permission) String() string {
	switch p {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	default:
		return "unknown"
	}
}

// Platform describes what the host can do with notifications.
type Platform struct {
	Name string
	// Supported is false for builds with no notification capability.
	Supported bool
	// RequiresChannel is true when a channel must exist before scheduling.
	RequiresChannel bool
}

type Notification struct {
	Handle         NotificationHandle
	FireAt         time.Time
	Title          string
	Body           string
	LargeBody      string
	Summary        string
	ChannelID      string
	AllowWhileIdle bool
}

type Channel struct {
	ID          string
	Name        string
	Description string
	Importance  int
	Visibility  int
	Sound       string
	Vibration   bool
	Lights      bool
	LightColor  string
}

type NotificationStatus uint8

const (
	_ NotificationStatus = iota
	NotificationScheduled
	NotificationCancelled
	NotificationReleased
)

func (s NotificationStatus) String() string {
	switch s {
	case NotificationScheduled:
		return "scheduled"
	case NotificationCancelled:
		return "cancelled"
	case NotificationReleased:
		return "released"
	default:
		return "unknown"
	}
}

type NotificationRecordID string

type NotificationRecord struct {
	SessionID SessionID
	Handle    NotificationHandle
	FireAt    time.Time
	Strategy  string
	Status    NotificationStatus
}

type ExistingNotificationRecord struct {
	ExistingRecord[NotificationRecordID]
	NotificationRecord
}
