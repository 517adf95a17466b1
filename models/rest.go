package models

import (
	"time"

	lifted "github.com/benjamonnguyen/lifted-go"
)

// RestState is one rest countdown. The zero value is idle.
type RestState struct {
	active    bool
	duration  time.Duration
	startedAt time.Time
	handle    Optional[lifted.NotificationHandle]
	fireAt    time.Time
}

func NewRestState(d time.Duration, now time.Time) RestState {
	if d <= 0 {
		return RestState{}
	}
	return RestState{
		active:    true,
		duration:  d,
		startedAt: now,
	}
}

func (s RestState) Active() bool {
	return s.active
}

func (s RestState) Duration() time.Duration {
	return s.duration
}

func (s RestState) StartedAt() time.Time {
	return s.startedAt
}

func (s RestState) EndsAt() time.Time {
	return s.startedAt.Add(s.duration)
}

// RemainingAt is max(0, duration - (now - startedAt)). A now before startedAt
// (clock skew) leaves the full duration.
func (s RestState) RemainingAt(now time.Time) time.Duration {
	if !s.active {
		return 0
	}
	elapsed := max(now.Sub(s.startedAt), 0)
	return max(s.duration-elapsed, 0)
}

// RemainingSeconds rounds up, so 0 is reported only once the countdown has
// actually run out. Empty when idle.
func (s RestState) RemainingSeconds(now time.Time) Optional[int] {
	if !s.active {
		return Empty[int]()
	}
	rem := s.RemainingAt(now)
	return Of(int((rem + time.Second - 1) / time.Second))
}

func (s RestState) ExpiredAt(now time.Time) bool {
	return s.active && s.RemainingAt(now) <= 0
}

// Fraction is the share of the countdown still remaining, in [0, 1].
func (s RestState) Fraction(now time.Time) float64 {
	if !s.active || s.duration <= 0 {
		return 0
	}
	return float64(s.RemainingAt(now)) / float64(s.duration)
}

// AttachHandle records the notification scheduled for this countdown and
// when it fires. It refuses when idle or when a handle is already attached.
func (s *RestState) AttachHandle(h lifted.NotificationHandle, fireAt time.Time) bool {
	if !s.active || !s.handle.IsEmpty() {
		return false
	}
	s.handle = Of(h)
	s.fireAt = fireAt
	return true
}

// NotifiesAtEnd reports whether the attached notification fires within
// slack of EndsAt. A notification pushed out by a minimum delay or pulled
// in by an immediate fallback does not.
func (s RestState) NotifiesAtEnd(slack time.Duration) bool {
	if s.handle.IsEmpty() {
		return false
	}
	d := s.fireAt.Sub(s.EndsAt())
	return d >= -slack && d <= slack
}

func (s RestState) Handle() Optional[lifted.NotificationHandle] {
	return s.handle
}

// Clear returns s to idle and hands back the detached handle, if any, so the
// caller can cancel or release it.
func (s *RestState) Clear() Optional[lifted.NotificationHandle] {
	h := s.handle
	*s = RestState{}
	return h
}
