// Package models helps control struct access and mutation
package models

import (
	"time"
)

// TimerState accumulates elapsed workout time from timestamp deltas instead of
// counting ticks, so a gap in execution (suspension, a missed tick) is
// corrected on the next Reconcile.
//
// Timestamps from time.Now carry a monotonic reading which Sub prefers, so
// wall clock adjustments do not leak into elapsed time. Timestamps without one
// fall back to wall time; a reading earlier than the anchor adds nothing and
// leaves the anchor in place, so the rolled-back span is not counted twice.
type TimerState struct {
	running      bool
	elapsed      time.Duration
	lastResumeAt time.Time
}

// Start reports whether the state changed.
func (s *TimerState) Start(now time.Time) bool {
	if s.running {
		return false
	}
	s.running = true
	s.lastResumeAt = now
	return true
}

// Stop reports whether the state changed.
func (s *TimerState) Stop(now time.Time) bool {
	if !s.running {
		return false
	}
	s.fold(now)
	s.running = false
	return true
}

func (s *TimerState) Reconcile(now time.Time) {
	if !s.running {
		return
	}
	s.fold(now)
}

func (s *TimerState) fold(now time.Time) {
	if !now.After(s.lastResumeAt) {
		return
	}
	s.elapsed += now.Sub(s.lastResumeAt)
	s.lastResumeAt = now
}

func (s TimerState) Running() bool {
	return s.running
}

// Elapsed is the time folded in by the last Start/Stop/Reconcile.
func (s TimerState) Elapsed() time.Duration {
	return s.elapsed
}

// ElapsedAt includes the in-flight segment up to now without mutating s.
func (s TimerState) ElapsedAt(now time.Time) time.Duration {
	s.Reconcile(now)
	return s.elapsed
}

func (s TimerState) ElapsedSeconds() int {
	return int(s.elapsed / time.Second)
}
