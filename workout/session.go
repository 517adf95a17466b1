// Package workout runs a workout session: the total workout timer, the rest
// countdown between sets, and the reconciliation of both when the app moves
// between foreground and background.
package workout

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"

	lifted "github.com/benjamonnguyen/lifted-go"
	"github.com/benjamonnguyen/lifted-go/metrics"
	"github.com/benjamonnguyen/lifted-go/models"
)

type SessionOptions struct {
	// ID is generated when empty.
	ID                     lifted.SessionID
	TickInterval           time.Duration
	GuardThreshold         time.Duration
	PauseTicksInBackground bool
	Guard                  lifted.BackgroundExecutionGuard
	Metrics                *metrics.Manager
}

func SessionOptionsFromConfig(cfg lifted.Config) SessionOptions {
	return SessionOptions{
		TickInterval:           cfg.TickInterval,
		GuardThreshold:         cfg.GuardThreshold,
		PauseTicksInBackground: cfg.PauseTicksInBackground,
	}
}

// Snapshot is a point-in-time view of a session for display. Seq increases
// with every snapshot so consumers can drop stale ones.
type Snapshot struct {
	ID           lifted.SessionID
	Seq          uint64
	Elapsed      int
	Running      bool
	Rest         models.Optional[int]
	RestFraction float64
	Exercise     string
	Set          int
	TotalSets    int
	Done         bool
	Lifecycle    lifted.Lifecycle
}

func (s Snapshot) ElapsedClock() string {
	return lifted.FormatClock(s.Elapsed)
}

// RestClock is empty while no rest is running.
func (s Snapshot) RestClock() string {
	if s.Rest.IsEmpty() {
		return ""
	}
	return lifted.FormatClock(s.Rest.Get())
}

func (s Snapshot) Resting() bool {
	return !s.Rest.IsEmpty()
}

// Session owns the one workout timer and the one rest countdown of a mounted
// workout.
type Session struct {
	ID lifted.SessionID

	cancel     context.CancelFunc
	timer      *WallClockTimer
	rest       *RestCountdown
	reconciler *LifecycleReconciler
	l          log.Logger

	mu       sync.Mutex
	progress models.WorkoutProgress

	seq       atomic.Uint64
	hooksMu   sync.RWMutex
	onChange  func(Snapshot)
	onRestEnd func(CompletionEvent)
}

func NewSession(
	ctx context.Context,
	clock clockwork.Clock,
	coord NotificationCoordinator,
	plan lifted.WorkoutPlan,
	opts SessionOptions,
	l log.Logger,
) *Session {
	if opts.GuardThreshold <= 0 {
		opts.GuardThreshold = DefaultGuardThreshold
	}

	id := opts.ID
	if id == "" {
		id = lifted.NewSessionID()
	}
	sessionCtx, cancel := context.WithCancel(ctx)
	logger := *l.With("session", id)

	s := &Session{
		ID:       id,
		cancel:   cancel,
		progress: models.NewWorkoutProgress(plan),
		l:        logger,
	}
	s.timer = NewWallClockTimer(sessionCtx, clock, opts.TickInterval, logger)
	s.rest = NewRestCountdown(sessionCtx, clock, coord, RestOptions{
		TickInterval:   opts.TickInterval,
		GuardThreshold: opts.GuardThreshold,
		Guard:          opts.Guard,
		Metrics:        opts.Metrics,
	}, logger)
	s.reconciler = NewLifecycleReconciler(clock, s.timer, s.rest, opts.PauseTicksInBackground, opts.Metrics, logger)

	s.reconciler.OnHandled(func(lifted.Lifecycle) { s.changed() })
	s.timer.OnTick(func(int) { s.changed() })
	s.rest.OnTick(func(int) { s.changed() })
	s.rest.OnComplete(func(ev CompletionEvent) {
		s.hooksMu.RLock()
		onRestEnd := s.onRestEnd
		s.hooksMu.RUnlock()
		if onRestEnd != nil {
			onRestEnd(ev)
		}
		s.changed()
	})
	return s
}

// OnChange registers the handler called with a fresh snapshot whenever the
// displayed state may have changed. It is called from tick goroutines and
// must not block.
func (s *Session) OnChange(handler func(Snapshot)) {
	s.hooksMu.Lock()
	defer s.hooksMu.Unlock()
	s.onChange = handler
}

// OnRestComplete registers the handler called when a rest countdown expires,
// is skipped, or is superseded.
func (s *Session) OnRestComplete(handler func(CompletionEvent)) {
	s.hooksMu.Lock()
	defer s.hooksMu.Unlock()
	s.onRestEnd = handler
}

// Start starts the workout timer. It is called when the session is shown.
func (s *Session) Start() {
	s.timer.Start()
	s.changed()
}

// Toggle starts or pauses the workout timer. It is refused while resting and
// reports whether it was applied.
func (s *Session) Toggle() bool {
	if s.rest.Active() {
		s.l.Debug("toggle ignored during rest")
		return false
	}
	s.timer.Toggle()
	s.changed()
	return true
}

// CompleteSet records the current set and starts the rest owed before the
// next set of the same exercise.
func (s *Session) CompleteSet() {
	s.mu.Lock()
	completed, ok := s.progress.CompleteSet()
	done := s.progress.Done()
	plan := s.progress.Plan()
	s.mu.Unlock()
	if !ok {
		s.l.Debug("workout already complete")
		return
	}

	s.l.Info("set completed", "exercise", completed.Name, "set", completed.SetNumber, "of", completed.TotalSets)
	if !completed.IsLastOfExercise() {
		if d := plan.RestFor(completed.Exercise); d > 0 {
			s.rest.Begin(d)
		}
	}
	if done {
		s.timer.Stop()
		s.l.Info("workout complete", "elapsed", s.timer.ElapsedSeconds())
	}
	s.changed()
}

func (s *Session) SkipRest() {
	if !s.rest.Active() {
		return
	}
	s.rest.Skip()
}

func (s *Session) HandleLifecycle(l lifted.Lifecycle) {
	s.reconciler.Handle(l)
}

// RunLifecycle feeds lifecycle events to the session until ctx is done or
// events is closed.
func (s *Session) RunLifecycle(ctx context.Context, events <-chan lifted.Lifecycle) {
	s.reconciler.Run(ctx, events)
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	snap := Snapshot{
		ID:        s.ID,
		Exercise:  s.progress.ExerciseName(),
		Set:       s.progress.SetNumber(),
		TotalSets: s.progress.TotalSets(),
		Done:      s.progress.Done(),
	}
	s.mu.Unlock()

	snap.Seq = s.seq.Add(1)
	snap.Elapsed = s.timer.ElapsedSeconds()
	snap.Running = s.timer.Running()
	if secs, ok := s.rest.Remaining(); ok {
		snap.Rest = models.Of(secs)
		snap.RestFraction = s.rest.Fraction()
	}
	snap.Lifecycle = s.reconciler.State()
	return snap
}

// Close ends the session. A running rest is cancelled without a completion
// event. Close waits for every goroutine the session started.
func (s *Session) Close() {
	s.cancel()
	s.rest.Close()
	s.timer.Close()
	s.l.Info("session closed")
}

func (s *Session) changed() {
	s.hooksMu.RLock()
	onChange := s.onChange
	s.hooksMu.RUnlock()
	if onChange != nil {
		onChange(s.Snapshot())
	}
}
