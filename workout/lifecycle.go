package workout

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"

	lifted "github.com/benjamonnguyen/lifted-go"
	"github.com/benjamonnguyen/lifted-go/metrics"
)

// LifecycleReconciler brings the timer and the rest countdown up to date
// when the app returns to the foreground. Both recompute from wall time, so
// a countdown that ran out while backgrounded expires exactly once here.
type LifecycleReconciler struct {
	clock clockwork.Clock
	timer *WallClockTimer
	rest  *RestCountdown
	// pauseTicks stops tick goroutines while backgrounded.
	pauseTicks bool
	m          *metrics.Manager
	l          log.Logger

	handleMu  sync.Mutex
	mu        sync.Mutex
	state     lifted.Lifecycle
	onHandled func(lifted.Lifecycle)
}

func NewLifecycleReconciler(
	clock clockwork.Clock,
	timer *WallClockTimer,
	rest *RestCountdown,
	pauseTicks bool,
	m *metrics.Manager,
	l log.Logger,
) *LifecycleReconciler {
	return &LifecycleReconciler{
		clock:      clock,
		timer:      timer,
		rest:       rest,
		pauseTicks: pauseTicks,
		m:          m,
		l:          *l.WithPrefix("lifecycle"),
		state:      lifted.Foreground,
	}
}

// OnHandled registers the handler called after each applied transition.
func (r *LifecycleReconciler) OnHandled(handler func(lifted.Lifecycle)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onHandled = handler
}

// Handle applies a lifecycle transition. Repeated events for the current
// state are ignored.
func (r *LifecycleReconciler) Handle(l lifted.Lifecycle) {
	r.handleMu.Lock()
	defer r.handleMu.Unlock()

	r.mu.Lock()
	if l == r.state || (l != lifted.Foreground && l != lifted.Background) {
		r.mu.Unlock()
		return
	}
	r.state = l
	onHandled := r.onHandled
	r.mu.Unlock()

	r.l.Debug("lifecycle changed", "state", l)
	if r.m != nil {
		r.m.CounterReconciles.WithLabelValues(l.String()).Inc()
	}

	switch l {
	case lifted.Foreground:
		now := r.clock.Now()
		r.timer.Reconcile(now)
		r.rest.Tick(now)
		if r.pauseTicks {
			r.timer.ResumeTicks()
			r.rest.ResumeTicks()
		}
	case lifted.Background:
		if r.pauseTicks {
			r.timer.PauseTicks()
			r.rest.PauseTicks()
		}
	}

	if onHandled != nil {
		onHandled(l)
	}
}

func (r *LifecycleReconciler) State() lifted.Lifecycle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Run handles events until ctx is done or events is closed.
func (r *LifecycleReconciler) Run(ctx context.Context, events <-chan lifted.Lifecycle) {
	for {
		select {
		case <-ctx.Done():
			return
		case l, ok := <-events:
			if !ok {
				return
			}
			r.Handle(l)
		}
	}
}
