package workout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"

	lifted "github.com/benjamonnguyen/lifted-go"
	"github.com/benjamonnguyen/lifted-go/metrics"
	"github.com/benjamonnguyen/lifted-go/models"
)

const DefaultGuardThreshold = 30 * time.Second

// notifySlack is how far a notification may fire from the countdown's end
// and still stand in for the in-app alert.
const notifySlack = time.Second

type CompletionReason uint8

const (
	_ CompletionReason = iota
	ReasonExpired
	ReasonSkipped
	// ReasonSuperseded ends a countdown replaced by a new Begin.
	ReasonSuperseded
	// ReasonEnded ends a countdown torn down with its session. No
	// completion event is emitted for it.
	ReasonEnded
)

func (r CompletionReason) String() string {
	switch r {
	case ReasonExpired:
		return "expired"
	case ReasonSkipped:
		return "skipped"
	case ReasonSuperseded:
		return "superseded"
	case ReasonEnded:
		return "ended"
	default:
		return fmt.Sprintf("CompletionReason(%d)", uint8(r))
	}
}

type CompletionEvent struct {
	Reason   CompletionReason
	Duration time.Duration
	// Notified is true when the countdown expired with a platform
	// notification scheduled to fire at its end, so the in-app alert may be
	// redundant. It does not confirm delivery.
	Notified bool
}

// NotificationCoordinator is the part of notify.Coordinator a countdown uses.
type NotificationCoordinator interface {
	Schedule(ctx context.Context, delay time.Duration) (handle lifted.NotificationHandle, fireAt time.Time, ok bool)
	Cancel(ctx context.Context, handle lifted.NotificationHandle)
	Release(handle lifted.NotificationHandle)
}

type RestOptions struct {
	TickInterval time.Duration
	// GuardThreshold is the shortest countdown that holds the background
	// execution guard.
	GuardThreshold time.Duration
	Guard          lifted.BackgroundExecutionGuard
	Metrics        *metrics.Manager
}

// RestCountdown runs one rest period at a time and schedules a platform
// notification for its end.
//
// Each Begin starts a new generation. A schedule call that resolves after
// its generation ended cancels the handle it got. Schedule, cancel and
// release calls run one after another in the order they were issued, so at
// most one notification is pending at any instant.
type RestCountdown struct {
	clock clockwork.Clock
	coord NotificationCoordinator
	ctx   context.Context
	opts  RestOptions
	l     log.Logger

	mu         sync.Mutex
	state      models.RestState
	gen        uint64
	guarded    bool
	loop       tickLoop
	paused     bool
	closed     bool
	lastOp     chan struct{}
	onComplete func(CompletionEvent)
	onTick     func(remainingSeconds int)

	wg sync.WaitGroup
}

func NewRestCountdown(ctx context.Context, clock clockwork.Clock, coord NotificationCoordinator, opts RestOptions, l log.Logger) *RestCountdown {
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	if opts.Guard == nil {
		opts.Guard = NoopGuard{}
	}
	r := &RestCountdown{
		clock: clock,
		coord: coord,
		ctx:   ctx,
		opts:  opts,
		l:     *l.WithPrefix("rest"),
	}
	r.loop = tickLoop{clock: clock, interval: opts.TickInterval, wg: &r.wg}
	return r
}

// OnComplete registers the handler called once per countdown that expires,
// is skipped, or is superseded. It runs outside the countdown's lock.
func (r *RestCountdown) OnComplete(handler func(CompletionEvent)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onComplete = handler
}

// OnTick registers the handler called with the remaining seconds on every
// tick of a running countdown.
func (r *RestCountdown) OnTick(handler func(remainingSeconds int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onTick = handler
}

// Begin starts a countdown of d. A running countdown is superseded. A
// non-positive d is ignored.
func (r *RestCountdown) Begin(d time.Duration) {
	now := r.clock.Now()

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	if d <= 0 {
		r.mu.Unlock()
		r.l.Debug("ignoring rest with non-positive duration", "duration", d)
		return
	}

	var superseded *CompletionEvent
	if r.state.Active() {
		ev := r.endLocked(ReasonSuperseded, true)
		superseded = &ev
	}

	r.state = models.NewRestState(d, now)
	r.gen++
	gen := r.gen
	if d > r.opts.GuardThreshold {
		r.opts.Guard.Acquire()
		r.guarded = true
	}
	if !r.paused {
		r.loop.start(r.ctx, r.tick)
	}

	r.enqueueLocked(func() {
		r.schedule(gen)
	})
	onComplete := r.onComplete
	r.mu.Unlock()

	r.l.Info("rest started", "duration", d, "generation", gen)
	if superseded != nil {
		r.emit(onComplete, *superseded)
	}
}

// Tick recomputes the countdown from now and expires it once it has run
// out.
func (r *RestCountdown) Tick(now time.Time) {
	r.mu.Lock()
	if !r.state.Active() {
		r.mu.Unlock()
		return
	}

	if !r.state.ExpiredAt(now) {
		secs := r.state.RemainingSeconds(now).Get()
		onTick := r.onTick
		r.mu.Unlock()
		if onTick != nil {
			onTick(secs)
		}
		return
	}

	ev := r.endLocked(ReasonExpired, false)
	onComplete, onTick := r.onComplete, r.onTick
	r.mu.Unlock()

	if onTick != nil {
		onTick(0)
	}
	r.emit(onComplete, ev)
}

// Skip ends a running countdown early and cancels its notification.
func (r *RestCountdown) Skip() {
	r.mu.Lock()
	if !r.state.Active() {
		r.mu.Unlock()
		r.l.Warn("skip called with no rest running")
		return
	}
	ev := r.endLocked(ReasonSkipped, true)
	onComplete := r.onComplete
	r.mu.Unlock()

	r.emit(onComplete, ev)
}

// Remaining reports the whole seconds left, rounded up. ok is false while
// idle.
func (r *RestCountdown) Remaining() (secs int, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rem := r.state.RemainingSeconds(r.clock.Now())
	return rem.Get(), !rem.IsEmpty()
}

// Fraction is the share of the running countdown still remaining.
func (r *RestCountdown) Fraction() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.Fraction(r.clock.Now())
}

func (r *RestCountdown) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.Active()
}

func (r *RestCountdown) PauseTicks() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paused = true
	r.loop.stop()
}

func (r *RestCountdown) ResumeTicks() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paused = false
	if r.state.Active() && !r.closed {
		r.loop.start(r.ctx, r.tick)
	}
}

// Close ends any running countdown without a completion event and waits for
// tick and schedule goroutines to finish.
func (r *RestCountdown) Close() {
	r.mu.Lock()
	r.closed = true
	if r.state.Active() {
		r.endLocked(ReasonEnded, true)
	}
	r.loop.stop()
	r.mu.Unlock()

	r.wg.Wait()
}

// endLocked returns the countdown to idle. With cancel set the pending
// notification is withdrawn, otherwise it is assumed delivered and only
// forgotten. Caller holds r.mu.
func (r *RestCountdown) endLocked(reason CompletionReason, cancel bool) CompletionEvent {
	d := r.state.Duration()
	onTime := r.state.NotifiesAtEnd(notifySlack)
	handle := r.state.Clear()
	r.gen++
	r.loop.stop()
	if r.guarded {
		r.opts.Guard.Release()
		r.guarded = false
	}

	if !handle.IsEmpty() {
		h := handle.Get()
		if cancel {
			r.enqueueLocked(func() {
				r.coord.Cancel(context.WithoutCancel(r.ctx), h)
			})
		} else {
			r.enqueueLocked(func() {
				r.coord.Release(h)
			})
		}
	}

	notified := onTime && !cancel
	r.l.Info("rest ended", "reason", reason, "duration", d, "notified", notified)
	if r.opts.Metrics != nil {
		r.opts.Metrics.CounterRestCompleted.WithLabelValues(reason.String()).Inc()
	}
	return CompletionEvent{
		Reason:   reason,
		Duration: d,
		Notified: notified,
	}
}

// enqueueLocked runs fn once every previously enqueued call has returned.
// Caller holds r.mu.
func (r *RestCountdown) enqueueLocked(fn func()) {
	prev := r.lastOp
	done := make(chan struct{})
	r.lastOp = done
	r.wg.Go(func() {
		defer close(done)
		if prev != nil {
			<-prev
		}
		fn()
	})
}

// schedule asks the coordinator for a notification at the end of generation
// gen, if that generation is still running.
func (r *RestCountdown) schedule(gen uint64) {
	r.mu.Lock()
	if r.gen != gen {
		r.mu.Unlock()
		return
	}
	delay := r.state.RemainingAt(r.clock.Now())
	r.mu.Unlock()
	if delay <= 0 {
		return
	}

	handle, fireAt, ok := r.coord.Schedule(r.ctx, delay)
	if !ok {
		r.l.Info("rest notification not scheduled, alerting in-app only", "generation", gen)
		return
	}

	r.mu.Lock()
	if r.gen == gen && r.state.AttachHandle(handle, fireAt) {
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()

	r.l.Debug("cancelling notification of ended rest", "handle", handle, "generation", gen)
	r.coord.Cancel(context.WithoutCancel(r.ctx), handle)
}

func (r *RestCountdown) tick() {
	r.Tick(r.clock.Now())
}

func (r *RestCountdown) emit(handler func(CompletionEvent), ev CompletionEvent) {
	if handler != nil {
		handler(ev)
	}
}
