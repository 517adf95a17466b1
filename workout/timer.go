package workout

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"

	"github.com/benjamonnguyen/lifted-go/models"
)

// WallClockTimer measures total workout time. Elapsed time comes from clock
// readings, never from counting ticks; ticks only refresh the display.
type WallClockTimer struct {
	clock clockwork.Clock
	ctx   context.Context
	l     log.Logger

	mu     sync.Mutex
	state  models.TimerState
	loop   tickLoop
	paused bool
	closed bool
	onTick func(elapsedSeconds int)

	wg sync.WaitGroup
}

func NewWallClockTimer(ctx context.Context, clock clockwork.Clock, tickInterval time.Duration, l log.Logger) *WallClockTimer {
	if tickInterval <= 0 {
		tickInterval = DefaultTickInterval
	}
	t := &WallClockTimer{
		clock: clock,
		ctx:   ctx,
		l:     *l.WithPrefix("timer"),
	}
	t.loop = tickLoop{clock: clock, interval: tickInterval, wg: &t.wg}
	return t
}

// OnTick registers the handler called with the elapsed seconds on every tick.
// Register before Start.
func (t *WallClockTimer) OnTick(handler func(elapsedSeconds int)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onTick = handler
}

func (t *WallClockTimer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.startLocked()
}

func (t *WallClockTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

// Toggle starts a stopped timer and stops a running one. It reports whether
// the timer is running afterwards.
func (t *WallClockTimer) Toggle() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.Running() {
		t.stopLocked()
	} else {
		t.startLocked()
	}
	return t.state.Running()
}

func (t *WallClockTimer) startLocked() {
	if t.closed || !t.state.Start(t.clock.Now()) {
		return
	}
	if !t.paused {
		t.loop.start(t.ctx, t.tick)
	}
	t.l.Debug("started")
}

func (t *WallClockTimer) stopLocked() {
	if !t.state.Stop(t.clock.Now()) {
		return
	}
	t.loop.stop()
	t.l.Debug("stopped", "elapsed", t.state.Elapsed())
}

// Reconcile folds the time since the last reading into the elapsed total.
// Calling it any number of times at any points yields the same total.
func (t *WallClockTimer) Reconcile(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.Reconcile(now)
}

func (t *WallClockTimer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Running()
}

// ElapsedSeconds includes the running segment up to now.
func (t *WallClockTimer) ElapsedSeconds() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return int(t.state.ElapsedAt(t.clock.Now()) / time.Second)
}

// PauseTicks stops display refreshes without touching the measured time.
func (t *WallClockTimer) PauseTicks() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.paused = true
	t.loop.stop()
}

func (t *WallClockTimer) ResumeTicks() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.paused = false
	if t.state.Running() && !t.closed {
		t.loop.start(t.ctx, t.tick)
	}
}

// Close stops the timer and waits for its tick goroutine to exit.
func (t *WallClockTimer) Close() {
	t.mu.Lock()
	t.closed = true
	t.state.Stop(t.clock.Now())
	t.loop.stop()
	t.mu.Unlock()

	t.wg.Wait()
}

func (t *WallClockTimer) tick() {
	t.mu.Lock()
	if !t.state.Running() {
		t.mu.Unlock()
		return
	}
	t.state.Reconcile(t.clock.Now())
	secs := t.state.ElapsedSeconds()
	onTick := t.onTick
	t.mu.Unlock()

	if onTick != nil {
		onTick(secs)
	}
}
