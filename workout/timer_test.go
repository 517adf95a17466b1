package workout

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTimer(t *testing.T, clock clockwork.Clock, tick time.Duration) *WallClockTimer {
	t.Helper()
	timer := NewWallClockTimer(context.Background(), clock, tick, nopLogger)
	t.Cleanup(timer.Close)
	return timer
}

func TestWallClockTimer_ReconcileIsAssociative(t *testing.T) {
	clock := clockwork.NewFakeClockAt(t0)
	reconciled := newTestTimer(t, clock, quietTicks)
	untouched := newTestTimer(t, clock, quietTicks)

	reconciled.Start()
	untouched.Start()
	steps := []time.Duration{
		300 * time.Millisecond, 2 * time.Second, 700 * time.Millisecond,
		41 * time.Second, 10 * time.Millisecond, 5 * time.Minute,
	}
	for _, d := range steps {
		clock.Advance(d)
		reconciled.Reconcile(clock.Now())
		reconciled.Reconcile(clock.Now())
	}
	reconciled.Stop()
	untouched.Stop()

	assert.Equal(t, untouched.ElapsedSeconds(), reconciled.ElapsedSeconds())
	assert.Equal(t, 344, reconciled.ElapsedSeconds())
}

func TestWallClockTimer_StartStop(t *testing.T) {
	clock := clockwork.NewFakeClockAt(t0)
	timer := newTestTimer(t, clock, quietTicks)

	timer.Start()
	clock.Advance(10 * time.Second)
	timer.Start()
	assert.Equal(t, 10, timer.ElapsedSeconds(), "second start keeps the running segment")

	timer.Stop()
	timer.Stop()
	clock.Advance(100 * time.Second)
	assert.False(t, timer.Running())
	assert.Equal(t, 10, timer.ElapsedSeconds(), "stopped time is not counted")

	assert.True(t, timer.Toggle())
	clock.Advance(5 * time.Second)
	assert.Equal(t, 15, timer.ElapsedSeconds())
	assert.False(t, timer.Toggle())
	assert.Equal(t, 15, timer.ElapsedSeconds())
}

func TestWallClockTimer_BackwardsClock(t *testing.T) {
	clock := clockwork.NewFakeClockAt(t0)
	timer := newTestTimer(t, clock, quietTicks)

	timer.Start()
	clock.Advance(30 * time.Second)
	timer.Reconcile(clock.Now())
	timer.Reconcile(clock.Now().Add(-time.Hour))
	timer.Stop()

	assert.Equal(t, 30, timer.ElapsedSeconds())
}

func TestWallClockTimer_BackwardsReadingNotDoubleCounted(t *testing.T) {
	clock := clockwork.NewFakeClockAt(t0)
	timer := newTestTimer(t, clock, quietTicks)

	timer.Start()
	clock.Advance(30 * time.Second)
	timer.Reconcile(clock.Now().Add(-time.Hour))
	timer.Reconcile(clock.Now())
	assert.Equal(t, 30, timer.ElapsedSeconds())

	clock.Advance(10 * time.Second)
	timer.Stop()
	assert.Equal(t, 40, timer.ElapsedSeconds())
}

func TestWallClockTimer_Ticks(t *testing.T) {
	clock := clockwork.NewFakeClockAt(t0)
	timer := newTestTimer(t, clock, time.Second)
	ticks := make(chan int, 4)
	timer.OnTick(func(secs int) { ticks <- secs })

	timer.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(time.Second)
	assert.Equal(t, 1, <-ticks)

	timer.PauseTicks()
	clock.Advance(5 * time.Second)
	assert.Equal(t, 6, timer.ElapsedSeconds(), "paused ticks do not pause the timer")
	assert.True(t, timer.Running())

	timer.ResumeTicks()
	timer.Stop()
	assert.Equal(t, 6, timer.ElapsedSeconds())
}

func TestWallClockTimer_Close(t *testing.T) {
	clock := clockwork.NewFakeClockAt(t0)
	timer := NewWallClockTimer(context.Background(), clock, time.Second, nopLogger)

	timer.Start()
	clock.Advance(3 * time.Second)
	timer.Close()

	assert.False(t, timer.Running())
	assert.Equal(t, 3, timer.ElapsedSeconds())
	timer.Start()
	assert.False(t, timer.Running(), "closed timers do not restart")
}
