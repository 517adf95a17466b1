package workout

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"

	lifted "github.com/benjamonnguyen/lifted-go"
)

var (
	t0        = time.Date(2025, 3, 1, 7, 30, 0, 0, time.UTC)
	nopLogger = *log.New(io.Discard)
	// long enough that tick goroutines never fire within a test
	quietTicks = time.Hour
)

// fakeCoordinator tracks outstanding notifications as schedules minus
// cancels and releases.
type fakeCoordinator struct {
	clock      clockwork.Clock
	mu         sync.Mutex
	entered    int
	next       lifted.NotificationHandle
	pending    map[lifted.NotificationHandle]bool
	maxPending int
	delays     []time.Duration
	scheduled  []lifted.NotificationHandle
	cancelled  []lifted.NotificationHandle
	released   []lifted.NotificationHandle

	// deny makes every schedule fail, as when permission is denied
	deny bool
	// minDelay raises shorter delays to itself, as the real coordinator
	// does for platforms that drop near-term notifications
	minDelay time.Duration
	// gate, when set, holds each schedule until a value is received or the
	// channel is closed
	gate chan struct{}
}

var _ NotificationCoordinator = (*fakeCoordinator)(nil)

func newFakeCoordinator(clock clockwork.Clock) *fakeCoordinator {
	return &fakeCoordinator{clock: clock, pending: make(map[lifted.NotificationHandle]bool)}
}

func (f *fakeCoordinator) Schedule(ctx context.Context, delay time.Duration) (lifted.NotificationHandle, time.Time, bool) {
	f.mu.Lock()
	f.entered++
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return 0, time.Time{}, false
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.delays = append(f.delays, delay)
	if f.deny {
		return 0, time.Time{}, false
	}
	f.next++
	f.pending[f.next] = true
	f.scheduled = append(f.scheduled, f.next)
	f.maxPending = max(f.maxPending, len(f.pending))
	return f.next, f.clock.Now().Add(max(delay, f.minDelay)), true
}

func (f *fakeCoordinator) Cancel(_ context.Context, h lifted.NotificationHandle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled = append(f.cancelled, h)
	delete(f.pending, h)
}

func (f *fakeCoordinator) Release(h lifted.NotificationHandle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released = append(f.released, h)
	delete(f.pending, h)
}

func (f *fakeCoordinator) enteredCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entered
}

func (f *fakeCoordinator) pendingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

func (f *fakeCoordinator) snapshot() (scheduled, cancelled, released []lifted.NotificationHandle, maxPending int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]lifted.NotificationHandle(nil), f.scheduled...),
		append([]lifted.NotificationHandle(nil), f.cancelled...),
		append([]lifted.NotificationHandle(nil), f.released...),
		f.maxPending
}

// countingGuard records acquisitions and releases.
type countingGuard struct {
	mu       sync.Mutex
	acquired int
	released int
}

func (g *countingGuard) Acquire() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.acquired++
}

func (g *countingGuard) Release() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.released++
}

func (g *countingGuard) counts() (acquired, released int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.acquired, g.released
}

// eventRecorder collects completion events.
type eventRecorder struct {
	mu     sync.Mutex
	events []CompletionEvent
}

func (r *eventRecorder) record(ev CompletionEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *eventRecorder) all() []CompletionEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]CompletionEvent(nil), r.events...)
}
