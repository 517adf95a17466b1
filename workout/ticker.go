package workout

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

const DefaultTickInterval = time.Second

// tickLoop owns at most one ticking goroutine. start and stop are called
// with the owner's lock held; fn must take that lock itself. A tick that was
// already in flight when stop ran may still call fn once, so fn recomputes
// from wall time and tolerates idle state.
type tickLoop struct {
	clock    clockwork.Clock
	interval time.Duration
	wg       *sync.WaitGroup
	cancel   context.CancelFunc
}

func (t *tickLoop) running() bool {
	return t.cancel != nil
}

func (t *tickLoop) start(parent context.Context, fn func()) {
	if t.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(parent)
	t.cancel = cancel

	t.wg.Go(func() {
		ticker := t.clock.NewTicker(t.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.Chan():
				fn()
			}
		}
	})
}

func (t *tickLoop) stop() {
	if t.cancel == nil {
		return
	}
	t.cancel()
	t.cancel = nil
}
