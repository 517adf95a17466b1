package workout

import (
	"sync/atomic"

	"github.com/charmbracelet/log"

	lifted "github.com/benjamonnguyen/lifted-go"
	"github.com/benjamonnguyen/lifted-go/metrics"
)

// NoopGuard is used on hosts that never suspend a backgrounded process.
type NoopGuard struct{}

var _ lifted.BackgroundExecutionGuard = NoopGuard{}

func (NoopGuard) Acquire() {}
func (NoopGuard) Release() {}

// MeteredGuard counts held guards and reports them as a gauge.
type MeteredGuard struct {
	held atomic.Int64
	m    *metrics.Manager
	l    log.Logger
}

var _ lifted.BackgroundExecutionGuard = (*MeteredGuard)(nil)

func NewMeteredGuard(m *metrics.Manager, l log.Logger) *MeteredGuard {
	return &MeteredGuard{m: m, l: *l.WithPrefix("guard")}
}

func (g *MeteredGuard) Acquire() {
	n := g.held.Add(1)
	g.l.Debug("background execution guard acquired", "held", n)
	g.report(n)
}

func (g *MeteredGuard) Release() {
	n := g.held.Add(-1)
	if n < 0 {
		g.l.Error("background execution guard released more often than acquired", "held", n)
	}
	g.l.Debug("background execution guard released", "held", n)
	g.report(n)
}

func (g *MeteredGuard) Held() int64 {
	return g.held.Load()
}

func (g *MeteredGuard) report(n int64) {
	if g.m != nil {
		g.m.GaugeBackgroundGuards.Set(float64(n))
	}
}
