// Package notify schedules and cancels rest-complete notifications on the
// host platform. Failures never reach callers: a countdown whose
// notification could not be scheduled simply runs in-app only.
package notify

//go:generate mockgen -destination=mocks_test.go -package=notify_test github.com/benjamonnguyen/lifted-go NotificationService,IdAllocator,NotificationLedger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"

	lifted "github.com/benjamonnguyen/lifted-go"
	"github.com/benjamonnguyen/lifted-go/metrics"
)

type Strategy string

const (
	StrategyFull      Strategy = "full"
	StrategyMinimal   Strategy = "minimal"
	StrategyImmediate Strategy = "immediate"
)

var strategies = []Strategy{StrategyFull, StrategyMinimal, StrategyImmediate}

const (
	DefaultTimeout        = 10 * time.Second
	DefaultMinDelay       = 5 * time.Second
	DefaultImmediateDelay = 2 * time.Second

	maxHandleDraws = 8
)

type Options struct {
	// MinDelay raises shorter delays to itself. Some platforms drop
	// notifications scheduled only a few seconds out. Zero disables.
	MinDelay time.Duration
	// Timeout bounds the permission and schedule path of a single call.
	Timeout time.Duration
	// ImmediateDelay is how far out the last-resort strategy fires.
	ImmediateDelay time.Duration
	HandleBound    int

	SessionID lifted.SessionID
	// StartedAt bounds orphan recovery: rows created at or after it may
	// belong to another live process sharing the ledger. Defaults to the
	// coordinator's creation time.
	StartedAt time.Time
	Ledger    lifted.NotificationLedger
	Metrics   *metrics.Manager
}

func DefaultOptions() Options {
	return Options{
		MinDelay:       DefaultMinDelay,
		Timeout:        DefaultTimeout,
		ImmediateDelay: DefaultImmediateDelay,
		HandleBound:    lifted.DefaultHandleBound,
	}
}

// OptionsFromConfig carries the notification settings of cfg. Ledger,
// metrics and session id are left to the caller.
func OptionsFromConfig(cfg lifted.Config) Options {
	opts := DefaultOptions()
	opts.MinDelay = cfg.MinNotifyDelay
	opts.Timeout = cfg.ScheduleTimeout
	opts.HandleBound = cfg.HandleBound
	return opts
}

type pendingNotification struct {
	fireAt    time.Time
	strategy  Strategy
	recordID  lifted.NotificationRecordID
	confirmed bool
}

type Coordinator struct {
	svc      lifted.NotificationService
	ids      lifted.IdAllocator
	fallback *MemoryIdAllocator
	clock    clockwork.Clock
	opts     Options
	l        log.Logger

	mu           sync.Mutex
	pending      map[lifted.NotificationHandle]*pendingNotification
	channelReady bool
	channelMu    sync.Mutex
}

func NewCoordinator(
	svc lifted.NotificationService,
	ids lifted.IdAllocator,
	clock clockwork.Clock,
	opts Options,
	l log.Logger,
) *Coordinator {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.ImmediateDelay <= 0 {
		opts.ImmediateDelay = DefaultImmediateDelay
	}
	if opts.HandleBound < 2 {
		opts.HandleBound = lifted.DefaultHandleBound
	}
	if opts.StartedAt.IsZero() {
		opts.StartedAt = clock.Now()
	}
	fallback := NewMemoryIdAllocator(opts.HandleBound)
	if ids == nil {
		ids = fallback
	}
	return &Coordinator{
		svc:      svc,
		ids:      ids,
		fallback: fallback,
		clock:    clock,
		opts:     opts,
		l:        *l.WithPrefix("notify"),
		pending:  make(map[lifted.NotificationHandle]*pendingNotification),
	}
}

// Schedule asks the platform to deliver a rest-complete notification after
// delay and returns the time it is set to fire, which can be later than
// delay when the minimum delay applies. It reports false when the
// notification will not be delivered, in which case the caller relies on
// its in-app alert.
func (c *Coordinator) Schedule(ctx context.Context, delay time.Duration) (lifted.NotificationHandle, time.Time, bool) {
	start := c.clock.Now()
	defer func() {
		if c.opts.Metrics != nil {
			c.opts.Metrics.HistScheduleDuration.Observe(c.clock.Since(start).Seconds())
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	if !c.prepare(ctx) {
		return 0, time.Time{}, false
	}

	if c.opts.MinDelay > 0 && delay < c.opts.MinDelay {
		c.l.Debug("raising notification delay to minimum", "delay", delay, "minDelay", c.opts.MinDelay)
		delay = c.opts.MinDelay
	}
	fireAt := c.clock.Now().Add(delay)

	handle, ok := c.reserveHandle(ctx)
	if !ok {
		return 0, time.Time{}, false
	}

	strategy, fireAt, ok := c.scheduleWithFallback(ctx, handle, fireAt)
	if !ok {
		c.unreserve(handle)
		return 0, time.Time{}, false
	}

	c.mu.Lock()
	p := c.pending[handle]
	p.fireAt = fireAt
	p.strategy = strategy
	p.confirmed = true
	c.updatePendingGauge()
	c.mu.Unlock()

	if c.opts.Metrics != nil {
		c.opts.Metrics.CounterNotificationsScheduled.WithLabelValues(string(strategy)).Inc()
	}
	if id, ok := c.record(ctx, handle, fireAt, strategy); ok {
		c.mu.Lock()
		if p, exists := c.pending[handle]; exists {
			p.recordID = id
		}
		c.mu.Unlock()
	}

	c.l.Info("scheduled rest notification", "handle", handle, "fireAt", fireAt, "strategy", strategy)
	return handle, fireAt, true
}

// Cancel withdraws a pending notification. Handles that are not pending are
// ignored.
func (c *Coordinator) Cancel(ctx context.Context, handle lifted.NotificationHandle) {
	p, ok := c.forget(handle)
	if !ok {
		c.l.Debug("ignoring cancel of handle that is not pending", "handle", handle)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	if err := c.svc.Cancel(ctx, handle); err != nil {
		c.l.Debug("failed to cancel notification", "handle", handle, "err", err)
	} else {
		c.l.Info("cancelled rest notification", "handle", handle)
	}
	if c.opts.Metrics != nil {
		c.opts.Metrics.CounterNotificationsCancelled.Inc()
	}
	c.setStatus(ctx, p.recordID, lifted.NotificationCancelled)
}

// Release forgets a pending notification without touching the platform. It
// is used once the notification is known to have fired.
func (c *Coordinator) Release(handle lifted.NotificationHandle) {
	p, ok := c.forget(handle)
	if !ok {
		return
	}
	c.l.Debug("released rest notification", "handle", handle)

	ctx, cancel := context.WithTimeout(context.Background(), c.opts.Timeout)
	defer cancel()
	c.setStatus(ctx, p.recordID, lifted.NotificationReleased)
}

// Pending is the number of notifications scheduled and not yet cancelled or
// released.
func (c *Coordinator) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pendingCount()
}

// Options returns the effective options, defaults applied.
func (c *Coordinator) Options() Options {
	return c.opts
}

// SendTest fires a short-delay notification so the user can confirm
// delivery works. It is not tracked as pending.
func (c *Coordinator) SendTest(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	if !c.prepare(ctx) {
		return false
	}
	handle, ok := c.reserveHandle(ctx)
	if !ok {
		return false
	}
	defer c.unreserve(handle)

	n := lifted.Notification{
		Handle:    handle,
		FireAt:    c.clock.Now().Add(c.opts.ImmediateDelay),
		Title:     lifted.TestNotificationTitle,
		Body:      "This is a test notification from the workout timer.",
		LargeBody: "If you can see this, rest notifications are working.",
		Summary:   lifted.RestCompleteSummary,
	}
	if c.svc.Platform().RequiresChannel {
		n.ChannelID = lifted.DefaultRestChannelID
	}
	if err := c.svc.ScheduleAt(ctx, n); err != nil {
		c.l.Error("failed to send test notification", "err", err)
		return false
	}
	c.l.Info("sent test notification", "handle", handle, "fireAt", n.FireAt)
	return true
}

// RecoverOrphans settles ledger rows left in the scheduled state by a process
// that ran before this one. Rows whose fire time has passed are marked
// released, the rest are cancelled on the platform. Rows created after
// Options.StartedAt are left alone.
func (c *Coordinator) RecoverOrphans(ctx context.Context) {
	if c.opts.Ledger == nil {
		return
	}
	records, err := c.opts.Ledger.GetNotificationsByStatus(ctx, lifted.NotificationScheduled)
	if err != nil {
		c.l.Error("failed to load scheduled notifications", "err", err)
		return
	}

	now := c.clock.Now()
	// ledger timestamps have second precision
	cutoff := c.opts.StartedAt.Truncate(time.Second)
	for _, r := range records {
		if c.opts.SessionID != "" && r.SessionID == c.opts.SessionID {
			continue
		}
		if !r.CreatedAt.Before(cutoff) {
			c.l.Debug("skipping notification from a newer process", "handle", r.Handle, "session", r.SessionID)
			continue
		}
		status := lifted.NotificationReleased
		if r.FireAt.After(now) {
			status = lifted.NotificationCancelled
			if err := c.svc.Cancel(ctx, r.Handle); err != nil {
				c.l.Debug("failed to cancel orphaned notification", "handle", r.Handle, "err", err)
			}
		}
		c.setStatus(ctx, r.ID, status)
		c.l.Info("recovered orphaned notification", "handle", r.Handle, "session", r.SessionID, "status", status)
	}
}

// prepare checks platform capability, permission and the notification
// channel.
func (c *Coordinator) prepare(ctx context.Context) bool {
	platform := c.svc.Platform()
	if !platform.Supported {
		c.l.Debug("notifications unsupported", "platform", platform.Name)
		return false
	}

	if !c.ensurePermission(ctx) {
		if c.opts.Metrics != nil {
			c.opts.Metrics.CounterPermissionDenied.Inc()
		}
		return false
	}

	if platform.RequiresChannel {
		if err := c.ensureChannel(ctx); err != nil {
			c.l.Warn("failed to create notification channel", "err", err)
		}
	}
	return true
}

func (c *Coordinator) ensurePermission(ctx context.Context) bool {
	perm, err := c.svc.CheckPermission(ctx)
	if err != nil {
		c.l.Warn("failed to check notification permission", "err", err)
	}
	if perm == lifted.PermissionGranted {
		return true
	}

	perm, err = c.svc.RequestPermission(ctx)
	if err != nil {
		c.l.Warn("failed to request notification permission", "err", err)
		return false
	}
	if perm != lifted.PermissionGranted {
		c.l.Info("notification permission not granted", "permission", perm)
		return false
	}
	return true
}

func (c *Coordinator) ensureChannel(ctx context.Context) error {
	c.channelMu.Lock()
	defer c.channelMu.Unlock()
	if c.channelReady {
		return nil
	}

	if err := c.svc.EnsureChannel(ctx, lifted.RestChannel()); err != nil {
		c.l.Warn("full notification channel rejected, trying minimal", "err", err)
		if err := c.svc.EnsureChannel(ctx, lifted.MinimalRestChannel()); err != nil {
			return fmt.Errorf("failed to create minimal channel: %w", err)
		}
	}
	c.channelReady = true
	return nil
}

// reserveHandle draws a handle that is not currently pending and reserves
// it. Allocator errors switch to the in-process counter.
func (c *Coordinator) reserveHandle(ctx context.Context) (lifted.NotificationHandle, bool) {
	ids := c.ids
	for range maxHandleDraws {
		handle, err := ids.Next(ctx)
		if err != nil {
			c.l.Warn("id allocator failed, using in-process ids", "err", err)
			ids = c.fallback
			continue
		}

		c.mu.Lock()
		if _, taken := c.pending[handle]; !taken {
			c.pending[handle] = &pendingNotification{}
			c.mu.Unlock()
			return handle, true
		}
		c.mu.Unlock()
		c.l.Debug("handle already pending, drawing again", "handle", handle)
	}
	c.l.Error("failed to allocate notification handle", "draws", maxHandleDraws)
	return 0, false
}

func (c *Coordinator) unreserve(handle lifted.NotificationHandle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.pending[handle]; ok && !p.confirmed {
		delete(c.pending, handle)
	}
}

func (c *Coordinator) forget(handle lifted.NotificationHandle) (pendingNotification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.pending[handle]
	if !ok || !p.confirmed {
		return pendingNotification{}, false
	}
	delete(c.pending, handle)
	c.updatePendingGauge()
	return *p, true
}

// scheduleWithFallback tries each strategy in order; the first success
// wins. The returned time is when the accepted notification fires.
func (c *Coordinator) scheduleWithFallback(ctx context.Context, handle lifted.NotificationHandle, fireAt time.Time) (Strategy, time.Time, bool) {
	requiresChannel := c.svc.Platform().RequiresChannel
	for _, s := range strategies {
		n := c.build(s, handle, fireAt, requiresChannel)
		err := c.svc.ScheduleAt(ctx, n)
		if err == nil {
			return s, n.FireAt, true
		}

		c.l.Warn("failed to schedule notification", "strategy", s, "handle", handle, "err", err)
		if c.opts.Metrics != nil {
			c.opts.Metrics.CounterScheduleFailures.WithLabelValues(string(s)).Inc()
		}
		if ctx.Err() != nil {
			break
		}
	}
	c.l.Error("all notification strategies failed", "handle", handle)
	return "", time.Time{}, false
}

func (c *Coordinator) build(s Strategy, handle lifted.NotificationHandle, fireAt time.Time, requiresChannel bool) lifted.Notification {
	n := lifted.Notification{
		Handle: handle,
		FireAt: fireAt,
		Title:  lifted.RestCompleteTitle,
		Body:   lifted.RandomRestMessage(),
	}
	switch s {
	case StrategyFull:
		n.LargeBody = lifted.RestCompleteLargeBody
		n.Summary = lifted.RestCompleteSummary
		n.AllowWhileIdle = true
		if requiresChannel {
			n.ChannelID = lifted.DefaultRestChannelID
		}
	case StrategyImmediate:
		n.FireAt = c.clock.Now().Add(c.opts.ImmediateDelay)
	}
	return n
}

func (c *Coordinator) record(ctx context.Context, handle lifted.NotificationHandle, fireAt time.Time, s Strategy) (lifted.NotificationRecordID, bool) {
	if c.opts.Ledger == nil {
		return "", false
	}
	r, err := c.opts.Ledger.InsertNotification(ctx, lifted.NotificationRecord{
		SessionID: c.opts.SessionID,
		Handle:    handle,
		FireAt:    fireAt,
		Strategy:  string(s),
		Status:    lifted.NotificationScheduled,
	})
	if err != nil {
		c.l.Warn("failed to record notification", "handle", handle, "err", err)
		return "", false
	}
	return r.ID, true
}

func (c *Coordinator) setStatus(ctx context.Context, id lifted.NotificationRecordID, status lifted.NotificationStatus) {
	if c.opts.Ledger == nil || id == "" {
		return
	}
	if _, err := c.opts.Ledger.UpdateNotificationStatus(ctx, id, status); err != nil {
		c.l.Warn("failed to update notification record", "id", id, "status", status, "err", err)
	}
}

// caller holds c.mu
func (c *Coordinator) pendingCount() int {
	var n int
	for _, p := range c.pending {
		if p.confirmed {
			n++
		}
	}
	return n
}

// caller holds c.mu
func (c *Coordinator) updatePendingGauge() {
	if c.opts.Metrics != nil {
		c.opts.Metrics.GaugePendingNotifications.Set(float64(c.pendingCount()))
	}
}
