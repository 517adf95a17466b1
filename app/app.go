// Package app builds the notification stack from configuration: the
// platform service, the handle allocator, the ledger and metrics.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	txStdLib "github.com/Thiht/transactor/stdlib"
	dg "github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
	"github.com/go-redis/redis/v8"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"

	lifted "github.com/benjamonnguyen/lifted-go"
	"github.com/benjamonnguyen/lifted-go/discordgo"
	"github.com/benjamonnguyen/lifted-go/metrics"
	"github.com/benjamonnguyen/lifted-go/notify"
	"github.com/benjamonnguyen/lifted-go/rediskv"
	"github.com/benjamonnguyen/lifted-go/sqlite"
)

const (
	RepoURL = "https://github.com/benjamonnguyen/lifted-go"
	Version = "0.1.0"

	// LedgerRetention is how long settled ledger rows are kept.
	LedgerRetention = 7 * 24 * time.Hour
)

type pruner interface {
	DeleteNotificationsBefore(context.Context, time.Time) (int64, error)
}

// App holds the long-lived collaborators shared by every session of a
// process.
type App struct {
	Config   lifted.Config
	Clock    clockwork.Clock
	Registry *prometheus.Registry
	Metrics  *metrics.Manager
	Service  lifted.NotificationService
	Ids      lifted.IdAllocator
	Ledger   lifted.NotificationLedger

	pruner  pruner
	closers []func() error
	l       log.Logger
}

// New wires the stack for cfg. Redis is preferred for handle allocation,
// then sqlite, then an in-process counter. Notifications go out as Discord
// DMs when a token is configured and are unsupported otherwise.
func New(ctx context.Context, cfg lifted.Config, clock clockwork.Clock, l log.Logger) (*App, error) {
	a := &App{
		Config:   cfg,
		Clock:    clock,
		Registry: metrics.SetupPrometheus(),
		l:        *l.WithPrefix("app"),
	}
	a.Metrics = metrics.NewManager("lifted", "app", a.Registry)

	if err := a.openStorage(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}
	if err := a.openService(); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) openStorage(ctx context.Context) error {
	cfg := a.Config
	if cfg.DatabaseURL != "" {
		a.l.Info("opening db", "url", cfg.DatabaseURL)
		db, err := sqlite.Open(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, db.Close)
		if err := db.RunMigrations(sqlite.Migrations); err != nil {
			return err
		}

		tx, dbGetter := txStdLib.NewTransactor(
			db.DB(),
			txStdLib.NestedTransactionsSavepoints,
		)
		repo := sqlite.NewNotificationRepo(dbGetter, a.Clock, a.l)
		a.Ledger = repo
		a.pruner = repo
		a.Ids = sqlite.NewIdAllocator(tx, dbGetter, a.Clock, cfg.HandleBound, a.l)
	}

	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		})
		ids := rediskv.NewIdAllocator(redisClient, cfg.HandleBound, a.l)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := ids.Ping(pingCtx); err != nil {
			a.l.Warn("redis unavailable, not using it for notification handles", "addr", cfg.RedisAddr, "err", err)
			_ = redisClient.Close()
		} else {
			a.closers = append(a.closers, redisClient.Close)
			a.Ids = ids
		}
	}

	if a.Ids == nil {
		a.Ids = notify.NewMemoryIdAllocator(cfg.HandleBound)
	}
	return nil
}

func (a *App) openService() error {
	cfg := a.Config
	if !cfg.DiscordEnabled() {
		a.Service = notify.Unsupported{}
		return nil
	}

	cl, err := dg.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create discord client: %w", err)
	}
	cl.ShouldRetryOnRateLimit = false
	cl.Client = &http.Client{Timeout: 20 * time.Second}
	cl.UserAgent = fmt.Sprintf("%s (%s, v%s)", cfg.AppName, RepoURL, Version)

	notifier := discordgo.NewNotifier(cl, cfg.DiscordUserID, a.Clock, a.l)
	a.closers = append(a.closers, func() error {
		notifier.Close()
		return nil
	})
	a.Service = notifier
	return nil
}

// Coordinator returns a coordinator for one session.
func (a *App) Coordinator(sessionID lifted.SessionID) *notify.Coordinator {
	opts := notify.OptionsFromConfig(a.Config)
	opts.SessionID = sessionID
	opts.Ledger = a.Ledger
	opts.Metrics = a.Metrics
	return notify.NewCoordinator(a.Service, a.Ids, a.Clock, opts, a.l)
}

// PruneLedger drops settled ledger rows older than LedgerRetention.
func (a *App) PruneLedger(ctx context.Context) {
	if a.pruner == nil {
		return
	}
	n, err := a.pruner.DeleteNotificationsBefore(ctx, a.Clock.Now().Add(-LedgerRetention))
	if err != nil {
		a.l.Error("failed to prune notification ledger", "err", err)
		return
	}
	if n > 0 {
		a.l.Info("pruned notification ledger", "rows", n)
	}
}

func (a *App) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{})
}

// Close releases everything New opened, last opened first.
func (a *App) Close() error {
	var err error
	for i := len(a.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, a.closers[i]())
	}
	a.closers = nil
	return err
}
