package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
	"go.uber.org/multierr"
	"gopkg.in/natefinch/lumberjack.v2"

	lifted "github.com/benjamonnguyen/lifted-go"
	"github.com/benjamonnguyen/lifted-go/app"
	"github.com/benjamonnguyen/lifted-go/workout"
)

func main() {
	var isProd bool
	var planPath string
	var sets int
	flag.BoolVar(&isProd, "prod", false, "load .env instead of .env.dev")
	flag.StringVar(&planPath, "plan", "", "workout plan TOML file, overrides LIFTED_PLAN_PATH")
	flag.IntVar(&sets, "sets", 5, "number of sets when no plan file is given")
	flag.Parse()

	topCtx, topCtxC := context.WithCancel(context.Background())
	defer topCtxC()

	// config
	cfg, err := lifted.LoadConfig(topCtx, isProd)
	if err != nil {
		log.Fatal(err)
	}
	if planPath == "" {
		planPath = cfg.PlanPath
	}

	// logger; the terminal belongs to the TUI
	logFile := &lumberjack.Logger{
		Filename:   cfg.LogPath,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		Compress:   true,
	}
	defer logFile.Close() //nolint
	log.SetOutput(logFile)
	log.SetReportCaller(true)
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn("unknown log level, using info", "level", cfg.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)
	logger := *log.Default()

	// plan
	plan := lifted.QuickPlan(cfg.DefaultRest, sets)
	if planPath != "" {
		if plan, err = lifted.LoadWorkoutPlan(planPath); err != nil {
			exit(err)
		}
	}

	// notification stack
	initTimeout, initTimeoutC := context.WithTimeout(topCtx, 10*time.Second)
	clock := clockwork.NewRealClock()
	a, err := app.New(initTimeout, cfg, clock, logger)
	if err != nil {
		initTimeoutC()
		exit(err)
	}
	a.PruneLedger(initTimeout)

	sessionID := lifted.NewSessionID()
	coord := a.Coordinator(sessionID)
	coord.RecoverOrphans(initTimeout)
	initTimeoutC()

	opts := workout.SessionOptionsFromConfig(cfg)
	opts.ID = sessionID
	opts.Guard = workout.NewMeteredGuard(a.Metrics, logger)
	opts.Metrics = a.Metrics
	session := workout.NewSession(topCtx, clock, coord, plan, opts, logger)

	// metrics
	var metricsServer *http.Server
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", a.MetricsHandler())
		metricsServer = &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			log.Info("metrics listening", "addr", cfg.MetricsAddr)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server failed", "err", err)
			}
		}()
	}

	// tui
	lifecycle := make(chan lifted.Lifecycle, 4)
	p := tea.NewProgram(
		newModel(topCtx, session, plan.Name, lifecycle, ringBell),
		tea.WithReportFocus(),
	)
	session.OnChange(func(s workout.Snapshot) {
		go p.Send(snapshotMsg(s))
	})
	session.OnRestComplete(func(ev workout.CompletionEvent) {
		go p.Send(restCompleteMsg(ev))
	})

	var wg sync.WaitGroup
	wg.Go(func() {
		session.RunLifecycle(topCtx, lifecycle)
	})
	wg.Go(func() {
		sc := make(chan os.Signal, 1)
		signal.Notify(sc, syscall.SIGTERM)
		defer signal.Stop(sc)
		select {
		case <-sc:
			log.Info("terminating")
			p.Quit()
		case <-topCtx.Done():
		}
	})

	log.Info("session started", "session", sessionID, "plan", plan.Name, "notifications", a.Service.Platform().Name)
	session.Start()
	_, runErr := p.Run()

	// graceful shutdown
	topCtxC()
	wg.Wait()
	session.Close()
	shutdownTimeout, shutdownTimeoutC := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownTimeoutC()
	err = runErr
	if metricsServer != nil {
		err = multierr.Append(err, metricsServer.Shutdown(shutdownTimeout))
	}
	err = multierr.Append(err, a.Close())
	if err != nil {
		exit(err)
	}
}

func ringBell() {
	_, _ = fmt.Fprint(os.Stderr, "\a")
}

func exit(err error) {
	log.Error(err)
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
