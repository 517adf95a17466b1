package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"

	lifted "github.com/benjamonnguyen/lifted-go"
	"github.com/benjamonnguyen/lifted-go/app"
)

var isProd bool

func main() {
	flag.BoolVar(&isProd, "prod", false, "load .env instead of .env.dev")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := lifted.LoadConfig(ctx, isProd)
	if err != nil {
		log.Fatal(err)
	}
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	a, err := app.New(ctx, cfg, clockwork.NewRealClock(), *log.Default())
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close() //nolint

	platform := a.Service.Platform()
	if !platform.Supported {
		log.Fatal("notifications are not configured", "platform", platform.Name)
	}

	coord := a.Coordinator(lifted.NewSessionID())
	if !coord.SendTest(ctx) {
		log.Fatal("failed to send test notification", "platform", platform.Name)
	}

	// delivery is timed in-process, so wait for it before closing
	wait := coord.Options().ImmediateDelay + time.Second
	fmt.Printf("test notification scheduled on %s, arriving in %s\n", platform.Name, coord.Options().ImmediateDelay)
	select {
	case <-time.After(wait):
	case <-ctx.Done():
	}
}
