package lifted

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	// DefaultHandleBound keeps notification ids well inside the int32 range
	// accepted by Android and iOS local notification APIs.
	DefaultHandleBound = 100_000

	DefaultRestChannelID = "workout-timer"
)

type Config struct {
	DatabaseURL   string `env:"LIFTED_DB_PATH"`
	RedisAddr     string `env:"LIFTED_REDIS_ADDR"`
	DiscordToken  string `env:"LIFTED_DISCORD_TOKEN"`
	DiscordUserID string `env:"LIFTED_DISCORD_USER_ID"`
	PlanPath      string `env:"LIFTED_PLAN_PATH"`
	AppName       string `env:"LIFTED_APP_NAME, default=Lifted"`

	// logging
	LogLevel    string `env:"LIFTED_LOG_LEVEL, default=info"`
	LogPath     string `env:"LIFTED_LOG_PATH, default=lifted.log"`
	MetricsAddr string `env:"LIFTED_METRICS_ADDR"`

	// timers
	DefaultRest            time.Duration `env:"LIFTED_DEFAULT_REST, default=90s"`
	TickInterval           time.Duration `env:"LIFTED_TICK_INTERVAL, default=1s"`
	GuardThreshold         time.Duration `env:"LIFTED_GUARD_THRESHOLD, default=30s"`
	PauseTicksInBackground bool          `env:"LIFTED_PAUSE_TICKS_IN_BACKGROUND, default=true"`

	// notifications
	MinNotifyDelay  time.Duration `env:"LIFTED_MIN_NOTIFY_DELAY, default=5s"`
	ScheduleTimeout time.Duration `env:"LIFTED_SCHEDULE_TIMEOUT, default=10s"`
	HandleBound     int           `env:"LIFTED_HANDLE_BOUND, default=100000"`
}

func LoadConfig(ctx context.Context, isProd bool) (Config, error) {
	LoadEnv(isProd)

	var config Config
	if err := envconfig.Process(ctx, &config); err != nil {
		return Config{}, fmt.Errorf("failed to process environment: %w", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Validate() error {
	if c.HandleBound < 2 || c.HandleBound > math.MaxInt32 {
		return fmt.Errorf("LIFTED_HANDLE_BOUND must be in [2, 2147483647], got %d", c.HandleBound)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("LIFTED_TICK_INTERVAL must be positive, got %s", c.TickInterval)
	}
	if c.MinNotifyDelay < 0 {
		return fmt.Errorf("LIFTED_MIN_NOTIFY_DELAY must not be negative, got %s", c.MinNotifyDelay)
	}
	if c.ScheduleTimeout <= 0 {
		return fmt.Errorf("LIFTED_SCHEDULE_TIMEOUT must be positive, got %s", c.ScheduleTimeout)
	}
	if (c.DiscordToken == "") != (c.DiscordUserID == "") {
		return fmt.Errorf("LIFTED_DISCORD_TOKEN and LIFTED_DISCORD_USER_ID must be set together")
	}
	return nil
}

// DiscordEnabled reports whether rest notifications go out as Discord DMs.
func (c Config) DiscordEnabled() bool {
	return c.DiscordToken != "" && c.DiscordUserID != ""
}
