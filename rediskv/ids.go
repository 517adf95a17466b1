// Package rediskv keeps notification handle counters in Redis.
package rediskv

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/go-redis/redis/v8"

	lifted "github.com/benjamonnguyen/lifted-go"
)

const counterKey = "lifted:notification_handle"

type IdAllocator struct {
	redisClient *redis.Client
	key         string
	bound       int
	l           log.Logger
}

var _ lifted.IdAllocator = (*IdAllocator)(nil)

// NewIdAllocator returns an allocator on INCR of the shared handle counter.
// Every process pointed at the same Redis draws from one sequence.
func NewIdAllocator(redisClient *redis.Client, bound int, l log.Logger) *IdAllocator {
	if bound < 2 {
		bound = lifted.DefaultHandleBound
	}
	return &IdAllocator{
		redisClient: redisClient,
		key:         counterKey,
		bound:       bound,
		l:           *l.WithPrefix("rediskv"),
	}
}

func (a *IdAllocator) Next(ctx context.Context) (lifted.NotificationHandle, error) {
	n, err := a.redisClient.Incr(ctx, a.key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment %s: %w", a.key, err)
	}
	h := lifted.WrapHandle(n, a.bound)
	a.l.Debug("allocated handle", "counter", n, "handle", h)
	return h, nil
}

// Ping checks the connection, so callers can fall back before the first
// rest starts.
func (a *IdAllocator) Ping(ctx context.Context) error {
	return a.redisClient.Ping(ctx).Err()
}
