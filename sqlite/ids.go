package sqlite

import (
	"context"
	"fmt"

	"github.com/Thiht/transactor"
	txStdLib "github.com/Thiht/transactor/stdlib"
	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"

	lifted "github.com/benjamonnguyen/lifted-go"
)

const notificationCounter = "notification_handle"

// idAllocator draws notification handles from a counter row, so handles
// keep advancing across restarts instead of reusing ids the platform may
// still hold.
type idAllocator struct {
	dbGetter txStdLib.DBGetter
	tx       transactor.Transactor
	clock    clockwork.Clock
	bound    int
	l        log.Logger
}

var _ lifted.IdAllocator = (*idAllocator)(nil)

func NewIdAllocator(tx transactor.Transactor, dbGetter txStdLib.DBGetter, clock clockwork.Clock, bound int, logger log.Logger) *idAllocator {
	if bound < 2 {
		bound = lifted.DefaultHandleBound
	}
	return &idAllocator{
		dbGetter: dbGetter,
		tx:       tx,
		clock:    clock,
		bound:    bound,
		l:        logger,
	}
}

func (a *idAllocator) Next(ctx context.Context) (lifted.NotificationHandle, error) {
	var n int64
	err := a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		query := "INSERT INTO counters (name, value, updated_at) VALUES (?, 1, ?) ON CONFLICT(name) DO UPDATE SET value = value + 1, updated_at = excluded.updated_at RETURNING value"
		a.l.Debug("incrementing counter", "query", query, "name", notificationCounter)
		return a.dbGetter(ctx).QueryRowContext(ctx, query, notificationCounter, a.clock.Now().Unix()).Scan(&n)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to increment %s counter: %w", notificationCounter, err)
	}
	return lifted.WrapHandle(n, a.bound), nil
}
