package notify

import (
	"context"
	"sync"

	lifted "github.com/benjamonnguyen/lifted-go"
)

// MemoryIdAllocator is an in-process counter wrapped below a bound. Handles
// repeat after bound-1 draws and across restarts.
type MemoryIdAllocator struct {
	mu    sync.Mutex
	n     int64
	bound int
}

func NewMemoryIdAllocator(bound int) *MemoryIdAllocator {
	if bound < 2 {
		bound = lifted.DefaultHandleBound
	}
	return &MemoryIdAllocator{bound: bound}
}

func (a *MemoryIdAllocator) Next(context.Context) (lifted.NotificationHandle, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.n++
	return lifted.WrapHandle(a.n, a.bound), nil
}
