// Bounded admission gate for detail-page enrichment.

package pool

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Limiter admits at most width concurrently executing tasks. Excess callers
// queue in submission order until a slot frees; there is no priority and no
// cancellation of queued work short of the context ending.
type Limiter struct {
	sem   *semaphore.Weighted
	width int
}

func NewLimiter(width int) *Limiter {
	if width <= 0 {
		width = 1
	}
	return &Limiter{sem: semaphore.NewWeighted(int64(width)), width: width}
}

func (l *Limiter) Width() int {
	return l.width
}

// Run executes task once a slot is free. The slot is released on every exit
// path, task panics included.
func (l *Limiter) Run(ctx context.Context, task func()) error {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer l.sem.Release(1)
	task()
	return nil
}
