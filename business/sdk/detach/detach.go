// Package detach provides a best-effort background task primitive. Cache
// writes performed purely for optimization are handed to a Detacher so the
// request can respond without waiting; failures are logged, never surfaced.
package detach

import (
	"context"
	"runtime/debug"
	"sync"
	"time"

	"github.com/jcpaschoal/whereabouts/foundation/logger"
)

// Detacher runs functions detached from the request that spawned them.
type Detacher struct {
	log     *logger.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

// New constructs a Detacher. Each detached task gets its own context with
// the given timeout.
func New(log *logger.Logger, timeout time.Duration) *Detacher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Detacher{
		log:     log,
		timeout: timeout,
	}
}

// Go runs fn in the background. Errors and panics are logged under the given
// task name and otherwise swallowed.
func (d *Detacher) Go(name string, fn func(ctx context.Context) error) {
	d.wg.Add(1)

	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		defer func() {
			if rec := recover(); rec != nil {
				d.log.Error(ctx, "detach: panic", "task", name, "recover", rec, "trace", string(debug.Stack()))
			}
		}()

		if err := fn(ctx); err != nil {
			d.log.Error(ctx, "detach: task failed", "task", name, "err", err)
		}
	}()
}

// Wait blocks until all in-flight tasks complete. Used on shutdown and in
// tests that need to observe detached side effects.
func (d *Detacher) Wait() {
	d.wg.Wait()
}
