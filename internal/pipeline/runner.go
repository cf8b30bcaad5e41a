package pipeline

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Runner tracks detached background tasks so the process can wait for
// in-flight pipelines before exiting, instead of relying on an ambient
// keep-alive signal.
type Runner struct {
	base   context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	log    *zap.SugaredLogger
}

// NewRunner creates a runner whose tasks outlive individual requests
func NewRunner(log *zap.SugaredLogger) *Runner {
	ctx, cancel := context.WithCancel(context.Background())
	return &Runner{base: ctx, cancel: cancel, log: log}
}

// Go starts fn in a tracked goroutine. The context passed to fn is the
// runner's own, detached from any request connection.
func (r *Runner) Go(name string, fn func(ctx context.Context)) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.log.Debugw("background task started", "task", name)
		fn(r.base)
		r.log.Debugw("background task finished", "task", name)
	}()
}

// Shutdown waits for in-flight tasks to finish. If ctx expires first, the
// remaining tasks are cancelled and ctx's error is returned.
func (r *Runner) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		r.cancel()
		return ctx.Err()
	}
}
