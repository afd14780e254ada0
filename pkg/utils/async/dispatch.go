package async

import (
	"context"
	"runtime/debug"

	"github.com/m-mizutani/ctxlog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Group runs handlers asynchronously with panic recovery and lets the
// caller wait for every handler started so far. Handler errors are logged,
// never returned, so one failed request does not affect the others.
type Group struct {
	eg  errgroup.Group
	sem *semaphore.Weighted
}

// NewGroup creates a Group. With limit > 0, at most limit handlers run at
// once; the rest queue without blocking the caller of Go.
func NewGroup(limit int) *Group {
	g := &Group{}
	if limit > 0 {
		g.sem = semaphore.NewWeighted(int64(limit))
	}
	return g
}

// Go starts handler on a new goroutine. The handler receives a context
// detached from ctx's cancellation that keeps ctx's logger.
func (g *Group) Go(ctx context.Context, handler func(ctx context.Context) error) {
	newCtx := newBackgroundContext(ctx)

	g.eg.Go(func() error {
		if g.sem != nil {
			// newCtx is never cancelled, so Acquire only returns once a slot is free
			_ = g.sem.Acquire(newCtx, 1)
			defer g.sem.Release(1)
		}

		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				ctxlog.From(newCtx).Error("Panic in async handler",
					"recover", r,
					"stack", string(stack),
				)
			}
		}()

		if err := handler(newCtx); err != nil {
			ctxlog.From(newCtx).Error("Error in async handler",
				"error", err,
			)
		}
		return nil
	})
}

// Wait blocks until every handler started with Go has returned
func (g *Group) Wait() {
	_ = g.eg.Wait()
}

// newBackgroundContext creates a new background context preserving the logger
func newBackgroundContext(ctx context.Context) context.Context {
	return ctxlog.With(context.Background(), ctxlog.From(ctx))
}
