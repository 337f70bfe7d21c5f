// Package itimer implements a minimal interval-timer collaborator: a
// single goroutine, bounded to a context, that calls a fire func on a
// fixed period until cancelled. It is grounded on the teacher pack's one
// errgroup user (jcorbin-gothird's scripts/gen_vm_expects.go), adapted
// from a one-shot pipeline guard into a repeating ticker.
package itimer

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// After starts calling fire every d until the returned cancel func is
// called or ctx is done, whichever comes first. The goroutine is registered
// with an errgroup.Group so that cancel waits for it to exit; a panic
// inside fire is not recovered.
func After(ctx context.Context, d time.Duration, fire func()) (cancel func() error) {
	ctx, stop := context.WithCancel(ctx)
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		t := time.NewTicker(d)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-t.C:
				fire()
			}
		}
	})

	return func() error {
		stop()
		if err := eg.Wait(); err != nil && err != context.Canceled {
			return err
		}
		return nil
	}
}
