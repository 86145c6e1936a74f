// SPDX-License-Identifier: MIT

// Package parallel provides the fork-join loop used by every batch phase
// (utility surfaces, travel-time rows, PD cube, accessibility).
//
// Determinism:
//   - Each index is visited exactly once; callers write to disjoint slots, so
//     results do not depend on scheduling order.
//
// Cancellation:
//   - ctx is checked before each index is started; the first error (or
//     ctx.Err()) is returned and remaining indices are skipped.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Workers returns the default degree of parallelism (GOMAXPROCS).
func Workers() int {
	return runtime.GOMAXPROCS(0)
}

// For runs fn(i) for i in [0, n) with at most Workers() goroutines.
// Complexity: O(n) calls to fn, O(Workers) goroutines alive at once.
func For(ctx context.Context, n int, fn func(i int) error) error {
	return ForLimit(ctx, n, Workers(), fn)
}

// ForLimit is For with an explicit worker bound; limit <= 0 means Workers().
func ForLimit(ctx context.Context, n, limit int, fn func(i int) error) error {
	if n <= 0 {
		return nil
	}
	if limit <= 0 {
		limit = Workers()
	}
	// Single row or single worker: stay on the calling goroutine.
	if n == 1 || limit == 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(i)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	// errgroup cancels gctx on Wait; only the caller's ctx matters here.
	return ctx.Err()
}
