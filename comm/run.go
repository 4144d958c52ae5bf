// SPDX-License-Identifier: MIT

package comm

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// RankFunc is the single program every rank executes.
type RankFunc func(ctx context.Context, c Comm) error

// Run starts p ranks on a fresh LocalWorld, each executing fn with its own
// world handle, and waits for all of them.
//
// The first failing rank cancels the shared context, so peers blocked in a
// matching operation return ctx.Err() instead of hanging. The returned error
// is the first one, tagged with its rank.
func Run(ctx context.Context, p int, fn RankFunc, opts ...Option) error {
	w, err := NewLocalWorld(p, opts...)
	if err != nil {
		return fmt.Errorf("comm.%s: %w", opRun, err)
	}

	handles := make([]Comm, p)
	var r int
	for r = 0; r < p; r++ {
		if handles[r], err = w.Comm(r); err != nil {
			return fmt.Errorf("comm.%s: %w", opRun, err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for r = 0; r < p; r++ {
		rank, c := r, handles[r]
		g.Go(func() error {
			if err := fn(gctx, c); err != nil {
				return fmt.Errorf("rank %d: %w", rank, err)
			}

			return nil
		})
	}

	return g.Wait()
}
