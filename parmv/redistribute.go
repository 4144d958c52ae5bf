// SPDX-License-Identifier: MIT

package parmv

import (
	"context"
	"fmt"

	"github.com/katalvlaran/gridmv/grid"
)

// redistribute moves x fragment r from (r, k-1) to the diagonal (r, r) with a
// single point-to-point message over the world communicator. The receiver
// overwrites x in place. Row k-1 and the k = 1 grid do nothing.
func redistribute(ctx context.Context, cart *grid.Cart, x []float64, tag int) error {
	me := cart.Coords()
	switch cart.Roles().Redistribute {
	case grid.RedistributeSender:
		dst, err := cart.RankOf(grid.Coord{Row: me.Row, Col: me.Row})
		if err != nil {
			return err
		}
		if err = cart.Comm().Send(ctx, dst, tag, x); err != nil {
			return fmt.Errorf("redistribute %s -> rank %d: %w", me, dst, err)
		}
	case grid.RedistributeReceiver:
		last := cart.Topology().Dims() - 1
		src, err := cart.RankOf(grid.Coord{Row: me.Row, Col: last})
		if err != nil {
			return err
		}
		if err = cart.Comm().Recv(ctx, src, tag, x); err != nil {
			return fmt.Errorf("redistribute %s <- rank %d: %w", me, src, err)
		}
	}

	return nil
}
