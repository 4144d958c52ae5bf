// SPDX-License-Identifier: MIT

package parmv

import (
	"context"
	"fmt"

	"github.com/katalvlaran/gridmv/comm"
)

// broadcast replicates fragment c from the diagonal (c, c) to every process of
// column c. Inside the column group the diagonal's rank is its row, which
// equals the column index c.
func broadcast(ctx context.Context, col comm.Comm, x []float64, c int) error {
	if err := col.Bcast(ctx, x, c); err != nil {
		return fmt.Errorf("broadcast column %d: %w", c, err)
	}

	return nil
}
