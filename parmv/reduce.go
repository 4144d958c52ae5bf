// SPDX-License-Identifier: MIT

package parmv

import (
	"context"
	"fmt"

	"github.com/katalvlaran/gridmv/comm"
)

// reduce sums the partial products py of row r into y on (r, k-1), the rank
// k-1 of the row group. y is only written on that process.
func reduce(ctx context.Context, row comm.Comm, py, y []float64) error {
	root := row.Size() - 1
	if err := row.ReduceSum(ctx, py, y, root); err != nil {
		return fmt.Errorf("reduce into row rank %d: %w", root, err)
	}

	return nil
}
