// SPDX-License-Identifier: MIT

package parmv

import (
	"context"
	"fmt"

	"github.com/pion/logging"

	"github.com/katalvlaran/gridmv/comm"
	"github.com/katalvlaran/gridmv/grid"
	"github.com/katalvlaran/gridmv/matrix"
)

// Multiply computes the distributed product y = A·x. Every process of cart
// must call it with the same n, in the same order relative to other
// collective operations on cart.
//
// MAIN DESCRIPTION:
//   - a is this process's nlocal×nlocal block A[row,col] (nlocal = n/k).
//   - x has length nlocal on every process. On the last column it holds x
//     fragment row on entry; elsewhere it is scratch. On exit it holds
//     fragment col on every process.
//   - y has length nlocal on the last column and receives y fragment row.
//     Elsewhere it is ignored and may be nil.
//
// Implementation:
//   - Stage 1 (Init): validate the configuration; no communication happens
//     when it is rejected.
//   - Stage 2 (CoordinatesAssigned): derive coordinates and roles, then create
//     the row group and the column group, in that order on every process.
//     Both are freed on return.
//   - Stage 3 (VectorRedistributed): (r, k-1) sends x to (r, r).
//   - Stage 4 (VectorBroadcast): (c, c) broadcasts x down column c.
//   - Stage 5 (LocallyMultiplied): py = a·x with matrix.MatVecInto.
//   - Stage 6 (RowReduced): the row group sums py into y on (r, k-1).
//
// Behavior highlights:
//   - Blocking: returns once this process's part is complete. Passing a
//     context with a deadline turns a missing peer into ctx.Err().
//   - The only allocation is py (nlocal values).
//   - The first error is returned; nothing is retried.
//
// Errors:
//   - ErrNilGrid, ErrBadDimension, ErrIndivisible, ErrFragmentLength,
//     matrix.ErrNilMatrix, matrix.ErrDimensionMismatch, and comm errors.
//     All are wrapped with the state reached, e.g. "parmv.Multiply[init]: ...".
//
// Complexity:
//   - Time O(nlocal²) locally plus O(k·nlocal) transferred per process
//     (linear collectives); Space O(nlocal).
func Multiply(ctx context.Context, n int, a *matrix.Dense, x, y []float64, cart *grid.Cart, opts ...Option) error {
	o := gatherOptions(opts...)
	m := &machine{
		hook: o.hook,
		log:  o.loggerFactory.NewLogger(LoggerScope),
		rank: -1,
	}
	if cart != nil {
		m.rank = cart.Comm().Rank()
	}
	m.enter(Init)

	nlocal, err := validate(n, a, x, y, cart)
	if err != nil {
		return m.fail(err)
	}

	me := cart.Coords()
	m.enter(CoordinatesAssigned)
	m.log.Tracef("rank %d at %s: n=%d k=%d nlocal=%d roles: %s",
		m.rank, me, n, cart.Topology().Dims(), nlocal, cart.Roles())

	row, err := cart.Sub(grid.AxisRow)
	if err != nil {
		return m.fail(err)
	}
	defer m.free(row, grid.AxisRow)
	col, err := cart.Sub(grid.AxisCol)
	if err != nil {
		return m.fail(err)
	}
	defer m.free(col, grid.AxisCol)
	m.log.Debugf("rank %d: row group %d/%d, column group %d/%d",
		m.rank, row.Rank(), row.Size(), col.Rank(), col.Size())

	if err = redistribute(ctx, cart, x, o.tag); err != nil {
		return m.fail(err)
	}
	m.enter(VectorRedistributed)

	if err = broadcast(ctx, col, x, me.Col); err != nil {
		return m.fail(err)
	}
	m.enter(VectorBroadcast)

	py := make([]float64, nlocal)
	if err = matrix.MatVecInto(py, a, x); err != nil {
		return m.fail(err)
	}
	m.enter(LocallyMultiplied)

	if err = reduce(ctx, row, py, y); err != nil {
		return m.fail(err)
	}
	m.enter(RowReduced)

	m.enter(Done)

	return nil
}

// validate runs the configuration checks in a fixed order and returns nlocal.
func validate(n int, a *matrix.Dense, x, y []float64, cart *grid.Cart) (int, error) {
	if cart == nil {
		return 0, ErrNilGrid
	}
	if n <= 0 {
		return 0, fmt.Errorf("n=%d: %w", n, ErrBadDimension)
	}
	k := cart.Topology().Dims()
	if n%k != 0 {
		return 0, fmt.Errorf("n=%d k=%d: %w", n, k, ErrIndivisible)
	}
	nlocal := n / k
	if err := matrix.ValidateShape(a, nlocal, nlocal); err != nil {
		return 0, fmt.Errorf("block %s: %w", cart.Coords(), err)
	}
	if len(x) != nlocal {
		return 0, fmt.Errorf("x: got %d, want %d: %w", len(x), nlocal, ErrFragmentLength)
	}
	if cart.Roles().Reduce == grid.ReduceRoot && len(y) != nlocal {
		return 0, fmt.Errorf("y: got %d, want %d: %w", len(y), nlocal, ErrFragmentLength)
	}

	return nlocal, nil
}

// machine tracks the state of one Multiply call on one process.
type machine struct {
	state State
	rank  int
	hook  StateHook
	log   logging.LeveledLogger
}

func (m *machine) enter(s State) {
	m.state = s
	m.log.Tracef("rank %d: %s", m.rank, s)
	if m.hook != nil {
		m.hook(m.rank, s)
	}
}

func (m *machine) fail(err error) error {
	err = stateErrorf(m.state, err)
	m.log.Errorf("rank %d: %v", m.rank, err)

	return err
}

func (m *machine) free(c comm.Comm, axis grid.Axis) {
	if err := c.Free(); err != nil {
		m.log.Warnf("rank %d: free %s group: %v", m.rank, axis, err)
	}
}
