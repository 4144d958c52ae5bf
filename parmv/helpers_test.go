package parmv_test

import (
	"context"
	"testing"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gridmv/comm"
	"github.com/katalvlaran/gridmv/grid"
	"github.com/katalvlaran/gridmv/layout"
	"github.com/katalvlaran/gridmv/parmv"
)

// testTimeout turns a protocol stall into a test failure instead of a hang.
const testTimeout = 5 * time.Second

// runGrid splits (a, x) over a k×k in-memory grid, runs Multiply on every
// rank and returns the shares after the call.
func runGrid(t testing.TB, k int, a mat.Matrix, x []float64, opts ...parmv.Option) ([]layout.Share, error) {
	t.Helper()
	shares, err := layout.Split(a, x, k)
	if err != nil {
		return nil, err
	}
	n, _ := a.Dims()

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()
	err = comm.Run(ctx, k*k, func(ctx context.Context, c comm.Comm) error {
		cart, err := grid.NewCart(c)
		if err != nil {
			return err
		}
		s := shares[c.Rank()] // each rank touches only its own share
		return parmv.Multiply(ctx, n, s.Block, s.X, s.Y, cart, opts...)
	})

	return shares, err
}

// product runs the distributed product and assembles y.
func product(t testing.TB, k int, a mat.Matrix, x []float64, opts ...parmv.Option) ([]float64, error) {
	t.Helper()
	shares, err := runGrid(t, k, a, x, opts...)
	if err != nil {
		return nil, err
	}

	return layout.Assemble(shares)
}

// seqMatrix is the n×n matrix 1..n² in row-major order.
func seqMatrix(n int) *mat.Dense {
	data := make([]float64, n*n)
	for i := range data {
		data[i] = float64(i + 1)
	}

	return mat.NewDense(n, n, data)
}

func ones(n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = 1
	}

	return x
}
