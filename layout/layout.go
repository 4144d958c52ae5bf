// SPDX-License-Identifier: MIT

package layout

import (
	"fmt"
	"math/rand"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gridmv/grid"
	"github.com/katalvlaran/gridmv/matrix"
)

// Share is the input and output of one process of the grid.
type Share struct {
	Coord grid.Coord
	// Block is A[Coord.Row, Coord.Col].
	Block *matrix.Dense
	// X holds x fragment Coord.Row on the last column and zeros elsewhere.
	X []float64
	// Y receives y fragment Coord.Row on the last column; nil elsewhere.
	Y []float64
}

// Split distributes a and x over a k×k grid. The result is indexed by
// row-major rank.
//
// Errors: ErrNotSquare, ErrVecLen, ErrIndivisible, and the grid errors for k <= 0.
// Complexity: O(n²) time and space.
func Split(a mat.Matrix, x []float64, k int) ([]Share, error) {
	if k <= 0 {
		return nil, fmt.Errorf("layout.Split: k=%d: %w", k, grid.ErrEmptyGrid)
	}
	topo, err := grid.NewTopology(k * k)
	if err != nil {
		return nil, fmt.Errorf("layout.Split: %w", err)
	}
	n, c := a.Dims()
	if n == 0 || n != c {
		return nil, fmt.Errorf("layout.Split: %dx%d: %w", n, c, ErrNotSquare)
	}
	if len(x) != n {
		return nil, fmt.Errorf("layout.Split: len(x)=%d n=%d: %w", len(x), n, ErrVecLen)
	}
	if n%k != 0 {
		return nil, fmt.Errorf("layout.Split: n=%d k=%d: %w", n, k, ErrIndivisible)
	}
	nlocal := n / k
	full, err := matrix.NewDenseFrom(n, n, mat.DenseCopyOf(a).RawMatrix().Data)
	if err != nil {
		return nil, fmt.Errorf("layout.Split: %w", err)
	}

	shares := make([]Share, topo.Size())
	for rank := range shares {
		coord, _ := topo.Coords(rank) // rank < Size
		block, err := full.Block(coord.Row, coord.Col, nlocal)
		if err != nil {
			return nil, fmt.Errorf("layout.Split: block %s: %w", coord, err)
		}
		r0 := coord.Row * nlocal

		s := Share{Coord: coord, Block: block, X: make([]float64, nlocal)}
		if topo.LastColumn(coord) {
			copy(s.X, x[r0:r0+nlocal])
			s.Y = make([]float64, nlocal)
		}
		shares[rank] = s
	}

	return shares, nil
}

// Assemble concatenates the y fragments of the last column in row order.
//
// Errors: ErrShares when shares is not a k×k grid or a last-column Y is
// missing or mis-sized.
func Assemble(shares []Share) ([]float64, error) {
	topo, err := grid.NewTopology(len(shares))
	if err != nil {
		return nil, fmt.Errorf("layout.Assemble: %d shares: %w", len(shares), ErrShares)
	}
	last := lo.Filter(shares, func(s Share, _ int) bool { return topo.LastColumn(s.Coord) })
	if len(last) != topo.Dims() {
		return nil, fmt.Errorf("layout.Assemble: %d last-column shares: %w", len(last), ErrShares)
	}
	nlocal := len(last[0].Y)
	for i, s := range last {
		if s.Coord.Row != i || len(s.Y) != nlocal || nlocal == 0 {
			return nil, fmt.Errorf("layout.Assemble: share %s: %w", s.Coord, ErrShares)
		}
	}

	return lo.FlatMap(last, func(s Share, _ int) []float64 { return s.Y }), nil
}

// Serial computes a·x on one process with gonum, the reference against which
// the distributed product is checked.
func Serial(a mat.Matrix, x []float64) ([]float64, error) {
	n, c := a.Dims()
	if n == 0 || n != c {
		return nil, fmt.Errorf("layout.Serial: %dx%d: %w", n, c, ErrNotSquare)
	}
	if len(x) != n {
		return nil, fmt.Errorf("layout.Serial: len(x)=%d n=%d: %w", len(x), n, ErrVecLen)
	}
	var y mat.VecDense
	y.MulVec(a, mat.NewVecDense(n, append([]float64(nil), x...)))

	return mat.Col(nil, 0, &y), nil
}

// Random returns an n×n matrix and an n-vector with entries uniform in
// [-1, 1), reproducible from seed. n must be > 0.
func Random(n int, seed int64) (*mat.Dense, []float64) {
	rng := rand.New(rand.NewSource(seed))
	draw := func(int) float64 { return 2*rng.Float64() - 1 }

	return mat.NewDense(n, n, lo.Times(n*n, draw)), lo.Times(n, draw)
}
